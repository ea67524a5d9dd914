// Package storage aggregates the vault's storage resources: the entity
// database, the blob store, the key/value cache backend and the optional
// message queue, behind one Manager.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//
//	dbClient := mgr.GetDBClient()
//	blobClient := mgr.GetBlobClient()
package storage

import (
	"context"
	"sync"

	"github.com/artvault/artvault/pkg/configs"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	dbc "github.com/artvault/artvault/pkg/internal/storage/db"
	kvc "github.com/artvault/artvault/pkg/internal/storage/kv"
	mqc "github.com/artvault/artvault/pkg/internal/storage/mq"
	nlog "github.com/artvault/artvault/pkg/log"
)

// Manager aggregates all storage resources. Mutating operations take the
// write lock through Write, so at most one writer touches the vault at a
// time; reads run unlocked.
type Manager struct {
	DB   *dbc.Client
	Blob *blobc.Client
	KV   *kvc.Client
	MQ   *mqc.Client

	writeMu sync.Mutex
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initialises the default storage manager from the global config.
// Repeated calls return the already initialised instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		if dbi, e := dbc.New(ctx, &cfg.DB); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		// Blob store
		if bi, e := blobc.New(ctx); e != nil {
			err = e

			return
		} else {
			m.Blob = bi
		}

		// KV (defaults to in-memory, always available)
		if kvi, e := kvc.NewKVClient(ctx); e != nil {
			err = e

			return
		} else {
			m.KV = kvi
		}

		// MQ is optional; the vault runs fine without a broker.
		if cfg.MQ.Enabled {
			if mqi, e := mqc.New(ctx); e != nil {
				err = e

				return
			} else {
				m.MQ = mqi
			}
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// Write runs fn while holding the process-wide write lock. Every mutation of
// the entity graph and blob store goes through here.
func (m *Manager) Write(fn func() error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	return fn()
}

// GetDBClient returns the entity database client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetBlobClient returns the blob store client.
func (m *Manager) GetBlobClient() *blobc.Client {
	return m.Blob
}

// GetKVClient returns the KV client.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient returns the MQ client, nil when messaging is disabled.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close releases every storage client. Safe to call on a partially
// initialised manager.
func (m *Manager) Close() error {
	var firstErr error

	if m.MQ != nil {
		if err := m.MQ.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.KV != nil {
		if err := m.KV.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.Blob != nil {
		if err := m.Blob.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
