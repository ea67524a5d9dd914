package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/artvault/artvault/pkg/configs"
	ctxPkg "github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/model"
	"github.com/artvault/artvault/pkg/internal/storage"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/internal/storage/db"
	"github.com/artvault/artvault/pkg/internal/storage/kv"
)

// newTestContext builds an isolated vault: in-memory SQLite, a temp-dir blob
// store, memory KV, no MQ, injected the same way the HTTP middleware injects
// the real manager.
func newTestContext(t *testing.T) context.Context {
	t.Helper()

	if err := configs.InitConfig(""); err != nil {
		t.Fatalf("init config: %v", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	if err := model.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store, err := blobc.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	mgr := &storage.Manager{
		DB:   &db.Client{DB: gdb},
		Blob: &blobc.Client{Store: store},
		KV:   &kv.Client{KVStore: mem},
	}

	return ctxPkg.WithStorageManager(context.Background(), mgr)
}

// blobStore digs the test blob store back out of the context.
func blobStore(t *testing.T, ctx context.Context) *blobc.Client {
	t.Helper()

	c := ctxPkg.GetBlobClient(ctx)
	if c == nil {
		t.Fatal("blob client missing from context")
	}

	return c
}

var testImage = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
