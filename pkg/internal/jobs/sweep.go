// Package jobs holds the background maintenance tasks the scheduler runs.
package jobs

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/artvault/artvault/pkg/configs"
	ctxPkg "github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/service"
	blobc "github.com/artvault/artvault/pkg/internal/storage/blob"
	"github.com/artvault/artvault/pkg/log"
	"github.com/artvault/artvault/pkg/queue"
	"github.com/artvault/artvault/pkg/scheduler"
)

// SweepJobName identifies the orphan sweep in the scheduler.
const SweepJobName = "blob-orphan-sweep"

// SweepResult summarises one sweep pass.
type SweepResult struct {
	Scanned  int   `json:"scanned"`
	Orphans  int   `json:"orphans"`
	Deleted  int   `json:"deleted"`
	Bytes    int64 `json:"bytes"`
	DryRun   bool  `json:"dry_run"`
	Duration int64 `json:"duration_ms"`
}

// SweepOrphanBlobs deletes blob files no live entity references. Files
// younger than the grace period are skipped so a blob written ahead of its
// graph commit is never reclaimed mid-create. With dryRun set the sweep only
// counts what it would delete.
func SweepOrphanBlobs(ctx context.Context, grace time.Duration, dryRun bool) (*SweepResult, error) {
	start := time.Now()

	store := ctxPkg.GetBlobClient(ctx)
	if store == nil {
		return nil, nil
	}

	stats := service.NewStatsService(ctx)

	orphans, err := stats.OrphanBlobs(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-grace)
	result := &SweepResult{DryRun: dryRun}

	for _, category := range blobc.Categories {
		all, err := store.List(ctx, category)
		if err != nil {
			return nil, err
		}

		result.Scanned += len(all)
		result.Orphans += len(orphans[category])
	}

	var (
		g       errgroup.Group
		deleted = make([]int, len(blobc.Categories))
		bytes   = make([]int64, len(blobc.Categories))
	)

	for i, category := range blobc.Categories {
		infos := orphans[category]

		g.Go(func() error {
			for _, info := range infos {
				if info.ModTime.After(cutoff) {
					continue
				}

				if !dryRun {
					if err := store.Delete(ctx, info.Key, category); err != nil {
						return err
					}
				}

				deleted[i]++
				bytes[i] += info.Size
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range blobc.Categories {
		result.Deleted += deleted[i]
		result.Bytes += bytes[i]
	}

	result.Duration = time.Since(start).Milliseconds()

	log.Logger().Info().
		Int("orphans", result.Orphans).
		Int("deleted", result.Deleted).
		Int64("bytes", result.Bytes).
		Bool("dry_run", result.DryRun).
		Msg("orphan blob sweep finished")

	publishSweepEvent(ctx, result)

	return result, nil
}

func publishSweepEvent(ctx context.Context, result *SweepResult) {
	mqc := ctxPkg.GetMQClient(ctx)
	if mqc == nil || !configs.GetConfig().Events.Enabled {
		return
	}

	err := queue.PublishSweepEvent(mqc.Publisher(), queue.SweepEventPayload{
		Scanned: result.Scanned,
		Orphans: result.Orphans,
		Deleted: result.Deleted,
		Bytes:   result.Bytes,
		DryRun:  result.DryRun,
	}, queue.WithProducer("artvault"))
	if err != nil {
		log.Logger().Warn().Err(err).Msg("sweep event publish failed")
	}
}

// RegisterSweepJob wires the sweep onto the scheduler cron. The ctx must
// carry the storage manager; the job reuses it on every run.
func RegisterSweepJob(s *scheduler.Scheduler, ctx context.Context, cfg configs.SweepConfig) error {
	if !cfg.Enabled {
		return nil
	}

	grace := time.Duration(cfg.GraceHours) * time.Hour

	return s.AddCron(SweepJobName, cfg.Cron, func(jobCtx context.Context) {
		if _, err := SweepOrphanBlobs(jobCtx, grace, cfg.DryRun); err != nil {
			log.Logger().Error().Err(err).Msg("orphan blob sweep failed")
		}
	}, ctx)
}
