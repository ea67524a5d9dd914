package cmd

import (
	contextPkg "context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/artvault/artvault/pkg/configs"
	"github.com/artvault/artvault/pkg/context"
	"github.com/artvault/artvault/pkg/internal/jobs"
	"github.com/artvault/artvault/pkg/internal/service"
	"github.com/artvault/artvault/pkg/internal/storage"
)

// storageContext initializes config and storage and returns a context
// carrying the manager, the way the HTTP layer sees it.
func storageContext() (contextPkg.Context, *storage.Manager, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, nil, err
	}

	ctx := contextPkg.Background()

	mgr, err := storage.Init(ctx)
	if err != nil {
		return nil, nil, err
	}

	return context.WithStorageManager(ctx, mgr), mgr, nil
}

var (
	sweepDryRun bool

	blobCmd = &cobra.Command{
		Use:   "blob",
		Short: "Blob store related commands",
	}

	blobStatsCmd = &cobra.Command{
		Use:   "stats",
		Short: "print vault statistics including orphaned blobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, mgr, err := storageContext()
			if err != nil {
				return err
			}
			defer mgr.Close()

			stats, err := service.NewStatsService(ctx).VaultStats(ctx)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}

	blobSweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "delete orphaned blobs past the configured grace period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, mgr, err := storageContext()
			if err != nil {
				return err
			}
			defer mgr.Close()

			cfg := configs.GetConfig().Sweep
			grace := time.Duration(cfg.GraceHours) * time.Hour

			result, err := jobs.SweepOrphanBlobs(ctx, grace, sweepDryRun || cfg.DryRun)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

// registerBlobCommands registers the blob subcommands.
func registerBlobCommands() {
	blobSweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "report orphans without deleting")

	blobCmd.AddCommand(blobStatsCmd)
	blobCmd.AddCommand(blobSweepCmd)

	rootCmd.AddCommand(blobCmd)
}
