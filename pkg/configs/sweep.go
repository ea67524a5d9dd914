package configs

import "github.com/spf13/viper"

const (
	DefaultSweepEnabled  = true
	DefaultSweepCron     = "30 3 * * *" // daily, off-hours
	DefaultSweepGraceHrs = 24
)

// SweepConfig controls the orphaned-blob sweep. Orphans (blob files no live
// entity references) are legal soft garbage; the sweep reclaims them in the
// background. The grace period keeps files younger than GraceHours untouched
// so a blob written ahead of its graph commit is never reclaimed mid-create.
type SweepConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron"`
	GraceHours int    `mapstructure:"grace_hours" rule:"min=1"`
	DryRun     bool   `mapstructure:"dry_run"`
}

func (c *SweepConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("sweep.enabled", DefaultSweepEnabled)
	v.SetDefault("sweep.cron", DefaultSweepCron)
	v.SetDefault("sweep.grace_hours", DefaultSweepGraceHrs)
	v.SetDefault("sweep.dry_run", false)
}
