// Package configs also manages metrics settings for Prometheus-style
// monitoring.
//
// Example:
//
//	config := configs.GetConfig()
//	if config.Metrics.Enabled {
//		// initialize metrics
//	}
package configs

import (
	"time"

	"github.com/spf13/viper"
)

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	Enabled         bool              `mapstructure:"enabled"`
	ServiceName     string            `mapstructure:"service_name"`
	ServiceVersion  string            `mapstructure:"service_version"`
	ExporterType    string            `mapstructure:"exporter_type"` // "prometheus"
	Endpoint        string            `mapstructure:"endpoint"`
	CollectInterval time.Duration     `mapstructure:"collect_interval"`
	RuntimeMetrics  bool              `mapstructure:"runtime_metrics"`
	Pprof           bool              `mapstructure:"pprof"`
	Labels          map[string]string `mapstructure:"labels"`
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "artvault")
	v.SetDefault("metrics.service_version", AppVersion)
	v.SetDefault("metrics.exporter_type", "prometheus")
	v.SetDefault("metrics.endpoint", ":9090")
	v.SetDefault("metrics.collect_interval", "15s")
	v.SetDefault("metrics.runtime_metrics", true)
	v.SetDefault("metrics.pprof", false)
	v.SetDefault("metrics.labels", map[string]string{
		"service": "artvault",
		"version": AppVersion,
	})
}
