// Package configs manages application configuration: database, blob storage,
// message queue, cache, server and logging settings. Multiple formats are
// supported (YAML, JSON, TOML, dotenv) with optional hot reload.
//
// Example:
//
//	err := configs.InitConfig("./")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	config := configs.GetConfig()
//	fmt.Println(config.Server.Port)
//
// Example accessing DB config:
//
//	dsn := configs.GetConfig().DB.GetDSN()
//
// Example accessing blob config:
//
//	root := configs.GetConfig().Blob.ResolveRoot()
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AppVersion is the release version stamped on clients and traces.
const AppVersion = "1.0.0"

type (
	// AppConfig is the global application configuration.
	AppConfig struct {
		DB             DBConfig             `mapstructure:"db"`
		Blob           BlobConfig           `mapstructure:"blob"`
		MQ             MQConfig             `mapstructure:"mq"`
		KV             KVConfig             `mapstructure:"kv"`
		Server         ServerConfig         `mapstructure:"server"`
		Log            LogConfig            `mapstructure:"log"`
		Auth           AuthConfig           `mapstructure:"auth"`
		Metrics        MetricsConfig        `mapstructure:"metrics"`
		Tracing        TracingConfig        `mapstructure:"tracing"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
		Events         EventsConfig         `mapstructure:"events"`
		Sweep          SweepConfig          `mapstructure:"sweep"`
	}
)

var (
	globalConfig AppConfig
	appViper     *viper.Viper
)

// InitConfig loads the application configuration from path (a file or a
// directory containing config.{yaml,json,toml,env}) and enables hot reload
// when configured. A missing config file is not an error: defaults plus
// environment variables are a valid configuration for a fresh install.
func InitConfig(path string) error {
	appViper = viper.New()
	setAllDefaults(appViper)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		// A concrete file: viper detects the format from the extension.
		appViper.SetConfigFile(path)
	} else {
		appViper.SetConfigName("config")
		appViper.AddConfigPath(path)
		appViper.AddConfigPath(path + "/configs")

		exts := []string{"yaml", "yml", "json", "toml", "env", "dotenv"}

		for _, ext := range exts {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				appViper.SetConfigFile(cfg)

				break
			}
		}
	}

	appViper.AutomaticEnv()
	appViper.SetEnvPrefix("ARTVAULT")

	if err := appViper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && appViper.ConfigFileUsed() != "" {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := appViper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	reloadConfigs(appViper, globalConfig.Server.ReloadConfig)

	return nil
}

// setAllDefaults registers every section's default values.
func setAllDefaults(v *viper.Viper) {
	var (
		serverConfig ServerConfig
		dbConfig     DBConfig
		blobConfig   BlobConfig
		mqConfig     MQConfig
		kvConfig     KVConfig
		logConfig    LogConfig
		authConfig   AuthConfig
		metricsCfg   MetricsConfig
		tracingCfg   TracingConfig
		rlConfig     RateLimitConfig
		cbConfig     CircuitBreakerConfig
		eventsConfig EventsConfig
		sweepConfig  SweepConfig
	)

	serverConfig.setDefaults(v)
	dbConfig.setDefaults(v)
	blobConfig.setDefaults(v)
	mqConfig.setDefaults(v)
	kvConfig.setDefaults(v)
	logConfig.setDefaults(v)
	authConfig.setDefaults(v)
	metricsCfg.setDefaults(v)
	tracingCfg.setDefaults(v)
	rlConfig.setDefaults(v)
	cbConfig.setDefaults(v)
	eventsConfig.setDefaults(v)
	sweepConfig.setDefaults(v)
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Println("Config file changed:", e.Name)
		fmt.Println("Reloading configuration...")

		if err := v.Unmarshal(&globalConfig); err != nil {
			fmt.Printf("Error reloading config: %v\n", err)
		}
	})
	v.WatchConfig()
}

// GetConfig returns the global configuration instance.
func GetConfig() *AppConfig {
	return &globalConfig
}

// GetViper returns the global viper instance.
func GetViper() *viper.Viper {
	return appViper
}
