package configs

import "github.com/spf13/viper"

// AuthConfig controls the opaque current-user check. The core never inspects
// credentials; it only requires that a user session exists, via headers an
// oauth2-proxy style frontend injects.
type AuthConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	SkipPaths     []string `mapstructure:"skip_paths"`      // path prefixes exempt from the check
	DevAllowQuery bool     `mapstructure:"dev_allow_query"` // allow ?user= for local debugging
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.dev_allow_query", true)
	v.SetDefault("auth.skip_paths", []string{
		"/metrics",
		"/api/v1/health",
		"/swagger",
	})
}
