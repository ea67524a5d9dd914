package configs

import "github.com/spf13/viper"

// EventsConfig gates change-notification publishing, globally and per domain.
// Events are the optional hook a UI layer uses to know when to re-query; they
// are never required for correctness.
type EventsConfig struct {
	Enabled  bool                 `mapstructure:"enabled"`
	Artwork  EntityEventsConfig   `mapstructure:"artwork"`
	Gallery  EntityEventsConfig   `mapstructure:"gallery"`
	Project  EntityEventsConfig   `mapstructure:"project"`
	Blob     BlobEventsConfig     `mapstructure:"blob"`
	Ordering OrderingEventsConfig `mapstructure:"ordering"`
}

// EntityEventsConfig switches per-lifecycle events for one entity domain.
type EntityEventsConfig struct {
	Created bool `mapstructure:"created"`
	Updated bool `mapstructure:"updated"`
	Deleted bool `mapstructure:"deleted"`
}

// BlobEventsConfig switches blob store events.
type BlobEventsConfig struct {
	Stored  bool `mapstructure:"stored"`
	Deleted bool `mapstructure:"deleted"`
}

// OrderingEventsConfig switches reorder events.
type OrderingEventsConfig struct {
	Reordered bool `mapstructure:"reordered"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)

	// Entity lifecycle events default on: they drive UI re-query.
	for _, domain := range []string{"artwork", "gallery", "project"} {
		v.SetDefault("events."+domain+".created", true)
		v.SetDefault("events."+domain+".updated", true)
		v.SetDefault("events."+domain+".deleted", true)
	}

	// Blob-level events are noisy; keep the minimum useful set.
	v.SetDefault("events.blob.stored", false)
	v.SetDefault("events.blob.deleted", true)

	v.SetDefault("events.ordering.reordered", true)
}
