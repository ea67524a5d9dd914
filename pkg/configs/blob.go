package configs

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BlobType selects the blob store backend.
type BlobType string

const (
	// BlobTypeFS is the documented contract: one root directory with a
	// subdirectory per category, files named by opaque identifier.
	BlobTypeFS BlobType = "fs"
	// BlobTypeS3 stores the same layout as object keys in a bucket.
	BlobTypeS3 BlobType = "s3"
)

const (
	DefaultBlobType = BlobTypeFS

	DefaultS3Endpoint        = "localhost:9000"
	DefaultS3AccessKeyID     = "minioadmin"
	DefaultS3SecretAccessKey = "minioadmin"
	DefaultS3UseSSL          = false
	DefaultS3BucketName      = "artvault"
	DefaultS3Region          = "us-east-1"
)

// BlobConfig configures the image blob store.
type BlobConfig struct {
	Type BlobType `mapstructure:"type" rule:"oneof=fs s3"`
	// Root is the filesystem root for the fs backend. Empty resolves to a
	// shared container dir when configured, else the per-user data dir.
	Root string `mapstructure:"root"`
	// SharedContainer mimics an app-group style shared directory; when it
	// exists it is preferred over the per-user data directory.
	SharedContainer string `mapstructure:"shared_container"`

	S3 BlobS3Config `mapstructure:"s3"`
}

// BlobS3Config holds MinIO/S3 options for the s3 backend.
type BlobS3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
}

// GetEndpointURL returns the full endpoint URL for the s3 backend.
func (c *BlobS3Config) GetEndpointURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return scheme + "://" + c.Endpoint
}

// ResolveRoot resolves the fs backend's root directory: explicit root, then
// the shared container if present on disk, then the per-user data dir.
func (c *BlobConfig) ResolveRoot() string {
	if c.Root != "" {
		return c.Root
	}

	if c.SharedContainer != "" {
		if info, err := os.Stat(c.SharedContainer); err == nil && info.IsDir() {
			return filepath.Join(c.SharedContainer, "blobs")
		}
	}

	return filepath.Join(defaultDataDir(), "blobs")
}

// setDefaults registers blob store defaults.
func (c *BlobConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("blob.type", DefaultBlobType)
	v.SetDefault("blob.root", "")
	v.SetDefault("blob.shared_container", "")

	v.SetDefault("blob.s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("blob.s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("blob.s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("blob.s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("blob.s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("blob.s3.region", DefaultS3Region)
}
