package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/artvault/artvault/pkg/apperr"
	"github.com/artvault/artvault/pkg/configs"
)

func init() {
	RegisterFactory(configs.BlobTypeS3, NewS3Store)
}

// S3Store keeps the same category/identifier layout as the filesystem backend,
// as object keys "<category>/<key>" in one bucket. Used when the vault runs
// against a MinIO or S3 endpoint instead of local disk.
type S3Store struct {
	cli    *minio.Client
	bucket string
}

// NewS3Store initialises the MinIO client and creates the bucket when absent.
func NewS3Store(ctx context.Context, cfg *configs.BlobConfig) (Store, error) {
	s3 := cfg.S3

	endpoint := s3.Endpoint
	// Accept a full schema endpoint (http:// or https://).
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			s3.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s3.AccessKeyID, s3.SecretAccessKey, ""),
		Secure: s3.UseSSL,
		Region: s3.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("artvault", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, s3.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s3.BucketName, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, s3.BucketName, minio.MakeBucketOptions{Region: s3.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", s3.BucketName, err)
		}

		log.Info().Str("bucket", s3.BucketName).Msg("blob bucket created")
	}

	log.Info().Str("endpoint", s3.Endpoint).Str("bucket", s3.BucketName).Msg("s3 blob store connected")

	return &S3Store{cli: cli, bucket: s3.BucketName}, nil
}

func (s *S3Store) objectKey(key string, category Category) string {
	return string(category) + "/" + key
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket"
}

// Put uploads data under a fresh identifier.
func (s *S3Store) Put(ctx context.Context, data []byte, category Category) (string, error) {
	if !category.Valid() {
		return "", apperr.Validation("category", fmt.Sprintf("unknown blob category %q", category))
	}

	key, err := newKey()
	if err != nil {
		return "", apperr.BlobStore("put", string(category), "", err)
	}

	_, err = s.cli.PutObject(ctx, s.bucket, s.objectKey(key, category),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", apperr.BlobStore("put", string(category), key, err)
	}

	return key, nil
}

// Get downloads the stored bytes for key.
func (s *S3Store) Get(ctx context.Context, key string, category Category) ([]byte, error) {
	obj, err := s.cli.GetObject(ctx, s.bucket, s.objectKey(key, category), minio.GetObjectOptions{})
	if err != nil {
		return nil, apperr.BlobStore("get", string(category), key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperr.NotFound("blob", key)
		}

		return nil, apperr.BlobStore("get", string(category), key, err)
	}

	return data, nil
}

// Delete removes the object. MinIO's RemoveObject succeeds on absent keys, so
// existence is checked first to keep the not-found contract.
func (s *S3Store) Delete(ctx context.Context, key string, category Category) error {
	ok, err := s.Exists(ctx, key, category)
	if err != nil {
		return err
	}

	if !ok {
		return apperr.NotFound("blob", key)
	}

	if err := s.cli.RemoveObject(ctx, s.bucket, s.objectKey(key, category), minio.RemoveObjectOptions{}); err != nil {
		return apperr.BlobStore("delete", string(category), key, err)
	}

	return nil
}

// Exists reports whether key resolves in category.
func (s *S3Store) Exists(ctx context.Context, key string, category Category) (bool, error) {
	_, err := s.cli.StatObject(ctx, s.bucket, s.objectKey(key, category), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}

		return false, apperr.BlobStore("stat", string(category), key, err)
	}

	return true, nil
}

// List enumerates the category prefix.
func (s *S3Store) List(ctx context.Context, category Category) ([]Info, error) {
	if !category.Valid() {
		return nil, apperr.Validation("category", fmt.Sprintf("unknown blob category %q", category))
	}

	prefix := string(category) + "/"

	var infos []Info

	for obj := range s.cli.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, apperr.BlobStore("list", string(category), "", obj.Err)
		}

		infos = append(infos, Info{
			Key:     obj.Key[len(prefix):],
			Size:    obj.Size,
			ModTime: obj.LastModified,
		})
	}

	return infos, nil
}

// Close is a no-op for the s3 backend.
func (s *S3Store) Close() error { return nil }
