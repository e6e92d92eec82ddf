package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/vecbin/blobstore"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvEndpoint  = "VECBIN_MINIO_ENDPOINT"
	EnvAccessKey = "VECBIN_MINIO_ACCESS_KEY"
	EnvSecretKey = "VECBIN_MINIO_SECRET_KEY"
	EnvInsecure  = "VECBIN_MINIO_INSECURE"
	EnvRegion    = "VECBIN_MINIO_REGION"
)

// Config holds MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
}

// ConfigFromEnv reads Config from the VECBIN_MINIO_* environment variables.
// Connections are secure unless VECBIN_MINIO_INSECURE parses as true.
func ConfigFromEnv() Config {
	insecure, _ := strconv.ParseBool(os.Getenv(EnvInsecure))
	return Config{
		Endpoint:  os.Getenv(EnvEndpoint),
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
		Region:    os.Getenv(EnvRegion),
		Secure:    !insecure,
	}
}

// NewClient creates a MinIO client. It does not contact the server.
func NewClient(cfg Config) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio: endpoint not configured (set %s)", EnvEndpoint)
	}
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
}

// Store implements blobstore.BlobStore for MinIO and S3-compatible storage.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore creates a new MinIO blob store.
// rootPrefix is prepended to all keys (e.g. "datasets/").
func NewStore(client *minio.Client, bucket, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: rootPrefix,
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

// Get downloads a whole object.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	key := s.key(name)

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("minio: get %s/%s: %w", s.bucket, key, err)
	}
	defer obj.Close()

	// GetObject is lazy; missing keys surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, fmt.Errorf("minio: read %s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

// Put uploads data, replacing any existing object.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key := s.key(name)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return fmt.Errorf("minio: put %s/%s: %w", s.bucket, key, err)
	}
	return nil
}
