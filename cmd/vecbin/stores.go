package main

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hupe1980/vecbin/blobstore"
	"github.com/hupe1980/vecbin/blobstore/minio"
	"github.com/hupe1980/vecbin/blobstore/s3"
)

type resolver struct {
	stdin  io.Reader
	stdout io.Writer
	upload s3.UploadConfig
}

// resolve turns a command line location into a store and blob name.
// Cloud clients are built lazily so local conversions need no credentials.
// Only a malformed location is a usage error; client setup failures are not.
func (r resolver) resolve(ctx context.Context, raw string) (blobstore.Location, error) {
	u, err := blobstore.ParseURI(raw)
	if err != nil {
		return blobstore.Location{}, usageError{err}
	}

	switch u.Scheme {
	case blobstore.SchemeStdio:
		return blobstore.Location{Store: blobstore.NewStreamStore(r.stdin, r.stdout), Name: u.String()}, nil
	case blobstore.SchemeFile:
		return blobstore.Location{Store: blobstore.NewLocalStore(""), Name: u.Key}, nil
	case blobstore.SchemeS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return blobstore.Location{}, fmt.Errorf("load aws config: %w", err)
		}
		store := s3.NewStore(awss3.NewFromConfig(awsCfg), u.Bucket, "", func(c *s3.UploadConfig) {
			*c = r.upload
		})
		return blobstore.Location{Store: store, Name: u.Key}, nil
	case blobstore.SchemeMinIO:
		client, err := minio.NewClient(minio.ConfigFromEnv())
		if err != nil {
			return blobstore.Location{}, fmt.Errorf("minio client: %w", err)
		}
		return blobstore.Location{Store: minio.NewStore(client, u.Bucket, ""), Name: u.Key}, nil
	default:
		return blobstore.Location{}, usageError{fmt.Errorf("unsupported location %q", raw)}
	}
}
