// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//
// Writes go through the s3/manager uploader, so large encodings are split
// into parallel multipart uploads. An object only becomes visible once the
// upload completes, which keeps destinations free of partial output.
package s3
