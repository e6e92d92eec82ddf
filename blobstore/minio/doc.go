// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. The official MinIO Go
// client also works against Ceph, SeaweedFS, Garage and similar services,
// without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minioblob.NewClient(minioblob.ConfigFromEnv())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := minioblob.NewStore(client, "my-bucket", "datasets/")
package minio
