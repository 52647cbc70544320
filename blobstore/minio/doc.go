// Package minio implements blobstore.BlobStore for MinIO and other
// S3-compatible object storage using the native MinIO client.
//
// Compared to the AWS SDK based store, this client is a better fit for
// self-hosted MinIO deployments (custom endpoints, lighter dependency
// surface on the request path).
package minio
