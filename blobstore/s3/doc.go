// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Snapshot reads use ranged GetObject requests; writes stream through the
// S3 upload manager, so snapshots larger than memory upload in parts.
package s3
