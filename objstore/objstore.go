// Package objstore abstracts the storage medium holding transaction logs
// and generated reports. Implementations exist for MinIO buckets and the
// local filesystem; a mock is provided for tests.
package objstore

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectStore is a generic interface for object store operations. The
// bucket (or root directory) is bound at construction, so objects are
// addressed by a single identifier.
type ObjectStore interface {
	// Get opens the named object for reading. The caller must close the
	// returned reader.
	Get(ctx context.Context, obj string) (io.ReadCloser, error)

	// Put writes the full contents of reader to the named object,
	// replacing any previous content.
	Put(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) error
}

// MinioObjStore is an implementation of ObjectStore using MinIO, bound to
// a single bucket.
type MinioObjStore struct {
	client *minio.Client
	bucket string
}

// NewMinioObjectStore creates a new MinioObjStore over the provided client
// and bucket.
func NewMinioObjectStore(client *minio.Client, bucket string) *MinioObjStore {
	return &MinioObjStore{client: client, bucket: bucket}
}

// Put uploads an object to MinIO
func (s *MinioObjStore) Put(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, obj, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// Get retrieves an object from MinIO
func (s *MinioObjStore) Get(ctx context.Context, obj string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, obj, minio.GetObjectOptions{})
}
