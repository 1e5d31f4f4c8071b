package objstore

import (
	"context"
	"io"
)

// ObjectStoreMock is a mock implementation of the ObjectStore interface.
type ObjectStoreMock struct {
	GetFunc func(ctx context.Context, obj string) (io.ReadCloser, error)
	PutFunc func(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) error
}

// Get is a mock implementation of the Get method.
func (m *ObjectStoreMock) Get(ctx context.Context, obj string) (io.ReadCloser, error) {
	return m.GetFunc(ctx, obj)
}

// Put is a mock implementation of the Put method.
func (m *ObjectStoreMock) Put(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) error {
	return m.PutFunc(ctx, obj, reader, size, contentType)
}

// GenerateObjectStoreMock generates a new mock instance of the ObjectStore
// interface with no-op defaults.
func GenerateObjectStoreMock() *ObjectStoreMock {
	return &ObjectStoreMock{
		GetFunc: func(ctx context.Context, obj string) (io.ReadCloser, error) {
			return nil, nil
		},
		PutFunc: func(ctx context.Context, obj string, reader io.Reader, size int64, contentType string) error {
			return nil
		},
	}
}
