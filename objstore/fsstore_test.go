package objstore_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/tally/objstore"
)

func TestFSPutGetObject(t *testing.T) {
	store := objstore.NewFSObjectStore(t.TempDir())

	content := []byte("supply,100\nbuy,40")
	err := store.Put(context.Background(), "incoming/txns.csv", bytes.NewReader(content), int64(len(content)), "text/csv")
	require.NoError(t, err)

	reader, err := store.Get(context.Background(), "incoming/txns.csv")
	require.NoError(t, err)
	defer reader.Close()

	retrieved, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, content, retrieved)
}

func TestFSPutTruncatesPriorContent(t *testing.T) {
	store := objstore.NewFSObjectStore(t.TempDir())

	long := strings.Repeat("x", 100)
	require.NoError(t, store.Put(context.Background(), "obj", strings.NewReader(long), int64(len(long)), "text/plain"))

	short := "short"
	require.NoError(t, store.Put(context.Background(), "obj", strings.NewReader(short), int64(len(short)), "text/plain"))

	reader, err := store.Get(context.Background(), "obj")
	require.NoError(t, err)
	defer reader.Close()

	retrieved, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, short, string(retrieved))
}

func TestFSGetMissingObject(t *testing.T) {
	store := objstore.NewFSObjectStore(t.TempDir())

	_, err := store.Get(context.Background(), "nope.csv")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFSObjectNameCannotEscapeRoot(t *testing.T) {
	dir := t.TempDir()
	store := objstore.NewFSObjectStore(filepath.Join(dir, "store"))

	_, err := store.Get(context.Background(), "../outside")
	require.Error(t, err)

	err = store.Put(context.Background(), "../outside", strings.NewReader("x"), 1, "text/plain")
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "outside"))
	require.True(t, os.IsNotExist(statErr))
}

func TestObjectStoreMock(t *testing.T) {
	var gotObj string
	store := objstore.GenerateObjectStoreMock()
	store.GetFunc = func(ctx context.Context, obj string) (io.ReadCloser, error) {
		gotObj = obj
		return io.NopCloser(strings.NewReader("data")), nil
	}

	reader, err := store.Get(context.Background(), "some-object")
	require.NoError(t, err)
	defer reader.Close()
	require.Equal(t, "some-object", gotObj)

	err = store.Put(context.Background(), "other", strings.NewReader("x"), 1, "text/plain")
	require.NoError(t, err)
}
