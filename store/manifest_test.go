package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/store"
)

func testRecord(data string) store.Record {
	return store.Record{
		Size:    int64(len(data)),
		ModTime: time.Unix(1600000000, 123456789),
		Digest:  sha256.Sum256([]byte(data)),
	}
}

func TestRecordBytes(t *testing.T) {
	rec := testRecord("ABCD")
	b := rec.Bytes()
	assert.Len(t, b, 48)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 4}, b[:8])

	got, err := store.DecodeRecord(b)
	require.NoError(t, err)
	assert.Equal(t, rec.Size, got.Size)
	assert.True(t, rec.ModTime.Equal(got.ModTime))
	assert.Equal(t, rec.Digest, got.Digest)
	assert.True(t, got.Matches(4, time.Unix(1600000000, 123456789)))
	assert.False(t, got.Matches(5, time.Unix(1600000000, 123456789)))

	_, err = store.DecodeRecord(b[:47])
	assert.True(t, errors.Is(err, errors.ErrStoreRecord))
}

func TestManifestOpenMissing(t *testing.T) {
	_, err := store.Open("leveldb", filepath.Join(t.TempDir(), "none"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStoreNotFound))
}

func TestManifestPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "manifest")

	m, err := store.Open("leveldb", dir, true)
	require.NoError(t, err)
	require.NoError(t, m.Put("a.txt", testRecord("a")))
	require.NoError(t, m.Close())

	m, err = store.Open("leveldb", dir, false)
	require.NoError(t, err)
	defer m.Close()
	rec, err := m.Get("a.txt")
	require.NoError(t, err)
	assert.Equal(t, sha256.Sum256([]byte("a")), rec.Digest)

	_, err = store.Open("memdb", dir, true)
	assert.Error(t, err)
}

func TestManifest(t *testing.T) {
	m, err := store.Open("memdb", t.TempDir(), true)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Get("missing")
	assert.True(t, errors.Is(err, errors.ErrStoreNotFound))
	assert.True(t, errors.Is(m.Put("", testRecord("")), errors.ErrInvalidArgument))

	require.NoError(t, m.PutAll(map[string]store.Record{
		"b": testRecord("b"),
		"a": testRecord("a"),
		"c": testRecord("c"),
	}))
	n, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var paths []string
	require.NoError(t, m.ForEach(func(path string, rec store.Record) error {
		paths = append(paths, path)
		assert.Equal(t, sha256.Sum256([]byte(path)), rec.Digest)
		return nil
	}))
	assert.Equal(t, []string{"a", "b", "c"}, paths)

	stop := errors.New(errors.ErrUnknown, "stop")
	assert.Equal(t, stop, m.ForEach(func(string, store.Record) error { return stop }))

	require.NoError(t, m.Delete("b"))
	n, err = m.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
