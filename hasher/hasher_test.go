package hasher

import (
	"context"
	gosha256 "crypto/sha256"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"massnet.org/shasum/config"
	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/memory"
	"massnet.org/shasum/perf"
	"massnet.org/shasum/service"
	"massnet.org/shasum/testutil"
)

func newTestHasher(t *testing.T, modify func(cfg *config.Config)) *Hasher {
	cfg := config.DefaultConfig()
	cfg.Hasher.Workers = 4
	cfg.Engine.MemoryLimit = 64 * memory.MiB
	if modify != nil {
		modify(cfg)
	}
	h, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, h.Start())
	t.Cleanup(func() { h.Stop() })
	return h
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, data, 0644))
	return path
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hasher.Workers = 0
	_, err := New(cfg)
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestHashFilesStopped(t *testing.T) {
	h, err := New(config.DefaultConfig())
	require.NoError(t, err)
	_, err = h.HashFiles(context.Background(), []string{"a"})
	assert.Equal(t, service.ErrStopped, err)
}

func TestHashFiles(t *testing.T) {
	h := newTestHasher(t, nil)
	dir := t.TempDir()

	contents := map[string][]byte{
		"empty": {},
		"abcd":  []byte("ABCD"),
		"55":    testutil.TestData(1)[:55],
		"64k":   testutil.TestData(64),
		"200k":  testutil.TestData(200),
	}
	var paths []string
	for name, data := range contents {
		paths = append(paths, writeFile(t, dir, name, data))
	}
	missing := filepath.Join(dir, "missing")
	input := append([]string{missing, paths[0]}, paths...)
	input = append(input, dir)

	results, err := h.HashFiles(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, results, len(paths)+2)

	assert.Equal(t, missing, results[0].Path)
	assert.True(t, errors.Is(results[0].Err, errors.ErrFileNotFound))
	assert.Equal(t, dir, results[len(results)-1].Path)
	assert.True(t, errors.Is(results[len(results)-1].Err, errors.ErrReadFile))

	for i, res := range results[1 : len(results)-1] {
		assert.Equal(t, paths[i], res.Path)
		require.NoError(t, res.Err, res.Path)
		data := contents[filepath.Base(res.Path)]
		assert.Equal(t, sha256.Digest(gosha256.Sum256(data)), res.Digest, res.Path)
		assert.Equal(t, int64(len(data)), res.Size)
	}
}

func TestHashFilesCancelled(t *testing.T) {
	h := newTestHasher(t, nil)
	path := writeFile(t, t.TempDir(), "a", []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := h.HashFiles(ctx, []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestSumFileCache(t *testing.T) {
	h := newTestHasher(t, nil)
	dir := t.TempDir()
	path := writeFile(t, dir, "a", []byte("ABCD"))

	res := h.SumFile(path, perf.New(false))
	require.NoError(t, res.Err)
	assert.False(t, res.Cached)

	res = h.SumFile(path, perf.New(false))
	require.NoError(t, res.Err)
	assert.True(t, res.Cached)
	assert.Equal(t, TestCases[1].Digest, res.Digest.String())

	writeFile(t, dir, "a", []byte("ABCDE"))
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Hour)))
	res = h.SumFile(path, perf.New(false))
	require.NoError(t, res.Err)
	assert.False(t, res.Cached)
	assert.Equal(t, sha256.Sum256([]byte("ABCDE")), res.Digest)
}

func TestSumFileNoCache(t *testing.T) {
	h := newTestHasher(t, func(cfg *config.Config) { cfg.Hasher.CacheEntries = 0 })
	path := writeFile(t, t.TempDir(), "a", []byte("ABCD"))

	for i := 0; i < 2; i++ {
		res := h.SumFile(path, perf.New(false))
		require.NoError(t, res.Err)
		assert.False(t, res.Cached)
	}
}

func TestSumFileMarks(t *testing.T) {
	h := newTestHasher(t, nil)
	path := writeFile(t, t.TempDir(), "a", []byte("ABCD"))

	tr := perf.New(true)
	res := h.SumFile(path, tr)
	require.NoError(t, res.Err)

	var names []string
	for _, m := range tr.Marks() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Start up", "Read target file", "Populate memory", "Calculate SHA256 hash", "Report result"}, names)
}

func TestSumFileResourceExhausted(t *testing.T) {
	h := newTestHasher(t, func(cfg *config.Config) {
		cfg.Engine.MemoryLimit = memory.MinPages * memory.PageSize
	})
	dir := t.TempDir()

	res := h.SumFile(writeFile(t, dir, "small", testutil.TestData(63)), perf.New(false))
	assert.NoError(t, res.Err)

	res = h.SumFile(writeFile(t, dir, "large", testutil.TestData(100)), perf.New(false))
	assert.True(t, errors.IsResourceExhausted(res.Err), "got %v", res.Err)
}

func TestRunTestCase(t *testing.T) {
	h := newTestHasher(t, nil)
	for i, tc := range TestCases {
		d, err := h.RunTestCase(i)
		assert.NoError(t, err, tc.Name)
		assert.Equal(t, tc.Digest, d.String())
	}

	_, err := h.RunTestCase(len(TestCases))
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	_, err = h.RunTestCase(-1)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestFindMismatch(t *testing.T) {
	h := newTestHasher(t, nil)
	m, err := h.FindMismatch(70, 16)
	require.NoError(t, err)
	assert.False(t, m.Found)
	assert.Equal(t, 70, m.SizeKB)

	_, err = h.FindMismatch(10, 0)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestFindMismatchBisects(t *testing.T) {
	brokenFrom := func(kb int) sumFunc {
		return func(msg []byte) (sha256.Digest, error) {
			d := sha256.Sum256(msg)
			if len(msg) >= kb*1024 {
				d[0] ^= 0xff
			}
			return d, nil
		}
	}

	tests := []struct {
		name   string
		cutoff int
		maxKB  int
		stepKB int
		found  bool
	}{
		{"between steps", 37, 100, 16, true},
		{"on a step", 32, 100, 16, true},
		{"at zero", 0, 100, 16, true},
		{"past the end", 101, 100, 16, false},
		{"last size", 100, 100, 16, true},
		{"unit step", 5, 10, 1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := findMismatch(test.maxKB, test.stepKB, brokenFrom(test.cutoff))
			require.NoError(t, err)
			assert.Equal(t, test.found, m.Found)
			if test.found {
				assert.Equal(t, test.cutoff, m.SizeKB)
				assert.NotEqual(t, m.Want, m.Got)
			}
		})
	}
}

func TestFindMismatchSumError(t *testing.T) {
	fail := errors.New(errors.ErrResourceExhausted, "no memory")
	_, err := findMismatch(4, 1, func([]byte) (sha256.Digest, error) { return sha256.Digest{}, fail })
	assert.True(t, testutil.SameErrorString(err, fail), "got %v", err)
}
