package logging

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir, "test", "warn", 1, false))
	CPrint(WARN, "block count exceeds one page", LogFormat{
		"blocks": 1025,
		"pages":  2,
	})
	CPrint(ERROR, "region growth refused", LogFormat{"limit": 1 << 20})
	CPrint(ERROR, "region growth refused", nil)

	//only in file
	VPrint(ERROR, "staged message", LogFormat{"len": 4})
	VPrint(WARN, "staged message", nil)

	matches, err := filepath.Glob(filepath.Join(dir, "test-*.log"))
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	content, err := ioutil.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "region growth refused")
	assert.Contains(t, string(content), "staged message")
}

func TestInitEmptyPath(t *testing.T) {
	assert.Error(t, Init("", "test", "info", 0, false))
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")
	logger.print(INFO, "hidden", mergeLogFormats())
	logger.print(WARN, "shown", mergeLogFormats(LogFormat{"k": "v"}))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
	assert.Contains(t, out, "func=")
}

func TestCallerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "trace")
	logger.print(ERROR, "with stack", mergeLogFormats())
	assert.Contains(t, buf.String(), "f0=")

	buf.Reset()
	logger.print(INFO, "single", mergeLogFormats())
	assert.Contains(t, buf.String(), "file=")
	assert.Contains(t, buf.String(), "line=")
}

func TestConvertLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, convertLevel("trace"))
	assert.Equal(t, logrus.ErrorLevel, convertLevel("error"))
	assert.Equal(t, logrus.InfoLevel, convertLevel("verbose"))
	assert.True(t, IsValidLevel("debug"))
	assert.False(t, IsValidLevel("verbose"))
}

func TestMergeLogFormats(t *testing.T) {
	merged := mergeLogFormats(LogFormat{"a": 1, "b": 2}, nil, LogFormat{"b": 3})
	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 3, merged["b"])
	assert.Contains(t, merged, "tid")
}

func TestGid(t *testing.T) {
	InitConsole("info")
	var wg sync.WaitGroup
	gids := make(chan uint64, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gids <- GetGID()
		}()
	}
	wg.Wait()
	close(gids)

	seen := map[uint64]bool{}
	for gid := range gids {
		assert.NotZero(t, gid)
		seen[gid] = true
	}
	assert.Len(t, seen, 10)
}
