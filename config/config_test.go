package config_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"massnet.org/shasum/config"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/memory"
)

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, ioutil.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestLoadConfig(t *testing.T) {
	filename := writeConfig(t, `{
		"log": {"log_level": "debug"},
		"hasher": {"workers": 3}
	}`)
	cfg, err := config.LoadConfig(filename)
	require.NoError(t, err)
	require.NoError(t, config.CheckConfig(cfg))

	assert.Equal(t, "debug", cfg.Log.LogLevel)
	assert.Equal(t, "logs", cfg.Log.LogDir)
	assert.Equal(t, 3, cfg.Hasher.Workers)
	assert.Equal(t, config.DefaultHasher().CacheEntries, cfg.Hasher.CacheEntries)
	assert.Equal(t, "leveldb", cfg.Store.DBType)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfigMalformed(t *testing.T) {
	_, err := config.LoadConfig(writeConfig(t, `{"log": `))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestCheckConfigFillsSections(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, config.CheckConfig(cfg))
	assert.Equal(t, config.DefaultLog(), cfg.Log)
	assert.Equal(t, config.DefaultEngine(), cfg.Engine)
	assert.Equal(t, config.DefaultHasher(), cfg.Hasher)
	assert.Equal(t, config.DefaultStore(), cfg.Store)
}

func TestCheckConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *config.Config)
		valid  bool
	}{
		{"default", func(cfg *config.Config) {}, true},
		{"bad level", func(cfg *config.Config) { cfg.Log.LogLevel = "verbose" }, false},
		{"trace level", func(cfg *config.Config) { cfg.Log.LogLevel = "trace" }, true},
		{"zero workers", func(cfg *config.Config) { cfg.Hasher.Workers = 0 }, false},
		{"negative cache", func(cfg *config.Config) { cfg.Hasher.CacheEntries = -1 }, false},
		{"no cache", func(cfg *config.Config) { cfg.Hasher.CacheEntries = 0 }, true},
		{"tiny limit", func(cfg *config.Config) { cfg.Engine.MemoryLimit = memory.PageSize }, false},
		{"minimum limit", func(cfg *config.Config) { cfg.Engine.MemoryLimit = memory.MinPages * memory.PageSize }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			test.modify(cfg)
			err := config.CheckConfig(cfg)
			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, errors.ErrConfig), "got %v", err)
			}
		})
	}
}

func TestMemoryLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, memory.SystemLimit() > 0, cfg.MemoryLimit() > 0)

	cfg.Engine.MemoryLimit = 8 * memory.MiB
	assert.Equal(t, uint64(8*memory.MiB), cfg.MemoryLimit())
}
