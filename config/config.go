package config

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/memory"
)

const (
	DefaultConfigFilename  = "config.json"
	DefaultLoggingFilename = "shasum"
	DefaultLogLevel        = logging.InfoLevel
	defaultLogDirname      = "logs"
	defaultLogAge          = 7
	defaultDBType          = "leveldb"
	defaultCacheEntries    = 1024
	defaultMemoryLimit     = 0
)

type Config struct {
	Log    *Log    `json:"log"`
	Engine *Engine `json:"engine"`
	Hasher *Hasher `json:"hasher"`
	Store  *Store  `json:"store"`
}

type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	LogAge        uint32 `json:"log_age"`
	DisableCPrint bool   `json:"disable_cprint"`
}

// Engine bounds the memory a single digest may stage. MemoryLimit 0 means
// the memory currently available on the host.
type Engine struct {
	MemoryLimit uint64 `json:"memory_limit"`
}

type Hasher struct {
	Workers      int `json:"workers"`
	CacheEntries int `json:"cache_entries"`
}

type Store struct {
	DBType string `json:"db_type"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:    DefaultLog(),
		Engine: DefaultEngine(),
		Hasher: DefaultHasher(),
		Store:  DefaultStore(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        defaultLogDirname,
		LogLevel:      DefaultLogLevel,
		LogAge:        defaultLogAge,
		DisableCPrint: false,
	}
}

func DefaultEngine() *Engine {
	return &Engine{
		MemoryLimit: defaultMemoryLimit,
	}
}

func DefaultHasher() *Hasher {
	return &Hasher{
		Workers:      DefaultWorkers(),
		CacheEntries: defaultCacheEntries,
	}
}

func DefaultStore() *Store {
	return &Store{
		DBType: defaultDBType,
	}
}

// LoadConfig reads a JSON config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(errors.ErrReadFile, err, "read config %s", filename)
	}
	cfg := DefaultConfig()
	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrConfig, err, "parse config %s", filename)
	}
	return cfg, nil
}

func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}

	if cfg.Engine == nil {
		cfg.Engine = DefaultEngine()
	}

	if cfg.Hasher == nil {
		cfg.Hasher = DefaultHasher()
	}

	if cfg.Store == nil {
		cfg.Store = DefaultStore()
	}

	// Checks for log
	if cfg.Log.LogDir == "" {
		cfg.Log.LogDir = defaultLogDirname
	}
	if !logging.IsValidLevel(cfg.Log.LogLevel) {
		return errors.Errorf(errors.ErrConfig, "invalid log level %q", cfg.Log.LogLevel)
	}

	// Checks for engine
	if cfg.Engine.MemoryLimit != 0 && cfg.Engine.MemoryLimit < memory.MinPages*memory.PageSize {
		return errors.Errorf(errors.ErrConfig, "memory limit %d below minimum region size %d",
			cfg.Engine.MemoryLimit, memory.MinPages*memory.PageSize)
	}

	// Checks for hasher
	if cfg.Hasher.Workers < 1 {
		return errors.Errorf(errors.ErrConfig, "invalid worker count %d", cfg.Hasher.Workers)
	}
	if cfg.Hasher.CacheEntries < 0 {
		return errors.Errorf(errors.ErrConfig, "invalid cache entries %d", cfg.Hasher.CacheEntries)
	}

	// Checks for store
	if cfg.Store.DBType == "" {
		cfg.Store.DBType = defaultDBType
	}

	return nil
}

// MemoryLimit resolves the configured engine limit, 0 meaning what the
// host reports as available.
func (cfg *Config) MemoryLimit() uint64 {
	if cfg.Engine == nil || cfg.Engine.MemoryLimit == 0 {
		return memory.SystemLimit()
	}
	return cfg.Engine.MemoryLimit
}
