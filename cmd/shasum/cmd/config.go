package cmd

import (
	"github.com/spf13/viper"
	"massnet.org/shasum/config"
	"massnet.org/shasum/logging"
)

const (
	defaultConfigFilename = config.DefaultConfigFilename
	envPrefix             = "shasum"
)

var (
	flagLogDir   string
	flagLogLevel string
	flagWorkers  int
	cfgFile      string
	cfg          = config.DefaultConfig()
)

// initConfig loads the config file, then lets SHASUM_* environment
// variables and command line flags override it.
func initConfig() error {
	filename := cfgFile
	if filename == "" {
		filename = defaultConfigFilename
	}
	loaded, err := config.LoadConfig(filename)
	if err != nil {
		return err
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	if logDir := viper.GetString("log_dir"); logDir != "" {
		loaded.Log.LogDir = logDir
	}
	if logLevel := viper.GetString("log_level"); logLevel != "" {
		loaded.Log.LogLevel = logLevel
	}
	if flagWorkers != 0 {
		loaded.Hasher.Workers = flagWorkers
	}

	if err = config.CheckConfig(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// initLogger initializes logging module by config.
func initLogger() error {
	return logging.Init(cfg.Log.LogDir, config.DefaultLoggingFilename, cfg.Log.LogLevel, cfg.Log.LogAge, cfg.Log.DisableCPrint)
}

// logBasicInfo logs the basic info on initializing.
func logBasicInfo() {
	logging.VPrint(logging.INFO, "using config", logging.LogFormat{
		"file":    cfgFile,
		"workers": cfg.Hasher.Workers,
		"limit":   cfg.Engine.MemoryLimit,
		"db_type": cfg.Store.DBType,
	})
}
