package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"massnet.org/shasum/errors"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   filepath.Base(os.Args[0]),
	Short: `SHA-256 digests of files, with manifest record and check`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		if err := initLogger(); err != nil {
			return err
		}
		logBasicInfo()
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", RootCmd.Name(), err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 1 for a failed check or comparison and 2 for anything else,
// the convention of sha256sum.
func exitCode(err error) int {
	if errors.Is(err, errors.ErrDigestMismatch) || errors.Is(err, errors.ErrFileNotFound) {
		return 1
	}
	return 2
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+defaultConfigFilename+")")
	RootCmd.PersistentFlags().StringVar(&flagLogDir, "log_dir", "", "directory for log files")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "level of logs (trace, debug, info, warn, error, fatal, panic)")

	viper.BindPFlag("log_dir", RootCmd.PersistentFlags().Lookup("log_dir"))
	viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log_level"))

	sumCmd.Flags().BoolVar(&flagPerf, "perf", false, "report the time spent in each step")
	sumCmd.Flags().IntVar(&flagWorkers, "workers", 0, "number of files hashed in parallel (default from config)")
	RootCmd.AddCommand(sumCmd)

	RootCmd.AddCommand(testCaseCmd)

	recordCmd.Flags().IntVar(&flagWorkers, "workers", 0, "number of files hashed in parallel (default from config)")
	RootCmd.AddCommand(recordCmd)
	checkCmd.Flags().IntVar(&flagWorkers, "workers", 0, "number of files hashed in parallel (default from config)")
	checkCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "don't print OK for each successfully verified file")
	RootCmd.AddCommand(checkCmd)

	RootCmd.AddCommand(genTestDataCmd)

	selfTestCmd.Flags().IntVar(&flagMaxKB, "max-kb", defaultSelfTestMaxKB, "largest input size to compare, in KiB")
	selfTestCmd.Flags().IntVar(&flagStepKB, "step-kb", defaultSelfTestStepKB, "stride of the linear scan, in KiB")
	RootCmd.AddCommand(selfTestCmd)

	RootCmd.AddCommand(versionCmd)
}
