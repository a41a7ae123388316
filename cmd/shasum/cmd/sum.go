package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/hasher"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/perf"
)

var flagPerf bool

// sumCmd represents the sum command
var sumCmd = &cobra.Command{
	Use:   "sum <file>...",
	Short: "Print SHA-256 digests of files",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.CPrint(logging.DEBUG, "sum called", logging.LogFormat{"files": len(args), "perf": flagPerf})

		tracker := perf.New(flagPerf)
		h, err := startHasher()
		if err != nil {
			return err
		}
		defer h.Stop()

		var results []hasher.Result
		if len(args) == 1 {
			results = []hasher.Result{h.SumFile(args[0], tracker)}
		} else {
			tracker.AddMark("Calculate SHA256 hashes")
			if results, err = h.HashFiles(context.Background(), args); err != nil {
				return err
			}
			tracker.AddMark("Report result")
		}

		failed, first := printResults(cmd.OutOrStdout(), cmd.OutOrStderr(), results)
		tracker.Report(cmd.OutOrStdout())
		if failed > 0 {
			return errors.Errorf(errors.CodeOf(first), "%d of %d files could not be hashed", failed, len(results))
		}
		return nil
	},
}

func startHasher() (*hasher.Hasher, error) {
	h, err := hasher.New(cfg)
	if err != nil {
		return nil, err
	}
	if err = h.Start(); err != nil {
		return nil, err
	}
	return h, nil
}

// printResults writes "<digest>  <path>" lines in sha256sum format and
// returns the number of results that carry an error, and the first one.
func printResults(out, errOut io.Writer, results []hasher.Result) (failed int, first error) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", res.Path, res.Err)
			if first == nil {
				first = res.Err
			}
			failed++
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", res.Digest, res.Path)
	}
	return failed, first
}
