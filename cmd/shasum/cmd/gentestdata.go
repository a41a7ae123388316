package cmd

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/testutil"
)

// genTestDataCmd represents the gentestdata command
var genTestDataCmd = &cobra.Command{
	Use:   "gentestdata <size_kb> [file]",
	Short: "Write deterministic test data of size_kb KiB to file or stdout",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sizeKB, err := strconv.Atoi(args[0])
		if err != nil || sizeKB < 0 {
			return errors.Errorf(errors.ErrInvalidArgument, "invalid size %q", args[0])
		}

		var w io.Writer = cmd.OutOrStdout()
		if len(args) == 2 {
			f, err := os.Create(args[1])
			if err != nil {
				return errors.Wrapf(errors.ErrWriteFile, err, "create %s", args[1])
			}
			defer f.Close()
			w = f
		}
		if err = testutil.GenTestData(w, sizeKB); err != nil {
			return errors.Wrap(errors.ErrWriteFile, err, "write test data")
		}
		logging.CPrint(logging.DEBUG, "test data written", logging.LogFormat{"size_kb": sizeKB, "args": args})
		return nil
	},
}
