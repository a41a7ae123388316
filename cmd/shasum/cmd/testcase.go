package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/hasher"
	"massnet.org/shasum/logging"
)

// testCaseCmd represents the testcase command
var testCaseCmd = &cobra.Command{
	Use:   "testcase [n]",
	Short: "Hash built-in test case n, or every test case, and compare with the expected digest",
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(0, 1)(cmd, args); err != nil {
			logging.CPrint(logging.ERROR, "wrong argument count", logging.LogFormat{"count": len(args)})
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cases := make([]int, 0, len(hasher.TestCases))
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidArgument, err, "invalid test case %q", args[0])
			}
			cases = append(cases, n)
		} else {
			for n := range hasher.TestCases {
				cases = append(cases, n)
			}
		}
		logging.CPrint(logging.DEBUG, "testcase called", logging.LogFormat{"cases": cases})

		h, err := hasher.New(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var failed error
		for _, n := range cases {
			d, err := h.RunTestCase(n)
			switch {
			case err == nil:
				fmt.Fprintf(out, "test case %d (%s): OK %s\n", n, hasher.TestCases[n].Name, d)
			case errors.Is(err, errors.ErrDigestMismatch):
				fmt.Fprintf(out, "test case %d (%s): FAILED\n     got %s\nexpected %s\n", n, hasher.TestCases[n].Name, d, hasher.TestCases[n].Digest)
				failed = err
			default:
				return err
			}
		}
		return failed
	},
}
