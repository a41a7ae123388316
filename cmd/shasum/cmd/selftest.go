package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/hasher"
	"massnet.org/shasum/logging"
)

const (
	defaultSelfTestMaxKB  = 16 * 1024
	defaultSelfTestStepKB = hasher.DefaultStepKB
)

var (
	flagMaxKB  int
	flagStepKB int
)

// selfTestCmd represents the selftest command
var selfTestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Compare digests of generated inputs with a reference implementation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.CPrint(logging.DEBUG, "selftest called", logging.LogFormat{"max_kb": flagMaxKB, "step_kb": flagStepKB})

		h, err := hasher.New(cfg)
		if err != nil {
			return err
		}
		m, err := h.FindMismatch(flagMaxKB, flagStepKB)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !m.Found {
			fmt.Fprintf(out, "OK: digests match up to %d KiB\n", m.SizeKB)
			return nil
		}
		fmt.Fprintf(out, "FAILED: first mismatch at %d KiB\n     got %s\nexpected %s\n", m.SizeKB, m.Got, m.Want)
		return errors.Errorf(errors.ErrDigestMismatch, "digest differs from reference at %d KiB", m.SizeKB)
	},
}
