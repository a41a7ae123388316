package testutil

import (
	"os"
	"testing"
)

const envUseCI = "SHASUM_CI"

// SkipCI skips long-running sweeps unless SHASUM_CI is set.
func SkipCI(t *testing.T) {
	if os.Getenv(envUseCI) == "" {
		t.Skip("Skip SHASUM CI")
	}
}
