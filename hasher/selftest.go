package hasher

import (
	gosha256 "crypto/sha256"

	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/testutil"
)

// DefaultStepKB is the linear scan stride of FindMismatch.
const DefaultStepKB = 1024

// Mismatch describes the smallest generated input whose digest differs
// from the reference digest.
type Mismatch struct {
	Found  bool
	SizeKB int
	Got    sha256.Digest
	Want   sha256.Digest
}

type sumFunc func(msg []byte) (sha256.Digest, error)

// FindMismatch digests generated inputs of up to maxKB KiB and compares
// each with the standard library. It scans in steps of stepKB, then
// bisects down to the KiB between the last match and the first mismatch.
func (h *Hasher) FindMismatch(maxKB, stepKB int) (Mismatch, error) {
	return findMismatch(maxKB, stepKB, h.Sum)
}

func findMismatch(maxKB, stepKB int, sum sumFunc) (Mismatch, error) {
	if maxKB < 0 || stepKB < 1 {
		return Mismatch{}, errors.Errorf(errors.ErrInvalidArgument, "invalid scan range max %d KiB step %d KiB", maxKB, stepKB)
	}

	check := func(kb int) (Mismatch, error) {
		data := testutil.TestData(kb)
		got, err := sum(data)
		if err != nil {
			return Mismatch{}, err
		}
		want := sha256.Digest(gosha256.Sum256(data))
		logging.VPrint(logging.DEBUG, "self test", logging.LogFormat{"size_kb": kb, "match": got == want})
		return Mismatch{Found: got != want, SizeKB: kb, Got: got, Want: want}, nil
	}

	lo := -1
	var first Mismatch
	for kb := 0; ; kb += stepKB {
		if kb > maxKB {
			kb = maxKB
		}
		m, err := check(kb)
		if err != nil {
			return Mismatch{}, err
		}
		if m.Found {
			first = m
			break
		}
		if kb == maxKB {
			return Mismatch{SizeKB: maxKB}, nil
		}
		lo = kb
	}

	for first.SizeKB-lo > 1 {
		mid := lo + (first.SizeKB-lo)/2
		m, err := check(mid)
		if err != nil {
			return Mismatch{}, err
		}
		if m.Found {
			first = m
		} else {
			lo = mid
		}
	}
	logging.CPrint(logging.WARN, "digest differs from reference", logging.LogFormat{
		"size_kb": first.SizeKB,
		"got":     first.Got,
		"want":    first.Want,
	})
	return first, nil
}
