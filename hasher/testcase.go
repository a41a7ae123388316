package hasher

import (
	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
)

// TestCase is a built-in input with its known digest.
type TestCase struct {
	Name   string
	Data   []byte
	Digest string
}

var TestCases = []TestCase{
	{
		Name:   "empty",
		Data:   []byte{},
		Digest: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	},
	{
		Name:   "ABCD",
		Data:   []byte("ABCD"),
		Digest: "e12e115acf4552b2568b55e93cbd39394c4ef81c82447fafc997882a02d23677",
	},
}

// RunTestCase digests built-in case n. A wrong digest is returned along
// with an ErrDigestMismatch error.
func (h *Hasher) RunTestCase(n int) (sha256.Digest, error) {
	if n < 0 || n >= len(TestCases) {
		return sha256.Digest{}, errors.Errorf(errors.ErrInvalidArgument, "test case %d out of range [0, %d)", n, len(TestCases))
	}
	tc := TestCases[n]
	d, err := h.Sum(tc.Data)
	if err != nil {
		return sha256.Digest{}, err
	}
	if d.String() != tc.Digest {
		return d, errors.Errorf(errors.ErrDigestMismatch, "test case %d (%s): got %s, expected %s", n, tc.Name, d, tc.Digest)
	}
	return d, nil
}
