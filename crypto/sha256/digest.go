package sha256

import (
	"encoding/hex"

	"massnet.org/shasum/errors"
)

// Digest represents a 32-byte SHA-256 digest.
type Digest [Size]byte

// Bytes returns a copy of the digest as a byte slice.
func (d Digest) Bytes() []byte {
	bs := make([]byte, Size)
	copy(bs, d[:])
	return bs
}

// String renders the digest as 64 lowercase hex characters.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DecodeString decodes a digest from its hex form,
// the length of str must be 64.
func DecodeString(str string) (Digest, error) {
	if len(str) != hex.EncodedLen(Size) {
		return Digest{}, errors.Errorf(errors.ErrInvalidDigestLength, "digest string has %d characters, want %d", len(str), hex.EncodedLen(Size))
	}
	b, err := hex.DecodeString(str)
	if err != nil {
		return Digest{}, errors.Wrap(errors.ErrDecodeDigest, err, "decode digest")
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}
