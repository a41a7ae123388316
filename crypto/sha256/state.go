package sha256

import (
	"encoding/binary"

	"massnet.org/shasum/errors"
)

const (
	magic256      = "sha\x03"
	marshaledSize = len(magic256) + Size
)

// State is the running hash value H[0..7]. It is the only thing carried
// from one block to the next.
type State [8]uint32

// NewState returns the FIPS 180-4 initial hash value.
func NewState() State {
	return State{init0, init1, init2, init3, init4, init5, init6, init7}
}

// Reset restores the initial hash value.
func (st *State) Reset() {
	*st = NewState()
}

// Digest serializes the state as 8 big-endian words.
func (st State) Digest() Digest {
	var d Digest
	for i, v := range st {
		binary.BigEndian.PutUint32(d[i*4:], v)
	}
	return d
}

// StateFromDigest is the inverse of State.Digest.
func StateFromDigest(d Digest) State {
	var st State
	for i := range st {
		st[i] = binary.BigEndian.Uint32(d[i*4:])
	}
	return st
}

func (st State) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic256...)
	d := st.Digest()
	return append(b, d[:]...), nil
}

func (st *State) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic256) || string(b[:len(magic256)]) != magic256 {
		return errors.New(errors.ErrDecodeState, "invalid hash state identifier")
	}
	if len(b) != marshaledSize {
		return errors.Errorf(errors.ErrDecodeState, "invalid hash state size %d", len(b))
	}
	var d Digest
	copy(d[:], b[len(magic256):])
	*st = StateFromDigest(d)
	return nil
}
