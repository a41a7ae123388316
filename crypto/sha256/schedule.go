package sha256

import (
	"encoding/binary"
	"math/bits"
)

// Schedule is the 64-word message schedule W of one block.
type Schedule [Rounds]uint32

// NewSchedule expands one 64-byte block.
func NewSchedule(block []byte) *Schedule {
	w := new(Schedule)
	w.Fill(block)
	return w
}

// Fill loads the block's 16 big-endian words and derives W[16..63].
// Nothing from a previous block survives.
func (w *Schedule) Fill(block []byte) {
	_ = block[BlockSize-1]
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	w.expand()
}

func (w *Schedule) expand() {
	for t := 16; t < Rounds; t++ {
		w[t] = sigma1(w[t-2]) + w[t-7] + sigma0(w[t-15]) + w[t-16]
	}
}

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

func sigma0(x uint32) uint32 {
	return rotr(x, 7) ^ rotr(x, 18) ^ (x >> 3)
}

func sigma1(x uint32) uint32 {
	return rotr(x, 17) ^ rotr(x, 19) ^ (x >> 10)
}
