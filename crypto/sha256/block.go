// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// SHA256 block step.
// In its own file so that a faster assembly or C version
// can be substituted easily.

package sha256

// Registers holds the working variables a..h.
type Registers [8]uint32

func bigSigma0(a uint32) uint32 {
	return rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
}

func bigSigma1(e uint32) uint32 {
	return rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
}

func choice(e, f, g uint32) uint32 {
	return (e & f) ^ (^e & g)
}

func majority(a, b, c uint32) uint32 {
	return (a & b) ^ (a & c) ^ (b & c)
}

// Round runs one compression round with constant k and schedule word w.
func (r *Registers) Round(k, w uint32) {
	a, b, c, d, e, f, g, h := r[0], r[1], r[2], r[3], r[4], r[5], r[6], r[7]

	t1 := h + bigSigma1(e) + choice(e, f, g) + k + w
	t2 := bigSigma0(a) + majority(a, b, c)

	r[7] = g
	r[6] = f
	r[5] = e
	r[4] = d + t1
	r[3] = c
	r[2] = b
	r[1] = a
	r[0] = t1 + t2
}

// Rounds seeds the registers from st and runs the first n rounds over w
// without folding the result back. n is clamped to [0, 64].
func (st *State) Rounds(w *Schedule, n int) Registers {
	if n > Rounds {
		n = Rounds
	}
	r := Registers(*st)
	for t := 0; t < n; t++ {
		r.Round(_K[t], w[t])
	}
	return r
}

// Compress runs all 64 rounds over w and adds the working variables into st.
func (st *State) Compress(w *Schedule) {
	r := st.Rounds(w, Rounds)
	for i := range st {
		st[i] += r[i]
	}
}

// blockGeneric compresses every whole block of p into st, in order.
func blockGeneric(st *State, p []byte) {
	var w Schedule
	for len(p) >= chunk {
		w.Fill(p[:chunk])
		st.Compress(&w)
		p = p[chunk:]
	}
}

// Blocks compresses the whole blocks of p into st. Trailing bytes that do
// not fill a block are ignored.
func (st *State) Blocks(p []byte) {
	blockGeneric(st, p)
}
