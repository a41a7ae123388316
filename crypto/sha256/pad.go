package sha256

import "encoding/binary"

// BlockCount returns the number of 64-byte blocks needed to frame a message
// of l bytes: ⌈(l+9)/64⌉. The terminator and the length field are always
// counted, whether or not they fit after the last data byte.
func BlockCount(l int) int {
	return (l + trailerSize + BlockSize - 1) / BlockSize
}

// FramedLen returns BlockCount(l) * BlockSize.
func FramedLen(l int) int {
	return BlockCount(l) * BlockSize
}

// Pad returns msg framed into whole blocks: the data, 0x80, zero fill and
// the big-endian bit length in the last 8 bytes.
func Pad(msg []byte) []byte {
	framed := make([]byte, FramedLen(len(msg)))
	PadInto(framed, msg)
	return framed
}

// PadInto frames msg into dst and returns the block count. Every padding
// byte is written, so dst may hold stale data from an earlier message.
// dst must be at least FramedLen(len(msg)) bytes long.
func PadInto(dst, msg []byte) int {
	blocks := BlockCount(len(msg))
	n := blocks * BlockSize
	if len(dst) < n {
		panic("sha256: framing buffer too small")
	}
	dst = dst[:n]

	copy(dst, msg)
	dst[len(msg)] = terminator
	fill := dst[len(msg)+1 : n-8]
	for i := range fill {
		fill[i] = 0
	}
	PutLength(dst, uint64(len(msg)))
	return blocks
}

// PutLength writes the bit length of an l-byte message into the last 8
// bytes of framed.
func PutLength(framed []byte, l uint64) {
	binary.BigEndian.PutUint64(framed[len(framed)-8:], l<<3)
}

// Length reads back the byte length encoded in the last 8 bytes of framed.
func Length(framed []byte) uint64 {
	return binary.BigEndian.Uint64(framed[len(framed)-8:]) >> 3
}
