package sha256

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) Digest {
	st := NewState()
	st.Blocks(Pad(data))
	return st.Digest()
}

// SumFramed hashes a message that has already been framed into blocks.
// len(framed) must be a multiple of BlockSize.
func SumFramed(framed []byte) Digest {
	st := NewState()
	st.Blocks(framed)
	return st.Digest()
}
