package store

import (
	"encoding/binary"
	"time"

	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
)

// recordSize is the encoded length of a Record: size, mtime, digest.
const recordSize = 8 + 8 + sha256.Size

// Record is what the manifest remembers about one file.
type Record struct {
	Size    int64
	ModTime time.Time
	Digest  sha256.Digest
}

// Bytes encodes r as big-endian size, mtime in unix nanoseconds, then the
// raw digest.
func (r *Record) Bytes() []byte {
	buf := make([]byte, recordSize)
	binary.BigEndian.PutUint64(buf[0:8], uint64(r.Size))
	binary.BigEndian.PutUint64(buf[8:16], uint64(r.ModTime.UnixNano()))
	copy(buf[16:], r.Digest[:])
	return buf
}

// DecodeRecord is the inverse of Record.Bytes.
func DecodeRecord(b []byte) (Record, error) {
	if len(b) != recordSize {
		return Record{}, errors.Errorf(errors.ErrStoreRecord, "record of %d bytes, want %d", len(b), recordSize)
	}
	var r Record
	r.Size = int64(binary.BigEndian.Uint64(b[0:8]))
	r.ModTime = time.Unix(0, int64(binary.BigEndian.Uint64(b[8:16])))
	copy(r.Digest[:], b[16:])
	return r, nil
}

// Matches reports whether r was taken from a file of this size and mtime.
func (r *Record) Matches(size int64, modTime time.Time) bool {
	return r.Size == size && r.ModTime.Equal(modTime)
}
