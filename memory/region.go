// Package memory owns the growable byte region a message is staged in
// before the engine reads it. Page 0 is reserved for engine results, the
// framed message starts at MsgBlockOffset, and the region grows in whole
// 64 KiB pages.
package memory

import (
	"sync"

	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024

	// PageSize is the growth unit of a region.
	PageSize = 64 * KiB

	// MsgBlockOffset is where the first message block is staged.
	MsgBlockOffset = PageSize

	// MinPages is the size of a fresh region: the reserved page plus one
	// page of message blocks.
	MinPages = 2

	maxInt = int(^uint(0) >> 1)
)

// Pages returns the number of whole pages needed to hold size bytes.
func Pages(size int) int {
	return (size + PageSize - 1) / PageSize
}

// Required returns the region capacity needed to stage an l-byte message.
func Required(l int) int {
	return MsgBlockOffset + Pages(l+1+8)*PageSize
}

// Region is a contiguous buffer with one writer (Stage) and one reader
// (Read). A reader never sees a partially staged message.
type Region struct {
	mu     sync.RWMutex
	buf    []byte
	limit  uint64
	staged bool
	blocks int
	length int
}

type Option func(*regionOptions)

type regionOptions struct {
	limit uint64
	pages int
}

// WithLimit caps the region capacity in bytes. 0 leaves it uncapped.
func WithLimit(limit uint64) Option {
	return func(o *regionOptions) {
		o.limit = limit
	}
}

// WithInitialPages sets the starting size, at least MinPages.
func WithInitialPages(pages int) Option {
	return func(o *regionOptions) {
		if pages > o.pages {
			o.pages = pages
		}
	}
}

// NewRegion allocates a region of MinPages pages unless told otherwise.
func NewRegion(opts ...Option) (*Region, error) {
	o := &regionOptions{pages: MinPages}
	for _, opt := range opts {
		opt(o)
	}
	r := &Region{limit: o.limit}
	if err := r.checkLimit(o.pages); err != nil {
		return nil, err
	}
	r.buf = make([]byte, o.pages*PageSize)
	return r, nil
}

func (r *Region) checkLimit(pages int) error {
	if pages > maxInt/PageSize {
		return errors.Errorf(errors.ErrResourceExhausted, "%d pages exceed the address space", pages)
	}
	if size := uint64(pages) * PageSize; r.limit > 0 && size > r.limit {
		logging.CPrint(logging.ERROR, "region growth refused", logging.LogFormat{
			"pages": pages,
			"size":  size,
			"limit": r.limit,
		})
		return errors.Errorf(errors.ErrResourceExhausted, "region of %d bytes exceeds limit %d", size, r.limit)
	}
	return nil
}

// Cap returns the current capacity in bytes.
func (r *Region) Cap() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.buf)
}

// NumPages returns the current capacity in pages.
func (r *Region) NumPages() int {
	return r.Cap() / PageSize
}

// Limit returns the capacity cap, 0 if uncapped.
func (r *Region) Limit() uint64 {
	return r.limit
}

// Grow adds delta pages and returns the previous page count. Existing
// bytes keep their offsets. A refused growth leaves the region unchanged.
func (r *Region) Grow(delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grow(delta)
}

func (r *Region) grow(delta int) (int, error) {
	prev := len(r.buf) / PageSize
	if delta < 0 {
		return prev, errors.Errorf(errors.ErrInvalidState, "cannot shrink region by %d pages", -delta)
	}
	if delta == 0 {
		return prev, nil
	}
	if delta > maxInt/PageSize-prev {
		return prev, errors.Errorf(errors.ErrResourceExhausted, "growing %d pages by %d overflows", prev, delta)
	}
	if err := r.checkLimit(prev + delta); err != nil {
		return prev, err
	}

	grown := make([]byte, (prev+delta)*PageSize)
	copy(grown, r.buf)
	r.buf = grown

	logging.VPrint(logging.DEBUG, "region grown", logging.LogFormat{
		"prev_pages": prev,
		"pages":      prev + delta,
	})
	return prev, nil
}

// Stage frames msg into the region, growing it first when needed, and
// returns the block count. Any earlier message is discarded.
func (r *Region) Stage(msg []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.staged = false
	need := Required(len(msg))
	if need > len(r.buf) {
		if _, err := r.grow(need/PageSize - len(r.buf)/PageSize); err != nil {
			return 0, err
		}
	}

	blocks := sha256.PadInto(r.buf[MsgBlockOffset:], msg)
	r.blocks, r.length, r.staged = blocks, len(msg), true

	logging.VPrint(logging.TRACE, "message staged", logging.LogFormat{
		"len":    len(msg),
		"blocks": blocks,
		"pages":  len(r.buf) / PageSize,
	})
	return blocks, nil
}

// Read hands the framed view of a staged n-block message to fn. The view is
// only valid inside fn; Stage waits until fn returns.
func (r *Region) Read(n int, fn func(framed []byte) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.staged {
		return errors.New(errors.ErrInvalidState, "no message staged")
	}
	if n != r.blocks {
		return errors.Errorf(errors.ErrInvalidState, "block count %d does not match staged %d", n, r.blocks)
	}
	end := MsgBlockOffset + n*sha256.BlockSize
	if n <= 0 || end > len(r.buf) {
		return errors.Errorf(errors.ErrInvalidState, "%d blocks overflow region of %d bytes", n, len(r.buf))
	}
	framed := r.buf[MsgBlockOffset:end]
	if l := sha256.Length(framed); l != uint64(r.length) {
		return errors.Errorf(errors.ErrInvalidState, "length field %d does not match staged length %d", l, r.length)
	}
	return fn(framed)
}

// Staged returns the block count and byte length of the staged message.
func (r *Region) Staged() (blocks, length int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.blocks, r.length, r.staged
}

// PutResult stores b at the start of the reserved page.
func (r *Region) PutResult(b []byte) error {
	if len(b) > MsgBlockOffset {
		return errors.Errorf(errors.ErrInvalidState, "result of %d bytes exceeds reserved page", len(b))
	}
	r.mu.Lock()
	copy(r.buf, b)
	r.mu.Unlock()
	return nil
}

// Result copies n bytes from the start of the reserved page.
func (r *Region) Result(n int) []byte {
	if n > MsgBlockOffset {
		n = MsgBlockOffset
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]byte, n)
	copy(out, r.buf)
	return out
}

// Reset discards the staged message. Capacity is kept.
func (r *Region) Reset() {
	r.mu.Lock()
	r.staged, r.blocks, r.length = false, 0, 0
	r.mu.Unlock()
}
