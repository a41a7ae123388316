// Package engine runs the SHA-256 compression loop over a message staged
// in a memory.Region. One Engine computes one digest at a time.
package engine

import (
	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/memory"
)

// Engine hashes messages staged in the region it owns.
type Engine struct {
	region *memory.Region
}

// New returns an engine reading from region.
func New(region *memory.Region) *Engine {
	return &Engine{region: region}
}

// NewWithLimit allocates a fresh region capped at limit bytes, 0 uncapped.
func NewWithLimit(limit uint64) (*Engine, error) {
	region, err := memory.NewRegion(memory.WithLimit(limit))
	if err != nil {
		return nil, err
	}
	return New(region), nil
}

// Region returns the region the engine reads from.
func (e *Engine) Region() *memory.Region {
	return e.region
}

// Hash compresses the staged message of blocks blocks, in order, and
// returns its digest. The digest is also left in the region's reserved
// page. Either the whole digest is returned or an error, never both.
func (e *Engine) Hash(blocks int) (sha256.Digest, error) {
	var st sha256.State
	err := e.region.Read(blocks, func(framed []byte) error {
		if len(framed) != blocks*sha256.BlockSize {
			return errors.Errorf(errors.ErrInvalidState, "framed view of %d bytes for %d blocks", len(framed), blocks)
		}
		st = sha256.NewState()
		st.Blocks(framed)
		return nil
	})
	if err != nil {
		logging.CPrint(logging.ERROR, "hash aborted", logging.LogFormat{"blocks": blocks, "err": err})
		return sha256.Digest{}, err
	}

	d := st.Digest()
	if err := e.region.PutResult(d[:]); err != nil {
		return sha256.Digest{}, err
	}
	logging.VPrint(logging.DEBUG, "hash computed", logging.LogFormat{"blocks": blocks, "digest": d})
	return d, nil
}

// Sum stages msg and hashes it.
func (e *Engine) Sum(msg []byte) (sha256.Digest, error) {
	blocks, err := e.region.Stage(msg)
	if err != nil {
		return sha256.Digest{}, err
	}
	return e.Hash(blocks)
}
