// Package hasher digests files on a pool of workers. Every job owns its own
// region and engine, so digests run in parallel while each one stays
// strictly sequential.
package hasher

import (
	"context"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/orcaman/concurrent-map"
	"github.com/panjf2000/ants/v2"
	set "gopkg.in/fatih/set.v0"
	"massnet.org/shasum/config"
	"massnet.org/shasum/crypto/sha256"
	"massnet.org/shasum/engine"
	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/perf"
	"massnet.org/shasum/service"
)

const serviceName = "hasher"

// Result is the outcome of digesting one file. Err is set instead of
// Digest when the file could not be digested.
type Result struct {
	Path    string
	Size    int64
	ModTime time.Time
	Digest  sha256.Digest
	Cached  bool
	Err     error
}

type Hasher struct {
	*service.BaseService
	workers int
	limit   uint64
	pool    *ants.Pool
	cache   *digestCache
}

// New builds a stopped hasher from the hasher and engine sections of cfg.
func New(cfg *config.Config) (*Hasher, error) {
	if err := config.CheckConfig(cfg); err != nil {
		return nil, err
	}
	h := &Hasher{
		workers: cfg.Hasher.Workers,
		limit:   cfg.MemoryLimit(),
		cache:   newDigestCache(cfg.Hasher.CacheEntries),
	}
	h.BaseService = service.NewBaseService(h, serviceName)
	return h, nil
}

func (h *Hasher) OnStart() error {
	pool, err := ants.NewPool(h.workers)
	if err != nil {
		return errors.Wrap(errors.ErrServiceState, err, "create worker pool")
	}
	h.pool = pool
	logging.CPrint(logging.DEBUG, "hasher started", logging.LogFormat{
		"workers": h.workers,
		"limit":   h.limit,
	})
	return nil
}

func (h *Hasher) OnStop() error {
	h.pool.Release()
	h.cache.Clear()
	logging.CPrint(logging.DEBUG, "hasher stopped")
	return nil
}

func (h *Hasher) Workers() int {
	return h.workers
}

// Limit is the memory cap of each job's region.
func (h *Hasher) Limit() uint64 {
	return h.limit
}

// Sum digests msg on a fresh engine, independent of the pool.
func (h *Hasher) Sum(msg []byte) (sha256.Digest, error) {
	e, err := engine.NewWithLimit(h.limit)
	if err != nil {
		return sha256.Digest{}, err
	}
	return e.Sum(msg)
}

// SumFile digests one file on the calling goroutine, recording its steps
// on tr.
func (h *Hasher) SumFile(path string, tr perf.Tracker) Result {
	res := Result{Path: path}

	tr.AddMark("Read target file")
	fi, err := os.Stat(path)
	if err != nil {
		res.Err = statError(path, err)
		return res
	}
	if fi.IsDir() {
		res.Err = errors.Errorf(errors.ErrReadFile, "%s is a directory", path)
		return res
	}
	res.Size, res.ModTime = fi.Size(), fi.ModTime()

	key := newFileKey(path, res.Size, res.ModTime)
	if d, ok := h.cache.Get(key); ok {
		res.Digest, res.Cached = d, true
		return res
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		res.Err = errors.Wrapf(errors.ErrReadFile, err, "read %s", path)
		return res
	}

	tr.AddMark("Populate memory")
	e, err := engine.NewWithLimit(h.limit)
	if err != nil {
		res.Err = err
		return res
	}
	blocks, err := e.Region().Stage(data)
	if err != nil {
		res.Err = err
		return res
	}

	tr.AddMark("Calculate SHA256 hash")
	if res.Digest, err = e.Hash(blocks); err != nil {
		res.Err = err
		return res
	}
	h.cache.Add(key, res.Digest)

	tr.AddMark("Report result")
	return res
}

// HashFiles digests paths on the worker pool and returns one result per
// distinct path, in first-seen order. Once ctx is done no further jobs are
// submitted; running jobs finish and the rest report ctx's error.
func (h *Hasher) HashFiles(ctx context.Context, paths []string) ([]Result, error) {
	if !h.Started() {
		return nil, service.ErrStopped
	}

	seen := set.New(set.ThreadSafe).(*set.Set)
	unique := make([]string, 0, len(paths))
	for _, path := range paths {
		if seen.Has(path) {
			continue
		}
		seen.Add(path)
		unique = append(unique, path)
	}

	results := cmap.New()
	var wg sync.WaitGroup
	for _, path := range unique {
		if err := ctx.Err(); err != nil {
			results.Set(path, Result{Path: path, Err: errors.Wrap(errors.ErrUnknown, err, "hashing cancelled")})
			continue
		}
		p := path
		wg.Add(1)
		err := h.pool.Submit(func() {
			defer wg.Done()
			results.Set(p, h.SumFile(p, perf.New(false)))
		})
		if err != nil {
			wg.Done()
			results.Set(p, Result{Path: p, Err: errors.Wrap(errors.ErrServiceState, err, "submit job")})
		}
	}
	wg.Wait()

	out := make([]Result, 0, len(unique))
	for _, path := range unique {
		v, _ := results.Get(path)
		res := v.(Result)
		if res.Err != nil {
			logging.CPrint(logging.WARN, "fail to hash file", logging.LogFormat{"path": path, "err": res.Err})
		}
		out = append(out, res)
	}
	logging.CPrint(logging.DEBUG, "files hashed", logging.LogFormat{
		"files":  len(out),
		"cached": h.cache.Len(),
	})
	return out, nil
}

func statError(path string, err error) error {
	if os.IsNotExist(err) {
		return errors.Errorf(errors.ErrFileNotFound, "file %q does not exist", path)
	}
	return errors.Wrapf(errors.ErrReadFile, err, "stat %s", path)
}
