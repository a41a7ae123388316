// Package store keeps a manifest of file digests, the persistent side of
// "shasum record" and "shasum check".
package store

import (
	"os"
	"path/filepath"

	"massnet.org/shasum/errors"
	"massnet.org/shasum/logging"
	"massnet.org/shasum/store/storage"
	_ "massnet.org/shasum/store/storage/ldbstorage"
)

const dbDirname = "db"

var recordPrefix = []byte("f/")

// Manifest maps file paths to their last recorded digest.
type Manifest struct {
	dir  string
	stor storage.Storage
}

// Open opens the manifest in dir. With create set, a missing manifest is
// created, otherwise it is an ErrStoreNotFound error.
func Open(dbType, dir string, create bool) (*Manifest, error) {
	dbPath := filepath.Join(dir, dbDirname)
	_, err := os.Stat(dbPath)
	exists := err == nil
	if !exists && !create {
		return nil, errors.Errorf(errors.ErrStoreNotFound, "no manifest in %s", dir)
	}
	if err = storage.CheckCompatibility(dbType, dir); err != nil {
		return nil, err
	}

	var stor storage.Storage
	if exists {
		stor, err = storage.OpenStorage(dbType, dbPath)
	} else {
		stor, err = storage.CreateStorage(dbType, dbPath)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStore, err, "open manifest %s", dir)
	}
	logging.CPrint(logging.DEBUG, "manifest opened", logging.LogFormat{"dir": dir, "db_type": dbType, "new": !exists})
	return &Manifest{dir: dir, stor: stor}, nil
}

func recordKey(path string) []byte {
	key := make([]byte, 0, len(recordPrefix)+len(path))
	key = append(key, recordPrefix...)
	return append(key, path...)
}

func (m *Manifest) Dir() string {
	return m.dir
}

func (m *Manifest) Close() error {
	return m.stor.Close()
}

// Put records a single file.
func (m *Manifest) Put(path string, rec Record) error {
	if path == "" {
		return errors.New(errors.ErrInvalidArgument, "empty path")
	}
	return errors.Wrap(errors.ErrStore, m.stor.Put(recordKey(path), rec.Bytes()), "put record")
}

// PutAll records several files in one atomic write.
func (m *Manifest) PutAll(records map[string]Record) error {
	batch := m.stor.NewBatch()
	defer batch.Release()
	for path, rec := range records {
		if path == "" {
			return errors.New(errors.ErrInvalidArgument, "empty path")
		}
		if err := batch.Put(recordKey(path), rec.Bytes()); err != nil {
			return errors.Wrap(errors.ErrStore, err, "batch put record")
		}
	}
	return errors.Wrap(errors.ErrStore, m.stor.Write(batch), "write records")
}

// Get returns the record for path, or an ErrStoreNotFound error.
func (m *Manifest) Get(path string) (Record, error) {
	data, err := m.stor.Get(recordKey(path))
	if err != nil {
		if err == storage.ErrNotFound {
			return Record{}, errors.Errorf(errors.ErrStoreNotFound, "no record for %s", path)
		}
		return Record{}, errors.Wrap(errors.ErrStore, err, "get record")
	}
	return DecodeRecord(data)
}

func (m *Manifest) Delete(path string) error {
	return errors.Wrap(errors.ErrStore, m.stor.Delete(recordKey(path)), "delete record")
}

// ForEach calls fn for every record in path order. An error from fn stops
// the walk and is returned.
func (m *Manifest) ForEach(fn func(path string, rec Record) error) error {
	iter := m.stor.NewIterator(storage.BytesPrefix(recordPrefix))
	defer iter.Release()
	for iter.Next() {
		rec, err := DecodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if err = fn(string(iter.Key()[len(recordPrefix):]), rec); err != nil {
			return err
		}
	}
	return errors.Wrap(errors.ErrStore, iter.Error(), "iterate records")
}

// Count returns the number of recorded files.
func (m *Manifest) Count() (int, error) {
	n := 0
	err := m.ForEach(func(string, Record) error {
		n++
		return nil
	})
	return n, err
}
