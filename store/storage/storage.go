// Package storage is the key/value layer under the digest manifest.
// Backends register a StorageDriver from their init function.
package storage

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"massnet.org/shasum/errors"
)

const (
	// StorageV1
	//		- initial
	StorageV1 int32 = 1 + iota

	CurrentStorageVersion int32 = StorageV1
)

const versionFilename = ".ver"

var (
	ErrDbUnknownType       = errors.New(errors.ErrStore, "non-existent database type")
	ErrInvalidKey          = errors.New(errors.ErrStore, "invalid key")
	ErrInvalidBatch        = errors.New(errors.ErrStore, "invalid batch")
	ErrNotFound            = errors.New(errors.ErrStoreNotFound, "not found")
	ErrIncompatibleStorage = errors.New(errors.ErrStore, "incompatible storage")
)

// Range is a key range.
type Range struct {
	// Start of the key range, include in the range.
	Start []byte

	// Limit of the key range, not include in the range.
	Limit []byte
}

func BytesPrefix(prefix []byte) *Range {
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}
	return &Range{Start: prefix, Limit: limit}
}

type Iterator interface {
	Release()
	Error() error
	Seek(key []byte) bool
	Next() bool
	Key() []byte
	Value() []byte
}

type Batch interface {
	Release()
	Put(key, value []byte) error
	Delete(key []byte) error
	Reset()
}

type Storage interface {
	Close() error
	// Get returns ErrNotFound if key not exist
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Write(batch Batch) error
	NewBatch() Batch
	NewIterator(slice *Range) Iterator
}

type StorageDriver struct {
	DbType        string
	CreateStorage func(storPath string) (s Storage, err error)
	OpenStorage   func(storPath string) (s Storage, err error)
}

var drivers []StorageDriver

func RegisterDriver(instance StorageDriver) {
	for _, drv := range drivers {
		if drv.DbType == instance.DbType {
			return
		}
	}
	drivers = append(drivers, instance)
}

// CreateStorage initializes and opens a database.
func CreateStorage(dbtype, dbpath string) (s Storage, err error) {
	for _, drv := range drivers {
		if drv.DbType == dbtype {
			return drv.CreateStorage(dbpath)
		}
	}
	return nil, ErrDbUnknownType
}

// OpenStorage opens an existing database.
func OpenStorage(dbtype, dbpath string) (s Storage, err error) {
	for _, drv := range drivers {
		if drv.DbType == dbtype {
			return drv.OpenStorage(dbpath)
		}
	}
	return nil, ErrDbUnknownType
}

func RegisteredDbTypes() []string {
	var types []string
	for _, drv := range drivers {
		types = append(types, drv.DbType)
	}
	return types
}

type storageVersion struct {
	Dbtype  string `json:"dbtype,omitempty"`
	Version int32  `json:"version,omitempty"`
}

// CheckCompatibility writes the version file of a new storage directory, or
// verifies the one already there matches dbtype and the current version.
func CheckCompatibility(dbtype, storPath string) error {
	verFile := filepath.Join(storPath, versionFilename)
	fs, err := os.Stat(verFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrStore, err, "stat version file")
		}
		if err = os.MkdirAll(storPath, 0700); err != nil {
			return errors.Wrap(errors.ErrStore, err, "create storage directory")
		}
		data, err := json.Marshal(storageVersion{
			Dbtype:  dbtype,
			Version: CurrentStorageVersion,
		})
		if err != nil {
			return errors.Wrap(errors.ErrStore, err, "marshal version")
		}
		return errors.Wrap(errors.ErrStore, ioutil.WriteFile(verFile, data, 0600), "write version file")
	}
	if fs.IsDir() {
		return errors.Errorf(errors.ErrStore, "directory %s already exists", verFile)
	}

	data, err := ioutil.ReadFile(verFile)
	if err != nil {
		return errors.Wrap(errors.ErrStore, err, "read version file")
	}
	var ver storageVersion
	if err = json.Unmarshal(data, &ver); err != nil {
		return errors.Wrap(errors.ErrStore, err, "unmarshal version")
	}

	if ver.Version == CurrentStorageVersion && ver.Dbtype == dbtype {
		return nil
	}
	return ErrIncompatibleStorage
}
