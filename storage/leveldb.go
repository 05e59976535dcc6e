// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokendb/fault"
)

// ReservedPartition - first key byte of the region holding the
// database version and the persisted savepoints
const ReservedPartition = 0x00

// for database version
var versionKey = []byte{ReservedPartition, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// LevelDB - Engine over a goleveldb database with a read cache
type LevelDB struct {
	db    *leveldb.DB
	cache *dbCache
	log   *logger.L
}

// Options - how to open the database
type Options struct {
	ReadOnly        bool
	CacheExpiration time.Duration
}

// Open - open or create a database directory
func Open(directory string, options Options) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: options.ReadOnly,
		ReadOnly:       options.ReadOnly,
	}

	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, fault.Engine("open", err)
	}
	return setup(db, options)
}

// OpenMemory - a database that lives only in memory, for tests and tools
func OpenMemory() (*LevelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, fault.Engine("open", err)
	}
	return setup(db, Options{})
}

func setup(db *leveldb.DB, options Options) (*LevelDB, error) {
	log := logger.New("storage")

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrDatabaseVersion
	}

	if 0 == version {
		if options.ReadOnly {
			db.Close()
			return nil, fault.ErrDatabaseVersion
		}
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
		log.Infof("initialised database version: %d", currentDBVersion)
	}

	return &LevelDB{
		db:    db,
		cache: newCache(options.CacheExpiration),
		log:   log,
	}, nil
}

// return the stored version, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, fault.Engine("version", err)
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return fault.Engine("version", db.Put(versionKey, currentVersion, nil))
}

// Close - release the database
func (l *LevelDB) Close() error {
	l.cache.Clear()
	return fault.Engine("close", l.db.Close())
}

// Get - read a value, nil if absent
//
// the result is owned by the caller
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	value, found, deleted := l.cache.Get(string(key))
	if found {
		v := make([]byte, len(value))
		copy(v, value)
		return v, nil
	}
	if deleted {
		return nil, nil
	}

	value, err := l.db.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, fault.Engine("get", err)
	}
	v := make([]byte, len(value))
	copy(v, value)
	l.cache.Set(dbPut, string(key), v)
	return value, nil
}

// Has - check if a key exists
func (l *LevelDB) Has(key []byte) (bool, error) {
	_, found, deleted := l.cache.Get(string(key))
	if found {
		return true, nil
	}
	if deleted {
		return false, nil
	}
	ok, err := l.db.Has(key, nil)
	return ok, fault.Engine("has", err)
}

// Put - store a single value
func (l *LevelDB) Put(key []byte, value []byte) error {
	err := l.db.Put(key, value, nil)
	if nil != err {
		return fault.Engine("put", err)
	}
	v := make([]byte, len(value))
	copy(v, value)
	l.cache.Set(dbPut, string(key), v)
	return nil
}

// Delete - remove a single value
func (l *LevelDB) Delete(key []byte) error {
	err := l.db.Delete(key, nil)
	if nil != err {
		return fault.Engine("delete", err)
	}
	l.cache.Set(dbDelete, string(key), nil)
	return nil
}

// Iterate - visit every key starting with prefix
func (l *LevelDB) Iterate(prefix []byte, visitor func([]byte, []byte) bool) error {
	return l.iterate(ldb_util.BytesPrefix(prefix), visitor)
}

// IterateRange - visit keys from start (included) to limit (excluded),
// a nil limit runs to the end of the database
func (l *LevelDB) IterateRange(start []byte, limit []byte, visitor func([]byte, []byte) bool) error {
	return l.iterate(&ldb_util.Range{Start: start, Limit: limit}, visitor)
}

func (l *LevelDB) iterate(searchRange *ldb_util.Range, visitor func([]byte, []byte) bool) error {
	iter := l.db.NewIterator(searchRange, nil)

iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key))
		copy(dataKey, key)

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if !visitor(dataKey, dataValue) {
			break iterating
		}
	}
	iter.Release()
	return fault.Engine("iterate", iter.Error())
}

// NewBatch - start an empty batch
func (l *LevelDB) NewBatch() Batch {
	return new(leveldb.Batch)
}

// Write - apply all writes of a batch atomically
func (l *LevelDB) Write(b Batch) error {
	batch, ok := b.(*leveldb.Batch)
	if !ok {
		return fault.ErrInvalidBatch
	}
	err := l.db.Write(batch, nil)
	if nil != err {
		l.log.Criticalf("batch of %d writes failed: %s", batch.Len(), err)
		return fault.Engine("write", err)
	}
	err = batch.Replay(cacheReplay{c: l.cache})
	if nil != err {
		l.cache.Clear()
	}
	return nil
}

// Snapshot - a read view unaffected by later writes
func (l *LevelDB) Snapshot() (Snapshot, error) {
	s, err := l.db.GetSnapshot()
	if nil != err {
		return nil, fault.Engine("snapshot", err)
	}
	return &snapshot{s: s}, nil
}

type snapshot struct {
	s *leveldb.Snapshot
}

func (s *snapshot) Get(key []byte) ([]byte, error) {
	value, err := s.s.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, fault.Engine("snapshot get", err)
}

func (s *snapshot) Has(key []byte) (bool, error) {
	ok, err := s.s.Has(key, nil)
	return ok, fault.Engine("snapshot has", err)
}

func (s *snapshot) Release() {
	s.s.Release()
}
