// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb

import (
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokendb/storage"
	"github.com/bitmark-inc/tokendb/undo"
)

// Options - database settings
type Options struct {
	ReadOnly        bool
	CacheExpiration time.Duration
	MemoryWindow    int
}

// TokenDB - the token database
//
// not safe for concurrent use, one writer drives it at a time
type TokenDB struct {
	engine storage.Engine
	pools  *storage.Pools
	stack  *undo.Stack
	log    *logger.L
}

// Open - open or create the database in a directory
func Open(directory string, options Options) (*TokenDB, error) {
	engine, err := storage.Open(directory, storage.Options{
		ReadOnly:        options.ReadOnly,
		CacheExpiration: options.CacheExpiration,
	})
	if nil != err {
		return nil, err
	}
	db, err := New(engine, options)
	if nil != err {
		engine.Close()
		return nil, err
	}
	return db, nil
}

// New - bind to an open engine and load its persisted savepoints
//
// the engine is closed by Close
func New(engine storage.Engine, options Options) (*TokenDB, error) {
	log := logger.New("tokendb")

	pools, err := storage.NewPools(engine)
	if nil != err {
		return nil, err
	}

	stack := undo.New(engine, pools, options.MemoryWindow)
	err = stack.LoadSavepoints()
	if nil != err {
		log.Criticalf("load savepoints error: %s", err)
		return nil, err
	}

	log.Infof("opened with %d savepoints", stack.Size())

	return &TokenDB{
		engine: engine,
		pools:  pools,
		stack:  stack,
		log:    log,
	}, nil
}

// Close - persist the remaining savepoints and close the engine
func (db *TokenDB) Close() error {
	err := db.stack.PersistSavepoints()
	if nil != err {
		db.log.Criticalf("persist savepoints error: %s", err)
	}
	db.stack.Close()

	closeErr := db.engine.Close()
	if nil == err {
		err = closeErr
	}
	db.log.Info("closed")
	return err
}

// Pools - the underlying tables, for maintenance tools
func (db *TokenDB) Pools() *storage.Pools {
	return db.pools
}

// AddSavepoint - open a savepoint, seq must increase
func (db *TokenDB) AddSavepoint(seq int64) error {
	return db.stack.AddSavepoint(seq)
}

// RollbackToLatestSavepoint - undo the changes of the top savepoint
func (db *TokenDB) RollbackToLatestSavepoint() error {
	return db.stack.RollbackToLatestSavepoint()
}

// Squash - merge the top savepoint into the one below
func (db *TokenDB) Squash() error {
	return db.stack.Squash()
}

// PopBackSavepoint - drop the top savepoint keeping its changes
func (db *TokenDB) PopBackSavepoint() error {
	return db.stack.PopBackSavepoint()
}

// PopSavepoints - drop savepoints with seq below until
func (db *TokenDB) PopSavepoints(until int64) error {
	return db.stack.PopSavepoints(until)
}

// PersistSavepoints - convert in-memory savepoints to persisted form
func (db *TokenDB) PersistSavepoints() error {
	return db.stack.PersistSavepoints()
}

// SavepointsSize - number of open savepoints
func (db *TokenDB) SavepointsSize() int {
	return db.stack.Size()
}

// LatestSavepointSeq - seq of the top savepoint
func (db *TokenDB) LatestSavepointSeq() (int64, error) {
	return db.stack.Latest()
}

// Savepoints - description of the open savepoints, oldest first
func (db *TokenDB) Savepoints() []undo.Info {
	return db.stack.Savepoints()
}

// store a value recording how to undo it
func (db *TokenDB) put(p *storage.PoolHandle, key []byte, value []byte) error {
	prior, err := p.Get(key)
	if nil != err {
		return err
	}

	action := undo.NewInsert(p.Table(), key)
	if nil != prior {
		action = undo.NewUpdate(p.Table(), key, prior)
	}
	err = db.stack.Record(action)
	if nil != err {
		return err
	}
	return p.Put(key, value)
}

// remove a value recording how to undo it
func (db *TokenDB) remove(p *storage.PoolHandle, key []byte) error {
	prior, err := p.Get(key)
	if nil != err || nil == prior {
		return err
	}
	err = db.stack.Record(undo.NewDelete(p.Table(), key, prior))
	if nil != err {
		return err
	}
	return p.Delete(key)
}

// check existence then store
func (db *TokenDB) add(p *storage.PoolHandle, key []byte, value []byte, exists error) error {
	found, err := p.Has(key)
	if nil != err {
		return err
	}
	if found {
		return exists
	}
	return db.put(p, key, value)
}

// check absence then store
func (db *TokenDB) update(p *storage.PoolHandle, key []byte, value []byte, notFound error) error {
	found, err := p.Has(key)
	if nil != err {
		return err
	}
	if !found {
		return notFound
	}
	return db.put(p, key, value)
}

// read a value that must exist
func (db *TokenDB) read(p *storage.PoolHandle, key []byte, notFound error) ([]byte, error) {
	value, err := p.Get(key)
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, notFound
	}
	return value, nil
}
