// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Cache - values recently read or written through the engine
type Cache interface {
	Get(string) ([]byte, bool, bool)
	Set(dbOperation, string, []byte)
	Clear()
}

type dbOperation int

const (
	dbPut dbOperation = iota
	dbDelete
)

const (
	defaultTimeout    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

type dbCache struct {
	cache      *cache.Cache
	expiration time.Duration
}

type cacheData struct {
	op    dbOperation
	value []byte
}

func newCache(expiration time.Duration) *dbCache {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &dbCache{
		cache:      cache.New(expiration, defaultTimeout),
		expiration: expiration,
	}
}

// Get - returns value, found, deleted
//
// a deleted key is known to be absent so the database need not be read
func (c *dbCache) Get(key string) ([]byte, bool, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false, false
	}

	data := obj.(cacheData)
	if dbDelete == data.op {
		return nil, false, true
	}

	return data.value, true, false
}

func (c *dbCache) Set(op dbOperation, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, c.expiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}

// batch replay handler keeping the cache in step with a written batch
type cacheReplay struct {
	c *dbCache
}

func (r cacheReplay) Put(key []byte, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	r.c.Set(dbPut, string(key), v)
}

func (r cacheReplay) Delete(key []byte) {
	r.c.Set(dbDelete, string(key), nil)
}
