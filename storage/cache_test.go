// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupTestCache() *dbCache {
	return newCache(0)
}

func TestWriteThenRead(t *testing.T) {
	cache := setupTestCache()

	key := "test"
	expected := []byte{'a', 'b', 'c', 'd'}

	actual, found, deleted := cache.Get(key)
	assert.False(t, found, "key %s already exist value %v", key, actual)
	assert.False(t, deleted, "key %s marked deleted", key)

	cache.Set(dbPut, key, expected)
	actual, found, _ = cache.Get(key)
	assert.True(t, found, "key not found")
	assert.Equal(t, expected, actual, "wrong value")
}

func TestClear(t *testing.T) {
	cache := setupTestCache()

	key := "test"
	data := []byte{'a', 'b', 'c', 'd'}

	cache.Set(dbPut, key, data)
	cache.Clear()

	_, found, _ := cache.Get(key)
	assert.False(t, found, "Clear not working, expect cache is empty but not")
}

func TestReadDeleteOperation(t *testing.T) {
	cache := setupTestCache()

	key := "test"
	data := []byte{'a', 'b', 'c', 'd'}

	cache.Set(dbDelete, key, data)

	_, found, deleted := cache.Get(key)
	assert.False(t, found, "delete operation should get nothing")
	assert.True(t, deleted, "delete operation should be remembered")
}

func TestReplay(t *testing.T) {
	cache := setupTestCache()
	r := cacheReplay{c: cache}

	value := []byte("value")
	r.Put([]byte("one"), value)
	r.Delete([]byte("two"))
	value[0] = 'X'

	actual, found, _ := cache.Get("one")
	assert.True(t, found, "replayed put missing")
	assert.Equal(t, []byte("value"), actual, "replayed value must be a copy")

	_, _, deleted := cache.Get("two")
	assert.True(t, deleted, "replayed delete missing")
}
