// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// PoolHandle - access to a single table
type PoolHandle struct {
	name      string
	partition byte
	table     TableID
	engine    Engine
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

const prefixLength = 2

// Name - the pool field name
func (p *PoolHandle) Name() string {
	return p.name
}

// Table - the table id
func (p *PoolHandle) Table() TableID {
	return p.table
}

// Partition - the partition byte
func (p *PoolHandle) Partition() byte {
	return p.partition
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, prefixLength, len(key)+prefixLength)
	prefixedKey[0] = p.partition
	prefixedKey[1] = byte(p.table)
	return append(prefixedKey, key...)
}

// Get - read a value for a given key, nil if absent
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	return p.engine.Get(p.prefixKey(key))
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	return p.engine.Has(p.prefixKey(key))
}

// Put - store a key/value bytes pair
func (p *PoolHandle) Put(key []byte, value []byte) error {
	return p.engine.Put(p.prefixKey(key), value)
}

// Delete - remove a key
func (p *PoolHandle) Delete(key []byte) error {
	return p.engine.Delete(p.prefixKey(key))
}

// BatchPut - add a store of key/value to a batch
func (p *PoolHandle) BatchPut(b Batch, key []byte, value []byte) {
	b.Put(p.prefixKey(key), value)
}

// BatchDelete - add a removal of key to a batch
func (p *PoolHandle) BatchDelete(b Batch, key []byte) {
	b.Delete(p.prefixKey(key))
}

// Iterate - visit all keys in the pool starting with prefix, the
// visitor sees keys with the pool prefix removed
func (p *PoolHandle) Iterate(prefix []byte, visitor func(key []byte, value []byte) bool) error {
	return p.engine.Iterate(p.prefixKey(prefix), func(key []byte, value []byte) bool {
		return visitor(key[prefixLength:], value)
	})
}

// Count - number of elements in the pool
func (p *PoolHandle) Count() (int, error) {
	n := 0
	err := p.Iterate(nil, func(_ []byte, _ []byte) bool {
		n += 1
		return true
	})
	return n, err
}
