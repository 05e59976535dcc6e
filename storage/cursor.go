// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/tokendb/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool  *PoolHandle
	start []byte
	limit []byte
}

// NewFetchCursor - initialise a cursor to the start of the pool
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	limit := []byte{p.partition, byte(p.table) + 1}
	if 0xff == byte(p.table) {
		limit = []byte{p.partition + 1}
	}
	return &FetchCursor{
		pool:  p,
		start: p.prefixKey(nil), // Start of key range, included in the range
		limit: limit,            // Limit of key range, excluded from the range
	}
}

// Seek - move cursor to specific key position
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.start = cursor.pool.prefixKey(key)
	return cursor
}

// Fetch - return some elements starting from the cursor position and
// advance the cursor past the last one returned
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if nil == cursor {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	var last []byte
	err := cursor.pool.engine.IterateRange(cursor.start, cursor.limit, func(key []byte, value []byte) bool {
		results = append(results, Element{
			Key:   key[prefixLength:],
			Value: value,
		})
		last = key
		return len(results) < count
	})

	// the next key after last is last ++ 0x00
	if nil != last {
		next := make([]byte, len(last)+1)
		copy(next, last)
		cursor.start = next
	}
	return results, err
}

// Map - run a function on all elements from the cursor position
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if nil == cursor {
		return fault.ErrInvalidCursor
	}

	var err error
	iterErr := cursor.pool.engine.IterateRange(cursor.start, cursor.limit, func(key []byte, value []byte) bool {
		err = f(key[prefixLength:], value)
		return nil == err
	})
	if nil == err {
		err = iterErr
	}
	return err
}
