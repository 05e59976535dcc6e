// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Engine - the persistent ordered key/value store
//
// Get returns a nil value and no error for a missing key; iteration is
// in ascending key order and stops when the visitor returns false
type Engine interface {
	Close() error
	Delete([]byte) error
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterate([]byte, func([]byte, []byte) bool) error
	IterateRange([]byte, []byte, func([]byte, []byte) bool) error
	NewBatch() Batch
	Put([]byte, []byte) error
	Snapshot() (Snapshot, error)
	Write(Batch) error
}

// Batch - a set of writes applied atomically by Engine.Write
type Batch interface {
	Delete([]byte)
	Len() int
	Put([]byte, []byte)
	Reset()
}

// Snapshot - a consistent read view of the engine
type Snapshot interface {
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Release()
}
