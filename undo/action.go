// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package undo

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/storage"
	"github.com/bitmark-inc/tokendb/util"
)

// Op - the mutation an action reverses
type Op uint8

// operations
const (
	OpInsert Op = iota + 1 // undo by deleting the key
	OpUpdate               // undo by restoring Value
	OpDelete               // undo by restoring Value
)

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "invalid"
}

// Action - reverses exactly one key mutation
type Action struct {
	Op    Op
	Table storage.TableID
	Key   []byte
	Value []byte // prior value, nil for OpInsert
}

// NewInsert - undo action for a key that did not exist
func NewInsert(table storage.TableID, key []byte) Action {
	return Action{Op: OpInsert, Table: table, Key: key}
}

// NewUpdate - undo action for a key whose prior value is replaced
func NewUpdate(table storage.TableID, key []byte, prior []byte) Action {
	return Action{Op: OpUpdate, Table: table, Key: key, Value: prior}
}

// NewDelete - undo action for a key that is removed
func NewDelete(table storage.TableID, key []byte, prior []byte) Action {
	return Action{Op: OpDelete, Table: table, Key: key, Value: prior}
}

var savepointPrefix = []byte{storage.ReservedPartition, 'S', 'P'}

// database key of a persisted savepoint, ordered by seq
func savepointKey(seq int64) []byte {
	key := make([]byte, len(savepointPrefix)+8)
	copy(key, savepointPrefix)
	binary.BigEndian.PutUint64(key[len(savepointPrefix):], uint64(seq)^(1<<63))
	return key
}

func seqFromKey(key []byte) (int64, error) {
	if len(savepointPrefix)+8 != len(key) {
		return 0, fault.ErrSavepointRecord
	}
	return int64(binary.BigEndian.Uint64(key[len(savepointPrefix):]) ^ (1 << 63)), nil
}

func packActions(actions []Action) util.Packed {
	p := util.Packed{}.AppendVarint(uint64(len(actions)))
	for _, a := range actions {
		p = p.AppendUint8(uint8(a.Op))
		p = p.AppendUint8(uint8(a.Table))
		p = p.AppendBytes(a.Key)
		p = p.AppendBytes(a.Value)
	}
	return p
}

func unpackActions(buffer []byte, pools *storage.Pools) ([]Action, error) {
	u := util.NewUnpacker(buffer)
	count := u.Count()
	actions := make([]Action, 0, count)
	for i := 0; i < count && nil == u.Err(); i += 1 {
		a := Action{
			Op:    Op(u.Uint8()),
			Table: storage.TableID(u.Uint8()),
			Key:   u.Bytes(),
			Value: u.Bytes(),
		}
		if nil != u.Err() {
			break
		}
		switch a.Op {
		case OpInsert:
			a.Value = nil
		case OpUpdate, OpDelete:
		default:
			return nil, fault.ErrUndoOperation
		}
		if _, err := pools.Table(a.Table); nil != err {
			return nil, err
		}
		actions = append(actions, a)
	}
	if err := u.Done(); nil != err {
		return nil, fault.ErrSavepointRecord
	}
	return actions, nil
}
