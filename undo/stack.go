// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package undo

import (
	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/storage"
)

// DefaultMemoryWindow - in-memory savepoints kept before the oldest
// are converted to persisted form
const DefaultMemoryWindow = 32

// Kind - representation of a savepoint
type Kind int

// savepoint kinds
const (
	InMemory Kind = iota
	Persisted
)

func (k Kind) String() string {
	switch k {
	case InMemory:
		return "memory"
	case Persisted:
		return "persisted"
	}
	return "invalid"
}

// Info - description of one savepoint
type Info struct {
	Seq     int64
	Kind    Kind
	Actions int
}

type savepoint struct {
	seq      int64
	kind     Kind
	snapshot storage.Snapshot // InMemory only
	actions  []Action
}

// Stack - the savepoints, oldest first
//
// not safe for concurrent use
type Stack struct {
	engine     storage.Engine
	pools      *storage.Pools
	window     int
	savepoints []*savepoint
	log        *logger.L
}

// New - an empty stack over the engine
//
// window below one selects DefaultMemoryWindow
func New(engine storage.Engine, pools *storage.Pools, window int) *Stack {
	if window < 1 {
		window = DefaultMemoryWindow
	}
	return &Stack{
		engine: engine,
		pools:  pools,
		window: window,
		log:    logger.New("undo"),
	}
}

// Size - number of savepoints
func (s *Stack) Size() int {
	return len(s.savepoints)
}

// Latest - seq of the top savepoint
func (s *Stack) Latest() (int64, error) {
	if 0 == len(s.savepoints) {
		return 0, fault.ErrNoSavepoint
	}
	return s.top().seq, nil
}

// Savepoints - description of every savepoint, oldest first
func (s *Stack) Savepoints() []Info {
	info := make([]Info, 0, len(s.savepoints))
	for _, sp := range s.savepoints {
		info = append(info, Info{
			Seq:     sp.seq,
			Kind:    sp.kind,
			Actions: len(sp.actions),
		})
	}
	return info
}

func (s *Stack) top() *savepoint {
	return s.savepoints[len(s.savepoints)-1]
}

func (s *Stack) pop() {
	n := len(s.savepoints) - 1
	s.savepoints[n] = nil
	s.savepoints = s.savepoints[:n]
}

// AddSavepoint - push a new in-memory savepoint
func (s *Stack) AddSavepoint(seq int64) error {
	if 0 != len(s.savepoints) && seq <= s.top().seq {
		s.log.Warnf("savepoint: %d not above latest: %d", seq, s.top().seq)
		return fault.ErrInvalidSavepointSequence
	}

	snapshot, err := s.engine.Snapshot()
	if nil != err {
		return err
	}

	s.savepoints = append(s.savepoints, &savepoint{
		seq:      seq,
		kind:     InMemory,
		snapshot: snapshot,
	})
	s.log.Debugf("add savepoint: %d  size: %d", seq, len(s.savepoints))

	err = s.convertOverflow()
	if nil != err {
		s.top().release()
		s.pop()
		return err
	}
	return nil
}

// convert the oldest in-memory savepoints beyond the window
func (s *Stack) convertOverflow() error {
	inMemory := 0
	for _, sp := range s.savepoints {
		if InMemory == sp.kind {
			inMemory += 1
		}
	}
	if inMemory <= s.window {
		return nil
	}

	batch := s.engine.NewBatch()
	converted := []*savepoint{}
	for _, sp := range s.savepoints {
		if inMemory <= s.window {
			break
		}
		if InMemory != sp.kind {
			continue
		}
		batch.Put(savepointKey(sp.seq), packActions(sp.actions))
		converted = append(converted, sp)
		inMemory -= 1
	}

	err := s.engine.Write(batch)
	if nil != err {
		s.log.Criticalf("convert %d savepoints error: %s", len(converted), err)
		return err
	}
	for _, sp := range converted {
		s.log.Warnf("savepoint: %d converted to persisted form  actions: %d", sp.seq, len(sp.actions))
		sp.toPersisted()
	}
	return nil
}

func (sp *savepoint) toPersisted() {
	sp.release()
	sp.kind = Persisted
}

func (sp *savepoint) release() {
	if nil != sp.snapshot {
		sp.snapshot.Release()
		sp.snapshot = nil
	}
}

// Record - append an undo action to the top savepoint
//
// does nothing when there is no savepoint; a persisted top savepoint
// is rewritten so the action is durable
func (s *Stack) Record(action Action) error {
	if 0 == len(s.savepoints) {
		return nil
	}
	switch action.Op {
	case OpInsert, OpUpdate, OpDelete:
	default:
		return fault.ErrUndoOperation
	}

	sp := s.top()
	if Persisted == sp.kind {
		actions := append(sp.actions[:len(sp.actions):len(sp.actions)], action)
		err := s.engine.Put(savepointKey(sp.seq), packActions(actions))
		if nil != err {
			return err
		}
		sp.actions = actions
		return nil
	}
	sp.actions = append(sp.actions, action)
	return nil
}

// add the reversal of actions to a batch, last action first
func (s *Stack) reverse(batch storage.Batch, actions []Action) error {
	for i := len(actions) - 1; i >= 0; i -= 1 {
		a := actions[i]
		pool, err := s.pools.Table(a.Table)
		if nil != err {
			return err
		}
		switch a.Op {
		case OpInsert:
			pool.BatchDelete(batch, a.Key)
		case OpUpdate, OpDelete:
			pool.BatchPut(batch, a.Key, a.Value)
		default:
			return fault.ErrUndoOperation
		}
	}
	return nil
}

// RollbackToLatestSavepoint - undo every action of the top savepoint
// and remove it
//
// on an engine failure the savepoint stays on the stack
func (s *Stack) RollbackToLatestSavepoint() error {
	if 0 == len(s.savepoints) {
		return fault.ErrNoSavepoint
	}
	sp := s.top()

	batch := s.engine.NewBatch()
	err := s.reverse(batch, sp.actions)
	if nil != err {
		return err
	}
	if Persisted == sp.kind {
		batch.Delete(savepointKey(sp.seq))
	}

	err = s.engine.Write(batch)
	if nil != err {
		s.log.Criticalf("rollback savepoint: %d error: %s", sp.seq, err)
		return err
	}

	s.log.Debugf("rollback savepoint: %d  actions: %d", sp.seq, len(sp.actions))
	sp.release()
	s.pop()
	return nil
}

// RollbackTo - roll back every savepoint from the top down to and
// including the one with seq, top first
//
// does nothing when no savepoint has seq; on an engine failure the
// savepoints not yet rolled back stay on the stack
func (s *Stack) RollbackTo(seq int64) error {
	found := false
	for _, sp := range s.savepoints {
		if seq == sp.seq {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	for 0 != len(s.savepoints) && s.top().seq >= seq {
		err := s.RollbackToLatestSavepoint()
		if nil != err {
			return err
		}
	}
	return nil
}

// Squash - merge the top savepoint into the one below it
//
// the merged savepoint keeps the representation of the lower one
func (s *Stack) Squash() error {
	if len(s.savepoints) < 2 {
		return fault.ErrNotEnoughSavepoints
	}
	top := s.top()
	lower := s.savepoints[len(s.savepoints)-2]

	merged := make([]Action, 0, len(lower.actions)+len(top.actions))
	merged = append(merged, lower.actions...)
	merged = append(merged, top.actions...)

	if Persisted == lower.kind || Persisted == top.kind {
		batch := s.engine.NewBatch()
		if Persisted == lower.kind {
			batch.Put(savepointKey(lower.seq), packActions(merged))
		}
		if Persisted == top.kind {
			batch.Delete(savepointKey(top.seq))
		}
		err := s.engine.Write(batch)
		if nil != err {
			s.log.Criticalf("squash savepoint: %d into: %d error: %s", top.seq, lower.seq, err)
			return err
		}
	}

	s.log.Debugf("squash savepoint: %d into: %d  actions: %d", top.seq, lower.seq, len(merged))
	lower.actions = merged
	top.release()
	s.pop()
	return nil
}

// PopBackSavepoint - discard the top savepoint keeping its changes
func (s *Stack) PopBackSavepoint() error {
	if 0 == len(s.savepoints) {
		return fault.ErrNoSavepoint
	}
	sp := s.top()
	if Persisted == sp.kind {
		err := s.engine.Delete(savepointKey(sp.seq))
		if nil != err {
			return err
		}
	}
	s.log.Debugf("pop savepoint: %d", sp.seq)
	sp.release()
	s.pop()
	return nil
}

// PopSavepoints - discard all savepoints with seq below until,
// starting from the oldest
func (s *Stack) PopSavepoints(until int64) error {
	n := 0
	persisted := [][]byte{}
	for _, sp := range s.savepoints {
		if sp.seq >= until {
			break
		}
		if Persisted == sp.kind {
			persisted = append(persisted, savepointKey(sp.seq))
		}
		n += 1
	}
	if 0 == n {
		return nil
	}

	if len(persisted) > 0 {
		batch := s.engine.NewBatch()
		for _, key := range persisted {
			batch.Delete(key)
		}
		err := s.engine.Write(batch)
		if nil != err {
			s.log.Criticalf("pop %d savepoints error: %s", n, err)
			return err
		}
	}

	for i := 0; i < n; i += 1 {
		s.savepoints[i].release()
		s.savepoints[i] = nil
	}
	s.savepoints = s.savepoints[n:]
	s.log.Debugf("popped %d savepoints below: %d  size: %d", n, until, len(s.savepoints))
	return nil
}

// PersistSavepoints - convert every in-memory savepoint to persisted form
func (s *Stack) PersistSavepoints() error {
	converted := []*savepoint{}
	for _, sp := range s.savepoints {
		if InMemory == sp.kind {
			converted = append(converted, sp)
		}
	}
	if 0 == len(converted) {
		return nil
	}

	batch := s.engine.NewBatch()
	for _, sp := range converted {
		batch.Put(savepointKey(sp.seq), packActions(sp.actions))
	}
	err := s.engine.Write(batch)
	if nil != err {
		s.log.Criticalf("persist %d savepoints error: %s", len(converted), err)
		return err
	}
	for _, sp := range converted {
		sp.toPersisted()
	}
	s.log.Infof("persisted %d savepoints", len(converted))
	return nil
}

// LoadSavepoints - rebuild an empty stack from the persisted savepoints
func (s *Stack) LoadSavepoints() error {
	if 0 != len(s.savepoints) {
		return fault.ErrAlreadyInitialised
	}

	loaded := []*savepoint{}
	var err error
	iterErr := s.engine.Iterate(savepointPrefix, func(key []byte, value []byte) bool {
		seq, e := seqFromKey(key)
		if nil != e {
			err = e
			return false
		}
		actions, e := unpackActions(value, s.pools)
		if nil != e {
			s.log.Criticalf("savepoint: %d  record error: %s", seq, e)
			err = e
			return false
		}
		loaded = append(loaded, &savepoint{
			seq:     seq,
			kind:    Persisted,
			actions: actions,
		})
		return true
	})
	if nil == err {
		err = iterErr
	}
	if nil != err {
		return err
	}

	s.savepoints = loaded
	if len(loaded) > 0 {
		s.log.Infof("loaded %d savepoints  latest: %d", len(loaded), loaded[len(loaded)-1].seq)
	}
	return nil
}

// Close - release every snapshot without changing the database
func (s *Stack) Close() {
	for _, sp := range s.savepoints {
		sp.release()
	}
	s.savepoints = nil
}
