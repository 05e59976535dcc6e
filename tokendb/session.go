// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb

import (
	"github.com/bitmark-inc/tokendb/fault"
)

// Session - a savepoint bound to a scope
//
// Close rolls the savepoint back unless Accept, Squash or Undo has
// disposed of it; an engine failure leaves the session open so Close
// can be retried
type Session struct {
	db       *TokenDB
	seq      int64
	disposed bool
}

// NewSavepointSession - open a savepoint with an explicit seq
func (db *TokenDB) NewSavepointSession(seq int64) (*Session, error) {
	err := db.stack.AddSavepoint(seq)
	if nil != err {
		return nil, err
	}
	return &Session{
		db:  db,
		seq: seq,
	}, nil
}

// NewSession - open a savepoint one above the latest, or at 1 when
// there is none
func (db *TokenDB) NewSession() (*Session, error) {
	seq := int64(1)
	latest, err := db.stack.Latest()
	if nil == err {
		seq = latest + 1
	}
	return db.NewSavepointSession(seq)
}

// Seq - the seq of the session savepoint
func (s *Session) Seq() int64 {
	return s.seq
}

// check the session savepoint is still the top of the stack
func (s *Session) check() error {
	if s.disposed {
		return fault.ErrSessionDisposed
	}
	latest, err := s.db.stack.Latest()
	if nil != err {
		return err
	}
	if latest != s.seq {
		return fault.ErrInvalidSavepointSequence
	}
	return nil
}

// Accept - keep the changes and the savepoint
func (s *Session) Accept() {
	s.disposed = true
}

// Squash - merge the session savepoint into the one below
func (s *Session) Squash() error {
	if err := s.check(); nil != err {
		return err
	}
	err := s.db.stack.Squash()
	if nil != err {
		return err
	}
	s.disposed = true
	return nil
}

// Undo - roll back the changes now
func (s *Session) Undo() error {
	if err := s.check(); nil != err {
		return err
	}
	err := s.db.stack.RollbackToLatestSavepoint()
	if nil != err {
		return err
	}
	s.disposed = true
	return nil
}

// Close - roll back unless already disposed
//
// the session savepoint and every savepoint opened above it are rolled
// back, so changes of accepted inner sessions are undone with it; a
// savepoint already removed by other means leaves nothing to do
func (s *Session) Close() error {
	if s.disposed {
		return nil
	}
	err := s.db.stack.RollbackTo(s.seq)
	if nil != err {
		s.db.log.Criticalf("session: %d rollback error: %s", s.seq, err)
		return err
	}
	s.disposed = true
	return nil
}
