// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tokendb - versioned store of domains, tokens, groups,
// fungibles, suspended transactions, balances and producer votes
//
// every mutation made while a savepoint is open records the action
// that reverses it; a Session ties a savepoint to a scope:
//
//   s, err := db.NewSession()
//   if nil != err {
//       return err
//   }
//   defer s.Close()
//
//   ... mutations ...
//
//   s.Accept()
//
// Close rolls the changes back unless Accept, Squash or Undo was
// called first.
package tokendb
