// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package undo - savepoint stack over the token database
//
// Each savepoint owns the ordered list of actions that reverse the
// mutations made while it was the top of the stack. A savepoint is
// either held in memory, anchored to an engine snapshot, or persisted
// in the reserved region of the database so that it survives a
// restart. Rolling back replays the actions in reverse order as one
// atomic batch.
//
// persisted form:
//
//   key:   0x00 ++ "SP" ++ seq (big endian uint64, sign bit flipped)
//   value: count ++ [op(u8) ++ table(u8) ++ bytes(key) ++ bytes(value)]
//
// count and byte lengths are Varint64.
package undo
