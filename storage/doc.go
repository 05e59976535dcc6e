// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// A single LevelDB database split into partitions and tables. Every
// key starts with a partition byte followed by a table byte, both
// taken from the struct tags of the pools structure.
//
// Notes:
// 1. ++           = concatenation of byte data
// 2. name128      = 16 byte fixed little endian value
// 3. symbol id    = big endian uint32 (4 bytes)
// 4. address      = address type ++ 33 byte address form
// 5. seq          = big endian uint64 with the sign bit flipped
//
// Reserved (partition 0x00, never visited by pool iteration):
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32
//   0x00 ++ "SP" ++ seq        - persisted savepoint
//                                data: count ++ [op ++ table ++ key ++ value]
//
// Tokens (partition 't'):
//
//   t d ++ domain              - domain_def
//   t k ++ domain ++ token     - token_def
//   t g ++ group               - group_def
//   t s ++ proposal            - suspend_def
//   t f ++ symbol id           - fungible_def
//   t v ++ conf key ++ key     - producer vote, data: little endian int64
//
// Assets (partition 'a'):
//
//   a b ++ address ++ symbol id - balance
//                                 data: packed asset
package storage
