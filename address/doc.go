// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - owners of tokens and fungible balances
//
// three variants share a fixed 53 character text form:
//
//   reserved:    "EVT" ++ 50 × '0'
//   public key:  the key's own text, "EVT" ++ base58(key ++ checksum)
//   generated:   "EVT0" ++ '0' padding ++ base58(packed)
//
// packed generated data is 32 bytes, little endian, no padding:
//
//   checksum(u32) ++ nonce(u32) ++ prefix(name, u64) ++ key(name128, u128)
//
// the checksum is the first 4 bytes of RIPEMD-160(prefix ++ key ++ nonce)
package address
