// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
)

func nameKey(n name128.Name128) []byte {
	return n.FixedBytes()
}

func tokenKey(domain name128.Name128, token name128.Name128) []byte {
	return append(domain.FixedBytes(), token.FixedBytes()...)
}

func symbolKey(id uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, id)
	return key
}

// address type ++ fixed address bytes, the same length for every type
func addressKey(addr address.Address) []byte {
	return append([]byte{byte(addr.Type())}, addr.Bytes()...)
}

func assetKey(addr address.Address, id uint32) []byte {
	return append(addressKey(addr), symbolKey(id)...)
}

func voteKey(confKey name.Name, key publickey.PublicKey) []byte {
	return append(confKey.Bytes(), key.Bytes()...)
}
