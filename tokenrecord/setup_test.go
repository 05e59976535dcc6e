// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord_test

import (
	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/tokenrecord"
)

func makeKey(first byte, fill byte) publickey.PublicKey {
	b := make([]byte, publickey.Length)
	b[0] = first
	for i := 1; i < len(b); i += 1 {
		b[i] = fill ^ byte(i*7)
	}
	k, err := publickey.FromBytes(b)
	if nil != err {
		panic(err)
	}
	return k
}

var (
	keyOne   = makeKey(0x02, 0x11)
	keyTwo   = makeKey(0x03, 0x5a)
	keyThree = makeKey(0x02, 0xc3)
)

func permission(n string, threshold uint32, refs ...tokenrecord.AuthorizerRef) tokenrecord.PermissionDef {
	p := tokenrecord.PermissionDef{
		Name:      name.MustFromString(n),
		Threshold: threshold,
	}
	for i, r := range refs {
		p.Authorizers = append(p.Authorizers, tokenrecord.AuthorizerWeight{
			Ref:    r,
			Weight: uint16(i + 1),
		})
	}
	return p
}

func testDomain() *tokenrecord.DomainDef {
	return &tokenrecord.DomainDef{
		Name:       name128.MustFromString("cookie"),
		Creator:    keyOne,
		CreateTime: 1546300800,
		Issue:      permission("issue", 1, tokenrecord.NewAccountRef(keyOne)),
		Transfer:   permission("transfer", 1, tokenrecord.NewOwnerRef()),
		Manage: permission("manage", 2,
			tokenrecord.NewAccountRef(keyTwo),
			tokenrecord.NewGroupRef(name128.MustFromString("council")),
		),
		Metas: []tokenrecord.Meta{
			{
				Key:     name128.MustFromString("flavour"),
				Value:   "chocolate chip",
				Creator: tokenrecord.NewAccountRef(keyOne),
			},
		},
	}
}

func testToken() *tokenrecord.TokenDef {
	return &tokenrecord.TokenDef{
		Domain: name128.MustFromString("cookie"),
		Name:   name128.MustFromString("t1"),
		Owner: []address.Address{
			address.NewPublicKey(keyOne),
			address.NewGenerated(name.MustFromString("domain"), name128.MustFromString("cookie"), 7),
		},
	}
}

func testFungible() *tokenrecord.FungibleDef {
	sym := asset.MustNewSymbol(5, 3)
	return &tokenrecord.FungibleDef{
		Name:        name128.MustFromString("Coin"),
		SymName:     name128.MustFromString("CC"),
		Sym:         sym,
		Creator:     keyTwo,
		CreateTime:  1546300900,
		Issue:       permission("issue", 1, tokenrecord.NewAccountRef(keyTwo)),
		Manage:      permission("manage", 1, tokenrecord.NewAccountRef(keyTwo)),
		TotalSupply: asset.MustNew(100000000000, sym),
	}
}

func testGroup() *tokenrecord.GroupDef {
	return &tokenrecord.GroupDef{
		Name: name128.MustFromString("council"),
		Key:  address.NewPublicKey(keyThree),
		Root: tokenrecord.GroupNode{
			Threshold: 3,
			Weight:    0,
			Nodes: []tokenrecord.GroupNode{
				{Weight: 2, Key: &keyOne},
				{
					Threshold: 1,
					Weight:    1,
					Nodes: []tokenrecord.GroupNode{
						{Weight: 1, Key: &keyTwo},
						{Weight: 1, Key: &keyThree},
					},
				},
			},
		},
	}
}

func testSuspend() *tokenrecord.SuspendDef {
	return &tokenrecord.SuspendDef{
		Name:       name128.MustFromString("proposal-1"),
		Proposer:   keyOne,
		Status:     tokenrecord.SuspendProposed,
		Trx:        []byte{0x01, 0x02, 0x03, 0xff},
		SignedKeys: []publickey.PublicKey{keyOne, keyTwo},
	}
}
