// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/tokenrecord"
)

func TestDomain(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	d := testDomain()

	found, err := db.ExistsDomain(d.Name)
	assert.Nil(t, err, "exists error")
	assert.False(t, found, "domain exists before add")

	_, err = db.ReadDomain(d.Name)
	assert.Equal(t, fault.ErrDomainNotFound, err, "read of missing domain")
	assert.Equal(t, fault.ErrDomainNotFound, db.UpdateDomain(d), "update of missing domain")

	assert.Nil(t, db.AddDomain(d), "add error")
	assert.Equal(t, fault.ErrDomainExists, db.AddDomain(d), "duplicate add")

	found, _ = db.ExistsDomain(d.Name)
	assert.True(t, found, "domain missing after add")

	back, err := db.ReadDomain(d.Name)
	assert.Nil(t, err, "read error")
	assert.Equal(t, d, back, "domain read back")

	d.Issue = permission("issue", 2, tokenrecord.NewAccountRef(creatorKey), tokenrecord.NewAccountRef(producerOne))
	assert.Nil(t, db.UpdateDomain(d), "update error")
	back, _ = db.ReadDomain(d.Name)
	assert.Equal(t, d, back, "updated domain read back")
}

func TestIssueTokens(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	owner := []address.Address{ownerAddress}
	names := []name128.Name128{
		name128.MustFromString("t1"),
		name128.MustFromString("t2"),
		name128.MustFromString("t3"),
	}

	err := db.IssueTokens(testDomainName, names, owner)
	assert.Equal(t, fault.ErrDomainNotFound, err, "issue into missing domain")

	assert.Nil(t, db.AddDomain(testDomain()), "add domain")
	assert.Nil(t, db.IssueTokens(testDomainName, names, owner), "issue error")

	for _, n := range names {
		tk, err := db.ReadToken(testDomainName, n)
		assert.Nil(t, err, "read token: %s", n)
		assert.Equal(t, owner, tk.Owner, "token owner: %s", n)
		assert.Equal(t, testDomainName, tk.Domain, "token domain: %s", n)
	}

	// one existing name blocks the whole issue
	more := []name128.Name128{name128.MustFromString("t4"), names[1]}
	assert.Equal(t, fault.ErrTokenExists, db.IssueTokens(testDomainName, more, owner), "reissue accepted")
	found, _ := db.ExistsToken(testDomainName, more[0])
	assert.False(t, found, "partial issue written")

	twice := []name128.Name128{name128.MustFromString("t5"), name128.MustFromString("t5")}
	assert.Equal(t, fault.ErrTokenExists, db.IssueTokens(testDomainName, twice, owner), "duplicate names accepted")

	listed := []string{}
	err = db.ReadTokens(testDomainName, func(tk *tokenrecord.TokenDef) bool {
		listed = append(listed, tk.Name.String())
		return true
	})
	assert.Nil(t, err, "read tokens error")
	assert.Equal(t, 3, len(listed), "token count")
}

func TestToken(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	tk := &tokenrecord.TokenDef{
		Domain: testDomainName,
		Name:   name128.MustFromString("t1"),
		Owner:  []address.Address{ownerAddress},
	}
	assert.Equal(t, fault.ErrTokenNotFound, db.UpdateToken(tk), "update of missing token")
	assert.Nil(t, db.AddToken(tk), "add error")
	assert.Equal(t, fault.ErrTokenExists, db.AddToken(tk), "duplicate add")

	tk.Owner = []address.Address{address.NewPublicKey(producerOne), generatedAddress}
	assert.Nil(t, db.UpdateToken(tk), "update error")

	back, err := db.ReadToken(tk.Domain, tk.Name)
	assert.Nil(t, err, "read error")
	assert.Equal(t, tk, back, "token read back")

	_, err = db.ReadToken(tk.Domain, name128.MustFromString("t2"))
	assert.Equal(t, fault.ErrTokenNotFound, err, "read of missing token")
}

func TestGroup(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	g := &tokenrecord.GroupDef{
		Name: name128.MustFromString("council"),
		Key:  address.NewPublicKey(creatorKey),
		Root: tokenrecord.GroupNode{
			Threshold: 2,
			Nodes: []tokenrecord.GroupNode{
				{Weight: 1, Key: &producerOne},
				{Weight: 1, Key: &producerTwo},
			},
		},
	}

	_, err := db.ReadGroup(g.Name)
	assert.Equal(t, fault.ErrGroupNotFound, err, "read of missing group")
	assert.Equal(t, fault.ErrGroupNotFound, db.UpdateGroup(g), "update of missing group")
	assert.Nil(t, db.AddGroup(g), "add error")
	assert.Equal(t, fault.ErrGroupExists, db.AddGroup(g), "duplicate add")

	g.Root.Threshold = 1
	assert.Nil(t, db.UpdateGroup(g), "update error")
	back, err := db.ReadGroup(g.Name)
	assert.Nil(t, err, "read error")
	assert.Equal(t, g, back, "group read back")

	found, _ := db.ExistsGroup(g.Name)
	assert.True(t, found, "group missing")
}

func TestSuspend(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	s := &tokenrecord.SuspendDef{
		Name:     name128.MustFromString("proposal"),
		Proposer: producerOne,
		Status:   tokenrecord.SuspendProposed,
		Trx:      []byte("packed transaction"),
	}

	_, err := db.ReadSuspend(s.Name)
	assert.Equal(t, fault.ErrSuspendNotFound, err, "read of missing suspend")
	assert.Equal(t, fault.ErrSuspendNotFound, db.UpdateSuspend(s), "update of missing suspend")
	assert.Nil(t, db.AddSuspend(s), "add error")
	assert.Equal(t, fault.ErrSuspendExists, db.AddSuspend(s), "duplicate add")

	s.Status = tokenrecord.SuspendExecuted
	s.SignedKeys = []publickey.PublicKey{producerOne, producerTwo}
	assert.Nil(t, db.UpdateSuspend(s), "update error")

	back, err := db.ReadSuspend(s.Name)
	assert.Nil(t, err, "read error")
	assert.Equal(t, s, back, "suspend read back")

	found, _ := db.ExistsSuspend(s.Name)
	assert.True(t, found, "suspend missing")
}

func TestFungible(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	f := testFungible()

	_, err := db.ReadFungible(f.Sym)
	assert.Equal(t, fault.ErrFungibleNotFound, err, "read of missing fungible")
	assert.Equal(t, fault.ErrFungibleNotFound, db.UpdateFungible(f), "update of missing fungible")
	assert.Nil(t, db.AddFungible(f), "add error")
	assert.Equal(t, fault.ErrFungibleExists, db.AddFungible(f), "duplicate add")

	found, _ := db.ExistsFungible(f.Sym)
	assert.True(t, found, "fungible missing by symbol")
	found, _ = db.ExistsFungibleID(f.Sym.ID())
	assert.True(t, found, "fungible missing by id")
	found, _ = db.ExistsFungibleID(f.Sym.ID() + 1)
	assert.False(t, found, "wrong id found")

	f.TotalSupply = asset.MustNew(2000000000, f.Sym)
	assert.Nil(t, db.UpdateFungible(f), "update error")

	back, err := db.ReadFungibleID(f.Sym.ID())
	assert.Nil(t, err, "read by id error")
	assert.Equal(t, f, back, "fungible read back by id")

	back, err = db.ReadFungible(f.Sym)
	assert.Nil(t, err, "read by symbol error")
	assert.Equal(t, f, back, "fungible read back by symbol")
}

func TestUnreadableRecordsRejected(t *testing.T) {
	db := setup(t)
	defer teardown(db)

	node := tokenrecord.GroupNode{Weight: 1, Key: &producerOne}
	for i := 0; i < tokenrecord.MaxGroupDepth; i += 1 {
		node = tokenrecord.GroupNode{Threshold: 1, Nodes: []tokenrecord.GroupNode{node}}
	}
	g := &tokenrecord.GroupDef{
		Name: name128.MustFromString("deep"),
		Key:  address.NewPublicKey(creatorKey),
		Root: node,
	}
	assert.Equal(t, fault.ErrGroupTreeDepth, db.AddGroup(g), "deep group added")
	found, _ := db.ExistsGroup(g.Name)
	assert.False(t, found, "deep group stored")

	g.Root = g.Root.Nodes[0]
	assert.Nil(t, db.AddGroup(g), "maximum depth group")
	g.Root = tokenrecord.GroupNode{Threshold: 1, Nodes: []tokenrecord.GroupNode{g.Root}}
	assert.Equal(t, fault.ErrGroupTreeDepth, db.UpdateGroup(g), "deep group update")
	_, err := db.ReadGroup(g.Name)
	assert.Nil(t, err, "stored group unreadable")

	f := testFungible()
	f.TotalSupply = asset.MustNew(100, asset.MustNewSymbol(4, f.Sym.ID()))
	assert.Equal(t, fault.ErrAssetSymbolMismatch, db.AddFungible(f), "mismatched fungible added")
	found, _ = db.ExistsFungible(f.Sym)
	assert.False(t, found, "mismatched fungible stored")

	assert.Nil(t, db.AddFungible(testFungible()), "add fungible")
	assert.Equal(t, fault.ErrAssetSymbolMismatch, db.UpdateFungible(f), "mismatched fungible update")
	_, err = db.ReadFungible(f.Sym)
	assert.Nil(t, err, "stored fungible unreadable")
}
