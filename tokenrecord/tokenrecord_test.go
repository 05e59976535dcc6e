// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/tokenrecord"
)

func TestDomain(t *testing.T) {
	d := testDomain()
	packed := d.Pack()
	assert.Equal(t, tokenrecord.DomainTag, tokenrecord.RecordTag(packed), "wrong tag")

	back, err := tokenrecord.UnpackDomain(packed)
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, d, back, "domain round trip")
}

func TestToken(t *testing.T) {
	tk := testToken()
	back, err := tokenrecord.UnpackToken(tk.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, tk, back, "token round trip")
	assert.Nil(t, back.Metas, "no metas expected")
}

func TestFungible(t *testing.T) {
	f := testFungible()
	back, err := tokenrecord.UnpackFungible(f.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, f, back, "fungible round trip")
}

func TestFungibleSymbolMismatch(t *testing.T) {
	f := testFungible()
	f.Sym = f.Sym + 1
	_, err := tokenrecord.UnpackFungible(f.Pack())
	assert.Equal(t, fault.ErrAssetSymbolMismatch, err, "mismatch not detected")
	assert.Equal(t, fault.ErrAssetSymbolMismatch, f.Validate(), "validate accepted mismatch")
	assert.Nil(t, testFungible().Validate(), "validate rejected matching symbol")
}

func TestGroup(t *testing.T) {
	g := testGroup()
	back, err := tokenrecord.UnpackGroup(g.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, g, back, "group round trip")
	assert.False(t, back.Root.IsLeaf(), "root must not be a leaf")
	assert.True(t, back.Root.Nodes[0].IsLeaf(), "first child must be a leaf")
}

func TestGroupTooDeep(t *testing.T) {
	leaf := tokenrecord.GroupNode{Weight: 1, Key: &keyOne}
	node := leaf
	for i := 0; i < tokenrecord.MaxGroupDepth; i += 1 {
		node = tokenrecord.GroupNode{Threshold: 1, Nodes: []tokenrecord.GroupNode{node}}
	}
	g := &tokenrecord.GroupDef{
		Name: name128.MustFromString("deep"),
		Key:  testGroup().Key,
		Root: node,
	}
	_, err := tokenrecord.UnpackGroup(g.Pack())
	assert.Equal(t, fault.ErrGroupTreeDepth, err, "depth limit not applied")
	assert.Equal(t, fault.ErrGroupTreeDepth, g.Validate(), "validate accepted deep tree")

	// one level less is the deepest valid tree
	g.Root = g.Root.Nodes[0]
	assert.Nil(t, g.Validate(), "validate rejected maximum depth")
	back, err := tokenrecord.UnpackGroup(g.Pack())
	assert.Nil(t, err, "unpack of maximum depth")
	assert.Equal(t, g, back, "maximum depth round trip")
}

func TestSuspend(t *testing.T) {
	s := testSuspend()
	back, err := tokenrecord.UnpackSuspend(s.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, s, back, "suspend round trip")
	assert.Equal(t, "proposed", back.Status.String(), "status text")

	bad := testSuspend()
	bad.Status = tokenrecord.SuspendCancelled + 1
	_, err = tokenrecord.UnpackSuspend(bad.Pack())
	assert.Equal(t, fault.ErrSuspendStatus, err, "invalid status accepted")
}

func TestWrongTag(t *testing.T) {
	_, err := tokenrecord.UnpackToken(testDomain().Pack())
	assert.Equal(t, fault.ErrRecordTag, err, "domain read as token")

	assert.Equal(t, tokenrecord.InvalidTag, tokenrecord.RecordTag(nil), "empty buffer")
	assert.Equal(t, tokenrecord.InvalidTag, tokenrecord.RecordTag([]byte{0x00}), "null tag")
	assert.Equal(t, tokenrecord.InvalidTag, tokenrecord.RecordTag([]byte{0x7f}), "unknown tag")
}

func TestTruncatedAndTrailing(t *testing.T) {
	packed := testDomain().Pack()

	for i := 1; i < len(packed); i += 9 {
		_, err := tokenrecord.UnpackDomain(packed[:i])
		assert.NotNil(t, err, "truncated at %d accepted", i)
	}

	extra := append(packed, 0x00)
	_, err := tokenrecord.UnpackDomain(extra)
	assert.Equal(t, fault.ErrRecordTrailingData, err, "trailing byte accepted")
}

func TestAuthorizerRefText(t *testing.T) {
	refs := []tokenrecord.AuthorizerRef{
		tokenrecord.NewAccountRef(keyTwo),
		tokenrecord.NewOwnerRef(),
		tokenrecord.NewGroupRef(name128.MustFromString("council")),
	}
	expected := []string{
		"[A] " + keyTwo.String(),
		"[G] .OWNER",
		"[G] council",
	}
	for i, r := range refs {
		assert.Equal(t, expected[i], r.String(), "%d: text", i)
		back, err := tokenrecord.AuthorizerRefFromString(r.String())
		assert.Nil(t, err, "%d: parse error", i)
		assert.Equal(t, r, back, "%d: round trip", i)
	}

	invalid := []string{"", "[A] ", "[X] council", "[G] Bad Name", "[A] EVT123"}
	for _, s := range invalid {
		_, err := tokenrecord.AuthorizerRefFromString(s)
		assert.NotNil(t, err, "accepted: %q", s)
	}
}
