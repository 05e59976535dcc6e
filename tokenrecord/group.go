// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord

import (
	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/util"
)

// MaxGroupDepth - deepest node nesting accepted, the root is at depth 1
const MaxGroupDepth = 16

// GroupNode - a weighted node of a group tree, a leaf iff Key is set
type GroupNode struct {
	Threshold uint32
	Weight    uint16
	Key       *publickey.PublicKey
	Nodes     []GroupNode
}

// IsLeaf - node holds a key rather than children
func (n *GroupNode) IsLeaf() bool {
	return nil != n.Key
}

// GroupDef - a named group of keys
type GroupDef struct {
	Name name128.Name128
	Key  address.Address
	Root GroupNode
}

func (n *GroupNode) pack(p util.Packed) util.Packed {
	p = p.AppendUint32(n.Threshold)
	p = p.AppendUint16(n.Weight)
	if n.IsLeaf() {
		p = p.AppendUint8(1)
		return n.Key.Pack(p)
	}
	p = p.AppendUint8(0)
	p = p.AppendVarint(uint64(len(n.Nodes)))
	for i := range n.Nodes {
		p = n.Nodes[i].pack(p)
	}
	return p
}

func unpackGroupNode(u *util.Unpacker, depth int) GroupNode {
	if depth > MaxGroupDepth {
		u.Fail(fault.ErrGroupTreeDepth)
		return GroupNode{}
	}
	n := GroupNode{
		Threshold: u.Uint32(),
		Weight:    u.Uint16(),
	}
	switch u.Uint8() {
	case 0:
	case 1:
		key := publickey.Unpack(u)
		n.Key = &key
		return n
	default:
		u.Fail(fault.ErrRecordTag)
		return n
	}
	count := u.Count()
	if count > 0 {
		n.Nodes = make([]GroupNode, 0, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		n.Nodes = append(n.Nodes, unpackGroupNode(u, depth+1))
	}
	return n
}

// depth of the deepest node below and including n
func (n *GroupNode) depth() int {
	d := 1
	for i := range n.Nodes {
		if c := n.Nodes[i].depth() + 1; c > d {
			d = c
		}
	}
	return d
}

// Validate - reject a tree that UnpackGroup would not accept
func (g *GroupDef) Validate() error {
	if g.Root.depth() > MaxGroupDepth {
		return fault.ErrGroupTreeDepth
	}
	return nil
}

// Pack - group record
func (g *GroupDef) Pack() util.Packed {
	p := util.Packed{}.AppendVarint(uint64(GroupTag))
	p = g.Name.Pack(p)
	p = g.Key.Pack(p)
	return g.Root.pack(p)
}

// UnpackGroup - decode a group record
func UnpackGroup(buffer []byte) (*GroupDef, error) {
	u := beginUnpack(buffer, GroupTag)
	g := &GroupDef{
		Name: name128.Unpack(u),
		Key:  address.Unpack(u),
	}
	g.Root = unpackGroupNode(u, 1)
	if err := u.Done(); nil != err {
		return nil, err
	}
	return g, nil
}
