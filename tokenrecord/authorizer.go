// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord

import (
	"strings"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/util"
)

// AuthorizerRefType - what an authorizer reference points to
type AuthorizerRefType uint8

// reference kinds, values are also the packed tag
const (
	AccountRef AuthorizerRefType = iota
	OwnerRef
	GroupRef
)

// text prefixes
const (
	accountRefPrefix = "[A] "
	groupRefPrefix   = "[G] "
	ownerRefText     = "[G] .OWNER"
)

// AuthorizerRef - a single key, the token owner, or a named group
type AuthorizerRef struct {
	kind  AuthorizerRefType
	key   publickey.PublicKey
	group name128.Name128
}

// NewAccountRef - reference to a single key
func NewAccountRef(key publickey.PublicKey) AuthorizerRef {
	return AuthorizerRef{kind: AccountRef, key: key}
}

// NewOwnerRef - reference to the current owner
func NewOwnerRef() AuthorizerRef {
	return AuthorizerRef{kind: OwnerRef}
}

// NewGroupRef - reference to a group
func NewGroupRef(group name128.Name128) AuthorizerRef {
	return AuthorizerRef{kind: GroupRef, group: group}
}

// Type - reference kind
func (r AuthorizerRef) Type() AuthorizerRefType { return r.kind }

// Account - key of an account reference
func (r AuthorizerRef) Account() publickey.PublicKey { return r.key }

// Group - name of a group reference
func (r AuthorizerRef) Group() name128.Name128 { return r.group }

// String - "[A] <key>", "[G] .OWNER" or "[G] <group>"
func (r AuthorizerRef) String() string {
	switch r.kind {
	case AccountRef:
		return accountRefPrefix + r.key.String()
	case OwnerRef:
		return ownerRefText
	default:
		return groupRefPrefix + r.group.String()
	}
}

// AuthorizerRefFromString - parse the text form
func AuthorizerRefFromString(s string) (AuthorizerRef, error) {
	if len(s) <= len(accountRefPrefix) {
		return AuthorizerRef{}, fault.ErrAuthorizerRefType
	}
	switch {
	case strings.HasPrefix(s, accountRefPrefix):
		key, err := publickey.FromString(s[len(accountRefPrefix):])
		if nil != err {
			return AuthorizerRef{}, err
		}
		return NewAccountRef(key), nil

	case ownerRefText == s:
		return NewOwnerRef(), nil

	case strings.HasPrefix(s, groupRefPrefix):
		group, err := name128.FromString(s[len(groupRefPrefix):])
		if nil != err {
			return AuthorizerRef{}, err
		}
		return NewGroupRef(group), nil
	}
	return AuthorizerRef{}, fault.ErrAuthorizerRefType
}

func (r AuthorizerRef) pack(p util.Packed) util.Packed {
	p = p.AppendUint8(uint8(r.kind))
	switch r.kind {
	case AccountRef:
		p = r.key.Pack(p)
	case GroupRef:
		p = r.group.Pack(p)
	}
	return p
}

func unpackAuthorizerRef(u *util.Unpacker) AuthorizerRef {
	kind := AuthorizerRefType(u.Uint8())
	if nil != u.Err() {
		return AuthorizerRef{}
	}
	switch kind {
	case AccountRef:
		return NewAccountRef(publickey.Unpack(u))
	case OwnerRef:
		return NewOwnerRef()
	case GroupRef:
		return NewGroupRef(name128.Unpack(u))
	}
	u.Fail(fault.ErrAuthorizerRefType)
	return AuthorizerRef{}
}

// AuthorizerWeight - a weighted authorizer in a permission
type AuthorizerWeight struct {
	Ref    AuthorizerRef
	Weight uint16
}

// PermissionDef - a named permission satisfied when the weights of
// the signing authorizers reach the threshold
type PermissionDef struct {
	Name        name.Name
	Threshold   uint32
	Authorizers []AuthorizerWeight
}

func (d *PermissionDef) pack(p util.Packed) util.Packed {
	p = d.Name.Pack(p)
	p = p.AppendUint32(d.Threshold)
	p = p.AppendVarint(uint64(len(d.Authorizers)))
	for _, a := range d.Authorizers {
		p = a.Ref.pack(p)
		p = p.AppendUint16(a.Weight)
	}
	return p
}

func unpackPermission(u *util.Unpacker) PermissionDef {
	d := PermissionDef{
		Name:      name.Unpack(u),
		Threshold: u.Uint32(),
	}
	count := u.Count()
	if count > 0 {
		d.Authorizers = make([]AuthorizerWeight, 0, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		ref := unpackAuthorizerRef(u)
		weight := u.Uint16()
		d.Authorizers = append(d.Authorizers, AuthorizerWeight{Ref: ref, Weight: weight})
	}
	return d
}

// Meta - a key/value annotation on a domain, token or fungible
type Meta struct {
	Key     name128.Name128
	Value   string
	Creator AuthorizerRef
}

func packMetas(p util.Packed, metas []Meta) util.Packed {
	p = p.AppendVarint(uint64(len(metas)))
	for _, m := range metas {
		p = m.Key.Pack(p)
		p = p.AppendString(m.Value)
		p = m.Creator.pack(p)
	}
	return p
}

func unpackMetas(u *util.Unpacker) []Meta {
	count := u.Count()
	if 0 == count {
		return nil
	}
	metas := make([]Meta, 0, count)
	for i := 0; i < count && nil == u.Err(); i += 1 {
		m := Meta{
			Key:   name128.Unpack(u),
			Value: u.String(),
		}
		m.Creator = unpackAuthorizerRef(u)
		metas = append(metas, m)
	}
	return metas
}
