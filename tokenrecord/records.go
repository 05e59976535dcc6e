// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord

import (
	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/util"
)

// DomainDef - a token domain
type DomainDef struct {
	Name       name128.Name128
	Creator    publickey.PublicKey
	CreateTime uint32
	Issue      PermissionDef
	Transfer   PermissionDef
	Manage     PermissionDef
	Metas      []Meta
}

// TokenDef - a non-fungible token inside a domain
type TokenDef struct {
	Domain name128.Name128
	Name   name128.Name128
	Owner  []address.Address
	Metas  []Meta
}

// FungibleDef - a fungible asset definition
type FungibleDef struct {
	Name        name128.Name128
	SymName     name128.Name128
	Sym         asset.Symbol
	Creator     publickey.PublicKey
	CreateTime  uint32
	Issue       PermissionDef
	Manage      PermissionDef
	TotalSupply asset.Asset
	Metas       []Meta
}

// Validate - the total supply must be in the fungible's own symbol
func (f *FungibleDef) Validate() error {
	if f.TotalSupply.Symbol() != f.Sym {
		return fault.ErrAssetSymbolMismatch
	}
	return nil
}

// SuspendStatus - lifecycle of a suspended transaction
type SuspendStatus uint8

// suspend states
const (
	SuspendProposed SuspendStatus = iota
	SuspendExecuted
	SuspendFailed
	SuspendCancelled
)

var suspendStatusNames = []string{"proposed", "executed", "failed", "cancelled"}

// String - status name
func (s SuspendStatus) String() string {
	if int(s) < len(suspendStatusNames) {
		return suspendStatusNames[s]
	}
	return "unknown"
}

// SuspendDef - a proposed transaction collecting signatures
type SuspendDef struct {
	Name       name128.Name128
	Proposer   publickey.PublicKey
	Status     SuspendStatus
	Trx        []byte
	SignedKeys []publickey.PublicKey
}

// Pack - domain record
func (d *DomainDef) Pack() util.Packed {
	p := util.Packed{}.AppendVarint(uint64(DomainTag))
	p = d.Name.Pack(p)
	p = d.Creator.Pack(p)
	p = p.AppendUint32(d.CreateTime)
	p = d.Issue.pack(p)
	p = d.Transfer.pack(p)
	p = d.Manage.pack(p)
	return packMetas(p, d.Metas)
}

// UnpackDomain - decode a domain record
func UnpackDomain(buffer []byte) (*DomainDef, error) {
	u := beginUnpack(buffer, DomainTag)
	d := &DomainDef{
		Name:    name128.Unpack(u),
		Creator: publickey.Unpack(u),
	}
	d.CreateTime = u.Uint32()
	d.Issue = unpackPermission(u)
	d.Transfer = unpackPermission(u)
	d.Manage = unpackPermission(u)
	d.Metas = unpackMetas(u)
	if err := u.Done(); nil != err {
		return nil, err
	}
	return d, nil
}

// Pack - token record
func (t *TokenDef) Pack() util.Packed {
	p := util.Packed{}.AppendVarint(uint64(TokenTag))
	p = t.Domain.Pack(p)
	p = t.Name.Pack(p)
	p = p.AppendVarint(uint64(len(t.Owner)))
	for _, a := range t.Owner {
		p = a.Pack(p)
	}
	return packMetas(p, t.Metas)
}

// UnpackToken - decode a token record
func UnpackToken(buffer []byte) (*TokenDef, error) {
	u := beginUnpack(buffer, TokenTag)
	t := &TokenDef{
		Domain: name128.Unpack(u),
		Name:   name128.Unpack(u),
	}
	count := u.Count()
	if count > 0 {
		t.Owner = make([]address.Address, 0, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		t.Owner = append(t.Owner, address.Unpack(u))
	}
	t.Metas = unpackMetas(u)
	if err := u.Done(); nil != err {
		return nil, err
	}
	return t, nil
}

// Pack - fungible record
func (f *FungibleDef) Pack() util.Packed {
	p := util.Packed{}.AppendVarint(uint64(FungibleTag))
	p = f.Name.Pack(p)
	p = f.SymName.Pack(p)
	p = f.Sym.Pack(p)
	p = f.Creator.Pack(p)
	p = p.AppendUint32(f.CreateTime)
	p = f.Issue.pack(p)
	p = f.Manage.pack(p)
	p = f.TotalSupply.Pack(p)
	return packMetas(p, f.Metas)
}

// UnpackFungible - decode a fungible record
func UnpackFungible(buffer []byte) (*FungibleDef, error) {
	u := beginUnpack(buffer, FungibleTag)
	f := &FungibleDef{
		Name:    name128.Unpack(u),
		SymName: name128.Unpack(u),
		Sym:     asset.UnpackSymbol(u),
		Creator: publickey.Unpack(u),
	}
	f.CreateTime = u.Uint32()
	f.Issue = unpackPermission(u)
	f.Manage = unpackPermission(u)
	f.TotalSupply = asset.Unpack(u)
	if nil == u.Err() && f.TotalSupply.Symbol() != f.Sym {
		u.Fail(fault.ErrAssetSymbolMismatch)
	}
	f.Metas = unpackMetas(u)
	if err := u.Done(); nil != err {
		return nil, err
	}
	return f, nil
}

// Pack - suspend record
func (s *SuspendDef) Pack() util.Packed {
	p := util.Packed{}.AppendVarint(uint64(SuspendTag))
	p = s.Name.Pack(p)
	p = s.Proposer.Pack(p)
	p = p.AppendUint8(uint8(s.Status))
	p = p.AppendBytes(s.Trx)
	p = p.AppendVarint(uint64(len(s.SignedKeys)))
	for _, k := range s.SignedKeys {
		p = k.Pack(p)
	}
	return p
}

// UnpackSuspend - decode a suspend record
func UnpackSuspend(buffer []byte) (*SuspendDef, error) {
	u := beginUnpack(buffer, SuspendTag)
	s := &SuspendDef{
		Name:     name128.Unpack(u),
		Proposer: publickey.Unpack(u),
	}
	s.Status = SuspendStatus(u.Uint8())
	if nil == u.Err() && s.Status > SuspendCancelled {
		u.Fail(fault.ErrSuspendStatus)
	}
	s.Trx = u.Bytes()
	count := u.Count()
	if count > 0 {
		s.SignedKeys = make([]publickey.PublicKey, 0, count)
	}
	for i := 0; i < count && nil == u.Err(); i += 1 {
		s.SignedKeys = append(s.SignedKeys, publickey.Unpack(u))
	}
	if err := u.Done(); nil != err {
		return nil, err
	}
	return s, nil
}
