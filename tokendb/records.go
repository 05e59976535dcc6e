// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb

import (
	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/tokenrecord"
)

// AddDomain - store a new domain
func (db *TokenDB) AddDomain(d *tokenrecord.DomainDef) error {
	return db.add(db.pools.Domains, nameKey(d.Name), d.Pack(), fault.ErrDomainExists)
}

// UpdateDomain - replace an existing domain
func (db *TokenDB) UpdateDomain(d *tokenrecord.DomainDef) error {
	return db.update(db.pools.Domains, nameKey(d.Name), d.Pack(), fault.ErrDomainNotFound)
}

// ExistsDomain - check for a domain
func (db *TokenDB) ExistsDomain(domain name128.Name128) (bool, error) {
	return db.pools.Domains.Has(nameKey(domain))
}

// ReadDomain - fetch a domain
func (db *TokenDB) ReadDomain(domain name128.Name128) (*tokenrecord.DomainDef, error) {
	value, err := db.read(db.pools.Domains, nameKey(domain), fault.ErrDomainNotFound)
	if nil != err {
		return nil, err
	}
	return tokenrecord.UnpackDomain(value)
}

// IssueTokens - create tokens in an existing domain, all owned by owner
//
// nothing is written unless the domain exists and every name is new
func (db *TokenDB) IssueTokens(domain name128.Name128, names []name128.Name128, owner []address.Address) error {
	found, err := db.ExistsDomain(domain)
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrDomainNotFound
	}

	seen := make(map[name128.Name128]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return fault.ErrTokenExists
		}
		seen[n] = struct{}{}

		found, err := db.pools.Tokens.Has(tokenKey(domain, n))
		if nil != err {
			return err
		}
		if found {
			return fault.ErrTokenExists
		}
	}

	for _, n := range names {
		t := tokenrecord.TokenDef{
			Domain: domain,
			Name:   n,
			Owner:  owner,
		}
		err := db.put(db.pools.Tokens, tokenKey(domain, n), t.Pack())
		if nil != err {
			return err
		}
	}
	db.log.Debugf("issued %d tokens in domain: %s", len(names), domain)
	return nil
}

// AddToken - store a new token
func (db *TokenDB) AddToken(t *tokenrecord.TokenDef) error {
	return db.add(db.pools.Tokens, tokenKey(t.Domain, t.Name), t.Pack(), fault.ErrTokenExists)
}

// UpdateToken - replace an existing token
func (db *TokenDB) UpdateToken(t *tokenrecord.TokenDef) error {
	return db.update(db.pools.Tokens, tokenKey(t.Domain, t.Name), t.Pack(), fault.ErrTokenNotFound)
}

// ExistsToken - check for a token
func (db *TokenDB) ExistsToken(domain name128.Name128, token name128.Name128) (bool, error) {
	return db.pools.Tokens.Has(tokenKey(domain, token))
}

// ReadToken - fetch a token
func (db *TokenDB) ReadToken(domain name128.Name128, token name128.Name128) (*tokenrecord.TokenDef, error) {
	value, err := db.read(db.pools.Tokens, tokenKey(domain, token), fault.ErrTokenNotFound)
	if nil != err {
		return nil, err
	}
	return tokenrecord.UnpackToken(value)
}

// ReadTokens - visit the tokens of a domain in key order, the visitor
// returns false to stop
func (db *TokenDB) ReadTokens(domain name128.Name128, visitor func(*tokenrecord.TokenDef) bool) error {
	var err error
	iterErr := db.pools.Tokens.Iterate(nameKey(domain), func(_ []byte, value []byte) bool {
		t, e := tokenrecord.UnpackToken(value)
		if nil != e {
			err = e
			return false
		}
		return visitor(t)
	})
	if nil == err {
		err = iterErr
	}
	return err
}

// AddGroup - store a new group
func (db *TokenDB) AddGroup(g *tokenrecord.GroupDef) error {
	if err := g.Validate(); nil != err {
		return err
	}
	return db.add(db.pools.Groups, nameKey(g.Name), g.Pack(), fault.ErrGroupExists)
}

// UpdateGroup - replace an existing group
func (db *TokenDB) UpdateGroup(g *tokenrecord.GroupDef) error {
	if err := g.Validate(); nil != err {
		return err
	}
	return db.update(db.pools.Groups, nameKey(g.Name), g.Pack(), fault.ErrGroupNotFound)
}

// ExistsGroup - check for a group
func (db *TokenDB) ExistsGroup(group name128.Name128) (bool, error) {
	return db.pools.Groups.Has(nameKey(group))
}

// ReadGroup - fetch a group
func (db *TokenDB) ReadGroup(group name128.Name128) (*tokenrecord.GroupDef, error) {
	value, err := db.read(db.pools.Groups, nameKey(group), fault.ErrGroupNotFound)
	if nil != err {
		return nil, err
	}
	return tokenrecord.UnpackGroup(value)
}

// AddSuspend - store a new suspended transaction
func (db *TokenDB) AddSuspend(s *tokenrecord.SuspendDef) error {
	return db.add(db.pools.Suspends, nameKey(s.Name), s.Pack(), fault.ErrSuspendExists)
}

// UpdateSuspend - replace an existing suspended transaction
func (db *TokenDB) UpdateSuspend(s *tokenrecord.SuspendDef) error {
	return db.update(db.pools.Suspends, nameKey(s.Name), s.Pack(), fault.ErrSuspendNotFound)
}

// ExistsSuspend - check for a suspended transaction
func (db *TokenDB) ExistsSuspend(proposal name128.Name128) (bool, error) {
	return db.pools.Suspends.Has(nameKey(proposal))
}

// ReadSuspend - fetch a suspended transaction
func (db *TokenDB) ReadSuspend(proposal name128.Name128) (*tokenrecord.SuspendDef, error) {
	value, err := db.read(db.pools.Suspends, nameKey(proposal), fault.ErrSuspendNotFound)
	if nil != err {
		return nil, err
	}
	return tokenrecord.UnpackSuspend(value)
}

// AddFungible - store a new fungible, keyed by symbol id
func (db *TokenDB) AddFungible(f *tokenrecord.FungibleDef) error {
	if err := f.Validate(); nil != err {
		return err
	}
	return db.add(db.pools.Fungibles, symbolKey(f.Sym.ID()), f.Pack(), fault.ErrFungibleExists)
}

// UpdateFungible - replace an existing fungible
func (db *TokenDB) UpdateFungible(f *tokenrecord.FungibleDef) error {
	if err := f.Validate(); nil != err {
		return err
	}
	return db.update(db.pools.Fungibles, symbolKey(f.Sym.ID()), f.Pack(), fault.ErrFungibleNotFound)
}

// ExistsFungible - check for the fungible of a symbol
func (db *TokenDB) ExistsFungible(sym asset.Symbol) (bool, error) {
	return db.ExistsFungibleID(sym.ID())
}

// ExistsFungibleID - check for the fungible with a symbol id
func (db *TokenDB) ExistsFungibleID(id uint32) (bool, error) {
	return db.pools.Fungibles.Has(symbolKey(id))
}

// ReadFungible - fetch the fungible of a symbol
func (db *TokenDB) ReadFungible(sym asset.Symbol) (*tokenrecord.FungibleDef, error) {
	return db.ReadFungibleID(sym.ID())
}

// ReadFungibleID - fetch the fungible with a symbol id
func (db *TokenDB) ReadFungibleID(id uint32) (*tokenrecord.FungibleDef, error) {
	value, err := db.read(db.pools.Fungibles, symbolKey(id), fault.ErrFungibleNotFound)
	if nil != err {
		return nil, err
	}
	return tokenrecord.UnpackFungible(value)
}
