// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb

import (
	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/util"
)

// UpdateAsset - set the balance of an address, creating it if absent
func (db *TokenDB) UpdateAsset(addr address.Address, a asset.Asset) error {
	return db.put(db.pools.Assets, assetKey(addr, a.Symbol().ID()), a.Pack(nil))
}

// ExistsAnyAsset - check if an address holds any balance record
func (db *TokenDB) ExistsAnyAsset(addr address.Address) (bool, error) {
	found := false
	err := db.pools.Assets.Iterate(addressKey(addr), func(_ []byte, _ []byte) bool {
		found = true
		return false
	})
	return found, err
}

// ExistsAsset - check for the balance of one symbol
func (db *TokenDB) ExistsAsset(addr address.Address, sym asset.Symbol) (bool, error) {
	return db.pools.Assets.Has(assetKey(addr, sym.ID()))
}

// ReadAsset - fetch the balance of one symbol
func (db *TokenDB) ReadAsset(addr address.Address, sym asset.Symbol) (asset.Asset, error) {
	value, err := db.read(db.pools.Assets, assetKey(addr, sym.ID()), fault.ErrAssetNotFound)
	if nil != err {
		return asset.Asset{}, err
	}
	return unpackAsset(value)
}

// ReadAssetNoThrow - fetch the balance of one symbol, a zero amount of
// sym if there is none
func (db *TokenDB) ReadAssetNoThrow(addr address.Address, sym asset.Symbol) (asset.Asset, error) {
	a, err := db.ReadAsset(addr, sym)
	if fault.IsErrNotFound(err) {
		return asset.Zero(sym), nil
	}
	return a, err
}

// ReadAllAssets - visit every balance of an address in symbol id
// order, the visitor returns false to stop
func (db *TokenDB) ReadAllAssets(addr address.Address, visitor func(asset.Asset) bool) error {
	var err error
	iterErr := db.pools.Assets.Iterate(addressKey(addr), func(_ []byte, value []byte) bool {
		a, e := unpackAsset(value)
		if nil != e {
			err = e
			return false
		}
		return visitor(a)
	})
	if nil == err {
		err = iterErr
	}
	return err
}

func unpackAsset(value []byte) (asset.Asset, error) {
	u := util.NewUnpacker(value)
	a := asset.Unpack(u)
	if err := u.Done(); nil != err {
		return asset.Asset{}, err
	}
	return a, nil
}

// UpdateProdVote - set the vote of a producer key for a config key
func (db *TokenDB) UpdateProdVote(confKey name.Name, key publickey.PublicKey, value int64) error {
	return db.put(db.pools.ProdVotes, voteKey(confKey, key), util.Packed{}.AppendInt64(value))
}

// ReadProdVotesNoThrow - visit every vote for a config key, nothing
// is visited if there are none; the visitor returns false to stop
func (db *TokenDB) ReadProdVotesNoThrow(confKey name.Name, visitor func(publickey.PublicKey, int64) bool) error {
	prefix := confKey.Bytes()

	var err error
	iterErr := db.pools.ProdVotes.Iterate(prefix, func(key []byte, value []byte) bool {
		pk, e := publickey.FromBytes(key[len(prefix):])
		if nil != e {
			err = e
			return false
		}
		u := util.NewUnpacker(value)
		v := u.Int64()
		if e := u.Done(); nil != e {
			err = e
			return false
		}
		return visitor(pk, v)
	})
	if nil == err {
		err = iterErr
	}
	return err
}
