// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/util"
)

// Type - the address variant
type Type uint8

// address variants, values are also the packed tag
const (
	Reserved Type = iota
	PublicKey
	Generated
)

// miscellaneous constants
const (
	TextLength  = 53
	BytesLength = publickey.Length

	generatedMarker = "EVT0"
	generatedLength = 4 + 4 + 8 + 16
)

// ReservedText - the text form of the reserved address
var ReservedText = publickey.Prefix + strings.Repeat("0", TextLength-len(publickey.Prefix))

// Address - tagged union of the three address variants
//
// the zero value is the reserved address; values are comparable with ==
type Address struct {
	kind   Type
	key    publickey.PublicKey
	prefix name.Name
	genKey name128.Name128
	nonce  uint32
}

// NewReserved - the reserved address
func NewReserved() Address {
	return Address{}
}

// NewPublicKey - an address owned by a key
func NewPublicKey(key publickey.PublicKey) Address {
	return Address{
		kind: PublicKey,
		key:  key,
	}
}

// NewGenerated - an address generated from a prefix, key and nonce
func NewGenerated(prefix name.Name, key name128.Name128, nonce uint32) Address {
	return Address{
		kind:   Generated,
		prefix: prefix,
		genKey: key,
		nonce:  nonce,
	}
}

// Type - which variant
func (a Address) Type() Type { return a.kind }

// IsReserved - variant test
func (a Address) IsReserved() bool { return Reserved == a.kind }

// IsPublicKey - variant test
func (a Address) IsPublicKey() bool { return PublicKey == a.kind }

// IsGenerated - variant test
func (a Address) IsGenerated() bool { return Generated == a.kind }

// PublicKey - the key of a public key address
func (a Address) PublicKey() publickey.PublicKey { return a.key }

// Prefix - prefix of a generated address
func (a Address) Prefix() name.Name { return a.prefix }

// Key - key of a generated address
func (a Address) Key() name128.Name128 { return a.genKey }

// Nonce - nonce of a generated address
func (a Address) Nonce() uint32 { return a.nonce }

// checksum: first 4 bytes of RIPEMD-160(prefix ++ key ++ nonce)
// interpreted as a little endian uint32
func generatedChecksum(prefix name.Name, key name128.Name128, nonce uint32) uint32 {
	data := util.Packed{}.
		AppendUint64(uint64(prefix)).
		AppendFixed(key.FixedBytes()).
		AppendUint32(nonce)

	h := ripemd160.New()
	h.Write(data)
	return binary.LittleEndian.Uint32(h.Sum(nil))
}

// packed generated form:
//   checksum(4) ++ nonce(4) ++ prefix(8) ++ key(16), all little endian
func (a Address) packGenerated() []byte {
	return util.Packed{}.
		AppendUint32(generatedChecksum(a.prefix, a.genKey, a.nonce)).
		AppendUint32(a.nonce).
		AppendUint64(uint64(a.prefix)).
		AppendFixed(a.genKey.FixedBytes())
}

func unpackGenerated(data []byte) (Address, error) {
	if generatedLength != len(data) {
		return Address{}, fault.ErrAddressPayload
	}
	u := util.NewUnpacker(data)
	check := u.Uint32()
	nonce := u.Uint32()
	prefix := name.Name(u.Uint64())
	key, _ := name128.FromFixedBytes(u.Fixed(name128.FullLength))

	if check != generatedChecksum(prefix, key, nonce) {
		return Address{}, fault.ErrAddressChecksumMismatch
	}

	a := NewGenerated(prefix, key, nonce)
	if err := a.validate(); nil != err {
		return Address{}, err
	}
	return a, nil
}

// generated components must be in normalised form
func (a Address) validate() error {
	if Generated != a.kind {
		return nil
	}
	if n, err := name.FromString(a.prefix.String()); nil != err || n != a.prefix {
		return fault.ErrAddressPayload
	}
	if !a.genKey.Normalised() {
		return fault.ErrAddressPayload
	}
	return nil
}

// String - the 53 character canonical text
func (a Address) String() string {
	switch a.kind {
	case PublicKey:
		return a.key.String()
	case Generated:
		hash := base58.Encode(a.packGenerated())
		return generatedMarker + strings.Repeat("0", TextLength-len(generatedMarker)-len(hash)) + hash
	default:
		return ReservedText
	}
}

// FromString - parse the canonical text
func FromString(s string) (Address, error) {
	if TextLength != len(s) {
		return Address{}, fault.ErrAddressLength
	}
	if !strings.HasPrefix(s, publickey.Prefix) {
		return Address{}, fault.ErrAddressPrefix
	}

	// base58 never contains '0'
	if '0' != s[len(publickey.Prefix)] {
		key, err := publickey.FromString(s)
		if nil != err {
			return Address{}, err
		}
		return NewPublicKey(key), nil
	}

	if ReservedText == s {
		return NewReserved(), nil
	}

	hash := strings.TrimLeft(s[len(generatedMarker):], "0")
	data, err := base58.Decode(hash)
	if nil != err {
		return Address{}, fault.ErrAddressPayload
	}
	return unpackGenerated(data)
}

// MustFromString - for constants and tests only
func MustFromString(s string) Address {
	a, err := FromString(s)
	if nil != err {
		panic("address: " + err.Error() + ": " + s)
	}
	return a
}

// Bytes - fixed 33 byte form used inside database keys
//
// reserved is all zero, a public key is its binary form and a
// generated address is its checksummed packed form zero padded
func (a Address) Bytes() []byte {
	b := make([]byte, BytesLength)
	switch a.kind {
	case PublicKey:
		copy(b, a.key[:])
	case Generated:
		copy(b, a.packGenerated())
	}
	return b
}

// Pack - append the tagged serialised form
func (a Address) Pack(p util.Packed) util.Packed {
	p = p.AppendUint8(uint8(a.kind))
	switch a.kind {
	case PublicKey:
		p = a.key.Pack(p)
	case Generated:
		p = a.prefix.Pack(p)
		p = a.genKey.Pack(p)
		p = p.AppendUint32(a.nonce)
	}
	return p
}

// Unpack - read a tagged address
func Unpack(u *util.Unpacker) Address {
	kind := Type(u.Uint8())
	if nil != u.Err() {
		return Address{}
	}
	switch kind {
	case Reserved:
		return NewReserved()
	case PublicKey:
		return NewPublicKey(publickey.Unpack(u))
	case Generated:
		prefix := name.Unpack(u)
		key := name128.Unpack(u)
		nonce := u.Uint32()
		a := NewGenerated(prefix, key, nonce)
		if err := a.validate(); nil != err {
			u.Fail(err)
		}
		return a
	}
	u.Fail(fault.ErrAddressType)
	return Address{}
}

// MarshalText - convert to text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from text
func (a *Address) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*a = v
	return nil
}
