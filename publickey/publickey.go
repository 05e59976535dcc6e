// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publickey - compressed public keys and their checksummed text form
//
// text form:  "EVT" ++ base58(key ++ checksum)
// checksum:   first 4 bytes of RIPEMD-160(key)
//
// a compressed key starts with 0x02 or 0x03 so the base58 part is
// always 50 characters and the whole text 53
package publickey

import (
	"bytes"
	"strings"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// miscellaneous constants
const (
	Length         = 33
	TextLength     = 53
	Prefix         = "EVT"
	checksumLength = 4
)

// PublicKey - compressed public key bytes
type PublicKey [Length]byte

func checksum(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)[:checksumLength]
}

// FromBytes - validate the 33 byte binary form
func FromBytes(b []byte) (PublicKey, error) {
	k := PublicKey{}
	if Length != len(b) {
		return k, fault.ErrPublicKeyLength
	}
	if 0x02 != b[0] && 0x03 != b[0] {
		return k, fault.ErrPublicKeyPrefix
	}
	copy(k[:], b)
	return k, nil
}

// FromString - decode and verify the checksummed text form
func FromString(s string) (PublicKey, error) {
	k := PublicKey{}
	if TextLength != len(s) {
		return k, fault.ErrPublicKeyLength
	}
	if !strings.HasPrefix(s, Prefix) {
		return k, fault.ErrPublicKeyPrefix
	}
	decoded, err := base58.Decode(s[len(Prefix):])
	if nil != err || Length+checksumLength != len(decoded) {
		return k, fault.ErrPublicKeyLength
	}
	data := decoded[:Length]
	if !bytes.Equal(checksum(data), decoded[Length:]) {
		return k, fault.ErrPublicKeyChecksumMismatch
	}
	return FromBytes(data)
}

// MustFromString - for constants and tests only
func MustFromString(s string) PublicKey {
	k, err := FromString(s)
	if nil != err {
		panic("publickey: " + err.Error() + ": " + s)
	}
	return k
}

// String - checksummed text form
func (k PublicKey) String() string {
	data := make([]byte, 0, Length+checksumLength)
	data = append(data, k[:]...)
	data = append(data, checksum(k[:])...)
	return Prefix + base58.Encode(data)
}

// IsZero - true for the unset key
func (k PublicKey) IsZero() bool {
	return PublicKey{} == k
}

// Bytes - binary form
func (k PublicKey) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, k[:])
	return b
}

// Pack - append the binary form
func (k PublicKey) Pack(p util.Packed) util.Packed {
	return p.AppendFixed(k[:])
}

// Unpack - read and validate a binary key
func Unpack(u *util.Unpacker) PublicKey {
	b := u.Fixed(Length)
	if nil == b {
		return PublicKey{}
	}
	k, err := FromBytes(b)
	if nil != err {
		u.Fail(err)
	}
	return k
}

// MarshalText - convert to text
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText - convert from text
func (k *PublicKey) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*k = v
	return nil
}
