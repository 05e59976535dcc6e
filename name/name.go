// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package name - 64 bit packed identifiers
//
// up to 13 characters from the alphabet ".abcdefghijklmnopqrstuvwxyz12345"
// are packed 5 bits per character starting from the most significant
// bit; the 13th character only has the low 4 bits, so it is limited to
// the first 16 symbols (".abcdefghijklmno")
package name

import (
	"encoding/binary"
	"strings"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// maximum characters in a name
const MaxLength = 13

// number of bytes in packed form
const PackedLength = 8

const charmap = ".abcdefghijklmnopqrstuvwxyz12345"

// Name - a packed name, zero is the empty name
type Name uint64

// symbol value of a single character, unknown characters map to zero
func charToSymbol(c byte) uint64 {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 1
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 27
	}
	return 0
}

// encode without any validation
func encode(s string) Name {
	value := uint64(0)
	i := 0
	for ; i < len(s) && i < MaxLength-1; i += 1 {
		value |= (charToSymbol(s[i]) & 0x1f) << uint(64-5*(i+1))
	}
	if MaxLength-1 == i && len(s) > i {
		value |= charToSymbol(s[i]) & 0x0f
	}
	return Name(value)
}

// FromString - encode a string as a name
//
// the string must be normalised: re-decoding the packed value has to
// reproduce it exactly, otherwise the input contained characters
// outside the alphabet, trailing '.' or an illegal 13th character
func FromString(s string) (Name, error) {
	if len(s) > MaxLength {
		return 0, fault.ErrNameLength
	}
	n := encode(s)
	if n.String() != s {
		return 0, fault.ErrNameNotNormalised
	}
	return n, nil
}

// MustFromString - for constants and tests only
func MustFromString(s string) Name {
	n, err := FromString(s)
	if nil != err {
		panic("name: " + err.Error() + ": " + s)
	}
	return n
}

// String - decode to text with trailing '.' removed
func (n Name) String() string {
	var str [MaxLength]byte

	tmp := uint64(n)
	for i := 0; i < MaxLength; i += 1 {
		if 0 == i {
			str[MaxLength-1] = charmap[tmp&0x0f]
			tmp >>= 4
		} else {
			str[MaxLength-1-i] = charmap[tmp&0x1f]
			tmp >>= 5
		}
	}
	return strings.TrimRight(string(str[:]), ".")
}

// Empty - true for the zero name
func (n Name) Empty() bool {
	return 0 == n
}

// Bytes - little endian packed form
func (n Name) Bytes() []byte {
	b := make([]byte, PackedLength)
	binary.LittleEndian.PutUint64(b, uint64(n))
	return b
}

// Pack - append the packed form to a buffer
func (n Name) Pack(p util.Packed) util.Packed {
	return p.AppendUint64(uint64(n))
}

// Unpack - read a packed name
func Unpack(u *util.Unpacker) Name {
	return Name(u.Uint64())
}

// FromBytes - decode the 8 byte packed form
func FromBytes(b []byte) (Name, error) {
	if PackedLength != len(b) {
		return 0, fault.ErrNameTruncated
	}
	return Name(binary.LittleEndian.Uint64(b)), nil
}

// MarshalText - convert to text
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText - convert from text with normalisation check
func (n *Name) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*n = v
	return nil
}
