// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package name128 - 128 bit packed identifiers with a variable width wire form
package name128

import (
	"encoding/binary"
	"strings"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// maximum characters in a name128
const MaxLength = 21

// bytes in the full fixed width form
const FullLength = 16

const charmap = ".-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// length classes held in the low 2 bits
const (
	I32  = 0 // <=  5 chars (2 +  5 * 6 =  32)
	I64  = 1 // <= 10 chars (2 + 10 * 6 =  62)
	I96  = 2 // <= 15 chars (2 + 15 * 6 =  92)
	I128 = 3 // <= 21 chars (2 + 21 * 6 = 128)
)

// Name128 - a packed 128 bit name, the zero value is the empty name
type Name128 struct {
	lo uint64
	hi uint64
}

func charToSymbol(c byte) uint64 {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 12
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 38
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 2
	case '-' == c:
		return 1
	}
	return 0
}

// length class for a string of the given length
func lengthClass(length int) uint64 {
	switch {
	case length <= 5:
		return I32
	case length <= 10:
		return I64
	case length <= 15:
		return I96
	}
	return I128
}

// wire width in bytes for a length class
func width(tag uint64) int {
	return 4 * (int(tag) + 1)
}

func (n *Name128) setSymbol(i int, v uint64) {
	p := uint(2 + 6*i)
	if p < 64 {
		n.lo |= v << p
		if p > 58 {
			n.hi |= v >> (64 - p)
		}
	} else {
		n.hi |= v << (p - 64)
	}
}

func (n Name128) symbol(i int) uint64 {
	p := uint(2 + 6*i)
	v := uint64(0)
	if p < 64 {
		v = n.lo >> p
		if p > 58 {
			v |= n.hi << (64 - p)
		}
	} else {
		v = n.hi >> (p - 64)
	}
	return v & 0x3f
}

// encode without any validation
func encode(s string) Name128 {
	n := Name128{}
	if 0 == len(s) {
		return n
	}
	for i := 0; i < len(s) && i < MaxLength; i += 1 {
		n.setSymbol(i, charToSymbol(s[i]))
	}
	n.lo |= lengthClass(len(s))
	return n
}

// FromString - encode a string as a name128
//
// the string must be normalised, i.e. decoding must give back exactly
// the same string
func FromString(s string) (Name128, error) {
	if len(s) > MaxLength {
		return Name128{}, fault.ErrName128Length
	}
	n := encode(s)
	if n.String() != s {
		return Name128{}, fault.ErrName128NotNormalised
	}
	return n, nil
}

// MustFromString - for constants and tests only
func MustFromString(s string) Name128 {
	n, err := FromString(s)
	if nil != err {
		panic("name128: " + err.Error() + ": " + s)
	}
	return n
}

// String - decode to text with trailing '.' removed
func (n Name128) String() string {
	var str [MaxLength]byte
	for i := 0; i < MaxLength; i += 1 {
		str[i] = charmap[n.symbol(i)]
	}
	return strings.TrimRight(string(str[:]), ".")
}

// Empty - true for the zero name
func (n Name128) Empty() bool {
	return 0 == n.lo && 0 == n.hi
}

// Reserved - names whose first character is '.'
func (n Name128) Reserved() bool {
	return 0 == n.symbol(0)
}

// Tag - the length class stored in the low 2 bits
func (n Name128) Tag() int {
	return int(n.lo & 0x03)
}

// Width - number of bytes used by Pack
func (n Name128) Width() int {
	return width(n.lo & 0x03)
}

// FixedBytes - full 16 byte little endian value, for keys and checksums
func (n Name128) FixedBytes() []byte {
	b := make([]byte, FullLength)
	binary.LittleEndian.PutUint64(b[0:8], n.lo)
	binary.LittleEndian.PutUint64(b[8:16], n.hi)
	return b
}

// FromFixedBytes - rebuild from the 16 byte value without validation
func FromFixedBytes(b []byte) (Name128, error) {
	if FullLength != len(b) {
		return Name128{}, fault.ErrName128Truncated
	}
	return Name128{
		lo: binary.LittleEndian.Uint64(b[0:8]),
		hi: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

// Normalised - true if the value is exactly what FromString produces
// for its own text form
func (n Name128) Normalised() bool {
	return encode(n.String()) == n
}

// Pack - append the variable width form: the first Width() bytes of
// the little endian value, so the first byte carries the length class
func (n Name128) Pack(p util.Packed) util.Packed {
	return p.AppendFixed(n.FixedBytes()[:n.Width()])
}

// Bytes - the variable width form on its own
func (n Name128) Bytes() []byte {
	return n.Pack(nil)
}

// Unpack - read a variable width name128
//
// the first 4 bytes are read before anything else so the length class
// decides how many more bytes belong to this value; the value must be
// normalised and carry the length class of its text
func Unpack(u *util.Unpacker) Name128 {
	head := u.Fixed(4)
	if nil == head {
		return Name128{}
	}
	full := make([]byte, FullLength)
	copy(full, head)

	w := width(uint64(head[0] & 0x03))
	if w > 4 {
		rest := u.Fixed(w - 4)
		if nil == rest {
			return Name128{}
		}
		copy(full[4:], rest)
	}

	n, _ := FromFixedBytes(full)
	if !n.Normalised() {
		u.Fail(fault.ErrName128NotNormalised)
		return Name128{}
	}
	return n
}

// FromBytes - decode a buffer holding exactly one packed name128
func FromBytes(b []byte) (Name128, error) {
	u := util.NewUnpacker(b)
	n := Unpack(u)
	if err := u.Done(); nil != err {
		if fault.ErrRecordTruncated == err {
			return Name128{}, fault.ErrName128Truncated
		}
		return Name128{}, err
	}
	return n, nil
}

// MarshalText - convert to text
func (n Name128) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText - convert from text with normalisation check
func (n *Name128) UnmarshalText(s []byte) error {
	v, err := FromString(string(s))
	if nil != err {
		return err
	}
	*n = v
	return nil
}
