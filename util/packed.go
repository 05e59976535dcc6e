// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"

	"github.com/bitmark-inc/tokendb/fault"
)

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// Packed - a byte buffer built up from fields
//
// fixed width integers are little endian so that packed identifiers
// match their in-memory layout; counts and lengths are Varint64
type Packed []byte

// AppendUint8 - add a single byte
func (p Packed) AppendUint8(value uint8) Packed {
	return append(p, value)
}

// AppendUint16 - add a little endian uint16
func (p Packed) AppendUint16(value uint16) Packed {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], value)
	return append(p, b[:]...)
}

// AppendUint32 - add a little endian uint32
func (p Packed) AppendUint32(value uint32) Packed {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return append(p, b[:]...)
}

// AppendUint64 - add a little endian uint64
func (p Packed) AppendUint64(value uint64) Packed {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	return append(p, b[:]...)
}

// AppendInt64 - add a little endian two's complement int64
func (p Packed) AppendInt64(value int64) Packed {
	return p.AppendUint64(uint64(value))
}

// AppendVarint - add a Varint64
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// ...
// byte 8:  ext | B55 | B54 | B53 | B52 | B51 | B50 | B49
// byte 9:  B63 | B62 | B61 | B60 | B59 | B58 | B57 | B56
func (p Packed) AppendVarint(value uint64) Packed {
	for i := 1; i < Varint64MaximumBytes; i += 1 {
		if value < 0x80 {
			return append(p, byte(value))
		}
		p = append(p, byte(value)|0x80)
		value >>= 7
	}
	return append(p, byte(value))
}

// AppendFixed - add raw bytes with no length
func (p Packed) AppendFixed(data []byte) Packed {
	return append(p, data...)
}

// AppendBytes - add Varint64(length) followed by the bytes
func (p Packed) AppendBytes(data []byte) Packed {
	p = p.AppendVarint(uint64(len(data)))
	return append(p, data...)
}

// AppendString - add Varint64(length) followed by the UTF-8 bytes
func (p Packed) AppendString(s string) Packed {
	p = p.AppendVarint(uint64(len(s)))
	return append(p, s...)
}

// Unpacker - sequential reader over a Packed buffer
//
// the first failure is sticky: every later read returns a zero value
// and Err reports the original failure
type Unpacker struct {
	buffer []byte
	n      int
	err    error
}

// NewUnpacker - start reading at the beginning of buffer
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Err - first failure encountered
func (u *Unpacker) Err() error {
	return u.err
}

// Fail - record a validation failure found by a caller
func (u *Unpacker) Fail(err error) {
	if nil == u.err {
		u.err = err
	}
}

// Remaining - number of unread bytes
func (u *Unpacker) Remaining() int {
	return len(u.buffer) - u.n
}

// Done - check that the whole buffer was consumed without error
func (u *Unpacker) Done() error {
	if nil != u.err {
		return u.err
	}
	if u.n != len(u.buffer) {
		return fault.ErrRecordTrailingData
	}
	return nil
}

// Fixed - read exactly count bytes, returning a copy
func (u *Unpacker) Fixed(count int) []byte {
	if nil != u.err {
		return nil
	}
	if count < 0 || u.Remaining() < count {
		u.err = fault.ErrRecordTruncated
		return nil
	}
	b := make([]byte, count)
	copy(b, u.buffer[u.n:u.n+count])
	u.n += count
	return b
}

// Uint8 - read a single byte
func (u *Unpacker) Uint8() uint8 {
	b := u.Fixed(1)
	if nil == b {
		return 0
	}
	return b[0]
}

// Uint16 - read a little endian uint16
func (u *Unpacker) Uint16() uint16 {
	b := u.Fixed(2)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 - read a little endian uint32
func (u *Unpacker) Uint32() uint32 {
	b := u.Fixed(4)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 - read a little endian uint64
func (u *Unpacker) Uint64() uint64 {
	b := u.Fixed(8)
	if nil == b {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int64 - read a little endian int64
func (u *Unpacker) Int64() int64 {
	return int64(u.Uint64())
}

// Varint - read a Varint64
func (u *Unpacker) Varint() uint64 {
	result := uint64(0)
	shift := uint(0)
	for i := 1; i <= Varint64MaximumBytes; i += 1 {
		b := u.Uint8()
		if nil != u.err {
			return 0
		}
		if Varint64MaximumBytes == i {
			return result | uint64(b)<<shift
		}
		result |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			return result
		}
		shift += 7
	}
	return result
}

// Count - read a Varint64 element count that cannot exceed the unread bytes
//
// every element occupies at least one byte, so a larger count can
// only come from a corrupt buffer
func (u *Unpacker) Count() int {
	count := u.Varint()
	if nil != u.err {
		return 0
	}
	if count > uint64(u.Remaining()) {
		u.err = fault.ErrRecordTruncated
		return 0
	}
	return int(count)
}

// Bytes - read Varint64(length) followed by the bytes
func (u *Unpacker) Bytes() []byte {
	length := u.Count()
	if nil != u.err {
		return nil
	}
	return u.Fixed(length)
}

// String - read Varint64(length) followed by UTF-8 bytes
func (u *Unpacker) String() string {
	return string(u.Bytes())
}
