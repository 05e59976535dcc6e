// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// MaxAmount - magnitude of an amount must stay below 2^62
const MaxAmount = int64(1)<<62 - 1

// Asset - an amount of a symbol
type Asset struct {
	amount int64
	sym    Symbol
}

// New - build an asset with range and symbol checks
func New(amount int64, sym Symbol) (Asset, error) {
	if amount < -MaxAmount || amount > MaxAmount {
		return Asset{}, fault.ErrAssetAmountOutOfRange
	}
	if !sym.Valid() {
		return Asset{}, fault.ErrSymbolPrecision
	}
	return Asset{amount: amount, sym: sym}, nil
}

// MustNew - for constants and tests only
func MustNew(amount int64, sym Symbol) Asset {
	a, err := New(amount, sym)
	if nil != err {
		panic("asset: " + err.Error())
	}
	return a
}

// Zero - no amount of a symbol
func Zero(sym Symbol) Asset {
	return Asset{sym: sym}
}

// Amount - raw amount in the smallest unit
func (a Asset) Amount() int64 { return a.amount }

// Symbol - the symbol
func (a Asset) Symbol() Symbol { return a.sym }

// Add - sum of two assets of the same symbol
func (a Asset) Add(b Asset) (Asset, error) {
	if a.sym != b.sym {
		return Asset{}, fault.ErrAssetSymbolMismatch
	}
	return New(a.amount+b.amount, a.sym)
}

// Sub - difference of two assets of the same symbol
func (a Asset) Sub(b Asset) (Asset, error) {
	if a.sym != b.sym {
		return Asset{}, fault.ErrAssetSymbolMismatch
	}
	return New(a.amount-b.amount, a.sym)
}

// String - "<decimal amount> S#<id>"
func (a Asset) String() string {
	precision := int(a.sym.Precision())

	negative := a.amount < 0
	magnitude := uint64(a.amount)
	if negative {
		magnitude = uint64(-a.amount)
	}
	digits := strconv.FormatUint(magnitude, 10)

	text := digits
	if precision > 0 {
		if len(digits) <= precision {
			digits = strings.Repeat("0", precision-len(digits)+1) + digits
		}
		split := len(digits) - precision
		text = digits[:split] + "." + digits[split:]
	}
	if negative {
		text = "-" + text
	}
	return text + " S#" + strconv.FormatUint(uint64(a.sym.ID()), 10)
}

// FromString - parse "<decimal amount> S#<id>", the number of decimal
// places gives the precision
func FromString(text string) (Asset, error) {
	parts := strings.Split(text, " ")
	if 2 != len(parts) || !strings.HasPrefix(parts[1], "S#") {
		return Asset{}, fault.ErrSymbolFormat
	}
	id, err := strconv.ParseUint(parts[1][2:], 10, 32)
	if nil != err {
		return Asset{}, fault.ErrSymbolFormat
	}

	number := parts[0]
	precision := 0
	if dot := strings.IndexByte(number, '.'); dot >= 0 {
		precision = len(number) - dot - 1
		if 0 == precision {
			return Asset{}, fault.ErrSymbolFormat
		}
		number = number[:dot] + number[dot+1:]
	}
	if precision > MaxPrecision {
		return Asset{}, fault.ErrSymbolPrecision
	}
	amount, err := strconv.ParseInt(number, 10, 64)
	if nil != err {
		return Asset{}, fault.ErrAssetAmountOutOfRange
	}
	sym, err := NewSymbol(uint8(precision), uint32(id))
	if nil != err {
		return Asset{}, err
	}
	return New(amount, sym)
}

// Pack - amount(i64) ++ symbol(u64), little endian
func (a Asset) Pack(p util.Packed) util.Packed {
	p = p.AppendInt64(a.amount)
	return a.sym.Pack(p)
}

// Unpack - read and validate an asset
func Unpack(u *util.Unpacker) Asset {
	amount := u.Int64()
	sym := UnpackSymbol(u)
	if nil != u.Err() {
		return Asset{}
	}
	a, err := New(amount, sym)
	if nil != err {
		u.Fail(err)
	}
	return a
}
