// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package asset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// MaxPrecision - decimal places allowed in a symbol
const MaxPrecision = 18

// well known symbol ids
const (
	EVTSymbolID  = 1
	PEVTSymbolID = 2
)

// Symbol - precision and id packed as (precision << 32) | id
type Symbol uint64

// NewSymbol - build a symbol, checking the precision
func NewSymbol(precision uint8, id uint32) (Symbol, error) {
	if precision > MaxPrecision {
		return 0, fault.ErrSymbolPrecision
	}
	return Symbol(uint64(precision)<<32 | uint64(id)), nil
}

// MustNewSymbol - for constants and tests only
func MustNewSymbol(precision uint8, id uint32) Symbol {
	s, err := NewSymbol(precision, id)
	if nil != err {
		panic("symbol: " + err.Error())
	}
	return s
}

// EVT - the core symbol
func EVT() Symbol { return MustNewSymbol(5, EVTSymbolID) }

// PEVT - the pinned core symbol
func PEVT() Symbol { return MustNewSymbol(5, PEVTSymbolID) }

// Precision - decimal places
func (s Symbol) Precision() uint8 { return uint8(s >> 32) }

// ID - symbol id
func (s Symbol) ID() uint32 { return uint32(s) }

// Valid - precision in range
func (s Symbol) Valid() bool { return s.Precision() <= MaxPrecision }

// String - "precision,S#id"
func (s Symbol) String() string {
	return fmt.Sprintf("%d,S#%d", s.Precision(), s.ID())
}

// SymbolFromString - parse "precision,S#id"
func SymbolFromString(text string) (Symbol, error) {
	parts := strings.SplitN(text, ",", 2)
	if 2 != len(parts) || !strings.HasPrefix(parts[1], "S#") {
		return 0, fault.ErrSymbolFormat
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if nil != err {
		return 0, fault.ErrSymbolFormat
	}
	id, err := strconv.ParseUint(parts[1][2:], 10, 32)
	if nil != err {
		return 0, fault.ErrSymbolFormat
	}
	return NewSymbol(uint8(precision), uint32(id))
}

// Pack - append as little endian uint64
func (s Symbol) Pack(p util.Packed) util.Packed {
	return p.AppendUint64(uint64(s))
}

// UnpackSymbol - read and validate a symbol
func UnpackSymbol(u *util.Unpacker) Symbol {
	s := Symbol(u.Uint64())
	if nil == u.Err() && !s.Valid() {
		u.Fail(fault.ErrSymbolPrecision)
	}
	return s
}
