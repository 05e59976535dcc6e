// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokenrecord

import (
	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/util"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of the packed record
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	DomainTag   = TagType(iota)
	TokenTag    = TagType(iota)
	GroupTag    = TagType(iota)
	FungibleTag = TagType(iota)
	SuspendTag  = TagType(iota)

	// this item must be last
	InvalidTag = TagType(iota)
)

// start unpacking a record, checking its tag
func beginUnpack(buffer []byte, expected TagType) *util.Unpacker {
	u := util.NewUnpacker(buffer)
	tag := TagType(u.Varint())
	if nil == u.Err() && expected != tag {
		u.Fail(fault.ErrRecordTag)
	}
	return u
}

// RecordTag - the tag of a packed record, InvalidTag if unreadable
func RecordTag(buffer []byte) TagType {
	u := util.NewUnpacker(buffer)
	tag := TagType(u.Varint())
	if nil != u.Err() || NullTag == tag || tag >= InvalidTag {
		return InvalidTag
	}
	return tag
}
