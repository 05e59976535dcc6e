// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tokenrecord - the record kinds held by the token database
//
// every record packs as Varint64(tag) followed by its fields in the
// order they are declared; lists are Varint64(count) followed by the
// elements, strings and opaque data are Varint64(length) ++ bytes.
// Identifiers use their own packed forms (name: 8 bytes, name128:
// variable width, public key: 33 bytes, address: tagged).
//
// Unpack functions validate every field and reject trailing data, so
// a record read back from the database is either exactly what was
// written or an error.
package tokenrecord
