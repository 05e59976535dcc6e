// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package asset - fungible symbols and amounts
//
// validation happens in the constructors and in Unpack, so a value
// obtained from this package is always in range
package asset
