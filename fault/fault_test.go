// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokendb/fault"
)

var (
	ErrChecksumOne  = fault.ChecksumError("checksum one")
	ErrChecksumTwo  = fault.ChecksumError("checksum two")
	ErrExistsOne    = fault.ExistsError("exists one ")
	ErrExistsTwo    = fault.ExistsError("exists two")
	ErrInvalidOne   = fault.InvalidError("invalid one")
	ErrInvalidTwo   = fault.InvalidError("invalid two")
	ErrMalformedOne = fault.MalformedError("malformed one")
	ErrMalformedTwo = fault.MalformedError("malformed two")
	ErrNotFoundOne  = fault.NotFoundError("not found one")
	ErrNotFoundTwo  = fault.NotFoundError("not found two")
	ErrEngineOne    = fault.Engine("get", errors.New("disk on fire"))
)

// test that the error classes are distinct
func TestClasses(t *testing.T) {
	errorList := []struct {
		err       error
		checksum  bool
		exists    bool
		invalid   bool
		malformed bool
		notFound  bool
		engine    bool
	}{
		{ErrChecksumOne, true, false, false, false, false, false},
		{ErrChecksumTwo, true, false, false, false, false, false},
		{ErrExistsOne, false, true, false, false, false, false},
		{ErrExistsTwo, false, true, false, false, false, false},
		{ErrInvalidOne, false, false, true, false, false, false},
		{ErrInvalidTwo, false, false, true, false, false, false},
		{ErrMalformedOne, false, false, false, true, false, false},
		{ErrMalformedTwo, false, false, false, true, false, false},
		{ErrNotFoundOne, false, false, false, false, true, false},
		{ErrNotFoundTwo, false, false, false, false, true, false},
		{ErrEngineOne, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrChecksum(err) != e.checksum {
			t.Errorf("%d: expected 'checksum' == %v for err = %v", i, e.checksum, err)
		}
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrMalformed(err) != e.malformed {
			t.Errorf("%d: expected 'malformed' == %v for err = %v", i, e.malformed, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrEngine(err) != e.engine {
			t.Errorf("%d: expected 'engine' == %v for err = %v", i, e.engine, err)
		}
	}
}

func TestEngineWrap(t *testing.T) {
	cause := errors.New("short write")

	assert.Nil(t, fault.Engine("put", nil), "nil must pass through")

	err := fault.Engine("put", cause)
	assert.True(t, errors.Is(err, cause), "cause lost")
	assert.Equal(t, "engine put failed: short write", err.Error(), "wrong message")

	again := fault.Engine("write", err)
	assert.Equal(t, err, again, "engine error wrapped twice")
}
