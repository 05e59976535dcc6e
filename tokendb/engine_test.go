// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tokendb/fault"
	"github.com/bitmark-inc/tokendb/storage/mocks"
	"github.com/bitmark-inc/tokendb/tokendb"
)

func newMockTokenDB(t *testing.T, ctl *gomock.Controller) (*tokendb.TokenDB, *mocks.MockEngine) {
	engine := mocks.NewMockEngine(ctl)
	engine.EXPECT().Iterate(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	db, err := tokendb.New(engine, tokendb.Options{})
	if nil != err {
		t.Fatalf("tokendb error: %s", err)
	}
	return db, engine
}

func TestEngineErrorOnRead(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, engine := newMockTokenDB(t, ctl)

	failure := fault.Engine("get", errors.New("i/o error"))
	engine.EXPECT().Get(gomock.Any()).Return(nil, failure).Times(2)

	_, err := db.ReadDomain(testDomainName)
	assert.Equal(t, failure, err, "engine error not returned")
	assert.True(t, fault.IsErrEngine(err), "wrong error class")

	// the no throw variant only hides NotFound
	_, err = db.ReadAssetNoThrow(ownerAddress, testSymbol)
	assert.True(t, fault.IsErrEngine(err), "engine error hidden")
}

func TestEngineErrorOnWrite(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	db, engine := newMockTokenDB(t, ctl)

	failure := fault.Engine("put", errors.New("disk full"))
	gomock.InOrder(
		engine.EXPECT().Has(gomock.Any()).Return(false, nil),
		engine.EXPECT().Get(gomock.Any()).Return(nil, nil),
		engine.EXPECT().Put(gomock.Any(), gomock.Any()).Return(failure),
	)

	err := db.AddDomain(testDomain())
	assert.Equal(t, failure, err, "engine error not returned")

	engine.EXPECT().Close().Return(nil).Times(1)
	assert.Nil(t, db.Close(), "close error")
}
