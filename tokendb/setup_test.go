// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tokendb_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokendb/address"
	"github.com/bitmark-inc/tokendb/asset"
	"github.com/bitmark-inc/tokendb/name"
	"github.com/bitmark-inc/tokendb/name128"
	"github.com/bitmark-inc/tokendb/publickey"
	"github.com/bitmark-inc/tokendb/storage"
	"github.com/bitmark-inc/tokendb/tokendb"
	"github.com/bitmark-inc/tokendb/tokenrecord"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func setup(t *testing.T) *tokendb.TokenDB {
	engine, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	db, err := tokendb.New(engine, tokendb.Options{})
	if nil != err {
		t.Fatalf("tokendb error: %s", err)
	}
	return db
}

func teardown(db *tokendb.TokenDB) {
	_ = db.Close()
}

func makeKey(first byte, fill byte) publickey.PublicKey {
	b := make([]byte, publickey.Length)
	b[0] = first
	for i := 1; i < len(b); i += 1 {
		b[i] = fill + byte(i*3)
	}
	k, err := publickey.FromBytes(b)
	if nil != err {
		panic(err)
	}
	return k
}

var (
	creatorKey  = makeKey(0x02, 0x10)
	producerOne = makeKey(0x03, 0x20)
	producerTwo = makeKey(0x02, 0x30)

	testDomainName = name128.MustFromString("test")

	ownerAddress     = address.NewPublicKey(creatorKey)
	generatedAddress = address.NewGenerated(name.MustFromString("fungible"), name128.MustFromString("3"), 0)

	testSymbol = asset.MustNewSymbol(5, 3)
)

func permission(n string, threshold uint32, refs ...tokenrecord.AuthorizerRef) tokenrecord.PermissionDef {
	p := tokenrecord.PermissionDef{
		Name:      name.MustFromString(n),
		Threshold: threshold,
	}
	for _, r := range refs {
		p.Authorizers = append(p.Authorizers, tokenrecord.AuthorizerWeight{Ref: r, Weight: 1})
	}
	return p
}

func testDomain() *tokenrecord.DomainDef {
	return &tokenrecord.DomainDef{
		Name:       testDomainName,
		Creator:    creatorKey,
		CreateTime: 1546300800,
		Issue:      permission("issue", 1, tokenrecord.NewAccountRef(creatorKey)),
		Transfer:   permission("transfer", 1, tokenrecord.NewOwnerRef()),
		Manage:     permission("manage", 1, tokenrecord.NewAccountRef(creatorKey)),
	}
}

func testFungible() *tokenrecord.FungibleDef {
	return &tokenrecord.FungibleDef{
		Name:        name128.MustFromString("TestCoin"),
		SymName:     name128.MustFromString("TC"),
		Sym:         testSymbol,
		Creator:     creatorKey,
		CreateTime:  1546300800,
		Issue:       permission("issue", 1, tokenrecord.NewAccountRef(creatorKey)),
		Manage:      permission("manage", 1, tokenrecord.NewAccountRef(creatorKey)),
		TotalSupply: asset.MustNew(1000000000, testSymbol),
	}
}
