// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/tokendb/configuration"
	"github.com/bitmark-inc/tokendb/tokendb"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour   = "\033[1;36m"
	valColour   = "\033[1;33m"
	endColour   = "\033[0m"
	noColour    = ""
	defaultRows = 10
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "savepoints", HasArg: getoptions.NO_ARGUMENT, Short: 's'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'n'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["config-file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--count=N] --config-file=FILE [--list] [--savepoints] [pool [key-prefix]]", program)
	}

	verbose := len(options["verbose"]) > 0
	listPools := len(options["list"]) > 0
	listSavepoints := len(options["savepoints"]) > 0

	kc, vc, ec := noColour, noColour, noColour
	if len(options["colour"]) > 0 {
		kc, vc, ec = keyColour, valColour, endColour
	}

	count := defaultRows
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	configurationFile := options["config-file"][0]
	masterConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(masterConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("main")
	defer log.Info("finished")
	log.Infof("version: %s", version)

	dbOptions := masterConfiguration.TokenDBOptions()
	dbOptions.ReadOnly = true

	databasePath := masterConfiguration.DatabasePath()
	if verbose {
		fmt.Printf("database: %q\n", databasePath)
	}

	db, err := tokendb.Open(databasePath, dbOptions)
	if nil != err {
		log.Criticalf("open database: %q  error: %s", databasePath, err)
		exitwithstatus.Message("%s: open database: %q  error: %s", program, databasePath, err)
	}
	defer db.Close()

	pools := db.Pools()

	if listPools {
		fmt.Printf(" pools:\n")
		for _, name := range pools.Names() {
			p := pools.ByName(name)
			n, err := p.Count()
			if nil != err {
				exitwithstatus.Message("%s: count pool: %s  error: %s", program, name, err)
			}
			fmt.Printf("   %c%c → %-10s %d\n", p.Partition(), byte(p.Table()), name, n)
		}
	}

	if listSavepoints {
		fmt.Printf(" savepoints: %d\n", db.SavepointsSize())
		for _, sp := range db.Savepoints() {
			fmt.Printf("   %d  %s  actions: %d\n", sp.Seq, sp.Kind, sp.Actions)
		}
	}

	if 0 == len(arguments) {
		return
	}

	name := arguments[0]
	p := pools.ByName(name)
	if nil == p {
		exitwithstatus.Message("%s: no pool named: %q", program, name)
	}

	cursor := p.NewFetchCursor()
	if len(arguments) > 1 {
		prefix, err := hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
		cursor.Seek(prefix)
	}

	elements, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: fetch pool: %s  error: %s", program, name, err)
	}
	for i, e := range elements {
		fmt.Printf("%d: %s%x%s\n", i, kc, e.Key, ec)
		fmt.Printf("   %s%x%s\n", vc, e.Value, ec)
	}
	if verbose {
		fmt.Printf("rows: %d\n", len(elements))
	}
}
