// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokendb/tokendb"
	"github.com/bitmark-inc/tokendb/undo"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "tokens.leveldb"

	defaultCacheExpiration = 120 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "tokendb.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - where the database lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the token database settings
type Configuration struct {
	DataDirectory   string               `gluamapper:"data_directory" json:"data_directory"`
	Database        DatabaseType         `gluamapper:"database" json:"database"`
	ReadOnly        bool                 `gluamapper:"read_only" json:"read_only"`
	MemoryWindow    int                  `gluamapper:"memory_window" json:"memory_window"`
	CacheExpiration int                  `gluamapper:"cache_expiration" json:"cache_expiration"`
	Logging         logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:   defaultDataDirectory,
		MemoryWindow:    undo.DefaultMemoryWindow,
		CacheExpiration: defaultCacheExpiration,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if options.MemoryWindow < 1 {
		return nil, fmt.Errorf("memory_window: %d must be at least 1", options.MemoryWindow)
	}
	if options.CacheExpiration < 1 {
		options.CacheExpiration = defaultCacheExpiration
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	return options, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// DatabasePath - full path of the database directory
func (c *Configuration) DatabasePath() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// TokenDBOptions - the database options from the configuration
func (c *Configuration) TokenDBOptions() tokendb.Options {
	return tokendb.Options{
		ReadOnly:        c.ReadOnly,
		CacheExpiration: time.Duration(c.CacheExpiration) * time.Second,
		MemoryWindow:    c.MemoryWindow,
	}
}
