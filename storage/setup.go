// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/tokendb/fault"
)

// partitions
const (
	TokensPartition = 't'
	AssetsPartition = 'a'
)

// TableID - the second key byte, unique across all partitions
type TableID byte

// Pools - the tables of the token database
//
// note all handles must be exported (i.e. initial capital) or
// initialisation will fail
type Pools struct {
	Domains   *PoolHandle `partition:"t" prefix:"d"`
	Tokens    *PoolHandle `partition:"t" prefix:"k"`
	Groups    *PoolHandle `partition:"t" prefix:"g"`
	Suspends  *PoolHandle `partition:"t" prefix:"s"`
	Fungibles *PoolHandle `partition:"t" prefix:"f"`
	ProdVotes *PoolHandle `partition:"t" prefix:"v"`
	Assets    *PoolHandle `partition:"a" prefix:"b"`

	tables map[TableID]*PoolHandle
}

// NewPools - bind every table of the pools structure to an engine
func NewPools(engine Engine) (*Pools, error) {
	log := logger.New("storage")

	pools := &Pools{
		tables: make(map[TableID]*PoolHandle),
	}

	// this will be a struct type
	poolType := reflect.TypeOf(pools).Elem()

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(pools).Elem()

	handleType := reflect.TypeOf((*PoolHandle)(nil))

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		if fieldInfo.Type != handleType {
			continue
		}
		if "" != fieldInfo.PkgPath {
			log.Criticalf("pool: %s is not exported", fieldInfo.Name)
			return nil, fault.ErrInvalidPoolTag
		}

		partitionTag := fieldInfo.Tag.Get("partition")
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(partitionTag) || 1 != len(prefixTag) {
			log.Criticalf("pool: %s has invalid tags: partition: %q  prefix: %q", fieldInfo.Name, partitionTag, prefixTag)
			return nil, fault.ErrInvalidPoolTag
		}

		partition := partitionTag[0]
		table := TableID(prefixTag[0])
		if ReservedPartition == partition {
			return nil, fault.ErrInvalidPoolTag
		}
		if _, ok := pools.tables[table]; ok {
			log.Criticalf("pool: %s duplicates table: %q", fieldInfo.Name, table)
			return nil, fault.ErrInvalidPoolTag
		}

		p := &PoolHandle{
			name:      fieldInfo.Name,
			partition: partition,
			table:     table,
			engine:    engine,
		}
		pools.tables[table] = p
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	return pools, nil
}

// Table - the handle for a table id
func (pools *Pools) Table(table TableID) (*PoolHandle, error) {
	p, ok := pools.tables[table]
	if !ok {
		return nil, fault.ErrUnknownTable
	}
	return p, nil
}

// Names - pool names in field order
func (pools *Pools) Names() []string {
	poolType := reflect.TypeOf(pools).Elem()
	handleType := reflect.TypeOf((*PoolHandle)(nil))
	names := make([]string, 0, len(pools.tables))
	for i := 0; i < poolType.NumField(); i += 1 {
		if poolType.Field(i).Type == handleType {
			names = append(names, poolType.Field(i).Name)
		}
	}
	return names
}

// ByName - the handle for a pool field name, nil if there is none
func (pools *Pools) ByName(name string) *PoolHandle {
	for _, p := range pools.tables {
		if name == p.name {
			return p
		}
	}
	return nil
}
