// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// error base
type GenericError string

// to allow for different classes of errors
type ChecksumError GenericError
type ExistsError GenericError
type InvalidError GenericError
type MalformedError GenericError
type NotFoundError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressChecksumMismatch   = ChecksumError("address checksum mismatch")
	ErrAddressLength             = MalformedError("address length is invalid")
	ErrAddressPayload            = MalformedError("address payload is invalid")
	ErrAddressPrefix             = MalformedError("address prefix is invalid")
	ErrAddressType               = MalformedError("address type is invalid")
	ErrAlreadyInitialised        = InvalidError("already initialised")
	ErrAssetAmountOutOfRange     = MalformedError("asset amount out of range")
	ErrAssetNotFound             = NotFoundError("asset not found")
	ErrAssetSymbolMismatch       = InvalidError("asset symbol mismatch")
	ErrAuthorizerRefType         = MalformedError("authorizer reference type is invalid")
	ErrConfigurationNotTable     = InvalidError("configuration must return a table")
	ErrDatabaseVersion           = InvalidError("database version is incompatible")
	ErrDomainExists              = ExistsError("domain already exists")
	ErrDomainNotFound            = NotFoundError("domain not found")
	ErrFungibleExists            = ExistsError("fungible already exists")
	ErrFungibleNotFound          = NotFoundError("fungible not found")
	ErrGroupExists               = ExistsError("group already exists")
	ErrGroupNotFound             = NotFoundError("group not found")
	ErrGroupTreeDepth            = MalformedError("group tree is too deep")
	ErrInvalidBatch              = InvalidError("batch was not created by this engine")
	ErrInvalidCount              = InvalidError("invalid count")
	ErrInvalidCursor             = InvalidError("invalid cursor")
	ErrInvalidPoolTag            = InvalidError("pool tag is invalid")
	ErrInvalidSavepointSequence  = InvalidError("savepoint sequence must increase")
	ErrInvalidStructPointer      = InvalidError("invalid struct pointer")
	ErrName128Length             = MalformedError("name128 is longer than 21 characters")
	ErrName128NotNormalised      = MalformedError("name128 is not properly normalised")
	ErrName128Truncated          = MalformedError("name128 buffer is truncated")
	ErrNameLength                = MalformedError("name is longer than 13 characters")
	ErrNameNotNormalised         = MalformedError("name is not properly normalised")
	ErrNameTruncated             = MalformedError("name buffer is truncated")
	ErrNoSavepoint               = InvalidError("no savepoint")
	ErrNotEnoughSavepoints       = InvalidError("squash needs at least two savepoints")
	ErrPublicKeyChecksumMismatch = ChecksumError("public key checksum mismatch")
	ErrPublicKeyLength           = MalformedError("public key length is invalid")
	ErrPublicKeyPrefix           = MalformedError("public key prefix is invalid")
	ErrRecordTag                 = MalformedError("record tag is invalid")
	ErrRecordTruncated           = MalformedError("record is truncated")
	ErrRecordTrailingData        = MalformedError("record has trailing data")
	ErrSavepointRecord           = MalformedError("persisted savepoint record is invalid")
	ErrSessionDisposed           = InvalidError("session already disposed")
	ErrSuspendExists             = ExistsError("suspend already exists")
	ErrSuspendNotFound           = NotFoundError("suspend not found")
	ErrSuspendStatus             = MalformedError("suspend status is invalid")
	ErrSymbolFormat              = MalformedError("symbol format is invalid")
	ErrSymbolPrecision           = MalformedError("symbol precision exceeds maximum")
	ErrTokenExists               = ExistsError("token already exists")
	ErrTokenNotFound             = NotFoundError("token not found")
	ErrUnknownTable              = InvalidError("unknown table")
	ErrUndoOperation             = MalformedError("undo operation is invalid")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ChecksumError) Error() string  { return string(e) }
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e MalformedError) Error() string { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }

// EngineError - failure reported by the persistent engine
//
// the underlying cause is kept so that errors.Is/errors.As work
type EngineError struct {
	Op    string
	Cause error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s failed: %v", e.Op, e.Cause)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// Engine - wrap an engine error with the operation that produced it
//
// nil is passed through and an existing EngineError is not wrapped twice
func Engine(op string, err error) error {
	if nil == err {
		return nil
	}
	if _, ok := err.(*EngineError); ok {
		return err
	}
	return &EngineError{Op: op, Cause: err}
}

// determine the class of an error
func IsErrChecksum(e error) bool  { _, ok := e.(ChecksumError); return ok }
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrMalformed(e error) bool { _, ok := e.(MalformedError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrEngine(e error) bool    { _, ok := e.(*EngineError); return ok }
