// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrCannotDecodeRecord       = ProcessError("cannot decode record")
	ErrDatabaseVersionTooNew    = InvalidError("database version is newer than this program")
	ErrInvalidAction            = InvalidError("invalid action value")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidProficiency       = InvalidError("invalid proficiency value")
	ErrInvalidRecordIdentifier  = InvalidError("invalid record identifier")
	ErrInvalidSkillLevel        = InvalidError("invalid skill level value")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrJsonParseFail            = ProcessError("parse to json failed")
	ErrLinkAlreadyExists        = ExistsError("user skill link already exists")
	ErrNotFoundConfigFile       = NotFoundError("config file is not found")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrOperationFailed          = ProcessError("storage operation failed")
	ErrRecordNotFound           = NotFoundError("record not found")
	ErrRequiredSkillCategory    = InvalidError("skill category is required")
	ErrRequiredSkillName        = InvalidError("skill name is required")
	ErrRequiredUserEmail        = InvalidError("user email is required")
	ErrRequiredUserName         = InvalidError("user name is required")
	ErrUnknownCollection        = NotFoundError("unknown collection name")
	ErrWrongDatabasePermissions = InvalidError("database opened with wrong permissions")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
