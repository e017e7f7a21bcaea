// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/skillstore/fault"
)

// prefix used on the text form of a placeholder identifier
//
// a real identifier is always a decimal number so the prefix keeps the
// two forms disjoint
const pendingPrefix = "pending:"

// ID - identifier of a record
//
// either a real numeric key already persisted by the storage layer or
// a placeholder tagged with the operation identifier of an optimistic
// create that has not confirmed yet; the zero value is neither
//
// the struct is comparable so identifiers can be matched with ==
type ID struct {
	number  uint64
	pending string
}

// RealID - identifier for a persisted record
func RealID(n uint64) ID {
	return ID{number: n}
}

// PendingID - placeholder identifier tagged with an operation id
func PendingID(operationID string) ID {
	return ID{pending: operationID}
}

// IsReal - true if this is a persisted numeric key
func (id ID) IsReal() bool {
	return 0 != id.number
}

// IsPending - true if this is an optimistic placeholder
func (id ID) IsPending() bool {
	return "" != id.pending
}

// Number - the numeric key and a flag indicating it is present
func (id ID) Number() (uint64, bool) {
	return id.number, id.IsReal()
}

// Operation - the tagged operation id and a flag indicating it is present
func (id ID) Operation() (string, bool) {
	return id.pending, id.IsPending()
}

// String - text form: "123" or "pending:op-7"
func (id ID) String() string {
	if id.IsPending() {
		return pendingPrefix + id.pending
	}
	return strconv.FormatUint(id.number, 10)
}

// MarshalText - convert an id into JSON
func (id ID) MarshalText() ([]byte, error) {
	if !id.IsReal() && !id.IsPending() {
		return nil, fault.ErrInvalidRecordIdentifier
	}
	return []byte(id.String()), nil
}

// UnmarshalText - convert the text form back to an id
func (id *ID) UnmarshalText(s []byte) error {
	text := string(s)
	if strings.HasPrefix(text, pendingPrefix) {
		tag := strings.TrimPrefix(text, pendingPrefix)
		if "" == tag {
			return fault.ErrInvalidRecordIdentifier
		}
		*id = PendingID(tag)
		return nil
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if nil != err || 0 == n {
		return fault.ErrInvalidRecordIdentifier
	}
	*id = RealID(n)
	return nil
}
