// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package records - typed views of the stored collections
//
// The storage layer itself is untyped and moves JSON documents in and
// out of the database.  This package defines the three record types
// held in those documents (users, skills and the user to skill
// junction), the two proficiency enumerations, and the identifier type
// that distinguishes a persisted numeric key from the placeholder
// assigned to a not yet confirmed optimistic create.
package records
