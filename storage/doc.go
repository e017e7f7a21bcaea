// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of collections.
// Each collection is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available pools.
//
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = record identifier as big endian uint64 (8 bytes)
// 4. record       = JSON document of the record fields including its id
// 5. count        = next sequence value as big endian uint64 (8 bytes)
//
// Records:
//
//   U ++ id                    - user record
//   S ++ id                    - skill record
//   J ++ id                    - user skill junction record
//
// Sequences:
//
//   N ++ collection name       - next id to assign in that collection
//                                data: count
//
// Junction indices:
//
//   u ++ userId ++ id          - junction records by user
//                                data: empty
//   s ++ skillId ++ id         - junction records by skill
//                                data: empty
//   Q ++ userId ++ skillId     - uniqueness of one (user, skill) pair
//                                data: id
//
// Every mutation runs inside one batch transaction: the batch is only
// written to LevelDB on commit so no reader can observe a partially
// applied operation.  In-flight writes are visible to reads issued
// inside the same transaction through a write-through cache; the cache
// is flushed when a transaction aborts.
//
// All engine failures are reported synchronously by LevelDB, handled at
// the operation that issued them, logged through this package's logger
// channel and converted to the documented sentinel results - they are
// never propagated as errors or panics across the public interface.
package storage
