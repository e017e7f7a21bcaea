// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// command line interface to the record store
//
// maintains users, skills and the links between them from the shell,
// using the same storage and optimistic layers an embedding
// application would use.
package main
