// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package optimistic - tentative mutation tracking on top of storage
//
// each mutation registers a pending operation before the real storage
// call is issued, so a caller can show the tentative result
// immediately.  when the storage call settles the entry is either
// confirmed or marked with an error, and stays in the map until the
// caller removes it with ClearOperation.  the coordinator never
// touches caller owned state; all list reconciliation is the caller's
// responsibility, guided by the returned Result and the State lookup.
package optimistic
