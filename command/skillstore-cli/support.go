// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"strconv"
)

// numeric document field in either of the forms the storage and
// optimistic layers produce
func docID(doc map[string]interface{}, field string) (uint64, bool) {
	switch n := doc[field].(type) {
	case json.Number:
		value, err := strconv.ParseUint(n.String(), 10, 64)
		return value, nil == err
	case uint64:
		return n, true
	default:
		return 0, false
	}
}
