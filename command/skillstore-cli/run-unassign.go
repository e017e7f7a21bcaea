// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/skillstore/storage"
)

func runUnassign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id := c.Uint64("link")
	if 0 == id {
		return fmt.Errorf("a link id is required")
	}

	original, ok := m.store.Get(storage.UserSkills, id)
	if !ok {
		return fmt.Errorf("link lookup failed")
	}
	if nil == original {
		return fmt.Errorf("no link with id: %d", id)
	}

	result := m.coordinator.DeleteRecord(storage.UserSkills, id, original)
	defer m.coordinator.ClearOperation(result.OperationID)
	if !result.Success {
		return fmt.Errorf("unassign failed: %s", result.Err)
	}

	fmt.Fprintf(m.w, "removed: %d\n", id)
	return nil
}
