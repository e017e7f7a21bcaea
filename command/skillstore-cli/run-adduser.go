// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/skillstore/records"
	"github.com/bitmark-inc/skillstore/storage"
)

func runAddUser(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	user := records.User{
		Name:      c.String("name"),
		Email:     c.String("email"),
		CreatedAt: time.Now().UTC(),
	}
	if err := user.Validate(); nil != err {
		return err
	}

	result := m.coordinator.CreateRecord(storage.Users, user.Document())
	defer m.coordinator.ClearOperation(result.OperationID)
	if !result.Success {
		return fmt.Errorf("add-user failed: %s", result.Err)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "operation: %s\n", result.OperationID)
	}
	return printJson(m.w, result.Item)
}
