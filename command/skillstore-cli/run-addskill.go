// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/skillstore/records"
	"github.com/bitmark-inc/skillstore/storage"
)

func runAddSkill(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	level := records.LevelNothing
	if _, err := fmt.Sscan(c.String("level"), &level); nil != err {
		return err
	}

	skill := records.Skill{
		Name:     c.String("name"),
		Level:    level,
		Category: c.String("category"),
	}
	if err := skill.Validate(); nil != err {
		return err
	}

	result := m.coordinator.CreateRecord(storage.Skills, skill.Document())
	defer m.coordinator.ClearOperation(result.OperationID)
	if !result.Success {
		return fmt.Errorf("add-skill failed: %s", result.Err)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "operation: %s\n", result.OperationID)
	}
	return printJson(m.w, result.Item)
}
