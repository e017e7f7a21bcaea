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

func runAssign(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	proficiency := records.ProficiencyNothing
	if _, err := fmt.Sscan(c.String("proficiency"), &proficiency); nil != err {
		return err
	}

	link := records.UserSkill{
		UserID:      c.Uint64("user"),
		SkillID:     c.Uint64("skill"),
		Proficiency: proficiency,
		AssignedAt:  time.Now().UTC(),
	}
	if err := link.Validate(); nil != err {
		return err
	}

	// both referenced records must exist
	user, ok := m.store.Get(storage.Users, link.UserID)
	if !ok || nil == user {
		return fmt.Errorf("no user with id: %d", link.UserID)
	}
	skill, ok := m.store.Get(storage.Skills, link.SkillID)
	if !ok || nil == skill {
		return fmt.Errorf("no skill with id: %d", link.SkillID)
	}

	result := m.coordinator.CreateRecord(storage.UserSkills, link.Document())
	defer m.coordinator.ClearOperation(result.OperationID)
	if !result.Success {
		return fmt.Errorf("assign failed, link may already exist: %s", result.Err)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "operation: %s\n", result.OperationID)
	}
	return printJson(m.w, result.Item)
}
