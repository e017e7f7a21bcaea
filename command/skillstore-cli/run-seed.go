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

var seedUsers = []records.User{
	{Name: "Alice", Email: "alice@example.com"},
	{Name: "Bob", Email: "bob@example.com"},
	{Name: "Carol", Email: "carol@example.com"},
}

var seedSkills = []records.Skill{
	{Name: "React", Level: records.LevelAdvanced, Category: "Frontend"},
	{Name: "Go", Level: records.LevelExpert, Category: "Backend"},
	{Name: "PostgreSQL", Level: records.LevelIntermediate, Category: "Database"},
}

// user index, skill index, proficiency
var seedLinks = []struct {
	user        int
	skill       int
	proficiency records.Proficiency
}{
	{0, 0, records.ProficiencyProficient},
	{0, 1, records.ProficiencyLearning},
	{1, 1, records.ProficiencyMastered},
	{2, 2, records.ProficiencyFamiliar},
}

// idempotent: records already stored on a previous run are reused,
// never duplicated
func runSeed(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	now := time.Now().UTC()
	created := 0

	existingUsers, err := seedExisting(m, storage.Users, func(doc map[string]interface{}) string {
		email, _ := doc["email"].(string)
		return email
	})
	if nil != err {
		return err
	}

	userIDs := make([]uint64, len(seedUsers))
	for i, user := range seedUsers {
		if id, ok := existingUsers[user.Email]; ok {
			userIDs[i] = id
			continue
		}
		user.CreatedAt = now
		id, err := seedCreate(m, storage.Users, user.Document())
		if nil != err {
			return err
		}
		userIDs[i] = id
		created += 1
	}

	existingSkills, err := seedExisting(m, storage.Skills, func(doc map[string]interface{}) string {
		name, _ := doc["name"].(string)
		return name
	})
	if nil != err {
		return err
	}

	skillIDs := make([]uint64, len(seedSkills))
	for i, skill := range seedSkills {
		if id, ok := existingSkills[skill.Name]; ok {
			skillIDs[i] = id
			continue
		}
		id, err := seedCreate(m, storage.Skills, skill.Document())
		if nil != err {
			return err
		}
		skillIDs[i] = id
		created += 1
	}

	for _, link := range seedLinks {
		record := records.UserSkill{
			UserID:      userIDs[link.user],
			SkillID:     skillIDs[link.skill],
			Proficiency: link.proficiency,
			AssignedAt:  now,
		}

		// a duplicate pair fails in storage; that just means this
		// link was seeded before
		result := m.coordinator.CreateRecord(storage.UserSkills, record.Document())
		m.coordinator.ClearOperation(result.OperationID)
		if result.Success {
			created += 1
		}
	}

	fmt.Fprintf(m.w, "seeded: %d new records\n", created)
	return nil
}

// map of natural key to stored id for one collection
func seedExisting(m *metadata, collection string, naturalKey func(map[string]interface{}) string) (map[string]uint64, error) {

	docs, ok := m.store.GetAll(collection)
	if !ok {
		return nil, fmt.Errorf("read of %q failed", collection)
	}

	keyField, _ := m.store.KeyField(collection)
	existing := make(map[string]uint64, len(docs))
	for _, doc := range docs {
		id, ok := docID(doc, keyField)
		if !ok {
			continue
		}
		existing[naturalKey(doc)] = id
	}
	return existing, nil
}

func seedCreate(m *metadata, collection string, doc map[string]interface{}) (uint64, error) {
	result := m.coordinator.CreateRecord(collection, doc)
	m.coordinator.ClearOperation(result.OperationID)
	if !result.Success {
		return 0, fmt.Errorf("seed of %q failed: %s", collection, result.Err)
	}
	keyField, _ := m.store.KeyField(collection)
	id, ok := docID(result.Item, keyField)
	if !ok {
		return 0, fmt.Errorf("seed of %q returned no id", collection)
	}
	return id, nil
}
