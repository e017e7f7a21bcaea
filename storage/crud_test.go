// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/skillstore/storage"
)

// a record read back after create carries every original field plus
// the assigned id
func TestCreateThenGet(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	original := aliceDoc()
	id, ok := store.Create(storage.Users, original)
	assert.True(t, ok, "create failed")
	assert.Equal(t, uint64(1), id, "first id expected to be 1")

	doc, ok := store.Get(storage.Users, id)
	assert.True(t, ok, "get failed")
	assert.NotNil(t, doc, "record expected to exist")

	assert.Equal(t, json.Number("1"), doc["userId"], "wrong id field")
	for field, value := range original {
		assert.Equal(t, value, doc[field], "field: %s changed", field)
	}

	// the caller's own map must not have been modified
	_, present := original["userId"]
	assert.False(t, present, "caller map was mutated")
}

// reading an id that was never assigned is not a failure
func TestGetAbsent(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	doc, ok := store.Get(storage.Users, 12345)
	assert.True(t, ok, "get of absent id must succeed")
	assert.Nil(t, doc, "absent record expected to be nil")
}

// after N creates the enumeration returns exactly N records with
// distinct ascending ids
func TestGetAllCompleteness(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	const n = 7
	for i := 1; i <= n; i += 1 {
		doc := map[string]interface{}{
			"name":  fmt.Sprintf("user-%d", i),
			"email": fmt.Sprintf("user-%d@example.com", i),
		}
		id, ok := store.Create(storage.Users, doc)
		assert.True(t, ok, "create %d failed", i)
		assert.Equal(t, uint64(i), id, "unexpected id")
	}

	docs, ok := store.GetAll(storage.Users)
	assert.True(t, ok, "getAll failed")
	assert.Equal(t, n, len(docs), "wrong record count")

	for i, doc := range docs {
		expected := json.Number(fmt.Sprintf("%d", i+1))
		assert.Equal(t, expected, doc["userId"], "records not in id order")
	}
}

func TestGetAllEmpty(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	docs, ok := store.GetAll(storage.Skills)
	assert.True(t, ok, "getAll failed")
	assert.Equal(t, 0, len(docs), "empty collection expected")
}

// only fields present in the partial update change
func TestUpdatePreservesUntouchedFields(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	id, ok := store.Create(storage.Skills, reactDoc())
	assert.True(t, ok, "create failed")

	merged, ok := store.Update(storage.Skills, id, map[string]interface{}{
		"level": "expert",
	}, nil)
	assert.True(t, ok, "update failed")

	assert.Equal(t, "expert", merged["level"], "updated field wrong")
	assert.Equal(t, "React", merged["name"], "untouched field changed")
	assert.Equal(t, "Frontend", merged["category"], "untouched field changed")
	assert.Equal(t, json.Number("1"), merged["skillId"], "id changed")

	// and the stored state matches the returned one
	doc, ok := store.Get(storage.Skills, id)
	assert.True(t, ok, "get failed")
	assert.Equal(t, merged, doc, "returned record differs from stored record")
}

// updating an id that does not exist synthesises the record from the
// factory instead of failing
func TestUpdateAsUpsert(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	const id = 77
	merged, ok := store.Update(storage.Users, id, map[string]interface{}{
		"name": "Bob",
	}, func() map[string]interface{} {
		return map[string]interface{}{
			"name":      "unnamed",
			"email":     "unknown@example.com",
			"createdAt": "2020-06-01T00:00:00Z",
		}
	})
	assert.True(t, ok, "upsert failed")
	assert.Equal(t, "Bob", merged["name"], "partial field not applied")
	assert.Equal(t, "unknown@example.com", merged["email"], "factory field missing")
	assert.Equal(t, json.Number("77"), merged["userId"], "wrong id")

	doc, ok := store.Get(storage.Users, id)
	assert.True(t, ok, "get failed")
	assert.Equal(t, merged, doc, "stored record differs")

	// the sequence must stay ahead of the explicit id
	next, ok := store.Create(storage.Users, aliceDoc())
	assert.True(t, ok, "create failed")
	assert.Equal(t, uint64(id+1), next, "sequence did not advance past the upsert id")
}

// the engine treats delete-of-absent as a no-op so remove resolves
// success; this pins down the actual behaviour
func TestRemoveAbsentIsSuccess(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	ok := store.Remove(storage.Users, 999)
	assert.True(t, ok, "remove of absent id expected to succeed")
}

func TestRemoveThenGet(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	id, ok := store.Create(storage.Users, aliceDoc())
	assert.True(t, ok, "create failed")

	assert.True(t, store.Remove(storage.Users, id), "remove failed")

	doc, ok := store.Get(storage.Users, id)
	assert.True(t, ok, "get failed")
	assert.Nil(t, doc, "record still present after remove")
}

// at most one junction record per (userId, skillId) pair
func TestUniqueLink(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	userID, skillID := createUserAndSkill(t, store)

	linkID, ok := store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.True(t, ok, "first link create failed")

	_, ok = store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.False(t, ok, "duplicate link must fail")

	// the duplicate attempt must not have written anything
	docs, ok := store.GetAll(storage.UserSkills)
	assert.True(t, ok, "getAll failed")
	assert.Equal(t, 1, len(docs), "duplicate was stored")

	// removing the link frees the pair again
	assert.True(t, store.Remove(storage.UserSkills, linkID), "remove failed")
	_, ok = store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.True(t, ok, "recreate after remove failed")
}

// moving a link onto an already used pair must fail, moving it onto a
// free pair must succeed and free the old pair
func TestUpdateLinkUniqueness(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	userID, skillID := createUserAndSkill(t, store)
	otherSkillID, ok := store.Create(storage.Skills, map[string]interface{}{
		"name":     "Go",
		"level":    "expert",
		"category": "Backend",
	})
	assert.True(t, ok, "create skill failed")

	firstID, ok := store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.True(t, ok, "create link failed")
	_, ok = store.Create(storage.UserSkills, linkDoc(userID, otherSkillID))
	assert.True(t, ok, "create second link failed")

	// collide with the second link
	_, ok = store.Update(storage.UserSkills, firstID, map[string]interface{}{
		"skillId": otherSkillID,
	}, nil)
	assert.False(t, ok, "update onto a used pair must fail")

	// the failed update must leave the record unchanged
	doc, ok := store.Get(storage.UserSkills, firstID)
	assert.True(t, ok, "get failed")
	assert.Equal(t, json.Number(fmt.Sprintf("%d", skillID)), doc["skillId"], "record changed by failed update")
}

// updates to different ids issued concurrently all succeed and each
// record only reflects its own update
func TestConcurrentIndependentUpdates(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	idA, ok := store.Create(storage.Users, map[string]interface{}{"name": "a", "email": "a@example.com"})
	assert.True(t, ok, "create failed")
	idB, ok := store.Create(storage.Users, map[string]interface{}{"name": "b", "email": "b@example.com"})
	assert.True(t, ok, "create failed")

	var wg sync.WaitGroup
	results := make([]bool, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = store.Update(storage.Users, idA, map[string]interface{}{"name": "a2"}, nil)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = store.Update(storage.Users, idB, map[string]interface{}{"name": "b2"}, nil)
	}()
	wg.Wait()

	assert.True(t, results[0], "update A failed")
	assert.True(t, results[1], "update B failed")

	docA, _ := store.Get(storage.Users, idA)
	docB, _ := store.Get(storage.Users, idB)
	assert.Equal(t, "a2", docA["name"], "record A wrong")
	assert.Equal(t, "a@example.com", docA["email"], "record A lost a field")
	assert.Equal(t, "b2", docB["name"], "record B wrong")
	assert.Equal(t, "b@example.com", docB["email"], "record B lost a field")
}

// clear removes all records and indices but never resets the sequence
func TestClear(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	userID, skillID := createUserAndSkill(t, store)
	_, ok := store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.True(t, ok, "create link failed")

	assert.True(t, store.Clear(storage.UserSkills), "clear failed")

	docs, ok := store.GetAll(storage.UserSkills)
	assert.True(t, ok, "getAll failed")
	assert.Equal(t, 0, len(docs), "collection not empty after clear")

	// the pair is free again: the unique index was cleared too
	id, ok := store.Create(storage.UserSkills, linkDoc(userID, skillID))
	assert.True(t, ok, "create after clear failed")
	assert.Equal(t, uint64(2), id, "sequence must survive a clear")
}

// all operations resolve their failure sentinel for a collection that
// does not exist
func TestUnknownCollection(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	_, ok := store.Create("nonsuch", map[string]interface{}{"a": 1})
	assert.False(t, ok, "create must fail")
	_, ok = store.Get("nonsuch", 1)
	assert.False(t, ok, "get must fail")
	_, ok = store.GetAll("nonsuch")
	assert.False(t, ok, "getAll must fail")
	_, ok = store.Update("nonsuch", 1, nil, nil)
	assert.False(t, ok, "update must fail")
	assert.False(t, store.Remove("nonsuch", 1), "remove must fail")
	assert.False(t, store.Clear("nonsuch"), "clear must fail")
}

// the full walk through: user, skill, link once ok, link twice fails
func TestUserSkillExample(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	userID, ok := store.Create(storage.Users, map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	assert.True(t, ok, "create user failed")

	skillID, ok := store.Create(storage.Skills, map[string]interface{}{
		"name":     "React",
		"level":    "advanced",
		"category": "Frontend",
	})
	assert.True(t, ok, "create skill failed")

	_, ok = store.Create(storage.UserSkills, map[string]interface{}{
		"userId":           userID,
		"skillId":          skillID,
		"proficiencyLevel": "proficient",
	})
	assert.True(t, ok, "create link failed")

	_, ok = store.Create(storage.UserSkills, map[string]interface{}{
		"userId":           userID,
		"skillId":          skillID,
		"proficiencyLevel": "proficient",
	})
	assert.False(t, ok, "identical link must fail")
}

// key field names per collection
func TestKeyField(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	testData := []struct {
		collection string
		keyField   string
	}{
		{storage.Users, "userId"},
		{storage.Skills, "skillId"},
		{storage.UserSkills, "userSkillId"},
	}
	for _, item := range testData {
		field, ok := store.KeyField(item.collection)
		assert.True(t, ok, "missing key field for: %s", item.collection)
		assert.Equal(t, item.keyField, field, "wrong key field")
	}

	_, ok := store.KeyField("nonsuch")
	assert.False(t, ok, "unknown collection must have no key field")
}
