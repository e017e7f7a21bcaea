// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/skillstore/storage"
)

// test database file
const (
	testingDirName   = "testing"
	databaseFileName = testingDirName + "/test.leveldb"
)

// common test setup routines

// remove all files created by test
func removeFiles() {
	os.RemoveAll(testingDirName)
}

// configure for testing
func setup(t *testing.T) *storage.Store {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)

	store, err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return store
}

// post test cleanup
func teardown(store *storage.Store) {
	if nil != store {
		store.Finalise()
	}
	logger.Finalise()
	removeFiles()
}

// sample documents for various test routines

func aliceDoc() map[string]interface{} {
	return map[string]interface{}{
		"name":      "Alice",
		"email":     "alice@example.com",
		"createdAt": "2019-05-01T12:30:00Z",
	}
}

func reactDoc() map[string]interface{} {
	return map[string]interface{}{
		"name":     "React",
		"level":    "advanced",
		"category": "Frontend",
	}
}

func linkDoc(userID uint64, skillID uint64) map[string]interface{} {
	return map[string]interface{}{
		"userId":           userID,
		"skillId":          skillID,
		"proficiencyLevel": "proficient",
		"assignedAt":       "2020-01-02T03:04:05Z",
	}
}

// create a user and a skill, returning their assigned ids
func createUserAndSkill(t *testing.T, store *storage.Store) (uint64, uint64) {
	userID, ok := store.Create(storage.Users, aliceDoc())
	if !ok {
		t.Fatal("create user failed")
	}
	skillID, ok := store.Create(storage.Skills, reactDoc())
	if !ok {
		t.Fatal("create skill failed")
	}
	return userID, skillID
}
