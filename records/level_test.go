// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/bitmark-inc/skillstore/fault"
	"github.com/bitmark-inc/skillstore/records"
)

type levelTest struct {
	str string
	l   records.SkillLevel
	j   string
}

var validLevels = []levelTest{
	{"", records.LevelNothing, `""`},
	{"beginner", records.LevelBeginner, `"beginner"`},
	{"Beginner", records.LevelBeginner, `"beginner"`},
	{"BEGINNER", records.LevelBeginner, `"beginner"`},
	{"intermediate", records.LevelIntermediate, `"intermediate"`},
	{"advanced", records.LevelAdvanced, `"advanced"`},
	{"Advanced", records.LevelAdvanced, `"advanced"`},
	{"expert", records.LevelExpert, `"expert"`},
}

var invalidLevels = []string{
	"guru",
	"12345",
	"null",
}

func TestLevelValidString(t *testing.T) {
	for index, test := range validLevels {
		if "" == test.str {
			continue // Sscan cannot return an empty token
		}

		var l records.SkillLevel
		n, err := fmt.Sscan(test.str, &l)
		if nil != err {
			t.Fatalf("%d: string to level error: %s", index, err)
		}
		if 1 != n {
			t.Fatalf("%d: scanned %d items expected to scan 1", index, n)
		}
		if l != test.l {
			t.Errorf("%d: %q converted to: %#v  expected: %#v", index, test.str, l, test.l)
		}
	}
}

func TestLevelInvalidString(t *testing.T) {
	for index, test := range invalidLevels {
		var l records.SkillLevel
		_, err := fmt.Sscan(test, &l)
		if fault.ErrInvalidSkillLevel != err {
			t.Fatalf("%d: unexpected error: %v", index, err)
		}
	}
}

func TestLevelJSON(t *testing.T) {
	for index, test := range validLevels {
		buffer, err := json.Marshal(test.l)
		if nil != err {
			t.Fatalf("%d: marshal error: %s", index, err)
		}
		if test.j != string(buffer) {
			t.Errorf("%d: marshal: %s  expected: %s", index, buffer, test.j)
		}

		var back records.SkillLevel
		err = json.Unmarshal(buffer, &back)
		if nil != err {
			t.Fatalf("%d: unmarshal error: %s", index, err)
		}
		if back != test.l {
			t.Errorf("%d: unmarshal: %#v  expected: %#v", index, back, test.l)
		}
	}
}

func TestLevelIsValid(t *testing.T) {
	if records.LevelNothing.IsValid() {
		t.Errorf("nothing level must not be valid")
	}
	for l := records.LevelFirst; l <= records.LevelLast; l += 1 {
		if !l.IsValid() {
			t.Errorf("level: %d expected to be valid", l)
		}
	}
	if records.SkillLevel(99).IsValid() {
		t.Errorf("out of range level must not be valid")
	}
}
