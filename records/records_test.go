// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/skillstore/fault"
	"github.com/bitmark-inc/skillstore/records"
)

func TestUserDocumentRoundTrip(t *testing.T) {
	u := records.User{
		UserID:    3,
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: time.Date(2019, 5, 1, 12, 30, 0, 0, time.UTC),
	}

	doc := u.Document()
	assert.NotNil(t, doc, "document conversion failed")
	assert.Equal(t, json.Number("3"), doc["userId"], "wrong userId in document")
	assert.Equal(t, "Alice", doc["name"], "wrong name in document")

	back, err := records.UserFromDocument(doc)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, u, back, "round trip mismatch")
}

func TestSkillDocumentRoundTrip(t *testing.T) {
	s := records.Skill{
		SkillID:  9,
		Name:     "React",
		Level:    records.LevelAdvanced,
		Category: "Frontend",
	}

	doc := s.Document()
	assert.Equal(t, "advanced", doc["level"], "wrong level in document")

	back, err := records.SkillFromDocument(doc)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, s, back, "round trip mismatch")
}

func TestUserSkillDocumentRoundTrip(t *testing.T) {
	us := records.UserSkill{
		UserSkillID: 1,
		UserID:      3,
		SkillID:     9,
		Proficiency: records.ProficiencyProficient,
		AssignedAt:  time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	doc := us.Document()
	assert.Equal(t, "proficient", doc["proficiencyLevel"], "wrong proficiency in document")

	back, err := records.UserSkillFromDocument(doc)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, us, back, "round trip mismatch")
}

func TestValidate(t *testing.T) {
	assert.Nil(t, records.User{Name: "a", Email: "a@b"}.Validate())
	assert.Equal(t, fault.ErrRequiredUserName, records.User{Email: "a@b"}.Validate())
	assert.Equal(t, fault.ErrRequiredUserEmail, records.User{Name: "a"}.Validate())

	ok := records.Skill{Name: "Go", Level: records.LevelExpert, Category: "Backend"}
	assert.Nil(t, ok.Validate())
	assert.Equal(t, fault.ErrRequiredSkillName, records.Skill{Level: records.LevelExpert, Category: "x"}.Validate())
	assert.Equal(t, fault.ErrInvalidSkillLevel, records.Skill{Name: "Go", Category: "x"}.Validate())
	assert.Equal(t, fault.ErrRequiredSkillCategory, records.Skill{Name: "Go", Level: records.LevelExpert}.Validate())

	link := records.UserSkill{UserID: 1, SkillID: 2, Proficiency: records.ProficiencyLearning}
	assert.Nil(t, link.Validate())
	assert.Equal(t, fault.ErrInvalidRecordIdentifier, records.UserSkill{SkillID: 2, Proficiency: records.ProficiencyLearning}.Validate())
	assert.Equal(t, fault.ErrInvalidProficiency, records.UserSkill{UserID: 1, SkillID: 2}.Validate())
}

// decoding a document with a wrong shape must fail cleanly
func TestFromDocumentInvalid(t *testing.T) {
	doc := map[string]interface{}{
		"userId": "not-a-number",
	}
	_, err := records.UserFromDocument(doc)
	assert.Equal(t, fault.ErrCannotDecodeRecord, err, "expected decode failure")
}
