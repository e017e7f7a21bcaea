// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/skillstore/fault"
)

// User - a stored user record
type User struct {
	UserID    uint64    `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Skill - a stored skill record
type Skill struct {
	SkillID  uint64     `json:"skillId,omitempty"`
	Name     string     `json:"name"`
	Level    SkillLevel `json:"level"`
	Category string     `json:"category"`
}

// UserSkill - junction record linking one user to one skill
//
// at most one record may exist per (userId, skillId) pair
type UserSkill struct {
	UserSkillID uint64      `json:"userSkillId,omitempty"`
	UserID      uint64      `json:"userId"`
	SkillID     uint64      `json:"skillId"`
	Proficiency Proficiency `json:"proficiencyLevel"`
	AssignedAt  time.Time   `json:"assignedAt"`
}

// Validate - check required user fields
func (u User) Validate() error {
	if "" == u.Name {
		return fault.ErrRequiredUserName
	}
	if "" == u.Email {
		return fault.ErrRequiredUserEmail
	}
	return nil
}

// Validate - check required skill fields
func (s Skill) Validate() error {
	if "" == s.Name {
		return fault.ErrRequiredSkillName
	}
	if !s.Level.IsValid() {
		return fault.ErrInvalidSkillLevel
	}
	if "" == s.Category {
		return fault.ErrRequiredSkillCategory
	}
	return nil
}

// Validate - check the junction record references and proficiency
func (us UserSkill) Validate() error {
	if 0 == us.UserID || 0 == us.SkillID {
		return fault.ErrInvalidRecordIdentifier
	}
	if !us.Proficiency.IsValid() {
		return fault.ErrInvalidProficiency
	}
	return nil
}

// Document - the JSON document form of a user record
func (u User) Document() map[string]interface{} {
	return toDocument(u)
}

// Document - the JSON document form of a skill record
func (s Skill) Document() map[string]interface{} {
	return toDocument(s)
}

// Document - the JSON document form of a junction record
func (us UserSkill) Document() map[string]interface{} {
	return toDocument(us)
}

// UserFromDocument - decode a stored document into a user record
func UserFromDocument(doc map[string]interface{}) (User, error) {
	u := User{}
	err := fromDocument(doc, &u)
	return u, err
}

// SkillFromDocument - decode a stored document into a skill record
func SkillFromDocument(doc map[string]interface{}) (Skill, error) {
	s := Skill{}
	err := fromDocument(doc, &s)
	return s, err
}

// UserSkillFromDocument - decode a stored document into a junction record
func UserSkillFromDocument(doc map[string]interface{}) (UserSkill, error) {
	us := UserSkill{}
	err := fromDocument(doc, &us)
	return us, err
}

// convert a typed record to its document form
//
// numbers are kept as json.Number so documents produced here compare
// equal to documents read back from the storage layer
func toDocument(record interface{}) map[string]interface{} {
	data, err := json.Marshal(record)
	if nil != err { // structs above always marshal
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	doc := map[string]interface{}(nil)
	if err := decoder.Decode(&doc); nil != err {
		return nil
	}
	return doc
}

// fill a typed record from its document form
func fromDocument(doc map[string]interface{}, record interface{}) error {
	data, err := json.Marshal(doc)
	if nil != err {
		return fault.ErrCannotDecodeRecord
	}
	if err := json.Unmarshal(data, record); nil != err {
		return fault.ErrCannotDecodeRecord
	}
	return nil
}
