// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package records

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/skillstore/fault"
)

// Proficiency - proficiency enumeration for an assigned user skill
//
// distinct from SkillLevel: a skill has an overall level while each
// assignment records how far the user has taken it
type Proficiency uint64

// possible proficiency values
const (
	ProficiencyNothing    Proficiency = iota // this must be the first value
	ProficiencyLearning   Proficiency = iota
	ProficiencyFamiliar   Proficiency = iota
	ProficiencyProficient Proficiency = iota
	ProficiencyMastered   Proficiency = iota
	proficiencyMaximum    Proficiency = iota // this must be the last value
	ProficiencyFirst      Proficiency = ProficiencyNothing + 1
	ProficiencyLast       Proficiency = proficiencyMaximum - 1
	ProficiencyCount      int         = int(ProficiencyLast) // count of proficiencies
)

// internal conversion
func proficiencyToString(p Proficiency) ([]byte, error) {
	switch p {
	case ProficiencyNothing:
		return []byte{}, nil
	case ProficiencyLearning:
		return []byte("learning"), nil
	case ProficiencyFamiliar:
		return []byte("familiar"), nil
	case ProficiencyProficient:
		return []byte("proficient"), nil
	case ProficiencyMastered:
		return []byte("mastered"), nil
	default:
		return []byte{}, fault.ErrInvalidProficiency
	}
}

// convert a string to a proficiency
func proficiencyFromString(in string) (Proficiency, error) {
	switch strings.ToLower(in) {
	case "":
		return ProficiencyNothing, nil
	case "learning":
		return ProficiencyLearning, nil
	case "familiar":
		return ProficiencyFamiliar, nil
	case "proficient":
		return ProficiencyProficient, nil
	case "mastered":
		return ProficiencyMastered, nil
	default:
		return ProficiencyNothing, fault.ErrInvalidProficiency
	}
}

// String - convert a proficiency to its string form
func (proficiency Proficiency) String() string {
	s, err := proficiencyToString(proficiency)
	if nil != err {
		logger.Panicf("invalid proficiency enumeration: %d", proficiency)
	}
	return string(s)
}

// GoString - convert both enum value and string form, for debugging
func (proficiency Proficiency) GoString() string {
	return fmt.Sprintf("<Proficiency#%d:%q>", uint64(proficiency), proficiency.String())
}

// Scan - convert a proficiency string
func (proficiency *Proficiency) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	})
	if nil != err {
		return err
	}
	parsed, err := proficiencyFromString(string(token))
	if nil != err {
		return err
	}

	*proficiency = parsed
	return nil
}

// MarshalText - convert a proficiency into JSON
func (proficiency Proficiency) MarshalText() ([]byte, error) {
	return proficiencyToString(proficiency)
}

// UnmarshalText - convert a JSON string to a proficiency enumeration value
func (proficiency *Proficiency) UnmarshalText(s []byte) error {
	p, err := proficiencyFromString(string(s))
	if nil != err {
		return err
	}
	*proficiency = p
	return nil
}

// IsValid - valid proficiency if in range of ProficiencyFirst to ProficiencyLast
// ProficiencyNothing is not considered as valid
func (proficiency Proficiency) IsValid() bool {
	return proficiency >= ProficiencyFirst && proficiency <= ProficiencyLast
}
