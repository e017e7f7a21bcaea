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

// SkillLevel - skill level enumeration
type SkillLevel uint64

// possible skill level values
const (
	LevelNothing      SkillLevel = iota // this must be the first value
	LevelBeginner     SkillLevel = iota
	LevelIntermediate SkillLevel = iota
	LevelAdvanced     SkillLevel = iota
	LevelExpert       SkillLevel = iota
	levelMaximum      SkillLevel = iota // this must be the last value
	LevelFirst        SkillLevel = LevelNothing + 1
	LevelLast         SkillLevel = levelMaximum - 1
	LevelCount        int        = int(LevelLast) // count of levels
)

// internal conversion
func levelToString(l SkillLevel) ([]byte, error) {
	switch l {
	case LevelNothing:
		return []byte{}, nil
	case LevelBeginner:
		return []byte("beginner"), nil
	case LevelIntermediate:
		return []byte("intermediate"), nil
	case LevelAdvanced:
		return []byte("advanced"), nil
	case LevelExpert:
		return []byte("expert"), nil
	default:
		return []byte{}, fault.ErrInvalidSkillLevel
	}
}

// convert a string to a skill level
func levelFromString(in string) (SkillLevel, error) {
	switch strings.ToLower(in) {
	case "":
		return LevelNothing, nil
	case "beginner":
		return LevelBeginner, nil
	case "intermediate":
		return LevelIntermediate, nil
	case "advanced":
		return LevelAdvanced, nil
	case "expert":
		return LevelExpert, nil
	default:
		return LevelNothing, fault.ErrInvalidSkillLevel
	}
}

// String - convert a skill level to its string form
func (level SkillLevel) String() string {
	s, err := levelToString(level)
	if nil != err {
		logger.Panicf("invalid skill level enumeration: %d", level)
	}
	return string(s)
}

// GoString - convert both enum value and string form, for debugging
func (level SkillLevel) GoString() string {
	return fmt.Sprintf("<SkillLevel#%d:%q>", uint64(level), level.String())
}

// Scan - convert a skill level string
func (level *SkillLevel) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	})
	if nil != err {
		return err
	}
	parsed, err := levelFromString(string(token))
	if nil != err {
		return err
	}

	*level = parsed
	return nil
}

// MarshalText - convert a skill level into JSON
func (level SkillLevel) MarshalText() ([]byte, error) {
	return levelToString(level)
}

// UnmarshalText - convert a JSON string to a skill level enumeration value
func (level *SkillLevel) UnmarshalText(s []byte) error {
	l, err := levelFromString(string(s))
	if nil != err {
		return err
	}
	*level = l
	return nil
}

// IsValid - valid level if in range of LevelFirst to LevelLast
// LevelNothing is not considered as valid
func (level SkillLevel) IsValid() bool {
	return level >= LevelFirst && level <= LevelLast
}
