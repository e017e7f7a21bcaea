// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package optimistic

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/skillstore/fault"
)

// Action - kind of mutation tracked by a pending operation
type Action uint64

// possible action values
const (
	ActionNothing Action = iota // this must be the first value
	ActionCreate  Action = iota
	ActionUpdate  Action = iota
	ActionDelete  Action = iota
	actionMaximum Action = iota // this must be the last value
	ActionFirst   Action = ActionNothing + 1
	ActionLast    Action = actionMaximum - 1
	ActionCount   int    = int(ActionLast) // count of actions
)

// internal conversion
func actionToString(a Action) ([]byte, error) {
	switch a {
	case ActionNothing:
		return []byte{}, nil
	case ActionCreate:
		return []byte("create"), nil
	case ActionUpdate:
		return []byte("update"), nil
	case ActionDelete:
		return []byte("delete"), nil
	default:
		return []byte{}, fault.ErrInvalidAction
	}
}

// convert a string to an action
func actionFromString(in string) (Action, error) {
	switch strings.ToLower(in) {
	case "":
		return ActionNothing, nil
	case "create":
		return ActionCreate, nil
	case "update":
		return ActionUpdate, nil
	case "delete":
		return ActionDelete, nil
	default:
		return ActionNothing, fault.ErrInvalidAction
	}
}

// String - convert an action to its string form
func (action Action) String() string {
	s, err := actionToString(action)
	if nil != err {
		logger.Panicf("invalid action enumeration: %d", action)
	}
	return string(s)
}

// GoString - convert both enum value and string form, for debugging
func (action Action) GoString() string {
	return fmt.Sprintf("<Action#%d:%q>", uint64(action), action.String())
}

// Scan - convert an action string
func (action *Action) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	})
	if nil != err {
		return err
	}
	parsed, err := actionFromString(string(token))
	if nil != err {
		return err
	}

	*action = parsed
	return nil
}

// MarshalText - convert an action into JSON
func (action Action) MarshalText() ([]byte, error) {
	return actionToString(action)
}

// UnmarshalText - convert a JSON string to an action enumeration value
func (action *Action) UnmarshalText(s []byte) error {
	a, err := actionFromString(string(s))
	if nil != err {
		return err
	}
	*action = a
	return nil
}

// IsValid - valid action if in range of ActionFirst to ActionLast
// ActionNothing is not considered as valid
func (action Action) IsValid() bool {
	return action >= ActionFirst && action <= ActionLast
}
