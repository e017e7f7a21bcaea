// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package optimistic

import (
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/skillstore/background"
	"github.com/bitmark-inc/skillstore/counter"
	"github.com/bitmark-inc/skillstore/fault"
	"github.com/bitmark-inc/skillstore/records"
	"github.com/bitmark-inc/skillstore/storage"
)

// Operation - one in flight mutation
//
// created before the real storage call starts; settled by the storage
// result; removed only by ClearOperation or, when enabled, the expiry
// sweep
type Operation struct {
	OperationID string
	Action      Action
	Collection  string
	ID          records.ID
	Record      map[string]interface{}
	Original    map[string]interface{}
	Confirmed   bool
	Err         error

	settledAt time.Time
}

// Status - derived state of a pending operation for UI consumption
type Status struct {
	OperationID string
	Action      Action
	Pending     bool
	Confirmed   bool
	Err         error
}

// Result - outcome of one optimistic mutation
type Result struct {
	Success     bool
	ID          records.ID
	Item        map[string]interface{}
	Err         error
	OperationID string
}

// Coordinator - pending operation bookkeeping over one store handle
type Coordinator struct {
	sync.RWMutex

	log     *logger.L
	store   *storage.Store
	entries map[string]*Operation
	ids     counter.Counter

	expireAfter time.Duration
	sweeper     *background.T
}

// Option - configuration for New
type Option func(*Coordinator)

// ExpireAfter - remove settled entries that nobody cleared after d
//
// off by default: the caller owns cleanup and entries otherwise stay
// for the process lifetime
func ExpireAfter(d time.Duration) Option {
	return func(c *Coordinator) {
		c.expireAfter = d
	}
}

// New - construct a coordinator over an already initialised store
func New(store *storage.Store, options ...Option) (*Coordinator, error) {
	if nil == store {
		return nil, fault.ErrNotInitialised
	}

	log := logger.New("optimistic")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	c := &Coordinator{
		log:     log,
		store:   store,
		entries: make(map[string]*Operation),
	}
	for _, option := range options {
		option(c)
	}

	if c.expireAfter > 0 {
		c.sweeper = background.Start(background.Processes{
			&expiryData{
				coordinator: c,
				log:         logger.New("optimistic-expiry"),
			},
		}, nil)
	}

	return c, nil
}

// Finalise - stop the expiry sweep if one was started
func (c *Coordinator) Finalise() {
	c.sweeper.Stop()
	c.sweeper = nil
}

// CreateRecord - create a record optimistically
//
// the pending entry carries a tagged temporary identifier until the
// real one is assigned, so it can never collide with a stored key
func (c *Coordinator) CreateRecord(collection string, partial map[string]interface{}) Result {

	operationID := c.nextOperationID()
	entry := &Operation{
		OperationID: operationID,
		Action:      ActionCreate,
		Collection:  collection,
		ID:          records.PendingID(operationID),
		Record:      copyRecord(partial),
	}
	c.register(entry)

	id, ok := c.store.Create(collection, partial)
	if !ok {
		return c.settleError(entry)
	}

	c.Lock()
	entry.ID = records.RealID(id)
	if keyField, ok := c.store.KeyField(collection); ok {
		entry.Record[keyField] = id
	}
	entry.Confirmed = true
	entry.settledAt = time.Now()
	item := copyRecord(entry.Record)
	c.Unlock()

	return Result{
		Success:     true,
		ID:          records.RealID(id),
		Item:        item,
		OperationID: operationID,
	}
}

// UpdateRecord - update a record optimistically
//
// the tentative snapshot is the original with the partial fields
// applied; on success it is replaced by the merged record the store
// actually persisted.  on failure the caller restores original into
// its own visible state, the coordinator only reports
func (c *Coordinator) UpdateRecord(collection string, id uint64, partial map[string]interface{}, original map[string]interface{}, factory func() map[string]interface{}) Result {

	tentative := copyRecord(original)
	for field, value := range partial {
		tentative[field] = value
	}

	entry := &Operation{
		OperationID: c.nextOperationID(),
		Action:      ActionUpdate,
		Collection:  collection,
		ID:          records.RealID(id),
		Record:      tentative,
		Original:    copyRecord(original),
	}
	c.register(entry)

	merged, ok := c.store.Update(collection, id, partial, factory)
	if !ok {
		return c.settleError(entry)
	}

	c.Lock()
	entry.Record = merged
	entry.Confirmed = true
	entry.settledAt = time.Now()
	item := copyRecord(merged)
	c.Unlock()

	return Result{
		Success:     true,
		ID:          records.RealID(id),
		Item:        item,
		OperationID: entry.OperationID,
	}
}

// DeleteRecord - remove a record optimistically
//
// the entry keeps the original record so a caller can re-insert it
// when the removal fails
func (c *Coordinator) DeleteRecord(collection string, id uint64, original map[string]interface{}) Result {

	entry := &Operation{
		OperationID: c.nextOperationID(),
		Action:      ActionDelete,
		Collection:  collection,
		ID:          records.RealID(id),
		Record:      copyRecord(original),
		Original:    copyRecord(original),
	}
	c.register(entry)

	if !c.store.Remove(collection, id) {
		return c.settleError(entry)
	}

	c.Lock()
	entry.Confirmed = true
	entry.settledAt = time.Now()
	c.Unlock()

	return Result{
		Success:     true,
		ID:          records.RealID(id),
		OperationID: entry.OperationID,
	}
}

// ClearOperation - drop one entry from the pending map
//
// idempotent, clearing an unknown id is a no-op
func (c *Coordinator) ClearOperation(operationID string) {
	c.Lock()
	delete(c.entries, operationID)
	c.Unlock()
}

// State - derived status for whichever entry currently matches id
//
// matches by real identifier or by the tagged temporary one; linear
// in the number of pending entries, which stays small when callers
// clean up
func (c *Coordinator) State(id records.ID) (Status, bool) {
	c.RLock()
	defer c.RUnlock()

	for _, entry := range c.entries {
		if entry.ID != id {
			continue
		}
		return Status{
			OperationID: entry.OperationID,
			Action:      entry.Action,
			Pending:     !entry.Confirmed && nil == entry.Err,
			Confirmed:   entry.Confirmed,
			Err:         entry.Err,
		}, true
	}
	return Status{}, false
}

// PendingCount - number of tracked entries
func (c *Coordinator) PendingCount() int {
	c.RLock()
	defer c.RUnlock()
	return len(c.entries)
}

func (c *Coordinator) nextOperationID() string {
	return fmt.Sprintf("op-%d", c.ids.Increment())
}

func (c *Coordinator) register(entry *Operation) {
	c.Lock()
	c.entries[entry.OperationID] = entry
	c.Unlock()
	c.log.Debugf("register: %s %s on %q", entry.OperationID, entry.Action, entry.Collection)
}

// mark an entry errored and build the failure result; the entry stays
// in the map until the caller clears it
func (c *Coordinator) settleError(entry *Operation) Result {
	c.Lock()
	entry.Err = fault.ErrOperationFailed
	entry.settledAt = time.Now()
	c.Unlock()

	c.log.Warnf("failed: %s %s on %q", entry.OperationID, entry.Action, entry.Collection)
	return Result{
		Success:     false,
		ID:          entry.ID,
		Err:         fault.ErrOperationFailed,
		OperationID: entry.OperationID,
	}
}

func copyRecord(record map[string]interface{}) map[string]interface{} {
	duplicate := make(map[string]interface{}, len(record))
	for field, value := range record {
		duplicate[field] = value
	}
	return duplicate
}
