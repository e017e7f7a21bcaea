// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strconv"

	"github.com/bitmark-inc/skillstore/fault"
)

// The data operations below resolve to a value or the documented
// failure sentinel and never propagate an error or panic; the failure
// detail is written to the log channel only.

// Create - store a new record and assign its identifier
//
// the record must not carry an identifier; indices of the junction
// collection are maintained in the same transaction and a duplicate
// (userId, skillId) pair fails without writing anything
//
// returns the newly assigned id, or 0 and false on failure
func (s *Store) Create(name string, record map[string]interface{}) (uint64, bool) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("create", name)
	if !ok {
		return 0, false
	}

	if err := s.trx.Begin(); nil != err {
		s.logError("create", name, err)
		return 0, false
	}

	id, _, err := s.trx.GetN(s.Pool.Sequences, []byte(c.name))
	if nil != err {
		s.abortError("create", name, err)
		return 0, false
	}
	id += 1

	doc := copyDoc(record)
	doc[c.keyField] = id

	if UserSkills == name {
		userID, skillID, err := junctionRefs(doc)
		if nil != err {
			s.abortError("create", name, err)
			return 0, false
		}
		exists, err := s.trx.Has(s.Pool.UserSkillsUnique, uniqueKey(userID, skillID))
		if nil != err {
			s.abortError("create", name, err)
			return 0, false
		}
		if exists {
			s.abortError("create", name, fault.ErrLinkAlreadyExists)
			return 0, false
		}
		s.writeJunctionIndices(id, userID, skillID)
	}

	data, err := encodeDoc(doc)
	if nil != err {
		s.abortError("create", name, err)
		return 0, false
	}

	s.trx.PutN(s.Pool.Sequences, []byte(c.name), id)
	s.trx.Put(c.pool, num8(id), data)

	if err := s.trx.Commit(); nil != err {
		s.logError("create", name, err)
		return 0, false
	}
	return id, true
}

// Get - read one record by id
//
// a missing record is not a failure: it returns nil with true
func (s *Store) Get(name string, id uint64) (map[string]interface{}, bool) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("get", name)
	if !ok {
		return nil, false
	}

	data, err := c.pool.Get(num8(id))
	if nil != err {
		s.logError("get", name, err)
		return nil, false
	}
	if nil == data {
		return nil, true
	}

	doc, err := decodeDoc(data)
	if nil != err {
		s.logError("get", name, err)
		return nil, false
	}
	return doc, true
}

// GetAll - read every record of a collection in ascending id order
//
// the whole enumeration completes before anything is returned so the
// result can never be a partial snapshot
func (s *Store) GetAll(name string) ([]map[string]interface{}, bool) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("getAll", name)
	if !ok {
		return nil, false
	}

	iter := c.pool.NewIterator()
	docs := []map[string]interface{}{}
	for iter.Next() {
		doc, err := decodeDoc(iter.Value())
		if nil != err {
			iter.Release()
			s.logError("getAll", name, err)
			return nil, false
		}
		docs = append(docs, doc)
	}
	err := iter.Error()
	iter.Release()
	if nil != err {
		s.logError("getAll", name, err)
		return nil, false
	}
	return docs, true
}

// Update - merge partial fields into a stored record
//
// upsert-by-merge: a missing record is synthesised from the factory
// instead of failing; only the fields present in partial are replaced
// and the identifier always remains the target id; the read, merge and
// write happen in one transaction
func (s *Store) Update(name string, id uint64, partial map[string]interface{}, factory func() map[string]interface{}) (map[string]interface{}, bool) {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("update", name)
	if !ok {
		return nil, false
	}

	if err := s.trx.Begin(); nil != err {
		s.logError("update", name, err)
		return nil, false
	}

	data, err := s.trx.Get(c.pool, num8(id))
	if nil != err {
		s.abortError("update", name, err)
		return nil, false
	}

	oldExists := false
	oldUser := uint64(0)
	oldSkill := uint64(0)

	merged := map[string]interface{}(nil)
	if nil == data {
		if nil != factory {
			merged = copyDoc(factory())
		}
		if nil == merged {
			merged = make(map[string]interface{})
		}
	} else {
		merged, err = decodeDoc(data)
		if nil != err {
			s.abortError("update", name, err)
			return nil, false
		}
		oldExists = true
		if UserSkills == name {
			oldUser, oldSkill, err = junctionRefs(merged)
			if nil != err {
				s.abortError("update", name, err)
				return nil, false
			}
		}
	}

	for field, value := range partial {
		merged[field] = value
	}
	merged[c.keyField] = id

	if UserSkills == name {
		newUser, newSkill, err := junctionRefs(merged)
		if nil != err {
			s.abortError("update", name, err)
			return nil, false
		}
		if !oldExists || oldUser != newUser || oldSkill != newSkill {
			exists, err := s.trx.Has(s.Pool.UserSkillsUnique, uniqueKey(newUser, newSkill))
			if nil != err {
				s.abortError("update", name, err)
				return nil, false
			}
			if exists {
				s.abortError("update", name, fault.ErrLinkAlreadyExists)
				return nil, false
			}
			if oldExists {
				s.removeJunctionIndices(id, oldUser, oldSkill)
			}
			s.writeJunctionIndices(id, newUser, newSkill)
		}
	}

	// an upsert with an explicit id must keep the sequence ahead of it
	if !oldExists {
		current, _, err := s.trx.GetN(s.Pool.Sequences, []byte(c.name))
		if nil != err {
			s.abortError("update", name, err)
			return nil, false
		}
		if id > current {
			s.trx.PutN(s.Pool.Sequences, []byte(c.name), id)
		}
	}

	data, err = encodeDoc(merged)
	if nil != err {
		s.abortError("update", name, err)
		return nil, false
	}
	s.trx.Put(c.pool, num8(id), data)

	if err := s.trx.Commit(); nil != err {
		s.logError("update", name, err)
		return nil, false
	}

	// hand back the stored representation
	doc, err := decodeDoc(data)
	if nil != err {
		s.logError("update", name, err)
		return nil, false
	}
	return doc, true
}

// Remove - delete one record by id
//
// deleting an id that is not stored is a success: the engine treats
// delete-of-absent as a no-op (asserted by test)
func (s *Store) Remove(name string, id uint64) bool {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("remove", name)
	if !ok {
		return false
	}

	if err := s.trx.Begin(); nil != err {
		s.logError("remove", name, err)
		return false
	}

	if UserSkills == name {
		data, err := s.trx.Get(c.pool, num8(id))
		if nil != err {
			s.abortError("remove", name, err)
			return false
		}
		if nil != data {
			doc, err := decodeDoc(data)
			if nil != err {
				s.abortError("remove", name, err)
				return false
			}
			userID, skillID, err := junctionRefs(doc)
			if nil != err {
				s.abortError("remove", name, err)
				return false
			}
			s.removeJunctionIndices(id, userID, skillID)
		}
	}

	s.trx.Delete(c.pool, num8(id))

	if err := s.trx.Commit(); nil != err {
		s.logError("remove", name, err)
		return false
	}
	return true
}

// Clear - delete every record of a collection in one transaction
//
// junction indices are cleared with the records; the sequence is
// preserved so later creates never reuse an id
func (s *Store) Clear(name string) bool {
	s.RLock()
	defer s.RUnlock()

	c, ok := s.usable("clear", name)
	if !ok {
		return false
	}

	if err := s.trx.Begin(); nil != err {
		s.logError("clear", name, err)
		return false
	}

	targets := []*PoolHandle{c.pool}
	if UserSkills == name {
		targets = append(targets, s.Pool.UserSkillsByUser, s.Pool.UserSkillsBySkill, s.Pool.UserSkillsUnique)
	}

	for _, p := range targets {
		keys, err := allKeys(p)
		if nil != err {
			s.abortError("clear", name, err)
			return false
		}
		for _, key := range keys {
			s.trx.Delete(p, key)
		}
	}

	if err := s.trx.Commit(); nil != err {
		s.logError("clear", name, err)
		return false
	}
	return true
}

// ensure the store is open and the collection exists
func (s *Store) usable(operation string, name string) (*collection, bool) {
	if nil == s.db {
		s.logError(operation, name, fault.ErrNotInitialised)
		return nil, false
	}
	c, ok := s.collections[name]
	if !ok {
		s.logError(operation, name, fault.ErrUnknownCollection)
		return nil, false
	}
	return c, true
}

// abort the current transaction and log the failure
func (s *Store) abortError(operation string, name string, err error) {
	s.trx.Abort()
	s.logError(operation, name, err)
}

// single funnel for all failure diagnostics
func (s *Store) logError(operation string, name string, err error) {
	s.log.Errorf("%s: collection: %s  error: %s", operation, name, err)
}

func (s *Store) writeJunctionIndices(id uint64, userID uint64, skillID uint64) {
	s.trx.Put(s.Pool.UserSkillsUnique, uniqueKey(userID, skillID), num8(id))
	s.trx.Put(s.Pool.UserSkillsByUser, refKey(userID, id), []byte{})
	s.trx.Put(s.Pool.UserSkillsBySkill, refKey(skillID, id), []byte{})
}

func (s *Store) removeJunctionIndices(id uint64, userID uint64, skillID uint64) {
	s.trx.Delete(s.Pool.UserSkillsUnique, uniqueKey(userID, skillID))
	s.trx.Delete(s.Pool.UserSkillsByUser, refKey(userID, id))
	s.trx.Delete(s.Pool.UserSkillsBySkill, refKey(skillID, id))
}

// big endian uint64 key
func num8(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}

// userId ++ skillId
func uniqueKey(userID uint64, skillID uint64) []byte {
	return append(num8(userID), num8(skillID)...)
}

// foreign key ++ id
func refKey(foreign uint64, id uint64) []byte {
	return append(num8(foreign), num8(id)...)
}

// shallow copy so callers never see their own maps mutated
func copyDoc(doc map[string]interface{}) map[string]interface{} {
	if nil == doc {
		return nil
	}
	out := make(map[string]interface{}, len(doc))
	for field, value := range doc {
		out[field] = value
	}
	return out
}

func encodeDoc(doc map[string]interface{}) ([]byte, error) {
	data, err := json.Marshal(doc)
	if nil != err {
		return nil, fault.ErrJsonParseFail
	}
	return data, nil
}

// decode keeping numbers as json.Number so ids do not lose precision
func decodeDoc(data []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	doc := map[string]interface{}(nil)
	if err := decoder.Decode(&doc); nil != err {
		return nil, fault.ErrJsonParseFail
	}
	return doc, nil
}

// extract the two junction references from a document
func junctionRefs(doc map[string]interface{}) (uint64, uint64, error) {
	userID, ok := docUint(doc, "userId")
	if !ok || 0 == userID {
		return 0, 0, fault.ErrInvalidRecordIdentifier
	}
	skillID, ok := docUint(doc, "skillId")
	if !ok || 0 == skillID {
		return 0, 0, fault.ErrInvalidRecordIdentifier
	}
	return userID, skillID, nil
}

// read a numeric document field in any of the forms a JSON round trip
// or a caller can produce
func docUint(doc map[string]interface{}, field string) (uint64, bool) {
	switch n := doc[field].(type) {
	case json.Number:
		value, err := strconv.ParseUint(n.String(), 10, 64)
		return value, nil == err
	case float64:
		if n < 0 || n != float64(uint64(n)) {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
