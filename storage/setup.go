// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/skillstore/fault"
)

// collection names accepted by the data operations
const (
	Users      = "users"
	Skills     = "skills"
	UserSkills = "userskills"
)

// pools over the single database
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Users             *PoolHandle `prefix:"U"`
	Skills            *PoolHandle `prefix:"S"`
	UserSkills        *PoolHandle `prefix:"J"`
	Sequences         *PoolHandle `prefix:"N"`
	UserSkillsByUser  *PoolHandle `prefix:"u"`
	UserSkillsBySkill *PoolHandle `prefix:"s"`
	UserSkillsUnique  *PoolHandle `prefix:"Q"`
}

// one named collection and its key field
type collection struct {
	name     string
	keyField string
	pool     *PoolHandle
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// version history:
//   0x100 - initial schema: users, skills, userskills, sequences
//   0x200 - junction secondary indices (by user, by skill, unique pair)
const currentDBVersion = 0x200

// Store - the opened database and its pools
//
// construct once at startup with Initialise and pass by reference to
// all users; the zero value is not usable
type Store struct {
	sync.RWMutex

	// Pool - the set of exported pools
	Pool pools

	log         *logger.L
	db          *leveldb.DB
	batch       *leveldb.Batch
	cache       Cache
	access      DataAccess
	trx         Transaction
	collections map[string]*collection
}

// Initialise - open up the database connection
//
// creates an empty database on first use, stamps or verifies the
// schema version and rebuilds the junction indices when upgrading from
// an older version; refuses to open a newer database
func Initialise(database string) (*Store, error) {

	log := logger.New("storage")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	db, dbVersion, err := getDB(database)
	if nil != err {
		log.Criticalf("open failed: %q  error: %s", database, err)
		return nil, err
	}

	// ensure no database downgrade
	if dbVersion > currentDBVersion {
		log.Criticalf("database version: 0x%x > current version: 0x%x", dbVersion, currentDBVersion)
		db.Close()
		return nil, fault.ErrDatabaseVersionTooNew
	}

	s := &Store{
		log:   log,
		db:    db,
		batch: new(leveldb.Batch),
	}
	s.cache = newCache()
	s.access = newDA(s.db, s.batch, s.cache)
	s.trx = newTransaction([]DataAccess{s.access})

	if err := s.setupPools(); nil != err {
		db.Close()
		return nil, err
	}

	s.collections = map[string]*collection{
		Users:      {name: Users, keyField: "userId", pool: s.Pool.Users},
		Skills:     {name: Skills, keyField: "skillId", pool: s.Pool.Skills},
		UserSkills: {name: UserSkills, keyField: "userSkillId", pool: s.Pool.UserSkills},
	}

	// additive migration: never drops a collection, only rebuilds the
	// junction indices and re-seats the sequences
	if dbVersion < currentDBVersion {
		if 0 != dbVersion {
			log.Warnf("database version: 0x%x < current version: 0x%x: reindexing", dbVersion, currentDBVersion)
			if err := s.reindex(); nil != err {
				log.Criticalf("reindex failed: %s", err)
				db.Close()
				return nil, err
			}
		}
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("database open: %q  version: 0x%x", database, currentDBVersion)
	return s, nil
}

// scan the pools struct and assign a handle per prefix tag
func (s *Store) setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix:     prefix,
			limit:      limit,
			dataAccess: s.access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

// rebuild the junction indices and re-seat the sequences from the
// stored records; runs in one transaction so a crash part way leaves
// the old version stamp and the rebuild is retried on next open
func (s *Store) reindex() error {

	if err := s.trx.Begin(); nil != err {
		return err
	}

	// wipe all index entries
	for _, p := range []*PoolHandle{s.Pool.UserSkillsByUser, s.Pool.UserSkillsBySkill, s.Pool.UserSkillsUnique} {
		keys, err := allKeys(p)
		if nil != err {
			s.trx.Abort()
			return err
		}
		for _, key := range keys {
			s.trx.Delete(p, key)
		}
	}

	// recreate from the junction records
	iter := s.Pool.UserSkills.NewIterator()
	for iter.Next() {
		doc, err := decodeDoc(iter.Value())
		if nil != err {
			iter.Release()
			s.trx.Abort()
			return err
		}
		id, ok1 := docUint(doc, "userSkillId")
		userID, ok2 := docUint(doc, "userId")
		skillID, ok3 := docUint(doc, "skillId")
		if !ok1 || !ok2 || !ok3 {
			iter.Release()
			s.trx.Abort()
			return fault.ErrCannotDecodeRecord
		}
		s.writeJunctionIndices(id, userID, skillID)
	}
	err := iter.Error()
	iter.Release()
	if nil != err {
		s.trx.Abort()
		return err
	}

	// a sequence must never fall behind the highest stored id
	for _, c := range s.collections {
		element, found := c.pool.LastElement()
		if !found || 8 != len(element.Key) {
			continue
		}
		highest := binary.BigEndian.Uint64(element.Key)
		current, _, err := s.trx.GetN(s.Pool.Sequences, []byte(c.name))
		if nil != err {
			s.trx.Abort()
			return err
		}
		if current < highest {
			s.trx.PutN(s.Pool.Sequences, []byte(c.name), highest)
		}
	}

	return s.trx.Commit()
}

// Finalise - close the database connection
func (s *Store) Finalise() {
	s.Lock()
	defer s.Unlock()
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

// KeyField - the primary key field name of a collection
func (s *Store) KeyField(name string) (string, bool) {
	c, ok := s.collections[name]
	if !ok {
		return "", false
	}
	return c.keyField, true
}

// CollectionNames - all collection names in a stable order
func (s *Store) CollectionNames() []string {
	return []string{Users, Skills, UserSkills}
}

// return:
//   database handle
//   version number
func getDB(name string) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// collect every key of a pool; the enumeration completes before any
// result is used
func allKeys(p *PoolHandle) ([][]byte, error) {
	iter := p.NewIterator()
	defer iter.Release()

	keys := [][]byte(nil)
	for iter.Next() {
		key := iter.Key()
		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])
		keys = append(keys, dataKey)
	}
	return keys, iter.Error()
}
