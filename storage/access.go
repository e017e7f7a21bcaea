// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// DataAccess - batch transaction over one database
//
// Begin blocks until any in-flight transaction commits or aborts, so
// concurrently issued operations serialise instead of failing
type DataAccess interface {
	Begin() error
	Commit() error
	Abort()
	InUse() bool
	Put([]byte, []byte)
	Delete([]byte)
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
	DumpTx() []byte
}

type AccessData struct {
	sync.Mutex // held from Begin until Commit or Abort
	inUse      bool
	db         *leveldb.DB
	batch      *leveldb.Batch
	cache      Cache
}

func newDA(db *leveldb.DB, batch *leveldb.Batch, cache Cache) DataAccess {
	return &AccessData{
		inUse: false,
		db:    db,
		batch: batch,
		cache: cache,
	}
}

func (d *AccessData) Begin() error {
	d.Lock()
	d.inUse = true
	return nil
}

func (d *AccessData) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
	d.batch.Put(key, value)
}

func (d *AccessData) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), []byte{})
	d.batch.Delete(key)
}

// Commit - write the batch atomically, then release the transaction
//
// on a write error nothing of the batch is applied and the
// transaction is rolled back
func (d *AccessData) Commit() error {
	err := d.db.Write(d.batch, nil)
	if nil != err {
		d.reset()
		return err
	}
	d.batch.Reset()
	d.inUse = false
	d.Unlock()
	return nil
}

func (d *AccessData) Abort() {
	d.reset()
}

func (d *AccessData) reset() {
	d.batch.Reset()
	d.cache.Clear()
	d.inUse = false
	d.Unlock()
}

func (d *AccessData) DumpTx() []byte {
	return d.batch.Dump()
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	val, found := d.getFromCache(key)
	if found {
		return val, nil
	}
	return d.getFromDB(key)
}

func (d *AccessData) getFromCache(key []byte) ([]byte, bool) {
	return d.cache.Get(string(key))
}

func (d *AccessData) getFromDB(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	_, found := d.getFromCache(key)
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}

func (d *AccessData) InUse() bool {
	return d.inUse
}
