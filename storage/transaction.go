// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction - one atomic unit of work over the database
//
// all writes issued between Begin and Commit are applied in a single
// batch write; Abort discards them
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) ([]byte, error)
	GetN(*PoolHandle, []byte) (uint64, bool, error)
	Has(*PoolHandle, []byte) (bool, error)
	Commit() error
	Abort()
	InUse() bool
	DumpTx() []byte
}

type TransactionImpl struct {
	dataAccess []DataAccess
}

func newTransaction(access []DataAccess) Transaction {
	return &TransactionImpl{
		dataAccess: access,
	}
}

// Begin - acquire the underlying batches
//
// blocks while another transaction is in flight
func (t *TransactionImpl) Begin() error {
	for _, da := range t.dataAccess {
		if err := da.Begin(); nil != err {
			return err
		}
	}
	return nil
}

func (t *TransactionImpl) Put(p *PoolHandle, key []byte, value []byte) {
	p.put(key, value)
}

func (t *TransactionImpl) PutN(p *PoolHandle, key []byte, value uint64) {
	p.putN(key, value)
}

func (t *TransactionImpl) Delete(p *PoolHandle, key []byte) {
	p.remove(key)
}

func (t *TransactionImpl) Get(p *PoolHandle, key []byte) ([]byte, error) {
	return p.Get(key)
}

func (t *TransactionImpl) GetN(p *PoolHandle, key []byte) (uint64, bool, error) {
	return p.GetN(key)
}

func (t *TransactionImpl) Has(p *PoolHandle, key []byte) (bool, error) {
	return p.Has(key)
}

func (t *TransactionImpl) Commit() error {
	for _, da := range t.dataAccess {
		if err := da.Commit(); nil != err {
			return err
		}
	}
	return nil
}

func (t *TransactionImpl) Abort() {
	for _, da := range t.dataAccess {
		da.Abort()
	}
}

func (t *TransactionImpl) InUse() bool {
	for _, da := range t.dataAccess {
		if da.InUse() {
			return true
		}
	}
	return false
}

func (t *TransactionImpl) DumpTx() []byte {
	dump := []byte(nil)
	for _, da := range t.dataAccess {
		dump = append(dump, da.DumpTx()...)
	}
	return dump
}
