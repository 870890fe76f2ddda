// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// This file contains the methods and interfaces used to support the backup
// mechanism on the header-index store without having to deal with vendoring.
package ethdb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type LDBIter interface {
	iterator.Iterator
}

type LDBSnapshot struct {
	*leveldb.Snapshot
}

func (db *LDBDatabase) LDBSnapshot() (*LDBSnapshot, error) {
	snap, err := db.LDB().GetSnapshot()
	return &LDBSnapshot{snap}, err
}

func (snap *LDBSnapshot) FullIter() LDBIter {
	return snap.NewIterator(&util.Range{}, &opt.ReadOptions{DontFillCache: true})
}

type RawLDB struct {
	*leveldb.DB
}

// OpenNewRawLDB opens a LDB, erroring if one already exists at fileName.
func OpenNewRawLDB(fileName string) (*RawLDB, error) {
	db, err := leveldb.OpenFile(fileName, &opt.Options{ErrorIfExist: true})
	return &RawLDB{db}, err
}

func (rdb *RawLDB) WriteBatch(batch *RawLDBBatch, sync bool) error {
	if batch != nil && batch.Batch != nil {
		return rdb.DB.Write(batch.Batch, &opt.WriteOptions{Sync: sync})
	}
	return nil
}

func (rdb *RawLDB) CompactAll() error {
	return rdb.DB.CompactRange(util.Range{})
}

type RawLDBBatch struct {
	*leveldb.Batch
}

func NewRawLDBBatch() *RawLDBBatch {
	return &RawLDBBatch{new(leveldb.Batch)}
}
