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

// Package ethdb is the persistence collaborator spec.md §1 excludes from
// the core proper ("block acquisition ... on-disk caches" is out of
// scope) but which a host process still needs to keep a header index
// across restarts (core/headerindex.go). Adapted from the teacher's
// ethdb/backup.go, which assumes an LDBDatabase type this package now
// defines directly.
package ethdb

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Database is the minimal key/value contract the rest of this module
// depends on, small enough that an in-memory map can stand in for tests.
type Database interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Close()
}

// LDBDatabase is a LevelDB-backed Database, the teacher's on-disk store
// for chain data.
type LDBDatabase struct {
	fn string
	db *leveldb.DB
}

// NewLDBDatabase opens (creating if absent) the LevelDB database at file.
func NewLDBDatabase(file string) (*LDBDatabase, error) {
	db, err := leveldb.OpenFile(file, &opt.Options{OpenFilesCacheCapacity: 128})
	if err != nil {
		return nil, err
	}
	return &LDBDatabase{fn: file, db: db}, nil
}

func (db *LDBDatabase) Put(key, value []byte) error {
	return db.db.Put(key, value, nil)
}

func (db *LDBDatabase) Get(key []byte) ([]byte, error) {
	return db.db.Get(key, nil)
}

func (db *LDBDatabase) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

func (db *LDBDatabase) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

func (db *LDBDatabase) Close() {
	db.db.Close()
}

// LDB exposes the underlying *leveldb.DB, the escape hatch the teacher's
// ethdb/backup.go snapshot/batch helpers need.
func (db *LDBDatabase) LDB() *leveldb.DB {
	return db.db
}

// MemDatabase is an in-memory Database, used by tests that shouldn't
// touch disk.
type MemDatabase struct {
	kv map[string][]byte
}

// NewMemDatabase creates an empty in-memory database.
func NewMemDatabase() *MemDatabase {
	return &MemDatabase{kv: make(map[string][]byte)}
}

func (db *MemDatabase) Put(key, value []byte) error {
	db.kv[string(key)] = append([]byte(nil), value...)
	return nil
}

func (db *MemDatabase) Get(key []byte) ([]byte, error) {
	if v, ok := db.kv[string(key)]; ok {
		return v, nil
	}
	return nil, leveldb.ErrNotFound
}

func (db *MemDatabase) Has(key []byte) (bool, error) {
	_, ok := db.kv[string(key)]
	return ok, nil
}

func (db *MemDatabase) Delete(key []byte) error {
	delete(db.kv, string(key))
	return nil
}

func (db *MemDatabase) Close() {}
