// Copyright 2015 The go-ethereum Authors
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

package core

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/ethdb"
	"github.com/fronticore/ethcore/rlp"
)

// headerIndexCacheSize bounds the in-memory LRU front of the header
// index; spec.md §9 calls this out directly: "an implementation at
// mainnet scale must index headers by hash in an auxiliary map without
// changing observable semantics."
const headerIndexCacheSize = 2048

// HeaderIndex resolves headers by hash in O(1) instead of the source's
// linear chain scan, LRU-fronted (hashicorp/golang-lru) over a LevelDB
// store (ethdb) the way the teacher indexes block data.
type HeaderIndex struct {
	db    ethdb.Database
	cache *lru.Cache
}

// NewHeaderIndex builds an index backed by db.
func NewHeaderIndex(db ethdb.Database) *HeaderIndex {
	cache, err := lru.New(headerIndexCacheSize)
	if err != nil {
		panic(err)
	}
	return &HeaderIndex{db: db, cache: cache}
}

func headerKey(hash common.Hash) []byte {
	return append([]byte("h"), hash.Bytes()...)
}

// Put indexes header under its own hash.
func (idx *HeaderIndex) Put(header *types.Header) error {
	hash := header.Hash()
	enc, err := rlp.EncodeToBytes(header)
	if err != nil {
		return err
	}
	idx.cache.Add(hash, header)
	return idx.db.Put(headerKey(hash), enc)
}

// Get resolves hash to its header, or nil if unknown.
func (idx *HeaderIndex) Get(hash common.Hash) *types.Header {
	if v, ok := idx.cache.Get(hash); ok {
		return v.(*types.Header)
	}
	enc, err := idx.db.Get(headerKey(hash))
	if err != nil {
		return nil
	}
	var h types.Header
	if err := rlp.DecodeBytes(enc, &h); err != nil {
		return nil
	}
	idx.cache.Add(hash, &h)
	return &h
}

// GetHeader implements core/vm.BlockGetter.
func (idx *HeaderIndex) GetHeader(hash common.Hash) *types.Header {
	return idx.Get(hash)
}

// ErrSnapshotUnsupported is returned by ExportSnapshot/PushSnapshot when
// the index's backing store isn't an ethdb.LDBDatabase (e.g. the
// ethdb.MemDatabase most tests in this package run against).
var ErrSnapshotUnsupported = errors.New("headerindex: backing store does not support snapshots")

// snapshotSource is implemented by ethdb.LDBDatabase.
type snapshotSource interface {
	LDBSnapshot() (*ethdb.LDBSnapshot, error)
}

// ExportSnapshot copies the index's current on-disk contents into a
// fresh LevelDB at destPath and compacts it, returning the copy open for
// the caller to close. This is the local half of the teacher's
// ethdb/backup.go helpers (LDBSnapshot, RawLDB, RawLDBBatch), here
// backing up a header index instead of the state server the teacher's
// package comment describes.
func (idx *HeaderIndex) ExportSnapshot(destPath string) (*ethdb.RawLDB, error) {
	src, ok := idx.db.(snapshotSource)
	if !ok {
		return nil, ErrSnapshotUnsupported
	}
	snap, err := src.LDBSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Release()

	dst, err := ethdb.OpenNewRawLDB(destPath)
	if err != nil {
		return nil, err
	}

	batch := ethdb.NewRawLDBBatch()
	it := snap.FullIter()
	for it.Next() {
		batch.Put(it.Key(), it.Value())
	}
	if err := it.Error(); err != nil {
		dst.Close()
		return nil, err
	}
	if err := dst.WriteBatch(batch, true); err != nil {
		dst.Close()
		return nil, err
	}
	if err := dst.CompactAll(); err != nil {
		dst.Close()
		return nil, err
	}
	return dst, nil
}

// BlobUploader is the subset of ethdb.AzureBackup this package drives,
// accepted as an interface so PushSnapshot is testable without a real
// Azure container.
type BlobUploader interface {
	UploadSnapshot(ctx context.Context, blobName string, it ethdb.LDBIter) error
}

// PushSnapshot streams the index's current contents to uploader under
// blobName, the off-box half of the same backup mechanism ExportSnapshot
// performs locally.
func (idx *HeaderIndex) PushSnapshot(ctx context.Context, uploader BlobUploader, blobName string) error {
	src, ok := idx.db.(snapshotSource)
	if !ok {
		return ErrSnapshotUnsupported
	}
	snap, err := src.LDBSnapshot()
	if err != nil {
		return err
	}
	defer snap.Release()
	return uploader.UploadSnapshot(ctx, blobName, snap.FullIter())
}
