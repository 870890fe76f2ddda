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

// Package core implements the block-level state-transition engine:
// header and ommer validation, the transaction processor and body
// executor, reward payment, and the chain driver that ties them
// together. Adapted throughout from the teacher's core package
// (core/state_processor.go, core/vm_env.go), restructured around the
// single-purpose files spec.md §2 lays out rather than the teacher's
// monolithic StateProcessor.
package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aristanetworks/goarista/monotime"
	"github.com/ethereum/go-ethereum/log"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/ethdb"
	"github.com/fronticore/ethcore/params"
)

// BlockGetter is the header-by-hash collaborator core/vm.Environment
// needs for its BLOCKHASH-style lookup; *HeaderIndex satisfies it.
type BlockGetter = interface {
	GetHeader(hash common.Hash) *types.Header
}

// BlockChain owns the ordered block sequence and the current world
// state, spec.md §3's BlockChain entity: "ordered sequence of blocks,
// current state". It is not safe for concurrent use by multiple
// goroutines; core/multichain.go gives each candidate fork its own
// instance.
type BlockChain struct {
	genesis *params.GenesisConfig
	engine  PoWVerifier

	blocks []*types.Block
	index  *HeaderIndex
	state  *state.StateDB

	snapshotDir      string
	snapshotInterval uint64
	remoteUploader   BlobUploader
	remoteBlobPrefix string
}

// NewBlockChain creates an empty chain configured with genesis and
// backed by db for header persistence. engine may be nil, the
// documented proof-of-work gap spec.md §9 describes.
func NewBlockChain(db ethdb.Database, genesis *params.GenesisConfig, engine PoWVerifier) *BlockChain {
	return &BlockChain{
		genesis: genesis,
		engine:  engine,
		index:   NewHeaderIndex(db),
		state:   state.New(),
	}
}

// State returns the chain's current world state.
func (bc *BlockChain) State() *state.StateDB { return bc.state }

// ConfigureSnapshots arms a periodic on-disk backup of the header index:
// every interval-th committed block triggers HeaderIndex.ExportSnapshot
// into a freshly named LevelDB under dir. interval == 0 (the default)
// disables it; a db not backed by ethdb.LDBDatabase (e.g. in tests)
// reports ErrSnapshotUnsupported, which is skipped silently. Other export
// or upload errors are logged. None of them fails the block commit.
func (bc *BlockChain) ConfigureSnapshots(dir string, interval uint64) {
	bc.snapshotDir = dir
	bc.snapshotInterval = interval
}

// ConfigureRemoteBackup arms an off-box copy of the same periodic
// snapshots ConfigureSnapshots schedules, pushed to uploader (typically
// an *ethdb.AzureBackup) under a blobPrefix-"-<number>" name.
func (bc *BlockChain) ConfigureRemoteBackup(uploader BlobUploader, blobPrefix string) {
	bc.remoteUploader = uploader
	bc.remoteBlobPrefix = blobPrefix
}

func (bc *BlockChain) maybeExportSnapshot(number uint64) {
	if bc.snapshotInterval == 0 || number%bc.snapshotInterval != 0 {
		return
	}
	dest := filepath.Join(bc.snapshotDir, fmt.Sprintf("headerindex-%d.ldb", number))
	dst, err := bc.index.ExportSnapshot(dest)
	if err != nil {
		if err != ErrSnapshotUnsupported {
			log.Error("header index snapshot export failed", "number", number, "err", err)
		}
		return
	}
	dst.Close()

	if bc.remoteUploader != nil {
		blobName := fmt.Sprintf("%s-%d", bc.remoteBlobPrefix, number)
		if err := bc.index.PushSnapshot(context.Background(), bc.remoteUploader, blobName); err != nil {
			log.Error("header index remote backup failed", "number", number, "err", err)
		}
	}
}

// GetHeader implements core/vm.BlockGetter and core.BlockGetter.
func (bc *BlockChain) GetHeader(hash common.Hash) *types.Header {
	return bc.index.Get(hash)
}

// AncestorAt implements core.AncestorLookup: the canonical block `age`
// positions back from the tip, spec.md §4.7's `chain.blocks[len − age]`.
func (bc *BlockChain) AncestorAt(age uint64) *types.Header {
	n := uint64(len(bc.blocks))
	if age == 0 || age > n {
		return nil
	}
	return bc.blocks[n-age].Header()
}

// StateTransition implements spec.md §4.1's `state_transition(chain,
// block)` in full. On any failure it returns an error and leaves bc
// entirely unmodified — both its block sequence and its state — by
// operating against a snapshot copy of the state and only swapping it
// in once every check has passed, the copy-on-write discipline spec.md
// §9 calls out as the alternative to an in-place journal.
func (bc *BlockChain) StateTransition(block *types.Block) error {
	start := monotime.Now()
	header := block.Header()

	working := bc.state.Copy()

	if header.Number.Sign() == 0 {
		if err := ValidateGenesisHeader(header, bc.genesis); err != nil {
			return err
		}
		for addr, balance := range bc.genesis.Alloc {
			working.AddBalance(addr, balance)
		}
	} else {
		parent := bc.index.Get(header.ParentHash)
		if parent == nil {
			return ErrUnknownParent
		}
		if err := ValidateHeader(header, parent, bc.engine); err != nil {
			return err
		}
	}

	result, err := ApplyBody(working, bc.index, header, block.Transactions(), block.Ommers())
	if err != nil {
		return err
	}

	if result.GasUsed != header.GasUsed {
		return newCommitmentError("gas_used")
	}
	if result.TxRoot != header.TransactionsRoot {
		return newCommitmentError("transactions_root")
	}
	if result.ReceiptRoot != header.ReceiptRoot {
		return newCommitmentError("receipt_root")
	}
	if StateRoot(working) != header.StateRoot {
		return newCommitmentError("state_root")
	}
	if result.Bloom != header.Bloom {
		return newCommitmentError("bloom")
	}

	if header.Number.Sign() != 0 {
		if err := ValidateOmmers(header.Number, block.Ommers(), header.OmmersHash, bc); err != nil {
			return err
		}
	} else if len(block.Ommers()) != 0 {
		return newOmmerError("genesis block must have no ommers")
	}

	bc.state = working
	bc.blocks = append(bc.blocks, block)
	if err := bc.index.Put(header); err != nil {
		return err
	}

	txProcessed.Inc(int64(len(block.Transactions())))
	blocksApplied.Inc(1)
	log.Info("applied block", "number", header.Number, "hash", header.Hash(), "txs", len(block.Transactions()), "elapsed", time.Duration(monotime.Now()-start))

	bc.maybeExportSnapshot(header.Number.Uint64())
	return nil
}
