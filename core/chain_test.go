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
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/ethdb"
	"github.com/fronticore/ethcore/params"
)

// frontierGenesisConfig uses a genesis gas limit large enough that a child
// block, whose limit may move by at most parent/1024, can carry a
// 21000-gas value transfer.
func frontierGenesisConfig(sender [20]byte, balance *big.Int) *params.GenesisConfig {
	return &params.GenesisConfig{
		Difficulty: big.NewInt(131072),
		GasLimit:   5_000_000,
		Nonce:      [8]byte{0, 0, 0, 0, 0, 0, 0, 0x42},
		Timestamp:  0,
		ExtraData:  make([]byte, 32),
		Alloc:      params.GenesisAlloc{sender: balance},
	}
}

// frontierGenesisHeader builds a genesis header matching cfg whose state
// root commits to cfg's prealloc and whose transaction and receipt roots
// commit to an empty body, the values StateTransition recomputes for
// block 0.
func frontierGenesisHeader(cfg *params.GenesisConfig) *types.Header {
	prealloc := state.New()
	for addr, balance := range cfg.Alloc {
		prealloc.AddBalance(addr, balance)
	}
	return &types.Header{
		Difficulty:       cfg.Difficulty,
		GasLimit:         cfg.GasLimit,
		Timestamp:        cfg.Timestamp,
		ExtraData:        cfg.ExtraData,
		Nonce:            cfg.Nonce,
		Number:           big.NewInt(0),
		StateRoot:        StateRoot(prealloc),
		TransactionsRoot: commitmentRoot(txRootInputs(nil), false),
		ReceiptRoot:      commitmentRoot(receiptRootInputs(nil), false),
	}
}

// TestStateTransitionFrontierGenesis covers S1: applying the Frontier
// genesis block credits every prealloc'd balance into the chain's
// state.
func TestStateTransitionFrontierGenesis(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	cfg := frontierGenesisConfig(sender, big.NewInt(1_000_000_000_000))

	chain := NewBlockChain(ethdb.NewMemDatabase(), cfg, nil)
	genesisBlock := types.NewBlock(frontierGenesisHeader(cfg), nil, nil)

	require.NoError(t, chain.StateTransition(genesisBlock))
	require.Zero(t, chain.State().GetBalance(sender).Cmp(big.NewInt(1_000_000_000_000)))
}

// buildChildBlock assembles a valid, fully committed child block one
// value transfer deep, using ApplyBody against a scratch copy of the
// chain's state to compute the header's commitment fields exactly the
// way StateTransition itself will.
func buildChildBlock(t *testing.T, chain *BlockChain, parent *types.Header, tx *types.Transaction) *types.Block {
	t.Helper()
	header := &types.Header{
		ParentHash: parent.Hash(),
		Coinbase:   [20]byte{0xc0, 0xff, 0xee},
		Number:     new(big.Int).Add(parent.Number, big.NewInt(1)),
		Timestamp:  parent.Timestamp + 20,
		Difficulty: CalculateDifficulty(new(big.Int).Add(parent.Number, big.NewInt(1)), parent.Timestamp+20, parent.Timestamp, parent.Difficulty),
		GasLimit:   parent.GasLimit + 1,
	}

	scratch := chain.State().Copy()
	result, err := ApplyBody(scratch, chain, header, types.Transactions{tx}, nil)
	require.NoError(t, err)

	ommersRoot, err := ommersHash(nil)
	require.NoError(t, err)

	header.GasUsed = result.GasUsed
	header.TransactionsRoot = result.TxRoot
	header.ReceiptRoot = result.ReceiptRoot
	header.Bloom = result.Bloom
	header.StateRoot = StateRoot(scratch)
	header.OmmersHash = ommersRoot

	return types.NewBlock(header, types.Transactions{tx}, nil)
}

func TestStateTransitionAppliesChildBlock(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	cfg := frontierGenesisConfig(sender, big.NewInt(1_000_000_000_000))

	chain := NewBlockChain(ethdb.NewMemDatabase(), cfg, nil)
	genesisHeader := frontierGenesisHeader(cfg)
	require.NoError(t, chain.StateTransition(types.NewBlock(genesisHeader, nil, nil)))

	recipient := [20]byte{0x42}
	tx := types.NewTransaction(0, recipient, big.NewInt(1000), txGas, big.NewInt(1), nil)
	signed, err := tx.SignECDSA(key)
	require.NoError(t, err)

	child := buildChildBlock(t, chain, genesisHeader, signed)
	require.NoError(t, chain.StateTransition(child))

	require.Zero(t, chain.State().GetBalance(recipient).Cmp(big.NewInt(1000)))
	require.Equal(t, uint64(1), chain.State().GetNonce(sender))
}

// TestStateTransitionRejectionLeavesChainUnmodified covers Testable
// Property 2: a block that fails one of the post-execution commitment
// checks is rejected with a CommitmentError and leaves the chain's state
// untouched: the sender's balance is unchanged and the recipient never
// receives the transfer.
func TestStateTransitionRejectionLeavesChainUnmodified(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	cfg := frontierGenesisConfig(sender, big.NewInt(1_000_000_000_000))

	chain := NewBlockChain(ethdb.NewMemDatabase(), cfg, nil)
	genesisHeader := frontierGenesisHeader(cfg)
	require.NoError(t, chain.StateTransition(types.NewBlock(genesisHeader, nil, nil)))

	balanceBefore := chain.State().GetBalance(sender)

	recipient := [20]byte{0x42}
	tx := types.NewTransaction(0, recipient, big.NewInt(1000), txGas, big.NewInt(1), nil)
	signed, err := tx.SignECDSA(key)
	require.NoError(t, err)

	child := buildChildBlock(t, chain, genesisHeader, signed)
	child.Header().GasUsed++ // corrupt the committed gas_used

	err = chain.StateTransition(child)
	require.Error(t, err)
	require.IsType(t, &CommitmentError{}, err)

	require.Zero(t, chain.State().GetBalance(sender).Cmp(balanceBefore))
	require.Zero(t, chain.State().GetBalance(recipient).Sign())
}

// TestStateTransitionExportsPeriodicSnapshot covers the chain-driven half
// of the header-index backup mechanism: committing the genesis block
// with snapshots armed at interval 1 produces an on-disk LevelDB copy
// and pushes the same contents to a configured remote uploader.
func TestStateTransitionExportsPeriodicSnapshot(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	cfg := frontierGenesisConfig(sender, big.NewInt(1_000_000_000_000))

	srcDB, err := ethdb.NewLDBDatabase(filepath.Join(t.TempDir(), "headers"))
	require.NoError(t, err)
	defer srcDB.Close()

	chain := NewBlockChain(srcDB, cfg, nil)

	snapshotDir := t.TempDir()
	chain.ConfigureSnapshots(snapshotDir, 1)
	uploader := &fakeUploader{}
	chain.ConfigureRemoteBackup(uploader, "genesis-backup")

	require.NoError(t, chain.StateTransition(types.NewBlock(frontierGenesisHeader(cfg), nil, nil)))

	entries, err := os.ReadDir(snapshotDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	require.NotEmpty(t, uploader.keys)
}
