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
	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/core/vm"
	"github.com/fronticore/ethcore/trie"
)

// BodyResult is the tuple spec.md §4.2 step 6 returns,
// (gas_used, tx_root, receipt_root, block_bloom), plus the per-transaction
// receipts; the post-state is not held here, since ApplyBody mutates db in
// place.
type BodyResult struct {
	GasUsed     uint64
	TxRoot      common.Hash
	ReceiptRoot common.Hash
	Bloom       types.Bloom
	Receipts    types.Receipts
}

// ApplyBody implements spec.md §4.2's body executor: it sequences
// transactions through ApplyTransaction, accumulates receipts, pays
// block/ommer rewards, and computes the three commitment roots. db is
// mutated in place; on error the caller is responsible for rolling db
// back to its pre-call snapshot (BlockChain.StateTransition does this).
func ApplyBody(db *state.StateDB, chain BlockGetter, header *types.Header, txs types.Transactions, ommers []*types.Header) (*BodyResult, error) {
	gasPool := new(GasPool).SetGas(header.GasLimit)

	receipts := make(types.Receipts, 0, len(txs))
	var blockLogs []*types.Log

	for _, tx := range txs {
		env := vm.NewEnvironment(db, header, chain, mustSender(tx))
		gasUsed, logs, err := ApplyTransaction(db, env, tx, gasPool)
		if err != nil {
			return nil, err
		}

		cumulativeGasUsed := header.GasLimit - gasPool.Gas()
		receipt := types.NewReceipt(stateRootBytes(db), cumulativeGasUsed)
		receipt.TxHash = tx.Hash()
		receipt.GasUsed = gasUsed
		receipt.Logs = logs
		receipt.Bloom = types.LogsBloom(logs)
		receipts = append(receipts, receipt)

		blockLogs = append(blockLogs, logs...)
	}

	if header.Number.Sign() != 0 {
		PayRewards(db, header, ommers)
	}

	txRoot := commitmentRoot(txRootInputs(txs), false)
	receiptRoot := commitmentRoot(receiptRootInputs(receipts), false)

	return &BodyResult{
		GasUsed:     header.GasLimit - gasPool.Gas(),
		TxRoot:      txRoot,
		ReceiptRoot: receiptRoot,
		Bloom:       types.CreateBloom(receipts),
		Receipts:    receipts,
	}, nil
}

// mustSender recovers tx's sender, treating a malformed signature as the
// zero address; ApplyTransaction independently re-validates the
// signature and will reject such a transaction before this value is
// ever used for a balance check.
func mustSender(tx *types.Transaction) common.Address {
	addr, err := tx.Sender()
	if err != nil {
		return common.Address{}
	}
	return addr
}

// stateRootBytes computes the per-receipt post_state root, spec.md
// §4.2 step 2e's `post_state = trie_root(state)`.
func stateRootBytes(db *state.StateDB) []byte {
	root := StateRoot(db)
	return root[:]
}

// StateRoot computes the secured trie root over db's accounts, spec.md
// §4.2 step 4's "the state root in secured mode (keys keccak-hashed)".
func StateRoot(db *state.StateDB) common.Hash {
	data := make(map[string][]byte)
	for addr, acc := range db.Dump() {
		enc, _ := accountRLP(acc)
		data[string(addr.Bytes())] = enc
	}
	return trie.Root(data, true)
}

// txRootInputs/receiptRootInputs build the ordered map from RLP-encoded
// index to value spec.md §4.2 step 4 describes, keyed unsecured (raw
// RLP-encoded Uint index, not hashed).
func txRootInputs(txs types.Transactions) map[string][]byte {
	m := make(map[string][]byte, len(txs))
	for i, tx := range txs {
		enc, _ := rlpIndexKey(uint64(i))
		val, _ := rlpEncode(tx)
		m[string(enc)] = val
	}
	return m
}

func receiptRootInputs(receipts types.Receipts) map[string][]byte {
	m := make(map[string][]byte, len(receipts))
	for i, r := range receipts {
		enc, _ := rlpIndexKey(uint64(i))
		val, _ := rlpEncode(r)
		m[string(enc)] = val
	}
	return m
}

func commitmentRoot(data map[string][]byte, secured bool) common.Hash {
	return trie.Root(data, secured)
}
