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

package types

import "github.com/fronticore/ethcore/common"

// Receipt is the per-transaction execution summary spec.md §3 defines:
// post-state root, cumulative gas used, bloom, and logs, in transaction
// order.
type Receipt struct {
	PostState         []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              []*Log

	TxHash common.Hash
	GasUsed uint64
}

// NewReceipt builds a receipt the way `core/state_processor.go`'s
// `ApplyTransaction` does (root, failure marker folded away since
// Frontier has no status byte, cumulative gas used).
func NewReceipt(postState []byte, cumulativeGasUsed uint64) *Receipt {
	return &Receipt{PostState: postState, CumulativeGasUsed: cumulativeGasUsed}
}

// Receipts is a Receipt slice, used by CreateBloom and the receipts
// trie.
type Receipts []*Receipt
