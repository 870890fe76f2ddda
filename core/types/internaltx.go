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

import (
	"math/big"

	"github.com/fronticore/ethcore/common"
)

// InternalTransaction records one call frame of a transaction's
// execution: who called whom, with what value/data, at what depth.
// Adapted from the teacher's core/types/internaltx.go and the
// InternalTxWatcher idiom in core/internals_processor.go, repurposed as
// the optional call trace core/vm.CallTracer can collect — this is
// exactly the "emit logs in order" / call-frame bookkeeping spec.md §6
// assigns to the EVM collaborator, kept because the teacher already
// models the whole shape end to end.
type InternalTransaction struct {
	Nonce      uint64
	GasPrice   *big.Int
	Gas        uint64
	Sender     common.Address
	Recipient  common.Address
	Value      *big.Int
	Data       []byte
	Depth      int
	Index      int
	Note       string
	ParentHash common.Hash
	Rejected   bool
}

// InternalTransactions is an ordered list of call frames, newest last.
type InternalTransactions []*InternalTransaction

// NewInternalTransaction builds a single recorded call frame.
func NewInternalTransaction(nonce uint64, gasPrice *big.Int, gas uint64, sender, recipient common.Address, value *big.Int, data []byte, depth, index int, note string) *InternalTransaction {
	return &InternalTransaction{
		Nonce:     nonce,
		GasPrice:  gasPrice,
		Gas:       gas,
		Sender:    sender,
		Recipient: recipient,
		Value:     value,
		Data:      data,
		Depth:     depth,
		Index:     index,
		Note:      note,
	}
}

// Reject marks the call frame as having reverted.
func (tx *InternalTransaction) Reject() { tx.Rejected = true }
