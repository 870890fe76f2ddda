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

package vm

import (
	"math/big"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/types"
)

// CallTracer records every call frame an Environment executes, adapted
// from the teacher's core/internals_processor.go InternalTxWatcher:
// there it watches a live transaction pool and builds
// types.InternalTransaction records for RPC inspection, here it does the
// same bookkeeping directly off Environment.Call.
type CallTracer struct {
	ParentHash common.Hash
	frames     types.InternalTransactions
}

// NewCallTracer creates a tracer for the transaction identified by hash.
func NewCallTracer(hash common.Hash) *CallTracer {
	return &CallTracer{ParentHash: hash}
}

func (t *CallTracer) record(sender, recipient common.Address, value *big.Int, data []byte, depth int, rejected bool, note string) {
	v := value
	if v == nil {
		v = new(big.Int)
	}
	frame := types.NewInternalTransaction(0, nil, 0, sender, recipient, new(big.Int).Set(v), common.CopyBytes(data), depth, len(t.frames), note)
	frame.ParentHash = t.ParentHash
	if rejected {
		frame.Reject()
	}
	t.frames = append(t.frames, frame)
}

// Frames returns the recorded call frames in execution order.
func (t *CallTracer) Frames() types.InternalTransactions {
	return t.frames
}
