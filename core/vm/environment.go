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

// Package vm is the EVM collaborator adapter spec.md §1/§6 carve out of
// the core: "this core treats per-transaction code execution as an
// opaque collaborator ... contract code execution (the EVM itself) is
// out of scope." This package is that adapter's contract plus the one
// concrete case the Frontier scenarios in spec.md §8 actually exercise:
// value transfer to a code-less account. Any call into an account that
// carries code returns ErrNoInterpreter, an explicit extension point
// rather than a silent no-op.
//
// Adapted from the teacher's core/vm_env.go VMEnv type: same collaborator
// shape (Origin/Coinbase/BlockNumber/GasLimit/Difficulty/block-hash
// lookup/snapshot), generalized to spec.md's process_call contract.
package vm

import (
	"errors"
	"math/big"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/types"
)

// ErrNoInterpreter is returned by Call when the target account carries
// contract code. Implementing the bytecode interpreter is out of scope
// for this core (spec.md §1's EVM collaborator boundary); any caller
// that needs it must supply a different Environment.Call implementation.
var ErrNoInterpreter = errors.New("vm: no bytecode interpreter wired, target account has code")

// ErrInsufficientBalance is returned when the caller cannot cover the
// value being transferred.
var ErrInsufficientBalance = errors.New("vm: insufficient balance for transfer")

// StateDB is the subset of core/state.StateDB the VM collaborator needs,
// named as an interface here the way the teacher's vm.Database does, so
// this package never imports core/state directly.
type StateDB interface {
	GetBalance(common.Address) *big.Int
	AddBalance(common.Address, *big.Int)
	SubBalance(common.Address, *big.Int)
	GetCode(common.Address) []byte
	GetNonce(common.Address) uint64
	SetNonce(common.Address, uint64)
	CreateAccount(common.Address)
	AddLog(*types.Log)
	Snapshot() int
	RevertToSnapshot(int)
}

// BlockGetter resolves ancestor headers by hash, the collaborator the
// teacher's VMEnv.GetHash needs for the BLOCKHASH-style lookup spec.md
// §5 describes as the 256-entry block-hash window.
type BlockGetter interface {
	GetHeader(common.Hash) *types.Header
}

// Environment is the process_call contract spec.md §6 assigns to the EVM
// collaborator: everything a call needs to know about the block and
// transaction it executes within, plus the state it mutates.
type Environment struct {
	State  StateDB
	Header *types.Header
	Chain  BlockGetter

	Origin common.Address
	Depth  int

	tracer *CallTracer
}

// NewEnvironment builds an Environment for one transaction's execution.
func NewEnvironment(state StateDB, header *types.Header, chain BlockGetter, origin common.Address) *Environment {
	return &Environment{State: state, Header: header, Chain: chain, Origin: origin}
}

func (e *Environment) Coinbase() common.Address { return e.Header.Coinbase }
func (e *Environment) BlockNumber() *big.Int    { return e.Header.Number }
func (e *Environment) Difficulty() *big.Int     { return e.Header.Difficulty }
func (e *Environment) GasLimit() uint64         { return e.Header.GasLimit }
func (e *Environment) Timestamp() uint64        { return e.Header.Timestamp }

// GetHash returns the hash of the ancestor block numbered n, walking
// parent links the way the teacher's VMEnv.GetHash does, bounded to the
// 256 most recent ancestors (the block-hash window); older or unknown
// blocks yield the zero hash.
func (e *Environment) GetHash(n uint64) common.Hash {
	h := e.Chain.GetHeader(e.Header.ParentHash)
	for i := 0; h != nil && i < 256; i++ {
		if h.Number.Uint64() == n {
			return h.Hash()
		}
		h = e.Chain.GetHeader(h.ParentHash)
	}
	return common.Hash{}
}

// WithTracer attaches a CallTracer that records every Call invocation as
// an InternalTransaction, the bookkeeping the teacher's
// core/internals_processor.go InternalTxWatcher performs.
func (e *Environment) WithTracer(t *CallTracer) *Environment {
	e.tracer = t
	return e
}

// Call executes one message call: a plain value transfer when target
// has no code, ErrNoInterpreter otherwise. This is process_call's one
// implemented case; spec.md §1 scopes bytecode execution itself out of
// this core.
func (e *Environment) Call(caller, target common.Address, data []byte, value *big.Int, gas uint64) (gasLeft uint64, logs []*types.Log, err error) {
	snap := e.State.Snapshot()

	if code := e.State.GetCode(target); len(code) > 0 {
		e.State.RevertToSnapshot(snap)
		if e.tracer != nil {
			e.tracer.record(caller, target, value, data, e.Depth, true, "no interpreter wired")
		}
		return gas, nil, ErrNoInterpreter
	}

	if value != nil && value.Sign() > 0 {
		if e.State.GetBalance(caller).Cmp(value) < 0 {
			e.State.RevertToSnapshot(snap)
			return gas, nil, ErrInsufficientBalance
		}
		e.State.SubBalance(caller, value)
		e.State.AddBalance(target, value)
	}

	if e.tracer != nil {
		e.tracer.record(caller, target, value, data, e.Depth, false, "")
	}
	return gas, nil, nil
}
