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

	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/core/vm"
)

// txGas, txDataZeroGas and txDataNonZero are the constants spec.md §4.3's
// "Intrinsic cost" line names: `21000 + sum over data bytes of (4 if
// byte==0 else 68)`.
const (
	txGas         = 21000
	txDataZeroGas = 4
	txDataNonZero = 68
)

// IntrinsicGas computes the intrinsic cost of a transaction carrying
// data, spec.md §4.3.
func IntrinsicGas(data []byte) uint64 {
	gas := uint64(txGas)
	for _, b := range data {
		if b == 0 {
			gas += txDataZeroGas
		} else {
			gas += txDataNonZero
		}
	}
	return gas
}

// ApplyTransaction implements spec.md §4.3's transaction processor in
// full: validation, intrinsic-cost deduction, the EVM collaborator
// invocation, fee settlement, and nonce increment. Adapted from the
// teacher's core/state_processor.go ApplyTransaction (minus its
// Homestead/contract-creation branch, which is an explicit Non-goal
// here), generalized onto the vm.Environment adapter.
func ApplyTransaction(db *state.StateDB, env *vm.Environment, tx *types.Transaction, gasPool *GasPool) (gasUsed uint64, logs []*types.Log, err error) {
	if err := gasPool.SubGas(tx.Gas()); err != nil {
		return 0, nil, ErrGasOverflow
	}

	sender, err := tx.Sender()
	if err != nil {
		gasPool.AddGas(tx.Gas())
		return 0, nil, newTxError("signature out of range: " + err.Error())
	}

	if db.GetNonce(sender) != tx.Nonce() {
		gasPool.AddGas(tx.Gas())
		return 0, nil, newTxError("nonce mismatch")
	}

	intrinsic := IntrinsicGas(tx.Data())
	if tx.Gas() < intrinsic {
		gasPool.AddGas(tx.Gas())
		return 0, nil, newTxError("gas below intrinsic cost")
	}

	cost := new(big.Int).Mul(tx.GasPrice(), new(big.Int).SetUint64(tx.Gas()))
	if db.GetBalance(sender).Cmp(cost) < 0 {
		gasPool.AddGas(tx.Gas())
		return 0, nil, newTxError("insufficient balance")
	}

	if tx.To() == nil {
		gasPool.AddGas(tx.Gas())
		return 0, nil, ErrUnsupportedOperation
	}

	gasAfterIntrinsic := tx.Gas() - intrinsic
	gasLeft, callLogs, callErr := env.Call(sender, *tx.To(), tx.Data(), tx.Value(), gasAfterIntrinsic)
	if callErr != nil {
		// vm.ErrNoInterpreter surfaces here unwrapped: this core has no
		// bytecode interpreter to fall back on, so a call into a
		// contract account fails the transaction rather than silently
		// skipping execution.
		return 0, nil, callErr
	}

	gasUsed = tx.Gas() - gasLeft
	fee := new(big.Int).Mul(new(big.Int).SetUint64(gasUsed), tx.GasPrice())
	db.SubBalance(sender, fee)
	db.AddBalance(env.Coinbase(), fee)
	db.SetNonce(sender, tx.Nonce()+1)

	return gasUsed, callLogs, nil
}
