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

// Account is the per-address state spec.md §3 names: nonce, balance,
// code, and storage. An absent address is equivalent to EmptyAccount.
type Account struct {
	Nonce   uint64
	Balance *big.Int
	Code    []byte
	Storage map[common.Hash]*big.Int
}

// NewEmptyAccount returns a fresh, zero-valued account.
func NewEmptyAccount() *Account {
	return &Account{
		Balance: new(big.Int),
		Storage: make(map[common.Hash]*big.Int),
	}
}

// Copy returns a deep copy of a, safe to mutate independently.
func (a *Account) Copy() *Account {
	cp := &Account{
		Nonce:   a.Nonce,
		Balance: new(big.Int).Set(a.Balance),
		Code:    common.CopyBytes(a.Code),
		Storage: make(map[common.Hash]*big.Int, len(a.Storage)),
	}
	for k, v := range a.Storage {
		cp.Storage[k] = new(big.Int).Set(v)
	}
	return cp
}

// IsEmpty reports whether a is indistinguishable from an absent account.
func (a *Account) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.Sign() == 0 && len(a.Code) == 0
}
