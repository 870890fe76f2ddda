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

// Package math holds the unbounded and wrapping integer helpers the
// arithmetic-primitives layer of the spec (Uint, U256) is built on.
package math

import (
	"math/big"

	"github.com/holiman/uint256"
)

// MaxUint256 is the maximum value representable by U256 (2**256 - 1).
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// U256 wraps x modulo 2**256, matching spec.md's "all arithmetic wraps
// modulo 2^256 unless specified" rule for the U256 primitive. The actual
// wrap is performed by holiman/uint256, the fixed-width 256-bit integer
// type the teacher's go.mod already carries for this exact arithmetic
// (its EVM stack words); this function exists so callers elsewhere in
// this module can keep working in *big.Int, which is what Account.Balance
// and Transaction fields use to match the RLP/accessor shape the teacher's
// core/types/transaction.go models, while still getting bit-identical
// wrap-around semantics for any intermediate value that escapes 256 bits.
func U256(x *big.Int) *big.Int {
	wrapped := x
	if x.Sign() < 0 {
		// uint256.Int.SetFromBig treats a negative input as zero rather
		// than two's-complement-wrapping it, so fold it into [0, 2**256)
		// ourselves first.
		modulus := new(big.Int).Add(MaxUint256, big.NewInt(1))
		wrapped = new(big.Int).Mod(x, modulus)
	}
	var z uint256.Int
	z.SetFromBig(wrapped)
	return z.ToBig()
}

// SafeAdd returns a+b and whether the unbounded (non-wrapping) addition
// overflowed 64 bits; used by gas-accounting bounds checks where
// wrapping would silently corrupt a comparison.
func SafeAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum < a
}

// Min returns the smaller of two Uint-style uint64 values.
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two Uint-style uint64 values.
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
