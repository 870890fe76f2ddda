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

import "fmt"

// GasPool tracks gas remaining within a block, spec.md §4.2 step 2a's
// `gas_available`. Modeled on the teacher's own GasPool (same
// SubGas/AddGas shape), kept as a distinct type rather than a bare
// uint64 so the "requests more gas than remains" check reads the same
// way the teacher's does at every call site.
type GasPool uint64

// SetGas resets the pool to gas.
func (gp *GasPool) SetGas(gas uint64) *GasPool {
	*(*uint64)(gp) = gas
	return gp
}

// SubGas deducts amount from the pool, failing with ErrGasOverflow if
// the pool would go negative.
func (gp *GasPool) SubGas(amount uint64) error {
	if uint64(*gp) < amount {
		return ErrGasOverflow
	}
	*(*uint64)(gp) -= amount
	return nil
}

// AddGas credits amount back to the pool.
func (gp *GasPool) AddGas(amount uint64) *GasPool {
	*(*uint64)(gp) += amount
	return gp
}

// Gas returns the remaining gas.
func (gp *GasPool) Gas() uint64 {
	return uint64(*gp)
}

func (gp *GasPool) String() string {
	return fmt.Sprintf("%d", uint64(*gp))
}
