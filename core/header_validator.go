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
	"bytes"
	"math/big"

	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/params"
)

// GenesisDifficulty is the Frontier genesis block's fixed difficulty,
// spec.md §4.6's "H.number == 0 ⇒ 131072".
var GenesisDifficulty = big.NewInt(131072)

// minGasLimit is the floor spec.md §4.6's check_gas_limit enforces.
const minGasLimit = 5000

// gasLimitAdjustmentFactor is the divisor spec.md §4.6 calls δ.
const gasLimitAdjustmentFactor = 1024

// difficultyAdjustmentFactor is the divisor spec.md §4.6 calls Δ.
const difficultyAdjustmentFactor = 2048

// maxExtraDataSize is the byte-length bound spec.md §3/§4.6 place on
// Header.ExtraData.
const maxExtraDataSize = 32

// CalculateDifficulty implements spec.md §4.6's difficulty formula.
func CalculateDifficulty(number *big.Int, timestamp, parentTimestamp uint64, parentDifficulty *big.Int) *big.Int {
	if number.Sign() == 0 {
		return new(big.Int).Set(GenesisDifficulty)
	}
	delta := new(big.Int).Div(parentDifficulty, big.NewInt(difficultyAdjustmentFactor))
	if timestamp < parentTimestamp+13 {
		return new(big.Int).Add(parentDifficulty, delta)
	}
	down := new(big.Int).Sub(parentDifficulty, delta)
	if down.Cmp(GenesisDifficulty) < 0 {
		return new(big.Int).Set(GenesisDifficulty)
	}
	return down
}

// CheckGasLimit implements spec.md §4.6's check_gas_limit: strict bounds
// around the parent's gas limit, plus the absolute floor.
func CheckGasLimit(gasLimit, parentGasLimit uint64) error {
	delta := parentGasLimit / gasLimitAdjustmentFactor
	lower := parentGasLimit - delta
	upper := parentGasLimit + delta
	if !(gasLimit > lower && gasLimit < upper) {
		return newHeaderError("gas limit out of band")
	}
	if gasLimit < minGasLimit {
		return newHeaderError("gas limit below floor")
	}
	return nil
}

// ValidateHeader implements spec.md §4.6 for a non-genesis header H with
// parent P. Proof-of-work verification is the explicit extension point
// spec.md §9 flags: it is invoked here via the PoWVerifier collaborator
// (consensus/ethash.Ethash implements it) when engine is non-nil, and
// skipped (a documented gap) when engine is nil.
func ValidateHeader(h, p *types.Header, engine PoWVerifier) error {
	wantDifficulty := CalculateDifficulty(h.Number, h.Timestamp, p.Timestamp, p.Difficulty)
	if h.Difficulty.Cmp(wantDifficulty) != 0 {
		return newHeaderError("difficulty mismatch")
	}
	if err := CheckGasLimit(h.GasLimit, p.GasLimit); err != nil {
		return err
	}
	if h.Timestamp <= p.Timestamp {
		return newHeaderError("timestamp non-monotone")
	}
	wantNumber := new(big.Int).Add(p.Number, big.NewInt(1))
	if h.Number.Cmp(wantNumber) != 0 {
		return newHeaderError("number discontinuous")
	}
	if len(h.ExtraData) > maxExtraDataSize {
		return newHeaderError("extra-data too long")
	}
	if engine != nil {
		if err := engine.VerifySeal(h); err != nil {
			return newHeaderError("proof-of-work failure: " + err.Error())
		}
	}
	return nil
}

// PoWVerifier is the proof-of-work collaborator spec.md §4.6 names as a
// required check point. consensus/ethash.Ethash implements it; passing
// nil to ValidateHeader (or NewBlockChain) is the documented gap
// (ValidateGenesisHeader performs no proof-of-work check at all)
// spec.md §9 describes ("acceptable only for replay tests against
// already-validated chains").
type PoWVerifier interface {
	VerifySeal(h *types.Header) error
}

// ValidateGenesisHeader implements spec.md §4.6's genesis special case
// against the configured mainnet constants.
func ValidateGenesisHeader(h *types.Header, genesis *params.GenesisConfig) error {
	if !h.ParentHash.IsZero() {
		return newHeaderError("genesis parent_hash must be zero")
	}
	if !h.Coinbase.IsZero() {
		return newHeaderError("genesis coinbase must be zero")
	}
	if h.Number.Sign() != 0 {
		return newHeaderError("genesis number must be zero")
	}
	if h.GasUsed != 0 {
		return newHeaderError("genesis gas_used must be zero")
	}
	if !h.MixDigest.IsZero() {
		return newHeaderError("genesis mix_digest must be zero")
	}
	if h.Difficulty.Cmp(genesis.Difficulty) != 0 {
		return newHeaderError("genesis difficulty mismatch")
	}
	if h.GasLimit != genesis.GasLimit {
		return newHeaderError("genesis gas_limit mismatch")
	}
	if h.Timestamp != genesis.Timestamp {
		return newHeaderError("genesis timestamp mismatch")
	}
	if !bytes.Equal(h.ExtraData, genesis.ExtraData) {
		return newHeaderError("genesis extra_data mismatch")
	}
	if h.Nonce != genesis.Nonce {
		return newHeaderError("genesis nonce mismatch")
	}
	return nil
}
