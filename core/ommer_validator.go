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

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/rlp"
)

const maxOmmers = 2

// minOmmerAge and maxOmmerAge bound spec.md §4.7's age window: `1 ≤ age
// ≤ 6`.
const (
	minOmmerAge = 1
	maxOmmerAge = 6
)

// ommersHash computes keccak256(rlp(ommers)), spec.md §4.7's
// `keccak256(rlp(ommers))` binding.
func ommersHash(ommers []*types.Header) (common.Hash, error) {
	enc, err := rlp.EncodeToBytes(ommers)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// AncestorLookup resolves the canonical block at a given distance back
// from the tip, the `chain.blocks[len − age]` indexing spec.md §4.7
// describes.
type AncestorLookup interface {
	AncestorAt(age uint64) *types.Header
}

// ValidateOmmers implements spec.md §4.7 in full: count bound, hash
// binding, and per-ommer age/sibling discipline.
func ValidateOmmers(blockNumber *big.Int, ommers []*types.Header, ommersHashField common.Hash, chain AncestorLookup) error {
	if len(ommers) > maxOmmers {
		return newOmmerError("count exceeded")
	}
	got, err := ommersHash(ommers)
	if err != nil {
		return err
	}
	if got != ommersHashField {
		return newOmmerError("hash binding fails")
	}

	for _, ommer := range ommers {
		age := new(big.Int).Sub(blockNumber, ommer.Number)
		if age.Sign() <= 0 || !age.IsUint64() || age.Uint64() < minOmmerAge || age.Uint64() > maxOmmerAge {
			return newOmmerError("age out of window")
		}
		ancestor := chain.AncestorAt(age.Uint64())
		if ancestor == nil {
			return newOmmerError("age out of window")
		}
		ommerEnc, err := rlp.EncodeToBytes(ommer)
		if err != nil {
			return err
		}
		ancestorEnc, err := rlp.EncodeToBytes(ancestor)
		if err != nil {
			return err
		}
		if crypto.Keccak256Hash(ommerEnc) == crypto.Keccak256Hash(ancestorEnc) {
			return newOmmerError("identical to canonical ancestor")
		}
		if ommer.ParentHash != ancestor.ParentHash {
			return newOmmerError("parent-hash mismatch")
		}
	}
	return nil
}
