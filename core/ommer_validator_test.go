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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fronticore/ethcore/core/types"
)

// fakeAncestors is a canned AncestorLookup keyed by age, the shape
// BlockChain.AncestorAt provides for real chains.
type fakeAncestors map[uint64]*types.Header

func (f fakeAncestors) AncestorAt(age uint64) *types.Header { return f[age] }

func mkHeader(number uint64, parentHash [32]byte) *types.Header {
	return &types.Header{
		Number:     big.NewInt(int64(number)),
		ParentHash: parentHash,
	}
}

// TestValidateOmmersAcceptsWithinWindow covers S7's valid leg: an ommer
// whose age sits inside [1, 6] and whose parent_hash matches the
// canonical ancestor at that age is accepted.
func TestValidateOmmersAcceptsWithinWindow(t *testing.T) {
	commonParent := [32]byte{0xaa}
	ommer := mkHeader(10, commonParent)
	canonicalAt3 := mkHeader(10, commonParent) // same number, different content below
	canonicalAt3.GasLimit = 9999                // differentiate so hashes diverge

	ancestors := fakeAncestors{3: canonicalAt3}
	hash, err := ommersHash([]*types.Header{ommer})
	require.NoError(t, err)

	err = ValidateOmmers(big.NewInt(13), []*types.Header{ommer}, hash, ancestors)
	require.NoError(t, err)
}

func TestValidateOmmersRejectsCountExceeded(t *testing.T) {
	ommers := []*types.Header{mkHeader(1, [32]byte{1}), mkHeader(2, [32]byte{2}), mkHeader(3, [32]byte{3})}
	hash, err := ommersHash(ommers)
	require.NoError(t, err)

	err = ValidateOmmers(big.NewInt(10), ommers, hash, fakeAncestors{})
	require.Error(t, err)
}

func TestValidateOmmersRejectsHashMismatch(t *testing.T) {
	ommer := mkHeader(10, [32]byte{0xaa})
	err := ValidateOmmers(big.NewInt(13), []*types.Header{ommer}, [32]byte{0xff}, fakeAncestors{})
	require.Error(t, err)
}

// TestValidateOmmersRejectsAgeOutsideWindow covers S7's invalid leg for
// an ommer that is too old: age 7, one past the 6-block window, is
// rejected.
func TestValidateOmmersRejectsAgeOutsideWindow(t *testing.T) {
	ommer := mkHeader(10, [32]byte{0xaa})
	hash, err := ommersHash([]*types.Header{ommer})
	require.NoError(t, err)

	// block number 17 makes the ommer's age 7, one past the window.
	err = ValidateOmmers(big.NewInt(17), []*types.Header{ommer}, hash, fakeAncestors{7: mkHeader(10, [32]byte{0xaa})})
	require.Error(t, err)
}

func TestValidateOmmersRejectsIdenticalToCanonicalAncestor(t *testing.T) {
	commonParent := [32]byte{0xaa}
	ommer := mkHeader(10, commonParent)
	hash, err := ommersHash([]*types.Header{ommer})
	require.NoError(t, err)

	// The canonical ancestor at age 3 is byte-for-byte identical to the
	// ommer: this is the already-canonical block, not a sibling.
	ancestors := fakeAncestors{3: mkHeader(10, commonParent)}
	err = ValidateOmmers(big.NewInt(13), []*types.Header{ommer}, hash, ancestors)
	require.Error(t, err)
}

func TestValidateOmmersRejectsParentHashMismatch(t *testing.T) {
	ommer := mkHeader(10, [32]byte{0xaa})
	hash, err := ommersHash([]*types.Header{ommer})
	require.NoError(t, err)

	canonical := mkHeader(10, [32]byte{0xbb})
	canonical.GasLimit = 1 // differentiate from ommer so identity check doesn't fire first
	ancestors := fakeAncestors{3: canonical}
	err = ValidateOmmers(big.NewInt(13), []*types.Header{ommer}, hash, ancestors)
	require.Error(t, err)
}
