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
	"github.com/fronticore/ethcore/params"
)

func TestCalculateDifficultyGenesis(t *testing.T) {
	got := CalculateDifficulty(big.NewInt(0), 0, 0, big.NewInt(999))
	require.Zero(t, got.Cmp(GenesisDifficulty))
}

// TestCalculateDifficultyRisesUnderThirteenSeconds covers S4: a block
// that arrives less than 13 seconds after its parent raises difficulty
// by parent/2048.
func TestCalculateDifficultyRisesUnderThirteenSeconds(t *testing.T) {
	parentDifficulty := big.NewInt(2048000)
	got := CalculateDifficulty(big.NewInt(1), 10, 0, parentDifficulty)

	want := new(big.Int).Add(parentDifficulty, big.NewInt(2048000/2048))
	require.Zero(t, got.Cmp(want))
}

// TestCalculateDifficultyFallsAtOrAfterThirteenSeconds covers S5:
// a slow block lowers difficulty by parent/2048, floored at
// GenesisDifficulty.
func TestCalculateDifficultyFallsAtOrAfterThirteenSeconds(t *testing.T) {
	parentDifficulty := big.NewInt(2048000)
	got := CalculateDifficulty(big.NewInt(1), 13, 0, parentDifficulty)

	want := new(big.Int).Sub(parentDifficulty, big.NewInt(2048000/2048))
	require.Zero(t, got.Cmp(want))
}

func TestCalculateDifficultyFloorsAtGenesis(t *testing.T) {
	got := CalculateDifficulty(big.NewInt(1), 100, 0, GenesisDifficulty)
	require.Zero(t, got.Cmp(GenesisDifficulty))
}

// TestCheckGasLimit covers the strict band around the parent's limit: a
// value inside the band and one just under the upper bound pass, values
// exactly at the upper or lower bound fail, and 4999 fails (it is below
// the 5000 floor as well as far outside the band).
func TestCheckGasLimit(t *testing.T) {
	const parent = uint64(1024000)
	delta := parent / 1024

	tests := []struct {
		name    string
		gas     uint64
		wantErr bool
	}{
		{"within band", parent + delta/2, false},
		{"at upper bound rejected", parent + delta, true},
		{"at lower bound rejected", parent - delta, true},
		{"just under upper bound", parent + delta - 1, false},
		{"below floor", 4999, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckGasLimit(tt.gas, parent)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateHeaderAcceptsWellFormedChild(t *testing.T) {
	parent := &types.Header{
		Number:     big.NewInt(0),
		Timestamp:  0,
		Difficulty: GenesisDifficulty,
		GasLimit:   5000,
	}
	child := &types.Header{
		Number:     big.NewInt(1),
		Timestamp:  20,
		Difficulty: CalculateDifficulty(big.NewInt(1), 20, 0, GenesisDifficulty),
		GasLimit:   5000,
		ExtraData:  []byte("frontier"),
	}
	require.NoError(t, ValidateHeader(child, parent, nil))
}

func TestValidateHeaderRejectsDifficultyMismatch(t *testing.T) {
	parent := &types.Header{Number: big.NewInt(0), Timestamp: 0, Difficulty: GenesisDifficulty, GasLimit: 5000}
	child := &types.Header{Number: big.NewInt(1), Timestamp: 20, Difficulty: big.NewInt(1), GasLimit: 5000}
	require.Error(t, ValidateHeader(child, parent, nil))
}

func TestValidateHeaderRejectsNonMonotoneTimestamp(t *testing.T) {
	parent := &types.Header{Number: big.NewInt(0), Timestamp: 100, Difficulty: GenesisDifficulty, GasLimit: 5000}
	child := &types.Header{
		Number:     big.NewInt(1),
		Timestamp:  100,
		Difficulty: CalculateDifficulty(big.NewInt(1), 100, 100, GenesisDifficulty),
		GasLimit:   5000,
	}
	require.Error(t, ValidateHeader(child, parent, nil))
}

func TestValidateHeaderRejectsDiscontinuousNumber(t *testing.T) {
	parent := &types.Header{Number: big.NewInt(0), Timestamp: 0, Difficulty: GenesisDifficulty, GasLimit: 5000}
	child := &types.Header{
		Number:     big.NewInt(2),
		Timestamp:  20,
		Difficulty: CalculateDifficulty(big.NewInt(2), 20, 0, GenesisDifficulty),
		GasLimit:   5000,
	}
	require.Error(t, ValidateHeader(child, parent, nil))
}

func TestValidateHeaderRejectsOversizedExtraData(t *testing.T) {
	parent := &types.Header{Number: big.NewInt(0), Timestamp: 0, Difficulty: GenesisDifficulty, GasLimit: 5000}
	child := &types.Header{
		Number:     big.NewInt(1),
		Timestamp:  20,
		Difficulty: CalculateDifficulty(big.NewInt(1), 20, 0, GenesisDifficulty),
		GasLimit:   5000,
		ExtraData:  make([]byte, maxExtraDataSize+1),
	}
	require.Error(t, ValidateHeader(child, parent, nil))
}

type fakeEngine struct{ err error }

func (f fakeEngine) VerifySeal(*types.Header) error { return f.err }

func TestValidateHeaderConsultsPoWVerifierWhenPresent(t *testing.T) {
	parent := &types.Header{Number: big.NewInt(0), Timestamp: 0, Difficulty: GenesisDifficulty, GasLimit: 5000}
	child := &types.Header{
		Number:     big.NewInt(1),
		Timestamp:  20,
		Difficulty: CalculateDifficulty(big.NewInt(1), 20, 0, GenesisDifficulty),
		GasLimit:   5000,
	}
	require.NoError(t, ValidateHeader(child, parent, fakeEngine{}))
	require.Error(t, ValidateHeader(child, parent, fakeEngine{err: errSeal}))
}

var errSeal = &HeaderError{Reason: "bad seal"}

// TestValidateGenesisHeaderAcceptsMainnet covers S1's genesis leg: the
// configured MainnetGenesis constants must themselves pass validation.
func TestValidateGenesisHeaderAcceptsMainnet(t *testing.T) {
	h := &types.Header{
		Difficulty: params.MainnetGenesis.Difficulty,
		GasLimit:   params.MainnetGenesis.GasLimit,
		Timestamp:  params.MainnetGenesis.Timestamp,
		ExtraData:  params.MainnetGenesis.ExtraData,
		Nonce:      params.MainnetGenesis.Nonce,
		Number:     big.NewInt(0),
	}
	require.NoError(t, ValidateGenesisHeader(h, params.MainnetGenesis))
}

func TestValidateGenesisHeaderRejectsNonZeroParent(t *testing.T) {
	h := &types.Header{
		Difficulty: params.MainnetGenesis.Difficulty,
		GasLimit:   params.MainnetGenesis.GasLimit,
		Timestamp:  params.MainnetGenesis.Timestamp,
		ExtraData:  params.MainnetGenesis.ExtraData,
		Nonce:      params.MainnetGenesis.Nonce,
		Number:     big.NewInt(0),
		ParentHash: [32]byte{1},
	}
	require.Error(t, ValidateGenesisHeader(h, params.MainnetGenesis))
}
