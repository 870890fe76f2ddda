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

	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
)

func TestPayRewardsMinerOnly(t *testing.T) {
	db := state.New()
	miner := [20]byte{1}
	header := &types.Header{Number: big.NewInt(5), Coinbase: miner}

	PayRewards(db, header, nil)

	require.Zero(t, db.GetBalance(miner).Cmp(BlockReward))
}

// TestPayRewardsWithOmmerBonus covers spec.md §4.5's
// `miner_reward = BLOCK_REWARD + floor(BLOCK_REWARD * |ommers| / 32)`.
func TestPayRewardsWithOmmerBonus(t *testing.T) {
	db := state.New()
	miner := [20]byte{1}
	ommerCoinbase := [20]byte{2}
	header := &types.Header{Number: big.NewInt(10), Coinbase: miner}
	ommer := &types.Header{Number: big.NewInt(8), Coinbase: ommerCoinbase}

	PayRewards(db, header, []*types.Header{ommer})

	bonus := new(big.Int).Div(BlockReward, big.NewInt(32))
	wantMiner := new(big.Int).Add(BlockReward, bonus)
	require.Zero(t, db.GetBalance(miner).Cmp(wantMiner))

	age := big.NewInt(2) // header.Number - ommer.Number
	reduction := new(big.Int).Div(new(big.Int).Mul(BlockReward, age), big.NewInt(8))
	wantOmmer := new(big.Int).Sub(BlockReward, reduction)
	require.Zero(t, db.GetBalance(ommerCoinbase).Cmp(wantOmmer))
}

// TestPayRewardsOmmerReductionFloorsAtZero covers the case where an
// ommer's age makes the reduction exceed BLOCK_REWARD itself.
func TestPayRewardsOmmerReductionFloorsAtZero(t *testing.T) {
	db := state.New()
	ommerCoinbase := [20]byte{3}
	header := &types.Header{Number: big.NewInt(100), Coinbase: [20]byte{1}}
	ommer := &types.Header{Number: big.NewInt(1), Coinbase: ommerCoinbase}

	PayRewards(db, header, []*types.Header{ommer})

	require.Zero(t, db.GetBalance(ommerCoinbase).Sign())
}
