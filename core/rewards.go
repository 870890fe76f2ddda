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
)

// BlockReward is the base Frontier mining reward, 5×10^18 wei, spec.md
// §4.5. Adapted from the teacher's AccumulateRewards idiom in
// core/internals (other_examples' ethereumproject state_processor.go),
// generalized off post-Frontier era constants since this core only
// implements Frontier.
var BlockReward = new(big.Int).Mul(big.NewInt(5), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

// PayRewards credits the block's coinbase and each ommer's coinbase per
// spec.md §4.5:
//
//	miner_reward = BLOCK_REWARD + floor(BLOCK_REWARD * |ommers| / 32)
//	ommer_reward = BLOCK_REWARD - floor(BLOCK_REWARD * (number - ommer.number) / 8)
func PayRewards(db *state.StateDB, header *types.Header, ommers []*types.Header) {
	reward := new(big.Int).Set(BlockReward)
	if n := len(ommers); n > 0 {
		extra := new(big.Int).Mul(BlockReward, big.NewInt(int64(n)))
		extra.Div(extra, big.NewInt(32))
		reward.Add(reward, extra)
	}
	db.AddBalance(header.Coinbase, reward)

	for _, ommer := range ommers {
		age := new(big.Int).Sub(header.Number, ommer.Number)
		reduction := new(big.Int).Mul(BlockReward, age)
		reduction.Div(reduction, big.NewInt(8))
		ommerReward := new(big.Int).Sub(BlockReward, reduction)
		if ommerReward.Sign() < 0 {
			ommerReward.SetInt64(0)
		}
		db.AddBalance(ommer.Coinbase, ommerReward)
	}
}
