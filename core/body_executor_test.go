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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/state"
	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/crypto"
)

func TestApplyBodySingleTransfer(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	recipient := common.Address{0x42}

	db := state.New()
	db.AddBalance(sender, big.NewInt(1_000_000_000_000))

	tx := types.NewTransaction(0, recipient, big.NewInt(1000), txGas, big.NewInt(1), nil)
	signed, err := tx.SignECDSA(key)
	require.NoError(t, err)

	header := &types.Header{
		Number:   big.NewInt(1),
		Coinbase: [20]byte{0xc0, 0xff, 0xee},
		GasLimit: 5_000_000,
	}

	result, err := ApplyBody(db, nil, header, types.Transactions{signed}, nil)
	require.NoError(t, err)

	require.Equal(t, IntrinsicGas(nil), result.GasUsed)
	require.Len(t, result.Receipts, 1)
	require.Equal(t, result.Receipts[0].GasUsed, result.GasUsed)

	// PayRewards runs for non-genesis blocks: the coinbase should hold
	// both the transaction fee and the block reward.
	fee := new(big.Int).Mul(new(big.Int).SetUint64(result.GasUsed), signed.GasPrice())
	wantCoinbase := new(big.Int).Add(fee, BlockReward)
	require.Zero(t, db.GetBalance(header.Coinbase).Cmp(wantCoinbase))
}

// TestApplyBodyDeterministicRoots covers Testable Property 1
// (determinism): replaying the same transactions against two
// independently built states produces byte-identical roots.
func TestApplyBodyDeterministicRoots(t *testing.T) {
	key := testKey(t)
	sender := crypto.PubkeyToAddress(key.PublicKey)
	recipient := common.Address{0x7, 0x7}

	build := func() *BodyResult {
		db := state.New()
		db.AddBalance(sender, big.NewInt(1_000_000_000_000))
		tx := types.NewTransaction(0, recipient, big.NewInt(1), txGas, big.NewInt(1), nil)
		signed, err := tx.SignECDSA(key)
		require.NoError(t, err)
		header := &types.Header{Number: big.NewInt(1), Coinbase: [20]byte{9}, GasLimit: 5_000_000}
		result, err := ApplyBody(db, nil, header, types.Transactions{signed}, nil)
		require.NoError(t, err)
		return result
	}

	a, b := build(), build()
	if diff := cmp.Diff(a.TxRoot, b.TxRoot); diff != "" {
		t.Errorf("tx root mismatch (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.ReceiptRoot, b.ReceiptRoot); diff != "" {
		t.Errorf("receipt root mismatch (-a +b):\n%s", diff)
	}
	require.Equal(t, a.GasUsed, b.GasUsed)
}
