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

	"github.com/fronticore/ethcore/core/types"
	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/rlp"
	"github.com/fronticore/ethcore/trie"
)

// accountRLPData is the wire shape one trie leaf holds for an account:
// nonce and balance directly, code and storage represented by their own
// hash/root so the top-level state trie's leaves stay small. The
// account's own storage mapping gets its own secured sub-trie, exactly
// the nested-trie construction spec.md §6's Trie contract describes
// applied twice (once for state, once per account).
type accountRLPData struct {
	Nonce       uint64
	Balance     *big.Int
	StorageRoot [32]byte
	CodeHash    [32]byte
}

// accountRLP RLP-encodes acc for insertion into the state trie.
func accountRLP(acc *types.Account) ([]byte, error) {
	storageData := make(map[string][]byte, len(acc.Storage))
	for key, val := range acc.Storage {
		enc, err := rlp.EncodeToBytes(val)
		if err != nil {
			return nil, err
		}
		storageData[string(key.Bytes())] = enc
	}
	storageRoot := trie.Root(storageData, true)
	codeHash := crypto.Keccak256Hash(acc.Code)

	data := accountRLPData{
		Nonce:       acc.Nonce,
		Balance:     new(big.Int).Set(acc.Balance),
		StorageRoot: [32]byte(storageRoot),
		CodeHash:    [32]byte(codeHash),
	}
	return rlp.EncodeToBytes(&data)
}

// rlpIndexKey encodes i as the Uint trie key spec.md §4.2 step 4 uses
// for the transactions/receipts tries: "an ordered map from RLP-encoded
// index i (as a Uint) to each receipt/transaction".
func rlpIndexKey(i uint64) ([]byte, error) {
	return rlp.EncodeToBytes(i)
}

// rlpEncode is a thin EncodeToBytes alias kept for call-site symmetry
// with rlpIndexKey.
func rlpEncode(v interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}
