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
	"github.com/fronticore/ethcore/common"
)

// blockHashWindowSize bounds the ancestor window the EVM's BLOCKHASH
// opcode may index into, spec.md §4.8.
const blockHashWindowSize = 256

// BlockHashWindow returns up to 256 ancestor hashes of the block whose
// parent is parentHash, newest-last, the transient view spec.md §4.8
// describes. It walks parent links through the chain's HeaderIndex
// rather than rescanning block bodies.
func (bc *BlockChain) BlockHashWindow(parentHash common.Hash) []common.Hash {
	hashes := make([]common.Hash, 0, blockHashWindowSize)
	h := bc.index.Get(parentHash)
	for h != nil && len(hashes) < blockHashWindowSize {
		hashes = append(hashes, h.Hash())
		if h.Number.Sign() == 0 {
			break
		}
		h = bc.index.Get(h.ParentHash)
	}
	// reverse into newest-last order
	for i, j := 0, len(hashes)-1; i < j; i, j = i+1, j-1 {
		hashes[i], hashes[j] = hashes[j], hashes[i]
	}
	return hashes
}
