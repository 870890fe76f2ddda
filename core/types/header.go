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

package types

import (
	"math/big"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/rlp"
)

// Header is the block header spec.md §3 defines, field for field.
type Header struct {
	ParentHash       common.Hash
	OmmersHash       common.Hash
	Coinbase         common.Address
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptRoot      common.Hash
	Bloom            Bloom
	Difficulty       *big.Int
	Number           *big.Int
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte
	MixDigest        common.Hash
	Nonce            [8]byte
}

// Hash uniquely identifies the header: keccak256 of its RLP encoding,
// spec.md §5's compute_header_hash.
func (h *Header) Hash() common.Hash {
	enc, _ := rlp.EncodeToBytes(h)
	return crypto.Keccak256Hash(enc)
}

// Block is a Header plus its ordered transactions and ommers
// (≤2, per spec.md §3).
type Block struct {
	header       *Header
	transactions Transactions
	ommers       []*Header
}

// NewBlock assembles a Block from its constituent parts.
func NewBlock(header *Header, txs Transactions, ommers []*Header) *Block {
	return &Block{header: header, transactions: txs, ommers: ommers}
}

func (b *Block) Header() *Header          { return b.header }
func (b *Block) Transactions() Transactions { return b.transactions }
func (b *Block) Ommers() []*Header        { return b.ommers }
func (b *Block) Number() *big.Int         { return b.header.Number }
func (b *Block) NumberU64() uint64        { return b.header.Number.Uint64() }
func (b *Block) GasLimit() uint64         { return b.header.GasLimit }
func (b *Block) ParentHash() common.Hash  { return b.header.ParentHash }
func (b *Block) Hash() common.Hash        { return b.header.Hash() }
