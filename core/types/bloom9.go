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
	"encoding/hex"

	"github.com/fronticore/ethcore/crypto"
)

// BloomByteLength is the number of bytes in a Bloom, per spec.md §3.
const BloomByteLength = 256

// Bloom is the 2048-bit log filter named in spec.md §3 and the glossary.
type Bloom [BloomByteLength]byte

func (b Bloom) Bytes() []byte  { return b[:] }
func (b Bloom) Hex() string    { return "0x" + hex.EncodeToString(b[:]) }
func (b Bloom) String() string { return b.Hex() }

// Add ORs the three bit positions derived from keccak256(data) into b,
// the canonical "m3:2048" Ethereum bloom scheme.
func (b *Bloom) Add(data []byte) {
	h := crypto.Keccak256(data)
	for i := 0; i < 3; i++ {
		bitIdx := (uint(h[2*i])<<8 | uint(h[2*i+1])) & 2047
		byteIdx := BloomByteLength - 1 - bitIdx/8
		bit := byte(1) << (bitIdx % 8)
		b[byteIdx] |= bit
	}
}

// CreateBloom computes the bloom filter over every log in the given
// receipts, matching the teacher's `types.CreateBloom(types.Receipts{...})`
// call in `core/state_processor.go`.
func CreateBloom(receipts Receipts) Bloom {
	var b Bloom
	for _, r := range receipts {
		for _, l := range r.Logs {
			b.Add(l.Address.Bytes())
			for _, t := range l.Topics {
				b.Add(t.Bytes())
			}
		}
	}
	return b
}

// LogsBloom is the `bloom_of(logs)` collaborator spec.md §4.2 calls for
// when computing a per-transaction receipt bloom.
func LogsBloom(logs []*Log) Bloom {
	var b Bloom
	for _, l := range logs {
		b.Add(l.Address.Bytes())
		for _, t := range l.Topics {
			b.Add(t.Bytes())
		}
	}
	return b
}
