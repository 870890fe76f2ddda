// Copyright 2014 The go-ethereum Authors
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

// Package trie computes Merkle-Patricia roots over a flat key/value map,
// in secured (keccak-hashed keys) or unsecured mode, per spec.md §6's
// Trie collaborator contract. The node layout/database persistence that
// production tries need is explicitly out of this core's scope
// (spec.md §1); this package only ever needs to produce a root hash from
// a map that is rebuilt fresh each block, so it keeps the whole trie in
// memory for the duration of a single Root call.
package trie

import (
	"bytes"
	"sort"

	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/rlp"
)

// Root computes the Merkle-Patricia root of data. When secured is true,
// each key is keccak256-hashed before insertion (a "secured trie", per
// the glossary); when false, keys are used verbatim (the "unsecured"
// mode apply_body uses for the transactions/receipts tries).
func Root(data map[string][]byte, secured bool) [32]byte {
	n := buildTrie(data, secured)
	return hashNode(n)
}

// node is either nil (empty trie), a leaf/extension (key nibbles +
// value-or-child), or a 17-wide branch (16 nibble slots + value).
type node struct {
	// leaf/extension:
	key   []byte // nibbles
	value []byte
	child *node

	// branch:
	branch  [16]*node
	hasVal  bool
	brValue []byte
}

func buildTrie(data map[string][]byte, secured bool) *node {
	type kv struct {
		key   []byte
		value []byte
	}
	entries := make([]kv, 0, len(data))
	for k, v := range data {
		key := []byte(k)
		if secured {
			key = crypto.Keccak256(key)
		}
		entries = append(entries, kv{key: toNibbles(key), value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})

	var root *node
	for _, e := range entries {
		root = insert(root, e.key, e.value)
	}
	return root
}

func insert(n *node, key []byte, value []byte) *node {
	if n == nil {
		return &node{key: append([]byte{}, key...), value: value}
	}
	if n.branch != (node{}).branch || n.hasVal {
		return insertBranch(n, key, value)
	}

	common := commonPrefixLen(n.key, key)
	switch {
	case n.child != nil && common == len(n.key):
		// extension whose whole path matches: descend into its branch.
		n.child = insert(n.child, key[common:], value)
		return n
	case n.child != nil:
		// extension that diverges inside its path: split it at common.
		b := newBranch()
		b.branch[n.key[common]] = wrapPrefix(n.key[common+1:], n.child)
		return wrapPrefix(key[:common], addToBranch(b, key[common:], value))
	case common == len(n.key) && common == len(key):
		n.value = value
		return n
	default:
		b := newBranch()
		b = addToBranch(b, n.key[common:], n.value)
		b = addToBranch(b, key[common:], value)
		return wrapPrefix(key[:common], b)
	}
}

func descend(n *node, common int) *node {
	return &node{key: n.key[common:], value: n.value}
}

func newBranch() *node {
	return &node{hasVal: false}
}

func addToBranch(b *node, key []byte, value []byte) *node {
	if len(key) == 0 {
		b.hasVal = true
		b.brValue = value
		return b
	}
	idx := key[0]
	b.branch[idx] = insert(b.branch[idx], key[1:], value)
	return b
}

func wrapPrefix(prefix []byte, b *node) *node {
	if len(prefix) == 0 {
		return b
	}
	return &node{key: append([]byte{}, prefix...), child: b}
}

func insertBranch(n *node, key []byte, value []byte) *node {
	if len(key) == 0 {
		n.hasVal = true
		n.brValue = value
		return n
	}
	idx := key[0]
	n.branch[idx] = insert(n.branch[idx], key[1:], value)
	return n
}

func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func toNibbles(b []byte) []byte {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = c >> 4
		out[i*2+1] = c & 0x0f
	}
	return out
}

// hashNode RLP-encodes n and returns its keccak256 hash, which for the
// top-level node is the root. Child nodes whose encoding is shorter than
// 32 bytes are embedded in their parent rather than referenced by hash
// (see encodeChildRef), as in the standard Merkle-Patricia layout.
func hashNode(n *node) [32]byte {
	enc := encodeNode(n)
	return [32]byte(crypto.Keccak256Hash(enc))
}

func encodeNode(n *node) []byte {
	if n == nil {
		b, _ := rlp.EncodeToBytes([]byte{})
		return b
	}
	if n.branch != (node{}).branch || n.hasVal {
		items := make([][]byte, 17)
		for i := 0; i < 16; i++ {
			if n.branch[i] == nil {
				b, _ := rlp.EncodeToBytes([]byte{})
				items[i] = b
			} else {
				items[i] = encodeChildRef(n.branch[i])
			}
		}
		if n.hasVal {
			b, _ := rlp.EncodeToBytes(n.brValue)
			items[16] = b
		} else {
			b, _ := rlp.EncodeToBytes([]byte{})
			items[16] = b
		}
		return rawList(items)
	}
	// leaf or extension
	var child []byte
	if n.child != nil {
		child = encodeChildRef(n.child)
	} else {
		b, _ := rlp.EncodeToBytes(n.value)
		child = b
	}
	keyEnc, _ := rlp.EncodeToBytes(hexPrefix(n.key, n.child == nil))
	return rawList([][]byte{keyEnc, child})
}

func encodeChildRef(n *node) []byte {
	enc := encodeNode(n)
	if len(enc) < 32 {
		return enc
	}
	h := crypto.Keccak256(enc)
	b, _ := rlp.EncodeToBytes(h)
	return b
}

// hexPrefix implements Ethereum's standard hex-prefix nibble encoding
// used to disambiguate leaf/extension nodes and odd/even nibble counts.
func hexPrefix(nibbles []byte, isLeaf bool) []byte {
	flag := byte(0)
	if isLeaf {
		flag = 2
	}
	odd := len(nibbles)%2 == 1
	var out []byte
	if odd {
		flag++
		out = append(out, flag<<4|nibbles[0])
		nibbles = nibbles[1:]
	} else {
		out = append(out, flag<<4)
	}
	for i := 0; i < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	return out
}

// rawList wraps pre-encoded RLP items in a list header without
// re-encoding them.
func rawList(items [][]byte) []byte {
	var total int
	for _, it := range items {
		total += len(it)
	}
	var buf bytes.Buffer
	writeListHeader(&buf, total)
	for _, it := range items {
		buf.Write(it)
	}
	return buf.Bytes()
}

func writeListHeader(buf *bytes.Buffer, size int) {
	if size < 56 {
		buf.WriteByte(0xc0 + byte(size))
		return
	}
	lb := minimalBytes(uint64(size))
	buf.WriteByte(0xf7 + byte(len(lb)))
	buf.Write(lb)
}

func minimalBytes(i uint64) []byte {
	if i == 0 {
		return nil
	}
	var b [8]byte
	n := 0
	for ; i > 0; i >>= 8 {
		b[n] = byte(i)
		n++
	}
	out := make([]byte, n)
	for j := 0; j < n; j++ {
		out[j] = b[n-1-j]
	}
	return out
}
