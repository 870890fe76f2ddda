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

package trie

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRootEmptyIsDeterministic(t *testing.T) {
	require.Equal(t, Root(map[string][]byte{}, false), Root(map[string][]byte{}, false))
	require.NotEqual(t, Root(map[string][]byte{}, false), Root(map[string][]byte{"a": []byte("b")}, false))
}

// TestRootInsertionOrderIndependent covers Testable Property 5: the
// root only depends on the key/value set, never the order entries are
// supplied in (Root always rebuilds from a Go map, which has no stable
// iteration order to begin with).
func TestRootInsertionOrderIndependent(t *testing.T) {
	a := map[string][]byte{
		"aaa": []byte("1"),
		"bbb": []byte("2"),
		"ccc": []byte("3"),
	}
	b := map[string][]byte{
		"ccc": []byte("3"),
		"aaa": []byte("1"),
		"bbb": []byte("2"),
	}

	rootA := Root(a, false)
	rootB := Root(b, false)
	if diff := cmp.Diff(rootA, rootB); diff != "" {
		t.Errorf("root mismatch across insertion orders (-a +b):\n%s", diff)
	}
}

func TestRootChangesWithValue(t *testing.T) {
	base := map[string][]byte{"key": []byte("value")}
	changed := map[string][]byte{"key": []byte("other")}

	require.NotEqual(t, Root(base, false), Root(changed, false))
}

// TestRootSecuredDiffersFromUnsecured covers the secured/unsecured
// distinction spec.md §6 draws: hashing keys before insertion changes
// the resulting root even for an identical key/value set.
func TestRootSecuredDiffersFromUnsecured(t *testing.T) {
	data := map[string][]byte{"addr": []byte("balance")}
	require.NotEqual(t, Root(data, true), Root(data, false))
}

func TestRootSharedPrefixKeys(t *testing.T) {
	data := map[string][]byte{
		"do":    []byte("verb"),
		"dog":   []byte("puppy"),
		"doge":  []byte("coin"),
		"horse": []byte("stallion"),
	}
	// A known-stable root for this classic trie fixture set isn't
	// asserted here (this implementation's encoding needn't match
	// upstream go-ethereum's byte for byte); the property under test is
	// that shared-prefix keys don't collide or panic, and stay
	// order-independent the same way TestRootInsertionOrderIndependent
	// checks for disjoint keys.
	reordered := map[string][]byte{
		"horse": []byte("stallion"),
		"doge":  []byte("coin"),
		"do":    []byte("verb"),
		"dog":   []byte("puppy"),
	}
	require.Equal(t, Root(data, false), Root(reordered, false))
}
