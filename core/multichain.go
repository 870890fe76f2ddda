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
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fronticore/ethcore/core/types"
)

// ValidateChains runs StateTransition across every block of each
// candidate fork concurrently, one goroutine per chain via
// golang.org/x/sync/errgroup. spec.md §5 licenses exactly this: "Multiple
// chains ... may be processed in parallel provided each owns its own
// state — there is no shared mutable state across chains in the core."
// Each chain is still processed strictly sequentially internally, since
// blocks within one chain have a happens-before ordering; only the
// chains themselves run concurrently with each other. The returned map
// holds the first error encountered per chain name, nil for chains that
// applied every block successfully.
func ValidateChains(chains map[string]*BlockChain, blocks map[string][]*types.Block) map[string]error {
	results := make(map[string]error, len(chains))
	var mu sync.Mutex

	var g errgroup.Group
	for name, chain := range chains {
		name, chain := name, chain
		g.Go(func() error {
			var chainErr error
			for _, b := range blocks[name] {
				if err := chain.StateTransition(b); err != nil {
					chainErr = err
					break
				}
			}
			mu.Lock()
			results[name] = chainErr
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}
