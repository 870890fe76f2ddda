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

// Package state implements the world-state collaborator spec.md §1 and §9
// describe: accounts keyed by address, with atomic all-or-nothing commit
// of a transaction's effects. Modeled on the teacher's core/vm_env.go
// VMEnv.MakeSnapshot/SetSnapshot/state.Copy() calls, generalized into a
// proper journal so a transaction's partial effects can be undone without
// throwing away the whole state copy.
package state

import (
	"math/big"

	mapset "github.com/deckarep/golang-set"
	"github.com/VictoriaMetrics/fastcache"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/core/types"
)

// journalEntry is one undoable mutation. revert restores the prior value
// into db.
type journalEntry interface {
	revert(db *StateDB)
	address() common.Address
}

type (
	balanceChange struct {
		account common.Address
		prev    *big.Int
	}
	nonceChange struct {
		account common.Address
		prev    uint64
	}
	codeChange struct {
		account common.Address
		prev    []byte
	}
	storageChange struct {
		account  common.Address
		key      common.Hash
		prev     *big.Int
		hadPrev  bool
	}
	createChange struct {
		account common.Address
	}
)

func (c balanceChange) revert(db *StateDB) { db.getOrCreate(c.account).Balance = c.prev }
func (c balanceChange) address() common.Address { return c.account }

func (c nonceChange) revert(db *StateDB) { db.getOrCreate(c.account).Nonce = c.prev }
func (c nonceChange) address() common.Address { return c.account }

func (c codeChange) revert(db *StateDB) {
	db.getOrCreate(c.account).Code = c.prev
	db.readCache.Del(db.cacheKey(c.account))
}
func (c codeChange) address() common.Address { return c.account }

func (c storageChange) revert(db *StateDB) {
	acc := db.getOrCreate(c.account)
	if c.hadPrev {
		acc.Storage[c.key] = c.prev
	} else {
		delete(acc.Storage, c.key)
	}
}
func (c storageChange) address() common.Address { return c.account }

func (c createChange) revert(db *StateDB) { delete(db.accounts, c.account) }
func (c createChange) address() common.Address { return c.account }

// StateDB is the mutable world state a single state_transition call
// operates on. It is not safe for concurrent use; each chain validated by
// core.ValidateChains (core/multichain.go) gets its own instance.
type StateDB struct {
	accounts map[common.Address]*types.Account

	// journal records every mutation since the last Snapshot/commit so
	// RevertToSnapshot can undo exactly the effects of one failed
	// transaction, matching spec.md §9's "state changes ... are atomic:
	// either fully applied ... or fully discarded" invariant.
	journal []journalEntry

	// dirty is the set of addresses touched since the last Finalise,
	// used to decide which accounts need re-committing to the trie.
	// golang-set gives set semantics (union/contains) the teacher's
	// go.mod already carries for exactly this kind of bookkeeping.
	dirty mapset.Set

	// readCache fronts GetCode with a VictoriaMetrics/fastcache keyed by
	// address, holding each account's raw code bytes (empty for a
	// code-less or unknown account). SetCode and a reverted code change
	// drop the entry. Balances, nonces and storage are not cached.
	readCache *fastcache.Cache

	logs []*types.Log
}

// New creates an empty StateDB.
func New() *StateDB {
	return &StateDB{
		accounts:  make(map[common.Address]*types.Account),
		dirty:     mapset.NewSet(),
		readCache: fastcache.New(4 * 1024 * 1024),
	}
}

// Copy returns a deep, independent copy of db, the operation spec.md's
// genesis/per-chain setup needs to avoid sharing mutable state across
// independently validated chains (core/multichain.go).
func (db *StateDB) Copy() *StateDB {
	cpy := New()
	for addr, acc := range db.accounts {
		cpy.accounts[addr] = acc.Copy()
	}
	return cpy
}

func (db *StateDB) getOrCreate(addr common.Address) *types.Account {
	acc, ok := db.accounts[addr]
	if !ok {
		acc = types.NewEmptyAccount()
		db.accounts[addr] = acc
	}
	return acc
}

func (db *StateDB) get(addr common.Address) (*types.Account, bool) {
	acc, ok := db.accounts[addr]
	return acc, ok
}

// Exist reports whether addr has any state recorded at all.
func (db *StateDB) Exist(addr common.Address) bool {
	_, ok := db.accounts[addr]
	return ok
}

// Empty reports whether addr is absent or an EIP-161-style empty account
// (nonce 0, balance 0, no code) — spec.md's Frontier scope never deletes
// on empty, but Empty is useful for reward/prealloc bookkeeping.
func (db *StateDB) Empty(addr common.Address) bool {
	acc, ok := db.accounts[addr]
	return !ok || acc.IsEmpty()
}

func (db *StateDB) cacheKey(addr common.Address) []byte {
	return addr.Bytes()
}

// GetBalance returns addr's balance, 0 if the account doesn't exist.
func (db *StateDB) GetBalance(addr common.Address) *big.Int {
	if acc, ok := db.get(addr); ok {
		return new(big.Int).Set(acc.Balance)
	}
	return new(big.Int)
}

// AddBalance credits amount to addr's balance, creating the account if
// needed. A zero-or-negative amount is still journaled, matching the
// teacher's unconditional AddBalance/SubBalance calls in VMEnv.
func (db *StateDB) AddBalance(addr common.Address, amount *big.Int) {
	acc := db.getOrCreate(addr)
	db.journal = append(db.journal, balanceChange{addr, new(big.Int).Set(acc.Balance)})
	acc.Balance = new(big.Int).Add(acc.Balance, amount)
	db.touch(addr)
}

// SubBalance debits amount from addr's balance. Callers (core's
// transaction processor) are responsible for the spec.md §4.3
// sufficient-balance check before calling this.
func (db *StateDB) SubBalance(addr common.Address, amount *big.Int) {
	acc := db.getOrCreate(addr)
	db.journal = append(db.journal, balanceChange{addr, new(big.Int).Set(acc.Balance)})
	acc.Balance = new(big.Int).Sub(acc.Balance, amount)
	db.touch(addr)
}

// GetNonce returns addr's nonce, 0 if it doesn't exist.
func (db *StateDB) GetNonce(addr common.Address) uint64 {
	if acc, ok := db.get(addr); ok {
		return acc.Nonce
	}
	return 0
}

// SetNonce overwrites addr's nonce.
func (db *StateDB) SetNonce(addr common.Address, nonce uint64) {
	acc := db.getOrCreate(addr)
	db.journal = append(db.journal, nonceChange{addr, acc.Nonce})
	acc.Nonce = nonce
	db.touch(addr)
}

// GetCode returns addr's contract code, nil for an externally owned
// account. Reads are fronted by readCache so repeated lookups of the
// same account (e.g. env.Call checking a coinbase for code on every
// transaction in a block) skip the account map lookup; the returned
// slice is always a fresh copy.
func (db *StateDB) GetCode(addr common.Address) []byte {
	if cached, ok := db.readCache.HasGet(nil, db.cacheKey(addr)); ok {
		if len(cached) == 0 {
			return nil
		}
		return common.CopyBytes(cached)
	}
	acc, ok := db.get(addr)
	if !ok {
		db.readCache.Set(db.cacheKey(addr), nil)
		return nil
	}
	db.readCache.Set(db.cacheKey(addr), acc.Code)
	return common.CopyBytes(acc.Code)
}

// SetCode overwrites addr's code.
func (db *StateDB) SetCode(addr common.Address, code []byte) {
	acc := db.getOrCreate(addr)
	db.journal = append(db.journal, codeChange{addr, acc.Code})
	acc.Code = common.CopyBytes(code)
	db.readCache.Del(db.cacheKey(addr))
	db.touch(addr)
}

// GetState returns the value stored at key in addr's storage, 0 if unset.
func (db *StateDB) GetState(addr common.Address, key common.Hash) *big.Int {
	acc, ok := db.get(addr)
	if !ok {
		return new(big.Int)
	}
	if v, ok := acc.Storage[key]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

// SetState overwrites the value stored at key in addr's storage.
func (db *StateDB) SetState(addr common.Address, key common.Hash, value *big.Int) {
	acc := db.getOrCreate(addr)
	prev, had := acc.Storage[key]
	db.journal = append(db.journal, storageChange{addr, key, prev, had})
	acc.Storage[key] = new(big.Int).Set(value)
	db.touch(addr)
}

// CreateAccount installs an empty account at addr if one doesn't already
// exist, journaling the creation so it can be undone.
func (db *StateDB) CreateAccount(addr common.Address) {
	if _, ok := db.accounts[addr]; ok {
		return
	}
	db.accounts[addr] = types.NewEmptyAccount()
	db.journal = append(db.journal, createChange{addr})
	db.touch(addr)
}

func (db *StateDB) touch(addr common.Address) {
	db.dirty.Add(addr)
}

// AddLog appends a log emitted during the current transaction's
// execution, spec.md §4.2's "the ordered log entries emitted by the
// EVM collaborator".
func (db *StateDB) AddLog(log *types.Log) {
	db.logs = append(db.logs, log)
}

// Logs returns every log recorded since the last ClearLogs call.
func (db *StateDB) Logs() []*types.Log {
	return db.logs
}

// ClearLogs discards accumulated logs, called between transactions.
func (db *StateDB) ClearLogs() {
	db.logs = nil
}

// Snapshot marks the current journal length, a restore point for
// RevertToSnapshot.
func (db *StateDB) Snapshot() int {
	return len(db.journal)
}

// RevertToSnapshot undoes every mutation recorded since snapshot was
// taken, in reverse order, implementing spec.md §9's atomic
// fully-applied-or-fully-discarded requirement for a single
// transaction's state effects.
func (db *StateDB) RevertToSnapshot(snapshot int) {
	for i := len(db.journal) - 1; i >= snapshot; i-- {
		db.journal[i].revert(db)
	}
	db.journal = db.journal[:snapshot]
}

// Finalise drops the journal (committing its effects permanently) and
// returns the set of addresses touched since the last Finalise, the
// input a trie-commit step would need to decide which accounts to
// re-encode.
func (db *StateDB) Finalise() []common.Address {
	db.journal = nil
	touched := make([]common.Address, 0, db.dirty.Cardinality())
	for a := range db.dirty.Iter() {
		touched = append(touched, a.(common.Address))
	}
	db.dirty = mapset.NewSet()
	return touched
}

// Dump returns the full address → account mapping, the shape
// trie.Root's `data map[string][]byte` expects once each account is RLP
// encoded, and the shape spec.py's print_state prints for debugging.
func (db *StateDB) Dump() map[common.Address]*types.Account {
	out := make(map[common.Address]*types.Account, len(db.accounts))
	for addr, acc := range db.accounts {
		out[addr] = acc
	}
	return out
}
