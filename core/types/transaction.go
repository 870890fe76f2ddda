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

package types

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync/atomic"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/crypto"
	"github.com/fronticore/ethcore/rlp"
)

// ErrInvalidSig mirrors the teacher's sentinel of the same name in
// core/types/transaction.go.
var ErrInvalidSig = errors.New("invalid v, r, s values")

// TxData is the wire-encoded transaction body spec.md §3 specifies:
// nonce, gas_price, gas, to (nil ⇒ contract creation), value, data, and
// the v/r/s signature.
type TxData struct {
	AccountNonce uint64
	Price        *big.Int
	GasLimit     uint64
	Recipient    *common.Address `rlp:"nil"`
	Amount       *big.Int
	Payload      []byte
	V            byte
	R, S         *big.Int
}

// Transaction wraps TxData with cached derived values, adapted directly
// from the teacher's `core/types/transaction.go` (same atomic-cached
// hash/from fields, same accessor shape).
type Transaction struct {
	data TxData

	hash atomic.Value
	from atomic.Value
}

// NewTransaction builds a value-transfer or call transaction.
func NewTransaction(nonce uint64, to common.Address, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return &Transaction{data: TxData{
		AccountNonce: nonce,
		Recipient:    &to,
		Amount:       new(big.Int).Set(amount),
		GasLimit:     gasLimit,
		Price:        new(big.Int).Set(gasPrice),
		Payload:      common.CopyBytes(data),
		R:            new(big.Int),
		S:            new(big.Int),
	}}
}

// NewContractCreation builds a contract-creation transaction (`to ==
// nil`). spec.md §4.3 step 3 rejects these at execution time
// (ErrUnsupportedOperation); the constructor still exists because
// spec.md's data model allows constructing one.
func NewContractCreation(nonce uint64, amount *big.Int, gasLimit uint64, gasPrice *big.Int, data []byte) *Transaction {
	return &Transaction{data: TxData{
		AccountNonce: nonce,
		Amount:       new(big.Int).Set(amount),
		GasLimit:     gasLimit,
		Price:        new(big.Int).Set(gasPrice),
		Payload:      common.CopyBytes(data),
		R:            new(big.Int),
		S:            new(big.Int),
	}}
}

func (tx *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &tx.data)
}

func (tx *Transaction) DecodeRLP(s *rlp.Stream) error {
	return s.Decode(&tx.data)
}

func (tx *Transaction) Data() []byte       { return common.CopyBytes(tx.data.Payload) }
func (tx *Transaction) Gas() uint64        { return tx.data.GasLimit }
func (tx *Transaction) GasPrice() *big.Int { return new(big.Int).Set(tx.data.Price) }
func (tx *Transaction) Value() *big.Int    { return new(big.Int).Set(tx.data.Amount) }
func (tx *Transaction) Nonce() uint64      { return tx.data.AccountNonce }
func (tx *Transaction) V() byte            { return tx.data.V }
func (tx *Transaction) R() *big.Int        { return new(big.Int).Set(tx.data.R) }
func (tx *Transaction) S() *big.Int        { return new(big.Int).Set(tx.data.S) }

// To returns the recipient address, or nil for a contract-creation
// transaction.
func (tx *Transaction) To() *common.Address {
	if tx.data.Recipient == nil {
		return nil
	}
	to := *tx.data.Recipient
	return &to
}

// Hash uniquely identifies the transaction: keccak256 of its RLP
// encoding.
func (tx *Transaction) Hash() common.Hash {
	if h := tx.hash.Load(); h != nil {
		return h.(common.Hash)
	}
	enc, _ := rlp.EncodeToBytes(&tx.data)
	h := crypto.Keccak256Hash(enc)
	tx.hash.Store(h)
	return h
}

// SigningHash implements spec.md §4.4's
// `hash = keccak256(rlp([nonce, gas_price, gas, to, value, data]))`.
// It does not uniquely identify the transaction (the signature is not
// included) but is what the signature is computed and verified over.
func (tx *Transaction) SigningHash() common.Hash {
	enc, _ := rlp.EncodeToBytes([]interface{}{
		tx.data.AccountNonce,
		tx.data.Price,
		tx.data.GasLimit,
		tx.data.Recipient,
		tx.data.Amount,
		tx.data.Payload,
	})
	return crypto.Keccak256Hash(enc)
}

// Sender implements spec.md §4.4's signature-recovery algorithm in full:
// v/r/s range checks bound by secp256k1n, secp256k1 recovery, and
// keccak256(pubkey)[12:] address derivation.
func (tx *Transaction) Sender() (common.Address, error) {
	if f := tx.from.Load(); f != nil {
		return f.(common.Address), nil
	}
	if !crypto.ValidateSignatureValues(tx.data.V, tx.data.R, tx.data.S) {
		return common.Address{}, ErrInvalidSig
	}
	hash := tx.SigningHash()
	pub, err := crypto.Secp256k1Recover(tx.data.R, tx.data.S, tx.data.V-27, hash)
	if err != nil {
		return common.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return common.Address{}, errors.New("invalid public key")
	}
	addr := common.BytesToAddress(crypto.Keccak256(pub[1:])[12:])
	tx.from.Store(addr)
	return addr, nil
}

// Cost returns value + gasPrice*gasLimit.
func (tx *Transaction) Cost() *big.Int {
	total := new(big.Int).Mul(tx.data.Price, new(big.Int).SetUint64(tx.data.GasLimit))
	total.Add(total, tx.data.Amount)
	return total
}

// WithSignature returns a copy of tx carrying the given 65-byte
// [R || S || V] signature.
func (tx *Transaction) WithSignature(sig []byte) (*Transaction, error) {
	if len(sig) != 65 {
		return nil, fmt.Errorf("wrong size for signature: got %d, want 65", len(sig))
	}
	cpy := &Transaction{data: tx.data}
	cpy.data.R = new(big.Int).SetBytes(sig[:32])
	cpy.data.S = new(big.Int).SetBytes(sig[32:64])
	cpy.data.V = sig[64] + 27
	return cpy, nil
}

// SignECDSA signs tx's SigningHash with prv, returning the signed copy.
func (tx *Transaction) SignECDSA(prv *ecdsa.PrivateKey) (*Transaction, error) {
	h := tx.SigningHash()
	sig, err := crypto.Sign(h[:], prv)
	if err != nil {
		return nil, err
	}
	return tx.WithSignature(sig)
}

func (tx *Transaction) String() string {
	from := "[unsigned]"
	if f, err := tx.Sender(); err == nil {
		from = f.Hex()
	}
	to := "[contract creation]"
	if tx.data.Recipient != nil {
		to = tx.data.Recipient.Hex()
	}
	return fmt.Sprintf("TX(%x) from=%s to=%s nonce=%d gas=%d gasPrice=%v value=%v",
		tx.Hash(), from, to, tx.data.AccountNonce, tx.data.GasLimit, tx.data.Price, tx.data.Amount)
}

// Transactions is a Transaction slice, used for basic sorting and for
// the transactions trie.
type Transactions []*Transaction

func (s Transactions) Len() int      { return len(s) }
func (s Transactions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// TxByNonce sorts transactions by nonce, the ordering that matters for
// transactions originating from a single account.
type TxByNonce Transactions

func (s TxByNonce) Len() int           { return len(s) }
func (s TxByNonce) Less(i, j int) bool { return s[i].data.AccountNonce < s[j].data.AccountNonce }
func (s TxByNonce) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// SortByNonce sorts txs in place by account nonce, the single-sender
// ordering discipline spec.md §4.2 assumes each block already satisfies.
func SortByNonce(txs Transactions) {
	sort.Sort(TxByNonce(txs))
}
