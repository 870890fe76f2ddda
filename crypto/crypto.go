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

// Package crypto adapts the keccak256 and secp256k1 collaborators spec.md
// §6 names into concrete, callable Go functions.
package crypto

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/sha3"

	"github.com/fronticore/ethcore/common"
	"github.com/fronticore/ethcore/rlp"
)

// Secp256k1N is the order of the secp256k1 curve; signature r and s must
// lie in (0, n), per spec.md §4.4.
var Secp256k1N, _ = new(big.Int).SetString(
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)

var ErrInvalidSig = errors.New("invalid v, r, s values")

// Keccak256 hashes the concatenation of the given byte slices.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash is Keccak256 returning a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}

// ValidateSignatureValues reports whether v, r, s form a signature whose
// recovery id and curve-order bounds satisfy spec.md §4.4.
func ValidateSignatureValues(v byte, r, s *big.Int) bool {
	if r == nil || s == nil {
		return false
	}
	if v != 27 && v != 28 {
		return false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 {
		return false
	}
	return r.Cmp(Secp256k1N) < 0 && s.Cmp(Secp256k1N) < 0
}

// Ecrecover recovers the 65-byte uncompressed public key (format byte
// 0x04 followed by X and Y) from a signature over hash.
func Ecrecover(hash []byte, sig []byte) ([]byte, error) {
	if len(sig) != 65 {
		return nil, errors.New("invalid signature length")
	}
	// btcec wants the recovery byte first.
	btcsig := make([]byte, 65)
	btcsig[0] = sig[64] + 27
	copy(btcsig[1:], sig[:64])

	pub, _, err := btcec.RecoverCompact(btcec.S256(), btcsig, hash)
	if err != nil {
		return nil, err
	}
	return pub.SerializeUncompressed(), nil
}

// Secp256k1Recover implements spec.md §4.4's
// secp256k1_recover(r, s, recovery_id, hash) collaborator.
func Secp256k1Recover(r, s *big.Int, recoveryID byte, hash common.Hash) ([]byte, error) {
	sig := make([]byte, 65)
	rb, sb := r.Bytes(), s.Bytes()
	copy(sig[32-len(rb):32], rb)
	copy(sig[64-len(sb):64], sb)
	sig[64] = recoveryID
	pub, err := Ecrecover(hash[:], sig)
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// Sign produces a 65-byte [R || S || V] signature (V in {0,1}) over hash
// using prv.
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	priv := (*btcec.PrivateKey)(prv)
	sig, err := btcec.SignCompact(btcec.S256(), priv, hash, false)
	if err != nil {
		return nil, err
	}
	// btcec's compact signature is [recovery-byte || R || S]; rearrange
	// to the [R || S || V] layout this module's callers expect.
	out := make([]byte, 65)
	copy(out[:64], sig[1:])
	out[64] = sig[0] - 27
	return out, nil
}

// CreateAddress computes the address of a newly created contract given
// the creator and its current nonce (keccak256(rlp([sender, nonce]))).
// Not exercised by this core (contract creation is out of scope per
// spec.md §4.3 step 3) but kept as the natural crypto-package entry
// point a create path would call.
func CreateAddress(b common.Address, nonce uint64) common.Address {
	data, _ := rlp.EncodeToBytes([]interface{}{b, nonce})
	return common.BytesToAddress(Keccak256(data)[12:])
}

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}
	return key.ToECDSA(), nil
}

// PubkeyToAddress derives the address bound to a public key
// (keccak256(pubkey)[12:]), per spec.md §4.4.
func PubkeyToAddress(pub ecdsa.PublicKey) common.Address {
	pubBytes := elliptic(pub)
	return common.BytesToAddress(Keccak256(pubBytes[1:])[12:])
}

func elliptic(pub ecdsa.PublicKey) []byte {
	btcPub := (*btcec.PublicKey)(&pub)
	return btcPub.SerializeUncompressed()
}
