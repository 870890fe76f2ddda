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
	"errors"
	"fmt"
)

// ErrUnknownParent is returned when a non-genesis block's parent_hash
// matches no known header, per spec.md §7.
var ErrUnknownParent = errors.New("unknown parent")

// ErrGasOverflow is returned when a transaction requests more gas than
// remains in the block, per spec.md §7.
var ErrGasOverflow = errors.New("transaction gas exceeds remaining block gas")

// ErrUnsupportedOperation is returned for contract creation, out of
// scope for this Frontier cut per spec.md §4.3 step 3 and §9.
var ErrUnsupportedOperation = errors.New("unsupported operation: contract creation")

// HeaderError reports why header validation failed, one of the reasons
// enumerated in spec.md §7's HeaderInvalid{reason}.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string { return "invalid header: " + e.Reason }

func newHeaderError(reason string) error { return &HeaderError{Reason: reason} }

// OmmerError reports why ommer validation failed, spec.md §7's
// OmmerInvalid{reason}.
type OmmerError struct {
	Reason string
}

func (e *OmmerError) Error() string { return "invalid ommer: " + e.Reason }

func newOmmerError(reason string) error { return &OmmerError{Reason: reason} }

// TxError reports why a transaction failed validation, spec.md §7's
// TxInvalid{reason}.
type TxError struct {
	Reason string
}

func (e *TxError) Error() string { return "invalid transaction: " + e.Reason }

func newTxError(reason string) error { return &TxError{Reason: reason} }

// CommitmentError reports which post-execution commitment mismatched the
// header, spec.md §7's CommitmentMismatch{which}.
type CommitmentError struct {
	Which string
}

func (e *CommitmentError) Error() string {
	return fmt.Sprintf("commitment mismatch: %s", e.Which)
}

func newCommitmentError(which string) error { return &CommitmentError{Which: which} }
