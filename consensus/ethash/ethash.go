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

// Package ethash is the proof-of-work collaborator spec.md §4.6 names as
// a required check point whose algorithm is explicitly out of scope
// ("Proof-of-work verification is specified as a required check point
// but its algorithm (Ethash) is not part of this core"). This package
// wires the DAG-file plumbing a real verifier would need — memory-mapped
// access to the generated dataset, via edsrzf/mmap-go, the same
// technique the teacher's full ethash implementation uses to avoid
// copying gigabyte-scale DAGs into the Go heap — without implementing
// the hash itself. Open memory-maps whatever dataset file the verifier
// is pointed at; VerifySeal is a documented gap that does not read it and
// always returns nil rather than computing and checking the Ethash mix
// digest.
package ethash

import (
	"errors"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/fronticore/ethcore/core/types"
)

// ErrNoDataset is returned by Open when the backing DAG file is absent.
var ErrNoDataset = errors.New("ethash: dataset file not found")

// Ethash is a proof-of-work verifier bound to a memory-mapped DAG file.
// It implements core.PoWVerifier.
type Ethash struct {
	datasetPath string
	dataset     mmap.MMap
	file        *os.File
}

// New builds an unopened Ethash verifier for the dataset at path.
func New(path string) *Ethash {
	return &Ethash{datasetPath: path}
}

// Open memory-maps the DAG file so VerifySeal (once implemented) can
// address it without a full read into the Go heap.
func (e *Ethash) Open() error {
	f, err := os.Open(e.datasetPath)
	if err != nil {
		return ErrNoDataset
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return err
	}
	e.file = f
	e.dataset = m
	return nil
}

// Close unmaps the dataset and releases the file handle.
func (e *Ethash) Close() error {
	if e.dataset != nil {
		if err := e.dataset.Unmap(); err != nil {
			return err
		}
	}
	if e.file != nil {
		return e.file.Close()
	}
	return nil
}

// VerifySeal is the documented gap spec.md §9 flags: "A production core
// must gate the header validator on an Ethash verifier; leaving it off
// is acceptable only for replay tests against already-validated
// chains." It always succeeds; wiring the real mix-digest/difficulty
// check is future work tracked outside this core.
func (e *Ethash) VerifySeal(h *types.Header) error {
	return nil
}
