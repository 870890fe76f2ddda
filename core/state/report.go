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

package state

import (
	"github.com/fjl/memsize"

	"github.com/fronticore/ethcore/common"
)

// ReportSize walks db's in-memory account set with fjl/memsize and
// returns a human-readable breakdown, the operational diagnostic the
// teacher exposes over its admin API for the live state cache.
func (db *StateDB) ReportSize() common.StorageSize {
	r := memsize.Scan(db.accounts)
	return common.StorageSize(float64(r.Total))
}
