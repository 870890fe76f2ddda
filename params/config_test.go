// Copyright 2016 The go-ethereum Authors
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

package params

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cespare/cp"
	"github.com/stretchr/testify/require"
)

// testConfigFile copies testdata/chainconfig.toml into a fresh temp
// directory, the way the teacher's own fixture-driven tests avoid
// mutating a shared testdata file in place.
func testConfigFile(t *testing.T) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), "chainconfig.toml")
	require.NoError(t, cp.CopyFile(dst, filepath.Join("testdata", "chainconfig.toml")))
	return dst
}

func TestLoadChainConfig(t *testing.T) {
	path := testConfigFile(t)

	cfg, err := LoadChainConfig(path)
	require.NoError(t, err)
	require.Zero(t, cfg.ChainID.Cmp(big.NewInt(1)))
}

func TestLoadChainConfigMissingFile(t *testing.T) {
	_, err := LoadChainConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

// TestWatchChainConfigReloadsOnWrite covers the hot-reload path: editing
// the backing file updates Current() without restarting the watcher.
func TestWatchChainConfigReloadsOnWrite(t *testing.T) {
	path := testConfigFile(t)

	w, err := WatchChainConfig(path)
	require.NoError(t, err)
	defer w.Stop()

	require.Zero(t, w.Current().ChainID.Cmp(big.NewInt(1)))

	require.NoError(t, os.WriteFile(path, []byte("chain_id = 42\n"), 0644))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if w.Current().ChainID.Cmp(big.NewInt(42)) == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.Zero(t, w.Current().ChainID.Cmp(big.NewInt(42)))
}
