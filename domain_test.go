// Copyright 2021 Irfan Sharif.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiniteDomainBasics(t *testing.T) {
	d := NewFiniteDomain(1, 2, 3)
	require.Equal(t, 3, d.Size())
	require.True(t, d.Contains(2))
	require.False(t, d.Contains(5))
	require.False(t, d.HasChanged())
}

func TestFiniteDomainRemove(t *testing.T) {
	d := NewFiniteDomain(1, 2, 3)
	require.NoError(t, d.Remove(2))
	require.Equal(t, 2, d.Size())
	require.True(t, d.HasChanged())
	d.ResetChanged()
	require.False(t, d.HasChanged())

	err := d.Remove(2)
	require.Error(t, err)
	_, isMisuse := err.(*Misuse)
	require.True(t, isMisuse)
}

func TestFiniteDomainRemoveEmptiesToInconsistency(t *testing.T) {
	d := NewFiniteDomain(1)
	err := d.Remove(1)
	require.Error(t, err)
	require.True(t, isInconsistency(err))
}

func TestFiniteDomainCopyIsIndependent(t *testing.T) {
	d := NewFiniteDomain(1, 2, 3)
	cp := d.copy().(*FiniteDomain)
	require.NoError(t, d.Remove(1))
	require.Equal(t, 3, cp.Size())
	require.False(t, cp.HasChanged())
}

func TestFiniteDomainRemoveManyStopsOnInconsistency(t *testing.T) {
	d := NewFiniteDomain(1, 2)
	err := d.RemoveMany([]Value{1, 2})
	require.Error(t, err)
	require.True(t, isInconsistency(err))
}

func TestFiniteDomainString(t *testing.T) {
	d := NewFiniteDomain(3, 1, 2)
	require.Equal(t, "{1, 2, 3} (3 values)", d.String())
	require.Equal(t, "{1} (1 value)", NewFiniteDomain(1).String())
}
