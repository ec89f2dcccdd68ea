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

func TestFiniteIntervalDomainConstructorErrors(t *testing.T) {
	_, err := NewFiniteIntervalDomain(5, 1, 3)
	require.Error(t, err)
	require.IsType(t, &Misuse{}, err)

	_, err = NewFiniteIntervalDomain(1, 5, 3, 1)
	require.Error(t, err)

	_, err = NewFiniteIntervalDomain(1, 3, -2)
	require.Error(t, err)

	_, err = NewFiniteIntervalDomain(1, 3, 5)
	require.Error(t, err)
}

func TestFiniteIntervalDomainConstructorDefaults(t *testing.T) {
	d, err := NewFiniteIntervalDomain(1, 3, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), d.MaxLength())
	require.Equal(t, int64(1), d.Resolution())
}

func TestFiniteIntervalDomainConstructorClampsMaxLength(t *testing.T) {
	d, err := NewFiniteIntervalDomain(0, 5, 2, 8)
	require.NoError(t, err)
	require.Equal(t, int64(5), d.MaxLength())
}

func TestFiniteIntervalDomainSize(t *testing.T) {
	dom1, err := NewFiniteIntervalDomain(0, 10, 2, 4, 1)
	require.NoError(t, err)
	require.Equal(t, 9+8+7, dom1.Size())

	dom2, err := NewFiniteIntervalDomain(2, 5, 3)
	require.NoError(t, err)
	require.Equal(t, 1, dom2.Size())
}

func TestFiniteIntervalDomainValuesMatchesSize(t *testing.T) {
	dom1, err := NewFiniteIntervalDomain(0, 10, 2, 4, 1)
	require.NoError(t, err)
	require.Len(t, dom1.Values(), dom1.Size())
}

func TestFiniteIntervalDomainOverlap(t *testing.T) {
	dom1, err := NewFiniteIntervalDomain(0, 10, 2, 4, 1)
	require.NoError(t, err)

	overlapping, err := NewFiniteIntervalDomain(-5, 5, 1)
	require.NoError(t, err)
	require.True(t, dom1.Overlap(overlapping))

	disjoint, err := NewFiniteIntervalDomain(-15, 0, 1)
	require.NoError(t, err)
	require.False(t, dom1.Overlap(disjoint))

	disjoint2, err := NewFiniteIntervalDomain(10, 25, 1)
	require.NoError(t, err)
	require.False(t, dom1.Overlap(disjoint2))
}

func TestFiniteIntervalDomainBoundSetters(t *testing.T) {
	d, err := NewFiniteIntervalDomain(0, 10, 2, 4)
	require.NoError(t, err)

	require.NoError(t, d.SetLowestMin(3))
	require.Equal(t, int64(3), d.LowestMin())

	require.NoError(t, d.SetHighestMax(9))
	require.Equal(t, int64(9), d.HighestMax())

	require.NoError(t, d.SetMinLength(3))
	require.Equal(t, int64(3), d.MinLength())
}

func TestFiniteIntervalDomainEmptiedIsInconsistency(t *testing.T) {
	d, err := NewFiniteIntervalDomain(0, 4, 2, 2)
	require.NoError(t, err)
	err = d.SetMinLength(3)
	require.Error(t, err)
	require.True(t, isInconsistency(err))
}
