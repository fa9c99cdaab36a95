// Copyright (c) 2024-2026, The LTEGRID Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package channel

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/types"
)

// symbolsOf returns the distinct symbol indices set in mask, ascending.
func symbolsOf(mask grid.Mask) []int {
	_, cols := mask.Shape()
	var res []int
	for l := 0; l < cols; l++ {
		for k := range mask {
			if mask[k][l] {
				res = append(res, l)
				break
			}
		}
	}
	return res
}

func TestSyncSignalsFdd(t *testing.T) {
	g := newGrid(t, 100, 7, 1)
	cfg := SyncConfig{CpType: types.CpNormal, Duplex: types.FDD}

	pss, err := NewPSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, 144, pss.Count())
	assert.Equal(t, []int{6, 76}, symbolsOf(pss))
	assert.True(t, pss[564][6])
	assert.True(t, pss[635][6])
	assert.False(t, pss[563][6])
	assert.False(t, pss[636][6])

	sss, err := NewSSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, []int{5, 75}, symbolsOf(sss))
}

func TestSyncSignalsExtendedCp(t *testing.T) {
	g := newGrid(t, 6, 6, 1)
	cfg := SyncConfig{CpType: types.CpExtended, Duplex: types.FDD}

	pss, err := NewPSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, []int{5, 65}, symbolsOf(pss))

	sss, err := NewSSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, []int{4, 64}, symbolsOf(sss))
}

func TestSyncSignalsTdd(t *testing.T) {
	g := newGrid(t, 100, 7, 2)
	cfg := SyncConfig{CpType: types.CpNormal, Duplex: types.TDD}

	pss, err := NewPSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, []int{16, 86, 156, 226}, symbolsOf(pss))
	assert.Equal(t, types.ChannelPSS, NewPSS(cfg).Name())

	sss, err := NewSSS(cfg).Allocate(g)
	require.Nil(t, err)
	assert.Equal(t, []int{13, 83, 153, 223}, symbolsOf(sss))
	assert.Equal(t, PrioritySync, NewSSS(cfg).Priority())
}

func TestSyncSignalsGridTooNarrow(t *testing.T) {
	g := newGrid(t, 3, 7, 1)
	_, err := NewPSS(SyncConfig{CpType: types.CpNormal, Duplex: types.FDD}).Allocate(g)
	assert.True(t, errors.Is(err, ErrGridTooNarrow))
}

func TestControlRegion(t *testing.T) {
	g := newGrid(t, 100, 7, 1)
	c, err := NewControlRegion(ControlConfig{Cfi: 2, CpType: types.CpNormal, Duplex: types.FDD, NumPorts: 1})
	require.Nil(t, err)
	assert.Equal(t, types.ChannelPDCCH, c.Name())

	mask, err := c.Allocate(g)
	require.Nil(t, err)
	// symbol 0 loses the 200 port-0 reference signals
	assert.Equal(t, 10*(1000+1200), mask.Count())
	assert.False(t, mask[0][0])
	assert.True(t, mask[1][0])
	assert.True(t, mask[0][1])
	assert.False(t, mask[0][2])
	assert.True(t, mask[0][15])

	// small bandwidths get one more control symbol
	small := newGrid(t, 6, 7, 1)
	mask, err = c.Allocate(small)
	require.Nil(t, err)
	assert.Equal(t, []int{0, 1, 2}, symbolsOf(mask)[:3])
	assert.Equal(t, 30, len(symbolsOf(mask)))
}

func TestControlRegionTdd(t *testing.T) {
	g := newGrid(t, 50, 7, 1)
	c, err := NewControlRegion(ControlConfig{Cfi: 3, CpType: types.CpNormal, Duplex: types.TDD, NumPorts: 2})
	require.Nil(t, err)
	assert.Equal(t, 3, c.NumSymbols(50, 0))
	assert.Equal(t, 2, c.NumSymbols(50, 1))
	assert.Equal(t, 2, c.NumSymbols(50, 6))
	assert.Equal(t, 2, c.NumSymbols(6, 6))
	assert.Equal(t, 4, c.NumSymbols(6, 5))

	mask, err := c.Allocate(g)
	require.Nil(t, err)
	syms := symbolsOf(mask)
	assert.Contains(t, syms, 14)
	assert.Contains(t, syms, 15)
	assert.NotContains(t, syms, 16)
	assert.Contains(t, syms, 30)
}

func TestControlRegionInvalid(t *testing.T) {
	_, err := NewControlRegion(ControlConfig{Cfi: 0, NumPorts: 1})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewControlRegion(ControlConfig{Cfi: 4, NumPorts: 1})
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	_, err = NewControlRegion(ControlConfig{Cfi: 1, NumPorts: 0})
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	c, err := NewControlRegion(ControlConfig{Cfi: 3, CpType: types.CpNormal, Duplex: types.FDD, NumPorts: 1})
	require.Nil(t, err)
	_, err = c.Allocate(newGrid(t, 6, 3, 1))
	assert.True(t, errors.Is(err, ErrInsufficientSymbols))
}
