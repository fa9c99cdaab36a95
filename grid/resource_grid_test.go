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

package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDims(numRb, symbolsPerSlot, numFrames int) Dimensions {
	return Dimensions{
		NumRb:                numRb,
		NumSubcarriersPerRb:  12,
		NumSymbolsPerSlot:    symbolsPerSlot,
		NumSlotsPerSubframe:  2,
		NumSubframesPerFrame: 10,
		NumFrames:            numFrames,
	}
}

func newTestGrid(t *testing.T, dims Dimensions) *ResourceGrid {
	g, err := NewResourceGrid(dims)
	require.Nil(t, err)
	return g
}

func TestDimensions(t *testing.T) {
	d := testDims(100, 7, 1)
	assert.Nil(t, d.Validate())
	assert.Equal(t, 1200, d.NumSubcarriers())
	assert.Equal(t, 14, d.NumSymbolsPerSubframe())
	assert.Equal(t, 140, d.NumSymbolsPerFrame())
	assert.Equal(t, 10, d.NumSubframesTotal())
	assert.Equal(t, 140, d.NumSymbolsTotal())
	rows, cols := d.Shape()
	assert.Equal(t, 1200, rows)
	assert.Equal(t, 140, cols)

	rows, cols = testDims(50, 7, 100).Shape()
	assert.Equal(t, 600, rows)
	assert.Equal(t, 14000, cols)

	d.NumFrames = 0
	assert.True(t, errors.Is(d.Validate(), ErrInvalidDimensions))
	_, err := NewResourceGrid(d)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))
}

func TestSubcarrierIndex(t *testing.T) {
	g := newTestGrid(t, testDims(6, 7, 1))
	for rb := 0; rb < 6; rb++ {
		for sc := 0; sc < 12; sc++ {
			k, err := g.SubcarrierIndex(rb, sc)
			require.Nil(t, err)
			assert.Equal(t, rb*12+sc, k)

			rb2, sc2, err := g.RbScFromSubcarrier(k)
			require.Nil(t, err)
			assert.Equal(t, rb, rb2)
			assert.Equal(t, sc, sc2)
		}
	}

	_, err := g.SubcarrierIndex(6, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SubcarrierIndex(0, 12)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SubcarrierIndex(-1, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, _, err = g.RbScFromSubcarrier(72)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestSymbolIndexRoundTrip(t *testing.T) {
	for _, spSlot := range []int{7, 6} {
		g := newTestGrid(t, testDims(6, spSlot, 3))
		_, total := g.Shape()
		for i := 0; i < total; i++ {
			loc, err := g.Locate(i)
			require.Nil(t, err)
			j, err := g.SymbolIndexFromFrame(loc.Frame, loc.Subframe, loc.Slot, loc.Symbol)
			require.Nil(t, err)
			require.Equal(t, i, j)
		}

		for f := 0; f < 3; f++ {
			for sf := 0; sf < 10; sf++ {
				for slot := 0; slot < 2; slot++ {
					for sym := 0; sym < spSlot; sym++ {
						i, err := g.SymbolIndexFromFrame(f, sf, slot, sym)
						require.Nil(t, err)
						loc, err := g.Locate(i)
						require.Nil(t, err)
						require.Equal(t, SymbolLocation{Frame: f, Subframe: sf, Slot: slot, Symbol: sym}, loc)

						abs, err := g.SymbolIndex(f*10+sf, slot, sym)
						require.Nil(t, err)
						require.Equal(t, i, abs)
					}
				}
			}
		}
	}
}

func TestSymbolIndexOutOfRange(t *testing.T) {
	g := newTestGrid(t, testDims(6, 7, 1))

	_, err := g.SymbolIndex(10, 0, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolIndex(0, 2, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolIndex(0, 0, 7)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolIndexFromFrame(1, 0, 0, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolIndexFromFrame(0, 10, 0, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.Locate(140)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.Locate(-1)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Contains(t, err.Error(), "symbol index -1 not in [0, 140)")
}

func TestSymbolRanges(t *testing.T) {
	g := newTestGrid(t, testDims(6, 7, 2))

	r, err := g.SymbolRangeForSubframe(3)
	assert.Nil(t, err)
	assert.Equal(t, SymbolRange{Start: 42, End: 56}, r)
	assert.Equal(t, 14, r.Len())
	assert.True(t, r.Contains(42))
	assert.False(t, r.Contains(56))

	r, err = g.SymbolRangeForFrame(1)
	assert.Nil(t, err)
	assert.Equal(t, SymbolRange{Start: 140, End: 280}, r)

	r, err = g.SymbolRangeForSlot(0, 1)
	assert.Nil(t, err)
	assert.Equal(t, SymbolRange{Start: 7, End: 14}, r)

	_, err = g.SymbolRangeForSubframe(20)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolRangeForFrame(2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	_, err = g.SymbolRangeForSlot(0, 2)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestCombinedAndAvailableMask(t *testing.T) {
	g := newTestGrid(t, testDims(6, 7, 1))
	assert.Equal(t, 0, g.CombinedMask().Count())
	assert.Equal(t, 72*140, g.AvailableMask().Count())

	a := g.EmptyMask()
	a[0][0] = true
	a[1][1] = true
	b := g.EmptyMask()
	b[1][1] = true
	b[71][139] = true
	require.Nil(t, g.RegisterMask("A", a))
	require.Nil(t, g.RegisterMask("B", b))

	combined := g.CombinedMask()
	available := g.AvailableMask()
	assert.Equal(t, 3, combined.Count())
	assert.Equal(t, 72*140-3, available.Count())
	for k := range combined {
		for l := range combined[k] {
			require.Equal(t, !combined[k][l], available[k][l])
		}
	}

	overlap := g.OverlapMask()
	assert.Equal(t, 1, overlap.Count())
	assert.True(t, overlap[1][1])

	occ, err := g.Occupants(1, 1)
	assert.Nil(t, err)
	assert.Equal(t, []string{"A", "B"}, occ)
	occ, err = g.Occupants(2, 2)
	assert.Nil(t, err)
	assert.Empty(t, occ)
	_, err = g.Occupants(72, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestRegisterMask(t *testing.T) {
	g := newTestGrid(t, testDims(6, 7, 1))

	err := g.RegisterMask("bad", NewMask(72, 139))
	assert.True(t, errors.Is(err, ErrShapeMismatch))
	ragged := NewMask(72, 140)
	ragged[5] = ragged[5][:10]
	assert.True(t, errors.Is(g.RegisterMask("ragged", ragged), ErrShapeMismatch))
	assert.False(t, g.HasMask("bad"))

	m := g.EmptyMask()
	m[3][4] = true
	require.Nil(t, g.RegisterMask("X", m))

	// later writes by the caller do not reach the registry
	m[3][5] = true
	got, err := g.GetMask("X")
	require.Nil(t, err)
	assert.Equal(t, 1, got.Count())
	got[0][0] = true
	again, _ := g.GetMask("X")
	assert.False(t, again[0][0])

	require.Nil(t, g.RegisterMask("Y", g.EmptyMask()))
	require.Nil(t, g.RegisterMask("X", m))
	assert.Empty(t, cmp.Diff([]string{"X", "Y"}, g.Channels()))
	got, _ = g.GetMask("X")
	assert.True(t, got.Equal(m))

	_, err = g.GetMask("Z")
	assert.True(t, errors.Is(err, ErrMaskNotFound))
}

func TestMask(t *testing.T) {
	m := NewMask(3, 4)
	rows, cols := m.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	m[2][3] = true
	m[0][1] = true
	assert.Equal(t, []RePos{{0, 1}, {2, 3}}, m.Positions())

	c := m.Clone()
	assert.True(t, c.Equal(m))
	c[1][1] = true
	assert.False(t, c.Equal(m))
	assert.Equal(t, 10, m.Not().Count())

	rows, cols = Mask(nil).Shape()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}
