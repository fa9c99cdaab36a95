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

package config

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltesim/ltegrid/grid"
)

func intPtr(v int) *int {
	return &v
}

func TestBandwidthTable(t *testing.T) {
	expected := map[int]int{1: 6, 3: 15, 5: 25, 10: 50, 15: 75, 20: 100}
	for bw, rb := range expected {
		p := DefaultDimensionParams()
		p.BandwidthMhz = bw
		dims, err := ResolveDimensions(p)
		require.Nil(t, err)
		assert.Equal(t, rb, dims.NumRb)
		assert.Equal(t, rb*12, dims.NumSubcarriers())
	}
	assert.Equal(t, []int{1, 3, 5, 10, 15, 20}, SupportedBandwidths())

	p := DefaultDimensionParams()
	p.BandwidthMhz = 7
	_, err := ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrUnsupportedBandwidth))
}

func TestResolveDefaults(t *testing.T) {
	dims, err := ResolveDimensions(DefaultDimensionParams())
	require.Nil(t, err)
	assert.Equal(t, grid.Dimensions{
		NumRb:                100,
		NumSubcarriersPerRb:  12,
		NumSymbolsPerSlot:    7,
		NumSlotsPerSubframe:  2,
		NumSubframesPerFrame: 10,
		NumFrames:            1,
	}, dims)
	rows, cols := dims.Shape()
	assert.Equal(t, 1200, rows)
	assert.Equal(t, 140, cols)

	// zero values fall back to the LTE frame structure
	dims, err = ResolveDimensions(DimensionParams{BandwidthMhz: 5})
	require.Nil(t, err)
	assert.Equal(t, 25, dims.NumRb)
	assert.Equal(t, 7, dims.NumSymbolsPerSlot)
	assert.Equal(t, 10, dims.NumSubframesPerFrame)
}

func TestResolveRbMismatch(t *testing.T) {
	p := DefaultDimensionParams()
	p.NumRb = intPtr(100)
	_, err := ResolveDimensions(p)
	assert.Nil(t, err)

	p.NumRb = intPtr(50)
	_, err = ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrRbMismatch))
}

func TestResolveCpType(t *testing.T) {
	p := DefaultDimensionParams()
	p.CpType = "EXTENDED"
	dims, err := ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 6, dims.NumSymbolsPerSlot)
	assert.Equal(t, 120, dims.NumSymbolsTotal())

	p.CpType = "Normal"
	dims, err = ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 7, dims.NumSymbolsPerSlot)

	p.CpType = "long"
	_, err = ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrInvalidCpType))
}

func TestResolveDuration(t *testing.T) {
	p := DefaultDimensionParams()
	p.BandwidthMhz = 10
	p.DurationMs = intPtr(1000)
	dims, err := ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 100, dims.NumFrames)
	rows, cols := dims.Shape()
	assert.Equal(t, 600, rows)
	assert.Equal(t, 14000, cols)

	// duration wins over an explicit frame count
	p.NumFrames = intPtr(3)
	p.DurationMs = intPtr(20)
	dims, err = ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 2, dims.NumFrames)

	p.DurationMs = intPtr(15)
	_, err = ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrDurationNotFrameAligned))

	p.DurationMs = intPtr(0)
	_, err = ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrInvalidFrameCount))

	p.DurationMs = nil
	p.NumFrames = intPtr(0)
	_, err = ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrInvalidFrameCount))

	p.NumFrames = intPtr(4)
	dims, err = ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 4, dims.NumFrames)
}

func TestResolveStructuralOverrides(t *testing.T) {
	p := DefaultDimensionParams()
	p.NumSubframesPerFrame = -1
	_, err := ResolveDimensions(p)
	assert.True(t, errors.Is(err, ErrInvalidStructure))

	p = DefaultDimensionParams()
	p.NumSlotsPerSubframe = 4
	dims, err := ResolveDimensions(p)
	require.Nil(t, err)
	assert.Equal(t, 280, dims.NumSymbolsTotal())
}
