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
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/types"
)

var (
	ErrUnsupportedBandwidth    = errors.New("unsupported bandwidth")
	ErrRbMismatch              = errors.New("numRb does not match bandwidth")
	ErrInvalidCpType           = types.ErrInvalidCpType
	ErrDurationNotFrameAligned = errors.New("durationMs must be a multiple of 10")
	ErrInvalidFrameCount       = errors.New("numFrames must be >= 1")
	ErrInvalidStructure        = errors.New("structural override must be positive")
)

// BandwidthToRb maps the LTE channel bandwidth in MHz to its number of resource blocks.
var BandwidthToRb = map[int]int{
	1:  6,
	3:  15,
	5:  25,
	10: 50,
	15: 75,
	20: 100,
}

// SupportedBandwidths returns the valid bandwidths in ascending order.
func SupportedBandwidths() []int {
	bws := make([]int, 0, len(BandwidthToRb))
	for bw := range BandwidthToRb {
		bws = append(bws, bw)
	}
	sort.Ints(bws)
	return bws
}

// NumRbForBandwidth returns the RB count for a bandwidth in MHz.
func NumRbForBandwidth(bwMhz int) (int, error) {
	numRb, ok := BandwidthToRb[bwMhz]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedBandwidth, "bw %d MHz (expected one of %v)", bwMhz, SupportedBandwidths())
	}
	return numRb, nil
}

// DimensionParams is the loosely specified input of ResolveDimensions.
// Nil pointers mean "not given".
type DimensionParams struct {
	BandwidthMhz         int
	CpType               string
	NumRb                *int
	NumFrames            *int
	DurationMs           *int
	SubcarriersPerRb     int
	NumSlotsPerSubframe  int
	NumSubframesPerFrame int
}

// DefaultDimensionParams returns 20 MHz, normal CP, one frame.
func DefaultDimensionParams() DimensionParams {
	return DimensionParams{
		BandwidthMhz:         types.DefaultBandwidthMhz,
		CpType:               string(types.CpNormal),
		SubcarriersPerRb:     types.SubcarriersPerRb,
		NumSlotsPerSubframe:  types.SlotsPerSubframe,
		NumSubframesPerFrame: types.SubframesPerFrame,
	}
}

// ResolveDimensions derives validated grid dimensions from p.
// A duration takes precedence over an explicit frame count.
func ResolveDimensions(p DimensionParams) (grid.Dimensions, error) {
	expectedRb, err := NumRbForBandwidth(p.BandwidthMhz)
	if err != nil {
		return grid.Dimensions{}, err
	}

	cpType := p.CpType
	if strings.TrimSpace(cpType) == "" {
		cpType = string(types.CpNormal)
	}
	cp, err := types.ParseCyclicPrefix(cpType)
	if err != nil {
		return grid.Dimensions{}, err
	}

	numRb := expectedRb
	if p.NumRb != nil {
		if *p.NumRb != expectedRb {
			return grid.Dimensions{}, errors.Wrapf(ErrRbMismatch, "numRb %d, bw %d MHz requires %d", *p.NumRb, p.BandwidthMhz, expectedRb)
		}
		numRb = *p.NumRb
	}

	numFrames := 1
	if p.NumFrames != nil {
		numFrames = *p.NumFrames
	}
	if p.DurationMs != nil {
		if *p.DurationMs%types.FrameDurationMs != 0 {
			return grid.Dimensions{}, errors.Wrapf(ErrDurationNotFrameAligned, "durationMs %d", *p.DurationMs)
		}
		numFrames = *p.DurationMs / types.FrameDurationMs
	}
	if numFrames < 1 {
		return grid.Dimensions{}, errors.Wrapf(ErrInvalidFrameCount, "got %d", numFrames)
	}

	dims := grid.Dimensions{
		NumRb:                numRb,
		NumSubcarriersPerRb:  orDefault(p.SubcarriersPerRb, types.SubcarriersPerRb),
		NumSymbolsPerSlot:    cp.SymbolsPerSlot(),
		NumSlotsPerSubframe:  orDefault(p.NumSlotsPerSubframe, types.SlotsPerSubframe),
		NumSubframesPerFrame: orDefault(p.NumSubframesPerFrame, types.SubframesPerFrame),
		NumFrames:            numFrames,
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"subcarriersPerRb", dims.NumSubcarriersPerRb},
		{"numSlotsPerSubframe", dims.NumSlotsPerSubframe},
		{"numSubframesPerFrame", dims.NumSubframesPerFrame},
	} {
		if v.value <= 0 {
			return grid.Dimensions{}, errors.Wrapf(ErrInvalidStructure, "%s %d", v.name, v.value)
		}
	}
	return dims, nil
}

// orDefault treats the zero value as "not given".
func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
