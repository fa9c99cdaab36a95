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
	"fmt"

	"github.com/pkg/errors"
)

// Dimensions describes the geometry of a downlink resource grid.
// Only the primary counts are stored; totals are derived on demand.
type Dimensions struct {
	NumRb                int `yaml:"numRb" json:"numRb"`
	NumSubcarriersPerRb  int `yaml:"subcarriersPerRb" json:"subcarriersPerRb"`
	NumSymbolsPerSlot    int `yaml:"symbolsPerSlot" json:"symbolsPerSlot"`
	NumSlotsPerSubframe  int `yaml:"slotsPerSubframe" json:"slotsPerSubframe"`
	NumSubframesPerFrame int `yaml:"subframesPerFrame" json:"subframesPerFrame"`
	NumFrames            int `yaml:"numFrames" json:"numFrames"`
}

// Validate checks that every count is positive.
func (d Dimensions) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"numRb", d.NumRb},
		{"subcarriersPerRb", d.NumSubcarriersPerRb},
		{"symbolsPerSlot", d.NumSymbolsPerSlot},
		{"slotsPerSubframe", d.NumSlotsPerSubframe},
		{"subframesPerFrame", d.NumSubframesPerFrame},
		{"numFrames", d.NumFrames},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return errors.Wrapf(ErrInvalidDimensions, "%s must be positive, got %d", f.name, f.value)
		}
	}
	return nil
}

func (d Dimensions) NumSubcarriers() int {
	return d.NumRb * d.NumSubcarriersPerRb
}

func (d Dimensions) NumSymbolsPerSubframe() int {
	return d.NumSlotsPerSubframe * d.NumSymbolsPerSlot
}

func (d Dimensions) NumSymbolsPerFrame() int {
	return d.NumSubframesPerFrame * d.NumSymbolsPerSubframe()
}

func (d Dimensions) NumSubframesTotal() int {
	return d.NumFrames * d.NumSubframesPerFrame
}

func (d Dimensions) NumSymbolsTotal() int {
	return d.NumFrames * d.NumSymbolsPerFrame()
}

// NumResourceElements is the total number of resource elements of the grid.
func (d Dimensions) NumResourceElements() int {
	return d.NumSubcarriers() * d.NumSymbolsTotal()
}

// Shape returns (number of subcarriers, total number of symbols).
func (d Dimensions) Shape() (int, int) {
	return d.NumSubcarriers(), d.NumSymbolsTotal()
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%d RB x %d sc, %d sym/slot, %d slot/sf, %d sf/frame, %d frame(s)",
		d.NumRb, d.NumSubcarriersPerRb, d.NumSymbolsPerSlot, d.NumSlotsPerSubframe,
		d.NumSubframesPerFrame, d.NumFrames)
}
