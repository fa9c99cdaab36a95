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
	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/types"
)

// smallBandwidthRb is the RB count at or below which the control region grows by one symbol.
const smallBandwidthRb = 10

// tddSpecialSubframeMaxSymbols caps the control region of TDD subframes 1 and 6 at any bandwidth.
const tddSpecialSubframeMaxSymbols = 2

// ControlConfig configures the downlink control region.
type ControlConfig struct {
	Cfi      int
	CellId   int
	CpType   types.CyclicPrefix
	Duplex   types.Duplex
	NumPorts int
}

// ControlRegion marks the PDCCH control region: the first CFI symbols of every subframe
// over the whole bandwidth, without the reference signals of the configured ports.
type ControlRegion struct {
	cfg   ControlConfig
	ports []int
}

func NewControlRegion(cfg ControlConfig) (*ControlRegion, error) {
	if cfg.Cfi < 1 || cfg.Cfi > 3 {
		return nil, errors.Wrapf(ErrInvalidConfig, "cfi must be 1..3, got %d", cfg.Cfi)
	}
	if err := validateCellId(cfg.CellId); err != nil {
		return nil, err
	}
	ports, err := crsPorts(cfg.NumPorts)
	if err != nil {
		return nil, err
	}
	return &ControlRegion{cfg: cfg, ports: ports}, nil
}

func (c *ControlRegion) Name() string {
	return types.ChannelPDCCH
}

func (c *ControlRegion) Priority() int {
	return PriorityPDCCH
}

// NumSymbols returns the control region length of a subframe (index within the frame).
func (c *ControlRegion) NumSymbols(numRb, subframeInFrame int) int {
	n := c.cfg.Cfi
	if numRb <= smallBandwidthRb {
		n++
	}
	if c.cfg.Duplex == types.TDD && (subframeInFrame == 1 || subframeInFrame == 6) && n > tddSpecialSubframeMaxSymbols {
		n = tddSpecialSubframeMaxSymbols
	}
	return n
}

func (c *ControlRegion) Allocate(g *grid.ResourceGrid) (grid.Mask, error) {
	dims := g.Dims()
	crs := CrsPositions(dims.NumSubcarriers(), c.cfg.CellId, c.cfg.CpType, c.ports)
	mask := g.EmptyMask()
	for subframe := 0; subframe < dims.NumSubframesTotal(); subframe++ {
		n := c.NumSymbols(dims.NumRb, subframe%dims.NumSubframesPerFrame)
		if n > dims.NumSymbolsPerSlot {
			return nil, errors.Wrapf(ErrInsufficientSymbols, "control region of %d symbols, slot has %d", n, dims.NumSymbolsPerSlot)
		}
		for l := 0; l < n; l++ {
			symbol, err := g.SymbolIndex(subframe, 0, l)
			if err != nil {
				return nil, err
			}
			for k := 0; k < dims.NumSubcarriers(); k++ {
				if _, ok := crs[grid.RePos{Subcarrier: k, Symbol: l}]; ok {
					continue
				}
				mask[k][symbol] = true
			}
		}
	}
	return mask, nil
}
