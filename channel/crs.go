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

// crsPortPattern is the per-slot placement of one antenna port's reference signals.
type crsPortPattern struct {
	symbols []int
	offset  int
}

// crsPatterns returns the slot-local symbol sets and subcarrier offsets of ports 0..3.
func crsPatterns(cp types.CyclicPrefix) [4]crsPortPattern {
	secondSymbol := 4
	if cp == types.CpExtended {
		secondSymbol = 3
	}
	return [4]crsPortPattern{
		{symbols: []int{0, secondSymbol}, offset: 0},
		{symbols: []int{0, secondSymbol}, offset: 3},
		{symbols: []int{1}, offset: 0},
		{symbols: []int{1}, offset: 3},
	}
}

// crsPorts returns the antenna ports used with numPorts cell reference ports.
func crsPorts(numPorts int) ([]int, error) {
	switch numPorts {
	case 1:
		return []int{0}, nil
	case 2:
		return []int{0, 1}, nil
	case 4:
		return []int{0, 1, 2, 3}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "numCellRefPorts must be 1, 2 or 4, got %d", numPorts)
	}
}

// CrsPositions returns the reference signal positions of the given ports over the whole carrier.
// Symbol is local to the slot; subcarrier k carries CRS when k = v_shift + offset (mod 6) with
// v_shift = cellId mod 6.
func CrsPositions(numSubcarriers, cellId int, cp types.CyclicPrefix, ports []int) map[grid.RePos]struct{} {
	patterns := crsPatterns(cp)
	vShift := cellId % 6
	res := map[grid.RePos]struct{}{}
	for _, port := range ports {
		p := patterns[port]
		first := (vShift + p.offset) % 6
		for _, l := range p.symbols {
			for k := first; k < numSubcarriers; k += 6 {
				res[grid.RePos{Subcarrier: k, Symbol: l}] = struct{}{}
			}
		}
	}
	return res
}

// CRSConfig configures the cell-specific reference signal allocator.
type CRSConfig struct {
	CellId   int
	CpType   types.CyclicPrefix
	NumPorts int
}

// CRS marks the cell-specific reference signals of the configured ports in every slot.
type CRS struct {
	cfg   CRSConfig
	ports []int
}

func NewCRS(cfg CRSConfig) (*CRS, error) {
	if err := validateCellId(cfg.CellId); err != nil {
		return nil, err
	}
	ports, err := crsPorts(cfg.NumPorts)
	if err != nil {
		return nil, err
	}
	return &CRS{cfg: cfg, ports: ports}, nil
}

func (c *CRS) Name() string {
	return types.ChannelCRS
}

func (c *CRS) Priority() int {
	return PriorityCRS
}

func (c *CRS) Allocate(g *grid.ResourceGrid) (grid.Mask, error) {
	dims := g.Dims()
	mask := g.EmptyMask()
	positions := CrsPositions(dims.NumSubcarriers(), c.cfg.CellId, c.cfg.CpType, c.ports)
	for subframe := 0; subframe < dims.NumSubframesTotal(); subframe++ {
		for slot := 0; slot < dims.NumSlotsPerSubframe; slot++ {
			slotRange, err := g.SymbolRangeForSlot(subframe, slot)
			if err != nil {
				return nil, err
			}
			for pos := range positions {
				if pos.Symbol < dims.NumSymbolsPerSlot {
					mask[pos.Subcarrier][slotRange.Start+pos.Symbol] = true
				}
			}
		}
	}
	return mask, nil
}

func validateCellId(cellId int) error {
	if cellId < 0 || cellId > types.MaxCellId {
		return errors.Wrapf(ErrInvalidConfig, "cellId must be in range 0..%d, got %d", types.MaxCellId, cellId)
	}
	return nil
}
