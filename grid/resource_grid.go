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

// Package grid implements the LTE downlink resource grid: the mapping between
// (RB, subcarrier) / (frame, subframe, slot, symbol) coordinates and global indices,
// and a registry of named occupancy masks.
package grid

import (
	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/logger"
)

// SymbolRange is a half-open range [Start, End) of global symbol indices.
type SymbolRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

func (r SymbolRange) Len() int {
	return r.End - r.Start
}

func (r SymbolRange) Contains(symbol int) bool {
	return symbol >= r.Start && symbol < r.End
}

// SymbolLocation is the structured time position of one symbol.
type SymbolLocation struct {
	Frame    int `yaml:"frame"`
	Subframe int `yaml:"subframe"`
	Slot     int `yaml:"slot"`
	Symbol   int `yaml:"symbol"`
}

// ResourceGrid owns the grid geometry and the masks registered by channels.
type ResourceGrid struct {
	dims  Dimensions
	masks map[string]Mask
	order []string
}

// NewResourceGrid creates an empty grid with the given dimensions.
func NewResourceGrid(dims Dimensions) (*ResourceGrid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	logger.Debugf("resource grid created: %v", dims)
	return &ResourceGrid{
		dims:  dims,
		masks: map[string]Mask{},
	}, nil
}

// Dims returns a copy of the grid dimensions.
func (g *ResourceGrid) Dims() Dimensions {
	return g.dims
}

// Shape returns (number of subcarriers, total number of symbols).
func (g *ResourceGrid) Shape() (int, int) {
	return g.dims.Shape()
}

// SubcarrierIndex converts (rb, subcarrier within rb) into a global subcarrier index.
func (g *ResourceGrid) SubcarrierIndex(rb, scInRb int) (int, error) {
	if rb < 0 || rb >= g.dims.NumRb {
		return 0, outOfRange("rb", rb, g.dims.NumRb)
	}
	if scInRb < 0 || scInRb >= g.dims.NumSubcarriersPerRb {
		return 0, outOfRange("subcarrier in rb", scInRb, g.dims.NumSubcarriersPerRb)
	}
	return rb*g.dims.NumSubcarriersPerRb + scInRb, nil
}

// RbScFromSubcarrier converts a global subcarrier index back into (rb, subcarrier within rb).
func (g *ResourceGrid) RbScFromSubcarrier(subcarrier int) (int, int, error) {
	if n := g.dims.NumSubcarriers(); subcarrier < 0 || subcarrier >= n {
		return 0, 0, outOfRange("subcarrier", subcarrier, n)
	}
	return subcarrier / g.dims.NumSubcarriersPerRb, subcarrier % g.dims.NumSubcarriersPerRb, nil
}

// SymbolIndex converts (absolute subframe, slot, symbol in slot) into a global symbol index.
func (g *ResourceGrid) SymbolIndex(subframe, slot, symbol int) (int, error) {
	d := &g.dims
	if n := d.NumSubframesTotal(); subframe < 0 || subframe >= n {
		return 0, outOfRange("subframe", subframe, n)
	}
	if slot < 0 || slot >= d.NumSlotsPerSubframe {
		return 0, outOfRange("slot", slot, d.NumSlotsPerSubframe)
	}
	if symbol < 0 || symbol >= d.NumSymbolsPerSlot {
		return 0, outOfRange("symbol", symbol, d.NumSymbolsPerSlot)
	}
	return subframe*d.NumSymbolsPerSubframe() + slot*d.NumSymbolsPerSlot + symbol, nil
}

// SymbolIndexFromFrame converts (frame, subframe in frame, slot, symbol in slot) into a global symbol index.
func (g *ResourceGrid) SymbolIndexFromFrame(frame, subframeInFrame, slot, symbol int) (int, error) {
	d := &g.dims
	if frame < 0 || frame >= d.NumFrames {
		return 0, outOfRange("frame", frame, d.NumFrames)
	}
	if subframeInFrame < 0 || subframeInFrame >= d.NumSubframesPerFrame {
		return 0, outOfRange("subframe in frame", subframeInFrame, d.NumSubframesPerFrame)
	}
	return g.SymbolIndex(frame*d.NumSubframesPerFrame+subframeInFrame, slot, symbol)
}

// Locate is the inverse of SymbolIndexFromFrame.
func (g *ResourceGrid) Locate(symbolIndex int) (SymbolLocation, error) {
	d := &g.dims
	if n := d.NumSymbolsTotal(); symbolIndex < 0 || symbolIndex >= n {
		return SymbolLocation{}, outOfRange("symbol index", symbolIndex, n)
	}
	perFrame, perSubframe := d.NumSymbolsPerFrame(), d.NumSymbolsPerSubframe()
	rem := symbolIndex % perFrame
	return SymbolLocation{
		Frame:    symbolIndex / perFrame,
		Subframe: rem / perSubframe,
		Slot:     (rem % perSubframe) / d.NumSymbolsPerSlot,
		Symbol:   rem % d.NumSymbolsPerSlot,
	}, nil
}

// SymbolRangeForSubframe returns the symbols of an absolute subframe.
func (g *ResourceGrid) SymbolRangeForSubframe(subframe int) (SymbolRange, error) {
	if n := g.dims.NumSubframesTotal(); subframe < 0 || subframe >= n {
		return SymbolRange{}, outOfRange("subframe", subframe, n)
	}
	per := g.dims.NumSymbolsPerSubframe()
	return SymbolRange{Start: subframe * per, End: (subframe + 1) * per}, nil
}

// SymbolRangeForFrame returns the symbols of a frame.
func (g *ResourceGrid) SymbolRangeForFrame(frame int) (SymbolRange, error) {
	if frame < 0 || frame >= g.dims.NumFrames {
		return SymbolRange{}, outOfRange("frame", frame, g.dims.NumFrames)
	}
	per := g.dims.NumSymbolsPerFrame()
	return SymbolRange{Start: frame * per, End: (frame + 1) * per}, nil
}

// SymbolRangeForSlot returns the symbols of one slot of an absolute subframe.
func (g *ResourceGrid) SymbolRangeForSlot(subframe, slot int) (SymbolRange, error) {
	start, err := g.SymbolIndex(subframe, slot, 0)
	if err != nil {
		return SymbolRange{}, err
	}
	return SymbolRange{Start: start, End: start + g.dims.NumSymbolsPerSlot}, nil
}

// EmptyMask returns a new all-false mask of the grid's shape.
func (g *ResourceGrid) EmptyMask() Mask {
	return NewMask(g.dims.Shape())
}

// RegisterMask stores a copy of mask under name. Registering an existing name replaces its mask.
func (g *ResourceGrid) RegisterMask(name string, mask Mask) error {
	rows, cols := g.dims.Shape()
	if !mask.HasShape(rows, cols) {
		r, c := mask.Shape()
		return errors.Wrapf(ErrShapeMismatch, "mask %q has shape (%d, %d), grid is (%d, %d)", name, r, c, rows, cols)
	}
	if _, ok := g.masks[name]; !ok {
		g.order = append(g.order, name)
	}
	g.masks[name] = mask.Clone()
	logger.Debugf("mask %s registered: %d REs", name, mask.Count())
	return nil
}

// GetMask returns a copy of the mask registered under name.
func (g *ResourceGrid) GetMask(name string) (Mask, error) {
	m, ok := g.masks[name]
	if !ok {
		return nil, errors.Wrapf(ErrMaskNotFound, "%q", name)
	}
	return m.Clone(), nil
}

// HasMask reports whether a mask is registered under name.
func (g *ResourceGrid) HasMask(name string) bool {
	_, ok := g.masks[name]
	return ok
}

// Channels returns the registered mask names in registration order.
func (g *ResourceGrid) Channels() []string {
	return append([]string(nil), g.order...)
}

// CombinedMask is the element-wise OR of all registered masks.
func (g *ResourceGrid) CombinedMask() Mask {
	combined := g.EmptyMask()
	for _, name := range g.order {
		combined.Or(g.masks[name])
	}
	return combined
}

// AvailableMask is the complement of CombinedMask.
func (g *ResourceGrid) AvailableMask() Mask {
	return g.CombinedMask().Not()
}

// OverlapMask marks resource elements claimed by more than one registered mask.
func (g *ResourceGrid) OverlapMask() Mask {
	rows, cols := g.dims.Shape()
	counts := make([]uint8, rows*cols)
	overlap := g.EmptyMask()
	for _, name := range g.order {
		for k, row := range g.masks[name] {
			for l, v := range row {
				if !v {
					continue
				}
				i := k*cols + l
				if counts[i]++; counts[i] > 1 {
					overlap[k][l] = true
				}
			}
		}
	}
	return overlap
}

// Occupants lists the channels whose mask claims the given resource element, in registration order.
func (g *ResourceGrid) Occupants(subcarrier, symbol int) ([]string, error) {
	rows, cols := g.dims.Shape()
	if subcarrier < 0 || subcarrier >= rows {
		return nil, outOfRange("subcarrier", subcarrier, rows)
	}
	if symbol < 0 || symbol >= cols {
		return nil, outOfRange("symbol index", symbol, cols)
	}
	var res []string
	for _, name := range g.order {
		if g.masks[name][subcarrier][symbol] {
			res = append(res, name)
		}
	}
	return res, nil
}
