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
	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/types"
)

// Synchronization signals occupy 62 subcarriers around DC plus 5 reserved on each side.
const syncNumSubcarriers = 72

// SyncConfig configures the primary and secondary synchronization signals.
type SyncConfig struct {
	CpType types.CyclicPrefix
	Duplex types.Duplex
}

// syncPosition is one (subframe in frame, slot, symbol in slot) occurrence.
type syncPosition struct {
	subframe, slot, symbol int
}

// syncSignal allocates a synchronization signal at fixed positions of every frame.
type syncSignal struct {
	name      string
	positions func(symbolsPerSlot int) []syncPosition
}

func (s *syncSignal) Name() string {
	return s.name
}

func (s *syncSignal) Priority() int {
	return PrioritySync
}

func (s *syncSignal) Allocate(g *grid.ResourceGrid) (grid.Mask, error) {
	dims := g.Dims()
	start, end, err := centerBand(dims, syncNumSubcarriers)
	if err != nil {
		return nil, err
	}
	mask := g.EmptyMask()
	for frame := 0; frame < dims.NumFrames; frame++ {
		for _, pos := range s.positions(dims.NumSymbolsPerSlot) {
			symbol, err := g.SymbolIndexFromFrame(frame, pos.subframe, pos.slot, pos.symbol)
			if err != nil {
				return nil, err
			}
			for k := start; k < end; k++ {
				mask[k][symbol] = true
			}
		}
	}
	return mask, nil
}

// NewPSS returns the primary synchronization signal allocator.
// FDD: last symbol of slot 0 in subframes 0 and 5. TDD: third symbol of subframes 1 and 6 (DwPTS).
func NewPSS(cfg SyncConfig) Channel {
	return &syncSignal{
		name: types.ChannelPSS,
		positions: func(symbolsPerSlot int) []syncPosition {
			if cfg.Duplex == types.TDD {
				return []syncPosition{{1, 0, 2}, {6, 0, 2}}
			}
			return []syncPosition{{0, 0, symbolsPerSlot - 1}, {5, 0, symbolsPerSlot - 1}}
		},
	}
}

// NewSSS returns the secondary synchronization signal allocator.
// FDD: the symbol before PSS. TDD: last symbol of slot 1 in subframes 0 and 5.
func NewSSS(cfg SyncConfig) Channel {
	return &syncSignal{
		name: types.ChannelSSS,
		positions: func(symbolsPerSlot int) []syncPosition {
			if cfg.Duplex == types.TDD {
				return []syncPosition{{0, 1, symbolsPerSlot - 1}, {5, 1, symbolsPerSlot - 1}}
			}
			return []syncPosition{{0, 0, symbolsPerSlot - 2}, {5, 0, symbolsPerSlot - 2}}
		},
	}
}
