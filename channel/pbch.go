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

const (
	pbchNumSubcarriers = 72
	pbchNumSymbols     = 4
	pbchSlot           = 1
	pbchSubframe       = 0
)

// PBCHConfig holds the validated cell parameters of the broadcast channel.
type PBCHConfig struct {
	CellId          int
	CpType          types.CyclicPrefix
	Duplex          types.Duplex
	NumCellRefPorts int
}

// NewPBCHConfig validates the raw parameters. CP and duplex names are case-insensitive.
func NewPBCHConfig(cellId int, cpType string, duplex string, numCellRefPorts int) (PBCHConfig, error) {
	if err := validateCellId(cellId); err != nil {
		return PBCHConfig{}, err
	}
	cp, err := types.ParseCyclicPrefix(cpType)
	if err != nil {
		return PBCHConfig{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	d, err := types.ParseDuplex(duplex)
	if err != nil {
		return PBCHConfig{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err = crsPorts(numCellRefPorts); err != nil {
		return PBCHConfig{}, err
	}
	return PBCHConfig{
		CellId:          cellId,
		CpType:          cp,
		Duplex:          d,
		NumCellRefPorts: numCellRefPorts,
	}, nil
}

// PBCH is the physical broadcast channel: the central 72 subcarriers of symbols 0..3 of
// slot 1 in subframe 0 of every frame, minus the reference signal positions.
type PBCH struct {
	cfg PBCHConfig
}

func NewPBCH(cfg PBCHConfig) *PBCH {
	return &PBCH{cfg: cfg}
}

func (p *PBCH) Name() string {
	return types.ChannelPBCH
}

func (p *PBCH) Priority() int {
	return PriorityPBCH
}

func (p *PBCH) Config() PBCHConfig {
	return p.cfg
}

func (p *PBCH) Allocate(g *grid.ResourceGrid) (grid.Mask, error) {
	dims := g.Dims()
	if dims.NumSymbolsPerSlot < pbchNumSymbols {
		return nil, errors.Wrapf(ErrInsufficientSymbols, "PBCH requires %d symbols per slot, grid has %d",
			pbchNumSymbols, dims.NumSymbolsPerSlot)
	}
	start, end, err := centerBand(dims, pbchNumSubcarriers)
	if err != nil {
		return nil, errors.WithMessage(err, "PBCH")
	}

	// rate matching always assumes four reference signal ports, whatever the cell uses
	crs := CrsPositions(dims.NumSubcarriers(), p.cfg.CellId, p.cfg.CpType, []int{0, 1, 2, 3})

	mask := g.EmptyMask()
	for frame := 0; frame < dims.NumFrames; frame++ {
		for l := 0; l < pbchNumSymbols; l++ {
			symbol, err := g.SymbolIndexFromFrame(frame, pbchSubframe, pbchSlot, l)
			if err != nil {
				return nil, err
			}
			for k := start; k < end; k++ {
				if _, ok := crs[grid.RePos{Subcarrier: k, Symbol: l}]; ok {
					continue
				}
				mask[k][symbol] = true
			}
		}
	}
	return mask, nil
}
