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

	"github.com/ltesim/ltegrid/types"
)

// Params are the cell parameters every allocator is built from.
type Params struct {
	CellId          int
	CpType          types.CyclicPrefix
	Duplex          types.Duplex
	NumCellRefPorts int
	Cfi             int
}

// New builds the allocator for a channel name (case-insensitive).
func New(name string, p Params) (Channel, error) {
	canonical, ok := types.NormalizeChannelName(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownChannel, "%q (known: %v)", name, types.KnownChannels)
	}
	switch canonical {
	case types.ChannelCRS:
		crs, err := NewCRS(CRSConfig{CellId: p.CellId, CpType: p.CpType, NumPorts: p.NumCellRefPorts})
		if err != nil {
			return nil, err
		}
		return crs, nil
	case types.ChannelPSS:
		return NewPSS(SyncConfig{CpType: p.CpType, Duplex: p.Duplex}), nil
	case types.ChannelSSS:
		return NewSSS(SyncConfig{CpType: p.CpType, Duplex: p.Duplex}), nil
	case types.ChannelPBCH:
		cfg, err := NewPBCHConfig(p.CellId, string(p.CpType), string(p.Duplex), p.NumCellRefPorts)
		if err != nil {
			return nil, err
		}
		return NewPBCH(cfg), nil
	case types.ChannelPDCCH:
		control, err := NewControlRegion(ControlConfig{
			Cfi:      p.Cfi,
			CellId:   p.CellId,
			CpType:   p.CpType,
			Duplex:   p.Duplex,
			NumPorts: p.NumCellRefPorts,
		})
		if err != nil {
			return nil, err
		}
		return control, nil
	}
	return nil, errors.Wrapf(ErrUnknownChannel, "%q", name)
}

// NewAll builds the allocators for a list of names. Duplicate names are built once.
func NewAll(names []string, p Params) ([]Channel, error) {
	seen := map[string]bool{}
	var channels []Channel
	for _, name := range names {
		ch, err := New(name, p)
		if err != nil {
			return nil, err
		}
		if seen[ch.Name()] {
			continue
		}
		seen[ch.Name()] = true
		channels = append(channels, ch)
	}
	return channels, nil
}
