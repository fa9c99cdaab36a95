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

// Package channel allocates LTE downlink physical channels and signals on a resource grid.
package channel

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/types"
)

var (
	ErrInvalidConfig       = errors.New("invalid channel configuration")
	ErrInsufficientSymbols = errors.New("not enough symbols per slot")
	ErrGridTooNarrow       = errors.New("grid too narrow for channel")
	ErrUnknownChannel      = errors.New("unknown channel")
)

// DefaultPriority is the priority of channels that do not ask for a specific one.
const DefaultPriority = 100

// Allocation priorities; higher values are allocated first.
const (
	PriorityCRS   = 400
	PrioritySync  = 300
	PriorityPBCH  = 200
	PriorityPDCCH = DefaultPriority
)

// Channel computes the resource elements a physical channel occupies.
// Allocate only reads the grid geometry; registering the mask is left to the caller.
type Channel interface {
	Name() string
	Priority() int
	Allocate(g *grid.ResourceGrid) (grid.Mask, error)
}

// SortByPriority orders channels by descending priority, keeping the given order for ties.
func SortByPriority(channels []Channel) []Channel {
	sorted := append([]Channel(nil), channels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return sorted
}

// AllocateAll allocates the channels in priority order and registers each mask under the
// channel name. It stops at the first failure.
func AllocateAll(g *grid.ResourceGrid, channels ...Channel) error {
	for _, ch := range SortByPriority(channels) {
		mask, err := ch.Allocate(g)
		if err != nil {
			return errors.WithMessagef(err, "allocate %s", ch.Name())
		}
		if err = g.RegisterMask(ch.Name(), mask); err != nil {
			return errors.WithMessagef(err, "register %s", ch.Name())
		}
		logger.Debugf("channel %s (priority %d) allocated %d REs", ch.Name(), ch.Priority(), mask.Count())
	}
	return nil
}

// centerBand returns the [start, end) subcarriers of a width-subcarrier block centred on the carrier.
// The centre is taken on the standard 12-subcarrier RB raster whatever the grid's RB width.
func centerBand(dims grid.Dimensions, width int) (int, int, error) {
	n := dims.NumSubcarriers()
	center := dims.NumRb * types.SubcarriersPerRb / 2
	start, end := center-width/2, center+width/2
	if start < 0 || end > n {
		return 0, 0, errors.Wrapf(ErrGridTooNarrow, "%d subcarriers needed, grid has %d", width, n)
	}
	return start, end, nil
}
