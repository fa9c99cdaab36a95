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

package visualize_multi

import (
	"path/filepath"
	"strings"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/visualize"
)

// Target binds a Visualizer to the output format it renders, e.g. "svg" or "html".
type Target struct {
	Format     string
	Visualizer visualize.Visualizer
}

type MultiVisualizer struct {
	targets []Target
}

// NewMultiVisualizer creates a new Visualizer that renders the same view through multiple Visualizers.
// Each target writes next to the requested save path, with its own format as extension.
func NewMultiVisualizer(targets ...Target) *MultiVisualizer {
	return &MultiVisualizer{targets: targets}
}

func (mv *MultiVisualizer) AddVisualizer(targets ...Target) {
	mv.targets = append(mv.targets, targets...)
}

func (mv *MultiVisualizer) PlotMask(mask grid.Mask, style visualize.PlotStyle) error {
	for i, t := range mv.targets {
		if err := t.Visualizer.PlotMask(mask, mv.styleFor(i, style)); err != nil {
			return err
		}
	}
	return nil
}

func (mv *MultiVisualizer) PlotAllocationMap(g *grid.ResourceGrid, order []string, colors visualize.ColorMap, style visualize.PlotStyle) error {
	for i, t := range mv.targets {
		if err := t.Visualizer.PlotAllocationMap(g, order, colors, mv.styleFor(i, style)); err != nil {
			return err
		}
	}
	return nil
}

// styleFor retargets style to target i. Only the first target opens a viewer.
func (mv *MultiVisualizer) styleFor(i int, style visualize.PlotStyle) visualize.PlotStyle {
	t := mv.targets[i]
	if t.Format != "" {
		style.Format = t.Format
		if style.SavePath != "" {
			style.SavePath = strings.TrimSuffix(style.SavePath, filepath.Ext(style.SavePath)) + "." + t.Format
		}
	}
	if i > 0 && style.SavePath != "" {
		style.Show = false
	}
	return style
}
