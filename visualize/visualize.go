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

// Package visualize renders resource-grid masks and channel allocation maps.
package visualize

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/web"
)

const (
	DefaultWidth  = 12.0 // inches
	DefaultHeight = 5.0  // inches
	DefaultFormat = "svg"
)

var (
	ErrNothingToPlot = errors.New("nothing to plot")
	ErrNoDestination = errors.New("plot has neither a save path nor show enabled")
)

// Visualizer draws grid views to a file.
type Visualizer interface {
	// PlotMask draws a single boolean mask; true cells are filled.
	PlotMask(mask grid.Mask, style PlotStyle) error
	// PlotAllocationMap draws every channel in order, later channels painting over earlier ones.
	PlotAllocationMap(g *grid.ResourceGrid, order []string, colors ColorMap, style PlotStyle) error
}

// PlotStyle controls figure appearance and destination.
type PlotStyle struct {
	Title    string
	Width    float64 // inches
	Height   float64 // inches
	ShowGrid bool
	Show     bool
	SavePath string
	Format   string // svg, png, pdf, html, ...; empty means from SavePath
}

func DefaultPlotStyle(title string) PlotStyle {
	return PlotStyle{
		Title:    title,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		ShowGrid: false,
	}
}

// Size returns the figure size with defaults applied.
func (s PlotStyle) Size() (float64, float64) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// OutputFormat returns the explicit format, else the SavePath extension, else DefaultFormat.
func (s PlotStyle) OutputFormat() string {
	if s.Format != "" {
		return strings.ToLower(s.Format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(s.SavePath), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return DefaultFormat
}

// WithSavePath returns a copy of the style writing to path.
func (s PlotStyle) WithSavePath(path string) PlotStyle {
	s.SavePath = path
	return s
}

// Destination returns the file to render into. A shown plot without a save path goes to a temporary file.
func (s PlotStyle) Destination() (PlotStyle, error) {
	if s.SavePath != "" {
		if err := os.MkdirAll(filepath.Dir(s.SavePath), 0755); err != nil {
			return s, errors.Wrapf(err, "create directory for %s", s.SavePath)
		}
		return s, nil
	}
	if !s.Show {
		return s, ErrNoDestination
	}
	f, err := os.CreateTemp("", "ltegrid-*."+s.OutputFormat())
	if err != nil {
		return s, errors.WithStack(err)
	}
	s.SavePath = f.Name()
	return s, f.Close()
}

// Finish opens the saved file when the style asks for it.
func Finish(style PlotStyle) error {
	if !style.Show || style.SavePath == "" {
		return nil
	}
	return web.OpenBrowser(style.SavePath)
}

// PlotAvailable draws the free resource elements of g.
func PlotAvailable(v Visualizer, g *grid.ResourceGrid, style PlotStyle) error {
	if style.Title == "" {
		style.Title = "LTE DL Resource Grid (available)"
	}
	logger.Debugf("plot available grid %s", g.Dims())
	return v.PlotMask(g.AvailableMask(), style)
}

// PlotCombined draws every occupied resource element of g.
func PlotCombined(v Visualizer, g *grid.ResourceGrid, style PlotStyle) error {
	if style.Title == "" {
		style.Title = "LTE DL Resource Grid (combined allocation)"
	}
	return v.PlotMask(g.CombinedMask(), style)
}

// PlotChannels draws the union of the named channel masks.
func PlotChannels(v Visualizer, g *grid.ResourceGrid, names []string, style PlotStyle) error {
	if len(names) == 0 {
		return ErrNothingToPlot
	}
	rows, cols := g.Shape()
	mask := grid.NewMask(rows, cols)
	for _, name := range names {
		m, err := g.GetMask(name)
		if err != nil {
			return err
		}
		mask.Or(m)
	}
	if style.Title == "" {
		style.Title = "LTE DL Resource Grid (" + strings.Join(names, ", ") + ")"
	}
	return v.PlotMask(mask, style)
}

// PlotAllocation draws the allocation map of g; an empty order plots all registered channels.
func PlotAllocation(v Visualizer, g *grid.ResourceGrid, order []string, colors ColorMap, style PlotStyle) error {
	if len(order) == 0 {
		order = g.Channels()
	}
	if len(order) == 0 {
		return ErrNothingToPlot
	}
	if style.Title == "" {
		style.Title = "LTE DL Resource Grid Allocation"
	}
	return v.PlotAllocationMap(g, order, colors, style)
}
