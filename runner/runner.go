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

// Package runner drives one downlink grid run: resolve the configuration, allocate channels,
// then export and plot the result.
package runner

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/channel"
	"github.com/ltesim/ltegrid/config"
	"github.com/ltesim/ltegrid/export"
	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/types"
	"github.com/ltesim/ltegrid/visualize"
	visualize_echarts "github.com/ltesim/ltegrid/visualize/echarts"
	visualize_gonum "github.com/ltesim/ltegrid/visualize/gonum"
	visualize_multi "github.com/ltesim/ltegrid/visualize/multi"
	visualize_statslog "github.com/ltesim/ltegrid/visualize/statslog"
)

const (
	DefaultPlotName    = "grid_available.svg"
	DefaultKpiName     = "grid_kpi.json"
	DefaultMetricsName = "ltegrid.prom"
)

// Options selects what a run produces.
type Options struct {
	PlotAvailable      bool
	SavePlotPath       string
	ShowPlot           bool
	SaveCsv            bool
	SaveAllocatedCsv   bool
	AllocatePbch       bool
	Channels           []string // channels to allocate; nil means the configured list
	PlotCombined       bool
	PlotAllocationMap  bool
	AllocationChannels []string
	AllocationColors   visualize.ColorMap
	PlotHtml           bool
	StatsLog           bool // per-frame occupancy CSV next to every plot
	Kpi                bool
	Metrics            bool
	OutputDir          string
}

func DefaultOptions() *Options {
	return &Options{
		PlotAvailable:      true,
		ShowPlot:           false,
		AllocatePbch:       true,
		AllocationChannels: []string{types.ChannelPBCH},
		OutputDir:          export.DefaultOutputDir,
	}
}

// Result lists what a run produced.
type Result struct {
	Allocated []string
	Files     []string
	Kpi       *export.Kpi
}

type Runner struct {
	cfg        *config.LteDlConfig
	grid       *grid.ResourceGrid
	visualizer visualize.Visualizer
}

// New creates a runner for a validated copy of cfg.
func New(cfg *config.LteDlConfig) (*Runner, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := *cfg
	c.Channels = append([]string(nil), cfg.Channels...)
	return &Runner{cfg: &c}, nil
}

// FromFile creates a runner from a YAML or JSON configuration file.
func FromFile(path string) (*Runner, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func (r *Runner) Config() *config.LteDlConfig {
	return r.cfg
}

// Grid returns the run's grid, creating it on first use.
func (r *Runner) Grid() (*grid.ResourceGrid, error) {
	if r.grid != nil {
		return r.grid, nil
	}
	dims, err := r.cfg.GridDimensions()
	if err != nil {
		return nil, err
	}
	g, err := grid.NewResourceGrid(dims)
	if err != nil {
		return nil, err
	}
	logger.Infof("grid %s: %d resource elements", dims, dims.NumResourceElements())
	r.grid = g
	return g, nil
}

// Reset drops the grid and every mask registered on it.
func (r *Runner) Reset() {
	r.grid = nil
}

// Params returns the cell parameters channels are built from.
func (r *Runner) Params() channel.Params {
	return channel.Params{
		CellId:          r.cfg.CellId,
		CpType:          r.cfg.CyclicPrefix(),
		Duplex:          r.cfg.Duplex(),
		NumCellRefPorts: r.cfg.NumCellRefPorts,
		Cfi:             r.cfg.Cfi,
	}
}

// BuildChannels maps channel names to allocators configured from the run configuration.
func (r *Runner) BuildChannels(names []string) ([]channel.Channel, error) {
	return channel.NewAll(names, r.Params())
}

// Allocate allocates the named channels in priority order and returns their names in that order.
func (r *Runner) Allocate(names []string) ([]string, error) {
	g, err := r.Grid()
	if err != nil {
		return nil, err
	}
	channels, err := r.BuildChannels(names)
	if err != nil {
		return nil, err
	}
	channels = channel.SortByPriority(channels)
	if err = channel.AllocateAll(g, channels...); err != nil {
		return nil, err
	}
	allocated := make([]string, len(channels))
	for i, ch := range channels {
		allocated[i] = ch.Name()
	}
	return allocated, nil
}

// SetVisualizer replaces the visualizer picked from the run options.
func (r *Runner) SetVisualizer(v visualize.Visualizer) {
	r.visualizer = v
}

// Visualizer returns the visualizer used for plots: static figures, plus HTML charts and stats
// logs if asked.
func (r *Runner) Visualizer(opts *Options) visualize.Visualizer {
	if r.visualizer != nil {
		return r.visualizer
	}
	static := visualize_gonum.NewGonumVisualizer()
	if !opts.PlotHtml && !opts.StatsLog {
		return static
	}
	mv := visualize_multi.NewMultiVisualizer(visualize_multi.Target{Visualizer: static})
	if opts.PlotHtml {
		mv.AddVisualizer(visualize_multi.Target{Format: "html", Visualizer: visualize_echarts.NewEchartsVisualizer(0)})
	}
	if opts.StatsLog {
		mv.AddVisualizer(visualize_multi.Target{Visualizer: visualize_statslog.NewStatslogVisualizer()})
	}
	return mv
}

// channelsToAllocate merges the base list with the allocation view channels and applies the PBCH switch.
func (r *Runner) channelsToAllocate(opts *Options) []string {
	base := opts.Channels
	if base == nil {
		base = r.cfg.Channels
	}
	names := append([]string(nil), base...)
	if opts.PlotAllocationMap || opts.SaveAllocatedCsv {
		for _, name := range opts.AllocationChannels {
			if _, ok := types.NormalizeChannelName(name); !ok {
				logger.Warnf("unknown channel %s skipped for the allocation view", name)
				continue
			}
			names = append(names, name)
		}
	}
	if opts.AllocatePbch {
		names = append(names, types.ChannelPBCH)
	}

	seen := map[string]bool{}
	var result []string
	for _, name := range names {
		canonical, ok := types.NormalizeChannelName(name)
		if !ok {
			canonical = name
		}
		if seen[canonical] || (canonical == types.ChannelPBCH && !opts.AllocatePbch) {
			continue
		}
		seen[canonical] = true
		result = append(result, canonical)
	}
	return result
}

// allocationOrder keeps the requested channels that exist on the grid.
func allocationOrder(g *grid.ResourceGrid, requested []string) []string {
	var order []string
	for _, name := range requested {
		if canonical, ok := types.NormalizeChannelName(name); ok {
			name = canonical
		}
		if !g.HasMask(name) {
			logger.Warnf("channel %s not allocated, left out of the allocation view", name)
			continue
		}
		order = append(order, name)
	}
	return order
}

// Run performs a complete run.
func (r *Runner) Run(opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	g, err := r.Grid()
	if err != nil {
		return nil, err
	}
	res := &Result{}

	if res.Allocated, err = r.Allocate(r.channelsToAllocate(opts)); err != nil {
		return res, err
	}
	order := allocationOrder(g, opts.AllocationChannels)

	if opts.SaveCsv {
		path, err := export.ExportAvailableCSV(g, filepath.Join(opts.OutputDir, export.DefaultAvailableCsvName))
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}
	if opts.SaveAllocatedCsv {
		path, err := export.ExportAllocationCSV(g, order, filepath.Join(opts.OutputDir, export.DefaultAllocatedCsvName))
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}
	if opts.Kpi {
		res.Kpi = export.CalculateKpi(g)
		path := filepath.Join(opts.OutputDir, DefaultKpiName)
		if err = export.SaveKpiFile(res.Kpi, path); err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}
	if opts.Metrics {
		path := filepath.Join(opts.OutputDir, DefaultMetricsName)
		if err = export.WriteMetricsTextfile(g, path); err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}

	v := r.Visualizer(opts)
	plot := func(suffix string, draw func(style visualize.PlotStyle) error) error {
		style := visualize.DefaultPlotStyle("")
		style.Show = opts.ShowPlot
		style.SavePath = plotPath(opts, suffix)
		if err := draw(style); err != nil {
			return errors.WithMessagef(err, "plot %s", style.SavePath)
		}
		res.Files = append(res.Files, style.SavePath)
		return nil
	}
	if opts.PlotAvailable {
		if err = plot("", func(style visualize.PlotStyle) error {
			return visualize.PlotAvailable(v, g, style)
		}); err != nil {
			return res, err
		}
	}
	if opts.PlotCombined {
		if err = plot("_combined", func(style visualize.PlotStyle) error {
			return visualize.PlotCombined(v, g, style)
		}); err != nil {
			return res, err
		}
	}
	if opts.PlotAllocationMap {
		if err = plot("_allocation", func(style visualize.PlotStyle) error {
			return visualize.PlotAllocation(v, g, order, opts.AllocationColors, style)
		}); err != nil {
			return res, err
		}
	}
	return res, nil
}

// plotPath derives the file of one plot from the requested save path.
func plotPath(opts *Options, suffix string) string {
	path := opts.SavePlotPath
	if path == "" {
		path = filepath.Join(opts.OutputDir, DefaultPlotName)
	}
	if suffix == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
