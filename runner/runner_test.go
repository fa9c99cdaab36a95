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

package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltesim/ltegrid/channel"
	"github.com/ltesim/ltegrid/config"
	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/types"
	"github.com/ltesim/ltegrid/visualize"
)

type recordingVisualizer struct {
	styles []visualize.PlotStyle
	orders [][]string
}

func (rv *recordingVisualizer) PlotMask(mask grid.Mask, style visualize.PlotStyle) error {
	rv.styles = append(rv.styles, style)
	return nil
}

func (rv *recordingVisualizer) PlotAllocationMap(g *grid.ResourceGrid, order []string, colors visualize.ColorMap, style visualize.PlotStyle) error {
	rv.styles = append(rv.styles, style)
	rv.orders = append(rv.orders, order)
	return nil
}

func intPtr(v int) *int {
	return &v
}

func newSmallRunner(t *testing.T) *Runner {
	cfg := config.DefaultConfig()
	cfg.Bw = 1
	cfg.NumFrames = intPtr(1)
	r, err := New(cfg)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r, err := New(nil)
	require.NoError(t, err)
	g, err := r.Grid()
	require.NoError(t, err)
	rows, cols := g.Shape()
	assert.Equal(t, 1200, rows)
	assert.Equal(t, 140, cols)

	g2, err := r.Grid()
	require.NoError(t, err)
	assert.True(t, g == g2)
	r.Reset()
	g3, err := r.Grid()
	require.NoError(t, err)
	assert.False(t, g == g3)

	cfg := config.DefaultConfig()
	cfg.Bw = 7
	_, err = New(cfg)
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestNewCopiesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	r, err := New(cfg)
	require.NoError(t, err)
	cfg.Channels[0] = "CRS"
	cfg.CellId = 7
	assert.Equal(t, []string{types.ChannelPBCH}, r.Config().Channels)
	assert.Equal(t, 0, r.Config().CellId)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lte.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bw": 5, "cpType": "extended", "durationMs": 20, "cellId": 3}`), 0644))
	r, err := FromFile(path)
	require.NoError(t, err)
	g, err := r.Grid()
	require.NoError(t, err)
	rows, cols := g.Shape()
	assert.Equal(t, 300, rows)
	assert.Equal(t, 240, cols)
	assert.Equal(t, types.CpExtended, r.Params().CpType)
	assert.Equal(t, 3, r.Params().CellId)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBuildChannels(t *testing.T) {
	r := newSmallRunner(t)
	chs, err := r.BuildChannels([]string{"pdcch", "PBCH", "crs"})
	require.NoError(t, err)
	require.Len(t, chs, 3)
	assert.Equal(t, types.ChannelPDCCH, chs[0].Name())

	_, err = r.BuildChannels([]string{"PBCH", "PUSCH"})
	assert.True(t, errors.Is(err, channel.ErrUnknownChannel))
}

func TestAllocate(t *testing.T) {
	r := newSmallRunner(t)
	allocated, err := r.Allocate([]string{"PDCCH", "PBCH", "CRS"})
	require.NoError(t, err)
	assert.Equal(t, []string{types.ChannelCRS, types.ChannelPBCH, types.ChannelPDCCH}, allocated)

	g, err := r.Grid()
	require.NoError(t, err)
	pbch, err := g.GetMask(types.ChannelPBCH)
	require.NoError(t, err)
	assert.Equal(t, 240, pbch.Count())
	assert.Zero(t, g.OverlapMask().Count())
}

func TestChannelsToAllocate(t *testing.T) {
	r := newSmallRunner(t)

	opts := DefaultOptions()
	assert.Equal(t, []string{types.ChannelPBCH}, r.channelsToAllocate(opts))

	opts.AllocatePbch = false
	assert.Empty(t, r.channelsToAllocate(opts))

	opts.Channels = []string{"crs", "CRS", "pdcch"}
	opts.PlotAllocationMap = true
	opts.AllocationChannels = []string{"PBCH", "pss"}
	assert.Equal(t, []string{types.ChannelCRS, types.ChannelPDCCH, types.ChannelPSS}, r.channelsToAllocate(opts))

	opts.AllocatePbch = true
	assert.Equal(t, []string{types.ChannelCRS, types.ChannelPDCCH, types.ChannelPBCH, types.ChannelPSS}, r.channelsToAllocate(opts))
}

func TestPlotPath(t *testing.T) {
	opts := &Options{OutputDir: "out"}
	assert.Equal(t, filepath.Join("out", DefaultPlotName), plotPath(opts, ""))
	assert.Equal(t, filepath.Join("out", "grid_available_combined.svg"), plotPath(opts, "_combined"))

	opts.SavePlotPath = "plots/grid.png"
	assert.Equal(t, "plots/grid.png", plotPath(opts, ""))
	assert.Equal(t, "plots/grid_allocation.png", plotPath(opts, "_allocation"))
}

func TestRunDefault(t *testing.T) {
	r := newSmallRunner(t)
	rv := &recordingVisualizer{}
	r.SetVisualizer(rv)

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	res, err := r.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{types.ChannelPBCH}, res.Allocated)
	require.Len(t, rv.styles, 1)
	assert.Equal(t, filepath.Join(opts.OutputDir, DefaultPlotName), rv.styles[0].SavePath)
	assert.False(t, rv.styles[0].Show)
	assert.Equal(t, []string{rv.styles[0].SavePath}, res.Files)
	assert.Nil(t, res.Kpi)
}

func TestRunAllOutputs(t *testing.T) {
	r := newSmallRunner(t)
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.Channels = []string{"CRS"}
	opts.SaveCsv = true
	opts.SaveAllocatedCsv = true
	opts.PlotCombined = true
	opts.PlotAllocationMap = true
	opts.AllocationChannels = []string{"CRS", "PBCH", "PDCCH"}
	opts.AllocationColors = visualize.ColorMap{"PBCH": "tab:orange"}
	opts.PlotHtml = true
	opts.StatsLog = true
	opts.Kpi = true
	opts.Metrics = true

	res, err := r.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{types.ChannelCRS, types.ChannelPBCH, types.ChannelPDCCH}, res.Allocated)
	require.NotNil(t, res.Kpi)
	assert.Equal(t, 240, res.Kpi.Channels[types.ChannelPBCH].ResourceElements)

	for _, name := range []string{
		"grid_available.csv", "grid_allocated.csv", DefaultKpiName, DefaultMetricsName,
		"grid_available.svg", "grid_available.html",
		"grid_available_combined.svg", "grid_available_combined.html",
		"grid_available_allocation.svg", "grid_available_allocation.html",
		"grid_available_stats.csv", "grid_available_allocation_stats.csv",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestRunAllocationSkipsMissing(t *testing.T) {
	r := newSmallRunner(t)
	rv := &recordingVisualizer{}
	r.SetVisualizer(rv)

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.PlotAvailable = false
	opts.PlotAllocationMap = true
	opts.AllocatePbch = false
	opts.AllocationChannels = []string{"PBCH", "PSS"}

	res, err := r.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{types.ChannelPSS}, res.Allocated)
	assert.Equal(t, [][]string{{types.ChannelPSS}}, rv.orders)
}

func TestRunAllocationSkipsUnknown(t *testing.T) {
	r := newSmallRunner(t)
	rv := &recordingVisualizer{}
	r.SetVisualizer(rv)

	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.PlotAvailable = false
	opts.PlotAllocationMap = true
	opts.SaveAllocatedCsv = true
	opts.AllocatePbch = false
	opts.AllocationChannels = []string{"PSS", "PDSCH"}

	res, err := r.Run(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{types.ChannelPSS}, res.Allocated)
	assert.Equal(t, [][]string{{types.ChannelPSS}}, rv.orders)
	assert.FileExists(t, filepath.Join(opts.OutputDir, "grid_allocated.csv"))
}

func TestRunUnknownChannel(t *testing.T) {
	r := newSmallRunner(t)
	r.SetVisualizer(visualize.NewNopVisualizer())

	opts := DefaultOptions()
	opts.Channels = []string{"PUSCH"}
	_, err := r.Run(opts)
	assert.True(t, errors.Is(err, channel.ErrUnknownChannel))
}

func TestRunExtendedCpPdcch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bw = 1
	cfg.CpType = "extended"
	cfg.Cfi = 3
	cfg.NumFrames = intPtr(1)
	r, err := New(cfg)
	require.NoError(t, err)
	r.SetVisualizer(visualize.NewNopVisualizer())

	opts := DefaultOptions()
	opts.Channels = []string{"PDCCH", "PSS", "SSS", "CRS"}
	res, err := r.Run(opts)
	require.NoError(t, err)
	assert.Len(t, res.Allocated, 5)
	g, err := r.Grid()
	require.NoError(t, err)
	assert.Zero(t, g.OverlapMask().Count())
}
