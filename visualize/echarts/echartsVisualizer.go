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

// Package visualize_echarts renders grid views as interactive HTML scatter charts with go-echarts.
package visualize_echarts

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/visualize"
)

// DefaultMaxPoints bounds the number of points in one chart.
const DefaultMaxPoints = 20000

type echartsVisualizer struct {
	maxPoints int
}

// NewEchartsVisualizer creates a Visualizer writing HTML charts. Series beyond maxPoints are stride
// downsampled; maxPoints <= 0 selects DefaultMaxPoints.
func NewEchartsVisualizer(maxPoints int) visualize.Visualizer {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &echartsVisualizer{maxPoints: maxPoints}
}

func (ev *echartsVisualizer) PlotMask(mask grid.Mask, style visualize.PlotStyle) error {
	rows, cols := mask.Shape()
	if rows == 0 || !mask.HasShape(rows, cols) {
		return errors.Wrapf(grid.ErrShapeMismatch, "cannot plot mask of shape (%d, %d)", rows, cols)
	}
	positions := mask.Positions()
	stride := ev.stride(len(positions))
	scatter := ev.newChart(style, rows, cols, fmt.Sprintf("occupied=%d stride=%d", len(positions), stride))
	scatter.AddSeries("occupied", scatterData(positions, stride),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: visualize.Hex(visualize.OccupiedColor)}))
	return ev.render(scatter, style)
}

func (ev *echartsVisualizer) PlotAllocationMap(g *grid.ResourceGrid, order []string, colors visualize.ColorMap, style visualize.PlotStyle) error {
	rows, cols := g.Shape()
	series := make([][]grid.RePos, len(order))
	total := 0
	for i, name := range order {
		mask, err := g.GetMask(name)
		if err != nil {
			return err
		}
		series[i] = mask.Positions()
		total += len(series[i])
	}

	stride := ev.stride(total)
	scatter := ev.newChart(style, rows, cols, fmt.Sprintf("channels=%d occupied=%d stride=%d", len(order), total, stride))
	for i, name := range order {
		scatter.AddSeries(name, scatterData(series[i], stride),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 3}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: visualize.Hex(colors.ColorFor(name))}))
	}
	return ev.render(scatter, style)
}

func (ev *echartsVisualizer) stride(n int) int {
	if n <= ev.maxPoints {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(ev.maxPoints)))
}

func scatterData(positions []grid.RePos, stride int) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(positions)/stride+1)
	for i := 0; i < len(positions); i += stride {
		p := positions[i]
		data = append(data, opts.ScatterData{Value: []interface{}{p.Symbol, p.Subcarrier}})
	}
	return data
}

func (ev *echartsVisualizer) newChart(style visualize.PlotStyle, rows, cols int, subtitle string) *charts.Scatter {
	w, h := style.Size()
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: style.Title,
			Width:     fmt.Sprintf("%dpx", int(w*96)),
			Height:    fmt.Sprintf("%dpx", int(h*96)),
		}),
		charts.WithTitleOpts(opts.Title{Title: style.Title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: cols, Name: "Symbol Index", NameLocation: "middle", NameGap: 25,
			SplitLine: &opts.SplitLine{Show: opts.Bool(style.ShowGrid)}}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: rows, Name: "Subcarrier Index", NameLocation: "middle", NameGap: 40,
			SplitLine: &opts.SplitLine{Show: opts.Bool(style.ShowGrid)}}),
	)
	return scatter
}

func (ev *echartsVisualizer) render(scatter *charts.Scatter, style visualize.PlotStyle) error {
	if f := style.OutputFormat(); f != "html" && f != "htm" {
		return errors.Errorf("unsupported chart format %q", f)
	}
	style, err := style.Destination()
	if err != nil {
		return err
	}
	f, err := os.Create(style.SavePath)
	if err != nil {
		return errors.WithStack(err)
	}
	if err = scatter.Render(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "render %s", style.SavePath)
	}
	if err = f.Close(); err != nil {
		return errors.WithStack(err)
	}
	logger.Infof("chart saved to %s", style.SavePath)
	return visualize.Finish(style)
}
