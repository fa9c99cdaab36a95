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

// Package visualize_gonum renders grid views as static figures (svg, png, pdf, ...) with gonum/plot.
package visualize_gonum

import (
	"image"
	"image/color"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/visualize"
)

const (
	xLabel = "Symbol Index"
	yLabel = "Subcarrier Index"
)

var supportedFormats = map[string]struct{}{
	"eps": {}, "jpg": {}, "jpeg": {}, "pdf": {}, "png": {}, "svg": {}, "tex": {}, "tif": {}, "tiff": {},
}

type gonumVisualizer struct {
	occupied  color.RGBA
	available color.RGBA
}

// NewGonumVisualizer creates a Visualizer producing static figures.
func NewGonumVisualizer() visualize.Visualizer {
	return &gonumVisualizer{
		occupied:  visualize.OccupiedColor,
		available: visualize.AvailableColor,
	}
}

func (gv *gonumVisualizer) PlotMask(mask grid.Mask, style visualize.PlotStyle) error {
	rows, cols := mask.Shape()
	if rows == 0 || cols == 0 || !mask.HasShape(rows, cols) {
		return errors.Wrapf(grid.ErrShapeMismatch, "cannot plot mask of shape (%d, %d)", rows, cols)
	}
	img := newRaster(rows, cols, gv.available)
	for k, row := range mask {
		for l, v := range row {
			if v {
				setCell(img, rows, k, l, gv.occupied)
			}
		}
	}
	p := newFigure(style, img, rows, cols)
	return save(p, style)
}

func (gv *gonumVisualizer) PlotAllocationMap(g *grid.ResourceGrid, order []string, colors visualize.ColorMap, style visualize.PlotStyle) error {
	rows, cols := g.Shape()
	img := newRaster(rows, cols, gv.available)
	var legend []legendEntry
	for _, name := range order {
		mask, err := g.GetMask(name)
		if err != nil {
			return err
		}
		c := colors.ColorFor(name)
		for k, row := range mask {
			for l, v := range row {
				if v {
					setCell(img, rows, k, l, c)
				}
			}
		}
		legend = append(legend, legendEntry{name: name, color: c})
	}
	legend = append(legend, legendEntry{name: "Available", color: gv.available})

	p := newFigure(style, img, rows, cols)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	for _, e := range legend {
		p.Legend.Add(e.name, swatch{fill: e.color})
	}
	return save(p, style)
}

func newRaster(rows, cols int, background color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = background.R
		img.Pix[i+1] = background.G
		img.Pix[i+2] = background.B
		img.Pix[i+3] = background.A
	}
	return img
}

// setCell paints resource element (k, l); subcarrier 0 is the bottom image row.
func setCell(img *image.RGBA, rows, k, l int, c color.RGBA) {
	img.SetRGBA(l, rows-1-k, c)
}

func newFigure(style visualize.PlotStyle, img image.Image, rows, cols int) *plot.Plot {
	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewImage(img, 0, 0, float64(cols), float64(rows)))
	if style.ShowGrid {
		p.Add(plotter.NewGrid())
	}
	return p
}

func save(p *plot.Plot, style visualize.PlotStyle) error {
	format := style.OutputFormat()
	if _, ok := supportedFormats[format]; !ok {
		return errors.Errorf("unsupported plot format %q", format)
	}
	style, err := style.Destination()
	if err != nil {
		return err
	}

	w, h := style.Size()
	wt, err := p.WriterTo(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, format)
	if err != nil {
		return errors.Wrapf(err, "render %s", style.SavePath)
	}
	f, err := os.Create(style.SavePath)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err = wt.WriteTo(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write %s", style.SavePath)
	}
	if err = f.Close(); err != nil {
		return errors.WithStack(err)
	}
	logger.Infof("plot saved to %s", style.SavePath)
	return visualize.Finish(style)
}

type legendEntry struct {
	name  string
	color color.RGBA
}

// swatch is a filled legend thumbnail.
type swatch struct {
	fill color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.fill, c.ClipPolygonY(pts))
	outline := draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)}
	c.StrokeLines(outline, append(pts, pts[0]))
}
