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

package visualize_statslog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	. "github.com/ltesim/ltegrid/visualize"
)

const statsSuffix = "_stats.csv"

type statslogVisualizer struct {
	logFile     *os.File
	logFileName string
}

// frameStats counts occupied resource elements of one frame.
type frameStats struct {
	frame     int
	occupied  []int // per column of the log
	available int
}

// NewStatslogVisualizer creates a new Visualizer that writes per-frame occupancy counts to a CSV
// file next to the plot path, instead of drawing.
func NewStatslogVisualizer() Visualizer {
	return &statslogVisualizer{}
}

func (sv *statslogVisualizer) PlotMask(mask grid.Mask, style PlotStyle) error {
	rows, cols := mask.Shape()
	if rows == 0 || !mask.HasShape(rows, cols) {
		return errors.Wrapf(grid.ErrShapeMismatch, "cannot log mask of shape (%d, %d)", rows, cols)
	}
	// a bare mask carries no frame structure, the whole mask is logged as frame 0
	stats := frameStats{occupied: []int{mask.Count()}}
	stats.available = rows*cols - stats.occupied[0]
	return sv.writeLog(style, []string{"occupied"}, []frameStats{stats})
}

func (sv *statslogVisualizer) PlotAllocationMap(g *grid.ResourceGrid, order []string, colors ColorMap, style PlotStyle) error {
	dims := g.Dims()
	perFrame := dims.NumSymbolsPerFrame()
	stats := make([]frameStats, dims.NumFrames)
	for f := range stats {
		stats[f] = frameStats{frame: f, occupied: make([]int, len(order))}
	}
	for i, name := range order {
		mask, err := g.GetMask(name)
		if err != nil {
			return err
		}
		for _, p := range mask.Positions() {
			stats[p.Symbol/perFrame].occupied[i]++
		}
	}
	for _, p := range g.AvailableMask().Positions() {
		stats[p.Symbol/perFrame].available++
	}
	return sv.writeLog(style, order, stats)
}

func (sv *statslogVisualizer) writeLog(style PlotStyle, columns []string, stats []frameStats) error {
	sv.logFileName = getStatsLogFileName(style.SavePath)
	if err := sv.createLogFile(); err != nil {
		return err
	}
	defer sv.close()

	if err := sv.writeLogFileHeader(columns); err != nil {
		return err
	}
	for _, s := range stats {
		if err := sv.writeLogEntry(s); err != nil {
			return err
		}
	}
	logger.Debugf("stats log %s written: %d frames", sv.logFileName, len(stats))
	return nil
}

func (sv *statslogVisualizer) createLogFile() error {
	logger.AssertNil(sv.logFile)

	if err := os.MkdirAll(filepath.Dir(sv.logFileName), 0755); err != nil {
		return errors.WithStack(err)
	}
	var err error
	sv.logFile, err = os.OpenFile(sv.logFileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0664)
	if err != nil {
		return errors.Wrapf(err, "creating stats log file %s failed", sv.logFileName)
	}
	return nil
}

func (sv *statslogVisualizer) writeLogFileHeader(columns []string) error {
	// RFC 4180 CSV file: no leading or trailing spaces in header field names
	header := "frame," + strings.Join(columns, ",") + ",available"
	return sv.writeToLogFile(header)
}

func (sv *statslogVisualizer) writeLogEntry(stats frameStats) error {
	fields := make([]string, 0, len(stats.occupied)+2)
	fields = append(fields, fmt.Sprintf("%d", stats.frame))
	for _, n := range stats.occupied {
		fields = append(fields, fmt.Sprintf("%d", n))
	}
	fields = append(fields, fmt.Sprintf("%d", stats.available))
	return sv.writeToLogFile(strings.Join(fields, ","))
}

func (sv *statslogVisualizer) writeToLogFile(line string) error {
	_, err := sv.logFile.WriteString(line + "\n")
	if err != nil {
		return errors.Wrapf(err, "couldn't write to stats log file (%s)", sv.logFileName)
	}
	return nil
}

func (sv *statslogVisualizer) close() {
	if sv.logFile != nil {
		_ = sv.logFile.Close()
		sv.logFile = nil
	}
}

// getStatsLogFileName derives the log file from a plot path: grid.svg becomes grid_stats.csv.
func getStatsLogFileName(plotPath string) string {
	if plotPath == "" {
		plotPath = "grid"
	}
	return strings.TrimSuffix(plotPath, filepath.Ext(plotPath)) + statsSuffix
}
