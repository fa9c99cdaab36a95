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

// Package export writes grid occupancy to CSV, KPI JSON and Prometheus textfiles.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/types"
)

const (
	DefaultOutputDir        = "data_output"
	DefaultAvailableCsvName = "grid_available.csv"
	DefaultAllocatedCsvName = "grid_allocated.csv"
	subcarrierIndexColumn   = "subcarrier_index"
	symbolColumnPrefix      = "sym_"
	outputDirPerm           = 0755
)

func csvHeader(numSymbols int) []string {
	header := make([]string, 0, numSymbols+1)
	header = append(header, subcarrierIndexColumn)
	for l := 0; l < numSymbols; l++ {
		header = append(header, symbolColumnPrefix+strconv.Itoa(l))
	}
	return header
}

// WriteMaskCSV writes one row per subcarrier with 0/1 per symbol. Ragged masks are rejected.
func WriteMaskCSV(w io.Writer, mask grid.Mask) error {
	_, numSymbols := mask.Shape()
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(numSymbols)); err != nil {
		return err
	}
	row := make([]string, numSymbols+1)
	for k, values := range mask {
		if len(values) != numSymbols {
			return errors.Wrapf(grid.ErrShapeMismatch, "row %d has %d symbols, expected %d", k, len(values), numSymbols)
		}
		row[0] = strconv.Itoa(k)
		for l, v := range values {
			if v {
				row[l+1] = "1"
			} else {
				row[l+1] = "0"
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportMaskCSV writes mask to path, creating parent directories.
func ExportMaskCSV(path string, mask grid.Mask) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMaskCSV(w, mask)
	})
}

// ExportAvailableCSV writes the available mask of g. An empty path selects the default location.
func ExportAvailableCSV(g *grid.ResourceGrid, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultOutputDir, DefaultAvailableCsvName)
	}
	return path, ExportMaskCSV(path, g.AvailableMask())
}

// AllocationLabels labels every resource element with the channel occupying it. Channels are
// applied in order, so later channels overwrite earlier ones; unclaimed elements stay Available.
func AllocationLabels(g *grid.ResourceGrid, order []string) ([][]string, error) {
	rows, cols := g.Shape()
	labels := make([][]string, rows)
	for k := range labels {
		labels[k] = make([]string, cols)
		for l := range labels[k] {
			labels[k][l] = types.AvailableLabel
		}
	}
	for _, name := range order {
		mask, err := g.GetMask(name)
		if err != nil {
			return nil, err
		}
		for k, row := range mask {
			for l, v := range row {
				if v {
					labels[k][l] = name
				}
			}
		}
	}
	return labels, nil
}

// WriteAllocationCSV writes a label grid with the same layout as WriteMaskCSV.
func WriteAllocationCSV(w io.Writer, labels [][]string) error {
	numSymbols := 0
	if len(labels) > 0 {
		numSymbols = len(labels[0])
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(numSymbols)); err != nil {
		return err
	}
	for k, row := range labels {
		if len(row) != numSymbols {
			return errors.Wrapf(grid.ErrShapeMismatch, "row %d has %d symbols, expected %d", k, len(row), numSymbols)
		}
		if err := cw.Write(append([]string{strconv.Itoa(k)}, row...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAllocationCSV writes the allocation view of the given channels. An empty path selects
// the default location.
func ExportAllocationCSV(g *grid.ResourceGrid, order []string, path string) (string, error) {
	if path == "" {
		path = filepath.Join(DefaultOutputDir, DefaultAllocatedCsvName)
	}
	labels, err := AllocationLabels(g, order)
	if err != nil {
		return "", err
	}
	return path, writeFile(path, func(w io.Writer) error {
		return WriteAllocationCSV(w, labels)
	})
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), outputDirPerm); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err = write(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.Infof("written %s", path)
	return nil
}
