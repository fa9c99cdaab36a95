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

package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
)

type KpiGrid struct {
	NumSubcarriers   int `json:"subcarriers"`
	NumSymbols       int `json:"symbols"`
	NumFrames        int `json:"frames"`
	ResourceElements int `json:"resource_elements"`
}

type KpiChannel struct {
	ResourceElements int     `json:"resource_elements"`
	Percentage       float64 `json:"percent"`
	PerFrame         float64 `json:"per_frame"`
}

type KpiOccupancy struct {
	Combined            int     `json:"combined"`
	CombinedPercentage  float64 `json:"combined_percent"`
	Available           int     `json:"available"`
	AvailablePercentage float64 `json:"available_percent"`
	Overlap             int     `json:"overlap"`
}

// Kpi summarizes how the resource elements of a grid are used.
type Kpi struct {
	FileTime   string                `json:"created"`
	Status     string                `json:"status"`
	Dimensions grid.Dimensions       `json:"dimensions"`
	Grid       KpiGrid               `json:"grid"`
	Channels   map[string]KpiChannel `json:"channels"`
	Order      []string              `json:"order"`
	Occupancy  KpiOccupancy          `json:"occupancy"`
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 * float64(part) / float64(total)
}

// CalculateKpi computes occupancy figures for every registered channel.
func CalculateKpi(g *grid.ResourceGrid) *Kpi {
	dims := g.Dims()
	total := dims.NumResourceElements()
	kpi := &Kpi{
		Status:     "ok",
		Dimensions: dims,
		Grid: KpiGrid{
			NumSubcarriers:   dims.NumSubcarriers(),
			NumSymbols:       dims.NumSymbolsTotal(),
			NumFrames:        dims.NumFrames,
			ResourceElements: total,
		},
		Channels: map[string]KpiChannel{},
		Order:    g.Channels(),
	}
	for _, name := range kpi.Order {
		mask, err := g.GetMask(name)
		logger.PanicIfError(err)
		n := mask.Count()
		kpi.Channels[name] = KpiChannel{
			ResourceElements: n,
			Percentage:       percentage(n, total),
			PerFrame:         float64(n) / float64(dims.NumFrames),
		}
	}
	combined := g.CombinedMask().Count()
	kpi.Occupancy = KpiOccupancy{
		Combined:            combined,
		CombinedPercentage:  percentage(combined, total),
		Available:           total - combined,
		AvailablePercentage: percentage(total-combined, total),
		Overlap:             g.OverlapMask().Count(),
	}
	if kpi.Occupancy.Overlap > 0 {
		kpi.Status = "overlap"
	}
	return kpi
}

// SaveKpiFile writes the KPI as indented JSON.
func SaveKpiFile(kpi *Kpi, path string) error {
	kpi.FileTime = time.Now().Format(time.RFC3339)
	data, err := json.MarshalIndent(kpi, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal KPI")
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
