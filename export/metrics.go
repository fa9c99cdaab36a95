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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
)

// OccupancyCollector holds the gauges describing grid occupancy.
type OccupancyCollector struct {
	gatherer prometheus.Gatherer

	ChannelResourceElements *prometheus.GaugeVec
	AvailableElements       prometheus.Gauge
	OverlapElements         prometheus.Gauge
	GridElements            prometheus.Gauge
}

// NewOccupancyCollector registers the occupancy gauges on reg, or on a fresh registry when nil.
func NewOccupancyCollector(reg *prometheus.Registry) (*OccupancyCollector, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	channels := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ltegrid_channel_resource_elements",
		Help: "Number of resource elements allocated to a channel.",
	}, []string{"channel"})
	if err := registerCollector(reg, channels, "ltegrid_channel_resource_elements"); err != nil {
		return nil, err
	}
	available := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ltegrid_available_resource_elements",
		Help: "Number of resource elements not claimed by any channel.",
	})
	if err := registerCollector(reg, available, "ltegrid_available_resource_elements"); err != nil {
		return nil, err
	}
	overlap := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ltegrid_overlap_resource_elements",
		Help: "Number of resource elements claimed by more than one channel.",
	})
	if err := registerCollector(reg, overlap, "ltegrid_overlap_resource_elements"); err != nil {
		return nil, err
	}
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ltegrid_grid_resource_elements",
		Help: "Total number of resource elements of the grid.",
	})
	if err := registerCollector(reg, total, "ltegrid_grid_resource_elements"); err != nil {
		return nil, err
	}

	return &OccupancyCollector{
		gatherer:                reg,
		ChannelResourceElements: channels,
		AvailableElements:       available,
		OverlapElements:         overlap,
		GridElements:            total,
	}, nil
}

// Observe sets all gauges from the current state of g.
func (c *OccupancyCollector) Observe(g *grid.ResourceGrid) {
	c.ChannelResourceElements.Reset()
	for _, name := range g.Channels() {
		mask, err := g.GetMask(name)
		logger.PanicIfError(err)
		c.ChannelResourceElements.WithLabelValues(name).Set(float64(mask.Count()))
	}
	c.AvailableElements.Set(float64(g.AvailableMask().Count()))
	c.OverlapElements.Set(float64(g.OverlapMask().Count()))
	c.GridElements.Set(float64(g.Dims().NumResourceElements()))
}

// WriteTextfile writes the gathered metrics in the text exposition format, as read by the
// node exporter textfile collector.
func (c *OccupancyCollector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), outputDirPerm); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	logger.Infof("written %s", path)
	return nil
}

// WriteMetricsTextfile observes g on a fresh registry and writes it to path.
func WriteMetricsTextfile(g *grid.ResourceGrid, path string) error {
	c, err := NewOccupancyCollector(nil)
	if err != nil {
		return err
	}
	c.Observe(g)
	return c.WriteTextfile(path)
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector, name string) error {
	if err := reg.Register(c); err != nil {
		return errors.Wrapf(err, "register collector %s", name)
	}
	return nil
}
