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

package ltegrid_main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/progctx"
	"github.com/ltesim/ltegrid/runner"
	"github.com/ltesim/ltegrid/types"
	"github.com/ltesim/ltegrid/visualize"
)

func TestParseArgsDefaults(t *testing.T) {
	args, err := parseArgs("ltegrid", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "data_output", args.OutputDir)
	assert.False(t, args.NoPlot)
	assert.False(t, args.Show)
	assert.False(t, args.Shell)

	opts, err := runOptions(args)
	require.NoError(t, err)
	assert.Equal(t, runner.DefaultOptions(), opts)
}

func TestParseArgs(t *testing.T) {
	args, err := parseArgs("ltegrid", []string{
		"-config", "lte.yaml", "-no-plot", "-save-svg", "out/g.svg", "-show", "-save-csv",
		"-save-allocated-csv", "-no-pbch", "-channels", "crs, pdcch", "-plot-combined",
		"-plot-allocation", "PBCH,PDCCH", "-allocation-colors", "PBCH=tab:orange,PDCCH=#00ff00",
		"-html", "-stats-log", "-kpi", "-metrics", "-output-dir", "o", "-log", "debug", "-shell",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "lte.yaml", args.ConfigPath)
	assert.True(t, args.Shell)

	opts, err := runOptions(args)
	require.NoError(t, err)
	assert.False(t, opts.PlotAvailable)
	assert.Equal(t, "out/g.svg", opts.SavePlotPath)
	assert.True(t, opts.ShowPlot)
	assert.True(t, opts.SaveCsv)
	assert.True(t, opts.SaveAllocatedCsv)
	assert.False(t, opts.AllocatePbch)
	assert.Equal(t, []string{"crs", "pdcch"}, opts.Channels)
	assert.True(t, opts.PlotCombined)
	assert.True(t, opts.PlotAllocationMap)
	assert.Equal(t, []string{"PBCH", "PDCCH"}, opts.AllocationChannels)
	assert.Equal(t, visualize.ColorMap{"PBCH": "tab:orange", "PDCCH": "#00ff00"}, opts.AllocationColors)
	assert.True(t, opts.PlotHtml)
	assert.True(t, opts.StatsLog)
	assert.True(t, opts.Kpi)
	assert.True(t, opts.Metrics)
	assert.Equal(t, "o", opts.OutputDir)
}

func TestParseArgsErrors(t *testing.T) {
	_, err := parseArgs("ltegrid", []string{"-unknown"}, io.Discard)
	assert.Error(t, err)
	_, err = parseArgs("ltegrid", []string{"extra"}, io.Discard)
	assert.Error(t, err)

	args, err := parseArgs("ltegrid", []string{"-allocation-colors", "PBCH"}, io.Discard)
	require.NoError(t, err)
	_, err = runOptions(args)
	assert.Error(t, err)
}

func TestSetLogLevel(t *testing.T) {
	level := logger.GetLevel()
	defer logger.SetLevel(level)

	require.NoError(t, setLogLevel("", "info"))
	assert.Equal(t, logger.InfoLevel, logger.GetLevel())
	require.NoError(t, setLogLevel("error", "info"))
	assert.Equal(t, logger.ErrorLevel, logger.GetLevel())
	assert.Error(t, setLogLevel("loud"))

	assert.Equal(t, "debug", plumbingLevel(logger.TraceLevel))
	assert.Equal(t, "warn", plumbingLevel(logger.WarnLevel))
	assert.Equal(t, "error", plumbingLevel(logger.OffLevel))
}

func TestMainRun(t *testing.T) {
	level := logger.GetLevel()
	defer logger.SetLevel(level)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lte.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bw: 1\nnumFrames: 1\ncellId: 5\nlogLevel: error\n"), 0644))
	script := filepath.Join(dir, "cmds.txt")
	require.NoError(t, os.WriteFile(script, []byte("channels\nexit\n"), 0644))

	out := filepath.Join(dir, "out")
	ctx := progctx.New(context.Background())
	err := Main(ctx, []string{
		"-config", cfgPath, "-output-dir", out, "-save-csv", "-kpi",
		"-channels", "CRS", "-script", script,
	}, nil)
	require.NoError(t, err)
	assert.Error(t, ctx.Err())

	for _, name := range []string{"grid_available.csv", runner.DefaultKpiName, runner.DefaultPlotName} {
		assert.FileExists(t, filepath.Join(out, name))
	}
}

func TestReport(t *testing.T) {
	r, err := runner.New(nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	report(&buf, r, &runner.Result{Allocated: []string{types.ChannelPBCH}, Files: []string{"a.csv"}})
	assert.Contains(t, buf.String(), "1200 subcarriers x 140 symbols")
	assert.Contains(t, buf.String(), "allocated: PBCH")
	assert.Contains(t, buf.String(), "written: a.csv")
}
