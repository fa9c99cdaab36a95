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
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/simonlingoogle/go-simplelogger"

	"github.com/ltesim/ltegrid/cli"
	"github.com/ltesim/ltegrid/config"
	"github.com/ltesim/ltegrid/export"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/progctx"
	"github.com/ltesim/ltegrid/runner"
	"github.com/ltesim/ltegrid/types"
	"github.com/ltesim/ltegrid/visualize"
)

type MainArgs struct {
	ConfigPath       string
	NoPlot           bool
	SaveSvg          string
	Show             bool
	SaveCsv          bool
	SaveAllocatedCsv bool
	NoPbch           bool
	Channels         string
	PlotCombined     bool
	PlotAllocation   string
	AllocationColors string
	Html             bool
	StatsLog         bool
	Kpi              bool
	Metrics          bool
	OutputDir        string
	LogLevel         string
	Shell            bool
	Script           string
}

func parseArgs(name string, argv []string, output io.Writer) (*MainArgs, error) {
	args := &MainArgs{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&args.ConfigPath, "config", "", "path of the LTE DL config file (YAML or JSON); built-in defaults if empty")
	fs.BoolVar(&args.NoPlot, "no-plot", false, "disable plotting of available REs")
	fs.StringVar(&args.SaveSvg, "save-svg", "", "save plots to this path; the extension selects the format")
	fs.BoolVar(&args.Show, "show", false, "open saved plots in the default viewer")
	fs.BoolVar(&args.SaveCsv, "save-csv", false, "save the available grid mask to <output-dir>/"+export.DefaultAvailableCsvName)
	fs.BoolVar(&args.SaveAllocatedCsv, "save-allocated-csv", false, "save allocation labels to <output-dir>/"+export.DefaultAllocatedCsvName)
	fs.BoolVar(&args.NoPbch, "no-pbch", false, "disable PBCH allocation")
	fs.StringVar(&args.Channels, "channels", "", "comma separated channels to allocate (e.g. CRS,PSS,SSS,PDCCH); config list if empty")
	fs.BoolVar(&args.PlotCombined, "plot-combined", false, "plot the combined allocation mask")
	fs.StringVar(&args.PlotAllocation, "plot-allocation", "", "comma separated channel list for the allocation map (e.g. PBCH,PDCCH)")
	fs.StringVar(&args.AllocationColors, "allocation-colors", "", "comma separated name=color pairs (e.g. PBCH=tab:orange,PDCCH=tab:blue)")
	fs.BoolVar(&args.Html, "html", false, "also write interactive HTML charts next to the plots")
	fs.BoolVar(&args.StatsLog, "stats-log", false, "write per-frame occupancy counts next to every plot (<plot>_stats.csv)")
	fs.BoolVar(&args.Kpi, "kpi", false, "write the occupancy KPI file to <output-dir>/"+runner.DefaultKpiName)
	fs.BoolVar(&args.Metrics, "metrics", false, "write a Prometheus textfile to <output-dir>/"+runner.DefaultMetricsName)
	fs.StringVar(&args.OutputDir, "output-dir", export.DefaultOutputDir, "directory for generated files")
	fs.StringVar(&args.LogLevel, "log", "", "set logging level: trace, debug, info, warn, error; config logLevel if empty")
	fs.BoolVar(&args.Shell, "shell", false, "start the command shell on the grid after the run")
	fs.StringVar(&args.Script, "script", "", "execute shell commands from this file after the run")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return args, nil
}

// runOptions maps the command line onto run options.
func runOptions(args *MainArgs) (*runner.Options, error) {
	opts := runner.DefaultOptions()
	opts.PlotAvailable = !args.NoPlot
	opts.SavePlotPath = args.SaveSvg
	opts.ShowPlot = args.Show
	opts.SaveCsv = args.SaveCsv
	opts.SaveAllocatedCsv = args.SaveAllocatedCsv
	opts.AllocatePbch = !args.NoPbch
	opts.Channels = types.ParseChannelList(args.Channels)
	opts.PlotCombined = args.PlotCombined
	opts.PlotHtml = args.Html
	opts.StatsLog = args.StatsLog
	opts.Kpi = args.Kpi
	opts.Metrics = args.Metrics
	opts.OutputDir = args.OutputDir

	if channels := types.ParseChannelList(args.PlotAllocation); len(channels) > 0 {
		opts.PlotAllocationMap = true
		opts.AllocationChannels = channels
	}
	if args.AllocationColors != "" {
		colors, err := visualize.ParseColorMap(args.AllocationColors)
		if err != nil {
			return nil, err
		}
		opts.AllocationColors = colors
	}
	return opts, nil
}

func loadRunner(args *MainArgs) (*runner.Runner, error) {
	if args.ConfigPath == "" {
		return runner.New(config.DefaultConfig())
	}
	return runner.FromFile(args.ConfigPath)
}

func setLogLevel(levels ...string) error {
	for _, s := range levels {
		if s == "" {
			continue
		}
		level, err := logger.ParseLevelString(s)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		simplelogger.SetLevel(simplelogger.ParseLevel(plumbingLevel(level)))
		return nil
	}
	return nil
}

// plumbingLevel maps a level onto the names the program context logger knows.
func plumbingLevel(level logger.Level) string {
	switch {
	case level >= logger.DebugLevel:
		return "debug"
	case level <= logger.ErrorLevel:
		return "error"
	default:
		return logger.GetLevelString(level)
	}
}

// Main runs the program with the given command line (without the program name).
func Main(ctx *progctx.ProgCtx, argv []string, cliOptions *cli.CliOptions) error {
	args, err := parseArgs("ltegrid", argv, os.Stderr)
	if err != nil {
		return err
	}
	if err = setLogLevel(args.LogLevel); err != nil {
		return err
	}

	ctx.HandleSignals()
	defer ctx.Wait()
	defer ctx.Cancel(nil)

	r, err := loadRunner(args)
	if err != nil {
		return err
	}
	if err = setLogLevel(args.LogLevel, r.Config().LogLevel); err != nil {
		return err
	}
	opts, err := runOptions(args)
	if err != nil {
		return err
	}

	res, err := r.Run(opts)
	if err != nil {
		return err
	}
	report(os.Stdout, r, res)

	rt := cli.NewCmdRunner(ctx, r, opts)
	if args.Script != "" {
		if err = runScript(rt, args.Script); err != nil {
			return err
		}
	}
	if args.Shell && ctx.Err() == nil {
		// closing stdin unblocks the shell when a signal cancels the program
		ctx.Defer(func() {
			_ = os.Stdin.Close()
		})
		err = cli.Cli.Run(rt, cliOptions)
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrapf(err, "console exit")
	}
	return nil
}

func runScript(rt *cli.CmdRunner, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err = cli.RunScript(rt, f, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func report(w io.Writer, r *runner.Runner, res *runner.Result) {
	g, err := r.Grid()
	logger.PanicIfError(err)
	dims := g.Dims()
	_, _ = fmt.Fprintf(w, "grid %s: %d subcarriers x %d symbols\n", dims, dims.NumSubcarriers(), dims.NumSymbolsTotal())
	if len(res.Allocated) > 0 {
		_, _ = fmt.Fprintf(w, "allocated: %s\n", strings.Join(res.Allocated, ", "))
	}
	for _, f := range res.Files {
		_, _ = fmt.Fprintf(w, "written: %s\n", f)
	}
}
