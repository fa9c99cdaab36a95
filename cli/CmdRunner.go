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

// Package cli implements the LTEGRID command shell. It parses and executes shell commands against
// the grid of a run.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ltesim/ltegrid/export"
	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/progctx"
	"github.com/ltesim/ltegrid/runner"
	"github.com/ltesim/ltegrid/types"
	"github.com/ltesim/ltegrid/visualize"
)

const (
	Prompt = "ltegrid> "

	defaultCombinedCsvName = "grid_combined.csv"
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// gridInfo is the output of the grid command.
type gridInfo struct {
	Dimensions       grid.Dimensions `yaml:"dimensions"`
	Subcarriers      int             `yaml:"subcarriers"`
	Symbols          int             `yaml:"symbols"`
	ResourceElements int             `yaml:"resourceElements"`
	Channels         []string        `yaml:"channels"`
}

type CmdRunner struct {
	runner *runner.Runner
	ctx    *progctx.ProgCtx
	opts   *runner.Options
	help   Help
}

// NewCmdRunner creates the shell backend. opts supplies output directory, plot format and colors.
func NewCmdRunner(ctx *progctx.ProgCtx, r *runner.Runner, opts *runner.Options) *CmdRunner {
	if opts == nil {
		opts = runner.DefaultOptions()
	}
	return &CmdRunner{
		runner: r,
		ctx:    ctx,
		opts:   opts,
		help:   newHelp(),
	}
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}

		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) CommandNames() []string {
	return rt.help.commandNames()
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
		return
	}
	if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
		return
	}
	if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
		return
	}
	if cmd.Reset != nil {
		rt.runner.Reset()
		return
	}

	g, err := rt.runner.Grid()
	if err != nil {
		cc.error(err)
		return
	}

	if cmd.Grid != nil {
		rt.executeGrid(cc, g)
	} else if cmd.Alloc != nil {
		rt.executeAlloc(cc, cmd.Alloc)
	} else if cmd.Channels != nil {
		rt.executeChannels(cc, g)
	} else if cmd.Sc != nil {
		rt.executeSc(cc, g, cmd.Sc)
	} else if cmd.Rb != nil {
		rt.executeRb(cc, g, cmd.Rb)
	} else if cmd.Sym != nil {
		rt.executeSym(cc, g, cmd.Sym)
	} else if cmd.Locate != nil {
		rt.executeLocate(cc, g, cmd.Locate)
	} else if cmd.Range != nil {
		rt.executeRange(cc, g, cmd.Range)
	} else if cmd.Re != nil {
		rt.executeRe(cc, g, cmd.Re)
	} else if cmd.Export != nil {
		rt.executeExport(cc, g, cmd.Export)
	} else if cmd.Plot != nil {
		rt.executePlot(cc, g, cmd.Plot)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	rt.ctx.Cancel("exit")
}

func (rt *CmdRunner) executeGrid(cc *CommandContext, g *grid.ResourceGrid) {
	dims := g.Dims()
	rows, cols := g.Shape()
	cc.outputItemsAsYaml(gridInfo{
		Dimensions:       dims,
		Subcarriers:      rows,
		Symbols:          cols,
		ResourceElements: dims.NumResourceElements(),
		Channels:         g.Channels(),
	})
}

func (rt *CmdRunner) executeAlloc(cc *CommandContext, cmd *AllocCmd) {
	names := channelNames(cmd.Channels)
	if cmd.All != nil {
		names = types.KnownChannels
	}
	allocated, err := rt.runner.Allocate(names)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%s\n", strings.Join(allocated, " "))
}

func (rt *CmdRunner) executeChannels(cc *CommandContext, g *grid.ResourceGrid) {
	for _, name := range g.Channels() {
		mask, err := g.GetMask(name)
		if err != nil {
			cc.error(err)
			return
		}
		cc.outputf("%-8s %d\n", name, mask.Count())
	}
	overlap := g.OverlapMask().Count()
	if overlap > 0 {
		cc.outputf("overlap  %d\n", overlap)
	}
	cc.outputf("%-8s %d\n", types.AvailableLabel, g.AvailableMask().Count())
}

func (rt *CmdRunner) executeSc(cc *CommandContext, g *grid.ResourceGrid, cmd *ScCmd) {
	k, err := g.SubcarrierIndex(cmd.Rb, cmd.ScInRb)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%d\n", k)
}

func (rt *CmdRunner) executeRb(cc *CommandContext, g *grid.ResourceGrid, cmd *RbCmd) {
	rb, sc, err := g.RbScFromSubcarrier(cmd.Subcarrier)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("rb %d sc %d\n", rb, sc)
}

func (rt *CmdRunner) executeSym(cc *CommandContext, g *grid.ResourceGrid, cmd *SymCmd) {
	var l int
	var err error
	if cmd.Frame != nil {
		l, err = g.SymbolIndexFromFrame(cmd.Frame.Frame, cmd.Subframe, cmd.Slot, cmd.Symbol)
	} else {
		l, err = g.SymbolIndex(cmd.Subframe, cmd.Slot, cmd.Symbol)
	}
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("%d\n", l)
}

func (rt *CmdRunner) executeLocate(cc *CommandContext, g *grid.ResourceGrid, cmd *LocateCmd) {
	loc, err := g.Locate(cmd.Symbol)
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("frame %d subframe %d slot %d symbol %d\n", loc.Frame, loc.Subframe, loc.Slot, loc.Symbol)
}

func (rt *CmdRunner) executeRange(cc *CommandContext, g *grid.ResourceGrid, cmd *RangeCmd) {
	var r grid.SymbolRange
	var err error
	switch {
	case cmd.Frame != nil:
		r, err = g.SymbolRangeForFrame(*cmd.Frame)
	case cmd.Slot != nil:
		r, err = g.SymbolRangeForSlot(*cmd.Subframe, *cmd.Slot)
	default:
		r, err = g.SymbolRangeForSubframe(*cmd.Subframe)
	}
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("[%d, %d)\n", r.Start, r.End)
}

func (rt *CmdRunner) executeRe(cc *CommandContext, g *grid.ResourceGrid, cmd *ReCmd) {
	occupants, err := g.Occupants(cmd.Subcarrier, cmd.Symbol)
	if err != nil {
		cc.error(err)
		return
	}
	if len(occupants) == 0 {
		cc.outputf("%s\n", types.AvailableLabel)
		return
	}
	cc.outputf("%s\n", strings.Join(getUniqueAndSorted(occupants), " "))
}

func (rt *CmdRunner) outputPath(given, defaultName string) string {
	if given != "" {
		return given
	}
	return filepath.Join(rt.opts.OutputDir, defaultName)
}

func (rt *CmdRunner) executeExport(cc *CommandContext, g *grid.ResourceGrid, cmd *ExportCmd) {
	path := optionalPath(cmd.Path)
	var err error
	switch cmd.What {
	case "available":
		path, err = export.ExportAvailableCSV(g, rt.outputPath(path, export.DefaultAvailableCsvName))
	case "combined":
		path = rt.outputPath(path, defaultCombinedCsvName)
		err = export.ExportMaskCSV(path, g.CombinedMask())
	case "alloc":
		order := channelNames(cmd.Channels)
		if order == nil {
			order = g.Channels()
		}
		path, err = export.ExportAllocationCSV(g, order, rt.outputPath(path, export.DefaultAllocatedCsvName))
	case "kpi":
		path = rt.outputPath(path, runner.DefaultKpiName)
		err = export.SaveKpiFile(export.CalculateKpi(g), path)
	case "metrics":
		path = rt.outputPath(path, runner.DefaultMetricsName)
		err = export.WriteMetricsTextfile(g, path)
	default:
		logger.Panicf("unknown export kind %s", cmd.What)
	}
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("written %s\n", path)
}

func (rt *CmdRunner) executePlot(cc *CommandContext, g *grid.ResourceGrid, cmd *PlotCmd) {
	style := visualize.DefaultPlotStyle("")
	style.Show = rt.opts.ShowPlot
	style.SavePath = rt.outputPath(optionalPath(cmd.Path), "grid_"+cmd.What+"."+visualize.DefaultFormat)
	v := rt.runner.Visualizer(rt.opts)
	names := channelNames(cmd.Channels)

	var err error
	switch cmd.What {
	case "available":
		err = visualize.PlotAvailable(v, g, style)
	case "combined":
		err = visualize.PlotCombined(v, g, style)
	case "alloc":
		err = visualize.PlotAllocation(v, g, names, rt.opts.AllocationColors, style)
	case "mask":
		err = visualize.PlotChannels(v, g, names, style)
	default:
		logger.Panicf("unknown plot kind %s", cmd.What)
	}
	if err != nil {
		cc.error(err)
		return
	}
	cc.outputf("written %s\n", style.SavePath)
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(logger.GetLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	logger.SetLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}
