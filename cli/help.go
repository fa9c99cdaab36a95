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

package cli

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"

	"github.com/ltesim/ltegrid/logger"
)

// README.md holds one "### <command>" section per shell command.
//
//go:embed README.md
var cliHelpFile string

const (
	defaultTermWidth = 80
	helpIndent       = "  "
)

// commandHelp is the rendered help of a single shell command.
type commandHelp struct {
	short string
	lines []string
}

type Help struct {
	termWidth uint
	commands  map[string]*commandHelp
}

func newHelp() Help {
	h := Help{
		termWidth: defaultTermWidth,
		commands:  parseHelpFile(cliHelpFile),
	}
	h.update()
	return h
}

// update follows the width of the terminal, if any.
func (help *Help) update() {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, _, err := term.GetSize(fd)
		logger.PanicIfError(err, "Could not get terminal size.")
		help.termWidth = uint(width)
	}
}

func (help *Help) outputGeneralHelp() string {
	var sb strings.Builder
	for _, c := range help.commandNames() {
		fmt.Fprintf(&sb, "%-10s %s\n", c, help.commands[c].short)
	}
	sb.WriteString(wordwrap.WrapString("\nFor detailed help per command, use: 'help <command>'\n", help.termWidth))
	sb.WriteString(wordwrap.WrapString("\nCoordinates: subcarrier k counts from the lowest frequency, "+
		"symbol l counts from the first symbol of frame 0. Channel names are case-insensitive.\n",
		help.termWidth))
	return sb.String()
}

func (help *Help) commandNames() []string {
	cmds := make([]string, 0, len(help.commands))
	for k := range help.commands {
		cmds = append(cmds, k)
	}
	sort.Strings(cmds)
	return cmds
}

func (help *Help) outputCommandHelp(command string) string {
	help.update()
	ch, ok := help.commands[command]
	if !ok {
		return command + "\n" + helpIndent + "(Non-existent command.)\n"
	}
	width := help.termWidth - uint(len(helpIndent))
	var sb strings.Builder
	sb.WriteString(command + "\n")
	for _, line := range ch.lines {
		for _, wrapped := range strings.Split(wordwrap.WrapString(line, width), "\n") {
			sb.WriteString(helpIndent + wrapped + "\n")
		}
	}
	return sb.String()
}

// parseHelpFile splits the reference into command sections. Fenced "shell" blocks are
// shown as the command definition and "bash" blocks as an example session.
func parseHelpFile(md string) map[string]*commandHelp {
	commands := make(map[string]*commandHelp)
	var active *commandHelp
	inFence := false
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.HasPrefix(line, "### ") {
			active = &commandHelp{}
			commands[strings.TrimSpace(line[4:])] = active
			inFence = false
			continue
		}
		if active == nil || strings.HasPrefix(line, "## ") {
			active = nil
			continue
		}
		switch line {
		case "```shell":
			active.lines = append(active.lines, "", "Definition:")
			inFence = true
			continue
		case "```bash":
			active.lines = append(active.lines, "", "Example:")
			inFence = true
			continue
		case "```":
			inFence = false
			continue
		}
		if inFence {
			active.lines = append(active.lines, helpIndent+line)
			continue
		}
		if line == "" {
			continue
		}
		text := strings.ReplaceAll(line, "`", "")
		if active.short == "" {
			active.short = text
			if idx := strings.Index(text, "."); idx > 0 {
				active.short = text[:idx+1]
			}
		}
		active.lines = append(active.lines, text)
	}
	return commands
}
