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

package visualize

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/types"
)

var ErrInvalidColor = errors.New("invalid color")

// DefaultChannelColor fills channels without a color assignment.
const DefaultChannelColor = "gray"

var (
	AvailableColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	OccupiedColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
)

// DefaultChannelColors is used when no explicit assignment exists for a channel.
var DefaultChannelColors = ColorMap{
	types.ChannelCRS:   "tab:red",
	types.ChannelPSS:   "tab:green",
	types.ChannelSSS:   "tab:purple",
	types.ChannelPBCH:  "tab:orange",
	types.ChannelPDCCH: "tab:blue",
}

var namedColors = map[string]color.RGBA{
	"tab:blue":   {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"tab:orange": {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"tab:green":  {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"tab:red":    {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"tab:purple": {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"tab:brown":  {R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	"tab:pink":   {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"tab:gray":   {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"tab:olive":  {R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"tab:cyan":   {R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},

	"white":   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"black":   {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"red":     {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"green":   {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"blue":    {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"yellow":  {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	"orange":  {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"purple":  {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"cyan":    {R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	"magenta": {R: 0xff, G: 0x00, B: 0xff, A: 0xff},
	"gray":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseColor accepts #rrggbb, #rgb or a named color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err == nil {
				return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
			}
		}
	}
	return color.RGBA{}, errors.Wrapf(ErrInvalidColor, "%q", s)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorMap assigns color strings to channel names.
type ColorMap map[string]string

// ParseColorMap parses "PBCH=tab:orange,PDCCH=#1f77b4". Every color is checked.
func ParseColorMap(s string) (ColorMap, error) {
	m := ColorMap{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, errors.Errorf("invalid color assignment %q, expected NAME=COLOR", item)
		}
		if _, err := ParseColor(value); err != nil {
			return nil, err
		}
		if canonical, known := types.NormalizeChannelName(name); known {
			name = canonical
		}
		m[name] = value
	}
	return m, nil
}

// ColorFor resolves the color of a channel: explicit entry, then DefaultChannelColors, then DefaultChannelColor.
func (m ColorMap) ColorFor(name string) color.RGBA {
	for _, src := range []ColorMap{m, DefaultChannelColors} {
		if s, ok := src[name]; ok {
			c, err := ParseColor(s)
			if err == nil {
				return c
			}
			logger.Warnf("channel %s: %v, using default", name, err)
		}
	}
	return namedColors[DefaultChannelColor]
}

// Names returns the mapped channel names sorted.
func (m ColorMap) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
