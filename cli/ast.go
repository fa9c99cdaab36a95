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
	"github.com/alecthomas/participle"
)

// noinspection GoStructTag
type Command struct {
	Alloc    *AllocCmd    `  @@` //nolint
	Channels *ChannelsCmd `| @@` //nolint
	Exit     *ExitCmd     `| @@` //nolint
	Export   *ExportCmd   `| @@` //nolint
	Grid     *GridCmd     `| @@` //nolint
	Help     *HelpCmd     `| @@` //nolint
	Locate   *LocateCmd   `| @@` //nolint
	LogLevel *LogLevelCmd `| @@` //nolint
	Plot     *PlotCmd     `| @@` //nolint
	Range    *RangeCmd    `| @@` //nolint
	Rb       *RbCmd       `| @@` //nolint
	Re       *ReCmd       `| @@` //nolint
	Reset    *ResetCmd    `| @@` //nolint
	Sc       *ScCmd       `| @@` //nolint
	Sym      *SymCmd      `| @@` //nolint
}

// noinspection GoStructTag
type ChannelSelector struct {
	Name string `@Ident` //nolint
}

// noinspection GoStructTag
type GridCmd struct {
	Cmd struct{} `"grid"` //nolint
}

// noinspection GoStructTag
type AllocCmd struct {
	Cmd      struct{}          `"alloc"`     //nolint
	All      *AllFlag          `( @@`        //nolint
	Channels []ChannelSelector `| ( @@ )+ )` //nolint
}

// noinspection GoStructTag
type AllFlag struct {
	Dummy struct{} `"all"` //nolint
}

// noinspection GoStructTag
type ChannelsCmd struct {
	Cmd struct{} `"channels"` //nolint
}

// noinspection GoStructTag
type ResetCmd struct {
	Cmd struct{} `"reset"` //nolint
}

// noinspection GoStructTag
type ScCmd struct {
	Cmd    struct{} `"sc"` //nolint
	Rb     int      `@Int` //nolint
	ScInRb int      `@Int` //nolint
}

// noinspection GoStructTag
type RbCmd struct {
	Cmd        struct{} `"rb"` //nolint
	Subcarrier int      `@Int` //nolint
}

// noinspection GoStructTag
type FrameFlag struct {
	Frame int `"frame" @Int` //nolint
}

// noinspection GoStructTag
type SymCmd struct {
	Cmd      struct{}   `"sym"`  //nolint
	Frame    *FrameFlag `[ @@ ]` //nolint
	Subframe int        `@Int`   //nolint
	Slot     int        `@Int`   //nolint
	Symbol   int        `@Int`   //nolint
}

// noinspection GoStructTag
type LocateCmd struct {
	Cmd    struct{} `"locate"` //nolint
	Symbol int      `@Int`     //nolint
}

// noinspection GoStructTag
type RangeCmd struct {
	Cmd      struct{} `"range"`             //nolint
	Frame    *int     `( "frame" @Int`      //nolint
	Subframe *int     `| "subframe" @Int`   //nolint
	Slot     *int     `  [ "slot" @Int ] )` //nolint
}

// noinspection GoStructTag
type ReCmd struct {
	Cmd        struct{} `"re"` //nolint
	Subcarrier int      `@Int` //nolint
	Symbol     int      `@Int` //nolint
}

// noinspection GoStructTag
type ExportCmd struct {
	Cmd      struct{}          `"export"`                                                    //nolint
	What     string            `@( "available" | "combined" | "alloc" | "kpi" | "metrics" )` //nolint
	Channels []ChannelSelector `{ @@ }`                                                      //nolint
	Path     *string           `[ @String ]`                                                 //nolint
}

// noinspection GoStructTag
type PlotCmd struct {
	Cmd      struct{}          `"plot"`                                           //nolint
	What     string            `@( "available" | "combined" | "alloc" | "mask" )` //nolint
	Channels []ChannelSelector `{ @@ }`                                           //nolint
	Path     *string           `[ @String ]`                                      //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                         //nolint
	Level string   `[@( "trace"|"debug"|"info"|"warn"|"error"|"off"|"none"|"T"|"D"|"I"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	err := commandParser.ParseBytes(b, cmd)
	return err
}
