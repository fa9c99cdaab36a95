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

// Package config loads the downlink run configuration and resolves grid dimensions from it.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ltesim/ltegrid/grid"
	"github.com/ltesim/ltegrid/logger"
	"github.com/ltesim/ltegrid/types"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// LteDlConfig is the downlink carrier configuration as read from a YAML or JSON file.
type LteDlConfig struct {
	Name                 string   `yaml:"name"`
	Rat                  string   `yaml:"rat" validate:"eq=LTE"`
	Direction            string   `yaml:"direction" validate:"eq=DL"`
	TransmissionDuplex   string   `yaml:"transmissionDuplex" validate:"duplex"`
	Bw                   int      `yaml:"bw" validate:"oneof=1 3 5 10 15 20"`
	CpType               string   `yaml:"cpType" validate:"cptype"`
	NumRb                *int     `yaml:"numRb,omitempty" validate:"omitempty,gt=0"`
	SubcarriersPerRb     int      `yaml:"subcarriersPerRb" validate:"gt=0"`
	NumSlotsPerSubframe  int      `yaml:"numSlotsPerSubframe" validate:"gt=0"`
	NumSubframesPerFrame int      `yaml:"numSubframesPerFrame" validate:"gt=0"`
	NumFrames            *int     `yaml:"numFrames,omitempty" validate:"omitempty,gte=1"`
	DurationMs           *int     `yaml:"durationMs,omitempty" validate:"omitempty,gt=0,framealigned"`
	Cfi                  int      `yaml:"cfi" validate:"gte=1,lte=3"`
	CellId               int      `yaml:"cellId" validate:"gte=0,lte=503"`
	NumCellRefPorts      int      `yaml:"numCellRefPorts" validate:"oneof=1 2 4"`
	Channels             []string `yaml:"channels" validate:"dive,channel"`
	LogLevel             string   `yaml:"logLevel,omitempty" validate:"omitempty,loglevel"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	logger.PanicIfError(configValidate.RegisterValidation("cptype", func(fl validator.FieldLevel) bool {
		_, err := types.ParseCyclicPrefix(fl.Field().String())
		return err == nil
	}))
	logger.PanicIfError(configValidate.RegisterValidation("duplex", func(fl validator.FieldLevel) bool {
		_, err := types.ParseDuplex(fl.Field().String())
		return err == nil
	}))
	logger.PanicIfError(configValidate.RegisterValidation("framealigned", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%types.FrameDurationMs == 0
	}))
	logger.PanicIfError(configValidate.RegisterValidation("channel", func(fl validator.FieldLevel) bool {
		_, ok := types.NormalizeChannelName(fl.Field().String())
		return ok
	}))
	logger.PanicIfError(configValidate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logger.ParseLevelString(fl.Field().String())
		return err == nil
	}))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *LteDlConfig {
	return &LteDlConfig{
		Name:                 "LTE_DL_default",
		Rat:                  "LTE",
		Direction:            "DL",
		TransmissionDuplex:   string(types.FDD),
		Bw:                   types.DefaultBandwidthMhz,
		CpType:               string(types.CpNormal),
		SubcarriersPerRb:     types.SubcarriersPerRb,
		NumSlotsPerSubframe:  types.SlotsPerSubframe,
		NumSubframesPerFrame: types.SubframesPerFrame,
		Cfi:                  types.DefaultCfi,
		CellId:               0,
		NumCellRefPorts:      types.DefaultNumCellRefPorts,
		Channels:             []string{types.ChannelPBCH},
		LogLevel:             logger.GetLevelString(logger.DefaultLevel),
	}
}

// Parse decodes YAML (or JSON) data on top of the defaults and validates the result.
func Parse(data []byte) (*LteDlConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "decode: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates a configuration file.
func Load(path string) (*LteDlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	logger.Debugf("config %s loaded: %s", path, cfg.Name)
	return cfg, nil
}

// Validate checks every field against its allowed values.
func (cfg *LteDlConfig) Validate() error {
	err := configValidate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.Wrap(ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s, got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", field, fe.Param(), fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s out of range, got %v", field, fe.Value())
	case "cptype":
		return fmt.Sprintf("%s must be normal or extended, got %q", field, fe.Value())
	case "duplex":
		return fmt.Sprintf("%s must be FDD or TDD, got %q", field, fe.Value())
	case "framealigned":
		return fmt.Sprintf("%s must be a multiple of %d, got %v", field, types.FrameDurationMs, fe.Value())
	case "channel":
		return fmt.Sprintf("%s: unknown channel %q", fe.Namespace(), fe.Value())
	case "loglevel":
		return fmt.Sprintf("%s: invalid log level %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// CyclicPrefix returns the parsed cyclic prefix. The config must be valid.
func (cfg *LteDlConfig) CyclicPrefix() types.CyclicPrefix {
	cp, err := types.ParseCyclicPrefix(cfg.CpType)
	logger.PanicIfError(err)
	return cp
}

// Duplex returns the parsed duplex mode. The config must be valid.
func (cfg *LteDlConfig) Duplex() types.Duplex {
	d, err := types.ParseDuplex(cfg.TransmissionDuplex)
	logger.PanicIfError(err)
	return d
}

// DimensionParams maps the configuration onto resolver input.
func (cfg *LteDlConfig) DimensionParams() DimensionParams {
	return DimensionParams{
		BandwidthMhz:         cfg.Bw,
		CpType:               cfg.CpType,
		NumRb:                cfg.NumRb,
		NumFrames:            cfg.NumFrames,
		DurationMs:           cfg.DurationMs,
		SubcarriersPerRb:     cfg.SubcarriersPerRb,
		NumSlotsPerSubframe:  cfg.NumSlotsPerSubframe,
		NumSubframesPerFrame: cfg.NumSubframesPerFrame,
	}
}

// GridDimensions resolves the grid dimensions of this configuration.
func (cfg *LteDlConfig) GridDimensions() (grid.Dimensions, error) {
	return ResolveDimensions(cfg.DimensionParams())
}
