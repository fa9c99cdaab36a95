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

// Package types holds the LTE constants and enumerations shared by all packages.
package types

import (
	"strings"

	"github.com/pkg/errors"
)

// Fixed LTE frame structure (TS 36.211 section 4.1).
const (
	SubcarriersPerRb  = 12
	SlotsPerSubframe  = 2
	SubframesPerFrame = 10
	FrameDurationMs   = 10

	SymbolsPerSlotNormalCp   = 7
	SymbolsPerSlotExtendedCp = 6

	MaxCellId = 503
)

const (
	DefaultBandwidthMhz    = 20
	DefaultCfi             = 2
	DefaultNumCellRefPorts = 1
)

var (
	ErrInvalidCpType = errors.New("invalid cyclic prefix type")
	ErrInvalidDuplex = errors.New("invalid duplex mode")
)

// CyclicPrefix is the cyclic prefix type of the carrier.
type CyclicPrefix string

const (
	CpNormal   CyclicPrefix = "normal"
	CpExtended CyclicPrefix = "extended"
)

// ParseCyclicPrefix parses a cyclic prefix name, ignoring case.
func ParseCyclicPrefix(s string) (CyclicPrefix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CpNormal):
		return CpNormal, nil
	case string(CpExtended):
		return CpExtended, nil
	default:
		return "", errors.Wrapf(ErrInvalidCpType, "%q (expected normal or extended)", s)
	}
}

// SymbolsPerSlot returns the number of OFDM symbols in one slot for this cyclic prefix.
func (cp CyclicPrefix) SymbolsPerSlot() int {
	if cp == CpExtended {
		return SymbolsPerSlotExtendedCp
	}
	return SymbolsPerSlotNormalCp
}

func (cp CyclicPrefix) String() string {
	return string(cp)
}

// Duplex is the transmission duplex mode.
type Duplex string

const (
	FDD Duplex = "FDD"
	TDD Duplex = "TDD"
)

// ParseDuplex parses a duplex mode name, ignoring case.
func ParseDuplex(s string) (Duplex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(FDD):
		return FDD, nil
	case string(TDD):
		return TDD, nil
	default:
		return "", errors.Wrapf(ErrInvalidDuplex, "%q (expected FDD or TDD)", s)
	}
}

func (d Duplex) String() string {
	return string(d)
}
