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

package types

import "strings"

// Names of the physical channels and signals that can be allocated on the grid.
const (
	ChannelCRS   = "CRS"
	ChannelPSS   = "PSS"
	ChannelSSS   = "SSS"
	ChannelPBCH  = "PBCH"
	ChannelPDCCH = "PDCCH"

	// AvailableLabel marks resource elements no channel claims in allocation views.
	AvailableLabel = "Available"
)

// KnownChannels lists the channel names in their default allocation order.
var KnownChannels = []string{ChannelCRS, ChannelPSS, ChannelSSS, ChannelPBCH, ChannelPDCCH}

// NormalizeChannelName maps a case-insensitive channel name to its canonical form.
func NormalizeChannelName(name string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for _, known := range KnownChannels {
		if upper == known {
			return known, true
		}
	}
	return "", false
}

// ParseChannelList splits a comma separated channel list, e.g. "PBCH, PDCCH".
// Empty items are skipped; names are returned as given, trimmed.
func ParseChannelList(s string) []string {
	var names []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			names = append(names, item)
		}
	}
	return names
}
