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
	"sort"
	"strconv"
	"strings"

	"github.com/ltesim/ltegrid/types"
)

// unquote strips the quotes the lexer may leave on a string token.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '`') {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
	}
	return s
}

func optionalPath(p *string) string {
	if p == nil {
		return ""
	}
	return unquote(*p)
}

// channelNames returns the selected channel names, canonical where the name is a known channel.
func channelNames(selectors []ChannelSelector) []string {
	if len(selectors) == 0 {
		return nil
	}
	names := make([]string, 0, len(selectors))
	for _, s := range selectors {
		name := s.Name
		if canonical, ok := types.NormalizeChannelName(name); ok {
			name = canonical
		}
		names = append(names, name)
	}
	return names
}

// getUniqueAndSorted returns the distinct names sorted.
func getUniqueAndSorted(input []string) []string {
	m := make(map[string]struct{}, len(input))
	for _, s := range input {
		m[strings.TrimSpace(s)] = struct{}{}
	}
	u := make([]string, 0, len(m))
	for s := range m {
		u = append(u, s)
	}
	sort.Strings(u)
	return u
}
