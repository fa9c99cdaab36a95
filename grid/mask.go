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

package grid

// Mask is a boolean occupancy map indexed [subcarrier][symbol].
type Mask [][]bool

// NewMask creates an all-false mask of the given shape.
func NewMask(numSubcarriers, numSymbols int) Mask {
	cells := make([]bool, numSubcarriers*numSymbols)
	m := make(Mask, numSubcarriers)
	for k := range m {
		m[k] = cells[k*numSymbols : (k+1)*numSymbols : (k+1)*numSymbols]
	}
	return m
}

// Shape returns the number of rows and the length of the first row.
func (m Mask) Shape() (int, int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// HasShape reports whether the mask is rectangular with exactly the given shape.
func (m Mask) HasShape(numSubcarriers, numSymbols int) bool {
	if len(m) != numSubcarriers {
		return false
	}
	for _, row := range m {
		if len(row) != numSymbols {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of m.
func (m Mask) Clone() Mask {
	rows, cols := m.Shape()
	c := NewMask(rows, cols)
	for k, row := range m {
		if len(row) != cols {
			c[k] = make([]bool, len(row))
		}
		copy(c[k], row)
	}
	return c
}

// Count returns the number of set elements.
func (m Mask) Count() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Equal reports whether both masks have the same shape and content.
func (m Mask) Equal(o Mask) bool {
	if len(m) != len(o) {
		return false
	}
	for k := range m {
		if len(m[k]) != len(o[k]) {
			return false
		}
		for l := range m[k] {
			if m[k][l] != o[k][l] {
				return false
			}
		}
	}
	return true
}

// Or sets every element of m that is set in o. Both masks must have the same shape.
func (m Mask) Or(o Mask) {
	for k := range m {
		for l, v := range o[k] {
			if v {
				m[k][l] = true
			}
		}
	}
}

// Not returns the element-wise complement of m.
func (m Mask) Not() Mask {
	c := m.Clone()
	for k := range c {
		for l := range c[k] {
			c[k][l] = !c[k][l]
		}
	}
	return c
}

// Positions lists the (subcarrier, symbol) coordinates of all set elements, row by row.
func (m Mask) Positions() []RePos {
	var res []RePos
	for k, row := range m {
		for l, v := range row {
			if v {
				res = append(res, RePos{Subcarrier: k, Symbol: l})
			}
		}
	}
	return res
}

// RePos identifies one resource element by its global subcarrier and symbol index.
type RePos struct {
	Subcarrier int
	Symbol     int
}
