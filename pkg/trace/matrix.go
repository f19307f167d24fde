// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package trace

import (
	"fmt"

	"github.com/consensys/go-alu/pkg/util"
	"github.com/consensys/go-alu/pkg/util/field"
)

// Matrix is a row-major table of field elements.  All rows have the same width,
// and row i occupies values[i*width:(i+1)*width].
type Matrix[F any] struct {
	values []F
	width  uint
}

// NewMatrix constructs a matrix of a given width from a flat row-major buffer.
// The buffer length must be a multiple of the width.
func NewMatrix[F any](values []F, width uint) *Matrix[F] {
	if width == 0 {
		panic("matrix width cannot be zero")
	} else if uint(len(values))%width != 0 {
		panic(fmt.Sprintf("matrix buffer of length %d is not a multiple of width %d", len(values), width))
	}
	//
	return &Matrix[F]{values, width}
}

// Width returns the number of columns in this matrix.
func (p *Matrix[F]) Width() uint {
	return p.width
}

// Height returns the number of rows in this matrix.
func (p *Matrix[F]) Height() uint {
	return uint(len(p.values)) / p.width
}

// Row returns the ith row of this matrix.  The returned slice aliases the
// underlying buffer.
func (p *Matrix[F]) Row(i uint) []F {
	if i >= p.Height() {
		panic(fmt.Sprintf("row %d out-of-bounds (height %d)", i, p.Height()))
	}
	//
	start := i * p.width
	//
	return p.values[start : start+p.width : start+p.width]
}

// Get returns the value at a given row and column.
func (p *Matrix[F]) Get(row uint, col uint) F {
	if col >= p.width {
		panic(fmt.Sprintf("column %d out-of-bounds (width %d)", col, p.width))
	}
	//
	return p.Row(row)[col]
}

// Column returns a copy of the given column.
func (p *Matrix[F]) Column(col uint) []F {
	var data = make([]F, p.Height())
	//
	for i := range data {
		data[i] = p.Get(uint(i), col)
	}
	//
	return data
}

// Values returns the underlying row-major buffer.
func (p *Matrix[F]) Values() []F {
	return p.values
}

// PadToPowerOfTwo extends a flat row-major buffer of a given width with zero
// rows until its height is a power of two.  An empty buffer is left empty.
func PadToPowerOfTwo[F field.Element[F]](values []F, width uint) []F {
	var nrows = uint(len(values)) / width
	//
	if nrows == 0 {
		return values
	}
	//
	n := util.NextPowerOfTwo(nrows) * width
	// Zero value of F is the field's zero element.
	if n > uint(cap(values)) {
		padded := make([]F, n)
		copy(padded, values)
		//
		return padded
	}
	//
	values = values[:n]
	clear(values[nrows*width:])
	//
	return values
}
