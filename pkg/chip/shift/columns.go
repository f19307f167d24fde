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
package shift

import (
	"fmt"
	"unsafe"

	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
)

// NumBits is the number of bits recorded for the shift amount.
const NumBits = 8

// NumCols is the number of columns in the shift chip's trace.
const NumCols = 28

// Layout mismatches between Cols and NumCols are a build failure.
var _ [NumCols]struct{} = [unsafe.Sizeof(Cols[byte]{})]struct{}{}

// Cols describes one row of the shift chip.  Instantiated with column offsets
// (i.e. Cols[uint]) it serves as the offset table of the chip, whilst
// instantiated with field elements it holds the contents of a given row.
type Cols[T any] struct {
	// First operand (the value being shifted).
	Input1 [machine.WordBytes]T
	// Second operand (the shift amount).
	Input2 [machine.WordBytes]T
	// Result of the shift.
	Output [machine.WordBytes]T
	// Byte decomposition of 2^s, where s is the shift amount.
	PowerOfTwo [machine.WordBytes]T
	// Bit decomposition of the least significant byte of the shift amount.
	Bits2 [NumBits]T
	// Partial products of the power of two, covering bits 0..2 and 3..4.
	Temp1 T
	Temp2 T
	// Selectors
	IsShl T
	IsShr T
}

// ColMap maps each field of the shift chip onto its column offset.
var ColMap, columnNames = buildColMap()

// ColumnNames returns the names of the shift chip's columns, indexed by offset.
func ColumnNames() []string {
	return columnNames
}

func buildColMap() (Cols[uint], []string) {
	var (
		layout chip.Layout
		cols   Cols[uint]
	)
	//
	cols.Input1 = layout.Word("input_1")
	cols.Input2 = layout.Word("input_2")
	cols.Output = layout.Word("output")
	cols.PowerOfTwo = layout.Word("power_of_two")
	layout.Columns("bits_2", cols.Bits2[:])
	cols.Temp1 = layout.Column("temp_1")
	cols.Temp2 = layout.Column("temp_2")
	cols.IsShl = layout.Column("is_shl")
	cols.IsShr = layout.Column("is_shr")
	//
	if layout.Width() != NumCols {
		panic(fmt.Sprintf("shift layout has %d columns (expected %d)", layout.Width(), NumCols))
	}
	//
	return cols, layout.Names()
}

// WriteRow writes the contents of these columns into a given row.
func (p *Cols[T]) WriteRow(row []T) {
	writeWord(row, ColMap.Input1, p.Input1)
	writeWord(row, ColMap.Input2, p.Input2)
	writeWord(row, ColMap.Output, p.Output)
	writeWord(row, ColMap.PowerOfTwo, p.PowerOfTwo)
	//
	for i, c := range ColMap.Bits2 {
		row[c] = p.Bits2[i]
	}
	//
	row[ColMap.Temp1] = p.Temp1
	row[ColMap.Temp2] = p.Temp2
	row[ColMap.IsShl] = p.IsShl
	row[ColMap.IsShr] = p.IsShr
}

// ReadRow reads the columns of a given row.
func ReadRow[T any](row []T) Cols[T] {
	var cols Cols[T]
	//
	cols.Input1 = readWord(row, ColMap.Input1)
	cols.Input2 = readWord(row, ColMap.Input2)
	cols.Output = readWord(row, ColMap.Output)
	cols.PowerOfTwo = readWord(row, ColMap.PowerOfTwo)
	//
	for i, c := range ColMap.Bits2 {
		cols.Bits2[i] = row[c]
	}
	//
	cols.Temp1 = row[ColMap.Temp1]
	cols.Temp2 = row[ColMap.Temp2]
	cols.IsShl = row[ColMap.IsShl]
	cols.IsShr = row[ColMap.IsShr]
	//
	return cols
}

func writeWord[T any](row []T, offsets [machine.WordBytes]uint, word [machine.WordBytes]T) {
	for i, c := range offsets {
		row[c] = word[i]
	}
}

func readWord[T any](row []T, offsets [machine.WordBytes]uint) [machine.WordBytes]T {
	var word [machine.WordBytes]T
	//
	for i, c := range offsets {
		word[i] = row[c]
	}
	//
	return word
}
