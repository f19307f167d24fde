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

	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// Kind distinguishes left shifts from right shifts.
type Kind uint8

const (
	// ShiftLeft identifies a logical shift left.
	ShiftLeft Kind = iota
	// ShiftRight identifies a logical shift right.
	ShiftRight
)

func (k Kind) String() string {
	if k == ShiftLeft {
		return "shl"
	}
	//
	return "shr"
}

// Operation records a single executed shift, where Dst = Src << Shift (or
// Dst = Src >> Shift).
type Operation struct {
	Kind  Kind
	Dst   machine.Word
	Src   machine.Word
	Shift machine.Word
}

func (p Operation) String() string {
	return fmt.Sprintf("%s %s, %s, %s", p.Kind, p.Dst, p.Src, p.Shift)
}

// Chip proves logical shifts of 32-bit words.  Each shift is related to a
// multiplication (or division) by a power of two, which is obtained through the
// power-of-two bus and then checked by the general (multiplication / division)
// bus.
type Chip[F field.Element[F]] struct {
	operations []Operation
}

// NewChip constructs a shift chip with an empty operation log.
func NewChip[F field.Element[F]]() *Chip[F] {
	return &Chip[F]{}
}

// Name returns the module name of this chip.
func (p *Chip[F]) Name() string {
	return "shift"
}

// Width returns the number of columns of this chip.
func (p *Chip[F]) Width() uint {
	return NumCols
}

// ColumnNames returns the names of the columns of this chip.
func (p *Chip[F]) ColumnNames() []string {
	return ColumnNames()
}

// Push appends an operation onto the operation log.
func (p *Chip[F]) Push(op Operation) {
	p.operations = append(p.operations, op)
}

// Operations returns the operation log, in execution order.
func (p *Chip[F]) Operations() []Operation {
	return p.operations
}

// GenerateTrace produces one row per operation, in execution order, followed
// by zero rows up to the next power of two.
func (p *Chip[F]) GenerateTrace(ctx chip.Context) *trace.Matrix[F] {
	return chip.GenerateRows(p.Name(), p.operations, NumCols, ctx.BatchSize(), func(op Operation, row []F) {
		cols := OpToCols[F](op)
		cols.WriteRow(row)
	})
}

// OpToCols computes the contents of the row for a given operation.
func OpToCols[F field.Element[F]](op Operation) Cols[F] {
	var (
		cols    Cols[F]
		fromU8  = func(b byte) F { return field.Uint64[F](uint64(b)) }
		shift   = op.Shift.LeastSignificantByte()
		weights = powerWeights[F]()
	)
	//
	switch op.Kind {
	case ShiftLeft:
		cols.IsShl = field.One[F]()
	case ShiftRight:
		cols.IsShr = field.One[F]()
	}
	//
	cols.Input1 = machine.MapWord(op.Src, fromU8)
	cols.Input2 = machine.MapWord(op.Shift, fromU8)
	cols.Output = machine.MapWord(op.Dst, fromU8)
	//
	for i := range cols.Bits2 {
		cols.Bits2[i] = field.Uint64[F](uint64(shift>>i) & 1)
	}
	// Each factor is either 1 or its weight, depending on the bit.
	var factors [len(powerExponents)]F
	//
	for i := range factors {
		factors[i] = powerFactor(cols.Bits2[i], weights[i])
	}
	//
	cols.Temp1 = field.Product(factors[0], factors[1], factors[2])
	cols.Temp2 = field.Product(factors[3], factors[4])
	cols.PowerOfTwo = machine.MapWord(powerOfTwo(shift), fromU8)
	//
	return cols
}

// Exponents of the weight of each factor making up the power of two.  That is,
// bit i of the shift amount contributes a factor 2^(2^i).
var powerExponents = [...]uint{1, 2, 4, 8, 16}

func powerWeights[F field.Element[F]]() [len(powerExponents)]F {
	var weights [len(powerExponents)]F
	//
	for i, e := range powerExponents {
		weights[i] = field.TwoPowN[F](e)
	}
	//
	return weights
}

// Factor contributed by a given bit, namely 1 + bit * (weight - 1).
func powerFactor[F field.Element[F]](bit F, weight F) F {
	var one = field.One[F]()
	//
	return one.Add(bit.Mul(weight.Sub(one)))
}

// Word holding 2^s for the lowest five bits of s.  Bits 5..7 play no part,
// since any shift amount over 31 is rejected by the range check.
func powerOfTwo(s byte) machine.Word {
	return machine.WordFromUint32(uint32(1) << (s & 0x1f))
}
