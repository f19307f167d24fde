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
package pow2

import (
	"fmt"

	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// NumRows is the number of entries in the power-of-two table, covering the
// exponents 0..31.
const NumRows = 32

// Cols describes one row of the power-of-two table.
type Cols[T any] struct {
	Exponent   T
	PowerOfTwo [machine.WordBytes]T
	// Number of times this entry was looked up.
	Multiplicity T
	// Number of all-zero tuples absorbed by this table (first row only).
	NullMultiplicity T
}

// ColMap maps each field of the power-of-two table onto its column offset.
var ColMap, columnNames = buildColMap()

func buildColMap() (Cols[uint], []string) {
	var (
		layout chip.Layout
		cols   Cols[uint]
	)
	//
	cols.Exponent = layout.Column("exponent")
	cols.PowerOfTwo = layout.Word("power_of_two")
	cols.Multiplicity = layout.Column("multiplicity")
	cols.NullMultiplicity = layout.Column("null_multiplicity")
	//
	return cols, layout.Names()
}

// Chip is a fixed table relating each exponent s in 0..31 to the word holding
// 2^s.  Other chips send (s, 2^s) on the power-of-two bus, and the table
// receives each entry as many times as it was looked up.  Since padding rows of
// other chips send the all-zero tuple, the table also absorbs a given number of
// those.
type Chip[F field.Element[F]] struct {
	multiplicities [NumRows]uint64
	nulls          uint64
}

// NewChip constructs a power-of-two table with no lookups.
func NewChip[F field.Element[F]]() *Chip[F] {
	return &Chip[F]{}
}

// Name returns the module name of this chip.
func (p *Chip[F]) Name() string {
	return "pow2"
}

// Width returns the number of columns of this chip.
func (p *Chip[F]) Width() uint {
	return uint(len(columnNames))
}

// ColumnNames returns the names of the columns of this chip.
func (p *Chip[F]) ColumnNames() []string {
	return columnNames
}

// Lookup records one use of the entry for a given exponent.
func (p *Chip[F]) Lookup(exponent uint32) {
	if exponent >= NumRows {
		panic(fmt.Sprintf("power of two lookup out-of-bounds (2^%d)", exponent))
	}
	//
	p.multiplicities[exponent]++
}

// SetNulls sets the number of uses of the all-zero tuple.  This is the number
// of padding rows in the traces of chips sending on the power-of-two bus, and
// is only known once those traces are generated.
func (p *Chip[F]) SetNulls(n uint) {
	p.nulls = uint64(n)
}

// Multiplicity returns the number of uses of the entry for a given exponent.
func (p *Chip[F]) Multiplicity(exponent uint32) uint64 {
	return p.multiplicities[exponent]
}

// GenerateTrace produces the fixed table along with its multiplicities.
func (p *Chip[F]) GenerateTrace(ctx chip.Context) *trace.Matrix[F] {
	var values = make([]F, NumRows*p.Width())
	//
	for s := range uint32(NumRows) {
		row := values[uint(s)*p.Width() : uint(s+1)*p.Width()]
		row[ColMap.Exponent] = field.Uint64[F](uint64(s))
		row[ColMap.Multiplicity] = field.Uint64[F](p.multiplicities[s])
		//
		for i, b := range machine.WordFromUint32(1 << s) {
			row[ColMap.PowerOfTwo[i]] = field.Uint64[F](uint64(b))
		}
	}
	//
	values[ColMap.NullMultiplicity] = field.Uint64[F](p.nulls)
	//
	return trace.NewMatrix(values, p.Width())
}

// GlobalSends returns each byte of the power of two on every row, sent to the
// byte range bus.  The transition constraints fix only the recomposed word, so
// without these a row such as (8, 0, 0, 0, 256) would be accepted.
func (p *Chip[F]) GlobalSends(ctx chip.Context) []bus.Interaction[F] {
	var sends []bus.Interaction[F]
	//
	for _, c := range ColMap.PowerOfTwo {
		sends = append(sends, bus.NewInteraction(bus.Singles[F](c), bus.One[F](), ctx.RangeBus8()))
	}
	//
	return sends
}

// GlobalReceives returns the two tuples received on each row.  Firstly, the
// table entry with its multiplicity and, secondly, the all-zero tuple with the
// null multiplicity.
func (p *Chip[F]) GlobalReceives(ctx chip.Context) []bus.Interaction[F] {
	var (
		entry = append(bus.Singles[F](ColMap.Exponent), bus.Singles[F](ColMap.PowerOfTwo[:]...)...)
		null  = make([]bus.VirtualColumn[F], len(entry))
	)
	//
	for i := range null {
		null[i] = bus.Constant(field.Zero[F]())
	}
	//
	return []bus.Interaction[F]{
		bus.NewInteraction(entry, bus.Single[F](ColMap.Multiplicity), ctx.PowerOfTwoBus()),
		bus.NewInteraction(null, bus.Single[F](ColMap.NullMultiplicity), ctx.PowerOfTwoBus()),
	}
}

// Eval declares the constraints of the power-of-two table which, together
// with the byte range checks sent by GlobalSends, fix its contents to be
// exactly the pairs (s, 2^s) for s in 0..31.
func (p *Chip[F]) Eval(b *air.Builder[F]) {
	var (
		exponent = b.Main(ColMap.Exponent)
		power    = recompose(b, b.Main)
		next     = recompose(b, b.Next)
	)
	// First row holds 2^0
	b.AssertZeroFirstRow("first_exponent", exponent)
	//
	for i, c := range ColMap.PowerOfTwo {
		expected := uint64(0)
		if i == machine.WordBytes-1 {
			expected = 1
		}
		//
		b.AssertZeroFirstRow(fmt.Sprintf("first_power_%d", i), b.Main(c).Sub(b.Const(expected)))
	}
	// Each row doubles the previous
	b.AssertEq("exponent_step", b.Next(ColMap.Exponent), exponent.Add(b.Const(1)))
	b.AssertEq("power_step", next, b.Const(2).Mul(power))
	// Last row holds 2^31
	b.AssertZeroLastRow("last_exponent", exponent.Sub(b.Const(NumRows-1)))
	// Only the first row absorbs null tuples
	b.AssertZero("null_multiplicity", b.Next(ColMap.NullMultiplicity))
}

// Big-endian recomposition of the power of two on a given row.
func recompose[F field.Element[F]](b *air.Builder[F], access func(uint) air.Expr[F]) air.Expr[F] {
	var bytes [machine.WordBytes]air.Expr[F]
	//
	for i, c := range ColMap.PowerOfTwo {
		bytes[i] = b.Const(1 << (8 * (machine.WordBytes - 1 - i))).Mul(access(c))
	}
	//
	return air.Sum(bytes[:]...)
}
