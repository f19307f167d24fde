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
package range8

import (
	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// NumRows is the number of distinct bytes, hence the height of the table.
const NumRows = 256

// Cols describes the columns of the byte range table.
type Cols[T any] struct {
	Value T
	// Number of times this byte was looked up.
	Multiplicity T
}

// ColMap gives the offset of each column.
var ColMap, columnNames = buildColMap()

func buildColMap() (Cols[uint], []string) {
	var (
		layout chip.Layout
		cols   Cols[uint]
	)
	//
	cols.Value = layout.Column("value")
	cols.Multiplicity = layout.Column("multiplicity")
	//
	return cols, layout.Names()
}

// Chip is a fixed table holding every byte exactly once, which receives
// single-element tuples on the byte range bus.  A tuple is in range only if
// it matches some row of the table.
type Chip[F field.Element[F]] struct {
	multiplicities [NumRows]uint64
}

// NewChip constructs a byte range table with no lookups.
func NewChip[F field.Element[F]]() *Chip[F] {
	return &Chip[F]{}
}

// Name implementation for chip.Chip interface.
func (p *Chip[F]) Name() string {
	return "range8"
}

// Width implementation for chip.Chip interface.
func (p *Chip[F]) Width() uint {
	return uint(len(columnNames))
}

// ColumnNames implementation for chip.Chip interface.
func (p *Chip[F]) ColumnNames() []string {
	return columnNames
}

// Lookup records n uses of a given byte.
func (p *Chip[F]) Lookup(value byte, n uint64) {
	p.multiplicities[value] += n
}

// Multiplicity returns the number of recorded uses of a given byte.
func (p *Chip[F]) Multiplicity(value byte) uint64 {
	return p.multiplicities[value]
}

// Record looks up every tuple which the given interactions send on a bus,
// evaluated over each row of a trace.  Tuples which are not a single byte are
// not recorded, and will therefore leave the bus unbalanced.
func (p *Chip[F]) Record(tr *trace.Matrix[F], interactions []bus.Interaction[F], id bus.Id) {
	for i := range tr.Height() {
		row := tr.Row(i)
		//
		for _, interaction := range interactions {
			if interaction.Bus != id {
				continue
			}
			//
			tuple, count := interaction.Eval(row)
			//
			if len(tuple) == 1 && tuple[0].Cmp(field.Uint64[F](NumRows)) < 0 {
				p.Lookup(byte(tuple[0].Uint64()), count.Uint64())
			}
		}
	}
}

// GenerateTrace implementation for chip.Chip interface.
func (p *Chip[F]) GenerateTrace(ctx chip.Context) *trace.Matrix[F] {
	var values = make([]F, NumRows*p.Width())
	//
	for v := range uint(NumRows) {
		row := values[v*p.Width() : (v+1)*p.Width()]
		row[ColMap.Value] = field.Uint64[F](uint64(v))
		row[ColMap.Multiplicity] = field.Uint64[F](p.multiplicities[v])
	}
	//
	return trace.NewMatrix(values, p.Width())
}

// GlobalSends implementation for chip.Chip interface.
func (p *Chip[F]) GlobalSends(ctx chip.Context) []bus.Interaction[F] {
	return nil
}

// GlobalReceives implementation for chip.Chip interface.
func (p *Chip[F]) GlobalReceives(ctx chip.Context) []bus.Interaction[F] {
	return []bus.Interaction[F]{
		bus.NewInteraction(bus.Singles[F](ColMap.Value), bus.Single[F](ColMap.Multiplicity), ctx.RangeBus8()),
	}
}

// Eval implementation for chip.Chip interface.
func (p *Chip[F]) Eval(b *air.Builder[F]) {
	var value = b.Main(ColMap.Value)
	//
	b.AssertZeroFirstRow("first_value", value)
	b.AssertEq("value_step", b.Next(ColMap.Value), value.Add(b.Const(1)))
	b.AssertZeroLastRow("last_value", value.Sub(b.Const(NumRows-1)))
}
