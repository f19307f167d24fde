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
package chip

import (
	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// DefaultBatchSize determines the number of rows generated by each go-routine
// during trace generation, unless otherwise specified.
const DefaultBatchSize = 1024

// Context provides the machine-wide information which chips require to
// generate their traces and declare their bus interactions.
type Context interface {
	// GeneralBus identifies the bus connecting the CPU with each of the
	// instruction chips.
	GeneralBus() bus.Id
	// PowerOfTwoBus identifies the bus used to look up powers of two.
	PowerOfTwoBus() bus.Id
	// RangeBus8 identifies the bus used to range check bytes.
	RangeBus8() bus.Id
	// Opcodes returns the (immutable) opcode table of the machine.
	Opcodes() *machine.Opcodes
	// BatchSize returns the number of rows generated by each go-routine.
	BatchSize() uint
}

// Chip describes a single table of the machine.  A chip generates its own
// trace, describes the constraints which must hold over that trace, and
// declares the tuples it exchanges with other chips over the buses.
type Chip[F field.Element[F]] interface {
	// Name returns the name of this chip, as used for its trace module.
	Name() string
	// Width returns the number of columns in this chip's trace.
	Width() uint
	// ColumnNames returns the names of this chip's columns, indexed by column
	// offset.
	ColumnNames() []string
	// GenerateTrace produces the trace of this chip, whose height is always a
	// power of two (or zero).
	GenerateTrace(ctx Context) *trace.Matrix[F]
	// GlobalSends returns the tuples this chip sends on each row.
	GlobalSends(ctx Context) []bus.Interaction[F]
	// GlobalReceives returns the tuples this chip receives on each row.
	GlobalReceives(ctx Context) []bus.Interaction[F]
	// Eval declares the constraints of this chip.
	Eval(builder *air.Builder[F])
}

// Constraints returns the constraints declared by a given chip.
func Constraints[F field.Element[F]](c Chip[F]) []air.VanishingConstraint[F] {
	var builder = air.NewBuilder[F]()
	//
	c.Eval(builder)
	//
	return builder.Constraints()
}

// Table generates the trace of a given chip, along with its column names.
func Table[F field.Element[F]](c Chip[F], ctx Context) trace.Table[F] {
	return trace.NewTable(c.Name(), c.ColumnNames(), c.GenerateTrace(ctx))
}

// Check that a given trace satisfies all constraints of a given chip.  This
// returns the first failure found, or nil.
func Check[F field.Element[F]](c Chip[F], tr *trace.Matrix[F]) error {
	return air.Check(Constraints(c), tr)
}
