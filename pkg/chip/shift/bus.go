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
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/util/field"
)

// GlobalSends returns the two tuples sent on each row.  Firstly, the shift
// amount together with its power of two is sent to the power-of-two bus.
// Secondly, the equivalent multiplication (for a left shift) or division (for a
// right shift) by that power of two is sent to the general bus.  Both are sent
// on every row, including padding rows.
func (p *Chip[F]) GlobalSends(ctx chip.Context) []bus.Interaction[F] {
	var (
		opcodes    = ctx.Opcodes()
		shift      = bus.Single[F](ColMap.Input2[machine.WordBytes-1])
		powerOfTwo = bus.Singles[F](ColMap.PowerOfTwo[:]...)
		one        = bus.One[F]()
	)
	// Power of two bus
	powerOfTwoSend := bus.NewInteraction(append([]bus.VirtualColumn[F]{shift}, powerOfTwo...), one,
		ctx.PowerOfTwoBus())
	// General bus (multiplication and division)
	var fields []bus.VirtualColumn[F]
	//
	fields = append(fields, selectOpcode[F](opcodes.Code(machine.MUL32), opcodes.Code(machine.DIV32)))
	fields = append(fields, bus.Singles[F](ColMap.Input1[:]...)...)
	fields = append(fields, powerOfTwo...)
	fields = append(fields, bus.Singles[F](ColMap.Output[:]...)...)
	// Clock is not known to this chip.
	fields = append(fields, bus.Constant(field.Zero[F]()))
	//
	generalSend := bus.NewInteraction(fields, one, ctx.GeneralBus())
	//
	return []bus.Interaction[F]{powerOfTwoSend, generalSend}
}

// GlobalReceives returns the tuple received from the CPU on each real row,
// namely the shift opcode along with its operands and result.  Padding rows
// receive nothing.
func (p *Chip[F]) GlobalReceives(ctx chip.Context) []bus.Interaction[F] {
	var (
		opcodes = ctx.Opcodes()
		fields  []bus.VirtualColumn[F]
	)
	//
	fields = append(fields, selectOpcode[F](opcodes.Code(machine.SHL32), opcodes.Code(machine.SHR32)))
	fields = append(fields, bus.Singles[F](ColMap.Input1[:]...)...)
	fields = append(fields, bus.Singles[F](ColMap.Input2[:]...)...)
	fields = append(fields, bus.Singles[F](ColMap.Output[:]...)...)
	//
	isReal := bus.SumOf[F](ColMap.IsShl, ColMap.IsShr)
	//
	return []bus.Interaction[F]{bus.NewInteraction(fields, isReal, ctx.GeneralBus())}
}

// Virtual column giving shl*is_shl + shr*is_shr.
func selectOpcode[F field.Element[F]](shl uint32, shr uint32) bus.VirtualColumn[F] {
	return bus.Linear([]bus.Term[F]{
		{Column: ColMap.IsShl, Coeff: field.Uint64[F](uint64(shl))},
		{Column: ColMap.IsShr, Coeff: field.Uint64[F](uint64(shr))},
	}, field.Zero[F]())
}
