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
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// PowerOfTwoLookup records uses of the power-of-two table.
type PowerOfTwoLookup interface {
	// Lookup records that 2^exponent has been looked up once more.
	Lookup(exponent uint32)
}

// Machine captures the machine state required to execute shift instructions.
type Machine[F field.Element[F]] interface {
	machine.State
	// Shift returns the shift chip of this machine.
	Shift() *Chip[F]
	// PowerOfTwo returns the power-of-two table of this machine.
	PowerOfTwo() PowerOfTwoLookup
}

// ExecuteShl executes a logical shift left, writing b << c into a.
func ExecuteShl[F field.Element[F], M Machine[F]](state M, ops machine.Operands) {
	execute[F](state, ops, ShiftLeft)
}

// ExecuteShr executes a logical shift right, writing b >> c into a.
func ExecuteShr[F field.Element[F], M Machine[F]](state M, ops machine.Operands) {
	execute[F](state, ops, ShiftRight)
}

// Mnemonic returns the instruction implementing this kind of shift.
func (k Kind) Mnemonic() machine.Mnemonic {
	if k == ShiftLeft {
		return machine.SHL32
	}
	//
	return machine.SHR32
}

func execute[F field.Element[F], M Machine[F]](state M, ops machine.Operands, kind Kind) {
	var (
		cpu = state.Cpu()
		mem = state.Memory()
		clk = cpu.Clock
		imm *machine.Word
		c   machine.Word
	)
	// Read operands
	b := mem.Read(clk, machine.Address(cpu.Fp, ops.B))
	//
	if ops.IsImm {
		c = ops.Imm()
		imm = &c
	} else {
		c = mem.Read(clk, machine.Address(cpu.Fp, ops.C))
	}
	// Shift amounts are not masked, hence anything above 31 gives 0.
	var (
		amount = c.Uint32()
		a      machine.Word
	)
	//
	if kind == ShiftLeft {
		a = machine.WordFromUint32(b.Uint32() << amount)
	} else {
		a = machine.WordFromUint32(b.Uint32() >> amount)
	}
	//
	mem.Write(clk, machine.Address(cpu.Fp, ops.A), a)
	//
	state.Shift().Push(Operation{kind, a, b, c})
	//
	if amount < 32 {
		state.PowerOfTwo().Lookup(amount)
	} else {
		log.Warnf("%s by %d at pc %d cannot be proven", kind.Mnemonic(), amount, cpu.Pc)
	}
	//
	cpu.PushBusOp(imm, state.Opcodes().Code(kind.Mnemonic()), ops)
}
