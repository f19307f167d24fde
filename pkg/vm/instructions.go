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
package vm

import (
	"github.com/consensys/go-alu/pkg/chip/shift"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/util/field"
)

// Register the executor of every instruction this machine supports.
func (p *Machine[F]) registerInstructions() {
	var set = p.instructions
	//
	set.Register(p.opcodes.Code(machine.IMM32), executeImm32[F])
	set.Register(p.opcodes.Code(machine.STOP), executeStop[F])
	set.Register(p.opcodes.Code(machine.SHL32), shift.ExecuteShl[F, *Machine[F]])
	set.Register(p.opcodes.Code(machine.SHR32), shift.ExecuteShr[F, *Machine[F]])
}

// IMM32 writes the immediate c into a.
func executeImm32[F field.Element[F]](state *Machine[F], ops machine.Operands) {
	var cpu = state.Cpu()
	//
	state.Memory().Write(cpu.Clock, machine.Address(cpu.Fp, ops.A), ops.Imm())
}

// STOP halts execution.
func executeStop[F field.Element[F]](state *Machine[F], ops machine.Operands) {
	state.halted = true
}
