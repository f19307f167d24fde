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
package machine

// BusOp records an instruction dispatched to a coprocessor chip.  The CPU later
// asserts, over the general bus, that the chip performed it.
type BusOp struct {
	Opcode   uint32
	Operands Operands
	// Immediate value used in place of the second source operand (if any).
	Imm *Word
}

// Cpu holds the register state of the machine together with the log of
// operations dispatched to other chips.
type Cpu struct {
	Clock uint32
	Pc    uint32
	Fp    uint32
	//
	busOps []BusOp
}

// PushBusOp records the dispatch of an instruction to another chip.
func (p *Cpu) PushBusOp(imm *Word, opcode uint32, ops Operands) {
	p.busOps = append(p.busOps, BusOp{opcode, ops, imm})
}

// BusOps returns the dispatch log, in execution order.
func (p *Cpu) BusOps() []BusOp {
	return p.busOps
}

// State provides the view of a machine available to instruction executors.
type State interface {
	Cpu() *Cpu
	Memory() Memory
	Opcodes() *Opcodes
}

// Executor implements the semantics of a single instruction.
type Executor[S State] func(state S, ops Operands)

// InstructionSet maps opcodes to their executors.
type InstructionSet[S State] struct {
	executors map[uint32]Executor[S]
}

// NewInstructionSet constructs an empty instruction set.
func NewInstructionSet[S State]() *InstructionSet[S] {
	return &InstructionSet[S]{make(map[uint32]Executor[S])}
}

// Register an executor for a given opcode, replacing any existing one.
func (p *InstructionSet[S]) Register(opcode uint32, exec Executor[S]) {
	p.executors[opcode] = exec
}

// Lookup the executor for a given opcode.
func (p *InstructionSet[S]) Lookup(opcode uint32) (Executor[S], bool) {
	exec, ok := p.executors[opcode]
	//
	return exec, ok
}
