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
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-alu/pkg/machine"
)

// Instruction is a single decoded instruction of a program.
type Instruction struct {
	Opcode   uint32
	Operands machine.Operands
}

// Program is a sequence of instructions, along with the initial frame pointer
// and memory contents with which it executes.
type Program struct {
	Fp           uint32
	Memory       map[uint32]machine.Word
	Instructions []Instruction
}

type jsonProgram struct {
	Fp           uint32            `json:"fp"`
	Memory       map[string]uint32 `json:"memory"`
	Instructions []jsonInstruction `json:"instructions"`
}

type jsonInstruction struct {
	Op  string `json:"op"`
	A   int32  `json:"a"`
	B   int32  `json:"b"`
	C   int32  `json:"c"`
	Imm bool   `json:"imm"`
}

// ReadProgramFile reads a program from a JSON file, resolving instruction
// mnemonics using a given opcode table.
func ReadProgramFile(filename string, opcodes *machine.Opcodes) (*Program, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	program, err := ParseProgram(bytes, opcodes)
	//
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return program, nil
}

// ParseProgram parses a program from its JSON representation, for example:
//
//	{"fp":0,"memory":{"4":5},"instructions":[{"op":"SHL32","a":0,"b":4,"c":8}]}
//
// Memory addresses are given as (decimal) object keys.
func ParseProgram(bytes []byte, opcodes *machine.Opcodes) (*Program, error) {
	var jp jsonProgram
	//
	if err := json.Unmarshal(bytes, &jp); err != nil {
		return nil, err
	}
	//
	program := Program{Fp: jp.Fp, Memory: make(map[uint32]machine.Word, len(jp.Memory))}
	//
	for key, val := range jp.Memory {
		addr, err := strconv.ParseUint(key, 10, 32)
		//
		if err != nil {
			return nil, fmt.Errorf("invalid memory address \"%s\"", key)
		}
		//
		program.Memory[uint32(addr)] = machine.WordFromUint32(val)
	}
	//
	for i, insn := range jp.Instructions {
		mnemonic, ok := machine.ParseMnemonic(insn.Op)
		//
		if !ok {
			return nil, fmt.Errorf("unknown instruction \"%s\" (instruction %d)", insn.Op, i)
		}
		//
		program.Instructions = append(program.Instructions, Instruction{
			opcodes.Code(mnemonic),
			machine.Operands{A: insn.A, B: insn.B, C: insn.C, IsImm: insn.Imm},
		})
	}
	//
	return &program, nil
}
