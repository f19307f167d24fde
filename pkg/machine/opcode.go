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

import "fmt"

// Mnemonic identifies an instruction independently of the numeric opcode it is
// assigned by a given machine.
type Mnemonic uint8

// Instruction mnemonics understood by the machine.  Only the shift chip
// executes SHL32 and SHR32; the remainder exist so that chips can refer to
// their siblings on the general bus.
const (
	LOAD32 Mnemonic = iota
	STORE32
	JAL
	JALV
	BEQ
	BNE
	IMM32
	STOP
	ADD32
	SUB32
	MUL32
	DIV32
	SHL32
	SHR32
	LT32
	AND32
	OR32
	XOR32
	// number of mnemonics; must be last.
	numMnemonics
)

var mnemonicNames = [numMnemonics]string{
	"LOAD32", "STORE32", "JAL", "JALV", "BEQ", "BNE", "IMM32", "STOP", "ADD32", "SUB32",
	"MUL32", "DIV32", "SHL32", "SHR32", "LT32", "AND32", "OR32", "XOR32",
}

func (m Mnemonic) String() string {
	if m < numMnemonics {
		return mnemonicNames[m]
	}
	//
	return fmt.Sprintf("Mnemonic(%d)", uint8(m))
}

// ParseMnemonic returns the mnemonic with the given name.
func ParseMnemonic(name string) (Mnemonic, bool) {
	for i, n := range mnemonicNames {
		if n == name {
			return Mnemonic(i), true
		}
	}
	//
	return 0, false
}

// Opcodes is the table mapping each mnemonic to the numeric opcode used on the
// buses.  A table is constructed once and then shared (by reference) between
// the machine and all of its chips.  There are no mutating methods.
type Opcodes struct {
	codes    [numMnemonics]uint32
	reversed map[uint32]Mnemonic
}

// NewOpcodes constructs an opcode table from a complete assignment of opcodes.
// An error is returned if any mnemonic is unassigned, or if two mnemonics share
// an opcode.
func NewOpcodes(codes map[Mnemonic]uint32) (*Opcodes, error) {
	var table = Opcodes{reversed: make(map[uint32]Mnemonic, len(codes))}
	//
	for m := range numMnemonics {
		code, ok := codes[m]
		//
		if !ok {
			return nil, fmt.Errorf("no opcode assigned to %s", m)
		} else if other, ok := table.reversed[code]; ok {
			return nil, fmt.Errorf("opcode %d assigned to both %s and %s", code, other, m)
		}
		//
		table.codes[m] = code
		table.reversed[code] = m
	}
	//
	return &table, nil
}

// DefaultOpcodes returns the standard opcode assignment.
func DefaultOpcodes() *Opcodes {
	table, err := NewOpcodes(map[Mnemonic]uint32{
		LOAD32: 1, STORE32: 2, JAL: 3, JALV: 4, BEQ: 5, BNE: 6, IMM32: 7, STOP: 8,
		ADD32: 100, SUB32: 101, MUL32: 102, DIV32: 103, SHL32: 104, SHR32: 105,
		LT32: 106, AND32: 107, OR32: 108, XOR32: 109,
	})
	// Should be unreachable
	if err != nil {
		panic(err)
	}
	//
	return table
}

// Code returns the opcode assigned to a given mnemonic.
func (p *Opcodes) Code(m Mnemonic) uint32 {
	return p.codes[m]
}

// Lookup returns the mnemonic assigned to a given opcode, if one exists.
func (p *Opcodes) Lookup(code uint32) (Mnemonic, bool) {
	m, ok := p.reversed[code]
	//
	return m, ok
}

// Mnemonics returns every mnemonic in the table in declaration order.
func (p *Opcodes) Mnemonics() []Mnemonic {
	var ms = make([]Mnemonic, numMnemonics)
	//
	for i := range ms {
		ms[i] = Mnemonic(i)
	}
	//
	return ms
}
