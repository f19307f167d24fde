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

// Memory represents (in many ways) the simplest form of memory which can be
// read or written without restrictions.  Initially, all locations can be
// considered to hold zero.  Thus, reading a location which has not yet been
// written will return zero; otherwise, it will return the last value written.
// Every access is stamped with the clock of the instruction performing it.
type Memory interface {
	// Read a word from a given address.
	Read(clk uint32, address uint32) Word
	// Write a word to a given address, overwriting the previous value stored
	// at that address.
	Write(clk uint32, address uint32, value Word)
}

// Access records a single read or write against memory.
type Access struct {
	Clock   uint32
	Address uint32
	Value   Word
	IsWrite bool
}

// Ram is a sparse word-addressed implementation of Memory which logs every
// access made against it.
type Ram struct {
	cells    map[uint32]Word
	accesses []Access
}

// NewRam constructs an empty random access memory.
func NewRam() *Ram {
	return &Ram{cells: make(map[uint32]Word)}
}

// Read implementation for Memory interface.
func (p *Ram) Read(clk uint32, address uint32) Word {
	value := p.cells[address]
	p.accesses = append(p.accesses, Access{clk, address, value, false})
	//
	return value
}

// Write implementation for Memory interface.
func (p *Ram) Write(clk uint32, address uint32, value Word) {
	p.cells[address] = value
	p.accesses = append(p.accesses, Access{clk, address, value, true})
}

// Peek returns the word at a given address without logging an access.  This
// is intended for initialisation and inspection only.
func (p *Ram) Peek(address uint32) Word {
	return p.cells[address]
}

// Poke sets the word at a given address without logging an access.  This is
// intended for initialisation only.
func (p *Ram) Poke(address uint32, value Word) {
	p.cells[address] = value
}

// Accesses returns the access log, in the order accesses were made.
func (p *Ram) Accesses() []Access {
	return p.accesses
}
