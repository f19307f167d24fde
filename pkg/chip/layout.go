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
	"fmt"

	"github.com/consensys/go-alu/pkg/machine"
)

// Layout assigns consecutive column offsets to the fields of a chip's column
// struct, recording a name for each as it goes.  Chips build their offset
// table once using a layout, rather than reinterpreting rows in memory.
type Layout struct {
	names []string
}

// Column allocates a single column with the given name.
func (p *Layout) Column(name string) uint {
	p.names = append(p.names, name)
	//
	return uint(len(p.names) - 1)
}

// Columns allocates n consecutive columns, named "name[i]".
func (p *Layout) Columns(name string, cols []uint) {
	for i := range cols {
		cols[i] = p.Column(fmt.Sprintf("%s[%d]", name, i))
	}
}

// Word allocates one column for each byte of a machine word.
func (p *Layout) Word(name string) [machine.WordBytes]uint {
	var cols [machine.WordBytes]uint
	//
	p.Columns(name, cols[:])
	//
	return cols
}

// Width returns the number of columns allocated so far.
func (p *Layout) Width() uint {
	return uint(len(p.names))
}

// Names returns the names of all columns allocated so far, indexed by offset.
func (p *Layout) Names() []string {
	return p.names
}
