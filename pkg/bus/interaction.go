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
package bus

import (
	"fmt"
	"strings"

	"github.com/consensys/go-alu/pkg/util/field"
)

// Id identifies a bus shared between chips.  Chips never refer to each other
// directly; they only agree on the bus identifiers they send to and receive
// from.
type Id uint

// Term is a single weighted column within a virtual column.
type Term[F field.Element[F]] struct {
	Column uint
	Coeff  F
}

// VirtualColumn is a linear combination of columns plus a constant, evaluated
// row by row.  For example, an opcode which depends on a selector can be given
// as the virtual column "104*is_shl + 105*is_shr".
type VirtualColumn[F field.Element[F]] struct {
	Terms    []Term[F]
	Constant F
}

// Single constructs a virtual column which simply reads a given column.
func Single[F field.Element[F]](column uint) VirtualColumn[F] {
	return VirtualColumn[F]{[]Term[F]{{column, field.One[F]()}}, field.Zero[F]()}
}

// Singles constructs one virtual column for each of the given columns.
func Singles[F field.Element[F]](columns ...uint) []VirtualColumn[F] {
	var vcs = make([]VirtualColumn[F], len(columns))
	//
	for i, c := range columns {
		vcs[i] = Single[F](c)
	}
	//
	return vcs
}

// SumOf constructs a virtual column which adds together the given columns.
func SumOf[F field.Element[F]](columns ...uint) VirtualColumn[F] {
	var terms = make([]Term[F], len(columns))
	//
	for i, c := range columns {
		terms[i] = Term[F]{c, field.One[F]()}
	}
	//
	return VirtualColumn[F]{terms, field.Zero[F]()}
}

// Linear constructs a virtual column from an arbitrary set of weighted terms
// and a constant.
func Linear[F field.Element[F]](terms []Term[F], constant F) VirtualColumn[F] {
	return VirtualColumn[F]{terms, constant}
}

// Constant constructs a virtual column holding the same value on every row.
func Constant[F field.Element[F]](val F) VirtualColumn[F] {
	return VirtualColumn[F]{nil, val}
}

// One constructs the virtual column holding 1 on every row.
func One[F field.Element[F]]() VirtualColumn[F] {
	return Constant(field.One[F]())
}

// Eval evaluates this virtual column on a given row.
func (p VirtualColumn[F]) Eval(row []F) F {
	var val = p.Constant
	//
	for _, t := range p.Terms {
		val = val.Add(t.Coeff.Mul(row[t.Column]))
	}
	//
	return val
}

// Lisp returns a textual representation of this virtual column, using the
// given column names.
func (p VirtualColumn[F]) Lisp(names []string) string {
	var (
		builder strings.Builder
		count   int
	)
	//
	for _, t := range p.Terms {
		if count > 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(termString(t, names))
		//
		count++
	}
	//
	if !p.Constant.IsZero() || count == 0 {
		if count > 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(p.Constant.Text(10))
		//
		count++
	}
	//
	if count == 1 {
		return builder.String()
	}
	//
	return fmt.Sprintf("(+ %s)", builder.String())
}

func termString[F field.Element[F]](t Term[F], names []string) string {
	var name = fmt.Sprintf("#%d", t.Column)
	//
	if t.Column < uint(len(names)) {
		name = names[t.Column]
	}
	//
	if t.Coeff.IsOne() {
		return name
	}
	//
	return fmt.Sprintf("(* %s %s)", t.Coeff.Text(10), name)
}

// Interaction describes a tuple of virtual columns which a chip either sends
// to, or receives from, a given bus on every row of its trace.  The count
// gives the multiplicity of the tuple on each row (which is typically 0 on
// padding rows).
type Interaction[F field.Element[F]] struct {
	Fields []VirtualColumn[F]
	Count  VirtualColumn[F]
	Bus    Id
}

// NewInteraction constructs a new interaction.
func NewInteraction[F field.Element[F]](fields []VirtualColumn[F], count VirtualColumn[F], bus Id) Interaction[F] {
	return Interaction[F]{fields, count, bus}
}

// Eval evaluates the tuple and count of this interaction on a given row.
func (p Interaction[F]) Eval(row []F) ([]F, F) {
	var tuple = make([]F, len(p.Fields))
	//
	for i, f := range p.Fields {
		tuple[i] = f.Eval(row)
	}
	//
	return tuple, p.Count.Eval(row)
}

// Lisp returns a textual representation of this interaction.
func (p Interaction[F]) Lisp(names []string) string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("(bus %d (", p.Bus))
	//
	for i, f := range p.Fields {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(f.Lisp(names))
	}
	//
	builder.WriteString(fmt.Sprintf(") %s)", p.Count.Lisp(names)))
	//
	return builder.String()
}
