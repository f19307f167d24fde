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
package air

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/consensys/go-alu/pkg/util/field"
)

// Lisp converts an expression into a simple S-expression, for example so it
// can be printed.  Column names are used where available, otherwise columns
// are written as #n.
func Lisp[F field.Element[F]](e Expr[F], names []string) string {
	var builder strings.Builder
	//
	writeLisp(&builder, e, names)
	//
	return builder.String()
}

func writeLisp[F field.Element[F]](builder *strings.Builder, e Expr[F], names []string) {
	switch e := e.(type) {
	case *Add[F]:
		writeNaryLisp(builder, "+", e.Args, names)
	case *Constant[F]:
		builder.WriteString(e.Value.Text(10))
	case *ColumnAccess[F]:
		writeColumnAccessLisp(builder, e, names)
	case *Mul[F]:
		writeNaryLisp(builder, "*", e.Args, names)
	case *Sub[F]:
		writeNaryLisp(builder, "-", e.Args, names)
	default:
		name := reflect.TypeOf(e).String()
		panic(fmt.Sprintf("unknown AIR expression \"%s\"", name))
	}
}

func writeColumnAccessLisp[F field.Element[F]](builder *strings.Builder, e *ColumnAccess[F], names []string) {
	var name string
	// Generate name, whilst allowing for names to be missing.
	if e.Column < uint(len(names)) {
		name = names[e.Column]
	} else {
		name = fmt.Sprintf("#%d", e.Column)
	}
	// Check whether shifted (or not)
	if e.Shift == 0 {
		builder.WriteString(name)
	} else {
		fmt.Fprintf(builder, "(shift %s %d)", name, e.Shift)
	}
}

func writeNaryLisp[F field.Element[F]](builder *strings.Builder, op string, args []Expr[F], names []string) {
	builder.WriteString("(")
	builder.WriteString(op)
	//
	for _, arg := range args {
		builder.WriteString(" ")
		writeLisp(builder, arg, names)
	}
	//
	builder.WriteString(")")
}
