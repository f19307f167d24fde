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

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// EvalAt evaluates a given expression on row k of a trace.  If the expression
// accesses a row outside the trace (e.g. the next row when k is the last row)
// then it is undefined at k, and false is returned.
func EvalAt[F field.Element[F]](e Expr[F], k uint, tr *trace.Matrix[F]) (F, bool) {
	var (
		left, right = e.Bounds()
		row         = int(k)
	)
	//
	if row+left < 0 || row+right >= int(tr.Height()) {
		return field.Zero[F](), false
	}
	//
	return evalAt(e, row, tr), true
}

func evalAt[F field.Element[F]](e Expr[F], k int, tr *trace.Matrix[F]) F {
	switch e := e.(type) {
	case *Add[F]:
		return evalAtAdd(e, k, tr)
	case *Constant[F]:
		return e.Value
	case *ColumnAccess[F]:
		return tr.Get(uint(k+e.Shift), e.Column)
	case *Sub[F]:
		return evalAtSub(e, k, tr)
	case *Mul[F]:
		return evalAtMul(e, k, tr)
	default:
		name := reflect.TypeOf(e).String()
		panic(fmt.Sprintf("unknown AIR expression \"%s\"", name))
	}
}

func evalAtAdd[F field.Element[F]](e *Add[F], k int, tr *trace.Matrix[F]) F {
	var val F
	//
	for _, arg := range e.Args {
		val = val.Add(evalAt(arg, k, tr))
	}
	//
	return val
}

func evalAtMul[F field.Element[F]](e *Mul[F], k int, tr *trace.Matrix[F]) F {
	var val = field.One[F]()
	//
	for _, arg := range e.Args {
		// Can short-circuit evaluation?
		if val.IsZero() {
			break
		}
		//
		val = val.Mul(evalAt(arg, k, tr))
	}
	//
	return val
}

func evalAtSub[F field.Element[F]](e *Sub[F], k int, tr *trace.Matrix[F]) F {
	if len(e.Args) == 0 {
		return field.Zero[F]()
	}
	// Evaluate first argument
	val := evalAt(e.Args[0], k, tr)
	// Continue evaluating the rest
	for i := 1; i < len(e.Args); i++ {
		val = val.Sub(evalAt(e.Args[i], k, tr))
	}
	// Done
	return val
}
