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
	"github.com/consensys/go-alu/pkg/util/field"
)

// Expr represents an arithmetic expression over the columns of a trace, as used
// in AIR constraints.  Expressions are data rather than code, so that the same
// constraint can be evaluated over a trace, printed, or have its degree
// inspected.
type Expr[F field.Element[F]] interface {
	// Add two expressions together, producing a third.
	Add(Expr[F]) Expr[F]
	// Subtract one expression from another
	Sub(Expr[F]) Expr[F]
	// Multiply two expressions together, producing a third.
	Mul(Expr[F]) Expr[F]
	// Degree returns the degree of this expression when viewed as a polynomial
	// over the columns it accesses.
	Degree() uint
	// Bounds returns the smallest and largest row shifts used by any column
	// access within this expression.
	Bounds() (int, int)
}

// ============================================================================
// Addition
// ============================================================================

// Add represents the sum over zero or more expressions.
type Add[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Add[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Add[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Add[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a sum is the largest degree of any argument.
func (p *Add[F]) Degree() uint { return maxDegree(p.Args) }

// Bounds returns max shift in either the negative (left) or positive
// direction (right).
func (p *Add[F]) Bounds() (int, int) { return boundsOf(p.Args) }

// ============================================================================
// Subtraction
// ============================================================================

// Sub represents the subtraction over zero or more expressions.
type Sub[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Sub[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Sub[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Sub[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a subtraction is the largest degree of any argument.
func (p *Sub[F]) Degree() uint { return maxDegree(p.Args) }

// Bounds returns max shift in either the negative (left) or positive
// direction (right).
func (p *Sub[F]) Bounds() (int, int) { return boundsOf(p.Args) }

// ============================================================================
// Multiplication
// ============================================================================

// Mul represents the product over zero or more expressions.
type Mul[F field.Element[F]] struct{ Args []Expr[F] }

// Add two expressions together, producing a third.
func (p *Mul[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Mul[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Mul[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a product is the sum of the degrees of its arguments.
func (p *Mul[F]) Degree() uint {
	var degree uint
	//
	for _, arg := range p.Args {
		degree += arg.Degree()
	}
	//
	return degree
}

// Bounds returns max shift in either the negative (left) or positive
// direction (right).
func (p *Mul[F]) Bounds() (int, int) { return boundsOf(p.Args) }

// ============================================================================
// Constant
// ============================================================================

// Constant represents a constant value within an expression.
type Constant[F field.Element[F]] struct{ Value F }

// NewConst construct an AIR expression representing a given constant.
func NewConst[F field.Element[F]](val F) Expr[F] {
	return &Constant[F]{val}
}

// NewConst64 construct an AIR expression representing a given constant from a
// uint64.
func NewConst64[F field.Element[F]](val uint64) Expr[F] {
	return &Constant[F]{field.Uint64[F](val)}
}

// Add two expressions together, producing a third.
func (p *Constant[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *Constant[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *Constant[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a constant is zero.
func (p *Constant[F]) Degree() uint { return 0 }

// Bounds returns max shift in either the negative (left) or positive
// direction (right).  A constant has zero shift.
func (p *Constant[F]) Bounds() (int, int) { return 0, 0 }

// ============================================================================
// Column Access
// ============================================================================

// ColumnAccess represents reading the value held at a given column in the
// tabular context.  Furthermore, the current row maybe shifted up (or down) by
// a given amount. Suppose we are evaluating a constraint on row k=5 which
// contains the column accesses "EXP(0)" and "EXP(1)".  Then, EXP(0) accesses the
// EXP column at row 5, whilst EXP(1) accesses the EXP column at row 6.
type ColumnAccess[F field.Element[F]] struct {
	Column uint
	Shift  int
}

// NewColumnAccess constructs an AIR expression representing the value of a
// given column on the current row, shifted by a given amount.
func NewColumnAccess[F field.Element[F]](column uint, shift int) Expr[F] {
	return &ColumnAccess[F]{column, shift}
}

// Add two expressions together, producing a third.
func (p *ColumnAccess[F]) Add(other Expr[F]) Expr[F] { return &Add[F]{Args: []Expr[F]{p, other}} }

// Sub (subtract) one expression from another.
func (p *ColumnAccess[F]) Sub(other Expr[F]) Expr[F] { return &Sub[F]{Args: []Expr[F]{p, other}} }

// Mul (multiply) two expressions together, producing a third.
func (p *ColumnAccess[F]) Mul(other Expr[F]) Expr[F] { return &Mul[F]{Args: []Expr[F]{p, other}} }

// Degree of a column access is one.
func (p *ColumnAccess[F]) Degree() uint { return 1 }

// Bounds returns max shift in either the negative (left) or positive
// direction (right).
func (p *ColumnAccess[F]) Bounds() (int, int) {
	return min(0, p.Shift), max(0, p.Shift)
}

// ============================================================================
// Helpers
// ============================================================================

// Sum constructs the sum of zero or more expressions.  The empty sum is zero.
func Sum[F field.Element[F]](args ...Expr[F]) Expr[F] {
	switch len(args) {
	case 0:
		return NewConst64[F](0)
	case 1:
		return args[0]
	default:
		return &Add[F]{Args: args}
	}
}

// Product constructs the product of zero or more expressions.  The empty
// product is one.
func Product[F field.Element[F]](args ...Expr[F]) Expr[F] {
	switch len(args) {
	case 0:
		return NewConst64[F](1)
	case 1:
		return args[0]
	default:
		return &Mul[F]{Args: args}
	}
}

func maxDegree[F field.Element[F]](args []Expr[F]) uint {
	var degree uint
	//
	for _, arg := range args {
		degree = max(degree, arg.Degree())
	}
	//
	return degree
}

func boundsOf[F field.Element[F]](args []Expr[F]) (int, int) {
	var left, right int
	//
	for _, arg := range args {
		l, r := arg.Bounds()
		left, right = min(left, l), max(right, r)
	}
	//
	return left, right
}
