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

// Builder collects the constraints of a chip.  Chips describe their constraints
// by calling the assertion methods whilst referring to columns through Main
// (the current row) and Next (the following row).
type Builder[F field.Element[F]] struct {
	constraints []VanishingConstraint[F]
}

// NewBuilder constructs an empty constraint builder.
func NewBuilder[F field.Element[F]]() *Builder[F] {
	return &Builder[F]{}
}

// Main accesses a given column on the current row.
func (p *Builder[F]) Main(column uint) Expr[F] {
	return NewColumnAccess[F](column, 0)
}

// Next accesses a given column on the following row.  Constraints using Next
// are not checked on the last row.
func (p *Builder[F]) Next(column uint) Expr[F] {
	return NewColumnAccess[F](column, 1)
}

// Const constructs a constant expression.
func (p *Builder[F]) Const(val uint64) Expr[F] {
	return NewConst64[F](val)
}

// AssertZero requires that a given expression vanishes on every row.
func (p *Builder[F]) AssertZero(handle string, e Expr[F]) {
	p.constraints = append(p.constraints, VanishingConstraint[F]{handle, nil, e})
}

// AssertEq requires that two expressions are equal on every row.
func (p *Builder[F]) AssertEq(handle string, lhs Expr[F], rhs Expr[F]) {
	p.AssertZero(handle, lhs.Sub(rhs))
}

// AssertBool requires that a given expression is either 0 or 1 on every row.
// That is, e * (e - 1) == 0.
func (p *Builder[F]) AssertBool(handle string, e Expr[F]) {
	p.AssertZero(handle, e.Mul(e.Sub(p.Const(1))))
}

// AssertZeroFirstRow requires that a given expression vanishes on the first
// row only.
func (p *Builder[F]) AssertZeroFirstRow(handle string, e Expr[F]) {
	var first = 0
	//
	p.constraints = append(p.constraints, VanishingConstraint[F]{handle, &first, e})
}

// AssertZeroLastRow requires that a given expression vanishes on the last row
// only.
func (p *Builder[F]) AssertZeroLastRow(handle string, e Expr[F]) {
	var last = -1
	//
	p.constraints = append(p.constraints, VanishingConstraint[F]{handle, &last, e})
}

// Constraints returns the constraints collected so far.
func (p *Builder[F]) Constraints() []VanishingConstraint[F] {
	return p.constraints
}

// MaxDegree returns the largest degree of any constraint collected so far.
func (p *Builder[F]) MaxDegree() uint {
	var degree uint
	//
	for _, c := range p.constraints {
		degree = max(degree, c.Expr.Degree())
	}
	//
	return degree
}
