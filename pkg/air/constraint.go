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
	"errors"
	"fmt"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// VanishingConstraint must evaluate to zero on every row of the table within
// its domain.  The only exception is when the constraint is undefined (e.g.
// because it references the row after the last).  In such case, the constraint
// is ignored on that row.
type VanishingConstraint[F field.Element[F]] struct {
	// A unique identifier for this constraint.  This is primarily useful for
	// debugging.
	Handle string
	// Indicates (when nil) a global constraint that applies to all rows.
	// Otherwise, indicates a local constraint which applies to the specific row
	// given here.  Negative rows are taken from the end of the table, so -1
	// identifies the last row.
	Domain *int
	// The actual constraint itself, namely an expression which should evaluate
	// to zero.
	Expr Expr[F]
}

// Accepts checks whether a vanishing constraint evaluates to zero on every row
// of a table.  If so, return nil otherwise return an error.
func (p VanishingConstraint[F]) Accepts(tr *trace.Matrix[F]) error {
	if p.Domain == nil {
		// Global Constraint
		for k := uint(0); k < tr.Height(); k++ {
			if err := p.acceptsAt(k, tr); err != nil {
				return err
			}
		}
		//
		return nil
	}
	// Check specific row
	row := *p.Domain
	if row < 0 {
		row += int(tr.Height())
	}
	// Local constraints on rows which don't exist hold vacuously.
	if row < 0 || row >= int(tr.Height()) {
		return nil
	}
	//
	return p.acceptsAt(uint(row), tr)
}

func (p VanishingConstraint[F]) acceptsAt(k uint, tr *trace.Matrix[F]) error {
	if val, ok := EvalAt(p.Expr, k, tr); ok && !val.IsZero() {
		return &Failure{p.Handle, k, val.Text(10)}
	}
	//
	return nil
}

// Failure identifies a constraint which does not hold on a given row.
type Failure struct {
	// Handle of the failing constraint
	Handle string
	// Row on which it fails
	Row uint
	// Value the constraint evaluated to
	Value string
}

func (p *Failure) Error() string {
	return fmt.Sprintf("constraint \"%s\" does not hold (row %d, value %s)", p.Handle, p.Row, p.Value)
}

// Check a trace against a set of constraints, returning every failure joined
// into a single error (or nil).  Failures are ordered as their constraints.
func Check[F field.Element[F]](constraints []VanishingConstraint[F], tr *trace.Matrix[F]) error {
	return errors.Join(CheckAll(constraints, tr)...)
}

// CheckAll checks a trace against a set of constraints, returning every
// failure.
func CheckAll[F field.Element[F]](constraints []VanishingConstraint[F], tr *trace.Matrix[F]) []error {
	var errs []error
	//
	for _, c := range constraints {
		if err := c.Accepts(tr); err != nil {
			errs = append(errs, err)
		}
	}
	//
	return errs
}
