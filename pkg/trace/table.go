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
package trace

import "fmt"

// Table is a matrix whose columns are named, and which belongs to a given chip
// (its module).
type Table[F any] struct {
	// Module name (e.g. "shift").
	Module string
	// Column names, in column order.
	Columns []string
	// Trace data
	*Matrix[F]
}

// NewTable constructs a named table.  The number of names must match the
// matrix width.
func NewTable[F any](module string, columns []string, matrix *Matrix[F]) Table[F] {
	if uint(len(columns)) != matrix.Width() {
		panic(fmt.Sprintf("%d column names given for matrix of width %d", len(columns), matrix.Width()))
	}
	//
	return Table[F]{module, columns, matrix}
}

// ColumnIndex returns the column index of the column with the given name in
// this table, or returns false if no such column exists.
func (p Table[F]) ColumnIndex(name string) (uint, bool) {
	for i, c := range p.Columns {
		if c == name {
			return uint(i), true
		}
	}
	// Column does not exist
	return 0, false
}

// QualifiedColumnName returns the fully qualified name of a given column.
func QualifiedColumnName(module string, column string) string {
	if module == "" {
		return column
	}
	//
	return fmt.Sprintf("%s.%s", module, column)
}
