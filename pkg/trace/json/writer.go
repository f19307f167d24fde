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
package json

import (
	"strings"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// ToJsonString converts a set of tables into a JSON string, where each column
// is keyed by its qualified name.  For example, {"shift.is_shl": [1, 0]} holds
// two rows of data for column "is_shl" of module "shift".
func ToJsonString[F field.Element[F]](tables []trace.Table[F]) string {
	var (
		builder strings.Builder
		first   = true
	)
	//
	builder.WriteString("{")
	//
	for _, table := range tables {
		for col, name := range table.Columns {
			if !first {
				builder.WriteString(", ")
			}
			//
			first = false
			//
			builder.WriteString("\"")
			// Write out qualified column name
			builder.WriteString(trace.QualifiedColumnName(table.Module, name))
			//
			builder.WriteString("\": [")

			for row := uint(0); row < table.Height(); row++ {
				if row != 0 {
					builder.WriteString(", ")
				}

				builder.WriteString(table.Get(row, uint(col)).Text(10))
			}

			builder.WriteString("]")
		}
	}
	//
	builder.WriteString("}")
	// Done
	return builder.String()
}
