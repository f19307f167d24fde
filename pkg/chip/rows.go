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

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util"
	"github.com/consensys/go-alu/pkg/util/field"
)

// GenerateRows constructs a trace with one row for each item, where fill writes
// the row for a given item.  Rows are generated in batches by concurrently
// executing go-routines, and reassembled in item order.  The resulting trace is
// padded with zero rows to the next power of two, except that no items gives
// an empty trace.
func GenerateRows[T any, F field.Element[F]](name string, items []T, width uint, batchSize uint,
	fill func(item T, row []F)) *trace.Matrix[F] {
	//
	var (
		stats = util.NewPerfStats()
		n     = uint(len(items))
	)
	//
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	//
	var (
		nbatches = (n + batchSize - 1) / batchSize
		// Construct a communication channel for batches.
		ch = make(chan util.Pair[uint, []F], nbatches)
		// Reserve enough space for padding.
		values = make([]F, n*width, util.NextPowerOfTwo(n)*width)
	)
	// Dispatch each batch
	for b := range nbatches {
		go func(batch uint) {
			var (
				start = batch * batchSize
				end   = min(start+batchSize, n)
				rows  = make([]F, (end-start)*width)
			)
			//
			for i := start; i < end; i++ {
				offset := (i - start) * width
				fill(items[i], rows[offset:offset+width:offset+width])
			}
			// Send outcome back
			ch <- util.NewPair(batch, rows)
		}(b)
	}
	// Collect up all the results
	for range nbatches {
		result := <-ch
		copy(values[result.Left*batchSize*width:], result.Right)
	}
	// Once we get here, all go routines are complete and we are sequential
	// again.
	values = trace.PadToPowerOfTwo(values, width)
	//
	stats.Log(fmt.Sprintf("Generating %s trace (%d rows, %d batches)", name, n, nbatches))
	//
	return trace.NewMatrix(values, width)
}
