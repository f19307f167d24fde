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
package shift

import (
	"fmt"

	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/machine"
)

// Eval declares the constraints of the shift chip.  All constraints hold on
// padding rows, where every column is zero.
func (p *Chip[F]) Eval(b *air.Builder[F]) {
	var (
		isShl  = b.Main(ColMap.IsShl)
		isShr  = b.Main(ColMap.IsShr)
		isReal = isShl.Add(isShr)
		bits   [NumBits]air.Expr[F]
		terms  [NumBits]air.Expr[F]
	)
	// Bit decomposition of the shift amount's least significant byte.
	for i, c := range ColMap.Bits2 {
		bits[i] = b.Main(c)
		terms[i] = b.Const(1 << i).Mul(bits[i])
		b.AssertBool(fmt.Sprintf("bit_boolean_%d", i), bits[i])
	}
	//
	b.AssertEq("byte_decomposition", air.Sum(terms[:]...), b.Main(ColMap.Input2[machine.WordBytes-1]))
	// Shift amount is at most 31.  Any larger amount is rejected here, rather
	// than silently producing a power of two for its lowest five bits.
	b.AssertZero("shift_range_bits", air.Sum(bits[5], bits[6], bits[7]))
	//
	for i := range machine.WordBytes - 1 {
		b.AssertZero(fmt.Sprintf("shift_range_%d", i), b.Main(ColMap.Input2[i]))
	}
	// Each factor is 1 + bit_i * (2^(2^i) - 1), hence either 1 or 2^(2^i).
	// The product of factors equals 2^s only when the bits are boolean and
	// s <= 31, as ensured above.  The products are gated by is_real because a
	// padding row has all factors equal to 1, but temp columns of 0.  Gating
	// raises temp_1 from degree 3 to 4, which is the degree of this chip.
	var factors [len(powerExponents)]air.Expr[F]
	//
	for i, e := range powerExponents {
		weight := uint64(1) << e
		factors[i] = b.Const(1).Add(bits[i].Mul(b.Const(weight - 1)))
	}
	//
	temp1 := b.Main(ColMap.Temp1)
	temp2 := b.Main(ColMap.Temp2)
	b.AssertZero("temp_1", isReal.Mul(temp1.Sub(air.Product(factors[0], factors[1], factors[2]))))
	b.AssertZero("temp_2", isReal.Mul(temp2.Sub(air.Product(factors[3], factors[4]))))
	// Big-endian recomposition of the power of two.
	var bytes [machine.WordBytes]air.Expr[F]
	//
	for i, c := range ColMap.PowerOfTwo {
		bytes[i] = b.Const(1 << (8 * (machine.WordBytes - 1 - i))).Mul(b.Main(c))
	}
	//
	b.AssertZero("power_of_two", isReal.Mul(air.Sum(bytes[:]...).Sub(temp1.Mul(temp2))))
	// Selectors are mutually exclusive, but may both be zero on padding rows.
	b.AssertBool("is_shl", isShl)
	b.AssertBool("is_shr", isShr)
	b.AssertBool("is_real", isReal)
}
