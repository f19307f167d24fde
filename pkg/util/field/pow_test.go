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
package field_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-alu/pkg/util/field"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
)

const POW_BASE_MAX uint = 4096
const POW_BASE_INC uint = 8

func Test_Pow_00(t *testing.T) {
	powCheck(t, 1, 1)
}
func Test_Pow_01(t *testing.T) {
	powCheck(t, 2, 1)
}
func Test_Pow_02(t *testing.T) {
	powCheck(t, 2, 2)
}
func Test_Pow_03(t *testing.T) {
	powCheck(t, 2, 3)
}
func Test_Pow_04(t *testing.T) {
	powCheck(t, 3, 0)
}
func Test_Pow_05(t *testing.T) {
	powCheck(t, 3, 5)
}

func Test_Pow_10(t *testing.T) {
	powCheckLoop(t, 0)
}

func Test_Pow_11(t *testing.T) {
	powCheckLoop(t, 3)
}

func Test_Pow_12(t *testing.T) {
	powCheckLoop(t, 7)
}

func Test_TwoPowN_01(t *testing.T) {
	// 2^31 wraps in babybear, so compare against reduced value.
	for n := uint(0); n < 32; n++ {
		expected := (uint64(1) << n) % 2013265921
		if actual := field.TwoPowN[babybear.Element](n).Uint64(); actual != expected {
			t.Errorf("TwoPowN(%d)=%d (not %d)", n, actual, expected)
		}
	}
}

func powCheckLoop(t *testing.T, first uint) {
	// Enable parallel testing
	t.Parallel()
	// Run through the loop
	for i := first; i < POW_BASE_MAX; i += POW_BASE_INC {
		for j := uint64(0); j < 64; j++ {
			powCheck(t, i, j)
		}
	}
}

// Check pow computed correctly.  This is done by comparing against the existing
// gnark function.
func powCheck(t *testing.T, base uint, pow uint64) {
	var (
		k        = big.NewInt(int64(pow))
		actual   bls12_377.Element
		expected = fr.NewElement(uint64(base))
	)
	// Initialise actual value
	actual = actual.SetUint64(uint64(base))
	// Compute actual using our optimised method
	actual = field.Pow(actual, pow)
	// Compute expected using existing gnark function
	expected.Exp(expected, k)
	// Final sanity check
	if actual.Element.Cmp(&expected) != 0 {
		t.Errorf("Pow(%d,%d)=%s (not %s)", base, pow, actual.String(), expected.String())
	}
}
