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
package koalabear

import (
	"hash/fnv"
	"math/big"

	kb "github.com/consensys/gnark-crypto/field/koalabear"
)

// Element wraps kb.Element to conform to the field.Element interface.
type Element struct {
	kb.Element
}

// New constructs an element from a given uint64, reduced modulo the field
// order.
func New(val uint64) Element {
	return Element{kb.NewElement(val)}
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res kb.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// BigInt implementation for the Element interface
func (x Element) BigInt(res *big.Int) *big.Int {
	return x.Element.BigInt(res)
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
func (x Element) Cmp(y Element) int {
	return x.Element.Cmp(&y.Element)
}

// Equals implementation for the field.Element interface.
func (x Element) Equals(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var elem kb.Element
	//
	elem.Inverse(&x.Element)
	//
	return Element{elem}
}

// IsOne implementation for the Element interface
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// IsZero implementation for the Element interface
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// Modulus implementation for the Element interface
func (x Element) Modulus() *big.Int {
	return kb.Modulus()
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var elem kb.Element
	//
	elem.Mul(&x.Element, &y.Element)
	//
	return Element{elem}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var elem kb.Element
	//
	elem.Sub(&x.Element, &y.Element)
	//
	return Element{elem}
}

// SetUint64 implementation for the Element interface.
func (x Element) SetUint64(val uint64) Element {
	var elem kb.Element
	//
	elem.SetUint64(val)
	//
	return Element{elem}
}

// Uint64 returns the canonical value of x.
func (x Element) Uint64() uint64 {
	return x.Element.Uint64()
}

// Hash returns an FNV1a hash of the canonical bytes of x.
func (x Element) Hash() uint64 {
	var (
		hash  = fnv.New64a()
		bytes = x.Element.Bytes()
	)
	//
	hash.Write(bytes[:])
	//
	return hash.Sum64()
}

func (x Element) String() string {
	return x.Element.String()
}

// Text implementation for the Element interface
func (x Element) Text(base int) string {
	return x.Element.Text(base)
}
