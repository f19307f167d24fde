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
package machine

import (
	"encoding/binary"
	"fmt"
)

// WordBytes is the number of bytes (equivalently, trace cells) used to hold one
// machine word.
const WordBytes = 4

// Word is a 32bit machine word held in big endian form.  That is, the byte at
// index 0 is the most significant.
type Word [WordBytes]byte

// WordFromUint32 constructs a word from a given uint32.
func WordFromUint32(val uint32) Word {
	var w Word
	//
	binary.BigEndian.PutUint32(w[:], val)
	//
	return w
}

// Uint32 returns the value of this word as an unsigned 32bit integer.
func (w Word) Uint32() uint32 {
	return binary.BigEndian.Uint32(w[:])
}

// LeastSignificantByte returns the byte at index 3.
func (w Word) LeastSignificantByte() byte {
	return w[WordBytes-1]
}

func (w Word) String() string {
	return fmt.Sprintf("0x%08x", w.Uint32())
}

// MapWord transforms each byte of a word, preserving byte order.
func MapWord[T any](w Word, fn func(byte) T) [WordBytes]T {
	var res [WordBytes]T
	//
	for i, b := range w {
		res[i] = fn(b)
	}
	//
	return res
}
