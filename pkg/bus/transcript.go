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
package bus

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
	"golang.org/x/crypto/sha3"
)

// Transcript is a hash chain from which challenges are drawn after absorbing
// everything they must depend upon (Fiat-Shamir).  The same data absorbed in
// the same order always produces the same challenges.
type Transcript struct {
	state [32]byte
}

// NewTranscript constructs a transcript whose initial state is bound to a
// given domain label.
func NewTranscript(label string) *Transcript {
	return &Transcript{sha3.Sum256([]byte(label))}
}

// Absorb mixes arbitrary bytes into the transcript.
func (p *Transcript) Absorb(data []byte) {
	p.state = sha3.Sum256(append(p.state[:], data...))
}

// AbsorbElements mixes a sequence of field elements into a transcript, each
// encoded as 32 big-endian bytes.
func AbsorbElements[F field.Element[F]](p *Transcript, elements []F) {
	var (
		data = make([]byte, 0, 8+32*len(elements))
		buf  [32]byte
		val  big.Int
	)
	//
	data = binary.BigEndian.AppendUint64(data, uint64(len(elements)))
	//
	for _, e := range elements {
		e.BigInt(&val).FillBytes(buf[:])
		data = append(data, buf[:]...)
	}
	//
	p.Absorb(data)
}

// AbsorbTable mixes a named trace table into a transcript.
func AbsorbTable[F field.Element[F]](p *Transcript, table trace.Table[F]) {
	p.Absorb([]byte(table.Module))
	AbsorbElements(p, table.Values())
}

// Challenge draws a field element from the transcript, advancing its state.
// The 256-bit state is reduced into the field, so every field up to 256 bits
// receives a challenge of full size.
func Challenge[F field.Element[F]](p *Transcript) F {
	var (
		base = field.TwoPowN[F](64)
		acc  = field.Zero[F]()
	)
	//
	for i := 0; i < len(p.state); i += 8 {
		limb := field.Uint64[F](binary.BigEndian.Uint64(p.state[i : i+8]))
		acc = acc.Mul(base).Add(limb)
	}
	//
	p.state = sha3.Sum256(p.state[:])
	//
	return acc
}
