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
	"errors"
	"fmt"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// ErrChallengeCollision is returned when a tuple fingerprint coincides with
// the alpha challenge, making its logarithmic derivative undefined.
var ErrChallengeCollision = errors.New("tuple fingerprint collides with challenge")

// LogUp accumulates the logarithmic derivative of each bus given two
// challenges alpha and beta.  Every tuple (f_0, .., f_n) occurring with count c
// contributes c / (alpha - Σ beta^i * f_i), with sends positive and receives
// negative.  Thus, a balanced bus sums to zero, whilst an unbalanced bus sums
// to zero only with negligible probability over the choice of challenges.
type LogUp[F field.Element[F]] struct {
	alpha F
	beta  F
	sums  map[Id]F
}

// NewLogUp constructs an accumulator for the given challenges.
func NewLogUp[F field.Element[F]](alpha, beta F) *LogUp[F] {
	return &LogUp[F]{alpha, beta, make(map[Id]F)}
}

// Send accumulates a set of sending interactions over every row of a trace.
func (p *LogUp[F]) Send(tr *trace.Matrix[F], interactions []Interaction[F]) error {
	return p.apply(tr, interactions, false)
}

// Receive accumulates a set of receiving interactions over every row of a
// trace.
func (p *LogUp[F]) Receive(tr *trace.Matrix[F], interactions []Interaction[F]) error {
	return p.apply(tr, interactions, true)
}

// Sum returns the accumulated sum for a given bus.
func (p *LogUp[F]) Sum(bus Id) F {
	return p.sums[bus]
}

// Check returns an error if the given bus does not sum to zero.
func (p *LogUp[F]) Check(bus Id) error {
	if sum := p.sums[bus]; !sum.IsZero() {
		return fmt.Errorf("bus %d has non-zero logarithmic derivative %s", bus, sum.Text(10))
	}
	//
	return nil
}

// SendTuple accumulates a single tuple sent with a given count.
func (p *LogUp[F]) SendTuple(bus Id, tuple []F, count F) error {
	return p.applyTuple(bus, tuple, count, false)
}

// ReceiveTuple accumulates a single tuple received with a given count.
func (p *LogUp[F]) ReceiveTuple(bus Id, tuple []F, count F) error {
	return p.applyTuple(bus, tuple, count, true)
}

func (p *LogUp[F]) apply(tr *trace.Matrix[F], interactions []Interaction[F], negate bool) error {
	if tr.Height() == 0 {
		return nil
	}
	//
	for _, interaction := range interactions {
		sums, err := RunningSum(tr, interaction, p.alpha, p.beta)
		//
		if err != nil {
			return err
		}
		//
		p.accumulate(interaction.Bus, sums[len(sums)-1], negate)
	}
	//
	return nil
}

func (p *LogUp[F]) applyTuple(bus Id, tuple []F, count F, negate bool) error {
	if count.IsZero() {
		return nil
	}
	//
	denom := p.alpha.Sub(Fingerprint(tuple, p.beta))
	//
	if denom.IsZero() {
		return ErrChallengeCollision
	}
	//
	p.accumulate(bus, count.Mul(denom.Inverse()), negate)
	//
	return nil
}

func (p *LogUp[F]) accumulate(bus Id, term F, negate bool) {
	sum, ok := p.sums[bus]
	//
	if !ok {
		sum = field.Zero[F]()
	}
	//
	if negate {
		p.sums[bus] = sum.Sub(term)
	} else {
		p.sums[bus] = sum.Add(term)
	}
}

// Fingerprint compresses a tuple into a single field element using powers of
// the given challenge, that is Σ beta^i * f_i.
func Fingerprint[F field.Element[F]](tuple []F, beta F) F {
	var acc = field.Zero[F]()
	// Horner's method, from the highest power down.
	for i := len(tuple) - 1; i >= 0; i-- {
		acc = acc.Mul(beta).Add(tuple[i])
	}
	//
	return acc
}

// RunningSum computes the running sum column of a single interaction over a
// trace.  That is, entry i holds the accumulated contribution of rows 0..i,
// such that the last entry is the total contribution of the trace.
func RunningSum[F field.Element[F]](tr *trace.Matrix[F], interaction Interaction[F], alpha, beta F) ([]F, error) {
	var (
		n      = tr.Height()
		counts = make([]F, n)
		denoms = make([]F, n)
		sums   = make([]F, n)
		acc    = field.Zero[F]()
	)
	//
	for i := range n {
		tuple, count := interaction.Eval(tr.Row(i))
		counts[i] = count
		denoms[i] = alpha.Sub(Fingerprint(tuple, beta))
		//
		if denoms[i].IsZero() && !count.IsZero() {
			return nil, fmt.Errorf("row %d: %w", i, ErrChallengeCollision)
		}
	}
	//
	field.BatchInvert(denoms)
	//
	for i := range n {
		acc = acc.Add(counts[i].Mul(denoms[i]))
		sums[i] = acc
	}
	//
	return sums, nil
}
