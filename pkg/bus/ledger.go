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
	"fmt"
	"strings"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// Ledger accumulates the net multiset of tuples sent over each bus.  Sends add
// their count to a tuple whilst receives subtract it, such that a bus is
// balanced exactly when every tuple ends with a count of zero.
type Ledger[F field.Element[F]] struct {
	buses map[Id]*multiset[F]
}

// Imbalance identifies a tuple whose sends and receives on a given bus do not
// cancel out.  A positive count indicates more sends than receives.
type Imbalance[F field.Element[F]] struct {
	Bus   Id
	Tuple []F
	Count F
}

// Error implementation for the error interface.
func (p *Imbalance[F]) Error() string {
	return fmt.Sprintf("bus %d unbalanced at %s (count %s)", p.Bus, tupleString(p.Tuple), p.Count.Text(10))
}

type multiset[F field.Element[F]] struct {
	// Insertion order of keys, for deterministic reporting.
	keys    []string
	entries map[string]*Imbalance[F]
}

// NewLedger constructs an empty ledger.
func NewLedger[F field.Element[F]]() *Ledger[F] {
	return &Ledger[F]{make(map[Id]*multiset[F])}
}

// Send evaluates a set of interactions over every row of a trace, adding the
// resulting tuples to their buses.
func (p *Ledger[F]) Send(tr *trace.Matrix[F], interactions []Interaction[F]) {
	p.apply(tr, interactions, false)
}

// Receive evaluates a set of interactions over every row of a trace, removing
// the resulting tuples from their buses.
func (p *Ledger[F]) Receive(tr *trace.Matrix[F], interactions []Interaction[F]) {
	p.apply(tr, interactions, true)
}

// SendTuple adds a single tuple to a bus with a given count.  This is used for
// interactions whose counterpart is not described by a trace.
func (p *Ledger[F]) SendTuple(bus Id, tuple []F, count F) {
	p.record(bus, tuple, count)
}

// Imbalances returns every tuple on the given bus with a non-zero net count,
// in the order they were first seen.
func (p *Ledger[F]) Imbalances(bus Id) []*Imbalance[F] {
	var (
		ms, ok = p.buses[bus]
		errs   []*Imbalance[F]
	)
	//
	if !ok {
		return nil
	}
	//
	for _, key := range ms.keys {
		if entry := ms.entries[key]; !entry.Count.IsZero() {
			errs = append(errs, entry)
		}
	}
	//
	return errs
}

// Check returns the first imbalance on the given bus, or nil if it is balanced.
func (p *Ledger[F]) Check(bus Id) error {
	if errs := p.Imbalances(bus); len(errs) > 0 {
		return errs[0]
	}
	//
	return nil
}

func (p *Ledger[F]) apply(tr *trace.Matrix[F], interactions []Interaction[F], negate bool) {
	for i := range tr.Height() {
		row := tr.Row(i)
		//
		for _, interaction := range interactions {
			tuple, count := interaction.Eval(row)
			// Skip inactive rows
			if count.IsZero() {
				continue
			} else if negate {
				count = field.Neg(count)
			}
			//
			p.record(interaction.Bus, tuple, count)
		}
	}
}

func (p *Ledger[F]) record(bus Id, tuple []F, count F) {
	ms, ok := p.buses[bus]
	//
	if !ok {
		ms = &multiset[F]{entries: make(map[string]*Imbalance[F])}
		p.buses[bus] = ms
	}
	//
	key := tupleString(tuple)
	//
	if entry, ok := ms.entries[key]; ok {
		entry.Count = entry.Count.Add(count)
	} else {
		ms.keys = append(ms.keys, key)
		ms.entries[key] = &Imbalance[F]{bus, tuple, count}
	}
}

func tupleString[F field.Element[F]](tuple []F) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, v := range tuple {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(v.Text(16))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
