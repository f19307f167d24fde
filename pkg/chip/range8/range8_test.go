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
package range8

import (
	"testing"

	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
	"github.com/consensys/go-alu/pkg/util/field/koalabear"
	"github.com/stretchr/testify/require"
)

type BB = babybear.Element

func Test_Range8_01(t *testing.T) {
	checkTable[BB](t)
}

func Test_Range8_02(t *testing.T) {
	checkTable[koalabear.Element](t)
}

func Test_Range8_03(t *testing.T) {
	checkTable[bls12_377.Element](t)
}

func Test_Range8_04(t *testing.T) {
	var (
		c      = NewChip[BB]()
		ctx    = testContext{}
		sends  = bus.Singles[BB](0, 1)
		values = trace.NewMatrix(elements(7, 255, 7, 256, 0, 3), 2)
	)
	//
	c.Record(values, []bus.Interaction[BB]{
		bus.NewInteraction(sends[:1], bus.One[BB](), ctx.RangeBus8()),
		bus.NewInteraction(sends[1:], bus.One[BB](), ctx.RangeBus8()),
		// Other buses are ignored
		bus.NewInteraction(sends[:1], bus.One[BB](), ctx.GeneralBus()),
	}, ctx.RangeBus8())
	//
	require.Equal(t, uint64(2), c.Multiplicity(7))
	require.Equal(t, uint64(1), c.Multiplicity(255))
	require.Equal(t, uint64(1), c.Multiplicity(3))
	// 256 is out of range, hence not recorded (nor wrapped onto 0)
	require.Equal(t, uint64(1), c.Multiplicity(0))
	//
	tr := c.GenerateTrace(ctx)
	require.Equal(t, uint64(2), tr.Get(7, ColMap.Multiplicity).Uint64())
}

func Test_Range8_05(t *testing.T) {
	// Lookups balance the table, except for values out of range
	var (
		c      = NewChip[BB]()
		ctx    = testContext{}
		send   = []bus.Interaction[BB]{bus.NewInteraction(bus.Singles[BB](0), bus.One[BB](), ctx.RangeBus8())}
		values = trace.NewMatrix(elements(1, 2, 3, 255), 1)
		ledger = bus.NewLedger[BB]()
	)
	//
	c.Record(values, send, ctx.RangeBus8())
	ledger.Send(values, send)
	ledger.Receive(c.GenerateTrace(ctx), c.GlobalReceives(ctx))
	require.NoError(t, ledger.Check(ctx.RangeBus8()))
	//
	ledger.SendTuple(ctx.RangeBus8(), elements(300), babybear.New(1))
	//
	var imbalance *bus.Imbalance[BB]
	//
	require.ErrorAs(t, ledger.Check(ctx.RangeBus8()), &imbalance)
	require.Equal(t, elements(300), imbalance.Tuple)
}

func Test_Range8_06(t *testing.T) {
	var (
		c  = NewChip[BB]()
		tr = c.GenerateTrace(testContext{})
	)
	// Skipping a value breaks the sequence
	tr.Row(100)[ColMap.Value] = babybear.New(101)
	//
	var failure *air.Failure
	//
	require.ErrorAs(t, chip.Check[BB](c, tr), &failure)
	require.Equal(t, "value_step", failure.Handle)
	require.Equal(t, uint(99), failure.Row)
	require.Empty(t, c.GlobalSends(testContext{}))
}

func checkTable[F field.Element[F]](t *testing.T) {
	var (
		c  = NewChip[F]()
		tr = c.GenerateTrace(testContext{})
	)
	//
	require.Equal(t, uint(NumRows), tr.Height())
	require.Equal(t, []string{"value", "multiplicity"}, c.ColumnNames())
	//
	for v := range uint(NumRows) {
		require.Equal(t, uint64(v), tr.Get(v, ColMap.Value).Uint64())
		require.True(t, tr.Get(v, ColMap.Multiplicity).IsZero())
	}
	//
	require.Empty(t, air.CheckAll(chip.Constraints[F](c), tr))
}

func elements(vals ...uint64) []BB {
	var elems = make([]BB, len(vals))
	//
	for i, v := range vals {
		elems[i] = babybear.New(v)
	}
	//
	return elems
}

type testContext struct{}

func (testContext) GeneralBus() bus.Id        { return 0 }
func (testContext) PowerOfTwoBus() bus.Id     { return 1 }
func (testContext) RangeBus8() bus.Id         { return 2 }
func (testContext) Opcodes() *machine.Opcodes { return machine.DefaultOpcodes() }
func (testContext) BatchSize() uint           { return 0 }
