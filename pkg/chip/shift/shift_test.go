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
	"math/rand"
	"testing"

	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/chip/pow2"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
	"github.com/consensys/go-alu/pkg/util/field/koalabear"
	"github.com/stretchr/testify/require"
)

type (
	BB  = babybear.Element
	KB  = koalabear.Element
	BLS = bls12_377.Element
)

// ============================================================================
// Column layout
// ============================================================================

func Test_Columns_01(t *testing.T) {
	names := ColumnNames()
	require.Len(t, names, NumCols)
	require.Equal(t, "input_1[0]", names[ColMap.Input1[0]])
	require.Equal(t, "input_2[3]", names[ColMap.Input2[3]])
	require.Equal(t, "power_of_two[2]", names[ColMap.PowerOfTwo[2]])
	require.Equal(t, "bits_2[7]", names[ColMap.Bits2[7]])
	require.Equal(t, "temp_1", names[ColMap.Temp1])
	require.Equal(t, "is_shr", names[ColMap.IsShr])
	require.Equal(t, uint(NumCols-1), ColMap.IsShr)
}

func Test_Columns_02(t *testing.T) {
	// Every column is assigned exactly once.
	var (
		seen = make(map[string]bool)
		row  = make([]uint, NumCols)
	)
	//
	for _, n := range ColumnNames() {
		require.False(t, seen[n])
		seen[n] = true
	}
	// Writing the offset table into a row gives the identity.
	ColMap.WriteRow(row)
	//
	for i, v := range row {
		require.Equal(t, uint(i), v)
	}
	//
	require.Equal(t, ColMap, ReadRow(row))
}

// ============================================================================
// Trace generation
// ============================================================================

func Test_Trace_01(t *testing.T) {
	checkTraceHeight[BB](t, 0, 0)
}

func Test_Trace_02(t *testing.T) {
	checkTraceHeight[BB](t, 1, 1)
}

func Test_Trace_03(t *testing.T) {
	checkTraceHeight[BB](t, 3, 4)
}

func Test_Trace_04(t *testing.T) {
	checkTraceHeight[KB](t, 8, 8)
}

func Test_Trace_05(t *testing.T) {
	checkTraceHeight[BLS](t, 9, 16)
}

func Test_Trace_06(t *testing.T) {
	checkTraceHeight[BB](t, 1000, 1024)
}

func Test_Trace_07(t *testing.T) {
	checkTraceRoundTrip[BB](t, 100)
}

func Test_Trace_08(t *testing.T) {
	checkTraceRoundTrip[KB](t, 100)
}

func Test_Trace_09(t *testing.T) {
	checkTraceRoundTrip[BLS](t, 50)
}

func Test_Trace_10(t *testing.T) {
	// Output row order follows the operation log across batches.
	var c = NewChip[BB]()
	//
	for i := range uint32(37) {
		c.Push(Operation{ShiftLeft, machine.WordFromUint32(i << 1), machine.WordFromUint32(i), machine.WordFromUint32(1)})
	}
	//
	tr := c.GenerateTrace(newTestMachine[BB]())
	//
	for i := range uint(37) {
		require.Equal(t, uint64(i), decodeWord(ReadRow(tr.Row(i)).Input1))
	}
}

// ============================================================================
// Bit decomposition & power of two
// ============================================================================

func Test_BitDecomposition_01(t *testing.T) {
	checkBitDecomposition[BB](t)
}

func Test_BitDecomposition_02(t *testing.T) {
	checkBitDecomposition[BLS](t)
}

func Test_PowerOfTwo_01(t *testing.T) {
	checkPowerOfTwo[BB](t, 0)
}

func Test_PowerOfTwo_02(t *testing.T) {
	checkPowerOfTwo[BB](t, 16)
}

func Test_PowerOfTwo_03(t *testing.T) {
	checkPowerOfTwo[BB](t, 31)
}

func Test_PowerOfTwo_04(t *testing.T) {
	for s := range uint32(32) {
		checkPowerOfTwo[BB](t, s)
		checkPowerOfTwo[KB](t, s)
		checkPowerOfTwo[BLS](t, s)
	}
}

// ============================================================================
// Constraints
// ============================================================================

func Test_Constraints_01(t *testing.T) {
	checkConstraints[BB](t, allShifts())
}

func Test_Constraints_02(t *testing.T) {
	checkConstraints[KB](t, allShifts())
}

func Test_Constraints_03(t *testing.T) {
	checkConstraints[BLS](t, allShifts())
}

func Test_Constraints_04(t *testing.T) {
	// Empty trace
	checkConstraints[BB](t, nil)
}

func Test_Constraints_05(t *testing.T) {
	// Mostly padding
	checkConstraints[BB](t, []Operation{shl(0xffffffff, 31)})
	checkConstraints[BB](t, []Operation{shr(0xffffffff, 31), shl(1, 0), shr(7, 16)})
}

func Test_Constraints_06(t *testing.T) {
	// Padding rows alone satisfy every constraint.
	tr := trace.NewMatrix(make([]BB, 4*NumCols), NumCols)
	require.NoError(t, chip.Check[BB](NewChip[BB](), tr))
}

func Test_Constraints_07(t *testing.T) {
	checkConstraintsRandom[BB](t, 500)
	checkConstraintsRandom[KB](t, 500)
}

func Test_Constraints_08(t *testing.T) {
	b := air.NewBuilder[BB]()
	NewChip[BB]().Eval(b)
	require.Equal(t, uint(4), b.MaxDegree())
	// Only the gated product of three factors reaches degree 4
	var highest []string
	//
	for _, c := range b.Constraints() {
		if c.Expr.Degree() == 4 {
			highest = append(highest, c.Handle)
		}
	}
	//
	require.Equal(t, []string{"temp_1"}, highest)
}

func Test_Invalid_01(t *testing.T) {
	// Shift amount of 32
	checkRejected[BB](t, shl(1, 32), nil, "shift_range_bits")
}

func Test_Invalid_02(t *testing.T) {
	// Shift amount of 255
	checkRejected[KB](t, shr(1, 255), nil, "shift_range_bits")
}

func Test_Invalid_03(t *testing.T) {
	// Shift amount of 256 has the same low byte as 0
	checkRejected[BB](t, shl(1, 256), nil, "shift_range_2")
}

func Test_Invalid_04(t *testing.T) {
	checkRejected[BB](t, shl(1, 1<<31), nil, "shift_range_0")
}

func Test_Invalid_05(t *testing.T) {
	// Both selectors set
	checkRejected[BB](t, shl(3, 2), func(c *Cols[BB]) {
		c.IsShr = babybear.New(1)
	}, "is_real")
}

func Test_Invalid_06(t *testing.T) {
	// Non-boolean selector
	checkRejected[BB](t, shl(3, 2), func(c *Cols[BB]) {
		c.IsShl = babybear.New(2)
	}, "is_shl")
}

func Test_Invalid_07(t *testing.T) {
	checkRejected[BB](t, shl(3, 5), func(c *Cols[BB]) {
		c.Temp1 = c.Temp1.Add(babybear.New(1))
	}, "temp_1")
}

func Test_Invalid_08(t *testing.T) {
	checkRejected[BB](t, shr(3, 17), func(c *Cols[BB]) {
		c.Temp2 = babybear.New(1)
	}, "temp_2")
}

func Test_Invalid_09(t *testing.T) {
	checkRejected[BB](t, shr(3, 4), func(c *Cols[BB]) {
		c.PowerOfTwo[2] = babybear.New(1)
	}, "power_of_two")
}

func Test_Invalid_10(t *testing.T) {
	// Bit decomposition disagrees with input
	checkRejected[BB](t, shr(3, 4), func(c *Cols[BB]) {
		c.Input2[3] = babybear.New(5)
	}, "byte_decomposition")
}

func Test_Invalid_11(t *testing.T) {
	// Non-boolean bit which nevertheless recomposes correctly
	checkRejected[BB](t, shr(3, 2), func(c *Cols[BB]) {
		c.Bits2[1] = babybear.New(0)
		c.Bits2[0] = babybear.New(2)
	}, "bit_boolean_0")
}

func Test_Invalid_12(t *testing.T) {
	// Power of two disagreeing with the shift amount
	checkRejected[BB](t, shl(3, 2), func(c *Cols[BB]) {
		c.IsShl = babybear.New(0)
		c.IsShr = babybear.New(1)
		c.PowerOfTwo[3] = babybear.New(8)
	}, "power_of_two")
}

// ============================================================================
// Execution
// ============================================================================

func Test_Execute_01(t *testing.T) {
	// SHL32 0(fp), 4(fp), 8(fp) with 5 << 2
	m := newTestMachine[BB]()
	m.ram.Poke(4, machine.WordFromUint32(5))
	m.ram.Poke(8, machine.WordFromUint32(2))
	ExecuteShl[BB](m, machine.Operands{A: 0, B: 4, C: 8})
	//
	require.Equal(t, uint32(20), m.ram.Peek(0).Uint32())
	require.Equal(t, []Operation{shl(5, 2)}, m.shift.Operations())
	//
	tr := m.shift.GenerateTrace(m)
	row := tr.Row(0)
	cols := ReadRow(row)
	require.Equal(t, uint64(5), decodeWord(cols.Input1))
	require.Equal(t, uint64(2), decodeWord(cols.Input2))
	require.Equal(t, uint64(20), decodeWord(cols.Output))
	require.Equal(t, uint64(4), decodeWord(cols.PowerOfTwo))
	require.True(t, cols.IsShl.IsOne())
	require.True(t, cols.IsShr.IsZero())
	// Received from the CPU with opcode SHL32
	receives := m.shift.GlobalReceives(m)
	require.Len(t, receives, 1)
	tuple, count := receives[0].Eval(row)
	require.True(t, count.IsOne())
	require.Equal(t, uint64(m.opcodes.Code(machine.SHL32)), tuple[0].Uint64())
	require.Equal(t, bus.Id(0), receives[0].Bus)
	// Sent to multiplication as 5 * 4 = 20
	sends := m.shift.GlobalSends(m)
	tuple, count = sends[1].Eval(row)
	require.True(t, count.IsOne())
	require.Equal(t, uint64(m.opcodes.Code(machine.MUL32)), tuple[0].Uint64())
	require.Equal(t, elements[BB](0, 0, 0, 5, 0, 0, 0, 4, 0, 0, 0, 20, 0), tuple[1:])
	// Sent to power of two as (2, 4)
	tuple, _ = sends[0].Eval(row)
	require.Equal(t, elements[BB](2, 0, 0, 0, 4), tuple)
	require.Equal(t, bus.Id(1), sends[0].Bus)
	// CPU bus operation
	require.Equal(t, []machine.BusOp{{Opcode: 104, Operands: machine.Operands{A: 0, B: 4, C: 8}}}, m.cpu.BusOps())
	require.Equal(t, uint64(1), m.pow2.Multiplicity(2))
}

func Test_Execute_02(t *testing.T) {
	// SHR32 0(fp), 4(fp), #4 with 0x100 >> 4
	var (
		m   = newTestMachine[BB]()
		ops = machine.Operands{A: 0, B: 4, C: 4, IsImm: true}
	)
	//
	m.ram.Poke(4, machine.WordFromUint32(0x100))
	ExecuteShr[BB](m, ops)
	//
	require.Equal(t, uint32(0x10), m.ram.Peek(0).Uint32())
	require.Len(t, m.cpu.BusOps(), 1)
	busOp := m.cpu.BusOps()[0]
	require.Equal(t, m.opcodes.Code(machine.SHR32), busOp.Opcode)
	require.NotNil(t, busOp.Imm)
	require.Equal(t, machine.WordFromUint32(4), *busOp.Imm)
	// Only one memory read (the immediate is not read)
	require.Len(t, m.ram.Accesses(), 2)
	//
	tr := m.shift.GenerateTrace(m)
	cols := ReadRow(tr.Row(0))
	require.Equal(t, uint64(0x10), decodeWord(cols.Output))
	require.True(t, cols.IsShr.IsOne())
	require.True(t, cols.IsShl.IsZero())
	//
	tuple, _ := m.shift.GlobalReceives(m)[0].Eval(tr.Row(0))
	require.Equal(t, uint64(m.opcodes.Code(machine.SHR32)), tuple[0].Uint64())
	tuple, _ = m.shift.GlobalSends(m)[1].Eval(tr.Row(0))
	require.Equal(t, uint64(m.opcodes.Code(machine.DIV32)), tuple[0].Uint64())
}

func Test_Execute_03(t *testing.T) {
	// Frame pointer applies to all operands, and negative offsets are permitted.
	m := newTestMachine[BB]()
	m.cpu.Fp = 100
	m.ram.Poke(96, machine.WordFromUint32(0x80000001))
	m.ram.Poke(104, machine.WordFromUint32(1))
	ExecuteShr[BB](m, machine.Operands{A: 8, B: -4, C: 4})
	//
	require.Equal(t, uint32(0x40000000), m.ram.Peek(108).Uint32())
}

func Test_Execute_04(t *testing.T) {
	// Shifts of 32 or more are not masked.
	m := newTestMachine[BB]()
	m.ram.Poke(4, machine.WordFromUint32(0xffffffff))
	ExecuteShl[BB](m, machine.Operands{A: 0, B: 4, C: 32, IsImm: true})
	ExecuteShr[BB](m, machine.Operands{A: 8, B: 4, C: 1000, IsImm: true})
	//
	require.Equal(t, uint32(0), m.ram.Peek(0).Uint32())
	require.Equal(t, uint32(0), m.ram.Peek(8).Uint32())
	require.Len(t, m.shift.Operations(), 2)
	// Not recorded in the power of two table
	for s := range uint32(pow2.NumRows) {
		require.Equal(t, uint64(0), m.pow2.Multiplicity(s))
	}
	// Rejected by the constraints
	require.Error(t, chip.Check[BB](m.shift, m.shift.GenerateTrace(m)))
}

func Test_Execute_05(t *testing.T) {
	// Every real row has exactly one selector set.
	m := newTestMachine[BB]()
	rng := rand.New(rand.NewSource(1))
	//
	for i := range 50 {
		m.ram.Poke(4, machine.WordFromUint32(rng.Uint32()))
		ops := machine.Operands{A: 0, B: 4, C: int32(rng.Intn(32)), IsImm: true}
		//
		if i%3 == 0 {
			ExecuteShl[BB](m, ops)
		} else {
			ExecuteShr[BB](m, ops)
		}
	}
	//
	tr := m.shift.GenerateTrace(m)
	require.Equal(t, uint(64), tr.Height())
	//
	for i := range tr.Height() {
		cols := ReadRow(tr.Row(i))
		isReal := i < 50
		require.Equal(t, isReal, cols.IsShl.Add(cols.IsShr).IsOne())
		require.Equal(t, !isReal, cols.IsShl.IsZero() && cols.IsShr.IsZero())
	}
	//
	require.NoError(t, chip.Check[BB](m.shift, tr))
}

// ============================================================================
// Bus
// ============================================================================

func Test_Bus_01(t *testing.T) {
	checkPowerOfTwoBus[BB](t, allShifts())
}

func Test_Bus_02(t *testing.T) {
	checkPowerOfTwoBus[KB](t, allShifts()[:5])
}

func Test_Bus_03(t *testing.T) {
	checkPowerOfTwoBus[BLS](t, allShifts()[:17])
}

func Test_Bus_04(t *testing.T) {
	// Receives match what the CPU sends for each bus operation.
	var (
		m      = newTestMachine[BB]()
		ledger = bus.NewLedger[BB]()
	)
	//
	m.ram.Poke(4, machine.WordFromUint32(0x1234))
	ExecuteShl[BB](m, machine.Operands{A: 8, B: 4, C: 3, IsImm: true})
	ExecuteShr[BB](m, machine.Operands{A: 12, B: 4, C: 3, IsImm: true})
	ExecuteShr[BB](m, machine.Operands{A: 16, B: 4, C: 3, IsImm: true})
	//
	tr := m.shift.GenerateTrace(m)
	ledger.Receive(tr, m.shift.GlobalReceives(m))
	//
	for _, op := range m.cpu.BusOps() {
		var (
			tuple = []BB{babybear.New(uint64(op.Opcode))}
			dst   = m.ram.Peek(uint32(op.Operands.A))
		)
		//
		tuple = append(tuple, wordElements[BB](machine.WordFromUint32(0x1234))...)
		tuple = append(tuple, wordElements[BB](*op.Imm)...)
		tuple = append(tuple, wordElements[BB](dst)...)
		ledger.SendTuple(m.GeneralBus(), tuple, babybear.New(1))
	}
	//
	require.NoError(t, ledger.Check(m.GeneralBus()))
}

// ============================================================================
// Helpers
// ============================================================================

func checkTraceHeight[F field.Element[F]](t *testing.T, n uint, height uint) {
	var c = NewChip[F]()
	//
	for i := range n {
		c.Push(shl(uint32(i), uint32(i%32)))
	}
	//
	tr := c.GenerateTrace(newTestMachine[F]())
	require.Equal(t, height, tr.Height())
	require.Equal(t, uint(NumCols), tr.Width())
	require.Len(t, tr.Values(), int(height*NumCols))
}

func checkTraceRoundTrip[F field.Element[F]](t *testing.T, n int) {
	var (
		c   = NewChip[F]()
		rng = rand.New(rand.NewSource(int64(n)))
	)
	//
	for range n {
		c.Push(Operation{Kind(rng.Intn(2)), machine.WordFromUint32(rng.Uint32()),
			machine.WordFromUint32(rng.Uint32()), machine.WordFromUint32(rng.Uint32())})
	}
	//
	tr := c.GenerateTrace(newTestMachine[F]())
	//
	for i, op := range c.Operations() {
		cols := ReadRow(tr.Row(uint(i)))
		require.Equal(t, uint64(op.Src.Uint32()), decodeWord(cols.Input1))
		require.Equal(t, uint64(op.Shift.Uint32()), decodeWord(cols.Input2))
		require.Equal(t, uint64(op.Dst.Uint32()), decodeWord(cols.Output))
		require.Equal(t, op.Kind == ShiftLeft, cols.IsShl.IsOne())
		require.Equal(t, op.Kind == ShiftRight, cols.IsShr.IsOne())
	}
	// Padding rows are zero
	for i := uint(n); i < tr.Height(); i++ {
		for _, v := range tr.Row(i) {
			require.True(t, v.IsZero())
		}
	}
}

func checkBitDecomposition[F field.Element[F]](t *testing.T) {
	for s := range uint32(256) {
		var (
			cols = OpToCols[F](shl(1, s))
			acc  uint64
		)
		//
		for i, bit := range cols.Bits2 {
			require.True(t, bit.IsZero() || bit.IsOne())
			acc += bit.Uint64() << i
		}
		//
		require.Equal(t, uint64(s), acc)
		require.Equal(t, uint64(s), cols.Input2[3].Uint64())
	}
}

func checkPowerOfTwo[F field.Element[F]](t *testing.T, s uint32) {
	var (
		cols     = OpToCols[F](shl(1, s))
		expected = field.TwoPowN[F](uint(s))
	)
	//
	require.Equal(t, uint64(1)<<s, decodeWord(cols.PowerOfTwo))
	require.True(t, expected.Equals(cols.Temp1.Mul(cols.Temp2)))
	// Recomposition in the field also gives 2^s
	var acc = field.Zero[F]()
	//
	for _, b := range cols.PowerOfTwo {
		acc = acc.Mul(field.Uint64[F](256)).Add(b)
	}
	//
	require.True(t, expected.Equals(acc))
}

func checkConstraints[F field.Element[F]](t *testing.T, ops []Operation) {
	var c = NewChip[F]()
	//
	for _, op := range ops {
		c.Push(op)
	}
	//
	tr := c.GenerateTrace(newTestMachine[F]())
	require.Empty(t, air.CheckAll(chip.Constraints[F](c), tr))
}

func checkConstraintsRandom[F field.Element[F]](t *testing.T, n int) {
	var (
		rng = rand.New(rand.NewSource(2))
		ops []Operation
	)
	//
	for range n {
		var (
			src   = rng.Uint32()
			shift = uint32(rng.Intn(32))
		)
		//
		if rng.Intn(2) == 0 {
			ops = append(ops, shl(src, shift))
		} else {
			ops = append(ops, shr(src, shift))
		}
	}
	//
	checkConstraints[F](t, ops)
}

// Check that a trace holding the given operation, with an optional
// modification to its row, is rejected by the given constraint.
func checkRejected[F field.Element[F]](t *testing.T, op Operation, modify func(*Cols[F]), handle string) {
	var c = NewChip[F]()
	//
	c.Push(op)
	c.Push(shl(1, 1))
	//
	tr := c.GenerateTrace(newTestMachine[F]())
	//
	if modify != nil {
		cols := ReadRow(tr.Row(0))
		modify(&cols)
		cols.WriteRow(tr.Row(0))
	}
	//
	var failure *air.Failure
	//
	require.ErrorAs(t, chip.Check[F](c, tr), &failure)
	require.Equal(t, handle, failure.Handle)
	require.Equal(t, uint(0), failure.Row)
}

func checkPowerOfTwoBus[F field.Element[F]](t *testing.T, ops []Operation) {
	var (
		m      = newTestMachine[F]()
		ledger = bus.NewLedger[F]()
		logup  = bus.NewLogUp(field.Uint64[F](0x1234567), field.Uint64[F](0x7654321))
	)
	//
	for _, op := range ops {
		m.ram.Poke(4, op.Src)
		//
		operands := machine.Operands{A: 0, B: 4, C: int32(op.Shift.Uint32()), IsImm: true}
		//
		if op.Kind == ShiftLeft {
			ExecuteShl[F](m, operands)
		} else {
			ExecuteShr[F](m, operands)
		}
	}
	//
	shiftTrace := m.shift.GenerateTrace(m)
	m.pow2.SetNulls(shiftTrace.Height() - uint(len(ops)))
	pow2Trace := m.pow2.GenerateTrace(m)
	//
	ledger.Send(shiftTrace, m.shift.GlobalSends(m))
	ledger.Receive(pow2Trace, m.pow2.GlobalReceives(m))
	require.NoError(t, ledger.Check(m.PowerOfTwoBus()))
	//
	require.NoError(t, logup.Send(shiftTrace, m.shift.GlobalSends(m)))
	require.NoError(t, logup.Receive(pow2Trace, m.pow2.GlobalReceives(m)))
	require.True(t, logup.Sum(m.PowerOfTwoBus()).IsZero())
	require.NoError(t, chip.Check[F](m.pow2, pow2Trace))
}

// Operations covering every valid shift amount in both directions.
func allShifts() []Operation {
	var ops []Operation
	//
	for s := range uint32(32) {
		ops = append(ops, shl(0x9abcdef1, s), shr(0x9abcdef1, s))
	}
	//
	return ops
}

func shl(src uint32, shift uint32) Operation {
	return Operation{ShiftLeft, machine.WordFromUint32(src << shift), machine.WordFromUint32(src),
		machine.WordFromUint32(shift)}
}

func shr(src uint32, shift uint32) Operation {
	return Operation{ShiftRight, machine.WordFromUint32(src >> shift), machine.WordFromUint32(src),
		machine.WordFromUint32(shift)}
}

func decodeWord[F field.Element[F]](word [machine.WordBytes]F) uint64 {
	var val uint64
	//
	for _, b := range word {
		val = (val << 8) | b.Uint64()
	}
	//
	return val
}

func wordElements[F field.Element[F]](w machine.Word) []F {
	var elems = machine.MapWord(w, func(b byte) F { return field.Uint64[F](uint64(b)) })
	//
	return elems[:]
}

func elements[F field.Element[F]](vals ...uint64) []F {
	var elems = make([]F, len(vals))
	//
	for i, v := range vals {
		elems[i] = field.Uint64[F](v)
	}
	//
	return elems
}

// Minimal machine hosting the shift chip and power-of-two table.
type testMachine[F field.Element[F]] struct {
	cpu     machine.Cpu
	ram     *machine.Ram
	opcodes *machine.Opcodes
	shift   *Chip[F]
	pow2    *pow2.Chip[F]
}

func newTestMachine[F field.Element[F]]() *testMachine[F] {
	return &testMachine[F]{ram: machine.NewRam(), opcodes: machine.DefaultOpcodes(), shift: NewChip[F](),
		pow2: pow2.NewChip[F]()}
}

func (p *testMachine[F]) Cpu() *machine.Cpu            { return &p.cpu }
func (p *testMachine[F]) Memory() machine.Memory       { return p.ram }
func (p *testMachine[F]) Opcodes() *machine.Opcodes    { return p.opcodes }
func (p *testMachine[F]) Shift() *Chip[F]              { return p.shift }
func (p *testMachine[F]) PowerOfTwo() PowerOfTwoLookup { return p.pow2 }
func (p *testMachine[F]) GeneralBus() bus.Id           { return 0 }
func (p *testMachine[F]) PowerOfTwoBus() bus.Id        { return 1 }
func (p *testMachine[F]) RangeBus8() bus.Id            { return 2 }
func (p *testMachine[F]) BatchSize() uint              { return 8 }
