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
package vm

import (
	"errors"
	"fmt"

	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/chip/pow2"
	"github.com/consensys/go-alu/pkg/chip/range8"
	"github.com/consensys/go-alu/pkg/chip/shift"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util"
	"github.com/consensys/go-alu/pkg/util/field"
	log "github.com/sirupsen/logrus"
)

// Bus identifiers assigned by the machine.
const (
	// GeneralBus connects the CPU with the instruction chips.
	GeneralBus bus.Id = iota
	// PowerOfTwoBus connects chips needing powers of two with the power-of-two
	// table.
	PowerOfTwoBus
	// RangeBus8 connects chips needing byte range checks with the range table.
	RangeBus8
)

// Machine executes programs, recording the operations performed by each chip,
// and subsequently generates and checks the traces of those chips.
type Machine[F field.Element[F]] struct {
	cpu          machine.Cpu
	ram          *machine.Ram
	opcodes      *machine.Opcodes
	instructions *machine.InstructionSet[*Machine[F]]
	shift        *shift.Chip[F]
	pow2         *pow2.Chip[F]
	range8       *range8.Chip[F]
	batchSize    uint
	halted       bool
	// Tuples sent by the CPU on the general bus, one per bus operation.
	cpuSends []CpuSend
	// Generated traces, or nil if not yet generated.
	tables []trace.Table[F]
}

// CpuSend is the tuple sent by the CPU on the general bus for a dispatched
// instruction.  That is, the opcode along with the values of its two operands
// and its result.
type CpuSend struct {
	Opcode uint32
	B      machine.Word
	C      machine.Word
	A      machine.Word
}

// New constructs a machine with empty memory which uses a given opcode table.
func New[F field.Element[F]](opcodes *machine.Opcodes) *Machine[F] {
	var m = &Machine[F]{
		opcodes:      opcodes,
		instructions: machine.NewInstructionSet[*Machine[F]](),
		batchSize:    chip.DefaultBatchSize,
	}
	//
	m.reset()
	m.registerInstructions()
	//
	return m
}

// WithBatchSize sets the number of rows generated by each go-routine during
// trace generation.
func (p *Machine[F]) WithBatchSize(batchSize uint) *Machine[F] {
	p.batchSize = batchSize
	return p
}

// Cpu implementation for the machine.State interface.
func (p *Machine[F]) Cpu() *machine.Cpu { return &p.cpu }

// Memory implementation for the machine.State interface.
func (p *Machine[F]) Memory() machine.Memory { return p.ram }

// Opcodes implementation for the machine.State and chip.Context interfaces.
func (p *Machine[F]) Opcodes() *machine.Opcodes { return p.opcodes }

// Shift implementation for the shift.Machine interface.
func (p *Machine[F]) Shift() *shift.Chip[F] { return p.shift }

// PowerOfTwo implementation for the shift.Machine interface.
func (p *Machine[F]) PowerOfTwo() shift.PowerOfTwoLookup { return p.pow2 }

// GeneralBus implementation for the chip.Context interface.
func (p *Machine[F]) GeneralBus() bus.Id { return GeneralBus }

// PowerOfTwoBus implementation for the chip.Context interface.
func (p *Machine[F]) PowerOfTwoBus() bus.Id { return PowerOfTwoBus }

// RangeBus8 implementation for the chip.Context interface.
func (p *Machine[F]) RangeBus8() bus.Id { return RangeBus8 }

// BatchSize implementation for the chip.Context interface.
func (p *Machine[F]) BatchSize() uint { return p.batchSize }

// Ram returns the memory of this machine.
func (p *Machine[F]) Ram() *machine.Ram { return p.ram }

// CpuSends returns the tuples sent by the CPU on the general bus so far.
func (p *Machine[F]) CpuSends() []CpuSend { return p.cpuSends }

// Chips returns the chips of this machine, in trace order.
func (p *Machine[F]) Chips() []chip.Chip[F] {
	return []chip.Chip[F]{p.shift, p.pow2, p.range8}
}

// Clear everything recorded by a previous execution.
func (p *Machine[F]) reset() {
	p.cpu = machine.Cpu{}
	p.ram = machine.NewRam()
	p.shift = shift.NewChip[F]()
	p.pow2 = pow2.NewChip[F]()
	p.range8 = range8.NewChip[F]()
	p.halted = false
	p.cpuSends = nil
	p.tables = nil
}

// Execute a given program until either a STOP instruction is reached, or
// execution runs off the end of the program.  An error is returned for any
// instruction which this machine cannot execute.  Each execution starts from
// empty memory and chips, discarding whatever an earlier execution recorded.
func (p *Machine[F]) Execute(program *Program) error {
	var stats = util.NewPerfStats()
	//
	p.reset()
	//
	for addr, val := range program.Memory {
		p.ram.Poke(addr, val)
	}
	//
	p.cpu.Fp = program.Fp
	//
	for !p.halted && p.cpu.Pc < uint32(len(program.Instructions)) {
		var (
			insn         = program.Instructions[p.cpu.Pc]
			mnemonic, ok = p.opcodes.Lookup(insn.Opcode)
			exec, found  = p.instructions.Lookup(insn.Opcode)
		)
		//
		if !ok {
			return fmt.Errorf("unknown opcode %d (pc %d)", insn.Opcode, p.cpu.Pc)
		} else if !found {
			return fmt.Errorf("unsupported instruction %s (pc %d)", mnemonic, p.cpu.Pc)
		}
		//
		log.Debugf("[%d] %s %s", p.cpu.Clock, mnemonic, insn.Operands)
		//
		var (
			nops      = len(p.cpu.BusOps())
			naccesses = len(p.ram.Accesses())
		)
		//
		exec(p, insn.Operands)
		// Record what the CPU sends for any dispatched instruction.
		if len(p.cpu.BusOps()) > nops {
			p.recordCpuSend(p.cpu.BusOps()[nops], p.ram.Accesses()[naccesses:])
		}
		//
		p.cpu.Pc++
		p.cpu.Clock++
	}
	//
	stats.Log(fmt.Sprintf("Executing program (%d steps)", p.cpu.Clock))
	//
	return nil
}

// Determine the operand values of a bus operation from the memory accesses it
// made.  The first operand is always read, whilst the second is either read or
// immediate.
func (p *Machine[F]) recordCpuSend(op machine.BusOp, accesses []machine.Access) {
	var (
		send   = CpuSend{Opcode: op.Opcode}
		nreads int
	)
	//
	for _, access := range accesses {
		switch {
		case access.IsWrite:
			send.A = access.Value
		case nreads == 0:
			send.B = access.Value
			nreads++
		default:
			send.C = access.Value
			nreads++
		}
	}
	//
	if op.Imm != nil {
		send.C = *op.Imm
	}
	//
	p.cpuSends = append(p.cpuSends, send)
}

// Traces generates the trace of every chip, in the order given by Chips.  The
// power-of-two table absorbs the null tuples sent by padding rows of the shift
// chip, and the byte range table counts the bytes sent by the power-of-two
// table, hence each trace is generated after those it depends upon.  Traces
// are generated once and then reused until the next execution.
func (p *Machine[F]) Traces() []trace.Table[F] {
	if p.tables != nil {
		return p.tables
	}
	//
	var (
		stats      = util.NewPerfStats()
		shiftTable = chip.Table[F](p.shift, p)
	)
	//
	p.pow2.SetNulls(shiftTable.Height() - uint(len(p.shift.Operations())))
	//
	pow2Table := chip.Table[F](p.pow2, p)
	p.range8.Record(pow2Table.Matrix, p.pow2.GlobalSends(p), RangeBus8)
	//
	p.tables = []trace.Table[F]{shiftTable, pow2Table, chip.Table[F](p.range8, p)}
	//
	stats.Log("Generating traces")
	//
	return p.tables
}

// Verify checks the given traces (as generated by Traces) against the
// constraints of every chip, reporting every failing constraint.  It then
// checks that the power-of-two and byte range buses balance.  Furthermore,
// every tuple the CPU sends on the general bus must be received by some chip.
// The remaining general bus tuples are those destined for chips which this
// machine does not host (see GeneralBusResidue).  Finally, the buses are
// checked again using logarithmic derivatives, with challenges drawn from the
// traces themselves.
func (p *Machine[F]) Verify(tables []trace.Table[F]) error {
	var (
		stats    = util.NewPerfStats()
		chips    = p.Chips()
		failures []error
	)
	//
	if len(tables) != len(chips) {
		return fmt.Errorf("expected %d traces, found %d", len(chips), len(tables))
	}
	//
	for i, c := range chips {
		if tables[i].Width() != c.Width() {
			return fmt.Errorf("trace %s has %d columns (expected %d)", c.Name(), tables[i].Width(), c.Width())
		} else if err := chip.Check(c, tables[i].Matrix); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", c.Name(), err))
		}
	}
	//
	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	//
	ledger := p.ledger(tables)
	//
	for _, id := range []bus.Id{PowerOfTwoBus, RangeBus8} {
		if err := ledger.Check(id); err != nil {
			return err
		}
	}
	// Dispatched instructions must be matched exactly by their chip.
	residue := ledger.Imbalances(GeneralBus)
	//
	for _, imbalance := range residue {
		if p.isDispatched(imbalance.Tuple[0]) {
			return imbalance
		}
	}
	//
	if err := p.checkLogUp(tables, residue); err != nil {
		return err
	}
	//
	stats.Log("Verifying traces")
	//
	return nil
}

// Check every bus balances using logarithmic derivatives.  The challenges are
// drawn from a transcript of the traces and the CPU's tuples, whilst the
// general bus residue is received on behalf of the chips not hosted here.
func (p *Machine[F]) checkLogUp(tables []trace.Table[F], residue []*bus.Imbalance[F]) error {
	var transcript = bus.NewTranscript("alu/logup")
	//
	for _, table := range tables {
		bus.AbsorbTable(transcript, table)
	}
	//
	for _, send := range p.cpuSends {
		bus.AbsorbElements(transcript, p.cpuTuple(send))
	}
	//
	var (
		alpha = bus.Challenge[F](transcript)
		beta  = bus.Challenge[F](transcript)
		logup = bus.NewLogUp(alpha, beta)
	)
	//
	for i, c := range p.Chips() {
		if err := logup.Send(tables[i].Matrix, c.GlobalSends(p)); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		} else if err := logup.Receive(tables[i].Matrix, c.GlobalReceives(p)); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	//
	for _, send := range p.cpuSends {
		if err := logup.SendTuple(GeneralBus, p.cpuTuple(send), field.One[F]()); err != nil {
			return err
		}
	}
	//
	for _, r := range residue {
		if err := logup.ReceiveTuple(GeneralBus, r.Tuple, r.Count); err != nil {
			return err
		}
	}
	//
	for _, id := range []bus.Id{GeneralBus, PowerOfTwoBus, RangeBus8} {
		if err := logup.Check(id); err != nil {
			return err
		}
	}
	//
	return nil
}

// GeneralBusResidue returns the tuples left on the general bus once every
// hosted chip and the CPU have sent and received their tuples.  These are the
// multiplications and divisions sent by the shift chip (including those of its
// padding rows) for which no chip is hosted.
func (p *Machine[F]) GeneralBusResidue(tables []trace.Table[F]) []*bus.Imbalance[F] {
	return p.ledger(tables).Imbalances(GeneralBus)
}

func (p *Machine[F]) ledger(tables []trace.Table[F]) *bus.Ledger[F] {
	var ledger = bus.NewLedger[F]()
	//
	for i, c := range p.Chips() {
		ledger.Send(tables[i].Matrix, c.GlobalSends(p))
		ledger.Receive(tables[i].Matrix, c.GlobalReceives(p))
	}
	//
	for _, send := range p.cpuSends {
		ledger.SendTuple(GeneralBus, p.cpuTuple(send), field.One[F]())
	}
	//
	return ledger
}

// Check whether a given opcode is one which the CPU dispatches to this
// machine's chips.
func (p *Machine[F]) isDispatched(opcode F) bool {
	for _, m := range []machine.Mnemonic{machine.SHL32, machine.SHR32} {
		if opcode.Equals(field.Uint64[F](uint64(p.opcodes.Code(m)))) {
			return true
		}
	}
	//
	return false
}

func (p *Machine[F]) cpuTuple(send CpuSend) []F {
	var tuple = []F{field.Uint64[F](uint64(send.Opcode))}
	//
	for _, w := range []machine.Word{send.B, send.C, send.A} {
		for _, b := range w {
			tuple = append(tuple, field.Uint64[F](uint64(b)))
		}
	}
	//
	return tuple
}
