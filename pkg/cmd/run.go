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
package cmd

import (
	"fmt"
	"os"
	"path"

	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/trace/json"
	"github.com/consensys/go-alu/pkg/trace/lt"
	"github.com/consensys/go-alu/pkg/util/field"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
	"github.com/consensys/go-alu/pkg/util/field/koalabear"
	"github.com/consensys/go-alu/pkg/util/termio"
	"github.com/consensys/go-alu/pkg/vm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program_file",
	Short: "execute a program and check the resulting traces.",
	Long: `Execute a given program (in JSON format), generate the trace of every chip
	 and check them against their constraints and the power-of-two bus.  Exits with
	 status 1 if any check fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			cfg runConfig
			ok  bool
		)
		//
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(2)
		}
		//
		cfg.output = GetString(cmd, "out")
		cfg.print = GetFlag(cmd, "print")
		cfg.residue = GetFlag(cmd, "residue")
		cfg.batchSize = GetUint(cmd, "batch")
		cfg.maxWidth = GetUint(cmd, "max-width")
		//
		switch GetFieldConfig(cmd).Name {
		case field.BABYBEAR.Name:
			ok = runProgram[babybear.Element](args[0], cfg)
		case field.KOALABEAR.Name:
			ok = runProgram[koalabear.Element](args[0], cfg)
		case field.BLS12_377.Name:
			ok = runProgram[bls12_377.Element](args[0], cfg)
		}
		//
		if !ok {
			os.Exit(1)
		}
	},
}

type runConfig struct {
	// Trace file to write (if any)
	output string
	// Print traces to the terminal
	print bool
	// Print general bus residue
	residue bool
	// Rows per go-routine during trace generation
	batchSize uint
	// Maximum width of a printed column (0 to fit the terminal)
	maxWidth uint
}

// Execute a program over a given field, returning true if the resulting traces
// are accepted.
func runProgram[F field.Element[F]](filename string, cfg runConfig) bool {
	var m = vm.New[F](machine.DefaultOpcodes()).WithBatchSize(cfg.batchSize)
	//
	program, err := vm.ReadProgramFile(filename, m.Opcodes())
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if err = m.Execute(program); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	tables := m.Traces()
	//
	if cfg.print {
		printTraces(tables, cfg.maxWidth)
	}
	//
	if cfg.output != "" {
		writeTraceFile(cfg.output, tables)
	}
	//
	if cfg.residue {
		printResidue(m.Opcodes(), m.GeneralBusResidue(tables))
	}
	//
	if err = m.Verify(tables); err != nil {
		fmt.Println(err)
		return false
	}
	//
	log.Infof("%d shift operations verified", len(m.Shift().Operations()))
	//
	return true
}

// Write a trace file using a writer based on the extension of the filename.
func writeTraceFile[F field.Element[F]](filename string, tables []trace.Table[F]) {
	var (
		bytes []byte
		err   error
	)
	// Check file extension
	switch ext := path.Ext(filename); ext {
	case ".json":
		bytes = []byte(json.ToJsonString(tables))
	case ".lt":
		bytes, err = lt.ToBytes(tables)
	default:
		err = fmt.Errorf("unknown trace file format: %s", ext)
	}
	//
	if err == nil {
		err = os.WriteFile(filename, bytes, 0644)
	}
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// Print each trace as a table, highlighting the non-zero cells when writing to
// a terminal.
func printTraces[F field.Element[F]](tables []trace.Table[F], maxWidth uint) {
	var (
		colour  = termio.IsTerminal(os.Stdout)
		header  = termio.BoldAnsiEscape()
		nonzero = termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	)
	//
	for _, t := range tables {
		var (
			width   = t.Width() + 1
			printer = termio.NewTablePrinter(width, t.Height()+1)
		)
		//
		printer.Set(0, 0, t.Module)
		printer.SetEscape(0, 0, header)
		//
		for j, name := range t.Columns {
			printer.Set(uint(j)+1, 0, name)
			printer.SetEscape(uint(j)+1, 0, header)
		}
		//
		for i := range t.Height() {
			printer.Set(0, i+1, fmt.Sprintf("%d", i))
			//
			for j, v := range t.Row(i) {
				printer.Set(uint(j)+1, i+1, v.Text(10))
				//
				if !v.IsZero() {
					printer.SetEscape(uint(j)+1, i+1, nonzero)
				}
			}
		}
		// Fit the terminal, if there is one.
		limit := maxWidth
		//
		if termWidth, ok := termio.TerminalWidth(os.Stdout); ok && limit == 0 {
			limit = max(7, termWidth/width) - 3
		}
		//
		if limit != 0 {
			printer.SetMaxWidths(limit)
		}
		//
		printer.AnsiEscapes(colour)
		printer.Print(os.Stdout)
		fmt.Println()
	}
}

// Print the tuples left on the general bus, decoding opcodes and words where
// possible.
func printResidue[F field.Element[F]](opcodes *machine.Opcodes, residue []*bus.Imbalance[F]) {
	for _, r := range residue {
		var (
			name  = "padding"
			words []string
		)
		//
		if m, ok := opcodes.Lookup(uint32(r.Tuple[0].Uint64())); ok {
			name = m.String()
		}
		// Words follow the opcode
		for i := 1; i+machine.WordBytes <= len(r.Tuple); i += machine.WordBytes {
			var w machine.Word
			//
			for j := range w {
				w[j] = byte(r.Tuple[i+j].Uint64())
			}
			//
			words = append(words, w.String())
		}
		//
		fmt.Printf("%s %v x%s\n", name, words, r.Count.Text(10))
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("out", "o", "", "write traces to a file (.json or .lt)")
	runCmd.Flags().BoolP("print", "p", false, "print traces")
	runCmd.Flags().Bool("residue", false, "print tuples left on the general bus")
	runCmd.Flags().Uint("batch", 1024, "number of rows generated per go-routine")
	runCmd.Flags().Uint("max-width", 0, "maximum width of a printed column (0 fits the terminal)")
}
