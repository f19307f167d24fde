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

	"github.com/consensys/go-alu/pkg/air"
	"github.com/consensys/go-alu/pkg/bus"
	"github.com/consensys/go-alu/pkg/chip"
	"github.com/consensys/go-alu/pkg/machine"
	"github.com/consensys/go-alu/pkg/util/field"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
	"github.com/consensys/go-alu/pkg/util/field/koalabear"
	"github.com/consensys/go-alu/pkg/util/termio"
	"github.com/consensys/go-alu/pkg/vm"
	"github.com/spf13/cobra"
)

var constraintsCmd = &cobra.Command{
	Use:   "constraints [flags]",
	Short: "print the constraints and bus interactions of every chip.",
	Run: func(cmd *cobra.Command, args []string) {
		switch GetFieldConfig(cmd).Name {
		case field.BABYBEAR.Name:
			printConstraints(vm.New[babybear.Element](machine.DefaultOpcodes()))
		case field.KOALABEAR.Name:
			printConstraints(vm.New[koalabear.Element](machine.DefaultOpcodes()))
		case field.BLS12_377.Name:
			printConstraints(vm.New[bls12_377.Element](machine.DefaultOpcodes()))
		}
	},
}

var opcodesCmd = &cobra.Command{
	Use:   "opcodes",
	Short: "print the opcode assigned to each instruction.",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			opcodes   = machine.DefaultOpcodes()
			mnemonics = opcodes.Mnemonics()
			printer   = termio.NewTablePrinter(2, uint(len(mnemonics)))
		)
		//
		for i, m := range mnemonics {
			printer.Set(0, uint(i), m.String())
			printer.Set(1, uint(i), fmt.Sprintf("%d", opcodes.Code(m)))
		}
		//
		printer.AnsiEscapes(false)
		printer.Print(os.Stdout)
	},
}

func printConstraints[F field.Element[F]](m *vm.Machine[F]) {
	for _, c := range m.Chips() {
		var (
			names   = c.ColumnNames()
			builder = air.NewBuilder[F]()
		)
		//
		c.Eval(builder)
		fmt.Printf("%s (%d columns, degree %d)\n", c.Name(), c.Width(), builder.MaxDegree())
		//
		for _, vc := range builder.Constraints() {
			fmt.Printf("  (vanish%s %s %s)\n", domainString(vc), vc.Handle, air.Lisp(vc.Expr, names))
		}
		//
		printInteractions("send", c.GlobalSends(m), names)
		printInteractions("receive", c.GlobalReceives(m), names)
	}
}

func domainString[F field.Element[F]](vc air.VanishingConstraint[F]) string {
	switch {
	case vc.Domain == nil:
		return ""
	case *vc.Domain == 0:
		return ":first"
	case *vc.Domain == -1:
		return ":last"
	default:
		return fmt.Sprintf(":%d", *vc.Domain)
	}
}

func printInteractions[F field.Element[F]](kind string, interactions []bus.Interaction[F], names []string) {
	for _, i := range interactions {
		fmt.Printf("  (%s %s)\n", kind, i.Lisp(names))
	}
}

// Check the machine implements the context required by its chips.
var _ chip.Context = (*vm.Machine[babybear.Element])(nil)

func init() {
	rootCmd.AddCommand(constraintsCmd)
	rootCmd.AddCommand(opcodesCmd)
}
