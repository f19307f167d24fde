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
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Table_01(t *testing.T) {
	var (
		buf   bytes.Buffer
		table = NewTablePrinter(2, 2)
	)
	//
	table.Set(0, 0, "x")
	table.Set(1, 0, "y")
	table.Set(0, 1, "10")
	table.Set(1, 1, "200")
	table.Print(&buf)
	//
	require.Equal(t, "  x |   y |\n 10 | 200 |\n", buf.String())
	require.Equal(t, uint(2), table.Width())
	require.Equal(t, uint(2), table.Height())
	require.Equal(t, "200", table.Get(1, 1))
}

func Test_Table_02(t *testing.T) {
	var (
		buf   bytes.Buffer
		table = NewTablePrinter(1, 1)
	)
	//
	table.Set(0, 0, "123456789")
	table.SetMaxWidths(5)
	table.Print(&buf)
	//
	require.Equal(t, " 123.. |\n", buf.String())
}

func Test_Table_03(t *testing.T) {
	var (
		buf    bytes.Buffer
		table  = NewTablePrinter(1, 1)
		escape = NewAnsiEscape().FgColour(TERM_RED)
	)
	//
	table.Set(0, 0, "a")
	table.SetEscape(0, 0, escape)
	table.Print(&buf)
	require.Equal(t, "\033[31m a\033[0m |\n", buf.String())
	//
	buf.Reset()
	table.AnsiEscapes(false)
	table.Print(&buf)
	require.Equal(t, " a |\n", buf.String())
}

func Test_Escape_01(t *testing.T) {
	require.Equal(t, "\033[1;32;44m", BoldAnsiEscape().FgColour(TERM_GREEN).BgColour(TERM_BLUE).Build())
}
