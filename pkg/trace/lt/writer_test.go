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
package lt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field/babybear"
	"github.com/consensys/go-alu/pkg/util/field/bls12_377"
	"github.com/stretchr/testify/require"
)

func Test_LtWriter_01(t *testing.T) {
	var (
		values = []babybear.Element{babybear.New(0x01020304), babybear.New(5)}
		table  = trace.NewTable("m", []string{"x"}, trace.NewMatrix(values, 1))
	)
	//
	data, err := ToBytes([]trace.Table[babybear.Element]{table})
	require.NoError(t, err)
	//
	buf := bytes.NewReader(data)
	require.Equal(t, uint32(1), readUint32(t, buf))
	// name
	var nameLen uint16
	require.NoError(t, binary.Read(buf, binary.BigEndian, &nameLen))
	name := make([]byte, nameLen)
	_, err = buf.Read(name)
	require.NoError(t, err)
	require.Equal(t, "m.x", string(name))
	// byte width & length
	width, err := buf.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(4), width)
	require.Equal(t, uint32(2), readUint32(t, buf))
	// data
	require.Equal(t, uint32(0x01020304), readUint32(t, buf))
	require.Equal(t, uint32(5), readUint32(t, buf))
	require.Equal(t, 0, buf.Len())
}

func Test_LtWriter_02(t *testing.T) {
	var (
		values = []bls12_377.Element{bls12_377.New(7)}
		table  = trace.NewTable("m", []string{"x"}, trace.NewMatrix(values, 1))
	)
	//
	data, err := ToBytes([]trace.Table[bls12_377.Element]{table})
	require.NoError(t, err)
	// 4 (ncols) + 2 + 3 (name) + 1 (width) + 4 (length) + 32 (data)
	require.Len(t, data, 46)
	require.Equal(t, byte(32), data[9])
	require.Equal(t, byte(7), data[len(data)-1])
}

func readUint32(t *testing.T, buf *bytes.Reader) uint32 {
	var val uint32
	//
	require.NoError(t, binary.Read(buf, binary.BigEndian, &val))
	//
	return val
}
