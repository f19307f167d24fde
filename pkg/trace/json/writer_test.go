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
package json

import (
	"encoding/json"
	"testing"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field/koalabear"
	"github.com/stretchr/testify/require"
)

func Test_JsonWriter_01(t *testing.T) {
	var (
		decoded map[string][]uint64
		values  = []koalabear.Element{koalabear.New(1), koalabear.New(2), koalabear.New(3), koalabear.New(4)}
		table   = trace.NewTable("m", []string{"a", "b"}, trace.NewMatrix(values, 2))
		text    = ToJsonString([]trace.Table[koalabear.Element]{table})
	)
	//
	require.NoError(t, json.Unmarshal([]byte(text), &decoded))
	require.Equal(t, []uint64{1, 3}, decoded["m.a"])
	require.Equal(t, []uint64{2, 4}, decoded["m.b"])
}

func Test_JsonWriter_02(t *testing.T) {
	require.Equal(t, "{}", ToJsonString[koalabear.Element](nil))
}
