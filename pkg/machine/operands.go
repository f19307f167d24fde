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
package machine

import "fmt"

// Operands of a three-address instruction.  A is the destination offset, B the
// first source offset and C either the second source offset or, when IsImm
// holds, an immediate value.  Offsets are relative to the frame pointer.
type Operands struct {
	A     int32
	B     int32
	C     int32
	IsImm bool
}

// Imm returns the immediate held in C as a word.
func (p Operands) Imm() Word {
	return WordFromUint32(uint32(p.C))
}

func (p Operands) String() string {
	if p.IsImm {
		return fmt.Sprintf("%d(fp), %d(fp), #%d", p.A, p.B, p.C)
	}
	//
	return fmt.Sprintf("%d(fp), %d(fp), %d(fp)", p.A, p.B, p.C)
}

// Address computes fp + offset, wrapping on overflow.
func Address(fp uint32, offset int32) uint32 {
	return uint32(int64(fp) + int64(offset))
}
