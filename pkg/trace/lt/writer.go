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
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/consensys/go-alu/pkg/trace"
	"github.com/consensys/go-alu/pkg/util/field"
)

// ToBytes writes a given set of tables into an array of bytes.
func ToBytes[F field.Element[F]](tables []trace.Table[F]) ([]byte, error) {
	var buf bytes.Buffer
	//
	if err := WriteBytes(tables, &buf); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// WriteBytes writes a given set of tables to an io.Writer.  The format
// consists of a header followed by the column data.  The header gives the
// column count, and then for each column its qualified name (length prefixed),
// the number of bytes per element and the number of elements.  All integers are
// big endian.  Column data follows in the same order, each element written as a
// fixed width big endian integer.
func WriteBytes[F field.Element[F]](tables []trace.Table[F], buf io.Writer) error {
	var (
		ncols     = 0
		byteWidth = elementByteWidth[F]()
	)
	//
	for _, t := range tables {
		ncols += len(t.Columns)
	}
	// Write column count
	if err := binary.Write(buf, binary.BigEndian, uint32(ncols)); err != nil {
		return err
	}
	// Write header information
	for _, t := range tables {
		for _, col := range t.Columns {
			if err := writeColumnHeader(buf, trace.QualifiedColumnName(t.Module, col), byteWidth, t.Height()); err != nil {
				return err
			}
		}
	}
	// Write column data information
	for _, t := range tables {
		for col := range t.Columns {
			if err := writeColumnData(buf, t, uint(col), byteWidth); err != nil {
				return err
			}
		}
	}
	// Done
	return nil
}

func writeColumnHeader(buf io.Writer, name string, byteWidth uint8, length uint) error {
	nameBytes := []byte(name)
	//
	if len(nameBytes) > math.MaxUint16 {
		return fmt.Errorf("column name %s too long", name)
	}
	// Write name length
	if err := binary.Write(buf, binary.BigEndian, uint16(len(nameBytes))); err != nil {
		return err
	}
	// Write name bytes
	if _, err := buf.Write(nameBytes); err != nil {
		return err
	}
	// Write bytes per element
	if err := binary.Write(buf, binary.BigEndian, byteWidth); err != nil {
		return err
	}
	// Write data length
	return binary.Write(buf, binary.BigEndian, uint32(length))
}

func writeColumnData[F field.Element[F]](buf io.Writer, t trace.Table[F], col uint, byteWidth uint8) error {
	var (
		val   big.Int
		bytes = make([]byte, byteWidth)
	)
	//
	for row := uint(0); row < t.Height(); row++ {
		t.Get(row, col).BigInt(&val).FillBytes(bytes)
		//
		if _, err := buf.Write(bytes); err != nil {
			return err
		}
	}
	//
	return nil
}

// Determine number of bytes required to hold any element of the field.
func elementByteWidth[F field.Element[F]]() uint8 {
	var (
		zero     F
		bitwidth = zero.Modulus().BitLen()
	)
	//
	return uint8((bitwidth + 7) / 8)
}
