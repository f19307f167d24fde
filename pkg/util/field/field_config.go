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
package field

// BABYBEAR is the 31bit BabyBear field (p = 15·2²⁷ + 1), the default for the
// machine.
var BABYBEAR = Config{"BABYBEAR", 30, 2013265921}

// KOALABEAR is the 31bit KoalaBear field (p = 2³¹ - 2²⁴ + 1).
var KOALABEAR = Config{"KOALABEAR", 30, 2130706433}

// BLS12_377 is the scalar field of the BLS12-377 curve.  Its modulus does not
// fit in a uint64, hence the zero.
var BLS12_377 = Config{"BLS12_377", 252, 0}

// FIELD_CONFIGS determines the set of supported fields.
var FIELD_CONFIGS = []Config{
	BABYBEAR,
	KOALABEAR,
	BLS12_377,
}

// Config provides a simple mechanism for selecting the field over which traces
// are generated.
type Config struct {
	// Name suitable for identifying the config.  This is only really used for
	// improving error reporting, etc.
	Name string
	// Maximum field bandwidth available in the field.
	BandWidth uint
	// Modulus of the field, when it fits in 64 bits (otherwise zero).
	Modulus uint64
}

// GetConfig returns the field configuration corresponding with the given
// name, or nil no such config exists.
func GetConfig(name string) *Config {
	for i := range FIELD_CONFIGS {
		if FIELD_CONFIGS[i].Name == name {
			return &FIELD_CONFIGS[i]
		}
	}
	//
	return nil
}
