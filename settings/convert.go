// Copyright 2025 Andrew McRae
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package settings

import (
	"strconv"
)

// Scalar is the closed set of primitive types the settings store can
// parse and format.
type Scalar interface {
	bool | float32 | float64 |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64
}

// Convert parses stored text into a primitive value. Malformed or
// empty text yields the type's zero value, never a failure: a caller
// that needs a non-zero fallback supplies it at the accessor layer,
// which only applies the default when the key is absent entirely.
// Integers accept 0x/0b/0o prefixes via base-0 parsing.
func Convert[T Scalar](value string) T {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = convertBool(value)
	case *float64:
		*p = convertFloat(value)
	case *float32:
		*p = float32(convertFloat(value))
	case *int:
		*p = int(convertInt(value, strconv.IntSize))
	case *int8:
		*p = int8(convertInt(value, 8))
	case *int16:
		*p = int16(convertInt(value, 16))
	case *int32:
		*p = int32(convertInt(value, 32))
	case *int64:
		*p = convertInt(value, 64)
	case *uint:
		*p = uint(convertUint(value, strconv.IntSize))
	case *uint8:
		*p = uint8(convertUint(value, 8))
	case *uint16:
		*p = uint16(convertUint(value, 16))
	case *uint32:
		*p = uint32(convertUint(value, 32))
	case *uint64:
		*p = convertUint(value, 64)
	}
	return v
}

func convertBool(value string) bool {
	switch value {
	case "true", "yes", "on", "y":
		return true
	case "false", "no", "off", "n":
		return false
	}
	return convertUint(value, 64) != 0
}

func convertFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

func convertInt(value string, bits int) int64 {
	n, err := strconv.ParseInt(value, 0, bits)
	if err != nil {
		return 0
	}
	return n
}

func convertUint(value string, bits int) uint64 {
	n, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return 0
	}
	return n
}

// Serialize formats a primitive value as stored text. Booleans are
// fixed keyword tokens and floats use fixed 3-decimal precision, so the
// float round trip through Convert is only exact to 3 decimals.
// Integers format in base 10; use SerializeBase for another base.
func Serialize[T Scalar](value T) string {
	switch v := any(value).(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', 3, 32)
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return ""
}

// SerializeBase formats an unsigned value in the given base. No base
// prefix is added; only base-10 text round-trips through Convert.
func SerializeBase(value uint64, base int) string {
	return strconv.FormatUint(value, base)
}
