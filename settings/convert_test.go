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
	"math"
	"testing"
)

func TestConvertInts(t *testing.T) {
	if v := Convert[int]("42"); v != 42 {
		t.Errorf("int: got %v", v)
	}
	if v := Convert[int8]("-12"); v != -12 {
		t.Errorf("int8: got %v", v)
	}
	if v := Convert[uint16]("65535"); v != 65535 {
		t.Errorf("uint16: got %v", v)
	}
	if v := Convert[uint32]("0xff"); v != 255 {
		t.Errorf("hex: got %v", v)
	}
	// Malformed, out of range and empty all read as zero.
	if v := Convert[int]("bogus"); v != 0 {
		t.Errorf("malformed: got %v", v)
	}
	if v := Convert[uint8]("300"); v != 0 {
		t.Errorf("overflow: got %v", v)
	}
	if v := Convert[int](""); v != 0 {
		t.Errorf("empty: got %v", v)
	}
	if v := Convert[uint32]("-1"); v != 0 {
		t.Errorf("negative as unsigned: got %v", v)
	}
}

func TestConvertBool(t *testing.T) {
	for _, s := range []string{"true", "yes", "on", "y", "1", "42"} {
		if !Convert[bool](s) {
			t.Errorf("%q should read true", s)
		}
	}
	for _, s := range []string{"false", "no", "off", "n", "0", "", "bogus"} {
		if Convert[bool](s) {
			t.Errorf("%q should read false", s)
		}
	}
}

func TestConvertFloat(t *testing.T) {
	if v := Convert[float64]("1.5"); v != 1.5 {
		t.Errorf("float64: got %v", v)
	}
	if v := Convert[float32]("-0.25"); v != -0.25 {
		t.Errorf("float32: got %v", v)
	}
	if v := Convert[float64]("zzz"); v != 0 {
		t.Errorf("malformed: got %v", v)
	}
}

func TestRoundTrip(t *testing.T) {
	// Exact for integers and booleans.
	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32} {
		if got := Convert[int32](Serialize(v)); got != v {
			t.Errorf("int32 %v: got %v", v, got)
		}
	}
	for _, v := range []uint64{0, 1, math.MaxUint64} {
		if got := Convert[uint64](Serialize(v)); got != v {
			t.Errorf("uint64 %v: got %v", v, got)
		}
	}
	for _, v := range []bool{true, false} {
		if got := Convert[bool](Serialize(v)); got != v {
			t.Errorf("bool %v: got %v", v, got)
		}
	}
	// Floats round-trip to 3-decimal precision only.
	for _, v := range []float64{0, 1.25, -3.141, 1234.5} {
		got := Convert[float64](Serialize(v))
		if math.Abs(got-v) > 0.0005 {
			t.Errorf("float64 %v: got %v", v, got)
		}
	}
}

func TestSerialize(t *testing.T) {
	if s := Serialize(true); s != "true" {
		t.Errorf("bool: got %q", s)
	}
	if s := Serialize(1.5); s != "1.500" {
		t.Errorf("float: got %q", s)
	}
	if s := Serialize(int16(-7)); s != "-7" {
		t.Errorf("int16: got %q", s)
	}
	if s := SerializeBase(255, 16); s != "ff" {
		t.Errorf("base16: got %q", s)
	}
	if s := SerializeBase(255, 10); s != "255" {
		t.Errorf("base10: got %q", s)
	}
}
