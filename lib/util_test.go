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

package lib

import (
	"testing"
)

func TestConfigOrDefault(t *testing.T) {
	if v := ConfigOrDefault(0, 30); v != 30 {
		t.Errorf("Zero int: got %v", v)
	}
	if v := ConfigOrDefault(15, 30); v != 15 {
		t.Errorf("Set int: got %v", v)
	}
	if v := ConfigOrDefault("", "settings.bin"); v != "settings.bin" {
		t.Errorf("Empty string: got %q", v)
	}
	if v := ConfigOrDefault("custom.bin", "settings.bin"); v != "custom.bin" {
		t.Errorf("Set string: got %q", v)
	}
}

func TestFmtFloat(t *testing.T) {
	for _, c := range []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{287.25, "287.25"},
		{230.0, "230"},
		{0.1, "0.1"},
		{99.999, "100"},
	} {
		if got := FmtFloat(c.in); got != c.want {
			t.Errorf("FmtFloat(%v): got %q want %q", c.in, got, c.want)
		}
	}
}
