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

package units

import (
	"math"
	"testing"
)

func TestEnergyCarry(t *testing.T) {
	var e Energy
	e.Add(WattSeconds{3_600_000})
	kwh, ws := e.Pair()
	if kwh.Value != 1 || ws.Value != 0 {
		t.Errorf("Carry: got %v kWh %v Ws, want 1 kWh 0 Ws", kwh.Value, ws.Value)
	}
	e = Energy{}
	e.Add(WattSeconds{3_600_001})
	e.Add(WattSeconds{3_600_001})
	kwh, ws = e.Pair()
	if kwh.Value != 2 || ws.Value != 2 {
		t.Errorf("Carry: got %v kWh %v Ws, want 2 kWh 2 Ws", kwh.Value, ws.Value)
	}
}

func TestEnergyMultiCarry(t *testing.T) {
	// A single large delta can carry multiple kWh.
	var e Energy
	e.Add(WattSeconds{3 * 3_600_000})
	kwh, ws := e.Pair()
	if kwh.Value != 3 || ws.Value != 0 {
		t.Errorf("Multi carry: got %v kWh %v Ws", kwh.Value, ws.Value)
	}
}

func TestEnergyResetAndValidity(t *testing.T) {
	var e Energy
	if !e.IsZero() {
		t.Errorf("Fresh accumulator should be zero")
	}
	e.Add(WattSeconds{1})
	if e.IsZero() {
		t.Errorf("Accumulator with energy should not be zero")
	}
	e.Reset()
	if !e.IsZero() {
		t.Errorf("Reset accumulator should be zero")
	}
	e.Add(WattSeconds{1})
	if e.IsZero() {
		t.Errorf("Accumulate after reset should not be zero")
	}
}

func TestEnergyAsDouble(t *testing.T) {
	e := NewEnergy(KilowattHours{2}, WattSeconds{1_800_000})
	if !cmp(e.AsDouble(), 2.5) {
		t.Errorf("AsDouble: got %v want 2.5", e.AsDouble())
	}
	if e.String() != "2.500" {
		t.Errorf("String: got %q want 2.500", e.String())
	}
}

func TestEnergyFlattenedView(t *testing.T) {
	e := NewEnergy(KilowattHours{1}, WattSeconds{42})
	ws, ok := e.AsWattSeconds()
	if !ok || ws.Value != 3_600_042 {
		t.Errorf("AsWattSeconds: got %v, %v", ws.Value, ok)
	}
	// Above 32 bits the flattened view must report overflow, never wrap.
	e = EnergyFromKilowattHours(KilowattHours{KwhLimit})
	e.Add(WattSeconds{3_599_999})
	if _, ok := e.AsWattSeconds(); ok {
		t.Errorf("AsWattSeconds should overflow past 32 bits")
	}
}

func TestEnergyCeilingReset(t *testing.T) {
	// Crossing KwhLimit resets the accumulator; the total restarts
	// from zero rather than wrapping to a false value.
	e := EnergyFromKilowattHours(KilowattHours{KwhLimit})
	e.Add(WattSeconds{3_599_999})
	if e.IsZero() {
		t.Errorf("Accumulator below ceiling should hold its total")
	}
	e.Add(WattSeconds{1})
	if !e.IsZero() {
		t.Errorf("Crossing the ceiling should reset the accumulator")
	}
}

func TestEnergyFromDouble(t *testing.T) {
	// Integer part is whole kWh, fractional part scales into the
	// watt-second remainder.
	e := EnergyFromDouble(2.5)
	kwh, ws := e.Pair()
	if kwh.Value != 2 || ws.Value != 1_800_000 {
		t.Errorf("FromDouble: got %v kWh %v Ws", kwh.Value, ws.Value)
	}
	// Round trip through the display value.
	e2 := EnergyFromDouble(e.AsDouble())
	if e2 != e {
		t.Errorf("FromDouble round trip: got %+v want %+v", e2, e)
	}
	if !EnergyFromDouble(-1).IsZero() {
		t.Errorf("Negative input should give an empty accumulator")
	}
}

func TestEnergyFromDoubleCeiling(t *testing.T) {
	// The ceiling applies on entry too, not just while accumulating.
	e := EnergyFromDouble(float64(KwhLimit) + 0.5)
	kwh, _ := e.Pair()
	if kwh.Value != KwhLimit {
		t.Errorf("At ceiling: got %v kWh want %v", kwh.Value, KwhLimit)
	}
	for _, v := range []float64{float64(KwhLimit) + 1, 5e9, math.MaxUint32 + 1.0} {
		if e := EnergyFromDouble(v); !e.IsZero() {
			t.Errorf("FromDouble(%v): got %v, want empty", v, e.AsDouble())
		}
	}
}

func TestEnergyFromQuantities(t *testing.T) {
	e := EnergyFromWattSeconds(WattSeconds{7_200_123})
	kwh, ws := e.Pair()
	if kwh.Value != 2 || ws.Value != 123 {
		t.Errorf("FromWattSeconds: got %v kWh %v Ws", kwh.Value, ws.Value)
	}
	e = EnergyFromWattHours(WattHours{1500})
	kwh, ws = e.Pair()
	if kwh.Value != 1 || ws.Value != 1_800_000 {
		t.Errorf("FromWattHours: got %v kWh %v Ws", kwh.Value, ws.Value)
	}
	// Restored pairs get normalized.
	e = NewEnergy(KilowattHours{1}, WattSeconds{3_600_002})
	kwh, ws = e.Pair()
	if kwh.Value != 2 || ws.Value != 2 {
		t.Errorf("NewEnergy normalize: got %v kWh %v Ws", kwh.Value, ws.Value)
	}
}
