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
	"strconv"
)

const (
	// KwhMultiplier is the number of watt-seconds in one kilowatt-hour.
	KwhMultiplier = 3_600_000
	// KwhLimit is the safety ceiling of the kWh counter: the largest
	// kWh count whose watt-second equivalent still fits in 32 bits.
	KwhLimit = math.MaxUint32 / KwhMultiplier
)

// Energy is a running total of accumulated energy, kept as a whole
// kilowatt-hour count plus a watt-second remainder so that repeated
// small deltas never lose precision and the total survives 32-bit
// counter overflow in the inputs. The remainder is always below one
// whole kWh worth of watt-seconds.
type Energy struct {
	kwh KilowattHours
	ws  WattSeconds
}

// NewEnergy restores an accumulator from a persisted pair. The
// watt-second part is normalized in case the persisted value was
// written by something sloppier than us.
func NewEnergy(kwh KilowattHours, ws WattSeconds) Energy {
	var e Energy
	e.kwh = kwh
	e.Add(ws)
	return e
}

// EnergyFromWattSeconds starts an accumulator from a flat watt-second count.
func EnergyFromWattSeconds(ws WattSeconds) Energy {
	return NewEnergy(KilowattHours{}, ws)
}

// EnergyFromWattHours starts an accumulator from a watt-hour count.
// Split directly so that counts above the watt-second range still land
// exactly.
func EnergyFromWattHours(wh WattHours) Energy {
	return Energy{
		kwh: KilowattHours{wh.Value / 1000},
		ws:  WattSeconds{(wh.Value % 1000) * 3600},
	}
}

// EnergyFromKilowattHours starts an accumulator from a whole kWh count.
func EnergyFromKilowattHours(kwh KilowattHours) Energy {
	return Energy{kwh: kwh}
}

// EnergyFromDouble converts a display value back into an accumulator.
// The integer part of the input is taken as whole kWh and the
// fractional part is scaled into the watt-second remainder. This is how
// a previously reported AsDouble value round-trips back in. Inputs past
// the KwhLimit ceiling read as an empty accumulator, same as Add when
// the counter crosses it.
func EnergyFromDouble(v float64) Energy {
	if math.IsNaN(v) || v < 0 {
		return Energy{}
	}
	whole := math.Floor(v)
	if whole > KwhLimit {
		return Energy{}
	}
	return Energy{
		kwh: KilowattHours{uint32(whole)},
		ws:  WattSeconds{uint32((v - whole) * KwhMultiplier)},
	}
}

// Reset zeroes both counters.
func (e *Energy) Reset() {
	e.kwh = KilowattHours{}
	e.ws = WattSeconds{}
}

// IsZero reports whether nothing has been recorded. The total can be
// zero on cold boot, after Reset, or after the counter rolled over at
// its ceiling.
func (e Energy) IsZero() bool {
	return e.kwh.Value == 0 && e.ws.Value == 0
}

// Add accumulates an energy delta, carrying every whole kilowatt-hour
// worth of watt-seconds into the kWh counter. A single call may carry
// multiple kWh. If the carry would push the kWh counter past KwhLimit
// the accumulator resets to zero and counting restarts; a zero total
// after very long uptime means the counter rolled over, not that no
// energy was seen.
func (e *Energy) Add(delta WattSeconds) {
	ws := uint64(e.ws.Value) + uint64(delta.Value)
	kwh := uint64(e.kwh.Value) + ws/KwhMultiplier
	if kwh > KwhLimit {
		e.Reset()
		return
	}
	e.kwh = KilowattHours{uint32(kwh)}
	e.ws = WattSeconds{uint32(ws % KwhMultiplier)}
}

// AsDouble returns the total in kilowatt-hours, combining both parts
// without intermediate overflow.
func (e Energy) AsDouble() float64 {
	return float64(e.kwh.Value) + float64(e.ws.Value)/KwhMultiplier
}

// AsWattSeconds flattens the total into a single watt-second count.
// The second return is false when the total no longer fits 32 bits; the
// pair representation stays exact even when this view cannot.
func (e Energy) AsWattSeconds() (WattSeconds, bool) {
	total := uint64(e.kwh.Value)*KwhMultiplier + uint64(e.ws.Value)
	if total > math.MaxUint32 {
		return WattSeconds{}, false
	}
	return WattSeconds{uint32(total)}, true
}

// Pair returns the raw counters for persistence.
func (e Energy) Pair() (KilowattHours, WattSeconds) {
	return e.kwh, e.ws
}

// String formats the total as kWh with fixed 3-decimal precision.
func (e Energy) String() string {
	return strconv.FormatFloat(e.AsDouble(), 'f', 3, 64)
}
