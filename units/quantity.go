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
	"time"
)

// ratio is an exact integer scale factor relative to the base unit of a
// physical dimension (one watt for power, one watt-second for energy).
// Ratios are never approximated as floats; conversion between two
// quantities of the same dimension multiplies by the reduced quotient of
// their ratios, and only the final multiply/divide is evaluated in the
// destination representation.
type ratio struct {
	num int64
	den int64
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func (r ratio) reduce() ratio {
	g := gcd(r.num, r.den)
	return ratio{r.num / g, r.den / g}
}

func (r ratio) mul(o ratio) ratio {
	return ratio{r.num * o.num, r.den * o.den}.reduce()
}

// div returns the exact quotient r/o, reduced.
func (r ratio) div(o ratio) ratio {
	return ratio{r.num * o.den, r.den * o.num}.reduce()
}

// Scale factors. Energy scales are the product of a power scale and a
// time-unit scale, mirroring how the quantities themselves are derived.
var (
	wattScale         = ratio{1, 1}
	kilowattScale     = ratio{1000, 1}
	secondScale       = ratio{1, 1}
	hourScale         = ratio{3600, 1}
	wattSecondScale   = wattScale.mul(secondScale)
	wattHourScale     = wattScale.mul(hourScale)
	kilowattHourScale = kilowattScale.mul(hourScale)
)

// convertInt scales an integer quantity value between two scale factors.
// When the combined ratio does not divide evenly the result truncates
// toward zero; callers that cannot tolerate truncation should convert in
// the finer direction only.
func convertInt(v uint32, from, to ratio) uint32 {
	q := from.div(to)
	return uint32(uint64(v) * uint64(q.num) / uint64(q.den))
}

// Watts is instantaneous power in watts.
type Watts struct {
	Value float64
}

// Kilowatts is instantaneous power scaled by 1000.
type Kilowatts struct {
	Value float64
}

// WattSeconds is accumulated energy in watt-seconds (joules).
type WattSeconds struct {
	Value uint32
}

// WattHours is accumulated energy scaled by 3600.
type WattHours struct {
	Value uint32
}

// KilowattHours is accumulated energy scaled by 3600000.
type KilowattHours struct {
	Value uint32
}

func (w Watts) Kilowatts() Kilowatts {
	q := wattScale.div(kilowattScale)
	return Kilowatts{w.Value * float64(q.num) / float64(q.den)}
}

func (k Kilowatts) Watts() Watts {
	q := kilowattScale.div(wattScale)
	return Watts{k.Value * float64(q.num) / float64(q.den)}
}

// Over integrates constant power over a duration.
func (w Watts) Over(d time.Duration) WattSeconds {
	return WattSeconds{uint32(w.Value * d.Seconds())}
}

func (ws WattSeconds) WattHours() WattHours {
	return WattHours{convertInt(ws.Value, wattSecondScale, wattHourScale)}
}

func (ws WattSeconds) KilowattHours() KilowattHours {
	return KilowattHours{convertInt(ws.Value, wattSecondScale, kilowattHourScale)}
}

func (wh WattHours) WattSeconds() WattSeconds {
	return WattSeconds{convertInt(wh.Value, wattHourScale, wattSecondScale)}
}

func (wh WattHours) KilowattHours() KilowattHours {
	return KilowattHours{convertInt(wh.Value, wattHourScale, kilowattHourScale)}
}

func (k KilowattHours) WattSeconds() WattSeconds {
	return WattSeconds{convertInt(k.Value, kilowattHourScale, wattSecondScale)}
}

func (k KilowattHours) WattHours() WattHours {
	return WattHours{convertInt(k.Value, kilowattHourScale, wattHourScale)}
}
