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

// package units defines the physical units attached to sensor magnitudes,
// the scaled quantity types used for power and energy arithmetic, and the
// overflow-safe energy accumulator.
package units

// Unit identifies the physical unit of a magnitude reading. Units are
// purely descriptive tags used for display and topic metadata; scaling
// between related quantities is handled by the quantity types.
type Unit int

const (
	None Unit = iota
	Celsius
	Fahrenheit
	Kelvin
	Percentage
	Hectopascal
	Ampere
	Volt
	Voltampere
	Kilovoltampere
	VoltampereReactive
	KilovoltampereReactive
	Watt
	Kilowatt
	WattSecond
	KilowattHour
	PartsPerMillion
	Ohm
	MicrogramPerCubicMeter
	MilligramPerCubicMeter
	Lux
	UltravioletIndex
	CountPerMinute
	MicrosievertPerHour
	Meter
	Hertz
	Ph
)

// Joule is an alias; generic sensors report energy in watt-seconds.
const Joule = WattSecond

var unitSuffix = map[Unit]string{
	Celsius:                "°C",
	Fahrenheit:             "°F",
	Kelvin:                 "K",
	Percentage:             "%",
	Hectopascal:            "hPa",
	Ampere:                 "A",
	Volt:                   "V",
	Voltampere:             "VA",
	Kilovoltampere:         "kVA",
	VoltampereReactive:     "VAR",
	KilovoltampereReactive: "kVAR",
	Watt:                   "W",
	Kilowatt:               "kW",
	WattSecond:             "J",
	KilowattHour:           "kWh",
	PartsPerMillion:        "ppm",
	Ohm:                    "ohm",
	MicrogramPerCubicMeter: "µg/m³",
	MilligramPerCubicMeter: "mg/m³",
	Lux:                    "lux",
	UltravioletIndex:       "UVI",
	CountPerMinute:         "cpm",
	MicrosievertPerHour:    "µSv/h",
	Meter:                  "m",
	Hertz:                  "Hz",
	Ph:                     "pH",
}

// String returns the display suffix for the unit. Unknown units and
// None return an empty string.
func (u Unit) String() string {
	return unitSuffix[u]
}
