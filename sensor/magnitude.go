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

// package sensor models magnitude readings: the per-slot Value and Info
// records consumed by reporting collaborators, and the registry that
// producers push raw readings through. Energy-typed magnitudes carry an
// overflow-safe accumulator persisted through the settings store.
package sensor

import (
	"powernode/units"
)

// Type categorises a magnitude. Multiple sensors of the same type are
// told apart by a per-type index.
type Type int

const (
	TypeNone Type = iota
	TypeTemperature
	TypeHumidity
	TypePressure
	TypeCurrent
	TypeVoltage
	TypePower
	TypeApparentPower
	TypeReactivePower
	TypePowerFactor
	TypeEnergy
	TypeEnergyDelta
	TypeFrequency
	TypeAnalog
	TypeDigital
	TypeCount
	TypePh
)

type magnitudeTraits struct {
	topic       string
	unit        units.Unit
	decimals    int
	description string
}

var traits = map[Type]magnitudeTraits{
	TypeTemperature:   {"temperature", units.Celsius, 1, "Temperature"},
	TypeHumidity:      {"humidity", units.Percentage, 0, "Humidity"},
	TypePressure:      {"pressure", units.Hectopascal, 2, "Pressure"},
	TypeCurrent:       {"current", units.Ampere, 3, "Current"},
	TypeVoltage:       {"voltage", units.Volt, 0, "Voltage"},
	TypePower:         {"power", units.Watt, 0, "Active Power"},
	TypeApparentPower: {"apparent", units.Voltampere, 0, "Apparent Power"},
	TypeReactivePower: {"reactive", units.VoltampereReactive, 0, "Reactive Power"},
	TypePowerFactor:   {"factor", units.Percentage, 0, "Power Factor"},
	TypeEnergy:        {"energy", units.KilowattHour, 3, "Energy"},
	TypeEnergyDelta:   {"energy_delta", units.WattSecond, 0, "Energy (delta)"},
	TypeFrequency:     {"frequency", units.Hertz, 1, "Frequency"},
	TypeAnalog:        {"analog", units.None, 0, "Analog"},
	TypeDigital:       {"digital", units.None, 0, "Digital"},
	TypeCount:         {"count", units.CountPerMinute, 0, "Count"},
	TypePh:            {"ph", units.Ph, 2, "pH"},
}

// Topic returns the canonical reporting topic for the type; unknown
// types return an empty string.
func (t Type) Topic() string {
	return traits[t].topic
}

// Unit returns the default display unit for the type.
func (t Type) Unit() units.Unit {
	return traits[t].unit
}

// Decimals returns the default display precision for the type.
func (t Type) Decimals() int {
	return traits[t].decimals
}

// Description returns the human name for the type.
func (t Type) Description() string {
	return traits[t].description
}
