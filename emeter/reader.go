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

package emeter

import (
	"fmt"
	"log"
	"strings"
	"time"

	"powernode/lib"
	"powernode/sensor"
	"powernode/units"
)

// Config is the emeter YAML section.
type Config struct {
	Addr    string // host:port of the Modbus gateway
	Unit    int    // Modbus unit id
	Poll    int    // Poll interval in seconds
	Timeout int    // Request timeout in seconds
	Trace   bool
}

// Reader polls the meter and feeds its readings into the magnitude
// registry. The meter's cumulative Wh counter is turned into
// watt-second deltas for the energy accumulator.
type Reader struct {
	reg    *sensor.Registry
	meter  poller
	trace  bool
	status string

	iVolt, iAmp, iPower, iEnergy, iFreq, iFactor int

	haveBase bool
	baseWh   uint32
}

// poller is the subset of Meter the reader needs; tests substitute a
// stub for it.
type poller interface {
	Poll() (Readings, error)
}

// New initialises an energy meter reader and registers its magnitude
// slots with the registry.
func New(conf Config, reg *sensor.Registry) (*Reader, error) {
	unit := uint8(lib.ConfigOrDefault(conf.Unit, 1))
	m, err := NewMeter(conf.Addr, unit)
	if err != nil {
		return nil, err
	}
	m.Timeout = lib.ConfigOrDefault(time.Second*time.Duration(conf.Timeout), m.Timeout)
	m.Trace = conf.Trace
	r := newReader(reg, conf.Trace)
	r.meter = m
	log.Printf("Registered energy meter reader for %s (unit %d, timeout %s)", conf.Addr, unit, m.Timeout.String())
	return r, nil
}

func newReader(reg *sensor.Registry, trace bool) *Reader {
	r := &Reader{reg: reg, trace: trace}
	r.iVolt = reg.Add(sensor.TypeVoltage, "")
	r.iAmp = reg.Add(sensor.TypeCurrent, "")
	r.iPower = reg.Add(sensor.TypePower, "")
	r.iEnergy = reg.Add(sensor.TypeEnergy, "")
	r.iFreq = reg.Add(sensor.TypeFrequency, "")
	r.iFactor = reg.Add(sensor.TypePowerFactor, "")
	return r
}

// Status returns a string status for this meter.
func (r *Reader) Status() string {
	return r.status
}

// Poll reads the meter once and pushes the readings into the registry.
// Errors are reported in the status string and returned; the caller
// logs and carries on.
func (r *Reader) Poll() error {
	if r.trace {
		log.Printf("Polling energy meter")
	}
	var b strings.Builder
	defer func() { r.status = b.String() }()
	fmt.Fprintf(&b, "%s: ", time.Now().Format("2006-01-02 15:04"))
	readings, err := r.meter.Poll()
	if err != nil {
		fmt.Fprintf(&b, "Error - %v", err)
		return err
	}
	r.apply(readings)
	fmt.Fprintf(&b, "OK")
	fmt.Fprintf(&b, ", Power %s W", lib.FmtFloat(readings.Power))
	fmt.Fprintf(&b, ", Energy %s kWh", r.reg.Energy(r.iEnergy).String())
	return nil
}

// apply feeds one poll of readings into the registry.
func (r *Reader) apply(readings Readings) {
	r.reg.Update(r.iVolt, readings.Volts)
	r.reg.Update(r.iAmp, readings.Amps)
	r.reg.Update(r.iPower, readings.Power)
	r.reg.Update(r.iFreq, readings.Frequency)
	r.reg.Update(r.iFactor, readings.Factor)
	r.accumulate(readings.EnergyWh)
}

// accumulate converts the meter's cumulative Wh counter into
// watt-second deltas. The first poll only sets the baseline, and a
// counter that goes backwards (meter reset or replacement) re-baselines
// without feeding a bogus delta.
func (r *Reader) accumulate(wh uint32) {
	if !r.haveBase {
		r.haveBase = true
		r.baseWh = wh
		return
	}
	if wh < r.baseWh {
		log.Printf("Energy counter went backwards (%d -> %d), rebasing", r.baseWh, wh)
		r.baseWh = wh
		return
	}
	delta := wh - r.baseWh
	r.baseWh = wh
	if delta != 0 {
		r.reg.AddEnergy(r.iEnergy, units.WattHours{Value: delta}.WattSeconds())
	}
}
