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

package sensor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"powernode/settings"
	"powernode/units"
)

// realTimeKey selects whether Value returns the latest raw reading or
// the last reported one.
const realTimeKey = "snsRealTime"

// energyKey is the composite family the energy totals persist under.
const energyKey = "eneTotal"

type slot struct {
	typ         Type
	index       int // per-type ordinal
	unit        units.Unit
	decimals    int
	description string
	live        float64
	reported    float64
	energy      units.Energy
}

// Registry owns the registered magnitude slots. Producers add slots at
// setup and push readings through Update/AddEnergy; consumers read the
// projection via Info and Value. It is built by the composition root
// with the settings store it persists energy totals through.
type Registry struct {
	st        *settings.Store
	realTime  bool
	slots     []*slot
	typeCount map[Type]int
	onRead    []func(Value)
	onReport  []func(Value)
}

func NewRegistry(st *settings.Store) *Registry {
	return &Registry{
		st:        st,
		realTime:  settings.Get(st, realTimeKey, false),
		typeCount: make(map[Type]int),
	}
}

// Add registers a magnitude slot and returns its registry index. The
// slot takes the type's default unit, precision and description; an
// empty description keeps the default. Energy slots restore their
// running total from the settings store.
func (r *Registry) Add(typ Type, description string) int {
	s := &slot{
		typ:         typ,
		index:       r.typeCount[typ],
		unit:        typ.Unit(),
		decimals:    typ.Decimals(),
		description: description,
		live:        math.NaN(),
		reported:    math.NaN(),
	}
	if len(description) == 0 {
		s.description = typ.Description()
	}
	r.typeCount[typ]++
	if typ == TypeEnergy {
		raw, _ := r.st.Get(settings.Indexed(energyKey, s.index).String())
		s.energy = decodeEnergy(raw)
		if !s.energy.IsZero() {
			s.live = s.energy.AsDouble()
		}
	}
	r.slots = append(r.slots, s)
	return len(r.slots) - 1
}

// Count returns the number of registered magnitude slots.
func (r *Registry) Count() int {
	return len(r.slots)
}

// RealTime reports which consistency contract Value follows.
func (r *Registry) RealTime() bool {
	return r.realTime
}

// OnRead registers a handler fired every time a raw reading lands.
func (r *Registry) OnRead(fn func(Value)) {
	r.onRead = append(r.onRead, fn)
}

// OnReport registers a handler fired when a reading is reported.
func (r *Registry) OnReport(fn func(Value)) {
	r.onReport = append(r.onReport, fn)
}

// Topic returns the reporting topic for a slot: the type topic, with
// the per-type ordinal appended when several slots share the type.
func (r *Registry) Topic(index int) string {
	if index < 0 || index >= len(r.slots) {
		return ""
	}
	s := r.slots[index]
	if r.typeCount[s.typ] > 1 {
		return fmt.Sprintf("%s/%d", s.typ.Topic(), s.index)
	}
	return s.typ.Topic()
}

// Info returns the static descriptor for a slot. An out-of-range index
// yields a TypeNone sentinel rather than failing.
func (r *Registry) Info(index int) Info {
	if index < 0 || index >= len(r.slots) {
		return Info{Type: TypeNone}
	}
	s := r.slots[index]
	return Info{
		Type:        s.typ,
		Index:       s.index,
		Units:       s.unit,
		Decimals:    s.decimals,
		Topic:       r.Topic(index),
		Description: s.description,
	}
}

// Value returns the reading for a slot: the latest raw reading in
// real-time mode, otherwise the last reported one. An out-of-range
// index yields a TypeNone sentinel with an unknown value.
func (r *Registry) Value(index int) Value {
	if index < 0 || index >= len(r.slots) {
		return Value{Type: TypeNone, Index: 0, Value: math.NaN()}
	}
	s := r.slots[index]
	v := s.reported
	if r.realTime {
		v = s.live
	}
	return r.compose(index, s, v)
}

func (r *Registry) compose(index int, s *slot, v float64) Value {
	return Value{
		Type:     s.typ,
		Index:    s.index,
		Units:    s.unit,
		Decimals: s.decimals,
		Value:    v,
		Topic:    r.Topic(index),
		Repr:     Format(v, s.decimals),
	}
}

// Update records a raw reading and fires the read handlers.
func (r *Registry) Update(index int, value float64) {
	if index < 0 || index >= len(r.slots) {
		return
	}
	s := r.slots[index]
	s.live = value
	for _, fn := range r.onRead {
		fn(r.compose(index, s, s.live))
	}
}

// AddEnergy accumulates an energy delta on an energy slot. The live
// reading tracks the accumulator total in kWh.
func (r *Registry) AddEnergy(index int, delta units.WattSeconds) {
	if index < 0 || index >= len(r.slots) {
		return
	}
	s := r.slots[index]
	if s.typ != TypeEnergy {
		return
	}
	s.energy.Add(delta)
	s.live = s.energy.AsDouble()
	for _, fn := range r.onRead {
		fn(r.compose(index, s, s.live))
	}
}

// Energy returns the accumulator of an energy slot.
func (r *Registry) Energy(index int) units.Energy {
	if index < 0 || index >= len(r.slots) {
		return units.Energy{}
	}
	return r.slots[index].energy
}

// ResetEnergy zeroes an energy slot's accumulator and its persisted
// total.
func (r *Registry) ResetEnergy(index int) {
	if index < 0 || index >= len(r.slots) {
		return
	}
	s := r.slots[index]
	if s.typ != TypeEnergy {
		return
	}
	s.energy.Reset()
	s.live = s.energy.AsDouble()
	r.st.Del(settings.Indexed(energyKey, s.index).String())
}

// Report promotes the live reading to the reported one and fires the
// report handlers. Energy slots persist their running total as part of
// the report cycle.
func (r *Registry) Report(index int) {
	if index < 0 || index >= len(r.slots) {
		return
	}
	s := r.slots[index]
	s.reported = s.live
	if s.typ == TypeEnergy {
		r.st.Set(settings.Indexed(energyKey, s.index).String(), encodeEnergy(s.energy))
	}
	for _, fn := range r.onReport {
		fn(r.compose(index, s, s.reported))
	}
}

// ReportAll runs a report cycle over every slot with a valid reading.
func (r *Registry) ReportAll() {
	for i, s := range r.slots {
		if !math.IsNaN(s.live) {
			r.Report(i)
		}
	}
}

// encodeEnergy renders the accumulator pair as "<kwh>+<ws>" text.
func encodeEnergy(e units.Energy) string {
	kwh, ws := e.Pair()
	return strconv.FormatUint(uint64(kwh.Value), 10) + "+" +
		strconv.FormatUint(uint64(ws.Value), 10)
}

// decodeEnergy restores an accumulator from persisted text. Malformed
// or absent text reads as an empty accumulator.
func decodeEnergy(raw string) units.Energy {
	k, w, found := strings.Cut(raw, "+")
	if !found {
		return units.Energy{}
	}
	kwh, err := strconv.ParseUint(k, 10, 32)
	if err != nil {
		return units.Energy{}
	}
	ws, err := strconv.ParseUint(w, 10, 32)
	if err != nil {
		return units.Energy{}
	}
	return units.NewEnergy(units.KilowattHours{Value: uint32(kwh)}, units.WattSeconds{Value: uint32(ws)})
}
