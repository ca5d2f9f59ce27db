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

// package emeter implements reading telemetry data from a PZEM-class
// energy monitor over Modbus TCP.

package emeter

import (
	"context"
	"time"

	"github.com/aldas/go-modbus-client"
)

// Readings is one poll of the meter's register block.
type Readings struct {
	Volts     float64 // AC voltage (V)
	Amps      float64 // Current (A)
	Power     float64 // Active power (W)
	EnergyWh  uint32  // Cumulative energy counter (Wh)
	Frequency float64 // Line frequency (Hz)
	Factor    float64 // Power factor (%)
}

// Meter polls one energy monitor.
type Meter struct {
	Timeout time.Duration
	Trace   bool
	addr    string

	requests []modbus.BuilderRequest
	client   *modbus.Client
}

// NewMeter builds the request set for the meter's measurement
// registers. Registers follow the PZEM-016 layout: 16-bit scaled
// values for voltage, frequency and power factor, 32-bit for current,
// power and the energy counter.
func NewMeter(addr string, unit uint8) (*Meter, error) {
	b := modbus.NewRequestBuilder(addr, unit)

	requests, err := b.
		AddField(modbus.Field{Name: "voltage", Type: modbus.FieldTypeUint16, Address: 0}).
		AddField(modbus.Field{Name: "current", Type: modbus.FieldTypeUint32, Address: 1}).
		AddField(modbus.Field{Name: "power", Type: modbus.FieldTypeUint32, Address: 3}).
		AddField(modbus.Field{Name: "energy", Type: modbus.FieldTypeUint32, Address: 5}).
		AddField(modbus.Field{Name: "frequency", Type: modbus.FieldTypeUint16, Address: 7}).
		AddField(modbus.Field{Name: "factor", Type: modbus.FieldTypeUint16, Address: 8}).
		ReadInputRegistersTCP()
	if err != nil {
		return nil, err
	}

	return &Meter{
		Timeout:  time.Second * 10,
		addr:     addr,
		requests: requests,
		client:   modbus.NewTCPClient(),
	}, nil
}

// Poll reads the measurement block. Register scale factors are applied
// here; the caller sees engineering units.
func (m *Meter) Poll() (Readings, error) {
	var r Readings
	ctx, cancel := context.WithTimeout(context.Background(), m.Timeout)
	defer cancel()
	if err := m.client.Connect(ctx, m.addr); err != nil {
		return r, err
	}
	defer m.client.Close()
	findex := 0
	for _, req := range m.requests {
		resp, err := m.client.Do(ctx, req)
		if err != nil {
			return r, err
		}
		fields, err := req.ExtractFields(resp, true)
		if err != nil {
			return r, err
		}
		for _, f := range fields {
			switch findex {
			case 0:
				r.Volts = float64(f.Value.(uint16)) / 10.0
			case 1:
				r.Amps = float64(f.Value.(uint32)) / 1000.0
			case 2:
				r.Power = float64(f.Value.(uint32)) / 10.0
			case 3:
				r.EnergyWh = f.Value.(uint32)
			case 4:
				r.Frequency = float64(f.Value.(uint16)) / 10.0
			case 5:
				r.Factor = float64(f.Value.(uint16))
			}
			findex++
		}
	}
	return r, nil
}
