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

// package led resolves status-LED configuration from the settings
// store. It produces the per-LED mode, wiring and blink pattern; the
// GPIO driving itself belongs to a hardware collaborator.
package led

import (
	"powernode/settings"
)

// Mode selects what drives a status LED.
type Mode int

const (
	ModeManual Mode = iota
	ModeWiFi
	ModeRelay
	ModeRelayInverse
	ModeFindMe
	ModeFindMeWiFi
	ModeOn
	ModeOff
	ModeRelays
	ModeRelaysWiFi
)

// ModeOptions maps modes to their stored forms; settings may hold
// either the numeric code or the keyword.
var ModeOptions = []settings.Option[Mode]{
	{Code: 0, Keyword: "manual", Value: ModeManual},
	{Code: 1, Keyword: "wifi", Value: ModeWiFi},
	{Code: 2, Keyword: "relay", Value: ModeRelay},
	{Code: 3, Keyword: "relay-inverse", Value: ModeRelayInverse},
	{Code: 4, Keyword: "findme", Value: ModeFindMe},
	{Code: 5, Keyword: "findme-wifi", Value: ModeFindMeWiFi},
	{Code: 6, Keyword: "on", Value: ModeOn},
	{Code: 7, Keyword: "off", Value: ModeOff},
	{Code: 8, Keyword: "relays", Value: ModeRelays},
	{Code: 9, Keyword: "relays-wifi", Value: ModeRelaysWiFi},
}

func (m Mode) String() string {
	return settings.SerializeOption(ModeOptions, m)
}

// Settings key families, indexed per LED.
const (
	gpioKey    = "ledGpio"
	inverseKey = "ledInv"
	modeKey    = "ledMode"
	relayKey   = "ledRelay"
	patternKey = "ledPattern"
)

// Led is the resolved configuration of one status LED.
type Led struct {
	Gpio    int
	Inverse bool
	Mode    Mode
	Relay   int
	Pattern Pattern
}

// Load resolves the configuration of the LED at the given ordinal. The
// second return is false when no GPIO is configured for that ordinal,
// which is how the family ends.
func Load(st *settings.Store, index int) (Led, bool) {
	key := func(name string) string {
		return settings.Indexed(name, index).String()
	}
	if !st.Has(key(gpioKey)) {
		return Led{}, false
	}
	var l Led
	l.Gpio = settings.Get(st, key(gpioKey), 0)
	l.Inverse = settings.Get(st, key(inverseKey), false)
	l.Mode = settings.GetOption(st, key(modeKey), ModeOptions, ModeManual)
	l.Relay = settings.Get(st, key(relayKey), 0)
	if raw, ok := st.Get(key(patternKey)); ok {
		l.Pattern = ParsePattern(raw)
	}
	return l, true
}

// LoadAll resolves every configured LED, stopping at the first gap in
// the family.
func LoadAll(st *settings.Store) []Led {
	var leds []Led
	for i := 0; ; i++ {
		l, ok := Load(st, i)
		if !ok {
			return leds
		}
		leds = append(leds, l)
	}
}

// Migrate cleans up settings key families used by earlier firmware
// revisions. Registered with the settings store at boot.
func Migrate(st *settings.Store) func(from int) {
	return func(from int) {
		if from < 5 {
			st.DelPrefix("ledGPIO", "ledLogic")
		}
	}
}
