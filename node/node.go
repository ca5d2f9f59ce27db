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

// package node is the composition root: it owns the settings store,
// the magnitude registry and the feature readers, wiring them together
// from the YAML config.
//
// The YAML config is split into separate sections, and each feature
// decodes only its own section. All registration (migration callbacks,
// query handlers, magnitude slots, tick callbacks) happens during New;
// Run then processes tick events on a single thread of control, so tick
// callbacks can freely use the settings store and registry.
package node

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"powernode/emeter"
	"powernode/led"
	"powernode/lib"
	"powernode/sensor"
	"powernode/settings"
	"powernode/storage"
)

// ConfigVersion is the settings layout this firmware writes. Stores
// persisted by older firmware are migrated up at boot.
const ConfigVersion = 5

// AppName tags settings backup documents.
const AppName = "powernode"

// StoreConfig is the store YAML section.
type StoreConfig struct {
	Path     string // Backing file for the settings region
	Size     int    // Region capacity in bytes
	Autosave int    // Flush interval in seconds
}

// SensorConfig is the sensor YAML section.
type SensorConfig struct {
	Report int // Report interval in seconds
}

const (
	defaultStorePath = "settings.bin"
	defaultStoreSize = 4096
	defaultAutosave  = 60
	defaultReport    = 60
	defaultPoll      = 30
)

// Node ties the firmware core together.
type Node struct {
	Config map[string]*yaml.Decoder // Decoded config sections
	Trace  bool

	Settings *settings.Store
	Sensors  *sensor.Registry

	file    *storage.File
	reader  *emeter.Reader
	tickers map[time.Duration]*lib.Ticker
	status  []func() (string, string)
}

// New builds a node from the YAML config. Migration runs before any
// feature reads its settings.
func New(conf []byte) (*Node, error) {
	n := &Node{
		Config:  make(map[string]*yaml.Decoder),
		tickers: make(map[time.Duration]*lib.Ticker),
	}
	// Generate separate decoders for each YAML section.
	m := make(map[string]interface{})
	if err := yaml.Unmarshal(conf, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("YAML marshal of %s failed: %v", k, err)
		}
		n.Config[k] = yaml.NewDecoder(bytes.NewReader(b))
		n.Config[k].KnownFields(true)
	}

	// Settings store over the file-backed byte region.
	var sc StoreConfig
	if y, ok := n.Config["store"]; ok {
		if err := y.Decode(&sc); err != nil {
			return nil, err
		}
	}
	path := lib.ConfigOrDefault(sc.Path, defaultStorePath)
	size := lib.ConfigOrDefault(sc.Size, defaultStoreSize)
	file, err := storage.NewFile(path, size)
	if err != nil {
		return nil, err
	}
	n.file = file
	n.Settings = settings.New(storage.NewKVS(file))
	autosave := lib.ConfigOrDefault(sc.Autosave, defaultAutosave)
	n.AddCallback(time.Second*time.Duration(autosave), func(now time.Time) {
		if err := n.file.Flush(); err != nil {
			log.Printf("Settings flush failed: %v", err)
		}
	})

	// Upgrade persisted settings before anything reads them.
	n.Settings.OnMigrate(led.Migrate(n.Settings))
	n.Settings.OnMigrate(func(from int) {
		if from < 4 {
			// The energy total used to be a single un-indexed key.
			n.Settings.Move("eneTotal", settings.Indexed("eneTotal", 0).String())
		}
	})
	if err := n.Settings.Migrate(ConfigVersion); err != nil {
		return nil, err
	}

	n.Sensors = sensor.NewRegistry(n.Settings)
	var snsConf SensorConfig
	if y, ok := n.Config["sensor"]; ok {
		if err := y.Decode(&snsConf); err != nil {
			return nil, err
		}
	}
	report := lib.ConfigOrDefault(snsConf.Report, defaultReport)
	n.AddCallback(time.Second*time.Duration(report), func(now time.Time) {
		n.Sensors.ReportAll()
	})

	if err := n.initEmeter(); err != nil {
		return nil, err
	}

	// Virtual settings computed from the live registry.
	n.registerQueries()

	return n, nil
}

// initEmeter wires the energy meter reader when its section is
// configured.
func (n *Node) initEmeter() error {
	y, ok := n.Config["emeter"]
	if !ok {
		return nil
	}
	var conf emeter.Config
	if err := y.Decode(&conf); err != nil {
		return err
	}
	r, err := emeter.New(conf, n.Sensors)
	if err != nil {
		return err
	}
	n.reader = r
	n.AddStatusPrinter("Meter", r.Status)
	poll := lib.ConfigOrDefault(conf.Poll, defaultPoll)
	n.AddCallback(time.Second*time.Duration(poll), func(now time.Time) {
		if err := r.Poll(); err != nil {
			log.Printf("Meter poll error: %v", err)
		}
	})
	return nil
}

// registerQueries exposes computed settings: per-magnitude topics and
// the live reading representations, addressable without physical
// entries.
func (n *Node) registerQueries() {
	n.Settings.RegisterQueryHandler(settings.Handler{
		Check: func(key string) bool {
			k := settings.ParseKey(key)
			return k.Name == "magTopic" && k.Index >= 0 && k.Index < n.Sensors.Count()
		},
		Get: func(key string) string {
			return n.Sensors.Topic(settings.ParseKey(key).Index)
		},
	})
	n.Settings.RegisterQueryHandler(settings.Handler{
		Check: func(key string) bool {
			k := settings.ParseKey(key)
			return k.Name == "magValue" && k.Index >= 0 && k.Index < n.Sensors.Count()
		},
		Get: func(key string) string {
			return n.Sensors.Value(settings.ParseKey(key).Index).Repr
		},
	})
}

// AddCallback adds a callback to be regularly invoked at the interval
// specified.
func (n *Node) AddCallback(tick time.Duration, cb lib.Callback) {
	t, ok := n.tickers[tick]
	if !ok {
		t = lib.NewTicker(tick)
		n.tickers[tick] = t
	}
	t.AddCB(cb)
}

// AddStatusPrinter registers a named status line for Status.
func (n *Node) AddStatusPrinter(name string, fn func() string) {
	n.status = append(n.status, func() (string, string) {
		return name, fn()
	})
}

// Status returns the registered status lines for inspection.
func (n *Node) Status() string {
	var b strings.Builder
	for _, s := range n.status {
		name, line := s()
		fmt.Fprintf(&b, "%s: %s\n", name, line)
	}
	return b.String()
}

// Run processes tick events until a termination signal arrives. The
// final report and flush run before returning so the energy totals and
// any pending settings land on disk.
func (n *Node) Run() error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	ec := make(chan lib.Event, 10)
	for _, t := range n.tickers {
		t.Start(ec)
	}
	for {
		select {
		case ev := <-ec:
			ev.Ticker.Ticked(ev.Now)
		case sig := <-sigc:
			log.Printf("Signal %v received, saving and exiting", sig)
			n.Sensors.ReportAll()
			return n.file.Flush()
		}
	}
}
