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

package settings

import (
	"sort"
	"strings"
	"testing"

	"powernode/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(storage.NewKVS(storage.NewMem(1024)))
}

func TestTypedAccessors(t *testing.T) {
	st := newStore(t)
	if v := Get(st, "poll", 30); v != 30 {
		t.Errorf("Absent key should give the default: got %v", v)
	}
	if !Set(st, "poll", 60) {
		t.Fatalf("Set failed")
	}
	if v := Get(st, "poll", 30); v != 60 {
		t.Errorf("Get: got %v", v)
	}
	// Present but malformed converts to zero, not the default.
	st.Set("poll", "bogus")
	if v := Get(st, "poll", 30); v != 0 {
		t.Errorf("Malformed value should give zero: got %v", v)
	}
}

type mode int

const (
	modeOff mode = iota
	modeOn
)

var modeOptions = []Option[mode]{
	{0, "off", modeOff},
	{1, "on", modeOn},
}

func TestOptionResolution(t *testing.T) {
	st := newStore(t)
	// Keyword and numeric forms resolve identically.
	st.Set("mode", "on")
	if v := GetOption(st, "mode", modeOptions, modeOff); v != modeOn {
		t.Errorf("Keyword: got %v", v)
	}
	st.Set("mode", "1")
	if v := GetOption(st, "mode", modeOptions, modeOff); v != modeOn {
		t.Errorf("Numeric: got %v", v)
	}
	st.Set("mode", "off")
	if v := GetOption(st, "mode", modeOptions, modeOn); v != modeOff {
		t.Errorf("Keyword off: got %v", v)
	}
	// Unmatched numeric codes and keywords give the default.
	st.Set("mode", "7")
	if v := GetOption(st, "mode", modeOptions, modeOn); v != modeOn {
		t.Errorf("Unknown code: got %v", v)
	}
	st.Set("mode", "sideways")
	if v := GetOption(st, "mode", modeOptions, modeOn); v != modeOn {
		t.Errorf("Unknown keyword: got %v", v)
	}
	st.Del("mode")
	if v := GetOption(st, "mode", modeOptions, modeOn); v != modeOn {
		t.Errorf("Absent: got %v", v)
	}
	if s := SerializeOption(modeOptions, modeOn); s != "on" {
		t.Errorf("SerializeOption: got %q", s)
	}
	if !SetOption(st, "mode", modeOptions, modeOff) {
		t.Fatalf("SetOption failed")
	}
	if v, _ := st.Get("mode"); v != "off" {
		t.Errorf("SetOption stored %q", v)
	}
}

func TestQueryHandlers(t *testing.T) {
	st := newStore(t)
	st.Set("real", "1")
	// Two handlers claim the same key; registration order wins.
	st.RegisterQueryHandler(Handler{
		Check: func(key string) bool { return strings.HasPrefix(key, "virt") },
		Get:   func(key string) string { return "first" },
	})
	st.RegisterQueryHandler(Handler{
		Check: func(key string) bool { return key == "virtual" },
		Get:   func(key string) string { return "second" },
	})
	if v, ok := st.Query("real"); !ok || v != "1" {
		t.Errorf("Physical key: got %q, %v", v, ok)
	}
	if v, ok := st.Query("virtual"); !ok || v != "first" {
		t.Errorf("Virtual key: got %q, %v", v, ok)
	}
	if _, ok := st.Query("unclaimed"); ok {
		t.Errorf("Unclaimed key should not resolve")
	}
	// A physical entry shadows any handler.
	st.Set("virtual", "stored")
	if v, _ := st.Query("virtual"); v != "stored" {
		t.Errorf("Physical should shadow virtual: got %q", v)
	}
}

func TestKeyBijection(t *testing.T) {
	for _, k := range []Key{Plain("mode"), Indexed("chan", 0), Indexed("chan", 17)} {
		if got := ParseKey(k.String()); got != k {
			t.Errorf("ParseKey(%q): got %+v want %+v", k.String(), got, k)
		}
	}
	if k := ParseKey("led05"); k.Index >= 0 {
		t.Errorf("Leading-zero ordinal should parse as plain: got %+v", k)
	}
	if k := ParseKey("42"); k.Index >= 0 {
		t.Errorf("All-digit key should parse as plain: got %+v", k)
	}
}

func TestDelPrefix(t *testing.T) {
	st := newStore(t)
	for _, k := range []string{"chan0", "chan1", "chan10", "chan1x", "channel"} {
		st.Set(k, "v")
	}
	// Ordinal-aware: chan1 owns chan1 and chan10, nothing else.
	if n := st.DelPrefix("chan1"); n != 2 {
		t.Errorf("DelPrefix: removed %d want 2", n)
	}
	left := st.Keys()
	sort.Strings(left)
	want := []string{"chan0", "chan1x", "channel"}
	if len(left) != len(want) {
		t.Fatalf("Keys: got %v", left)
	}
	for i, k := range want {
		if left[i] != k {
			t.Errorf("Keys: got %v want %v", left, want)
		}
	}
	// Deleting the whole family root takes every ordinal.
	st.Set("chan1", "v")
	st.Set("chan10", "v")
	if n := st.DelPrefix("chan"); n != 3 {
		t.Errorf("DelPrefix chan: removed %d want 3", n)
	}
}

func TestMove(t *testing.T) {
	st := newStore(t)
	st.Set("oldName0", "keep")
	st.MoveIndexed("oldName", "newName", 0)
	if st.Has("oldName0") {
		t.Errorf("Move left the old key")
	}
	if v, _ := st.Get("newName0"); v != "keep" {
		t.Errorf("Move: got %q", v)
	}
	// Moving an absent key is a no-op.
	st.Move("nothing", "somewhere")
	if st.Has("somewhere") {
		t.Errorf("Move of absent key created a value")
	}
}

func TestMigrate(t *testing.T) {
	st := newStore(t)
	if v := st.MigrateVersion(); v != 0 {
		t.Errorf("Unset version should read 0: got %v", v)
	}
	var calls []int
	st.OnMigrate(func(from int) { calls = append(calls, from) })
	st.OnMigrate(func(from int) { calls = append(calls, from+100) })
	if err := st.Migrate(3); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(calls) != 2 || calls[0] != 0 || calls[1] != 100 {
		t.Errorf("Callbacks: got %v", calls)
	}
	if v := st.MigrateVersion(); v != 3 {
		t.Errorf("Version after migrate: got %v", v)
	}
	// Second run is a no-op.
	calls = nil
	if err := st.Migrate(3); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}
	if len(calls) != 0 {
		t.Errorf("No-op migrate still ran callbacks: %v", calls)
	}
	// An upgrade reports the previously stored version.
	st.Migrate(5)
	if len(calls) != 2 || calls[0] != 3 {
		t.Errorf("Upgrade callbacks: got %v", calls)
	}
}

func TestDump(t *testing.T) {
	st := newStore(t)
	st.Set("host", "meter-1")
	st.Set("led0", "on")
	st.Set("led1", "off")
	var b strings.Builder
	st.Dump(&b)
	out := b.String()
	if !strings.Contains(out, "host = meter-1\n") || !strings.Contains(out, "led0 = on\n") {
		t.Errorf("Dump: got %q", out)
	}
	b.Reset()
	st.DumpPrefix(&b, "led")
	out = b.String()
	if strings.Contains(out, "host") || !strings.Contains(out, "led1 = off\n") {
		t.Errorf("DumpPrefix: got %q", out)
	}
}
