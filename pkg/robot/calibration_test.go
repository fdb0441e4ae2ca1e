package robot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEEPROMFile_RoundTrip(t *testing.T) {
	store := EEPROMFile{Path: filepath.Join(t.TempDir(), "trims.bin")}

	// Missing image reads as zero trims.
	got, err := LoadTrims(store)
	if err != nil {
		t.Fatalf("LoadTrims on missing file: %v", err)
	}
	if got != (Trims{}) {
		t.Errorf("LoadTrims on missing file = %v, want zeros", got)
	}

	want := Trims{-128, 127, -3, 12}
	if err := SaveTrims(store, want); err != nil {
		t.Fatalf("SaveTrims: %v", err)
	}

	got, err = LoadTrims(store)
	if err != nil {
		t.Fatalf("LoadTrims: %v", err)
	}
	if got != want {
		t.Errorf("LoadTrims = %v, want %v", got, want)
	}

	raw, err := os.ReadFile(store.Path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != NumJoints || raw[0] != 0x80 || raw[2] != 0xfd {
		t.Errorf("image bytes = % x", raw)
	}
}

func TestEEPROMFile_AddressRange(t *testing.T) {
	store := EEPROMFile{Path: filepath.Join(t.TempDir(), "trims.bin")}

	if _, err := store.ReadTrim(4); err == nil {
		t.Error("ReadTrim(4) should fail")
	}
	if err := store.WriteTrim(-1, 0); err == nil {
		t.Error("WriteTrim(-1) should fail")
	}
}

func TestConfigStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biped.json")
	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	store := ConfigStore{Config: cfg}
	if err := SaveTrims(store, Trims{1, -2, 3, -4}); err != nil {
		t.Fatalf("SaveTrims: %v", err)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if loaded.Trims != (Trims{1, -2, 3, -4}) {
		t.Errorf("saved trims = %v", loaded.Trims)
	}
	if loaded.IDs != [NumJoints]int{1, 2, 3, 4} {
		t.Errorf("ids = %v", loaded.IDs)
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biped.json")
	cfg := DefaultConfig()
	cfg.Port = "/dev/ttyUSB0"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BIPED_PORT", "/dev/ttyACM1")
	t.Setenv("BIPED_BACKEND", BackendFeetech)

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Port != "/dev/ttyACM1" || loaded.Backend != BackendFeetech {
		t.Errorf("env override not applied: %+v", loaded)
	}
}

func TestRobot_InitLoadsTrims(t *testing.T) {
	store := EEPROMFile{Path: filepath.Join(t.TempDir(), "trims.bin")}
	if err := SaveTrims(store, Trims{5, -5, 0, 10}); err != nil {
		t.Fatal(err)
	}

	r, recs, _ := newTestRobot(WithTrimStore(store, true))
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if r.Trims() != (Trims{5, -5, 0, 10}) {
		t.Errorf("Trims() = %v", r.Trims())
	}
	if r.Positions() != Neutral {
		t.Errorf("Positions() = %v, want neutral", r.Positions())
	}
	for j, rec := range recs {
		if len(rec.writes) != 0 {
			t.Errorf("Init moved channel %d", j)
		}
	}

	r.MoveServos(0, Neutral)
	if recs[LeftHip].writes[0] != 95 || recs[RightHip].writes[0] != 85 || recs[RightFoot].writes[0] != 100 {
		t.Errorf("trims not applied on write")
	}

	r.SetTrims(Trims{1, 2, 3, 4})
	if err := r.SaveTrims(); err != nil {
		t.Fatal(err)
	}
	saved, _ := LoadTrims(store)
	if saved != (Trims{1, 2, 3, 4}) {
		t.Errorf("saved trims = %v", saved)
	}
}

func TestRobot_InitWithoutLoadKeepsTrims(t *testing.T) {
	store := EEPROMFile{Path: filepath.Join(t.TempDir(), "trims.bin")}
	if err := SaveTrims(store, Trims{5, 5, 5, 5}); err != nil {
		t.Fatal(err)
	}

	r, _, _ := newTestRobot(WithTrimStore(store, false))
	if err := r.Init(); err != nil {
		t.Fatal(err)
	}
	if r.Trims() != (Trims{}) {
		t.Errorf("Trims() = %v, want zeros when loading is disabled", r.Trims())
	}
}

func TestConfigStore_EnvOverrideNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biped.json")
	cfg := DefaultConfig()
	cfg.Port = "/dev/ttyUSB0"
	cfg.Backend = BackendFeetech
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BIPED_PORT", "/dev/null")
	t.Setenv("BIPED_BACKEND", BackendSim)
	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveTrims(ConfigStore{Config: loaded}, Trims{3, 0, 0, 0}); err != nil {
		t.Fatalf("SaveTrims: %v", err)
	}
	if loaded.Port != "/dev/null" || loaded.Backend != BackendSim {
		t.Errorf("override lost for this run: %+v", loaded)
	}

	t.Setenv("BIPED_PORT", "")
	t.Setenv("BIPED_BACKEND", "")
	reloaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Port != "/dev/ttyUSB0" || reloaded.Backend != BackendFeetech {
		t.Errorf("file values changed: port=%q backend=%q", reloaded.Port, reloaded.Backend)
	}
	if reloaded.Trims != (Trims{3, 0, 0, 0}) {
		t.Errorf("trims = %v", reloaded.Trims)
	}
}

func TestConfig_OverrideThenSave(t *testing.T) {
	tests := []struct {
		name        string
		save        func(*Config) error
		wantBackend string
	}{
		{"trims keep file backend", func(c *Config) error { return c.SaveTrims(Trims{1, 1, 1, 1}) }, BackendFeetech},
		{"full save adopts override", (*Config).Save, BackendSim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "biped.json")
			cfg := DefaultConfig()
			cfg.Port = "/dev/ttyUSB0"
			cfg.Backend = BackendFeetech
			if err := cfg.SaveTo(path); err != nil {
				t.Fatal(err)
			}

			cfg.Override("", BackendSim)
			if cfg.Backend != BackendSim || cfg.Port != "/dev/ttyUSB0" {
				t.Fatalf("Override: %+v", cfg)
			}
			if err := tt.save(cfg); err != nil {
				t.Fatal(err)
			}

			loaded, err := LoadConfigFrom(path)
			if err != nil {
				t.Fatal(err)
			}
			if loaded.Backend != tt.wantBackend {
				t.Errorf("backend = %q, want %q", loaded.Backend, tt.wantBackend)
			}
		})
	}
}

// countingStore records how it was written to.
type countingStore struct {
	trims       Trims
	single, all int
}

func (s *countingStore) ReadTrim(addr int) (int8, error) { return s.trims[addr], nil }

func (s *countingStore) WriteTrim(addr int, trim int8) error {
	s.single++
	s.trims[addr] = trim
	return nil
}

func (s *countingStore) WriteTrims(t Trims) error {
	s.all++
	s.trims = t
	return nil
}

func TestSaveTrims_SingleUpdate(t *testing.T) {
	s := &countingStore{}
	if err := SaveTrims(s, Trims{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	if s.all != 1 || s.single != 0 {
		t.Errorf("writes: all=%d single=%d, want 1 and 0", s.all, s.single)
	}
	if s.trims != (Trims{1, 2, 3, 4}) {
		t.Errorf("trims = %v", s.trims)
	}
}
