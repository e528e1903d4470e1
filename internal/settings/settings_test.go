package settings

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if s.FleetDirection != 1 {
		t.Errorf("FleetDirection = %d, want 1", s.FleetDirection)
	}
	if s.ShipSpeed != s.ShipBaseSpeed || s.AlienPoints != s.AlienBasePoints {
		t.Error("dynamic settings not initialized from base values")
	}
}

func TestIncreaseSpeed(t *testing.T) {
	s := Default()
	s.IncreaseSpeed()

	const eps = 1e-9
	if math.Abs(s.ShipSpeed-s.ShipBaseSpeed*s.SpeedupScale) > eps {
		t.Errorf("ShipSpeed = %v, want %v", s.ShipSpeed, s.ShipBaseSpeed*s.SpeedupScale)
	}
	if math.Abs(s.BulletSpeed-s.BulletBaseSpeed*s.SpeedupScale) > eps {
		t.Errorf("BulletSpeed = %v", s.BulletSpeed)
	}
	if math.Abs(s.AlienSpeed-s.AlienBaseSpeed*s.SpeedupScale) > eps {
		t.Errorf("AlienSpeed = %v", s.AlienSpeed)
	}
	if s.AlienPoints != 75 {
		t.Errorf("AlienPoints = %d, want 75", s.AlienPoints)
	}

	s.IncreaseSpeed()
	if s.AlienPoints != 112 {
		t.Errorf("AlienPoints after two scale-ups = %d, want 112", s.AlienPoints)
	}
}

func TestIncreaseSpeedSaturatesPoints(t *testing.T) {
	s := Default()
	prev := s.AlienPoints
	for level := 2; level <= 200; level++ {
		s.IncreaseSpeed()
		if s.AlienPoints < prev {
			t.Fatalf("level %d: alien points went from %d to %d", level, prev, s.AlienPoints)
		}
		prev = s.AlienPoints
	}
	if s.AlienPoints != math.MaxInt {
		t.Errorf("AlienPoints = %d, want math.MaxInt", s.AlienPoints)
	}
}

func TestDefaultStartsActive(t *testing.T) {
	if !Default().StartActive {
		t.Error("Default().StartActive = false, want true")
	}
}

func TestInitializeDynamicSettingsResets(t *testing.T) {
	s := Default()
	s.IncreaseSpeed()
	s.IncreaseSpeed()
	s.ChangeFleetDirection()

	s.InitializeDynamicSettings()

	if s.ShipSpeed != s.ShipBaseSpeed || s.BulletSpeed != s.BulletBaseSpeed || s.AlienSpeed != s.AlienBaseSpeed {
		t.Error("speeds not reset")
	}
	if s.AlienPoints != s.AlienBasePoints {
		t.Errorf("AlienPoints = %d, want %d", s.AlienPoints, s.AlienBasePoints)
	}
	if s.FleetDirection != 1 {
		t.Errorf("FleetDirection = %d, want 1", s.FleetDirection)
	}
}

func TestChangeFleetDirection(t *testing.T) {
	s := Default()
	want := []int{-1, 1, -1, 1}
	for i, w := range want {
		s.ChangeFleetDirection()
		if s.FleetDirection != w {
			t.Fatalf("flip %d: FleetDirection = %d, want %d", i, s.FleetDirection, w)
		}
	}
}

func TestParseOverridesOnlyNamedKeys(t *testing.T) {
	data := []byte(`
screen_width: 800
bullets_allowed: 5
hit_pause: 250ms
bullet_color: "#ff0000"
alien_color: [1, 2, 3]
start_active: false
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	def := Default()

	if s.ScreenWidth != 800 {
		t.Errorf("ScreenWidth = %v, want 800", s.ScreenWidth)
	}
	if s.ScreenHeight != def.ScreenHeight {
		t.Errorf("ScreenHeight = %v, want default %v", s.ScreenHeight, def.ScreenHeight)
	}
	if s.BulletsAllowed != 5 {
		t.Errorf("BulletsAllowed = %d, want 5", s.BulletsAllowed)
	}
	if s.HitPause != 250*time.Millisecond {
		t.Errorf("HitPause = %v, want 250ms", s.HitPause)
	}
	if s.BulletColor != (Color{R: 255}) {
		t.Errorf("BulletColor = %v, want #ff0000", s.BulletColor)
	}
	if s.AlienColor != (Color{R: 1, G: 2, B: 3}) {
		t.Errorf("AlienColor = %v", s.AlienColor)
	}
	if s.StartActive {
		t.Error("StartActive = true, want false")
	}
	if s.FleetDirection != 1 {
		t.Error("dynamic settings not initialized after Parse")
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if s.ScreenWidth != Default().ScreenWidth {
		t.Errorf("ScreenWidth = %v", s.ScreenWidth)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		valid bool // decodes but fails validation
	}{
		{"unknown key", "screen_widht: 10", false},
		{"bad color", `bg_color: "#12"`, false},
		{"bad color component", "bg_color: [1, 2, 300]", false},
		{"zero bullets", "bullets_allowed: 0", true},
		{"negative ships", "ship_limit: -1", true},
		{"no speedup", "speedup_scale: 1.0", true},
		{"zero screen", "screen_height: 0", true},
		{"negative pause", "hit_pause: -1s", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if tt.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v does not wrap ErrInvalid", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("ship_limit: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ShipLimit != 5 {
		t.Errorf("ShipLimit = %d, want 5", s.ShipLimit)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load of a missing file succeeded")
	}
}

func TestColorMarshalRoundTrip(t *testing.T) {
	c := Color{R: 0x12, G: 0xab, B: 0xef}
	out, err := yaml.Marshal(map[string]Color{"c": c})
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]Color
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if back["c"] != c {
		t.Errorf("round trip = %v, want %v (yaml %q)", back["c"], c, out)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{R: 255, G: 0, B: 128}.RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}
