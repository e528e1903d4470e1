package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Load reads a YAML settings file. Keys missing from the file keep their
// default values; unknown keys are rejected.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML settings over the defaults and validates the result.
func Parse(data []byte) (*Settings, error) {
	s := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.InitializeDynamicSettings()
	return s, nil
}

// Validate checks that the static settings describe a playable game.
func (s *Settings) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if s.ScreenWidth <= 0 || s.ScreenHeight <= 0 {
		invalid("screen size %vx%v must be positive", s.ScreenWidth, s.ScreenHeight)
	}
	if s.ShipWidth <= 0 || s.ShipHeight <= 0 {
		invalid("ship size %vx%v must be positive", s.ShipWidth, s.ShipHeight)
	}
	if s.AlienWidth <= 0 || s.AlienHeight <= 0 {
		invalid("alien size %vx%v must be positive", s.AlienWidth, s.AlienHeight)
	}
	if s.BulletWidth <= 0 || s.BulletHeight <= 0 {
		invalid("bullet size %vx%v must be positive", s.BulletWidth, s.BulletHeight)
	}
	if s.ShipBaseSpeed <= 0 || s.BulletBaseSpeed <= 0 || s.AlienBaseSpeed <= 0 {
		invalid("speeds must be positive")
	}
	if s.FleetDropSpeed < 0 {
		invalid("fleet_drop_speed %v must not be negative", s.FleetDropSpeed)
	}
	if s.ShipLimit < 0 {
		invalid("ship_limit %d must not be negative", s.ShipLimit)
	}
	if s.BulletsAllowed < 1 {
		invalid("bullets_allowed %d must be at least 1", s.BulletsAllowed)
	}
	if s.AlienBasePoints < 0 {
		invalid("alien_points %d must not be negative", s.AlienBasePoints)
	}
	if s.SpeedupScale <= 1 || s.ScoreScale <= 1 {
		invalid("speedup_scale and score_scale must be greater than 1")
	}
	if s.HitPause < 0 {
		invalid("hit_pause %v must not be negative", s.HitPause)
	}

	return errors.Join(errs...)
}
