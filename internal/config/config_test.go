package config

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		want   error
	}{
		{"too many cells", func(s *Snapshot) { s.Grid.Rows = 9; s.Grid.Columns = 11 }, ErrGridCapacity},
		{"zero rows", func(s *Snapshot) { s.Grid.Rows = 0 }, ErrGridDimensions},
		{"zero step", func(s *Snapshot) { s.Movement.StepSize = 0 }, nil},
		{"zero queue", func(s *Snapshot) { s.QueueSize = 0 }, nil},
		{"multi-rune binding", func(s *Snapshot) { s.Bindings["move_up"] = "up" }, nil},
		{"unknown binding", func(s *Snapshot) { s.Bindings["warp"] = "w" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestKeyBindingsOverridesDefaults(t *testing.T) {
	s := Default()
	s.Bindings["move_up"] = "w"
	b, err := s.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings: %v", err)
	}
	if b.MoveUp != 'w' {
		t.Fatalf("MoveUp = %q, want 'w'", b.MoveUp)
	}
	if b.MoveDown != 'k' {
		t.Fatalf("MoveDown = %q, want default 'k'", b.MoveDown)
	}
}

func TestFromViperLayersOverDefaults(t *testing.T) {
	v := viper.New()
	v.Set("grid.rows", 4)
	v.Set("grid.columns", 5)
	v.Set("movement.step_size", 30)
	v.Set("history.enabled", true)
	v.Set("bindings", map[string]string{"speed_toggle": "v"})

	s, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if s.Grid.Rows != 4 || s.Grid.Columns != 5 {
		t.Fatalf("grid = %dx%d, want 4x5", s.Grid.Rows, s.Grid.Columns)
	}
	if s.Movement.StepSize != 30 {
		t.Fatalf("step_size = %d, want 30", s.Movement.StepSize)
	}
	if s.Movement.ScrollStep != 3 {
		t.Fatalf("scroll_step = %d, want default 3", s.Movement.ScrollStep)
	}
	if !s.History.Enabled {
		t.Fatal("history.enabled not applied")
	}
	b, err := s.KeyBindings()
	if err != nil {
		t.Fatalf("KeyBindings: %v", err)
	}
	if b.SpeedToggle != 'v' {
		t.Fatalf("SpeedToggle = %q, want 'v'", b.SpeedToggle)
	}
}

func TestFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	v.Set("grid.rows", 10)
	v.Set("grid.columns", 10)
	if _, err := FromViper(v); !errors.Is(err, ErrGridCapacity) {
		t.Fatalf("got %v, want ErrGridCapacity", err)
	}
}
