// Package config holds the immutable configuration snapshot handed to the
// session at startup. Loading and precedence (file, environment, flags) are
// wired through viper in cmd; nothing here re-reads files after startup.
package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/keys"
)

// Grid configuration errors, surfaced synchronously to whoever activates
// the mode; activation aborts and the session stays in basic mode.
var (
	ErrGridCapacity   = geometry.ErrGridCapacity
	ErrGridDimensions = geometry.ErrGridDimensions
)

// Movement tunes basic-mode pointer actions and glide cadence.
type Movement struct {
	// StepSize is the base movement distance in pixels per key press.
	StepSize int `yaml:"step_size"`
	// FastMultiplier scales StepSize while the speed toggle is on.
	FastMultiplier float64 `yaml:"fast_multiplier"`
	// ScrollStep is the base scroll amount in line units.
	ScrollStep int `yaml:"scroll_step"`
	// ScrollFastMultiplier scales ScrollStep while the speed toggle is on.
	ScrollFastMultiplier float64 `yaml:"scroll_fast_multiplier"`
	// GlideMs / GlideStepMs bound move interpolation; GlideMs 0 disables it.
	GlideMs     int `yaml:"glide_ms"`
	GlideStepMs int `yaml:"glide_step_ms"`
}

// History configures the sqlite click-history store feeding prediction mode.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Snapshot is the complete effective configuration. It is passed by value
// and never mutated after Validate.
type Snapshot struct {
	Grid      geometry.GridConfig `yaml:"grid"`
	Movement  Movement            `yaml:"movement"`
	Bindings  map[string]string   `yaml:"bindings"`
	QueueSize int                 `yaml:"queue_size"`
	History   History             `yaml:"history"`
}

// Default returns the stock configuration.
func Default() Snapshot {
	return Snapshot{
		Grid:      geometry.GridConfig{Rows: 3, Columns: 3, Opacity: 0.8, Border: 1, Padding: 2},
		Movement:  Movement{StepSize: 15, FastMultiplier: 3, ScrollStep: 3, ScrollFastMultiplier: 2, GlideMs: 120, GlideStepMs: 8},
		Bindings:  bindingsToMap(keys.DefaultBindings()),
		QueueSize: 64,
		History:   History{Enabled: false},
	}
}

// bindingNames maps config keys to accessors on keys.Bindings. Unknown names
// in a config file are rejected rather than silently ignored.
var bindingNames = []string{
	"move_up", "move_down", "move_left", "move_right",
	"click_left", "click_right", "click_middle",
	"scroll_up", "scroll_down", "scroll_left", "scroll_right",
	"grid_mode", "area_mode", "prediction_mode",
	"speed_toggle", "hold_toggle",
	"screen_1", "screen_2", "screen_3",
}

func bindingsToMap(b keys.Bindings) map[string]string {
	runes := []rune{
		b.MoveUp, b.MoveDown, b.MoveLeft, b.MoveRight,
		b.ClickLeft, b.ClickRight, b.ClickMiddle,
		b.ScrollUp, b.ScrollDown, b.ScrollLeft, b.ScrollRight,
		b.GridMode, b.AreaMode, b.PredictionMode,
		b.SpeedToggle, b.HoldToggle,
		b.Screen1, b.Screen2, b.Screen3,
	}
	m := make(map[string]string, len(bindingNames))
	for i, name := range bindingNames {
		if runes[i] != 0 {
			m[name] = string(runes[i])
		}
	}
	return m
}

// KeyBindings resolves the configured binding map, starting from defaults so
// partial configs only override what they name.
func (s Snapshot) KeyBindings() (keys.Bindings, error) {
	b := keys.DefaultBindings()
	for name, val := range s.Bindings {
		r, size := utf8.DecodeRuneInString(val)
		if size == 0 || size != len(val) || r == utf8.RuneError {
			return b, fmt.Errorf("binding %s: %q is not a single key", name, val)
		}
		switch name {
		case "move_up":
			b.MoveUp = r
		case "move_down":
			b.MoveDown = r
		case "move_left":
			b.MoveLeft = r
		case "move_right":
			b.MoveRight = r
		case "click_left":
			b.ClickLeft = r
		case "click_right":
			b.ClickRight = r
		case "click_middle":
			b.ClickMiddle = r
		case "scroll_up":
			b.ScrollUp = r
		case "scroll_down":
			b.ScrollDown = r
		case "scroll_left":
			b.ScrollLeft = r
		case "scroll_right":
			b.ScrollRight = r
		case "grid_mode":
			b.GridMode = r
		case "area_mode":
			b.AreaMode = r
		case "prediction_mode":
			b.PredictionMode = r
		case "speed_toggle":
			b.SpeedToggle = r
		case "hold_toggle":
			b.HoldToggle = r
		case "screen_1":
			b.Screen1 = r
		case "screen_2":
			b.Screen2 = r
		case "screen_3":
			b.Screen3 = r
		default:
			return b, fmt.Errorf("unknown binding name %q", name)
		}
	}
	return b, nil
}

// Validate checks the snapshot before the session starts.
func (s Snapshot) Validate() error {
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if s.Movement.StepSize < 1 {
		return fmt.Errorf("movement.step_size must be at least 1, got %d", s.Movement.StepSize)
	}
	if s.Movement.FastMultiplier <= 0 {
		return fmt.Errorf("movement.fast_multiplier must be positive, got %g", s.Movement.FastMultiplier)
	}
	if s.Movement.ScrollStep < 1 {
		return fmt.Errorf("movement.scroll_step must be at least 1, got %d", s.Movement.ScrollStep)
	}
	if s.QueueSize < 1 {
		return fmt.Errorf("queue_size must be at least 1, got %d", s.QueueSize)
	}
	if _, err := s.KeyBindings(); err != nil {
		return err
	}
	return nil
}

// FromViper builds a Snapshot from a configured viper instance, layering
// file and environment values over the defaults.
func FromViper(v *viper.Viper) (Snapshot, error) {
	s := Default()
	if v.IsSet("grid.rows") {
		s.Grid.Rows = v.GetInt("grid.rows")
	}
	if v.IsSet("grid.columns") {
		s.Grid.Columns = v.GetInt("grid.columns")
	}
	if v.IsSet("grid.span_all") {
		s.Grid.SpanAll = v.GetBool("grid.span_all")
	}
	if v.IsSet("grid.padding") {
		s.Grid.Padding = v.GetInt("grid.padding")
	}
	if v.IsSet("grid.border") {
		s.Grid.Border = v.GetInt("grid.border")
	}
	if v.IsSet("grid.opacity") {
		s.Grid.Opacity = v.GetFloat64("grid.opacity")
	}
	if v.IsSet("movement.step_size") {
		s.Movement.StepSize = v.GetInt("movement.step_size")
	}
	if v.IsSet("movement.fast_multiplier") {
		s.Movement.FastMultiplier = v.GetFloat64("movement.fast_multiplier")
	}
	if v.IsSet("movement.scroll_step") {
		s.Movement.ScrollStep = v.GetInt("movement.scroll_step")
	}
	if v.IsSet("movement.scroll_fast_multiplier") {
		s.Movement.ScrollFastMultiplier = v.GetFloat64("movement.scroll_fast_multiplier")
	}
	if v.IsSet("movement.glide_ms") {
		s.Movement.GlideMs = v.GetInt("movement.glide_ms")
	}
	if v.IsSet("movement.glide_step_ms") {
		s.Movement.GlideStepMs = v.GetInt("movement.glide_step_ms")
	}
	if v.IsSet("queue_size") {
		s.QueueSize = v.GetInt("queue_size")
	}
	if v.IsSet("history.enabled") {
		s.History.Enabled = v.GetBool("history.enabled")
	}
	if v.IsSet("history.path") {
		s.History.Path = v.GetString("history.path")
	}
	if v.IsSet("bindings") {
		for name, val := range v.GetStringMapString("bindings") {
			s.Bindings[name] = val
		}
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
