package keys

// Bindings maps runes to basic-mode actions and mode activations. Zero-value
// runes disable a binding; DefaultBindings gives the stock layout.
type Bindings struct {
	MoveUp    rune `yaml:"move_up"`
	MoveDown  rune `yaml:"move_down"`
	MoveLeft  rune `yaml:"move_left"`
	MoveRight rune `yaml:"move_right"`

	ClickLeft   rune `yaml:"click_left"`
	ClickRight  rune `yaml:"click_right"`
	ClickMiddle rune `yaml:"click_middle"`

	ScrollUp    rune `yaml:"scroll_up"`
	ScrollDown  rune `yaml:"scroll_down"`
	ScrollLeft  rune `yaml:"scroll_left"`
	ScrollRight rune `yaml:"scroll_right"`

	GridMode       rune `yaml:"grid_mode"`
	AreaMode       rune `yaml:"area_mode"`
	PredictionMode rune `yaml:"prediction_mode"`

	SpeedToggle rune `yaml:"speed_toggle"`
	HoldToggle  rune `yaml:"hold_toggle"`

	Screen1 rune `yaml:"screen_1"`
	Screen2 rune `yaml:"screen_2"`
	Screen3 rune `yaml:"screen_3"`
}

// DefaultBindings is the stock right-hand layout: i/k/j/l movement, n/m
// clicks, u/o/y/p scrolling, g/a/r mode activation.
func DefaultBindings() Bindings {
	return Bindings{
		MoveUp:    'i',
		MoveDown:  'k',
		MoveLeft:  'j',
		MoveRight: 'l',

		ClickLeft:   'n',
		ClickRight:  'm',
		ClickMiddle: ',',

		ScrollUp:    'u',
		ScrollDown:  'o',
		ScrollLeft:  'y',
		ScrollRight: 'p',

		GridMode:       'g',
		AreaMode:       'a',
		PredictionMode: 'r',

		SpeedToggle: 'f',
		HoldToggle:  'b',

		Screen1: '1',
		Screen2: '2',
		Screen3: '3',
	}
}
