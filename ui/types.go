// Package ui draws the control panel and heads-up display. Sliders are
// generated from config.Tunables and toggles from the overlay registry, so
// new settings appear without layout changes here.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Actions reports what the user asked for through the panel this frame.
type Actions struct {
	ParamsChanged bool // a tunable moved; apply on the next tick
	Reinit        bool // rebuild the flock (refresh button or resolution)
	RespawnFood   bool
	TogglePause   bool
	ToggleSound   bool
	ToggleWalls   bool
}

// Any reports whether any action was requested.
func (a Actions) Any() bool {
	return a.ParamsChanged || a.Reinit || a.RespawnFood || a.TogglePause || a.ToggleSound || a.ToggleWalls
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	ActiveColor    rl.Color
	InactiveColor  rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	SliderHeight   int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		ActiveColor:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		InactiveColor:  rl.Color{R: 80, G: 80, B: 80, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		SliderHeight:   14,
		ButtonHeight:   24,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
