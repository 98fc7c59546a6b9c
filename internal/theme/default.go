package theme

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type DefaultTheme struct {
	escapes []string
}

const shadeCount = 8

var baseColors = map[string]colorful.Color{
	"green":  rgb(0, 255, 0),
	"amber":  rgb(255, 191, 0),
	"red":    rgb(255, 0, 0),
	"orange": rgb(255, 165, 0),
	"blue":   rgb(0, 150, 255),
	"purple": rgb(128, 0, 255),
	"cyan":   rgb(0, 255, 255),
	"pink":   rgb(255, 20, 147),
	"white":  rgb(255, 255, 255),
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Names lists the recognized base colors.
func Names() []string {
	names := make([]string, 0, len(baseColors))
	for n := range baseColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NewDefault builds the shade ramp for a named base color. The head shade
// blends the base toward white, trail shades blend toward black, leaving
// the tail dim but never fully dark.
func NewDefault(name string) (*DefaultTheme, error) {
	base, ok := baseColors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown color %q (try: %v)", name, strings.Join(Names(), ", "))
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	escapes := make([]string, shadeCount)
	for i := range escapes {
		var c colorful.Color
		if i == 0 {
			c = base.BlendRgb(white, 0.7)
		} else {
			t := float64(i-1) / float64(shadeCount-1) * 0.8
			c = base.BlendRgb(black, t).Clamped()
		}
		r, g, b := c.RGB255()
		escapes[i] = fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	}
	return &DefaultTheme{escapes: escapes}, nil
}

func (t *DefaultTheme) Shades() int { return len(t.escapes) }

func (t *DefaultTheme) Escape(shade int) string {
	if shade < 0 {
		shade = 0
	}
	if shade >= len(t.escapes) {
		shade = len(t.escapes) - 1
	}
	return t.escapes[shade]
}

func (t *DefaultTheme) Reset() string { return "\x1b[0m" }

// MonoTheme renders without color codes for terminals or users that want
// plain output.
type MonoTheme struct{}

func (MonoTheme) Shades() int       { return 1 }
func (MonoTheme) Escape(int) string { return "" }
func (MonoTheme) Reset() string     { return "" }
