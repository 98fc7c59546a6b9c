package theme

// Theme maps fade shades to ANSI escape prefixes. Shade 0 is the head,
// the brightest cell of a trail; higher shades are dimmer.
type Theme interface {
	Shades() int
	Escape(shade int) string
	Reset() string
}
