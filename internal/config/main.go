package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	AlphabetOnly = kingpin.Flag("alphabet-only", "Restrict glyphs to the matrix character set").Short('a').Bool()
	NoColor      = kingpin.Flag("no-color", "Disable ANSI color output").Short('n').Bool()
	FrameDelay   = kingpin.Flag("delay", "Frame delay").Default("80ms").Short('d').Duration()
	ColorName    = kingpin.Flag("color", "Base rain color").Default("green").Short('c').String()
	Density      = kingpin.Flag("density", "Fraction of columns raining, 0.1-1.0").Default("1.0").Float64()
	Seed         = kingpin.Flag("seed", "Random seed, 0 seeds from the clock").Default("0").Int64()
)

// Parse is called from main rather than a package init so that importing
// this package from a test does not run the flag parser over the test args.
func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
