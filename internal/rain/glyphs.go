package rain

import (
	"math/rand"

	"github.com/mattn/go-runewidth"
)

// Alphabet is the set of runes a column may display.
type Alphabet []rune

var (
	// Full is the printable ASCII range.
	Full = NewAlphabet(printable())

	// Matrix is the classic rain set, half-width katakana and a lambda.
	Matrix = NewAlphabet([]rune("λｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ"))
)

// NewAlphabet keeps only runes that occupy exactly one terminal cell.
// A wide or zero-width rune in a column would smear its neighbours.
// An empty result falls back to the printable ASCII range.
func NewAlphabet(runes []rune) Alphabet {
	a := make(Alphabet, 0, len(runes))
	for _, r := range runes {
		if runewidth.RuneWidth(r) != 1 {
			continue
		}
		a = append(a, r)
	}
	if len(a) == 0 {
		return Alphabet(printable())
	}
	return a
}

func printable() []rune {
	runes := make([]rune, 0, '~'-'!'+1)
	for r := '!'; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return runes
}

// GlyphSource draws glyphs from an alphabet using an explicit random
// stream, so a fixed seed reproduces the whole animation.
type GlyphSource struct {
	alphabet Alphabet
	rng      *rand.Rand
}

func NewGlyphSource(alphabet Alphabet, rng *rand.Rand) *GlyphSource {
	return &GlyphSource{alphabet: alphabet, rng: rng}
}

// Next returns a uniformly drawn glyph. Total, no error conditions.
func (s *GlyphSource) Next() rune {
	return s.alphabet[s.rng.Intn(len(s.alphabet))]
}
