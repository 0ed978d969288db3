package sessioncode

import (
	"math/rand"
	"strings"
)

const (
	// Alphabet is the symbol set session codes are drawn from.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length is the fixed length of a session code.
	Length = 6
)

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Generator produces short human-shareable session codes.
// Codes are NOT guaranteed unique; the caller decides whether to re-check.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// NewDefaultGenerator returns a generator seeded from the global source.
func NewDefaultGenerator() *Generator {
	return &Generator{src: rand.New(rand.NewSource(rand.Int63()))}
}

// Generate returns a 6-character code uniformly sampled (with replacement)
// from the 36-symbol alphabet.
func (g *Generator) Generate() string {
	var sb strings.Builder
	sb.Grow(Length)
	for i := 0; i < Length; i++ {
		sb.WriteByte(Alphabet[g.src.Intn(len(Alphabet))])
	}
	return sb.String()
}
