package sessioncode

import (
	"math/rand"
	"regexp"
	"testing"
)

type fixedSource struct {
	values []int
	pos    int
}

func (s *fixedSource) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func TestGenerateFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	g := NewDefaultGenerator()

	for i := 0; i < 1000; i++ {
		code := g.Generate()
		if !pattern.MatchString(code) {
			t.Fatalf("Generate() = %q, want match for %s", code, pattern)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   string
	}{
		{
			name:   "all zeros picks first symbol",
			values: []int{0},
			want:   "AAAAAA",
		},
		{
			name:   "last index picks last symbol",
			values: []int{35},
			want:   "999999",
		},
		{
			name:   "mixed letters and digits",
			values: []int{0, 25, 26, 35, 1, 27},
			want:   "AZ091B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&fixedSource{values: tt.values})
			got := g.Generate()
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateIndependentCodes(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))

	seen := make(map[string]int)
	for i := 0; i < 1000; i++ {
		seen[g.Generate()]++
	}

	// With 36^6 possible codes, 1000 draws from a seeded source should not
	// all land on a handful of values.
	if len(seen) < 990 {
		t.Errorf("got %d distinct codes out of 1000 draws", len(seen))
	}
}
