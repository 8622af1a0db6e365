package review

import (
	"testing"

	"github.com/google/uuid"
)

func TestAccentColorKnownNames(t *testing.T) {
	id := uuid.New()

	cases := []struct {
		name string
		want string
	}{
		{"Matemática", "#ef4444"},
		{"matematica", "#ef4444"},
		{"  Biologia  ", "#a855f7"},
		{"QUÍMICA", "#22c55e"},
		{"redação", "#eab308"},
		{"Inglês", "#06b6d4"},
	}
	for _, tc := range cases {
		if got := AccentColor(tc.name, id); got != tc.want {
			t.Errorf("AccentColor(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAccentColorFallbackIsDeterministic(t *testing.T) {
	id := uuid.New()

	first := AccentColor("Astronomia Avançada", id)
	for i := 0; i < 10; i++ {
		if got := AccentColor("Astronomia Avançada", id); got != first {
			t.Fatalf("color changed between calls: %s then %s", first, got)
		}
	}

	if !isPaletteColor(first) {
		t.Errorf("fallback color %s not in palette", first)
	}
}

func TestAccentColorEmptyNameUsesID(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	idB := uuid.MustParse("ffffffff-ffff-ffff-ffff-fffffffffffe")

	colorA := AccentColor("", idA)
	if colorA != AccentColor("", idA) {
		t.Error("empty-name color not stable for the same id")
	}
	if !isPaletteColor(colorA) || !isPaletteColor(AccentColor("", idB)) {
		t.Error("empty-name colors must come from the palette")
	}
}

func isPaletteColor(c string) bool {
	for _, p := range fallbackPalette {
		if c == p {
			return true
		}
	}
	return false
}
