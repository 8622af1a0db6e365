package review

import (
	"strings"

	"github.com/google/uuid"
)

// subjectColorsByName maps common subject-name variants (case-insensitive,
// accented and unaccented spellings) to their fixed display colors.
var subjectColorsByName = map[string]string{
	"matemática": "#ef4444",
	"matematica": "#ef4444",
	"mat":        "#ef4444",
	"matemat":    "#ef4444",

	"física": "#3b82f6",
	"fisica": "#3b82f6",

	"química": "#22c55e",
	"quimica": "#22c55e",

	"biologia": "#a855f7",
	"bio":      "#a855f7",

	"português":         "#f97316",
	"portugues":         "#f97316",
	"língua portuguesa": "#f97316",
	"lingua portuguesa": "#f97316",
	"literatura":        "#f97316",

	"gramática": "#fb923c",
	"gramatica": "#fb923c",

	"interpretação de texto": "#f59e0b",
	"interpretacao de texto": "#f59e0b",

	"redação": "#eab308",
	"redacao": "#eab308",

	"história": "#ec4899",
	"historia": "#ec4899",

	"geografia": "#0ea5e9",
	"geo":       "#0ea5e9",

	"sociologia": "#6366f1",
	"socio":      "#6366f1",

	"filosofia": "#8b5cf6",
	"filo":      "#8b5cf6",

	"inglês": "#06b6d4",
	"ingles": "#06b6d4",
	"ing":    "#06b6d4",
}

// fallbackPalette colors subjects whose names are not in the fixed table.
var fallbackPalette = []string{
	"#3b82f6",
	"#eab308",
	"#22c55e",
	"#a855f7",
	"#f97316",
	"#ec4899",
	"#06b6d4",
	"#f43f5e",
	"#14b8a6",
	"#8b5cf6",
}

// AccentColor returns the deterministic display color for a subject. Known
// names resolve through the fixed table; unknown names hash into the fallback
// palette. An empty name hashes the subject ID instead, so the subject still
// gets a stable color.
func AccentColor(name string, id uuid.UUID) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fallbackPalette[runeSum(id.String())%len(fallbackPalette)]
	}
	if color, ok := subjectColorsByName[key]; ok {
		return color
	}
	return fallbackPalette[runeSum(key)%len(fallbackPalette)]
}

// runeSum is the stable hash behind the fallback palette: the sum of the
// string's code points.
func runeSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}
