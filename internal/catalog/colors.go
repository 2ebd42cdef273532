package catalog

import (
	"encoding/json"
	"strings"
)

// DefaultHex is the swatch used when a stored color carries no hex value.
const DefaultHex = "#808080"

// Color is the resolved form of one stored color string. Storage holds either
// a JSON object {"name","hex"} or a bare name; both resolve here exactly once,
// at the projection boundary. Downstream code never re-parses.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	// Raw marks values that failed the JSON decode and were kept as plain
	// names. Preserved so admin round-trips write back what was stored.
	Raw bool `json:"-"`
}

// ParseColor resolves one stored color string.
func ParseColor(stored string) Color {
	trimmed := strings.TrimSpace(stored)
	if strings.HasPrefix(trimmed, "{") {
		var decoded struct {
			Name string `json:"name"`
			Hex  string `json:"hex"`
		}
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil && decoded.Name != "" {
			if decoded.Hex == "" {
				decoded.Hex = DefaultHex
			}
			return Color{Name: decoded.Name, Hex: decoded.Hex}
		}
	}
	return Color{Name: stored, Hex: DefaultHex, Raw: true}
}

// ParseColors resolves every element of a stored colors column.
func ParseColors(stored []string) []Color {
	colors := make([]Color, 0, len(stored))
	for _, s := range stored {
		colors = append(colors, ParseColor(s))
	}
	return colors
}

// Encode serializes a color back to its storage form. Raw colors stay bare
// names; parsed colors become JSON objects.
func (c Color) Encode() string {
	if c.Raw {
		return c.Name
	}
	data, err := json.Marshal(struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}{Name: c.Name, Hex: c.Hex})
	if err != nil {
		return c.Name
	}
	return string(data)
}

// EncodeColors serializes a color list back to storage form.
func EncodeColors(colors []Color) []string {
	stored := make([]string, 0, len(colors))
	for _, c := range colors {
		stored = append(stored, c.Encode())
	}
	return stored
}
