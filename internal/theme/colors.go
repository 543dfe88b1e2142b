package theme

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for color strings ParseColor does not understand
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses a theme file color: #RRGGBB, #RGB, rgb(r, g, b), a tcell
// color name such as "green" or "darkred", or "default" for the terminal's
// own color.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"))
	case s == "default":
		return tcell.ColorDefault, nil
	}

	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%w %q", ErrInvalidColor, s)
}

// colorful.Hex scans with %02x, which accepts "#12345" and ignores trailing
// input, so the length is checked first
func parseHex(s string) (tcell.Color, error) {
	if len(s) != 4 && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("%w %q: want #RGB or #RRGGBB", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

func parseRGB(inner string) (tcell.Color, error) {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return tcell.ColorDefault, fmt.Errorf("%w rgb(%s): want three components", ErrInvalidColor, inner)
	}

	var rgb [3]int32
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 || v > 255 {
			return tcell.ColorDefault, fmt.Errorf("%w rgb(%s): components must be 0-255", ErrInvalidColor, inner)
		}
		rgb[i] = int32(v)
	}
	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}

// hex is ParseColor for the built-in palettes
func hex(s string) tcell.Color {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
