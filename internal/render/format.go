package render

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/bytediff/internal/diff"
	"github.com/pstuifzand/bytediff/internal/theme"
)

// Formatter decorates encoded span text according to its kind
type Formatter interface {
	Format(text string, kind diff.Kind) string
}

// SymbolFormatter marks edits with ++[..], --[..] and ~~[..]; matches are
// printed verbatim
type SymbolFormatter struct{}

func (SymbolFormatter) Format(text string, kind diff.Kind) string {
	switch kind {
	case diff.Insert:
		return "++[" + text + "]"
	case diff.Delete:
		return "--[" + text + "]"
	case diff.Replace:
		return "~~[" + text + "]"
	default:
		return text
	}
}

// ANSIReset ends any SGR styling
const ANSIReset = "\x1b[0m"

// ANSIFormatter colors span text with SGR escape sequences taken from a theme
type ANSIFormatter struct {
	Theme *theme.Theme
}

// NewANSIFormatter returns a formatter for th, or for the default theme if th is nil
func NewANSIFormatter(th *theme.Theme) ANSIFormatter {
	if th == nil {
		th = theme.Default()
	}
	return ANSIFormatter{Theme: th}
}

func (f ANSIFormatter) Format(text string, kind diff.Kind) string {
	seq := SGR(f.Theme.Style(kind))
	if seq == "" || text == "" {
		return text
	}
	return seq + text + ANSIReset
}

// SGR returns the escape sequence that switches a terminal to style, or ""
// for the default style
func SGR(style tcell.Style) string {
	fg, bg, attrs := style.Decompose()

	var params []string
	for _, a := range []struct {
		mask tcell.AttrMask
		code string
	}{
		{tcell.AttrBold, "1"},
		{tcell.AttrDim, "2"},
		{tcell.AttrItalic, "3"},
		{tcell.AttrBlink, "5"},
		{tcell.AttrReverse, "7"},
		{tcell.AttrStrikeThrough, "9"},
	} {
		if attrs&a.mask != 0 {
			params = append(params, a.code)
		}
	}

	params = append(params, colorParams(fg, false)...)
	params = append(params, colorParams(bg, true)...)

	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func colorParams(c tcell.Color, background bool) []string {
	if c == tcell.ColorDefault || !c.Valid() {
		return nil
	}

	if c.IsRGB() {
		r, g, b := c.RGB()
		lead := "38"
		if background {
			lead = "48"
		}
		return []string{lead, "2", strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	}

	index := int(c - tcell.ColorValid)
	base := 30
	if background {
		base = 40
	}
	switch {
	case index < 8:
		return []string{strconv.Itoa(base + index)}
	case index < 16:
		return []string{strconv.Itoa(base + 60 + index - 8)}
	default:
		return []string{strconv.Itoa(base + 8), "5", strconv.Itoa(index)}
	}
}
