package theme

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/bytediff/internal/diff"
)

// Theme maps each span kind to the style it is printed with. Kinds without
// an entry print unstyled.
type Theme struct {
	Name   string
	Styles map[diff.Kind]tcell.Style
}

// Style returns the style for kind, or tcell.StyleDefault
func (t *Theme) Style(kind diff.Kind) tcell.Style {
	if t == nil || t.Styles == nil {
		return tcell.StyleDefault
	}
	if style, ok := t.Styles[kind]; ok {
		return style
	}
	return tcell.StyleDefault
}

// With returns a copy of t with the style for kind replaced
func (t *Theme) With(kind diff.Kind, style tcell.Style) *Theme {
	styles := make(map[diff.Kind]tcell.Style, len(t.Styles)+1)
	for k, s := range t.Styles {
		styles[k] = s
	}
	styles[kind] = style
	return &Theme{Name: t.Name, Styles: styles}
}

// Default returns the classic palette theme: black text on green, red and
// yellow backgrounds for insertions, deletions and replacements
func Default() *Theme {
	dim := tcell.StyleDefault.Foreground(tcell.ColorBlack).Dim(true)
	return &Theme{
		Name: "default",
		Styles: map[diff.Kind]tcell.Style{
			diff.Insert:  dim.Background(tcell.ColorGreen),
			diff.Delete:  dim.Background(tcell.ColorMaroon),
			diff.Replace: dim.Background(tcell.ColorOlive),
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	base := tcell.StyleDefault.Background(hex("#1a1b26"))
	return &Theme{
		Name: "tokyo-night",
		Styles: map[diff.Kind]tcell.Style{
			diff.Insert:  base.Foreground(hex("#9ece6a")).Bold(true),          // green
			diff.Delete:  base.Foreground(hex("#f7768e")).StrikeThrough(true), // red
			diff.Replace: base.Foreground(hex("#e0af68")).Bold(true),          // yellow
			diff.Match:   tcell.StyleDefault.Foreground(hex("#565f89")),       // comment gray
		},
	}
}

// Plain returns a theme without any styling
func Plain() *Theme {
	return &Theme{Name: "plain", Styles: map[diff.Kind]tcell.Style{}}
}

var builtins = map[string]func() *Theme{
	"default":     Default,
	"tokyo-night": TokyoNight,
	"plain":       Plain,
}

// BuiltinNames returns the names of the built-in themes, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
