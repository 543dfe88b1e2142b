package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/bytediff/internal/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected tcell.Color
	}{
		{"long hex", "#ff8000", tcell.NewRGBColor(255, 128, 0)},
		{"upper hex", " #FF8000 ", tcell.NewRGBColor(255, 128, 0)},
		{"short hex", "#f80", tcell.NewRGBColor(255, 136, 0)},
		{"rgb", "rgb(1, 2, 3)", tcell.NewRGBColor(1, 2, 3)},
		{"named", "Green", tcell.ColorGreen},
		{"default", "default", tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			require.NoError(t, err)
			if got != tt.expected {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseColorRejects(t *testing.T) {
	for _, input := range []string{
		"#12",
		"#12345",
		"#1234567",
		"#gggggg",
		"rgb(1, 2)",
		"rgb(1, 2, 300)",
		"rgb(a, b, c)",
		"not-a-color",
		"",
	} {
		_, err := ParseColor(input)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", input)
	}
}

func TestThemeStyleFallsBackToDefault(t *testing.T) {
	th := Default()
	assert.Equal(t, tcell.StyleDefault, th.Style(diff.Match))
	assert.NotEqual(t, tcell.StyleDefault, th.Style(diff.Insert))

	var none *Theme
	assert.Equal(t, tcell.StyleDefault, none.Style(diff.Insert))
}

func TestWithDoesNotModifyOriginal(t *testing.T) {
	base := Default()
	changed := base.With(diff.Insert, tcell.StyleDefault.Bold(true))

	assert.Equal(t, tcell.StyleDefault.Bold(true), changed.Style(diff.Insert))
	assert.Equal(t, Default().Style(diff.Insert), base.Style(diff.Insert))
}

func TestLoadThemeFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.toml")
	content := `
base = "plain"

[styles.insert]
fg = "#000000"
bg = "#00ff00"
bold = true

[styles.DELETE]
bg = "red"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 0, 0)).Background(tcell.NewRGBColor(0, 255, 0)).Bold(true), th.Style(diff.Insert))
	assert.Equal(t, tcell.StyleDefault.Background(tcell.ColorRed), th.Style(diff.Delete))
	assert.Equal(t, tcell.StyleDefault, th.Style(diff.Replace))
}

func TestLoadThemeFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadThemeFromFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[styles.sideways]\nfg = \"red\"\n"), 0644))
	_, err = LoadThemeFromFile(bad)
	assert.ErrorContains(t, err, "unknown span kind")

	typo := filepath.Join(dir, "typo.toml")
	require.NoError(t, os.WriteFile(typo, []byte("[styles.insert]\nfg = \"#12\"\n"), 0644))
	_, err = LoadThemeFromFile(typo)
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.ErrorContains(t, err, "styles.insert: fg")

	unnamed := filepath.Join(dir, "unnamed.toml")
	require.NoError(t, os.WriteFile(unnamed, []byte("[styles.replace]\nbg = \"purple\"\n"), 0644))
	_, err = LoadThemeFromFile(unnamed)
	assert.NoError(t, err)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("name = \n"), 0644))
	_, err = LoadThemeFromFile(broken)
	assert.ErrorContains(t, err, "failed to parse theme file")
}

func TestTokyoNight(t *testing.T) {
	th := TokyoNight()
	bg := tcell.NewRGBColor(26, 27, 38)
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(158, 206, 106)).Background(bg).Bold(true), th.Style(diff.Insert))
	assert.Equal(t, tcell.StyleDefault.Foreground(tcell.NewRGBColor(86, 95, 137)), th.Style(diff.Match))
}

func TestLoadThemeFromSuggestsNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solarized.toml"), []byte("name = \"solarized\"\n"), 0644))

	th, err := loadThemeFrom("solarized", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "solarized", th.Name)

	th, err = loadThemeFrom("tokyo-night", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "tokyo-night", th.Name)

	_, err = loadThemeFrom("tokyo", []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean tokyo-night")

	_, err = loadThemeFrom("zzz", []string{dir})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}
