package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pelletier/go-toml/v2"
	"github.com/pstuifzand/bytediff/internal/diff"
)

// ThemeConfig represents the raw TOML theme configuration
//
//	name = "mine"
//	base = "default"
//
//	[styles.insert]
//	fg = "#000000"
//	bg = "#9ece6a"
//	bold = true
type ThemeConfig struct {
	Name   string                 `toml:"name"`
	Base   string                 `toml:"base"`
	Styles map[string]StyleConfig `toml:"styles"`
}

// StyleConfig is the TOML form of a single span style
type StyleConfig struct {
	Fg            string `toml:"fg"`
	Bg            string `toml:"bg"`
	Bold          bool   `toml:"bold"`
	Dim           bool   `toml:"dim"`
	Italic        bool   `toml:"italic"`
	Reverse       bool   `toml:"reverse"`
	StrikeThrough bool   `toml:"strikethrough"`
}

func (sc StyleConfig) style() (tcell.Style, error) {
	style := tcell.StyleDefault
	if sc.Fg != "" {
		fg, err := ParseColor(sc.Fg)
		if err != nil {
			return style, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(fg)
	}
	if sc.Bg != "" {
		bg, err := ParseColor(sc.Bg)
		if err != nil {
			return style, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(bg)
	}
	return style.
		Bold(sc.Bold).
		Dim(sc.Dim).
		Italic(sc.Italic).
		Reverse(sc.Reverse).
		StrikeThrough(sc.StrikeThrough), nil
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "bytediff", "themes"))
		paths = append(paths, filepath.Join(home, ".local", "share", "bytediff", "themes"))
	}

	return paths
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	theme, err := configToTheme(config)
	if err != nil {
		return nil, fmt.Errorf("invalid theme file %s: %w", filePath, err)
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(filePath), ".toml")
	}
	return theme, nil
}

// configToTheme converts a ThemeConfig to a Theme. Styles start from the base
// theme (the default theme if unset) and are replaced per kind.
func configToTheme(config ThemeConfig) (*Theme, error) {
	baseName := config.Base
	if baseName == "" {
		baseName = "default"
	}
	newBase, ok := builtins[baseName]
	if !ok {
		return nil, fmt.Errorf("unknown base theme %q", baseName)
	}

	theme := newBase()
	theme.Name = config.Name

	for key, sc := range config.Styles {
		kind, err := diff.ParseKind(key)
		if err != nil {
			return nil, err
		}
		style, err := sc.style()
		if err != nil {
			return nil, fmt.Errorf("styles.%s: %w", key, err)
		}
		theme = theme.With(kind, style)
	}

	return theme, nil
}

// LoadTheme loads a theme by name: built-in themes first, then TOML files in
// the standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	return loadThemeFrom(themeName, getThemePaths())
}

func loadThemeFrom(themeName string, dirs []string) (*Theme, error) {
	if newTheme, ok := builtins[themeName]; ok {
		return newTheme(), nil
	}

	filename := themeName + ".toml"
	for _, dir := range dirs {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return LoadThemeFromFile(path)
		}
	}

	err := fmt.Errorf("theme not found: %s", themeName)
	if suggestions := suggest(themeName, availableThemes(dirs)); len(suggestions) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
	}
	return nil, err
}

// availableThemes lists built-in names plus theme files found in dirs
func availableThemes(dirs []string) []string {
	seen := make(map[string]bool)
	names := BuiltinNames()
	for _, name := range names {
		seen[name] = true
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".toml")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}

// suggest returns candidates that fuzzy-match name, closest first
func suggest(name string, candidates []string) []string {
	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}
