package theme

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ColorScheme holds the five named color slots widgets draw with.
type ColorScheme struct {
	Foreground      color.RGBA
	Background      color.RGBA
	Cursor          color.RGBA
	BorderUnfocused color.RGBA
	BorderFocused   color.RGBA
}

// FontSizes are integer scale factors applied to the backend glyph size.
// Names follow HTML: <h1>, <h2>, <p>.
type FontSizes struct {
	H1 int
	H2 int
	P  int
}

// Theme bundles colors and font scaling.
type Theme struct {
	Colors    ColorScheme
	FontSizes FontSizes
}

// file mirrors the on-disk theme layout shared by the TOML and YAML loaders.
type file struct {
	Colors struct {
		Foreground      string `toml:"foreground" yaml:"foreground"`
		Background      string `toml:"background" yaml:"background"`
		Cursor          string `toml:"cursor" yaml:"cursor"`
		BorderUnfocused string `toml:"border_unfocused" yaml:"border_unfocused"`
		BorderFocused   string `toml:"border_focused" yaml:"border_focused"`
	} `toml:"colors" yaml:"colors"`
	FontSizes struct {
		H1 int `toml:"h1" yaml:"h1"`
		H2 int `toml:"h2" yaml:"h2"`
		P  int `toml:"p" yaml:"p"`
	} `toml:"font_sizes" yaml:"font_sizes"`
}

var defaultTheme = Theme{
	Colors: ColorScheme{
		Foreground:      rgb(0x8c, 0x79, 0x40),
		Background:      rgb(0x0f, 0x0f, 0x0f),
		Cursor:          rgb(0x80, 0x77, 0x38),
		BorderUnfocused: rgb(0xf7, 0xff, 0xdd),
		BorderFocused:   rgb(0xd8, 0xe1, 0x93),
	},
	// font size 1 is tiny on a real frame buffer, so text defaults to 2
	FontSizes: FontSizes{H1: 3, H2: 2, P: 2},
}

// Default returns the built-in theme.
func Default() Theme {
	return defaultTheme
}

// Load reads a theme file. The format is chosen from the extension (.toml,
// .yaml or .yml). Slots missing from the file keep their default values.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return Theme{}, fmt.Errorf("unsupported theme format %q", filepath.Ext(path))
	}
	if err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	return f.resolve()
}

func (f file) resolve() (Theme, error) {
	t := Default()
	slots := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"foreground", f.Colors.Foreground, &t.Colors.Foreground},
		{"background", f.Colors.Background, &t.Colors.Background},
		{"cursor", f.Colors.Cursor, &t.Colors.Cursor},
		{"border_unfocused", f.Colors.BorderUnfocused, &t.Colors.BorderUnfocused},
		{"border_focused", f.Colors.BorderFocused, &t.Colors.BorderFocused},
	}
	var errs []error
	for _, slot := range slots {
		if strings.TrimSpace(slot.value) == "" {
			continue
		}
		c, err := ParseColor(slot.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", slot.name, err))
			continue
		}
		*slot.dst = c
	}
	sizes := []struct {
		name  string
		value int
		dst   *int
	}{
		{"h1", f.FontSizes.H1, &t.FontSizes.H1},
		{"h2", f.FontSizes.H2, &t.FontSizes.H2},
		{"p", f.FontSizes.P, &t.FontSizes.P},
	}
	for _, size := range sizes {
		switch {
		case size.value == 0:
		case size.value < 0:
			errs = append(errs, fmt.Errorf("font_sizes.%s must be >= 1 (got %d)", size.name, size.value))
		default:
			*size.dst = size.value
		}
	}
	if len(errs) > 0 {
		return Theme{}, errors.Join(errs...)
	}
	return t, nil
}

// ParseColor accepts "#rrggbb" hex notation.
func ParseColor(value string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return rgb(r, g, b), nil
}

// Hex formats a color as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
