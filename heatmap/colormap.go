package heatmap

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMap converts one heatmap value into a pixel colour. The value is
// shifted so the calibrated minimum is zero; valueRange is the calibrated
// maximum minus the minimum.
type ColorMap interface {
	Color(shifted, valueRange int) color.RGBA
}

// Greyscale is the default colour map: values are normalised against the
// calibrated range and mapped to grey levels.
type Greyscale struct{}

// Color implements ColorMap.
func (Greyscale) Color(shifted, valueRange int) color.RGBA {
	normalized := float64(shifted)
	if valueRange > 0 {
		normalized /= float64(valueRange)
	}
	grey := uint8(math.Round(255 * math.Min(math.Max(normalized, 0), 1)))
	return color.RGBA{R: grey, G: grey, B: grey, A: 255}
}

// Absolute maps specific values to user-defined colours, with a fallback
// for everything unlisted.
type Absolute struct {
	Default color.RGBA
	Colors  map[int]color.RGBA
}

// Color implements ColorMap.
func (m Absolute) Color(shifted, _ int) color.RGBA {
	if c, ok := m.Colors[shifted]; ok {
		return c
	}
	return m.Default
}

// ParseColor parses an HTML-style colour: #RGB, #RGBA, #RRGGBB or
// #RRGGBBAA, each with the leading "#" optional. Missing alpha means
// opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	var componentLen int
	switch len(hex) {
	case 3, 4:
		componentLen = 1
	case 6, 8:
		componentLen = 2
	default:
		return color.RGBA{}, fmt.Errorf("heatmap: bad color %q", s)
	}

	components := [4]uint8{0, 0, 0, 255}
	for i := 0; i*componentLen < len(hex); i++ {
		part := hex[i*componentLen : (i+1)*componentLen]
		if componentLen == 1 {
			// Single-digit components are doubled, as in CSS.
			part += part
		}
		value, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("heatmap: bad color %q: %v", s, err)
		}
		components[i] = uint8(value)
	}
	return color.RGBA{R: components[0], G: components[1], B: components[2], A: components[3]}, nil
}

// File is a parsed colour-map file: rendering options overriding flag
// defaults, plus a value-to-colour table.
type File struct {
	Options Options           `yaml:"options"`
	Colors  map[string]string `yaml:"colors"`
}

// Options are the rendering defaults a colour-map file may override.
type Options struct {
	XColumn     string `yaml:"x_column"`
	YColumn     string `yaml:"y_column"`
	ValueColumn string `yaml:"value_column"`
	MinValue    *int   `yaml:"min_value"`
	MaxValue    *int   `yaml:"max_value"`
	OutputFile  string `yaml:"output_file"`
	DataFile    string `yaml:"data_file"`
}

// ParseFile reads a YAML colour-map file.
func ParseFile(r io.Reader) (*File, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ColorMap builds the Absolute colour map described by the file's colors
// section. Numeric keys map values to colours; the "default" key sets the
// fallback, which is fully transparent when absent.
func (f *File) ColorMap() (*Absolute, error) {
	m := &Absolute{Colors: make(map[int]color.RGBA, len(f.Colors))}
	for key, value := range f.Colors {
		parsed, err := ParseColor(value)
		if err != nil {
			return nil, err
		}
		if key == "default" {
			m.Default = parsed
			continue
		}
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("heatmap: bad color map key %q", key)
		}
		m.Colors[n] = parsed
	}
	return m, nil
}
