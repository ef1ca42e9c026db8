package config

import "github.com/thenoetrevino/todometer/internal/config/colors"

// ColorScheme is the CLI color configuration
type ColorScheme = colors.ColorScheme

// DefaultColorScheme returns the default color scheme (purple accent)
func DefaultColorScheme() ColorScheme {
	return *colors.Default()
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return *colors.Monochrome()
}
