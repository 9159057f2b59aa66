// Package color implements the primitive color transforms used to build
// palettes: hex parsing, perceptual desaturation and LCh scales.
package color

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	appErrors "dainty/internal/errors"
)

var hexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHex reports whether value is a "#rgb" or "#rrggbb" color.
func IsHex(value string) bool {
	return hexPattern.MatchString(value)
}

// Normalize returns the lowercase six digit form of a hex color.
func Normalize(hex string) (string, error) {
	if !IsHex(hex) {
		return "", malformedHexError(hex)
	}
	hex = strings.ToLower(hex)
	if len(hex) == 4 {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return hex, nil
}

func parse(hex string) (colorful.Color, string, error) {
	normalized, err := Normalize(hex)
	if err != nil {
		return colorful.Color{}, "", err
	}
	c, err := colorful.Hex(normalized)
	if err != nil {
		return colorful.Color{}, "", appErrors.New(appErrors.CodeMalformedValue, fmt.Sprintf("invalid hex color %q", hex), err)
	}
	return c, normalized, nil
}

func malformedHexError(hex string) error {
	return appErrors.New(appErrors.CodeMalformedValue, fmt.Sprintf("invalid hex color %q: expected #rgb or #rrggbb", hex), nil)
}

func preconditionError(msg string) error {
	return appErrors.New(appErrors.CodePreconditionViolation, msg, nil)
}
