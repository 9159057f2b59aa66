package replace

import (
	"fmt"
	"strings"

	appErrors "dainty/internal/errors"
)

// Variant selects the dark or light half of every replacement rule.
type Variant string

const (
	Dark  Variant = "dark"
	Light Variant = "light"
)

// ParseVariant accepts "dark" or "light", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Dark, Light:
		return v, nil
	}
	return "", appErrors.At(appErrors.CodeMalformedValue, "variant",
		fmt.Sprintf("unknown variant %q (expected dark or light)", s), nil)
}

// Index is the position of the variant inside a [dark, light] pair.
func (v Variant) Index() int {
	if v == Light {
		return 1
	}
	return 0
}

// IsDark reports whether v is the dark variant.
func (v Variant) IsDark() bool { return v != Light }

func (v Variant) String() string { return string(v) }
