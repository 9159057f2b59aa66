package replace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"dainty/internal/color"
	appErrors "dainty/internal/errors"
	"dainty/internal/palette"
)

// Kind tags the variants of Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindLiteral
	KindReference
)

// Value is a replacement slot: null (leave unchanged), a literal hex color,
// or a reference into the palette. The zero value is null.
type Value struct {
	kind Kind
	hex  string
	ref  palette.Ref
}

// Null returns the empty slot.
func Null() Value { return Value{} }

// Literal wraps a hex color. Callers pass normalized values.
func Literal(hex string) Value { return Value{kind: KindLiteral, hex: strings.ToLower(hex)} }

// Reference wraps a palette reference.
func Reference(ref palette.Ref) Value { return Value{kind: KindReference, ref: ref} }

// Step references step i of a scale.
func Step(scale string, i int) Value { return Reference(palette.ScaleRef(scale, i)) }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Ref returns the palette reference held by v.
func (v Value) Ref() (palette.Ref, bool) {
	return v.ref, v.kind == KindReference
}

func (v Value) String() string {
	switch v.kind {
	case KindLiteral:
		return v.hex
	case KindReference:
		return v.ref.Constant()
	}
	return "null"
}

// Resolve returns the literal hex for v, or "" when v is null.
func (v Value) Resolve(p *palette.Palette) (string, error) {
	switch v.kind {
	case KindLiteral:
		return v.hex, nil
	case KindReference:
		hex, ok := p.Lookup(v.ref)
		if !ok {
			return "", appErrors.New(appErrors.CodeUnresolvableReference,
				fmt.Sprintf("palette has no entry %s", v.ref), nil)
		}
		return hex, nil
	}
	return "", nil
}

var refPathPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)(?:\[(\d+)\])?$`)

// ParseValue converts a raw configuration leaf. Accepted forms are null, a
// hex color, a constant name such as BLUES_5 or GREEN_LIGHTER, or the path
// form blues[5] / greenLighter.
func ParseValue(raw any, constants palette.ConstantIndex) (Value, error) {
	if raw == nil {
		return Null(), nil
	}
	s, ok := raw.(string)
	if !ok {
		return Value{}, appErrors.New(appErrors.CodeMalformedValue,
			fmt.Sprintf("expected a color hex value, a color constant or null, got %v", raw), nil)
	}
	// Anything starting with '#' is a literal; constants never do.
	if strings.HasPrefix(s, "#") {
		hex, err := color.Normalize(s)
		if err != nil {
			return Value{}, err
		}
		return Literal(hex), nil
	}
	if ref, ok := constants[s]; ok {
		return Reference(ref), nil
	}
	if m := refPathPattern.FindStringSubmatch(s); m != nil {
		ref := palette.ColorRef(m[1])
		if m[2] != "" {
			i, err := strconv.Atoi(m[2])
			if err == nil {
				ref = palette.ScaleRef(m[1], i)
			}
		}
		if resolved, ok := constants[ref.Constant()]; ok && resolved == ref {
			return Reference(ref), nil
		}
	}
	return Value{}, unresolvableError(s, constants)
}

func unresolvableError(name string, constants palette.ConstantIndex) error {
	msg := fmt.Sprintf("unknown color constant %q", name)
	if suggestion := suggest(name, constants); suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return appErrors.New(appErrors.CodeUnresolvableReference, msg, nil)
}

func suggest(name string, constants palette.ConstantIndex) string {
	query := strings.ToUpper(strings.NewReplacer("[", "_", "]", "").Replace(strings.TrimSpace(name)))
	if query == "" {
		return ""
	}
	matches := fuzzy.Find(query, constants.Names())
	if len(matches) == 0 {
		return ""
	}
	best := matches[0]
	for _, m := range matches[1:] {
		// Prefer higher scores, then shorter names for stable output.
		if m.Score > best.Score || (m.Score == best.Score && (len(m.Str) < len(best.Str) || (len(m.Str) == len(best.Str) && m.Str < best.Str))) {
			best = m
		}
	}
	return best.Str
}
