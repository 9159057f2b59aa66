package color

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ScaleSize is the number of steps in every generated scale.
const ScaleSize = 40

// Scale interpolates n colors through seeds in LCh space. Seeds sit at evenly
// spaced positions; the first maps to index 0 and the last to n-1, and every
// seed position yields the normalized seed unchanged.
func Scale(seeds []string, n int) ([]string, error) {
	if len(seeds) < 2 {
		return nil, preconditionError(fmt.Sprintf("scale needs at least 2 seed colors, got %d", len(seeds)))
	}
	if n < 2 {
		return nil, preconditionError(fmt.Sprintf("scale needs at least 2 steps, got %d", n))
	}

	stops := make([]colorful.Color, len(seeds))
	normalized := make([]string, len(seeds))
	for i, seed := range seeds {
		c, hex, err := parse(seed)
		if err != nil {
			return nil, err
		}
		stops[i] = c
		normalized[i] = hex
	}

	segments := len(stops) - 1
	out := make([]string, n)
	for i := range n {
		// Integer arithmetic keeps seed positions exact.
		num := i * segments
		den := n - 1
		seg := num / den
		rem := num % den
		if seg >= segments {
			seg, rem = segments-1, den
		}
		switch rem {
		case 0:
			out[i] = normalized[seg]
		case den:
			out[i] = normalized[seg+1]
		default:
			t := float64(rem) / float64(den)
			out[i] = stops[seg].BlendHcl(stops[seg+1], t).Clamped().Hex()
		}
	}
	return out, nil
}

// Brighten replaces the base seed with the color at step of a full scale
// generated from seeds. Later seeds are returned untouched.
func Brighten(seeds []string, step int) ([]string, error) {
	if step < 0 || step >= ScaleSize {
		return nil, preconditionError(fmt.Sprintf("brighten step %d out of range [0, %d)", step, ScaleSize))
	}
	scale, err := Scale(seeds, ScaleSize)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(seeds))
	copy(out, seeds)
	out[0] = scale[step]
	return out, nil
}
