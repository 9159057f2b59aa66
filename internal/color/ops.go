package color

import "github.com/lucasb-eyer/go-colorful"

// chromaStep is how much LCh chroma one unit of desaturation removes, in
// go-colorful's unit Lab scale (18 on the usual 0-100 scale).
const chromaStep = 0.18

// Desaturate lowers the LCh chroma of hex by amount*18. Amounts outside
// [0, 1] are accepted; chroma never drops below zero and the result is
// clamped into the sRGB gamut.
func Desaturate(hex string, amount float64) (string, error) {
	c, normalized, err := parse(hex)
	if err != nil {
		return "", err
	}
	if amount == 0 {
		return normalized, nil
	}
	h, chroma, l := c.Hcl()
	chroma -= chromaStep * amount
	if chroma < 0 {
		chroma = 0
	}
	return colorful.Hcl(h, chroma, l).Clamped().Hex(), nil
}

// MustDesaturate is Desaturate for built-in constants. It panics on error.
func MustDesaturate(hex string, amount float64) string {
	out, err := Desaturate(hex, amount)
	if err != nil {
		panic(err)
	}
	return out
}

// DesaturateAll applies Desaturate to every color in order.
func DesaturateAll(hexes []string, amount float64) ([]string, error) {
	out := make([]string, len(hexes))
	for i, hex := range hexes {
		d, err := Desaturate(hex, amount)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Luminance returns the relative luminance of hex in [0, 1].
func Luminance(hex string) (float64, error) {
	c, _, err := parse(hex)
	if err != nil {
		return 0, err
	}
	_, y, _ := c.Xyz()
	return y, nil
}
