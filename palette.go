package okfield

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Palette is an ordered sequence of Oklab colors. It is owned by the caller
// and passed by reference into each render; the core never mutates it.
// Order is part of the observable contract: Nearest resolves exact distance
// ties in favor of the earlier entry.
type Palette []Oklab

// ErrEmptyPalette is returned by Nearest when the palette has no entries.
var ErrEmptyPalette = errors.New("okfield: palette is empty")

// Nearest returns the palette entry closest to target by squared Euclidean
// distance in Oklab space. The scan is linear: palettes are desktop-sized
// (typically well under a few hundred entries), so O(n) per lookup is the
// accepted cost and no spatial index is used. The first entry achieving the
// minimum score wins.
func (p Palette) Nearest(target Oklab) (Oklab, error) {
	if len(p) == 0 {
		return Oklab{}, ErrEmptyPalette
	}

	best := p[0]
	bestScore := distSq(target, p[0])
	for _, candidate := range p[1:] {
		if score := distSq(target, candidate); score < bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best, nil
}

// distSq is the squared Euclidean distance between two Oklab colors.
// It mirrors dot(delta, delta) in the shader's nearest_palette.
func distSq(a, b Oklab) float32 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}

// ParseHex parses a display-encoded sRGB hex color ("RGB", "RRGGBB", with or
// without a leading '#') and converts it to Oklab. Alpha digits are not
// accepted: palette entries carry no alpha.
func ParseHex(hex string) (Oklab, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	switch len(s) {
	case 3: // RGB
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return Oklab{}, fmt.Errorf("okfield: invalid hex color %q", hex)
		}
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return Oklab{}, fmt.Errorf("okfield: invalid hex color %q", hex)
		}
	default:
		return Oklab{}, fmt.Errorf("okfield: invalid hex color %q", hex)
	}

	linear := RGBA{
		R: SRGBDecode(float32(r) / 255),
		G: SRGBDecode(float32(g) / 255),
		B: SRGBDecode(float32(b) / 255),
		A: 1,
	}
	return OklabFromLinearSRGB(linear), nil
}

// parseHex is a helper for hex parsing. It reports whether s consists
// entirely of hex digits.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// ReadPalette reads a palette from r: one hex color per line, blank lines
// and lines starting with "//" ignored. Palette acquisition proper (desktop
// state, screenshots) is an external concern; this loader exists for the
// CLI tools.
func ReadPalette(r io.Reader) (Palette, error) {
	var p Palette
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		c, err := ParseHex(text)
		if err != nil {
			return nil, fmt.Errorf("okfield: palette line %d: %w", line, err)
		}
		p = append(p, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("okfield: reading palette: %w", err)
	}
	return p, nil
}
