package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGBA is a parsed colour with 8-bit channels.
type RGBA struct {
	R, G, B, A uint8
}

// ParseColor parses a CSS colour literal.
//
// Supported forms are #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and
// rgba(r, g, b, a) where a is in [0, 1]. Named colours are not supported.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], true, s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], false, s)
	}
	return RGBA{}, fmt.Errorf("unsupported colour %q", s)
}

func parseHex(s string) (RGBA, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func parseFunc(args string, withAlpha bool, raw string) (RGBA, error) {
	parts := strings.Split(args, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return RGBA{}, fmt.Errorf("invalid colour %q: expected %d components", raw, want)
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return RGBA{}, fmt.Errorf("invalid colour %q: channel %d out of range", raw, i)
		}
		channels[i] = uint8(n)
	}

	alpha := uint8(255)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || math.IsNaN(a) || a < 0 || a > 1 {
			return RGBA{}, fmt.Errorf("invalid colour %q: alpha must be between 0 and 1", raw)
		}
		alpha = uint8(a*255 + 0.5)
	}

	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}
