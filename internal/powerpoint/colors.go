package powerpoint

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor converts a "#RRGGBB" web color into the BGR integer
// the automation model uses for RGB properties.
func ParseHexColor(s string) (int, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q; expected #RRGGBB", s)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q; expected #RRGGBB", s)
	}
	r := int(value >> 16 & 0xFF)
	g := int(value >> 8 & 0xFF)
	b := int(value & 0xFF)
	return b<<16 | g<<8 | r, nil
}

// FormatHexColor renders a BGR integer back as "#RRGGBB".
func FormatHexColor(bgr int) string {
	b := bgr >> 16 & 0xFF
	g := bgr >> 8 & 0xFF
	r := bgr & 0xFF
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
