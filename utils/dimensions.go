package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var tenThousand = decimal.NewFromInt(10000)

// ParseDimensions parses a "WxH" dimension string in centimetres (e.g.
// "120x240") and returns the area in square metres.
func ParseDimensions(s string) (decimal.Decimal, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return decimal.Zero, fmt.Errorf("dimensions must be in WxH format (e.g. 120x240), got %q", s)
	}

	width, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid width %q", parts[0])
	}
	height, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid height %q", parts[1])
	}
	if !width.IsPositive() || !height.IsPositive() {
		return decimal.Zero, fmt.Errorf("dimensions must be positive, got %q", s)
	}

	// cm^2 to m^2
	return width.Mul(height).Div(tenThousand), nil
}
