package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches a single parameter value: numbers, pi expressions, or
// combinations. Examples: "1.5707", "pi", "pi/2", "3*pi/4", "-pi", "3.14e-2"
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

// piExprRegex matches expressions like: pi, 2pi, 2*pi, pi/2, 3pi/4, -pi/64
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// parseParamExpr parses a parameter expression, supporting plain numbers and
// pi expressions. Returns the value and true on success.
func parseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	s = strings.ToLower(s)
	matches := piExprRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, false
	}

	coeff := 1.0
	if matches[2] != "" {
		var err error
		coeff, err = strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return 0, false
		}
	}
	result := coeff * math.Pi
	if matches[3] != "" {
		denom, err := strconv.ParseFloat(matches[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}
	if matches[1] == "-" {
		result = -result
	}
	return result, true
}

// formatParam formats a parameter value, using pi notation when possible.
// Dyadic fractions pi/2^m get exact notation since the rotation cascades are
// built entirely from them; a few other common fractions are recognized too.
func formatParam(val float64) string {
	mag := math.Abs(val)
	sign := ""
	if val < 0 {
		sign = "-"
	}

	if mag > 1e-10 {
		// 2*pi, pi, pi/2, pi/4, ... pi/2^24
		ratio := math.Pi / mag
		exp := math.Round(math.Log2(ratio))
		if exp >= -1 && exp <= 24 && math.Abs(mag-math.Pi/math.Exp2(exp)) < 1e-10 {
			switch {
			case exp == -1:
				return sign + "2*pi"
			case exp == 0:
				return sign + "pi"
			default:
				return fmt.Sprintf("%spi/%d", sign, int(math.Exp2(exp)))
			}
		}
	}

	others := []struct {
		value   float64
		display string
	}{
		{math.Pi / 3, "pi/3"},
		{math.Pi / 6, "pi/6"},
		{3 * math.Pi / 4, "3*pi/4"},
		{3 * math.Pi / 2, "3*pi/2"},
		{2 * math.Pi / 3, "2*pi/3"},
	}
	for _, pf := range others {
		if math.Abs(mag-pf.value) < 1e-10 {
			return sign + pf.display
		}
	}

	return fmt.Sprintf("%g", val)
}
