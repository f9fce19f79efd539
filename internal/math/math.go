package math

import (
	"math"
	"strconv"
	"strings"
)

// SnapTolerance is the distance below which a value is taken to be the nearest integer.
const SnapTolerance = 1e-10

// Format formats a coefficient with the shortest representation that parses back to the same float.
// NOTE : very small or very large magnitudes switch to exponent notation
func Format(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return exponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// exponent drops the zero padding of the exponent, 1e-07 becomes 1e-7.
func exponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

// Snap returns the nearest integer if the value is closer than SnapTolerance to it,
// otherwise the value itself.
func Snap(f float64) float64 {
	r := math.Round(f)
	if math.Abs(f-r) < SnapTolerance {
		if r == 0 {
			// drop the sign of -0
			return 0
		}
		return r
	}
	return f
}

// Pow raises x to a non-negative integer power by repeated multiplication.
// Pow(0, 0) is 1.
func Pow(x float64, e int) float64 {
	p := 1.
	for i := 0; i < e; i++ {
		p *= x
	}
	return p
}

// Binomial returns the combinatorial number n over k.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1
	for i := 1; i <= k; i++ {
		c = c * (n - k + i) / i
	}
	return c
}

// Finite reports if none of the values is NaN or infinite.
func Finite(ff ...float64) bool {
	for _, f := range ff {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
