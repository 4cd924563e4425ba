package domain

import "strconv"

// FormatIDR renders a whole-rupiah amount the way the id-ID locale does,
// e.g. 1500000 -> "Rp 1.500.000". Rupiah amounts in this system carry no
// fractional unit, so the input is a plain integer.
func FormatIDR(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}

// RoundHalfUpHalf returns round-half-up(n/2) for a non-negative amount.
// Used when splitting a total into two default installments.
func RoundHalfUpHalf(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return (n + 1) / 2
}
