package conv

// Itoa writes base-10 representation of n into the tail of buf and returns
// the used slice. buf should be length >= 20 for int64. Negative numbers
// supported, including the minimum value.
// No allocations; no fmt/strconv dependency.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	u, neg := Magnitude(n)
	i := digitsBack(buf, len(buf), u)
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// Magnitude returns |n| as uint64 and whether n was negative.
// Negation happens in the unsigned domain so math.MinInt64 is safe.
func Magnitude(n int64) (uint64, bool) {
	if n < 0 {
		return ^uint64(n) + 1, true
	}
	return uint64(n), false
}
