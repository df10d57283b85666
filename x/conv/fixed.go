package conv

import "uartkit/x/mathx"

// MaxPlaces is the largest fractional digit count Fixed/Ufixed honour;
// 10^19 is the largest power of ten in a uint64.
const MaxPlaces = 19

// FixedBufLen is enough for any Fixed/Ufixed result.
const FixedBufLen = 1 + 20 + 1 + MaxPlaces

var pow10 = [MaxPlaces + 1]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// Pow10 returns 10^p for p in [0, MaxPlaces]; p is clamped.
func Pow10(p int) uint64 { return pow10[mathx.Clamp(p, 0, MaxPlaces)] }

// Ufixed writes n as a decimal with the lowest places digits as the fraction:
// Ufixed(buf, 1234, 2) is "12.34", Ufixed(buf, 5, 3) is "0.005".
// Truncating, never rounding. places 0 is plain Utoa; places is clamped to
// MaxPlaces. buf should be FixedBufLen long.
func Ufixed(buf []byte, n uint64, places int) []byte {
	return buf[fixedBack(buf, n, places):]
}

// Fixed is Ufixed for signed values. The sign is emitted once, before the
// integer part, from the sign of the whole value: Fixed(buf, -5, 2) is "-0.05".
func Fixed(buf []byte, n int64, places int) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	u, neg := Magnitude(n)
	i := fixedBack(buf, u, places)
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

func fixedBack(buf []byte, u uint64, places int) int {
	places = mathx.Clamp(places, 0, MaxPlaces)
	i := len(buf)
	if places == 0 {
		return digitsBack(buf, i, u)
	}
	whole := u / pow10[places]
	frac := u % pow10[places]
	for p := 0; p < places && i > 0; p++ {
		i--
		buf[i] = byte('0' + frac%10)
		frac /= 10
	}
	if i > 0 {
		i--
		buf[i] = '.'
	}
	return digitsBack(buf, i, whole)
}
