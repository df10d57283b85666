package conv

// Utoa writes base-10 representation of n into the tail of buf and returns
// the used slice. buf should be length >= 20 for uint64; a shorter buf keeps
// the least significant digits.
func Utoa(buf []byte, n uint64) []byte {
	return buf[digitsBack(buf, len(buf), n):]
}

// digitsBack writes n backwards ending just before buf[i] and returns the new
// start index. Zero writes a single '0'.
func digitsBack(buf []byte, i int, n uint64) int {
	if i <= 0 {
		return 0
	}
	if n == 0 {
		i--
		buf[i] = '0'
		return i
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return i
}

// DigitCount is the number of decimal digits in n (1 for zero).
func DigitCount(n uint64) int {
	c := 1
	for n >= 10 {
		n /= 10
		c++
	}
	return c
}
