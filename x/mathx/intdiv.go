package mathx

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
// Division by zero yields 0.
func RoundDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}
