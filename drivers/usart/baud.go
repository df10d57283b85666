package usart

import "uartkit/x/mathx"

// Divisor returns the UBRR value for baud at clockHz in normal (16x) mode:
// clockHz/(16*baud) - 1. Invalid inputs give 0 rather than failing.
func Divisor(clockHz, baud uint32) uint16 {
	return divisor(clockHz, baud, 16)
}

// DivisorDoubleSpeed is Divisor for U2X (8x) mode.
func DivisorDoubleSpeed(clockHz, baud uint32) uint16 {
	return divisor(clockHz, baud, 8)
}

func divisor(clockHz, baud, oversample uint32) uint16 {
	if baud == 0 {
		return 0
	}
	q := uint64(clockHz) / (uint64(oversample) * uint64(baud))
	if q == 0 {
		return 0
	}
	return uint16(q - 1)
}

// ActualBaud is the rate the hardware produces for ubrr.
func ActualBaud(clockHz uint32, ubrr uint16, double bool) uint32 {
	over := uint64(16)
	if double {
		over = 8
	}
	return uint32(mathx.RoundDiv(uint64(clockHz), over*(uint64(ubrr)+1)))
}

// BaudErrorPermille is |actual-baud|/baud in thousandths, rounded.
func BaudErrorPermille(clockHz, baud uint32, ubrr uint16, double bool) uint32 {
	if baud == 0 {
		return 0
	}
	actual := ActualBaud(clockHz, ubrr, double)
	diff := uint64(mathx.Max(actual, baud) - mathx.Min(actual, baud))
	return uint32(mathx.RoundDiv(diff*1000, uint64(baud)))
}
