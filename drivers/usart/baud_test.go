package usart

import "testing"

func TestDivisor(t *testing.T) {
	cases := []struct {
		clock, baud uint32
		want        uint16
	}{
		{16_000_000, 9600, 103},
		{16_000_000, 38400, 25},
		{16_000_000, 115200, 7},
		{8_000_000, 9600, 51},
		{16_000_000, 0, 0},         // no divide by zero
		{16_000_000, 2_000_000, 0}, // below one count
	}
	for _, c := range cases {
		if got := Divisor(c.clock, c.baud); got != c.want {
			t.Fatalf("Divisor(%d,%d) = %d, want %d", c.clock, c.baud, got, c.want)
		}
	}
	if got := DivisorDoubleSpeed(16_000_000, 115200); got != 16 {
		t.Fatalf("DivisorDoubleSpeed = %d, want 16", got)
	}
}

func TestActualBaudAndError(t *testing.T) {
	if got := ActualBaud(16_000_000, 103, false); got != 9615 {
		t.Fatalf("ActualBaud = %d, want 9615", got)
	}
	if got := BaudErrorPermille(16_000_000, 9600, 103, false); got != 2 {
		t.Fatalf("error = %d permille, want 2", got)
	}
	if got := BaudErrorPermille(16_000_000, 115200, 7, false); got != 85 {
		t.Fatalf("error = %d permille, want 85", got)
	}
	if got := BaudErrorPermille(16_000_000, 0, 7, false); got != 0 {
		t.Fatalf("zero baud error = %d", got)
	}
}
