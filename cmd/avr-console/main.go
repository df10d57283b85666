//go:build avr

// avr-console brings up USART0 and echoes every received byte back as a
// numbered, formatted line. The builtin println shares this port on AVR, so
// all output goes through the driver.
package main

import (
	"time"

	"uartkit/drivers/usart"
	"uartkit/types"
)

// ---------- Configuration ----------

// Arduino Uno class board: 16 MHz crystal, 9600 8N1.
var board = usart.Config{
	ClockHz: 16_000_000,
	Baud:    9600,
	Format:  types.Format8N1,
	RxDepth: usart.DefaultRxDepth,
}

const banner = usart.Progmem("uartkit avr-console")

func main() {
	port := usart.USART0
	if err := port.Configure(board); err != nil {
		// Unchecked path: a drifting divisor still beats a silent port.
		port.Init(usart.Divisor(board.ClockHz, board.Baud))
		port.PutString("config: ")
		port.PutString(err.Error())
		port.Newline()
	}
	port.Flush()

	port.PutROM(banner)
	port.PutString(" @ ")
	port.PutUint32(usart.ActualBaud(board.ClockHz, board.Divisor(), board.DoubleSpeed))
	port.PutString(" baud")
	port.Newline()

	start := time.Now()
	var count uint32
	for {
		c := port.Rx()
		count++

		port.PutString("#")
		port.PutUint32(count)
		port.PutString(" t=")
		port.PutUfixed32(uint32(time.Since(start).Milliseconds()), 3)
		port.PutString("s 0x")
		port.PutHex8(c)
		port.PutString(" dec=")
		port.PutUint8(c)
		port.PutString(" signed=")
		port.PutInt8(int8(c))
		port.Newline()
	}
}
