//go:build rp2040 || rp2350

// pico-console drives the same Printer over a tinygo-uartx port: echo with
// formatted counters, plus a heartbeat while the line is idle.
package main

import (
	"context"
	"time"

	"uartkit/drivers/usart"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// ---------- Configuration ----------

const (
	baud          = 115200
	idleHeartbeat = 2 * time.Second
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(1500 * time.Millisecond)
	println("[console] boot …")

	hw := uartx.UART0
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       uartx.UART0_TX_PIN,
		RX:       uartx.UART0_RX_PIN,
	}); err != nil {
		println("[console] configure failed:", err.Error())
		return
	}
	out := usart.NewUARTPrinter(hw)

	out.PutROM(usart.Progmem("uartkit pico-console"))
	out.Newline()

	start := time.Now()
	buf := make([]byte, 64)
	var total uint32
	for {
		ctx, cancel := context.WithTimeout(context.Background(), idleHeartbeat)
		n, err := hw.RecvSomeContext(ctx, buf)
		cancel()

		if err != nil {
			out.PutString("idle t=")
			out.PutUfixed32(uint32(time.Since(start).Milliseconds()), 3)
			out.PutString("s rx=")
			out.PutUint32(total)
			out.Newline()
		}
		for _, c := range buf[:n] {
			total++
			out.PutString("#")
			out.PutUint32(total)
			out.PutString(" 0x")
			out.PutHex8(c)
			out.PutString(" ")
			out.PutInt8(int8(c))
			out.Newline()
		}
		if e := out.Err(); e != nil {
			println("[console] tx error:", e.Error())
			return
		}
	}
}
