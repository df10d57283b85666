package usart

import (
	"tinygo.org/x/drivers"
)

// Ensure the port satisfies the TinyGo UART contract at compile time.
var _ drivers.UART = (*Device)(nil)

// Device is one USART. Register state is authoritative; the struct only
// keeps the flush depth and the embedded Printer.
//
// Rx and Tx busy-wait without a timeout, like the hardware flags they poll.
// Use RecvByteContext/WaitWritableContext when a bound is needed.
type Device struct {
	regs    Registers
	rxDepth int

	Printer
}

// New wraps a register window. Call Init or Configure before use.
func New(regs Registers) *Device {
	d := &Device{regs: regs, rxDepth: DefaultRxDepth}
	d.Printer = Printer{w: d}
	return d
}

// Init programs the divisor, enables receiver and transmitter, and selects
// 8N1. ubrr normally comes from Divisor(clockHz, baud).
func (d *Device) Init(ubrr uint16) {
	d.regs.Store(UBRR0H, uint8(ubrr>>8))
	d.regs.Store(UBRR0L, uint8(ubrr))
	d.regs.Store(UCSR0B, bit(RXEN0)|bit(TXEN0))
	d.regs.Store(UCSR0C, bit(UCSZ01)|bit(UCSZ00))
}

// Configure validates cfg and programs divisor, speed mode, frame format,
// flush depth and interrupt enables.
func (d *Device) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	frame, _ := frameBits(cfg.Format)
	ubrr := cfg.Divisor()

	a := d.regs.Load(UCSR0A) &^ (bit(U2X0) | bit(TXC0))
	if cfg.DoubleSpeed {
		a |= bit(U2X0)
	}
	d.regs.Store(UCSR0A, a)
	d.regs.Store(UBRR0H, uint8(ubrr>>8))
	d.regs.Store(UBRR0L, uint8(ubrr))
	d.regs.Store(UCSR0C, frame)

	b := bit(RXEN0) | bit(TXEN0)
	if cfg.RxInterrupt {
		b |= bit(RXCIE0)
	}
	if cfg.TxInterrupt {
		b |= bit(TXCIE0)
	}
	if cfg.DataEmptyInterrupt {
		b |= bit(UDRIE0)
	}
	d.regs.Store(UCSR0B, b)

	d.rxDepth = cfg.RxDepth
	return nil
}

// SetRxDepth sets how many bytes Flush may discard; 0 drains until empty.
func (d *Device) SetRxDepth(n int) {
	if n < 0 {
		n = 0
	}
	d.rxDepth = n
}

// ---- Interrupt enables ----

// SetRxInterrupt enables or disables the RX complete ISR.
func (d *Device) SetRxInterrupt(enable bool) { d.setBit(UCSR0B, RXCIE0, enable) }

// SetTxInterrupt enables or disables the TX complete ISR (one byte sent).
func (d *Device) SetTxInterrupt(enable bool) { d.setBit(UCSR0B, TXCIE0, enable) }

// SetDataEmptyInterrupt enables or disables the data register empty ISR
// (all is sent).
func (d *Device) SetDataEmptyInterrupt(enable bool) { d.setBit(UCSR0B, UDRIE0, enable) }

func (d *Device) setBit(r Reg, n uint8, on bool) {
	v := d.regs.Load(r)
	if on {
		v |= bit(n)
	} else {
		v &^= bit(n)
	}
	d.regs.Store(r, v)
}

// ---- Polled transfer ----

// RxReady reports unread data in the receive buffer.
func (d *Device) RxReady() bool { return d.regs.Load(UCSR0A)&bit(RXC0) != 0 }

// TxReady reports the transmit buffer can take a byte.
func (d *Device) TxReady() bool { return d.regs.Load(UCSR0A)&bit(UDRE0) != 0 }

// Rx waits for a received byte and returns it.
func (d *Device) Rx() byte {
	for !d.RxReady() {
	}
	return d.regs.Load(UDR0)
}

// Tx waits for the transmit buffer and writes b.
func (d *Device) Tx(b byte) {
	for !d.TxReady() {
	}
	d.regs.Store(UDR0, b)
}

// Flush discards whatever the receive buffer holds, at most rxDepth bytes.
func (d *Device) Flush() {
	for n := 0; d.RxReady(); n++ {
		if d.rxDepth > 0 && n >= d.rxDepth {
			return
		}
		_ = d.regs.Load(UDR0)
	}
}

// ---- io / drivers.UART ----

// WriteByte is Tx with the io.ByteWriter signature; it never fails.
func (d *Device) WriteByte(c byte) error {
	d.Tx(c)
	return nil
}

// Write transmits p byte by byte.
func (d *Device) Write(p []byte) (int, error) {
	for _, c := range p {
		d.Tx(c)
	}
	return len(p), nil
}

// Read copies bytes that have already arrived; it does not wait.
func (d *Device) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && d.RxReady() {
		p[n] = d.regs.Load(UDR0)
		n++
	}
	return n, nil
}

// Buffered is 1 while RXC0 is set. The FIFO fill level is not visible.
func (d *Device) Buffered() int {
	if d.RxReady() {
		return 1
	}
	return 0
}
