package usart

import (
	"io"

	"tinygo.org/x/drivers"

	"uartkit/x/conv"
)

// ROM is a read-only byte sequence that must be read through an accessor
// rather than indexed, such as a string placed in program memory.
type ROM interface {
	// ByteAt returns the byte at i, or false past the end.
	ByteAt(i int) (byte, bool)
}

// Progmem is a ROM backed by a Go string constant. Where constant data is
// readable as ordinary memory this is plain indexing; a ROM that needs a
// program-memory load primitive implements ByteAt with it instead.
type Progmem string

func (s Progmem) ByteAt(i int) (byte, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// Printer formats strings and numbers onto a byte transmitter. The zero
// Printer discards output.
//
// The first write error is kept and later output is dropped; see Err.
type Printer struct {
	w   io.ByteWriter
	err error
}

// NewPrinter wraps any byte writer (a Device, a uartx port, a bytes.Buffer).
func NewPrinter(w io.ByteWriter) *Printer { return &Printer{w: w} }

// NewUARTPrinter wraps a TinyGo UART (machine.UART, a uartx port, a Device),
// sending each byte as a one-byte Write.
func NewUARTPrinter(u drivers.UART) *Printer { return &Printer{w: &uartWriter{u: u}} }

type uartWriter struct {
	u   drivers.UART
	one [1]byte
}

func (w *uartWriter) WriteByte(c byte) error {
	w.one[0] = c
	n, err := w.u.Write(w.one[:])
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	return err
}

// Err returns the first write error, if any.
func (p *Printer) Err() error { return p.err }

func (p *Printer) put(c byte) {
	if p.err != nil || p.w == nil {
		return
	}
	p.err = p.w.WriteByte(c)
}

// PutBytes transmits b verbatim.
func (p *Printer) PutBytes(b []byte) {
	for _, c := range b {
		p.put(c)
	}
}

// PutString transmits s up to its end or the first NUL.
func (p *Printer) PutString(s string) {
	for i := 0; i < len(s) && s[i] != 0; i++ {
		p.put(s[i])
	}
}

// PutROM is PutString for program-memory sources.
func (p *Printer) PutROM(src ROM) {
	for i := 0; ; i++ {
		c, ok := src.ByteAt(i)
		if !ok || c == 0 {
			return
		}
		p.put(c)
	}
}

// Newline transmits CRLF.
func (p *Printer) Newline() {
	p.put('\r')
	p.put('\n')
}

// ---- Integers ----

func (p *Printer) PutInt8(n int8) {
	var buf [4]byte
	p.PutBytes(conv.Itoa(buf[:], int64(n)))
}

func (p *Printer) PutUint8(n uint8) {
	var buf [3]byte
	p.PutBytes(conv.Utoa(buf[:], uint64(n)))
}

func (p *Printer) PutInt16(n int16) {
	var buf [6]byte
	p.PutBytes(conv.Itoa(buf[:], int64(n)))
}

func (p *Printer) PutUint16(n uint16) {
	var buf [5]byte
	p.PutBytes(conv.Utoa(buf[:], uint64(n)))
}

func (p *Printer) PutInt32(n int32) {
	var buf [11]byte
	p.PutBytes(conv.Itoa(buf[:], int64(n)))
}

func (p *Printer) PutUint32(n uint32) {
	var buf [10]byte
	p.PutBytes(conv.Utoa(buf[:], uint64(n)))
}

// ---- Fixed point ----
//
// The low places digits of n are the fraction: PutFixed16(-1234, 2) sends
// "-12.34". Truncates; places 0 sends a plain integer.

func (p *Printer) PutFixed16(n int16, places uint8) {
	var buf [conv.FixedBufLen]byte
	p.PutBytes(conv.Fixed(buf[:], int64(n), int(places)))
}

func (p *Printer) PutUfixed16(n uint16, places uint8) {
	var buf [conv.FixedBufLen]byte
	p.PutBytes(conv.Ufixed(buf[:], uint64(n), int(places)))
}

func (p *Printer) PutFixed32(n int32, places uint8) {
	var buf [conv.FixedBufLen]byte
	p.PutBytes(conv.Fixed(buf[:], int64(n), int(places)))
}

func (p *Printer) PutUfixed32(n uint32, places uint8) {
	var buf [conv.FixedBufLen]byte
	p.PutBytes(conv.Ufixed(buf[:], uint64(n), int(places)))
}

// ---- Hex ----

func (p *Printer) PutHex8(n uint8) {
	var buf [2]byte
	p.PutBytes(conv.U8Hex(buf[:], n))
}

func (p *Printer) PutHex32(n uint32) {
	var buf [8]byte
	p.PutBytes(conv.U32Hex(buf[:], n))
}
