package usart

import (
	"uartkit/errcode"
	"uartkit/types"
)

// Config is the validated path to bring up the port. Init(ubrr) remains the
// unchecked fast path.
type Config struct {
	ClockHz     uint32
	Baud        uint32
	DoubleSpeed bool
	Format      types.SerialSetFormat

	// RxDepth bounds Flush: bytes the receive buffer can hold. 0 drains until
	// RXC0 clears.
	RxDepth int

	RxInterrupt        bool
	TxInterrupt        bool
	DataEmptyInterrupt bool

	// MaxErrorPermille rejects divisors whose real rate drifts further than
	// this from Baud. 0 selects 20 (2%).
	MaxErrorPermille uint32
}

const defaultMaxErrorPermille = 20

// DefaultConfig is a 16 MHz part at 9600 8N1.
func DefaultConfig() Config {
	return Config{
		ClockHz: 16_000_000,
		Baud:    9600,
		Format:  types.Format8N1,
		RxDepth: DefaultRxDepth,
	}
}

// Divisor is the UBRR value this config programs.
func (c Config) Divisor() uint16 {
	if c.DoubleSpeed {
		return DivisorDoubleSpeed(c.ClockHz, c.Baud)
	}
	return Divisor(c.ClockHz, c.Baud)
}

// WithBaud returns c with the rate from a baud request.
func (c Config) WithBaud(req types.SerialSetBaud) Config {
	c.Baud = req.Baud
	return c
}

// Info reports the port under bus with the rate the hardware really runs at.
func (c Config) Info(bus string) types.SerialInfo {
	return types.SerialInfo{Bus: bus, Baud: ActualBaud(c.ClockHz, c.Divisor(), c.DoubleSpeed)}
}

// Validate checks the config against what the peripheral can do.
func (c Config) Validate() error {
	const op = "usart.Config"
	if c.ClockHz == 0 || c.Baud == 0 {
		return errcode.Wrap(errcode.InvalidParams, op, "clock and baud must be non-zero")
	}
	over := uint64(16)
	if c.DoubleSpeed {
		over = 8
	}
	q := uint64(c.ClockHz) / (over * uint64(c.Baud))
	if q == 0 || q-1 > MaxDivisor {
		return errcode.Wrap(errcode.BaudOutOfRange, op, "divisor does not fit UBRR0")
	}
	if _, err := frameBits(c.Format); err != nil {
		return err
	}
	if c.RxDepth < 0 {
		return errcode.Wrap(errcode.InvalidParams, op, "negative rx depth")
	}
	limit := c.MaxErrorPermille
	if limit == 0 {
		limit = defaultMaxErrorPermille
	}
	if e := BaudErrorPermille(c.ClockHz, c.Baud, c.Divisor(), c.DoubleSpeed); e > limit {
		return errcode.Wrap(errcode.InvalidBaud, op, "baud error above limit")
	}
	return nil
}

// frameBits encodes a frame format into UCSR0C (asynchronous mode) plus the
// UCSZ02 flag for 9-bit frames.
func frameBits(f types.SerialSetFormat) (ucsr0c uint8, err error) {
	const op = "usart.Format"
	data := f.DataBits
	if data == 0 {
		data = 8
	}
	stop := f.StopBits
	if stop == 0 {
		stop = 1
	}
	switch data {
	case 5:
	case 6:
		ucsr0c |= bit(UCSZ00)
	case 7:
		ucsr0c |= bit(UCSZ01)
	case 8:
		ucsr0c |= bit(UCSZ01) | bit(UCSZ00)
	default:
		// 9-bit frames need RXB8/TXB8 handling the byte API cannot carry.
		return 0, errcode.Wrap(errcode.Unsupported, op, "data bits must be 5..8")
	}
	switch stop {
	case 1:
	case 2:
		ucsr0c |= bit(USBS0)
	default:
		return 0, errcode.Wrap(errcode.InvalidParams, op, "stop bits must be 1 or 2")
	}
	switch f.Parity {
	case types.ParityNone:
	case types.ParityEven:
		ucsr0c |= bit(UPM01)
	case types.ParityOdd:
		ucsr0c |= bit(UPM01) | bit(UPM00)
	default:
		return 0, errcode.Wrap(errcode.InvalidParams, op, "unknown parity")
	}
	return ucsr0c, nil
}
