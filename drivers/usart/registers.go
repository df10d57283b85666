// Package usart drives the USART0 peripheral of ATmega48/88/168/328-class
// parts: baud setup, interrupt enables, polled byte transfer and decimal
// output.
package usart

// Reg is a data-space address of an 8-bit I/O register.
type Reg uint16

const (
	// --- Register addresses (extended I/O, data space) ---
	UCSR0A Reg = 0xC0 // status: RXC0, TXC0, UDRE0, FE0, DOR0, UPE0, U2X0, MPCM0
	UCSR0B Reg = 0xC1 // control: interrupt enables, RXEN0, TXEN0, UCSZ02
	UCSR0C Reg = 0xC2 // frame: mode, parity, stop bits, UCSZ01:0
	UBRR0L Reg = 0xC4 // baud divisor low byte
	UBRR0H Reg = 0xC5 // baud divisor high nibble
	UDR0   Reg = 0xC6 // data: read = RX buffer, write = TX buffer

	// --- UCSR0A bits ---
	RXC0  = 7 // receive complete (unread data in RX buffer)
	TXC0  = 6 // transmit complete; cleared by writing 1
	UDRE0 = 5 // data register empty
	FE0   = 4 // frame error
	DOR0  = 3 // data overrun
	UPE0  = 2 // parity error
	U2X0  = 1 // double speed
	MPCM0 = 0

	// --- UCSR0B bits ---
	RXCIE0 = 7 // RX complete interrupt enable
	TXCIE0 = 6 // TX complete interrupt enable
	UDRIE0 = 5 // data register empty interrupt enable
	RXEN0  = 4
	TXEN0  = 3
	UCSZ02 = 2
	RXB80  = 1
	TXB80  = 0

	// --- UCSR0C bits ---
	UMSEL01 = 7
	UMSEL00 = 6
	UPM01   = 5
	UPM00   = 4
	USBS0   = 3
	UCSZ01  = 2
	UCSZ00  = 1
	UCPOL0  = 0

	// UBRR0 is 12 bits wide.
	MaxDivisor = 0x0FFF

	// Two-level receive buffer on the 328P.
	DefaultRxDepth = 2
)

// Registers is the register surface the driver touches. On hardware it is a
// volatile memory-mapped window (see MMIO); on host builds a simulator.
type Registers interface {
	Load(r Reg) uint8
	Store(r Reg, v uint8)
}

func bit(n uint8) uint8 { return 1 << n }
