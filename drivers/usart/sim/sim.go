// Package sim models the USART0 register file on the host so the driver can
// run without hardware.
package sim

import (
	"sync"

	"uartkit/drivers/usart"
)

// USART is a simulated register window. It implements usart.Registers.
//
// Received bytes land in a FIFO of Depth entries (RXC0 set while non-empty);
// a byte arriving to a full FIFO is lost and sets DOR0. Transmitted bytes go
// straight to the wire log, and UDRE0 can be held low with StallTx to
// exercise the busy-wait.
type USART struct {
	mu sync.Mutex

	regs  [0x100]uint8
	fifo  []byte
	depth int
	wire  []byte
	stall int
	txc   bool
	dor   bool

	loads  map[usart.Reg]int
	stores map[usart.Reg]int
}

// Ensure the simulator satisfies the driver contract at compile time.
var _ usart.Registers = (*USART)(nil)

// New returns a simulator with a receive FIFO of depth bytes (min 1).
func New(depth int) *USART {
	if depth < 1 {
		depth = 1
	}
	return &USART{
		depth:  depth,
		loads:  map[usart.Reg]int{},
		stores: map[usart.Reg]int{},
	}
}

func (u *USART) Load(r usart.Reg) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.loads[r]++
	switch r {
	case usart.UCSR0A:
		return u.statusLocked()
	case usart.UDR0:
		if len(u.fifo) == 0 {
			return 0
		}
		c := u.fifo[0]
		u.fifo = u.fifo[1:]
		if len(u.fifo) == 0 {
			u.dor = false
		}
		return c
	}
	return u.regs[uint8(r)]
}

func (u *USART) Store(r usart.Reg, v uint8) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stores[r]++
	switch r {
	case usart.UCSR0A:
		// Writing one clears TXC0; only U2X0 and MPCM0 are writable.
		if v&(1<<usart.TXC0) != 0 {
			u.txc = false
		}
		u.regs[uint8(r)] = v & (1<<usart.U2X0 | 1<<usart.MPCM0)
	case usart.UDR0:
		if u.regs[uint8(usart.UCSR0B)]&(1<<usart.TXEN0) != 0 {
			u.wire = append(u.wire, v)
			u.txc = true
		}
	default:
		u.regs[uint8(r)] = v
	}
}

func (u *USART) statusLocked() uint8 {
	s := u.regs[uint8(usart.UCSR0A)]
	if len(u.fifo) > 0 {
		s |= 1 << usart.RXC0
	}
	if u.stall > 0 {
		u.stall--
	} else {
		s |= 1 << usart.UDRE0
	}
	if u.txc {
		s |= 1 << usart.TXC0
	}
	if u.dor {
		s |= 1 << usart.DOR0
	}
	return s
}

// Inject delivers bytes from the line. Bytes beyond the FIFO depth are lost
// (overrun) unless the receiver is disabled, in which case all are dropped.
// It returns how many were accepted.
func (u *USART) Inject(p ...byte) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.regs[uint8(usart.UCSR0B)]&(1<<usart.RXEN0) == 0 {
		return 0
	}
	n := 0
	for _, c := range p {
		if len(u.fifo) >= u.depth {
			u.dor = true
			continue
		}
		u.fifo = append(u.fifo, c)
		n++
	}
	return n
}

// InjectString is Inject for text.
func (u *USART) InjectString(s string) int { return u.Inject([]byte(s)...) }

// StallTx keeps UDRE0 clear for the next n status reads.
func (u *USART) StallTx(n int) {
	u.mu.Lock()
	u.stall = n
	u.mu.Unlock()
}

// Wire returns a copy of everything transmitted so far.
func (u *USART) Wire() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]byte(nil), u.wire...)
}

// TakeWire returns the wire log and clears it.
func (u *USART) TakeWire() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	w := u.wire
	u.wire = nil
	return w
}

// Pending is the number of unread bytes in the receive FIFO.
func (u *USART) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.fifo)
}

// Reg returns the stored value of a control register without side effects.
func (u *USART) Reg(r usart.Reg) uint8 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if r == usart.UCSR0A {
		s := u.regs[uint8(r)]
		if len(u.fifo) > 0 {
			s |= 1 << usart.RXC0
		}
		if u.stall == 0 {
			s |= 1 << usart.UDRE0
		}
		if u.txc {
			s |= 1 << usart.TXC0
		}
		return s
	}
	return u.regs[uint8(r)]
}

// Divisor reassembles UBRR0 from its two halves.
func (u *USART) Divisor() uint16 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return uint16(u.regs[uint8(usart.UBRR0H)]&0x0F)<<8 | uint16(u.regs[uint8(usart.UBRR0L)])
}

// Loads and Stores count register accesses, for tests that care how the
// driver touches hardware.
func (u *USART) Loads(r usart.Reg) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loads[r]
}

func (u *USART) Stores(r usart.Reg) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.stores[r]
}
