package sim

import (
	"testing"

	"uartkit/drivers/usart"
)

func enable(u *USART) {
	u.Store(usart.UCSR0B, 1<<usart.RXEN0|1<<usart.TXEN0)
}

func TestInjectRespectsDepthAndOverrun(t *testing.T) {
	u := New(2)
	enable(u)
	if n := u.Inject('a', 'b', 'c'); n != 2 {
		t.Fatalf("Inject accepted %d, want 2", n)
	}
	s := u.Load(usart.UCSR0A)
	if s&(1<<usart.RXC0) == 0 || s&(1<<usart.DOR0) == 0 {
		t.Fatalf("status %08b: want RXC0 and DOR0", s)
	}
	if c := u.Load(usart.UDR0); c != 'a' {
		t.Fatalf("first byte %q", c)
	}
	if c := u.Load(usart.UDR0); c != 'b' {
		t.Fatalf("second byte %q", c)
	}
	if s := u.Load(usart.UCSR0A); s&(1<<usart.RXC0|1<<usart.DOR0) != 0 {
		t.Fatalf("status %08b after drain", s)
	}
}

func TestReceiverDisabledDropsInput(t *testing.T) {
	u := New(2)
	if n := u.InjectString("x"); n != 0 || u.Pending() != 0 {
		t.Fatalf("disabled receiver accepted input")
	}
}

func TestTransmitLogsAndTXC(t *testing.T) {
	u := New(1)
	u.Store(usart.UDR0, 'z') // transmitter off
	if len(u.Wire()) != 0 {
		t.Fatalf("disabled transmitter sent data")
	}
	enable(u)
	u.Store(usart.UDR0, 'o')
	u.Store(usart.UDR0, 'k')
	if got := string(u.TakeWire()); got != "ok" {
		t.Fatalf("wire = %q", got)
	}
	if len(u.Wire()) != 0 {
		t.Fatalf("TakeWire did not clear")
	}
	if u.Load(usart.UCSR0A)&(1<<usart.TXC0) == 0 {
		t.Fatalf("TXC0 not set after transmit")
	}
	u.Store(usart.UCSR0A, 1<<usart.TXC0|1<<usart.U2X0)
	s := u.Load(usart.UCSR0A)
	if s&(1<<usart.TXC0) != 0 || s&(1<<usart.U2X0) == 0 {
		t.Fatalf("status %08b: want TXC0 cleared and U2X0 kept", s)
	}
}

func TestStallTxHoldsUDRE(t *testing.T) {
	u := New(1)
	u.StallTx(2)
	for i := 0; i < 2; i++ {
		if u.Load(usart.UCSR0A)&(1<<usart.UDRE0) != 0 {
			t.Fatalf("read %d: UDRE0 set during stall", i)
		}
	}
	if u.Load(usart.UCSR0A)&(1<<usart.UDRE0) == 0 {
		t.Fatalf("UDRE0 still clear after stall")
	}
	if u.Loads(usart.UCSR0A) != 3 {
		t.Fatalf("Loads = %d", u.Loads(usart.UCSR0A))
	}
}

func TestDivisorAssembly(t *testing.T) {
	u := New(1)
	u.Store(usart.UBRR0H, 0x0A)
	u.Store(usart.UBRR0L, 0xBC)
	if d := u.Divisor(); d != 0x0ABC {
		t.Fatalf("Divisor = %#x", d)
	}
	if u.Stores(usart.UBRR0L) != 1 {
		t.Fatalf("Stores(UBRR0L) = %d", u.Stores(usart.UBRR0L))
	}
}
