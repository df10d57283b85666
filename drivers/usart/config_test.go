package usart_test

import (
	"errors"
	"testing"

	"uartkit/drivers/usart"
	"uartkit/drivers/usart/sim"
	"uartkit/errcode"
	"uartkit/types"
)

func TestConfigValidate(t *testing.T) {
	base := usart.DefaultConfig()
	cases := []struct {
		name string
		mod  func(*usart.Config)
		want errcode.Code
	}{
		{"default", func(*usart.Config) {}, errcode.OK},
		{"38400", func(c *usart.Config) { c.Baud = 38400 }, errcode.OK},
		{"zero baud", func(c *usart.Config) { c.Baud = 0 }, errcode.InvalidParams},
		{"zero clock", func(c *usart.Config) { c.ClockHz = 0 }, errcode.InvalidParams},
		{"too slow", func(c *usart.Config) { c.Baud = 100 }, errcode.BaudOutOfRange},
		{"too fast", func(c *usart.Config) { c.Baud = 2_000_000 }, errcode.BaudOutOfRange},
		{"115200 normal drifts", func(c *usart.Config) { c.Baud = 115200 }, errcode.InvalidBaud},
		{"115200 double with slack", func(c *usart.Config) {
			c.Baud = 115200
			c.DoubleSpeed = true
			c.MaxErrorPermille = 25
		}, errcode.OK},
		{"9 data bits", func(c *usart.Config) { c.Format.DataBits = 9 }, errcode.Unsupported},
		{"3 stop bits", func(c *usart.Config) { c.Format.StopBits = 3 }, errcode.InvalidParams},
		{"bad parity", func(c *usart.Config) { c.Format.Parity = types.Parity(9) }, errcode.InvalidParams},
		{"negative depth", func(c *usart.Config) { c.RxDepth = -1 }, errcode.InvalidParams},
	}
	for _, tc := range cases {
		c := base
		tc.mod(&c)
		if got := errcode.Of(c.Validate()); got != tc.want {
			t.Fatalf("%s: Validate code = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestConfigureProgramsRegisters(t *testing.T) {
	hw := sim.New(4)
	d := usart.New(hw)

	cfg := usart.DefaultConfig()
	cfg.Baud = 115200
	cfg.DoubleSpeed = true
	cfg.MaxErrorPermille = 25
	cfg.Format = types.SerialSetFormat{DataBits: 7, StopBits: 2, Parity: types.ParityEven}
	cfg.RxInterrupt = true
	cfg.DataEmptyInterrupt = true
	cfg.RxDepth = 1

	if err := d.Configure(cfg); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got, want := hw.Divisor(), usart.DivisorDoubleSpeed(16_000_000, 115200); got != want {
		t.Fatalf("divisor = %d, want %d", got, want)
	}
	if hw.Reg(usart.UCSR0A)&(1<<usart.U2X0) == 0 {
		t.Fatalf("U2X0 not set")
	}
	if got, want := hw.Reg(usart.UCSR0C), uint8(1<<usart.UCSZ01|1<<usart.USBS0|1<<usart.UPM01); got != want {
		t.Fatalf("UCSR0C = %08b, want %08b", got, want)
	}
	if got, want := hw.Reg(usart.UCSR0B), uint8(1<<usart.RXEN0|1<<usart.TXEN0|1<<usart.RXCIE0|1<<usart.UDRIE0); got != want {
		t.Fatalf("UCSR0B = %08b, want %08b", got, want)
	}

	hw.InjectString("abc")
	d.Flush()
	if hw.Pending() != 2 {
		t.Fatalf("flush depth not applied: pending %d", hw.Pending())
	}
}

func TestConfigureRejectsWithoutTouchingHardware(t *testing.T) {
	hw := sim.New(1)
	d := usart.New(hw)
	cfg := usart.DefaultConfig()
	cfg.Baud = 0
	err := d.Configure(cfg)
	if !errors.Is(err, errcode.InvalidParams) {
		t.Fatalf("Configure err = %v", err)
	}
	for _, r := range []usart.Reg{usart.UCSR0A, usart.UCSR0B, usart.UCSR0C, usart.UBRR0L, usart.UBRR0H} {
		if n := hw.Stores(r); n != 0 {
			t.Fatalf("register %#x written %d times", r, n)
		}
	}
}

func TestConfigWithBaudAndInfo(t *testing.T) {
	cfg := usart.DefaultConfig().WithBaud(types.SerialSetBaud{Baud: 38400})
	if cfg.Baud != 38400 || cfg.ClockHz != 16_000_000 {
		t.Fatalf("WithBaud = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	info := cfg.Info("USART0")
	if info.Bus != "USART0" || info.Baud != 38462 {
		t.Fatalf("Info = %+v, want USART0 @ 38462", info)
	}
	if got := usart.DefaultConfig().Info("x").Baud; got != 9615 {
		t.Fatalf("default Info baud = %d, want 9615", got)
	}
}
