// uartsim runs the USART driver against the simulated register file. Each
// input line is one command; the bytes it puts on the wire are echoed
// quoted on stdout.
//
//	init 9600 [16000000]     unchecked init at baud (clock)
//	config 115200 8N1 double configure with validation
//	baud 38400               reconfigure the rate only
//	info                     port info and frame as JSON
//	int16 -32768             any of int8..uint32
//	fixed16 -1234 2          any of fixed16, ufixed16, fixed32, ufixed32
//	str "hello world"        rom "..." | nl | hex8 0xC6 | hex32 1234
//	inject "abc"             deliver bytes from the line
//	rx | read | flush        receive one / drain ready / discard
//	irq rx on                rx | tx | dre, on | off
//	regs                     dump the register window
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"uartkit/drivers/usart"
	"uartkit/drivers/usart/sim"
	"uartkit/errcode"
	"uartkit/types"
	"uartkit/x/conv"
)

const defaultClock = 16_000_000

const busName = "USART0"

type session struct {
	hw  *sim.USART
	dev *usart.Device
	cfg usart.Config // last applied setup
	out io.Writer
}

func newSession(out io.Writer) *session {
	hw := sim.New(usart.DefaultRxDepth)
	return &session{hw: hw, dev: usart.New(hw), cfg: usart.DefaultConfig(), out: out}
}

func main() {
	in := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "uartsim:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	if err := run(in, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "uartsim:", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	s := newSession(out)
	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "%d: parse: %v\n", line, err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if err := s.exec(args[0], args[1:]); err != nil {
			fmt.Fprintf(out, "%d: %s: %v\n", line, args[0], err)
			continue
		}
		if w := s.hw.TakeWire(); len(w) > 0 {
			fmt.Fprintf(out, "%q\n", w)
		}
	}
	return sc.Err()
}

func (s *session) exec(cmd string, args []string) error {
	d := s.dev
	switch cmd {
	case "init":
		baud, err := argUint(args, 0, 32)
		if err != nil {
			return err
		}
		clock := uint64(defaultClock)
		if len(args) > 1 {
			if clock, err = argUint(args, 1, 32); err != nil {
				return err
			}
		}
		d.Init(usart.Divisor(uint32(clock), uint32(baud)))
		s.cfg = usart.DefaultConfig()
		s.cfg.ClockHz, s.cfg.Baud = uint32(clock), uint32(baud)
	case "config":
		return s.configure(args)
	case "baud":
		v, err := argUint(args, 0, 32)
		if err != nil {
			return err
		}
		cfg := s.cfg.WithBaud(types.SerialSetBaud{Baud: uint32(v)})
		if err := d.Configure(cfg); err != nil {
			return err
		}
		s.cfg = cfg
	case "info":
		b, err := json.Marshal(struct {
			Info   types.SerialInfo      `json:"info"`
			Format types.SerialSetFormat `json:"format"`
		}{s.cfg.Info(busName), s.cfg.Format})
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s\n", b)
	case "int8", "int16", "int32":
		bits := map[string]int{"int8": 8, "int16": 16, "int32": 32}[cmd]
		v, err := argInt(args, 0, bits)
		if err != nil {
			return err
		}
		switch bits {
		case 8:
			d.PutInt8(int8(v))
		case 16:
			d.PutInt16(int16(v))
		default:
			d.PutInt32(int32(v))
		}
	case "uint8", "uint16", "uint32":
		bits := map[string]int{"uint8": 8, "uint16": 16, "uint32": 32}[cmd]
		v, err := argUint(args, 0, bits)
		if err != nil {
			return err
		}
		switch bits {
		case 8:
			d.PutUint8(uint8(v))
		case 16:
			d.PutUint16(uint16(v))
		default:
			d.PutUint32(uint32(v))
		}
	case "fixed16", "fixed32":
		bits := 16
		if cmd == "fixed32" {
			bits = 32
		}
		v, err := argInt(args, 0, bits)
		if err != nil {
			return err
		}
		places, err := argUint(args, 1, 8)
		if err != nil {
			return err
		}
		if bits == 16 {
			d.PutFixed16(int16(v), uint8(places))
		} else {
			d.PutFixed32(int32(v), uint8(places))
		}
	case "ufixed16", "ufixed32":
		bits := 16
		if cmd == "ufixed32" {
			bits = 32
		}
		v, err := argUint(args, 0, bits)
		if err != nil {
			return err
		}
		places, err := argUint(args, 1, 8)
		if err != nil {
			return err
		}
		if bits == 16 {
			d.PutUfixed16(uint16(v), uint8(places))
		} else {
			d.PutUfixed32(uint32(v), uint8(places))
		}
	case "str":
		d.PutString(strings.Join(args, " "))
	case "rom":
		d.PutROM(usart.Progmem(strings.Join(args, " ")))
	case "nl":
		d.Newline()
	case "hex8", "hex32":
		bits := 8
		if cmd == "hex32" {
			bits = 32
		}
		v, err := argUint(args, 0, bits)
		if err != nil {
			return err
		}
		if bits == 8 {
			d.PutHex8(uint8(v))
		} else {
			d.PutHex32(uint32(v))
		}
	case "inject":
		data := strings.Join(args, " ")
		n := s.hw.InjectString(data)
		fmt.Fprintf(s.out, "injected %d/%d\n", n, len(data))
	case "rx":
		if !d.RxReady() {
			// Rx would spin forever on an idle simulated line.
			return errcode.Wrap(errcode.Timeout, "", "no data")
		}
		fmt.Fprintf(s.out, "rx %q\n", d.Rx())
	case "read":
		buf := make([]byte, 16)
		n, _ := d.Read(buf)
		fmt.Fprintf(s.out, "read %q\n", buf[:n])
	case "flush":
		d.Flush()
	case "irq":
		return s.irq(args)
	case "regs":
		s.dumpRegs()
	default:
		return errcode.Wrap(errcode.Unsupported, "", "unknown command")
	}
	return nil
}

func (s *session) configure(args []string) error {
	baud, err := argUint(args, 0, 32)
	if err != nil {
		return err
	}
	cfg := usart.DefaultConfig()
	cfg.Baud = uint32(baud)
	for _, a := range args[1:] {
		switch {
		case a == "double":
			cfg.DoubleSpeed = true
		case strings.HasPrefix(a, "clock="):
			v, err := strconv.ParseUint(a[len("clock="):], 0, 32)
			if err != nil {
				return errcode.Wrap(errcode.InvalidParams, "", a)
			}
			cfg.ClockHz = uint32(v)
		case strings.HasPrefix(a, "slack="):
			v, err := strconv.ParseUint(a[len("slack="):], 0, 32)
			if err != nil {
				return errcode.Wrap(errcode.InvalidParams, "", a)
			}
			cfg.MaxErrorPermille = uint32(v)
		default:
			f, ok := parseFormat(a)
			if !ok {
				return errcode.Wrap(errcode.InvalidParams, "", a)
			}
			cfg.Format = f
		}
	}
	if err := s.dev.Configure(cfg); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// parseFormat reads the usual "8N1" shorthand.
func parseFormat(s string) (types.SerialSetFormat, bool) {
	if len(s) != 3 || s[0] < '0' || s[0] > '9' || s[2] < '0' || s[2] > '9' {
		return types.SerialSetFormat{}, false
	}
	p, ok := types.ParseParity(strings.ToLower(s[1:2]))
	if !ok {
		return types.SerialSetFormat{}, false
	}
	return types.SerialSetFormat{DataBits: s[0] - '0', StopBits: s[2] - '0', Parity: p}, true
}

func (s *session) irq(args []string) error {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return errcode.Wrap(errcode.InvalidParams, "", "want: irq rx|tx|dre on|off")
	}
	on := args[1] == "on"
	switch args[0] {
	case "rx":
		s.dev.SetRxInterrupt(on)
	case "tx":
		s.dev.SetTxInterrupt(on)
	case "dre":
		s.dev.SetDataEmptyInterrupt(on)
	default:
		return errcode.Wrap(errcode.InvalidParams, "", args[0])
	}
	return nil
}

func (s *session) dumpRegs() {
	regs := []struct {
		name string
		r    usart.Reg
	}{
		{"UCSR0A", usart.UCSR0A},
		{"UCSR0B", usart.UCSR0B},
		{"UCSR0C", usart.UCSR0C},
		{"UBRR0H", usart.UBRR0H},
		{"UBRR0L", usart.UBRR0L},
	}
	var hx [2]byte
	for _, r := range regs {
		fmt.Fprintf(s.out, "%s=%s\n", r.name, conv.U8Hex(hx[:], s.hw.Reg(r.r)))
	}
}

func argInt(args []string, i, bits int) (int64, error) {
	if i >= len(args) {
		return 0, errcode.Wrap(errcode.InvalidParams, "args", "missing value")
	}
	v, err := strconv.ParseInt(args[i], 0, bits)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidParams, "args", args[i])
	}
	return v, nil
}

func argUint(args []string, i, bits int) (uint64, error) {
	if i >= len(args) {
		return 0, errcode.Wrap(errcode.InvalidParams, "args", "missing value")
	}
	v, err := strconv.ParseUint(args[i], 0, bits)
	if err != nil {
		return 0, errcode.Wrap(errcode.InvalidParams, "args", args[i])
	}
	return v, nil
}
