package types

// ------------------------
// Serial
// ------------------------

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

func (p Parity) MarshalJSON() ([]byte, error) { return []byte(`"` + p.String() + `"`), nil }

// ParseParity accepts "none", "even", "odd" (and "n", "e", "o").
func ParseParity(s string) (Parity, bool) {
	switch s {
	case "none", "n", "":
		return ParityNone, true
	case "even", "e":
		return ParityEven, true
	case "odd", "o":
		return ParityOdd, true
	}
	return ParityNone, false
}

type SerialSetBaud struct {
	Baud uint32 `json:"baud"`
}

type SerialSetFormat struct {
	DataBits uint8  `json:"data_bits"`
	StopBits uint8  `json:"stop_bits"`
	Parity   Parity `json:"parity"`
}

// Format8N1 is the frame used after a plain init.
var Format8N1 = SerialSetFormat{DataBits: 8, StopBits: 1, Parity: ParityNone}

type SerialInfo struct {
	Bus  string `json:"bus"`
	Baud uint32 `json:"baud"` // 0 if unspecified
}
