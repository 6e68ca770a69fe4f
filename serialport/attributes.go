package serialport

// Parity selects the line's parity checking mode.
type Parity int

const (
	NoParity Parity = iota
	OddParity
	EvenParity
)

func (p Parity) String() string {
	switch p {
	case NoParity:
		return "none"
	case OddParity:
		return "odd"
	case EvenParity:
		return "even"
	default:
		return "unknown"
	}
}

// StopBits selects the number of stop bits per frame.
type StopBits int

const (
	OneStopBit StopBits = iota
	OnePointFiveStopBits
	TwoStopBits
)

func (s StopBits) String() string {
	switch s {
	case OneStopBit:
		return "1"
	case OnePointFiveStopBits:
		return "1.5"
	case TwoStopBits:
		return "2"
	default:
		return "unknown"
	}
}

// Attributes is the value record describing a port's line configuration.
// After SetAttributes(a) followed by GetAttributes(), the returned record
// equals a within whatever the OS driver actually supports.
type Attributes struct {
	Baudrate  uint32
	TimeoutMS uint32 // 0 means "poll, don't wait"
	DataBits  int    // 7 or 8
	Parity    Parity
	StopBits  StopBits
	RTS       bool
	DTR       bool
}

// DefaultAttributes matches the STM8 bootloader's default expectations:
// 8 data bits, no parity, one stop bit, a 1 second total read timeout,
// and both modem-control lines held low.
func DefaultAttributes() Attributes {
	return Attributes{
		Baudrate:  9600,
		TimeoutMS: 1000,
		DataBits:  8,
		Parity:    NoParity,
		StopBits:  OneStopBit,
	}
}

// SupportedBaudrates lists the rates the transport is required to
// support; an OS/driver may accept higher rates too.
var SupportedBaudrates = []uint32{4800, 9600, 14400, 19200, 28800, 38400, 57600, 115200}
