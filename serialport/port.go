package serialport

import (
	"fmt"
	"io"
	"time"

	"github.com/albenik/go-serial/v2"
)

// serialConn is the subset of *serial.Port this package depends on.
// Isolating it behind an interface keeps Port testable without a real
// serial adapter attached.
type serialConn interface {
	io.Reader
	io.Writer
	io.Closer
	ResetInputBuffer() error
	ResetOutputBuffer() error
	SetDTR(bool) error
	SetRTS(bool) error
	Reconfigure(opts ...serial.Option) error
}

// Port is a single exclusively-owned serial line. The zero value is not
// usable; obtain one with Open.
type Port struct {
	name   string
	conn   serialConn
	attrs  Attributes
	logger Logger
}

// Open opens name exclusively and applies attrs. It fails with
// OpenFailedError if the device cannot be opened, or ConfigFailedError
// if attrs cannot be applied.
func Open(name string, attrs Attributes, opts ...Option) (*Port, error) {
	cfg := newConfig(opts)

	conn, err := serial.Open(name, lineOptions(attrs)...)
	if err != nil {
		return nil, &OpenFailedError{Name: name, Err: err}
	}

	p := &Port{name: name, conn: conn, attrs: attrs, logger: cfg.logger}

	if err := conn.SetDTR(attrs.DTR); err != nil {
		conn.Close()
		return nil, &ConfigFailedError{Err: fmt.Errorf("set DTR: %w", err)}
	}
	if err := conn.SetRTS(attrs.RTS); err != nil {
		conn.Close()
		return nil, &ConfigFailedError{Err: fmt.Errorf("set RTS: %w", err)}
	}

	p.logger.Debug("port opened", "name", name, "baud", attrs.Baudrate)
	return p, nil
}

// Close releases the underlying OS handle. It is idempotent: calling
// Close on an already-closed Port returns nil.
func (p *Port) Close() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	if err != nil {
		return &CloseFailedError{Err: err}
	}
	p.logger.Debug("port closed", "name", p.name)
	return nil
}

// GetAttributes returns the attributes currently believed to be in
// effect. It reflects the last successful Open/SetAttributes/SetBaud/
// SetTimeout call, not a fresh read back from the OS.
func (p *Port) GetAttributes() (Attributes, error) {
	if p.conn == nil {
		return Attributes{}, &NotOpenError{}
	}
	return p.attrs, nil
}

// SetAttributes reconfigures the line and static RTS/DTR levels. It is
// applied as one Reconfigure call plus two modem-control calls; on
// failure the Port keeps whichever attributes were last successfully
// applied.
func (p *Port) SetAttributes(attrs Attributes) error {
	if p.conn == nil {
		return &NotOpenError{}
	}
	if err := p.conn.Reconfigure(lineOptions(attrs)...); err != nil {
		return &ConfigFailedError{Err: err}
	}
	if err := p.conn.SetDTR(attrs.DTR); err != nil {
		return &ConfigFailedError{Err: fmt.Errorf("set DTR: %w", err)}
	}
	if err := p.conn.SetRTS(attrs.RTS); err != nil {
		return &ConfigFailedError{Err: fmt.Errorf("set RTS: %w", err)}
	}
	p.attrs = attrs
	return nil
}

// TimeoutMS returns the total read timeout currently in effect, in
// milliseconds. It is a convenience accessor for callers (such as the
// bootloader package) that only care about the timeout, not the full
// Attributes record.
func (p *Port) TimeoutMS() (uint32, error) {
	a, err := p.GetAttributes()
	if err != nil {
		return 0, err
	}
	return a.TimeoutMS, nil
}

// SetBaud changes only the baud rate, leaving other attributes intact.
func (p *Port) SetBaud(baud uint32) error {
	if p.conn == nil {
		return &NotOpenError{}
	}
	if err := p.conn.Reconfigure(serial.WithBaudrate(int(baud))); err != nil {
		return &ConfigFailedError{Err: err}
	}
	p.attrs.Baudrate = baud
	return nil
}

// SetTimeout changes only the total read timeout, leaving other
// attributes intact.
func (p *Port) SetTimeout(ms uint32) error {
	if p.conn == nil {
		return &NotOpenError{}
	}
	if err := p.conn.Reconfigure(serial.WithReadTimeout(int(ms))); err != nil {
		return &ConfigFailedError{Err: err}
	}
	p.attrs.TimeoutMS = ms
	return nil
}

// Send writes b and returns the number of bytes the OS accepted. It
// does not retry on a short write; SendShortError is returned when
// count < len(b).
func (p *Port) Send(b []byte) (int, error) {
	if p.conn == nil {
		return 0, &NotOpenError{}
	}
	n, err := p.conn.Write(b)
	if err != nil {
		return n, fmt.Errorf("serialport: send: %w", err)
	}
	if n != len(b) {
		return n, &SendShortError{Requested: len(b), Sent: n}
	}
	return n, nil
}

// Receive reads up to n bytes, honoring the total-read-timeout
// contract: the wait is bounded across the whole call, not per
// underlying read. It returns fewer than n bytes only once that total
// deadline has elapsed; that is not itself reported as an error. A
// TimeoutMS of 0 means "return immediately with whatever is buffered".
func (p *Port) Receive(n int) ([]byte, error) {
	if p.conn == nil {
		return nil, &NotOpenError{}
	}
	buf := make([]byte, n)

	if p.attrs.TimeoutMS == 0 {
		r, err := p.conn.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("serialport: receive: %w", err)
		}
		return buf[:r], nil
	}

	deadline := time.Now().Add(time.Duration(p.attrs.TimeoutMS) * time.Millisecond)
	received := 0
	for received < n {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		// Shrink the underlying read's own timeout to whatever is left of
		// the total deadline, so a read that never returns any bytes can't
		// by itself push the call past it.
		remainingMS := int(remaining / time.Millisecond)
		if remainingMS < 1 {
			remainingMS = 1
		}
		if err := p.conn.Reconfigure(serial.WithReadTimeout(remainingMS)); err != nil {
			return buf[:received], fmt.Errorf("serialport: receive: %w", err)
		}

		r, err := p.conn.Read(buf[received:])
		if err != nil {
			return buf[:received], fmt.Errorf("serialport: receive: %w", err)
		}
		received += r
		if received >= n {
			break
		}
	}

	if err := p.conn.Reconfigure(serial.WithReadTimeout(int(p.attrs.TimeoutMS))); err != nil {
		return buf[:received], fmt.Errorf("serialport: receive: restore timeout: %w", err)
	}
	return buf[:received], nil
}

// Flush discards both input and output buffered data.
func (p *Port) Flush() error {
	if p.conn == nil {
		return &NotOpenError{}
	}
	if err := p.conn.ResetInputBuffer(); err != nil {
		return fmt.Errorf("serialport: flush input: %w", err)
	}
	if err := p.conn.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("serialport: flush output: %w", err)
	}
	return nil
}

func lineOptions(a Attributes) []serial.Option {
	opts := []serial.Option{
		serial.WithBaudrate(int(a.Baudrate)),
		serial.WithDataBits(a.DataBits),
		serial.WithReadTimeout(int(a.TimeoutMS)),
	}

	switch a.Parity {
	case OddParity:
		opts = append(opts, serial.WithParity(serial.OddParity))
	case EvenParity:
		opts = append(opts, serial.WithParity(serial.EvenParity))
	default:
		opts = append(opts, serial.WithParity(serial.NoParity))
	}

	switch a.StopBits {
	case OnePointFiveStopBits:
		opts = append(opts, serial.WithStopBits(serial.OnePointFiveStopBits))
	case TwoStopBits:
		opts = append(opts, serial.WithStopBits(serial.TwoStopBits))
	default:
		opts = append(opts, serial.WithStopBits(serial.OneStopBit))
	}

	return opts
}
