// Package serialport is a thin cross-platform wrapper over a single
// full-duplex serial line.
//
// # Overview
//
// A Port owns line parameters (baud, data bits, parity, stop bits,
// RTS/DTR) and a single total-read-timeout knob. It is opened exclusively,
// mutated through attribute setters, and released with Close. A closed
// Port is unusable; every method on it after Close returns a NotOpenError,
// except Close itself, which returns nil.
//
// Line configuration is delegated to github.com/albenik/go-serial/v2,
// which applies data bits, parity, and stop bits atomically and hides
// the termios/DCB differences between POSIX and Windows.
//
// # Timeouts
//
// Attributes.TimeoutMS bounds the *entire* Receive call, not a single
// underlying read syscall. Receive loops over short reads from the
// underlying connection, accumulating bytes against a wall-clock
// deadline, and returns whatever it collected once that deadline
// passes rather than blocking indefinitely.
//
//	p, err := serialport.Open("/dev/ttyUSB0", serialport.Attributes{
//		Baudrate:  9600,
//		TimeoutMS: 1000,
//		DataBits:  8,
//		Parity:    serialport.EvenParity,
//		StopBits:  serialport.OneStopBit,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
package serialport
