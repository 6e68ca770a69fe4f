package serialport

import "github.com/albenik/go-serial/v2"

// ListPorts is a best-effort enumeration of serial devices likely to be
// a target. Returning an empty slice is not an error. On Windows this
// is exactly what the OS/driver already enumerates (equivalent to
// probing COM1..COM255 for an exclusive open); on POSIX it is narrowed
// to device names matching known USB-serial adapter chipsets.
func ListPorts() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	return filterPorts(names), nil
}
