//go:build !windows

package serialport

import "regexp"

// usbSerialAdapterPattern matches the device-name conventions of the
// two USB-serial chipsets most commonly used with STM8 discovery
// boards: FTDI FT232 (tty.usbserial on macOS, ttyUSB on Linux) and
// Prolific PL2303 (tty.PL2303 on macOS).
var usbSerialAdapterPattern = regexp.MustCompile(`tty\.usbserial|tty\.PL2303|ttyUSB`)

func filterPorts(names []string) []string {
	var out []string
	for _, n := range names {
		if usbSerialAdapterPattern.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}
