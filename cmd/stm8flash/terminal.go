package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gicking/stm8flash/serialport"
)

// runTerminal opens a raw pass-through session with the target's normal
// (non-bootloader) UART, echoing bytes both ways until either side
// closes. It is a debugging aid, not part of the bootloader protocol.
func runTerminal(portName string, baud uint32) {
	attrs := serialport.DefaultAttributes()
	attrs.Baudrate = baud
	attrs.Parity = serialport.NoParity
	attrs.TimeoutMS = 100

	port, err := serialport.Open(portName, attrs)
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	go readSerial(port)
	writeSerial(port)
}

func readSerial(port *serialport.Port) {
	for {
		b, err := port.Receive(128)
		if err != nil {
			log.Fatal(err)
		}
		if len(b) == 0 {
			continue
		}
		fmt.Print(string(b))
	}
}

func writeSerial(port *serialport.Port) {
	reader := bufio.NewReader(os.Stdin)
	buffer := make([]byte, 128)

	for {
		n, err := reader.Read(buffer)
		if err != nil {
			fmt.Println()
			if err != io.EOF {
				log.Fatal(err)
			}
			return
		}
		if _, err := port.Send(buffer[:n]); err != nil {
			log.Fatal(err)
		}
	}
}
