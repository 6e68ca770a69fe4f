// Command stm8flash is a thin demonstration front end over the
// bootloader and serialport packages. It intentionally does not parse
// hex files or sequence a full program/verify flow; see the package
// docs for what it does cover: listing ports, synchronising, reading
// off device info, and a raw terminal pass-through for debugging a
// target's normal (non-bootloader) UART output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gicking/stm8flash/bootloader"
	"github.com/gicking/stm8flash/serialport"
)

func main() {
	flagList := flag.Bool("list", false, "List candidate serial ports and exit")
	flagPort := flag.String("port", "", "Serial port to use, e.g. /dev/ttyUSB0 or COM3")
	flagBaud := flag.Uint("baud", 9600, "Baud rate for the bootloader handshake")
	flagTimeout := flag.Uint("timeout", 1000, "Total read timeout in milliseconds")
	flagSync := flag.Bool("sync", false, "Synchronise with the target's bootloader and exit")
	flagInfo := flag.Bool("info", false, "Synchronise, print flash size and BSL version, and exit")
	flagTerm := flag.Bool("term", false, "Open a raw terminal pass-through to the port")
	flag.Parse()

	if *flagList {
		listPorts()
		return
	}

	if *flagPort == "" {
		fmt.Fprintln(os.Stderr, "no -port given; run with -list to see candidates")
		os.Exit(1)
	}

	switch {
	case *flagTerm:
		runTerminal(*flagPort, uint32(*flagBaud))
	case *flagSync || *flagInfo:
		runBootloaderProbe(*flagPort, uint32(*flagBaud), uint32(*flagTimeout), *flagInfo)
	default:
		fmt.Println("run with -help to show available flags")
	}
}

func listPorts() {
	ports, err := serialport.ListPorts()
	if err != nil {
		log.Fatal(err)
	}
	if len(ports) == 0 {
		fmt.Println("no candidate ports found")
		return
	}
	for _, p := range ports {
		fmt.Println(p)
	}
}

func runBootloaderProbe(portName string, baud, timeoutMS uint32, wantInfo bool) {
	attrs := serialport.DefaultAttributes()
	attrs.Baudrate = baud
	attrs.TimeoutMS = timeoutMS

	port, err := serialport.Open(portName, attrs)
	if err != nil {
		log.Fatal(err)
	}
	defer port.Close()

	eng := bootloader.New(port)
	if err := eng.Sync(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("synchronised")

	if !wantInfo {
		return
	}

	info, err := eng.GetInfo()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("flash: %d kB, BSL v%d.%d\n", info.FlashSizeKB, info.BSLVersion>>4, info.BSLVersion&0x0F)
}
