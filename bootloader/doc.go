// Package bootloader implements the host side of the STM8 UART
// bootloader protocol: synchronisation, device identification, and
// framed, checksummed reads, writes, erases and jumps against target
// memory.
//
// # Overview
//
// An Engine drives a Transport (satisfied by *serialport.Port, or by
// anything else exposing the same handful of methods, which is how the
// tests in this package script a fake target):
//
//	port, err := serialport.Open("/dev/ttyUSB0", serialport.DefaultAttributes())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer port.Close()
//
//	eng := bootloader.New(port, bootloader.WithLogger(myLogger))
//	if err := eng.Sync(); err != nil {
//		log.Fatal(err)
//	}
//	info, err := eng.GetInfo()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("flash: %d kB, BSL v%d.%d\n", info.FlashSizeKB, info.BSLVersion>>4, info.BSLVersion&0x0F)
//
// # Progress
//
// MemRead always, and MemWrite when its verbose flag is set, report
// progress through an optional callback:
//
//	eng := bootloader.New(port, bootloader.WithProgressCallback(func(p bootloader.Progress) {
//		fmt.Printf("%s: %d/%d\n", p.Phase, p.BytesDone, p.BytesTotal)
//	}))
//
// MemWrite's verbose flag lets one Engine serve both a user-visible
// flash programming pass and a silent RAM upload of a helper routine
// ahead of it, without either call site affecting the other's output.
//
// # Cancellation
//
// MemRead and MemWrite accept a context.Context that is checked between
// chunks. FlashErase erases a single sector and takes no context. A chunk transaction already in flight
// always runs to completion or hardware timeout; cancellation only
// stops the loop from starting the next chunk.
//
// # What this package does not do
//
// It does not parse hex files, does not decide which helper routine to
// upload for a given device, and does not sequence a full
// sync/identify/erase/program/verify/jump flow. Those are orchestration
// concerns left to the caller.
package bootloader
