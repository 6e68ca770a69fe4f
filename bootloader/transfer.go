package bootloader

import (
	"context"
	"fmt"

	"github.com/gicking/stm8flash/frame"
)

// progressChunkRead and progressChunkWrite gate how often MemRead and
// MemWrite report progress, matching the spec's "every 2 KiB" / "every
// 1 KiB" cadence without emitting a callback per 128/256-byte chunk.
const (
	progressChunkRead  = 2048
	progressChunkWrite = 1024
)

// MemRead reads len(out) bytes starting at start, in chunks of up to
// frame.MaxReadChunk. ctx is checked between chunks; a chunk already in
// flight always runs to completion or transport timeout.
func (e *Engine) MemRead(ctx context.Context, start uint32, out []byte) error {
	total := len(out)
	done := 0
	sinceReport := 0

	for done < total {
		if err := ctx.Err(); err != nil {
			return err
		}

		addr := start + uint32(done)
		size := total - done
		if size > frame.MaxReadChunk {
			size = frame.MaxReadChunk
		}

		if err := e.readChunk(addr, out[done:done+size]); err != nil {
			return fmt.Errorf("bootloader: memRead at %#06x: %w", addr, err)
		}

		done += size
		sinceReport += size
		if sinceReport >= progressChunkRead || done == total {
			e.cfg.reportProgress(Progress{Phase: PhaseRead, Address: addr, BytesDone: done, BytesTotal: total})
			sinceReport = 0
		}
	}
	return nil
}

func (e *Engine) readChunk(addr uint32, out []byte) error {
	if _, err := e.t.Send(frame.Command(frame.READ)); err != nil {
		return err
	}
	if err := e.expectACK("memRead: command ACK"); err != nil {
		return err
	}

	if _, err := e.t.Send(frame.EncodeAddr(addr)); err != nil {
		return err
	}
	if err := e.expectACK("memRead: address ACK"); err != nil {
		return err
	}

	if _, err := e.t.Send(frame.LenFrame(len(out))); err != nil {
		return err
	}

	resp, err := e.t.Receive(len(out) + 1)
	if err != nil {
		return err
	}
	if len(resp) != len(out)+1 {
		return &TimeoutError{Op: "memRead: data phase"}
	}
	if resp[0] != frame.ACK {
		return &UnexpectedByteError{Expected: frame.ACK, Got: resp[0]}
	}
	copy(out, resp[1:])
	return nil
}

// MemWrite writes data starting at start, in chunks of up to
// frame.MaxWriteChunk. ctx is checked between chunks.
//
// verbose controls whether progress is reported through
// WithProgressCallback: pass true for user-visible flash programming,
// false for silent uploads such as a helper routine staged into RAM
// ahead of a program/verify pass.
func (e *Engine) MemWrite(ctx context.Context, start uint32, data []byte, verbose bool) error {
	total := len(data)
	done := 0
	sinceReport := 0

	for done < total {
		if err := ctx.Err(); err != nil {
			return err
		}

		addr := start + uint32(done)
		size := total - done
		if size > frame.MaxWriteChunk {
			size = frame.MaxWriteChunk
		}

		if err := e.writeChunk(addr, data[done:done+size]); err != nil {
			return fmt.Errorf("bootloader: memWrite at %#06x: %w", addr, err)
		}

		done += size
		sinceReport += size
		if verbose && (sinceReport >= progressChunkWrite || done == total) {
			e.cfg.reportProgress(Progress{Phase: PhaseWrite, Address: addr, BytesDone: done, BytesTotal: total})
			sinceReport = 0
		}
	}
	return nil
}

func (e *Engine) writeChunk(addr uint32, data []byte) error {
	if _, err := e.t.Send(frame.Command(frame.WRITE)); err != nil {
		return err
	}
	if err := e.expectACK("memWrite: command ACK"); err != nil {
		return err
	}

	if _, err := e.t.Send(frame.EncodeAddr(addr)); err != nil {
		return err
	}
	if err := e.expectACK("memWrite: address ACK"); err != nil {
		return err
	}

	if _, err := e.t.Send(frame.WritePayload(data)); err != nil {
		return err
	}
	return e.expectACK("memWrite: data ACK")
}

// FlashErase erases the single 1 KiB sector containing addr.
func (e *Engine) FlashErase(addr uint32) error {
	if _, err := e.t.Send(frame.Command(frame.ERASE)); err != nil {
		return fmt.Errorf("bootloader: flashErase: %w", err)
	}
	if err := e.expectACK("flashErase: command ACK"); err != nil {
		return err
	}

	sector := frame.EraseSector(addr)
	req := []byte{0x00, sector, 0x00 ^ sector}
	if _, err := e.t.Send(req); err != nil {
		return fmt.Errorf("bootloader: flashErase: %w", err)
	}
	if err := e.expectACK("flashErase: sector ACK"); err != nil {
		return err
	}

	e.cfg.reportProgress(Progress{Phase: PhaseErase, Address: addr, BytesDone: 1, BytesTotal: 1})
	return nil
}

// JumpTo sends GO and hands control to the target at addr. No further
// protocol messages are defined on the transport until the target
// re-enters bootloader mode.
func (e *Engine) JumpTo(addr uint32) error {
	if _, err := e.t.Send(frame.Command(frame.GO)); err != nil {
		return fmt.Errorf("bootloader: jumpTo: %w", err)
	}
	if err := e.expectACK("jumpTo: command ACK"); err != nil {
		return err
	}

	if _, err := e.t.Send(frame.EncodeAddr(addr)); err != nil {
		return fmt.Errorf("bootloader: jumpTo: %w", err)
	}
	return e.expectACK("jumpTo: address ACK")
}
