package bootloader

import (
	"fmt"
	"time"

	"github.com/gicking/stm8flash/frame"
)

// SyncAttempts is the number of SYNCH bytes sent before Sync gives up.
const SyncAttempts = 15

const syncRetryDelay = 10 * time.Millisecond

// probeTimeoutMS is the shortened read timeout GetInfo installs while
// running its density probes, so a negative probe fails quickly
// instead of waiting out the caller's normal (much longer) timeout.
const probeTimeoutMS = 100

// densityProbeAddrs lists the top address of each candidate flash
// density, in descending order: the first that memCheck confirms
// readable determines the device's flash size.
var densityProbeAddrs = []struct {
	addr uint32
	kb   int
}{
	{0x047FFF, 256},
	{0x027FFF, 128},
	{0x00FFFF, 32},
	{0x009FFF, 8},
}

// Engine drives the STM8 UART bootloader protocol over a Transport.
// Each public method is a complete transaction; the engine keeps no
// state between calls beyond the Transport itself.
type Engine struct {
	t   Transport
	cfg config
}

// New wraps t in an Engine. t is typically an open *serialport.Port;
// Sync must be the first call made through it, since the target locks
// its autobaud on the first SYNCH byte.
func New(t Transport, opts ...Option) *Engine {
	return &Engine{t: t, cfg: newConfig(opts)}
}

// Sync flushes the port, then sends up to SyncAttempts SYNCH bytes,
// pausing briefly between attempts, until the target replies ACK or
// NACK. Both are treated as success; NACK means the target considers
// itself already synchronised.
func (e *Engine) Sync() error {
	if err := e.t.Flush(); err != nil {
		return fmt.Errorf("bootloader: sync: %w", err)
	}

	var lastUnexpected byte
	var hasUnexpected bool

	for attempt := 1; attempt <= SyncAttempts; attempt++ {
		if err := e.t.Flush(); err != nil {
			return fmt.Errorf("bootloader: sync: %w", err)
		}
		if _, err := e.t.Send([]byte{frame.SYNCH}); err != nil {
			return fmt.Errorf("bootloader: sync: %w", err)
		}
		reply, err := e.t.Receive(1)
		if err != nil {
			return fmt.Errorf("bootloader: sync: %w", err)
		}
		if len(reply) != 1 {
			e.cfg.logger.Debug("sync: no reply", "attempt", attempt)
			time.Sleep(syncRetryDelay)
			continue
		}
		switch reply[0] {
		case frame.ACK, frame.NACK:
			e.cfg.logger.Debug("sync: synchronised", "attempt", attempt, "reply", reply[0])
			return nil
		default:
			// The target is still deducing the host's baud rate from the
			// SYNCH byte and may emit stray bytes while it locks; keep
			// retrying through them rather than aborting on the first one.
			e.cfg.logger.Debug("sync: unexpected byte", "attempt", attempt, "byte", reply[0])
			lastUnexpected = reply[0]
			hasUnexpected = true
			time.Sleep(syncRetryDelay)
			continue
		}
	}

	return &SyncFailedError{Attempts: SyncAttempts, LastUnexpected: lastUnexpected, HasUnexpected: hasUnexpected}
}

// GetInfo probes candidate flash densities in descending order, then
// issues GET to read off the bootloader version. It temporarily lowers
// the transport's read timeout for the probes and restores it
// (whatever it was before this call) before returning.
func (e *Engine) GetInfo() (DeviceProfile, error) {
	if err := e.t.Flush(); err != nil {
		return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: %w", err)
	}
	time.Sleep(syncRetryDelay)

	priorTimeout, err := e.t.TimeoutMS()
	if err != nil {
		return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: %w", err)
	}
	if err := e.t.SetTimeout(probeTimeoutMS); err != nil {
		return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: %w", err)
	}

	var flashSizeKB int
	for _, probe := range densityProbeAddrs {
		ok, err := e.MemCheck(probe.addr)
		if err != nil {
			e.t.SetTimeout(priorTimeout)
			return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: density probe at %#06x: %w", probe.addr, err)
		}
		if ok {
			flashSizeKB = probe.kb
			break
		}
	}

	if err := e.t.SetTimeout(priorTimeout); err != nil {
		return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: restore timeout: %w", err)
	}

	if flashSizeKB == 0 {
		return DeviceProfile{}, &DeviceNotIdentifiedError{}
	}

	bslVersion, err := e.getVersion()
	if err != nil {
		return DeviceProfile{}, fmt.Errorf("bootloader: getInfo: %w", err)
	}

	return DeviceProfile{FlashSizeKB: flashSizeKB, BSLVersion: bslVersion}, nil
}

// getVersion sends GET and parses the fixed 9-byte response
// [ACK, nBytes, bslVersion, GET, READ, GO, WRITE, ERASE, ACK].
func (e *Engine) getVersion() (byte, error) {
	if _, err := e.t.Send(frame.Command(frame.GET)); err != nil {
		return 0, err
	}
	resp, err := e.t.Receive(9)
	if err != nil {
		return 0, err
	}
	if len(resp) == 0 {
		return 0, &TimeoutError{Op: "getInfo: GET"}
	}
	if len(resp) != 9 {
		return 0, &ProtocolViolationError{Reason: fmt.Sprintf("GET response has %d bytes, want 9", len(resp))}
	}
	if resp[0] != frame.ACK {
		return 0, &UnexpectedByteError{Expected: frame.ACK, Got: resp[0]}
	}
	if resp[8] != frame.ACK {
		return 0, &UnexpectedByteError{Expected: frame.ACK, Got: resp[8]}
	}
	echoed := []byte{frame.GET, frame.READ, frame.GO, frame.WRITE, frame.ERASE}
	for i, want := range echoed {
		if resp[3+i] != want {
			return 0, &UnexpectedByteError{Expected: want, Got: resp[3+i]}
		}
	}
	return resp[2], nil
}

// MemCheck performs the command and address phases of a 1-byte READ and
// reports whether addr is readable. It returns false, not an error,
// when the target replies NACK or an unexpected byte in the address
// ACK slot; a receive timeout there still surfaces as an error.
func (e *Engine) MemCheck(addr uint32) (bool, error) {
	if _, err := e.t.Send(frame.Command(frame.READ)); err != nil {
		return false, err
	}
	reply, err := e.t.Receive(1)
	if err != nil {
		return false, err
	}
	if len(reply) != 1 {
		return false, &TimeoutError{Op: "memCheck: command ACK"}
	}
	if reply[0] != frame.ACK {
		return false, &UnexpectedByteError{Expected: frame.ACK, Got: reply[0]}
	}

	if _, err := e.t.Send(frame.EncodeAddr(addr)); err != nil {
		return false, err
	}
	reply, err = e.t.Receive(1)
	if err != nil {
		return false, err
	}
	if len(reply) != 1 {
		return false, &TimeoutError{Op: "memCheck: address ACK"}
	}
	return reply[0] == frame.ACK, nil
}

// expectACK reads a single byte and requires it to be ACK.
func (e *Engine) expectACK(op string) error {
	reply, err := e.t.Receive(1)
	if err != nil {
		return fmt.Errorf("bootloader: %s: %w", op, err)
	}
	if len(reply) != 1 {
		return &TimeoutError{Op: op}
	}
	if reply[0] != frame.ACK {
		return &UnexpectedByteError{Expected: frame.ACK, Got: reply[0]}
	}
	return nil
}
