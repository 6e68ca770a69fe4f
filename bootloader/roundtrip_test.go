package bootloader

import (
	"bytes"
	"context"
	"testing"

	"github.com/gicking/stm8flash/frame"
)

// memoryTarget is a small interpreter of the wire protocol, backed by
// a sparse memory map, used to exercise multi-chunk MemRead/MemWrite
// round trips that a fixed reply script can't express.
type memoryTarget struct {
	mem       map[uint32]byte
	timeoutMS uint32

	state   int
	cmd     byte
	addr    uint32
	pending []byte
}

const (
	mtReady = iota
	mtAwaitAddr
	mtAwaitLen
	mtAwaitPayload
)

func newMemoryTarget() *memoryTarget {
	return &memoryTarget{mem: make(map[uint32]byte), timeoutMS: 1000}
}

func (m *memoryTarget) Send(b []byte) (int, error) {
	switch m.state {
	case mtReady:
		if len(b) == 2 && b[1] == b[0]^0xFF {
			m.cmd = b[0]
			m.pending = []byte{frame.ACK}
			m.state = mtAwaitAddr
		}
	case mtAwaitAddr:
		if len(b) == 5 {
			m.addr = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
			m.pending = []byte{frame.ACK}
			if m.cmd == frame.READ {
				m.state = mtAwaitLen
			} else {
				m.state = mtAwaitPayload
			}
		}
	case mtAwaitLen:
		if len(b) == 2 {
			n := int(b[0]) + 1
			data := make([]byte, n)
			for i := 0; i < n; i++ {
				data[i] = m.mem[m.addr+uint32(i)]
			}
			m.pending = append([]byte{frame.ACK}, data...)
			m.state = mtReady
		}
	case mtAwaitPayload:
		n := int(b[0]) + 1
		for i := 0; i < n; i++ {
			m.mem[m.addr+uint32(i)] = b[1+i]
		}
		m.pending = []byte{frame.ACK}
		m.state = mtReady
	}
	return len(b), nil
}

func (m *memoryTarget) Receive(n int) ([]byte, error) {
	if len(m.pending) == 0 {
		return nil, nil
	}
	r := m.pending
	if len(r) > n {
		r = r[:n]
	}
	m.pending = m.pending[len(r):]
	return r, nil
}

func (m *memoryTarget) Flush() error              { return nil }
func (m *memoryTarget) SetTimeout(ms uint32) error { m.timeoutMS = ms; return nil }
func (m *memoryTarget) TimeoutMS() (uint32, error) { return m.timeoutMS, nil }

var _ Transport = (*memoryTarget)(nil)

func TestMemReadWriteRoundTrip(t *testing.T) {
	lengths := []int{1, 2, 127, 128, 129, 255, 256, 257, 512, 4096}
	starts := []uint32{0x8000, 0x8003, 0x9001}

	for _, start := range starts {
		for _, n := range lengths {
			target := newMemoryTarget()
			eng := New(target)

			data := make([]byte, n)
			for i := range data {
				data[i] = byte((i*37 + int(start)) & 0xFF)
			}

			if err := eng.MemWrite(context.Background(), start, data, true); err != nil {
				t.Fatalf("start=%#x n=%d: MemWrite: %v", start, n, err)
			}

			got := make([]byte, n)
			if err := eng.MemRead(context.Background(), start, got); err != nil {
				t.Fatalf("start=%#x n=%d: MemRead: %v", start, n, err)
			}

			if !bytes.Equal(got, data) {
				t.Fatalf("start=%#x n=%d: round trip mismatch", start, n)
			}
		}
	}
}
