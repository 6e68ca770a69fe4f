package bootloader

// scriptedTarget replays a fixed sequence of Receive results, one per
// call, regardless of what was Sent. It is enough to drive the
// concrete request/response scenarios the protocol document specifies:
// each is a strict request-then-response dialogue, so asserting on the
// bytes actually sent (via Sent) alongside the scripted replies proves
// the wire trace matches.
type scriptedTarget struct {
	replies   [][]byte // nil entry means "no reply" (timeout)
	Sent      [][]byte
	timeoutMS uint32
	flushes   int
}

func (s *scriptedTarget) Send(b []byte) (int, error) {
	cp := append([]byte(nil), b...)
	s.Sent = append(s.Sent, cp)
	return len(b), nil
}

func (s *scriptedTarget) Receive(n int) ([]byte, error) {
	if len(s.replies) == 0 {
		return nil, nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	if len(r) > n {
		r = r[:n]
	}
	return r, nil
}

func (s *scriptedTarget) Flush() error                 { s.flushes++; return nil }
func (s *scriptedTarget) SetTimeout(ms uint32) error    { s.timeoutMS = ms; return nil }
func (s *scriptedTarget) TimeoutMS() (uint32, error)    { return s.timeoutMS, nil }

var _ Transport = (*scriptedTarget)(nil)
