package frame

import "testing"

func TestEncodeAddrDecomposition(t *testing.T) {
	addrs := []uint32{0, 1, 0x8000, 0x8C00, 0x00FFFF, 0x047FFF, 0xFFFFFFFF}
	for _, a := range addrs {
		f := EncodeAddr(a)
		if len(f) != 5 {
			t.Fatalf("EncodeAddr(%#x) has length %d, want 5", a, len(f))
		}
		want := []byte{byte(a >> 24), byte(a >> 16), byte(a >> 8), byte(a)}
		for i, b := range want {
			if f[i] != b {
				t.Errorf("EncodeAddr(%#x)[%d] = %#x, want %#x", a, i, f[i], b)
			}
		}
		var chk byte
		for _, b := range want {
			chk ^= b
		}
		if f[4] != chk {
			t.Errorf("EncodeAddr(%#x) checksum = %#x, want %#x", a, f[4], chk)
		}
	}
}

func TestEncodeAddrKnownVector(t *testing.T) {
	// From the "read 3 bytes from 0x8000" scenario: 00 00 80 00 80
	got := EncodeAddr(0x8000)
	want := []byte{0x00, 0x00, 0x80, 0x00, 0x80}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EncodeAddr(0x8000) = %#v, want %#v", got, want)
		}
	}
}

func TestEraseSector(t *testing.T) {
	cases := map[uint32]byte{
		0x8000: 0,
		0x8400: 1,
		0x8C00: 3,
	}
	for addr, want := range cases {
		if got := EraseSector(addr); got != want {
			t.Errorf("EraseSector(%#x) = %d, want %d", addr, got, want)
		}
	}
}
