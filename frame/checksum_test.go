package frame

import "testing"

func TestCommandComplement(t *testing.T) {
	for b := 0; b < 256; b++ {
		got := Command(byte(b))
		want := byte(b) ^ 0xFF
		if got[0] != byte(b) || got[1] != want {
			t.Fatalf("Command(%#x) = %#v, want [%#x %#x]", b, got, b, want)
		}
	}
}

func TestEncodeLenRange(t *testing.T) {
	for n := 1; n <= 256; n++ {
		got := EncodeLen(n)
		want := byte(n - 1)
		if got != want {
			t.Errorf("EncodeLen(%d) = %#x, want %#x", n, got, want)
		}
	}
}

func TestLenFrameComplement(t *testing.T) {
	for n := 1; n <= 256; n++ {
		f := LenFrame(n)
		if f[1] != f[0]^0xFF {
			t.Errorf("LenFrame(%d) = %#v, second byte is not complement of first", n, f)
		}
	}
}

func TestChecksumEmpty(t *testing.T) {
	if got := Checksum(nil); got != 0 {
		t.Errorf("Checksum(nil) = %#x, want 0", got)
	}
}

func TestWritePayloadChecksum(t *testing.T) {
	cases := [][]byte{
		{},
		{0x12, 0x34},
		{0x00, 0x01, 0x02, 0x03, 0x04},
	}
	for _, data := range cases {
		f := WritePayload(data)
		if len(f) != len(data)+2 {
			t.Fatalf("WritePayload(%v) length = %d, want %d", data, len(f), len(data)+2)
		}
		if f[0] != EncodeLen(len(data)) {
			t.Errorf("WritePayload(%v)[0] = %#x, want length byte %#x", data, f[0], EncodeLen(len(data)))
		}
		var fold byte
		for _, b := range f[:len(f)-1] {
			fold ^= b
		}
		if got := f[len(f)-1]; got != fold {
			t.Errorf("WritePayload(%v) checksum = %#x, want %#x", data, got, fold)
		}
	}
}

func TestWritePayloadKnownVector(t *testing.T) {
	// From the "write 2 bytes to 0x8000" scenario: checksum = 0x01 ^ 0x12 ^ 0x34 = 0x27
	got := WritePayload([]byte{0x12, 0x34})
	want := []byte{0x01, 0x12, 0x34, 0x27}
	if len(got) != len(want) {
		t.Fatalf("WritePayload = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("WritePayload = %#v, want %#v", got, want)
		}
	}
}
