package input

import (
	"testing"

	"github.com/jezek/xgb"
)

func TestXIVersionRequestEncoding(t *testing.T) {
	buf := xiVersionRequest(131, 2, 0)
	if len(buf) != 8 {
		t.Fatalf("request is %d bytes, want 8", len(buf))
	}
	if buf[0] != 131 {
		t.Errorf("major opcode = %d, want 131", buf[0])
	}
	if buf[1] != xiOpQueryVersion {
		t.Errorf("minor opcode = %d, want %d", buf[1], xiOpQueryVersion)
	}
	if got := xgb.Get16(buf[2:]); got != 2 {
		t.Errorf("length field = %d four-byte units, want 2", got)
	}
	if xgb.Get16(buf[4:]) != 2 || xgb.Get16(buf[6:]) != 0 {
		t.Errorf("client version = %d.%d, want 2.0",
			xgb.Get16(buf[4:]), xgb.Get16(buf[6:]))
	}
}

func TestParseXIVersionReply(t *testing.T) {
	buf := make([]byte, 32)
	buf[0] = 1
	xgb.Put16(buf[8:], 2)
	xgb.Put16(buf[10:], 4)

	major, minor, err := parseXIVersionReply(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if major != 2 || minor != 4 {
		t.Errorf("got %d.%d, want 2.4", major, minor)
	}
}

func TestParseXIVersionReplyMalformed(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"short", make([]byte, 4)},
		{"not a reply", make([]byte, 32)},
		{"empty", nil},
	}
	for _, tt := range tests {
		if _, _, err := parseXIVersionReply(tt.buf); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
