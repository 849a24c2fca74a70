package input

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/j3din00b/conky/internal/x11"
)

// The wire library carries no generated XInput bindings, and its event
// reader consumes fixed 32-byte packets, so the extension's variable-length
// generic events cannot be transported to the client. The version
// negotiation below is still done, by hand, so the log reports what the
// server offers; event selection itself always uses the core protocol.
const (
	xiExtensionName  = "XInputExtension"
	xiOpQueryVersion = 47
	xiWantMajor      = 2
	xiWantMinor      = 0
)

// queryXIVersion negotiates the XInput2 version with the server. Returns
// the server's version, or an error when the extension is absent, the
// handshake fails, or the server speaks less than 2.0.
func queryXIVersion(conn *x11.Connection) (major, minor uint16, err error) {
	c := conn.XUtil.Conn()

	ext, err := xproto.QueryExtension(c,
		uint16(len(xiExtensionName)), xiExtensionName).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("extension query: %w", err)
	}
	if !ext.Present {
		return 0, 0, fmt.Errorf("%w: server has no %s",
			x11.ErrResourceUnavailable, xiExtensionName)
	}

	cookie := c.NewCookie(true, true)
	c.NewRequest(xiVersionRequest(ext.MajorOpcode, xiWantMajor, xiWantMinor), cookie)
	raw, err := cookie.Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("version negotiation: %w", err)
	}

	major, minor, err = parseXIVersionReply(raw)
	if err != nil {
		return 0, 0, err
	}
	if major < xiWantMajor {
		return major, minor, fmt.Errorf("server speaks XInput %d.%d, need %d.%d",
			major, minor, xiWantMajor, xiWantMinor)
	}
	return major, minor, nil
}

// xiVersionRequest encodes an XIQueryVersion request: extension major
// opcode, minor opcode, request length in 4-byte units, then the version
// the client speaks.
func xiVersionRequest(opcode byte, major, minor uint16) []byte {
	buf := make([]byte, 8)
	buf[0] = opcode
	buf[1] = xiOpQueryVersion
	xgb.Put16(buf[2:], 2)
	xgb.Put16(buf[4:], major)
	xgb.Put16(buf[6:], minor)
	return buf
}

// parseXIVersionReply pulls the negotiated version out of the raw reply
// bytes. The version pair sits right after the standard 8-byte reply head.
func parseXIVersionReply(buf []byte) (major, minor uint16, err error) {
	if len(buf) < 12 || buf[0] != 1 {
		return 0, 0, fmt.Errorf("malformed XIQueryVersion reply (%d bytes)", len(buf))
	}
	return xgb.Get16(buf[8:]), xgb.Get16(buf[10:]), nil
}
