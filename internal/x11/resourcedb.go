package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jezek/xgb/xproto"
)

// ReloadResources re-reads the RESOURCE_MANAGER property from the root
// window and rebuilds the key/value table. Missing or malformed properties
// clear the table; callers observe an empty database rather than stale
// entries from before the change.
func (c *Connection) ReloadResources() {
	blob := c.resourceBlob()

	c.rdbMu.Lock()
	defer c.rdbMu.Unlock()

	c.rdb = make(map[string]string)
	for _, line := range strings.Split(blob, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if key == "" {
			continue
		}
		c.rdb[key] = val
	}
}

// Resource looks up a key in the resource database. The second return
// reports whether the key is present.
func (c *Connection) Resource(key string) (string, bool) {
	c.rdbMu.Lock()
	defer c.rdbMu.Unlock()
	v, ok := c.rdb[key]
	return v, ok
}

// ParseColor parses a resource-database colour of the "#rgb" or "#rrggbb"
// form into a packed 0xRRGGBB value. Named colours would need a server
// lookup and are not accepted.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("unsupported colour %q", s)
	}
	hex := s[1:]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad colour %q: %w", s, err)
	}
	switch len(hex) {
	case 3:
		r := uint32(v>>8&0xf) * 0x11
		g := uint32(v>>4&0xf) * 0x11
		b := uint32(v&0xf) * 0x11
		return r<<16 | g<<8 | b, nil
	case 6:
		return uint32(v), nil
	}
	return 0, fmt.Errorf("unsupported colour %q", s)
}

func (c *Connection) resourceBlob() string {
	conn := c.XUtil.Conn()
	reply, err := xproto.GetProperty(conn, false, c.Root,
		xproto.AtomResourceManager, xproto.AtomString, 0, (1<<32-1)/4).Reply()
	if err != nil || reply == nil {
		return ""
	}
	if reply.Format != 8 || reply.ValueLen == 0 {
		return ""
	}
	return string(reply.Value[:reply.ValueLen])
}
