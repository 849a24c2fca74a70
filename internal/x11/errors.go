package x11

import (
	"fmt"
	"strings"

	"github.com/jezek/xgb"
	log "github.com/sirupsen/logrus"
)

// Diagnostic is a structured description of an asynchronous X protocol
// error. Protocol errors are recorded for diagnostics and the triggering
// request is treated as best-effort-failed; they never terminate the process.
type Diagnostic struct {
	Kind     string
	Sequence uint16
	BadValue uint32
	Message  string
}

// Describe converts a protocol error into a Diagnostic. It owns no server
// resources and performs no allocation bookkeeping beyond the returned value.
func Describe(err xgb.Error) Diagnostic {
	kind := fmt.Sprintf("%T", err)
	if i := strings.LastIndexByte(kind, '.'); i >= 0 {
		kind = kind[i+1:]
	}
	kind = strings.TrimSuffix(kind, "Error")

	return Diagnostic{
		Kind:     kind,
		Sequence: err.SequenceId(),
		BadValue: err.BadId(),
		Message:  err.Error(),
	}
}

// LogError records a protocol error delivered by the server's event stream.
func (c *Connection) LogError(err xgb.Error) {
	d := Describe(err)
	log.WithFields(log.Fields{
		"error":    d.Kind,
		"sequence": d.Sequence,
		"value":    fmt.Sprintf("0x%x", d.BadValue),
	}).Debug("X error: ", d.Message)
}
