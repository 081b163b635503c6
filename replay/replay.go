// Package replay provides an optional frame-counter replay/duplicate
// detection plugin. The core dissector never calls this itself (it is
// pure and does no I/O); dissectsvc wires a Checker in as a
// post-dissection step.
package replay

import (
	"context"

	lorawan "github.com/brocaar/lwdissect"
)

// Checker reports whether fcnt has already been seen for devAddr. A
// true result means the frame is a duplicate or a replay and should
// be flagged, not rejected outright — the decision to drop a frame
// stays with the caller.
type Checker interface {
	Seen(ctx context.Context, devAddr lorawan.DevAddr, fcnt uint32) (bool, error)
}
