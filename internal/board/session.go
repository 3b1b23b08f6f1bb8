package board

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Session is the transient record of one drag gesture.
type Session struct {
	// ID correlates log lines of one gesture.
	ID ulid.ULID
	// Active is the dragged container or item.
	Active ID
	// Over is the target of the latest drag-over.
	Over ID

	origin   *Board
	lastOver ID
}

func newSession(active ID, origin *Board, now time.Time) *Session {
	return &Session{
		ID:     ulid.MustNew(ulid.Timestamp(now), rand.Reader),
		Active: active,
		origin: origin,
	}
}
