package domain

import "time"

// Session is a server-side record tying an opaque cookie-carried id to an
// authenticated username. Sessions live only in process memory; a restart
// invalidates all of them.
type Session struct {
	ID            string
	Username      string
	EstablishedAt time.Time
}
