package calendarsync

import "fmt"

// SyncError captures a per-connection failure against an external calendar.
// On the read path it is recovered locally: the availability computation
// proceeds with the remaining connections and surfaces the failure as
// result metadata.
type SyncError struct {
	ConnectionID string
	Op           string // "refresh", "fetch" or "writeback"
	Err          error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("calendar sync %s failed for connection %s: %v", e.Op, e.ConnectionID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
