package xid

import (
	"fmt"
	"sync/atomic"
	"time"
)

var counter atomic.Uint64

// New returns an id that is unique for the process lifetime and orders by
// creation time. The process-wide counter breaks ties within the same
// nanosecond, so ids never collide even under rapid generation.
func New(prefix string) string {
	return fmt.Sprintf("%s-%d-%06d", prefix, time.Now().UTC().UnixNano(), counter.Add(1))
}
