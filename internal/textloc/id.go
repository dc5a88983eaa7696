package textloc

import (
	"fmt"
	"math"
)

// Counter is a monotonic node-id allocator, scoped to a single compile so
// that concurrent compiles in the same process never contend on a shared
// global. Ids only need to be monotonic within one compile.
type Counter struct {
	next int32
}

// NewCounter returns a counter whose first allocation is id 1 (id 0 is
// reserved to mean "no node" in diagnostic output).
func NewCounter() *Counter {
	return &Counter{next: 1}
}

// Next allocates the next id. Counter exhaustion is a terminal failure, so
// it panics on overflow rather than wrapping or returning an error.
func (c *Counter) Next() int {
	if c.next == math.MaxInt32 {
		panic("textloc: id counter exhausted")
	}
	id := c.next
	c.next++
	return int(id)
}

// IDString renders a compact diagnostic tag for log lines, e.g. "#42@3.1-3.4".
func IDString(id int, loc Loc) string {
	return fmt.Sprintf("#%d@%s", id, loc)
}
