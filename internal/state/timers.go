package state

import (
	"time"

	"github.com/five82/tote/internal/clock"
)

// timerSlot holds at most one pending timer. Every arm or stop bumps gen, and
// callbacks carry the gen they were armed with, so a callback that lost the
// race with Stop can tell it was superseded.
type timerSlot struct {
	timer clock.Timer
	gen   uint64
}

func (t *timerSlot) arm(c clock.Clock, d time.Duration, fire func(gen uint64)) {
	t.stop()
	gen := t.gen
	t.timer = c.AfterFunc(d, func() { fire(gen) })
}

func (t *timerSlot) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// claim reports whether gen is still current and, if so, marks the slot empty.
func (t *timerSlot) claim(gen uint64) bool {
	if gen != t.gen || t.timer == nil {
		return false
	}
	t.timer = nil
	return true
}

func (t *timerSlot) pending() bool {
	return t.timer != nil
}
