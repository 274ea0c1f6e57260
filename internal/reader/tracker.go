package reader

import "math"

// Threshold is the scroll distance in pixels that must be covered before
// another progress event is emitted.
const Threshold = 50.0

// ScrollTracker models the surface script that coalesces scroll positions
// into progress events. It is not safe for concurrent use.
type ScrollTracker struct {
	lastTop float64
}

// Start resets the tracker and returns the initial progress event.
func (t *ScrollTracker) Start() Event {
	t.lastTop = 0
	return Event{Kind: EventScroll, Progress: 0}
}

// Observe records a scroll position. It returns an event only when the
// position moved more than Threshold pixels since the last emitted one.
func (t *ScrollTracker) Observe(scrollTop, scrollHeight, viewport float64) (Event, bool) {
	if math.Abs(scrollTop-t.lastTop) <= Threshold {
		return Event{}, false
	}
	t.lastTop = scrollTop
	return Event{Kind: EventScroll, Progress: Progress(scrollTop, scrollHeight, viewport)}, true
}

// Progress converts a scroll position into a fraction of the scrollable
// distance. Content that fits the viewport reports 0.
func Progress(scrollTop, scrollHeight, viewport float64) float64 {
	scrollable := scrollHeight - viewport
	if scrollable <= 0 {
		return 0
	}
	return math.Max(0, math.Min(scrollTop/scrollable, 1))
}
