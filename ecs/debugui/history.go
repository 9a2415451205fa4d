package debugui

import "time"

// FrameHistory keeps the most recent frame times, in milliseconds, in a
// ring the frame time graph can plot directly.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, frames)}
}

// Tick records the time since the previous Tick. The first call only starts
// the clock.
func (h *FrameHistory) Tick(now time.Time) {
	if !h.last.IsZero() {
		h.Add(now.Sub(h.last))
	}
	h.last = now
}

func (h *FrameHistory) Add(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded samples, or 0 before any.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples {
		total += s
	}
	return total / float32(h.filled)
}

func (h *FrameHistory) Samples() []float32 {
	return h.samples
}
