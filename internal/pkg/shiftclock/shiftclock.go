// Package shiftclock maps a wall-clock instant to the shift window of a
// post it falls in.
package shiftclock

import (
	"strconv"
	"strings"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

// Resolve returns the active window of the post containing the local
// wall-clock time of t, and whether any was found. Windows whose end is
// earlier than their start wrap through midnight. A false result means
// the instant falls in no active window; callers must treat that
// explicitly rather than defaulting to an arbitrary window.
func Resolve(t time.Time, p post.Post) (post.ShiftWindowID, bool) {
	minute := t.Hour()*60 + t.Minute()

	for _, w := range p.Windows {
		if !w.Active {
			continue
		}
		start, ok := parseClock(w.Start)
		if !ok {
			continue
		}
		end, ok := parseClock(w.End)
		if !ok {
			continue
		}
		if contains(minute, start, end) {
			return w.ID, true
		}
	}
	return "", false
}

// contains checks minute membership in [start, end), wrapping through
// 24:00 when end < start. A zero-length window matches nothing.
func contains(minute, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
