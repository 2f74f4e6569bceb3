package model

import (
	"fmt"
	"time"
)

// Countdown is the display state derived from the active cycle and the
// elapsed seconds since it started.
type Countdown struct {
	Active           bool
	TotalSeconds     int
	RemainingSeconds int
	MinutesDigits    [2]string
	SecondsDigits    [2]string
}

// Present derives the countdown for a cycle. Remaining time is clamped at
// zero; a nil cycle renders as 00:00.
func Present(active *Cycle, elapsedSeconds int) Countdown {
	out := Countdown{}
	if active != nil {
		out.Active = true
		out.TotalSeconds = active.TotalSeconds()
		if elapsedSeconds < 0 {
			elapsedSeconds = 0
		}
		out.RemainingSeconds = out.TotalSeconds - elapsedSeconds
		if out.RemainingSeconds < 0 {
			out.RemainingSeconds = 0
		}
	}
	minutes := fmt.Sprintf("%02d", out.RemainingSeconds/60)
	seconds := fmt.Sprintf("%02d", out.RemainingSeconds%60)
	out.MinutesDigits = [2]string{minutes[0:1], minutes[1:2]}
	out.SecondsDigits = [2]string{seconds[0:1], seconds[1:2]}
	return out
}

func (c Countdown) String() string {
	return c.MinutesDigits[0] + c.MinutesDigits[1] + ":" + c.SecondsDigits[0] + c.SecondsDigits[1]
}

func (c Countdown) Title() string {
	return c.String()
}

func (c Countdown) Progress() float64 {
	if c.TotalSeconds <= 0 {
		return 0
	}
	p := float64(c.TotalSeconds-c.RemainingSeconds) / float64(c.TotalSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (c Countdown) Finished() bool {
	return c.Active && c.RemainingSeconds == 0
}

// ElapsedSince returns whole seconds between start and now, truncated and
// never negative.
func ElapsedSince(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func FormatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
