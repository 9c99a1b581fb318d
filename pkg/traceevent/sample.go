package traceevent

import "time"

// Sample is one (time, value) observation fed into the rolling-window
// smoother.
type Sample struct {
	Time  time.Time
	Value float64
}
