package traceevent

import (
	"math"
	"strconv"
	"time"
)

// ParseTime parses a trace event's Time field — seconds since the Unix
// epoch, as a decimal string — into a time.Time. The exporter only ever
// compares these values to each other (for window bounds), never to
// wall-clock time.
func ParseTime(raw string) (time.Time, error) {
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, err
	}
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*1e9)), nil
}
