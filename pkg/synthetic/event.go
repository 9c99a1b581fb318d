package synthetic

import (
	"encoding/json"
	"strconv"
	"time"
)

// Event builds a fake trace log line the same shape a real database
// process would emit: a Time/Type/Machine core plus whatever detail
// fields the caller attaches.
type Event struct {
	traceType string
	fields    map[string]string
}

// NewEvent starts a fake event of the given trace type.
func NewEvent(traceType string) Event {
	return Event{traceType: traceType, fields: make(map[string]string)}
}

// Detail attaches a string-valued field, matching the fact that every
// trace log field is textual even when it encodes a number. It returns
// the receiver so calls can be chained.
func (e Event) Detail(key, value string) Event {
	e.fields[key] = value
	return e
}

// Line renders the event as one JSON object, ready to append to a
// trace.*.json file with a trailing newline.
func (e Event) Line() ([]byte, error) {
	dict := map[string]string{
		"Time":    strconv.FormatFloat(float64(time.Now().UnixNano())/1e9, 'f', 6, 64),
		"Type":    e.traceType,
		"Machine": "127.0.0.1:4000",
	}
	for k, v := range e.fields {
		dict[k] = v
	}
	return json.Marshal(dict)
}
