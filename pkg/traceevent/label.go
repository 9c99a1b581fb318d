package traceevent

import (
	"sort"
	"strings"
)

// Label is one name/value pair attached to a recorded sample.
type Label struct {
	Name  string
	Value string
}

// Labels is an ordered set of labels describing one recorded sample's
// identity. Order does not matter for equality purposes; use Key to compare.
type Labels []Label

// Key canonicalizes a label set into a single string: labels sorted by name,
// then value, joined as name=value pairs. Two label sets with the same
// (name, value) pairs in any order produce the same key. Used to bucket
// samples by identity in the rolling-window smoother.
func (l Labels) Key() string {
	sorted := make(Labels, len(l))
	copy(sorted, l)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})

	var b strings.Builder
	for i, lbl := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(lbl.Name)
		b.WriteByte('=')
		b.WriteString(lbl.Value)
	}
	return b.String()
}

// Names returns the label names in the order they appear, for constructing
// a prometheus vector's label dimensions.
func (l Labels) Names() []string {
	names := make([]string, len(l))
	for i, lbl := range l {
		names[i] = lbl.Name
	}
	return names
}

// Values returns the label values in the order they appear, suitable for
// prometheus.GaugeVec.WithLabelValues (which requires values ordered to
// match the vector's declared label names).
func (l Labels) Values() []string {
	values := make([]string, len(l))
	for i, lbl := range l {
		values[i] = lbl.Value
	}
	return values
}
