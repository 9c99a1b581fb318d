package recorder

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldstone-labs/trace-exporter/pkg/traceevent"
)

const epsilon = 2.220446049250313e-16 // math.Nextafter(1, 2) - 1, matching Rust's f64::EPSILON

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// unitConversion describes how a histogram's Unit maps LessThan thresholds
// into base units, and how a base-unit value is converted back for
// emission. milliseconds -> microseconds is the only non-trivial case;
// bytes and count pass through unchanged in both directions. Unknown units
// are not present in this map and cause the recorder to silently skip the
// event; supporting a new unit means adding its entry here.
type unitConversion struct {
	toBase      float64 // multiply a LessThan threshold by this to reach base units
	emitDivisor float64 // divide a base-unit value by this to reach the emitted value
}

var unitConversions = map[string]unitConversion{
	"milliseconds": {toBase: 1000.0, emitDivisor: 1_000_000.0},
	"bytes":        {toBase: 1.0, emitDivisor: 1.0},
	"count":        {toBase: 1.0, emitDivisor: 1.0},
}

// HistogramBucket is one bucket of a pre-aggregated histogram, expressed in
// base units with its cumulative count at the upper bound.
type HistogramBucket struct {
	LowerBound      uint64
	UpperBound      uint64
	Count           uint64
	CumulativeCount uint64
}

// HistogramPercentile matches events whose Type=Histogram and whose
// Group/Op/Unit all match the configured values, collects LessThan*
// buckets, gap-fills missing buckets by geometric doubling, and emits the
// configured percentile under an exponential-tail assumption within the
// bucket it falls in.
type HistogramPercentile struct {
	Group      string
	Op         string
	Percentile float64
	Gauge      *prometheus.GaugeVec
}

// NewHistogramPercentile builds a HistogramPercentile recorder and its
// backing gauge vector.
func NewHistogramPercentile(group, op string, percentile float64, gaugeName, description string) *HistogramPercentile {
	return &HistogramPercentile{
		Group:      group,
		Op:         op,
		Percentile: percentile,
		Gauge:      newGaugeVec(gaugeName, description),
	}
}

func (h *HistogramPercentile) Record(event traceevent.Event, labels traceevent.Labels) error {
	traceType, ok := event.String("Type")
	if !ok {
		return fieldErrorf("Type", "missing Type field")
	}
	if traceType != "Histogram" {
		return nil
	}

	group, ok := event.String("Group")
	if !ok {
		return fieldErrorf("Group", "missing Group field")
	}
	if group != h.Group {
		return nil
	}

	op, ok := event.String("Op")
	if !ok {
		return fieldErrorf("Op", "missing Op field")
	}
	if op != h.Op {
		return nil
	}

	unit, ok := event.String("Unit")
	if !ok {
		return fieldErrorf("Unit", "missing Unit field")
	}
	conversion, known := unitConversions[unit]
	if !known {
		return nil
	}

	rawTotal, ok := event.String("TotalCount")
	if !ok {
		return fieldErrorf("TotalCount", "missing TotalCount field")
	}
	totalCount, err := strconv.ParseUint(rawTotal, 10, 64)
	if err != nil {
		return fieldErrorf("TotalCount", "invalid TotalCount field: %w", err)
	}
	if totalCount == 0 {
		return nil
	}

	thresholds := map[uint64]uint64{}
	for key, v := range event {
		suffix, ok := strings.CutPrefix(key, "LessThan")
		if !ok {
			continue
		}
		thresholdValue, err := strconv.ParseFloat(suffix, 64)
		if err != nil {
			return fieldErrorf(key, "invalid histogram bucket key: %w", err)
		}
		s, ok := v.(string)
		if !ok {
			return fieldErrorf(key, "histogram bucket value must be a string")
		}
		count, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fieldErrorf(key, "invalid histogram bucket count: %w", err)
		}
		baseUpper := uint64(thresholdValue * conversion.toBase)
		thresholds[baseUpper] = count
	}

	if len(thresholds) == 0 {
		return nil
	}

	buckets := buildBuckets(thresholds)
	value, ok := interpolateExponentialPercentile(buckets, totalCount, h.Percentile)
	if !ok {
		return nil
	}

	h.Gauge.WithLabelValues(labels.Values()...).Set(value / conversion.emitDivisor)
	return nil
}

// Collectors returns the recorder's backing gauge vector.
func (h *HistogramPercentile) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.Gauge}
}

// buildBuckets sorts the observed (upperBound -> count) thresholds and
// gap-fills any missing buckets by doubling the expected upper bound, since
// the database's histogram buckets double geometrically and an entry whose
// count is zero is simply omitted from the trace event.
func buildBuckets(thresholds map[uint64]uint64) []HistogramBucket {
	upperBounds := make([]uint64, 0, len(thresholds))
	for ub := range thresholds {
		upperBounds = append(upperBounds, ub)
	}
	sort.Slice(upperBounds, func(i, j int) bool { return upperBounds[i] < upperBounds[j] })

	var buckets []HistogramBucket
	var cumulative uint64
	expectedUpper := upperBounds[0]

	for _, upperBound := range upperBounds {
		for expectedUpper < upperBound {
			buckets = append(buckets, HistogramBucket{
				LowerBound:      expectedUpper / 2,
				UpperBound:      expectedUpper,
				Count:           0,
				CumulativeCount: cumulative,
			})
			next := expectedUpper * 2
			if next <= expectedUpper {
				break
			}
			expectedUpper = next
		}

		count := thresholds[upperBound]
		cumulative += count
		buckets = append(buckets, HistogramBucket{
			LowerBound:      upperBound / 2,
			UpperBound:      upperBound,
			Count:           count,
			CumulativeCount: cumulative,
		})

		next := upperBound * 2
		if next > upperBound {
			expectedUpper = next
		} else {
			expectedUpper = upperBound
		}
	}

	return buckets
}

// interpolateExponentialPercentile finds the bucket containing the target
// rank and interpolates within it under the assumption that samples inside
// the bucket are exponentially distributed, anchored so the bucket's own
// CDF matches its cumulative count. This lets a handful of coarse
// pre-aggregated buckets (the database never reports raw samples) produce
// a smooth, monotonic-in-p percentile estimate instead of a step function.
func interpolateExponentialPercentile(buckets []HistogramBucket, totalCount uint64, percentile float64) (float64, bool) {
	if len(buckets) == 0 || totalCount == 0 {
		return 0, false
	}

	percentile = clamp(percentile, 0.0, 1.0)
	totalCountF := float64(totalCount)

	if percentile >= 1.0 {
		last := buckets[len(buckets)-1]
		return float64(last.UpperBound), true
	}

	targetRank := percentile * totalCountF
	bucketIndex := len(buckets) - 1

	for i, bucket := range buckets {
		if bucket.Count == 0 {
			continue
		}
		if float64(bucket.CumulativeCount) >= targetRank {
			bucketIndex = i
			break
		}
	}

	bucket := buckets[bucketIndex]
	lower := float64(bucket.LowerBound)
	upper := float64(bucket.UpperBound)

	if upper <= 0.0 {
		return upper, true
	}

	bucketCDF := float64(bucket.CumulativeCount) / totalCountF
	lowerCumulative := bucket.CumulativeCount - bucket.Count
	if bucket.Count > bucket.CumulativeCount {
		lowerCumulative = 0
	}
	prevCDF := float64(lowerCumulative) / totalCountF
	bucketMass := float64(bucket.Count) / totalCountF

	if bucketMass <= 0.0 {
		return upper, true
	}
	if percentile <= prevCDF {
		return lower, true
	}

	var lambda float64
	if bucketCDF >= 1.0 {
		if lower > 0.0 && prevCDF < 1.0 {
			lambda = -math.Log(1.0-prevCDF) / lower
		} else {
			lambda = math.Inf(1)
		}
	} else {
		lambda = -math.Log(1.0-bucketCDF) / upper
	}

	if math.IsInf(lambda, 0) || math.IsNaN(lambda) || lambda <= 0.0 {
		return upper, true
	}

	relativePercentile := clamp((percentile-prevCDF)/bucketMass, 0.0, 1.0-epsilon)

	expNegLambdaLower := math.Exp(-lambda * lower)
	expNegLambdaUpper := math.Exp(-lambda * upper)

	denom := expNegLambdaLower - expNegLambdaUpper
	if denom <= 0.0 {
		return upper, true
	}

	target := expNegLambdaLower - relativePercentile*denom
	if target <= 0.0 {
		return upper, true
	}

	value := -math.Log(target) / lambda
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return upper, true
	}

	return clamp(value, lower, upper), true
}
