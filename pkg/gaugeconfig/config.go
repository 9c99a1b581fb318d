// Package gaugeconfig loads the declarative TOML file that binds trace
// event fields to Prometheus gauges. It is pure parsing and expansion: it
// has no knowledge of prometheus or of how a Definition becomes a running
// recorder (that's pkg/registry's job).
package gaugeconfig

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Kind identifies which recorder variant a Definition describes.
type Kind int

const (
	Simple Kind = iota
	CounterTotal
	CounterRate
	ElapsedRate
	HistogramPercentile
	SlowTask
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple_gauge"
	case CounterTotal:
		return "counter_total_gauge"
	case CounterRate:
		return "counter_rate_gauge"
	case ElapsedRate:
		return "elapsed_rate_gauge"
	case HistogramPercentile:
		return "histogram_percentile_gauge"
	case SlowTask:
		return "slow_task_counter_gauge"
	default:
		return "unknown"
	}
}

// Definition is one fully expanded gauge configuration entry, ready to be
// turned into a recorder. Standard kinds (Simple, CounterTotal,
// CounterRate, ElapsedRate) populate TraceType/FieldName/GaugeName/
// Description. HistogramPercentile populates Group/Op/Percentile/GaugeName/
// Description instead, already expanded to one Definition per percentile.
// SlowTask populates ThresholdMS, plus a GaugeName and Description derived
// from it (process_slow_task_{ms}_ms) rather than configured ones.
type Definition struct {
	Kind Kind

	TraceType   string
	FieldName   string
	GaugeName   string
	Description string

	Group      string
	Op         string
	Percentile float64

	ThresholdMS uint64
}

var standardSections = map[string]Kind{
	"simple_gauge":        Simple,
	"counter_total_gauge": CounterTotal,
	"counter_rate_gauge":  CounterRate,
	"elapsed_rate_gauge":  ElapsedRate,
}

const histogramSection = "histogram_percentile_gauge"
const slowTaskSection = "slow_task_counter_gauge"

// Load reads and expands the gauge config TOML file at path. An empty file
// returns no definitions, successfully. A file with no recognized section
// is an error, as is a malformed config or an out-of-range percentile.
func Load(path string) ([]Definition, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gauge config file %s: %w", path, err)
	}

	if strings.TrimSpace(string(contents)) == "" {
		return nil, nil
	}

	var raw map[string]any
	if err := toml.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse gauge config file %s: %w", path, err)
	}

	return parseDefinitions(raw, path)
}

func parseDefinitions(raw map[string]any, path string) ([]Definition, error) {
	var defs []Definition
	recognizedAny := false

	for section, kind := range standardSections {
		entries, present := raw[section]
		if !present {
			continue
		}
		recognizedAny = true

		array, ok := entries.([]any)
		if !ok {
			return nil, fmt.Errorf("expected %s section to be an array in %s", section, path)
		}

		for index, entryValue := range array {
			entry, ok := entryValue.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("failed to parse %s entry %d in %s: not a table", section, index, path)
			}

			traceType, err := requireString(entry, "trace_type")
			if err != nil {
				return nil, entryErr(section, index, path, err)
			}
			gaugeName, err := requireString(entry, "gauge_name")
			if err != nil {
				return nil, entryErr(section, index, path, err)
			}
			fieldName, err := requireString(entry, "field_name")
			if err != nil {
				return nil, entryErr(section, index, path, err)
			}
			description, err := requireString(entry, "description")
			if err != nil {
				return nil, entryErr(section, index, path, err)
			}

			defs = append(defs, Definition{
				Kind:        kind,
				TraceType:   traceType,
				FieldName:   fieldName,
				GaugeName:   gaugeName,
				Description: description,
			})
		}
	}

	if entries, present := raw[histogramSection]; present {
		recognizedAny = true

		array, ok := entries.([]any)
		if !ok {
			return nil, fmt.Errorf("expected %s section to be an array in %s", histogramSection, path)
		}

		for index, entryValue := range array {
			entry, ok := entryValue.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("failed to parse %s entry %d in %s: not a table", histogramSection, index, path)
			}

			group, err := requireString(entry, "group")
			if err != nil {
				return nil, entryErr(histogramSection, index, path, err)
			}
			op, err := requireString(entry, "op")
			if err != nil {
				return nil, entryErr(histogramSection, index, path, err)
			}
			baseGaugeName, err := requireString(entry, "gauge_name")
			if err != nil {
				return nil, entryErr(histogramSection, index, path, err)
			}
			baseDescription, err := requireString(entry, "description")
			if err != nil {
				return nil, entryErr(histogramSection, index, path, err)
			}

			percentiles, err := requirePercentiles(entry)
			if err != nil {
				return nil, entryErr(histogramSection, index, path, err)
			}

			total := len(percentiles)
			for _, p := range percentiles {
				gaugeName := baseGaugeName
				description := baseDescription
				if total > 1 {
					gaugeName = fmt.Sprintf("%s_%s", baseGaugeName, percentileSuffix(p))
					description = fmt.Sprintf("%s (p%s)", baseDescription, percentileDisplay(p))
				}

				defs = append(defs, Definition{
					Kind:        HistogramPercentile,
					Group:       group,
					Op:          op,
					Percentile:  p,
					GaugeName:   gaugeName,
					Description: description,
				})
			}
		}
	}

	if entries, present := raw[slowTaskSection]; present {
		recognizedAny = true

		array, ok := entries.([]any)
		if !ok {
			return nil, fmt.Errorf("expected %s section to be an array in %s", slowTaskSection, path)
		}

		for index, entryValue := range array {
			entry, ok := entryValue.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("failed to parse %s entry %d in %s: not a table", slowTaskSection, index, path)
			}

			raw, ok := entry["threshold_ms"]
			if !ok {
				return nil, entryErr(slowTaskSection, index, path, fmt.Errorf("missing field %q", "threshold_ms"))
			}
			asFloat, err := toFloat(raw)
			if err != nil {
				return nil, entryErr(slowTaskSection, index, path, fmt.Errorf("field %q: %w", "threshold_ms", err))
			}
			if asFloat < 0 {
				return nil, entryErr(slowTaskSection, index, path, fmt.Errorf("field %q must not be negative", "threshold_ms"))
			}
			thresholdMS := uint64(asFloat)

			defs = append(defs, Definition{
				Kind:        SlowTask,
				ThresholdMS: thresholdMS,
				GaugeName:   fmt.Sprintf("process_slow_task_%d_ms", thresholdMS),
				Description: fmt.Sprintf("Counter of slow tasks longer than %d ms", thresholdMS),
			})
		}
	}

	if !recognizedAny {
		return nil, fmt.Errorf("gauge config file %s did not contain any recognized sections", path)
	}

	return defs, nil
}

func entryErr(section string, index int, path string, cause error) error {
	return fmt.Errorf("failed to parse %s entry %d in %s: %w", section, index, path, cause)
}

func requireString(entry map[string]any, field string) (string, error) {
	v, ok := entry[field]
	if !ok {
		return "", fmt.Errorf("missing field %q", field)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", field)
	}
	return s, nil
}

func requirePercentiles(entry map[string]any) ([]float64, error) {
	v, ok := entry["percentiles"]
	if !ok {
		return nil, fmt.Errorf("missing field %q", "percentiles")
	}
	array, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q must be an array", "percentiles")
	}
	if len(array) == 0 {
		return nil, fmt.Errorf("percentiles list cannot be empty")
	}

	percentiles := make([]float64, 0, len(array))
	for _, item := range array {
		p, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("percentiles: %w", err)
		}
		if err := validatePercentile(p); err != nil {
			return nil, err
		}
		percentiles = append(percentiles, p)
	}
	return percentiles, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func validatePercentile(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("percentile must be finite")
	}
	if p < 0.0 || p > 1.0 {
		return fmt.Errorf("percentile %v must be between 0.0 and 1.0", p)
	}
	return nil
}

// percentileDisplay formats a percentile as a percentage string with
// trailing zeros trimmed, e.g. 0.995 -> "99.5", 0.5 -> "50".
func percentileDisplay(percentile float64) string {
	value := strconv.FormatFloat(percentile*100, 'f', 6, 64)

	for strings.Contains(value, ".") && strings.HasSuffix(value, "0") {
		value = value[:len(value)-1]
	}
	value = strings.TrimSuffix(value, ".")

	return value
}

// percentileSuffix produces a gauge name suffix such as "p99_5" from a
// percentile value.
func percentileSuffix(percentile float64) string {
	return "p" + strings.ReplaceAll(percentileDisplay(percentile), ".", "_")
}
