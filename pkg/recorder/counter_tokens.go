package recorder

import (
	"strconv"
	"strings"
)

// parseCounterTokens splits a multi-valued counter field into its three
// whitespace-separated components: instantaneous rate, cumulative count
// within the current reporting window, and cumulative count since process
// start. Fewer than three tokens is malformed input.
func parseCounterTokens(raw string) (instantaneous, cumulativeInWindow, cumulativeTotal float64, err error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 3 {
		return 0, 0, 0, strconvErrorf(raw)
	}

	instantaneous, err = strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	cumulativeInWindow, err = strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	cumulativeTotal, err = strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return instantaneous, cumulativeInWindow, cumulativeTotal, nil
}

func strconvErrorf(raw string) error {
	return &malformedCounterError{raw: raw}
}

type malformedCounterError struct {
	raw string
}

func (e *malformedCounterError) Error() string {
	return "malformed counter value " + strconv.Quote(e.raw) + ": expected three whitespace-separated tokens"
}
