package schema

import (
	"fmt"
	"strconv"
	"time"
)

// CoerceDurationSeconds accepts either a bare integer (seconds) or a
// Go duration string ("1h30m", "90s") and returns the equivalent number of
// whole seconds as an int, the Go stand-in for Flowbber's pytimeparse-backed
// "timedelta" coercion.
func CoerceDurationSeconds(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		if seconds, err := strconv.Atoi(v); err == nil {
			return seconds, nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("unable to parse duration %q", v)
		}
		return int(d.Seconds()), nil
	default:
		return nil, fmt.Errorf("unable to coerce %v to a duration", raw)
	}
}

// CoerceNullableDurationSeconds behaves like CoerceDurationSeconds but passes
// nil through unchanged.
func CoerceNullableDurationSeconds(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return CoerceDurationSeconds(raw)
}
