package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// positiveInt accepts the numeric-ish values HTTP callers send (JSON numbers,
// numeric strings) and insists on a whole number >= 1.
func positiveInt(field string, v any) (int, error) {
	n, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %v", ErrInvalidArgument, field, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %d", ErrInvalidArgument, field, n)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is out of range: %d", ErrInvalidArgument, field, n)
	}
	return int(n), nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("is required")
	case bool:
		return 0, fmt.Errorf("must be a number, got %t", x)
	case float64:
		return wholeFloat(x)
	case float32:
		return wholeFloat(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, fmt.Errorf("is required")
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("must be a number, got %q", x)
		}
		return wholeFloat(f)
	default:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0, fmt.Errorf("must be a number, got %v", v)
		}
		return n, nil
	}
}

func wholeFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("must be a whole number, got %v", f)
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("is out of range: %v", f)
	}
	return int64(f), nil
}

// zoneLabel renders the optional zone a caller named in a stop request.
// The value only feeds message text, so anything printable is accepted.
func zoneLabel(v any) string {
	if v == nil {
		return ""
	}
	if n, err := toInt64(v); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
