package absorption

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-alpha/measure/cepstrum"
	"github.com/cwbudde/algo-alpha/measure/excitation"
	"github.com/cwbudde/algo-alpha/measure/measerr"
)

// Errors returned while parsing and validating settings. Both are tagged
// with measerr.ErrConfiguration.
var (
	ErrMissingSetting   = errors.New("absorption: missing setting")
	ErrMalformedSetting = errors.New("absorption: malformed setting")
)

// keySet records which keys a settings map carried.
type keySet map[string]struct{}

func (k keySet) has(key string) bool {
	_, ok := k[key]
	return ok
}

// parseFields assigns every known key of m to the field bound in fields
// and returns the set of assigned keys plus the unknown entries.
func parseFields(m map[string]string, fields map[string]any) (keySet, map[string]string, error) {
	present := make(keySet, len(m))
	extra := make(map[string]string)

	for _, key := range slices.Sorted(maps.Keys(m)) {
		raw := strings.TrimSpace(m[key])

		dst, ok := fields[key]
		if !ok {
			extra[key] = m[key]
			continue
		}

		if err := parseValue(dst, raw); err != nil {
			return nil, nil, measerr.Wrap(measerr.ErrConfiguration,
				fmt.Errorf("%w: %q = %q: %w", ErrMalformedSetting, key, raw, err))
		}

		present[key] = struct{}{}
	}

	return present, extra, nil
}

// formatFields renders the present fields plus the unknown entries.
func formatFields(present keySet, extra map[string]string, fields map[string]any) map[string]string {
	out := make(map[string]string, len(present)+len(extra))
	maps.Copy(out, extra)

	for key := range present {
		out[key] = formatValue(fields[key])
	}

	return out
}

func parseValue(dst any, raw string) error {
	switch p := dst.(type) {
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("not finite")
		}

		*p = v
	case *int:
		v, err := parseInt(raw)
		if err != nil {
			return err
		}

		*p = v
	case *bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		*p = v
	case *string:
		*p = raw
	case *excitation.SignalType:
		*p = excitation.SignalType(strings.ToLower(raw))
	case *cepstrum.WindowType:
		*p = cepstrum.WindowType(strings.ToLower(raw))
	default:
		return fmt.Errorf("unsupported field %T", dst)
	}

	return nil
}

// parseInt accepts integers, also when written as an integral float
// ("44100.0").
func parseInt(raw string) (int, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.New("not an integer")
	}

	return int(f), nil
}

func formatValue(src any) string {
	switch p := src.(type) {
	case *float64:
		return strconv.FormatFloat(*p, 'g', -1, 64)
	case *int:
		return strconv.Itoa(*p)
	case *bool:
		return strconv.FormatBool(*p)
	case *string:
		return *p
	case *excitation.SignalType:
		return string(*p)
	case *cepstrum.WindowType:
		return string(*p)
	default:
		return ""
	}
}

// require reports every key in keys that present lacks.
func require(stage string, present keySet, keys ...string) error {
	var missing []string

	for _, key := range keys {
		if !present.has(key) {
			missing = append(missing, strconv.Quote(key))
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return measerr.Wrap(measerr.ErrConfiguration,
		fmt.Errorf("%w: %s needs %s", ErrMissingSetting, stage, strings.Join(missing, ", ")))
}
