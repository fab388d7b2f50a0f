package content

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// record is one loosely typed JSON object from the gateway. Readers take the
// default first, then the accepted keys in order of preference; a key that is
// missing, null or of an unusable type falls through to the next.
type record map[string]any

func (r record) value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r record) String(def string, keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return def
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return def
}

func (r record) Bool(def bool, keys ...string) bool {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	}
	return def
}

func (r record) Float(def float64, keys ...string) float64 {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && !math.IsNaN(f) {
			return f
		}
	}
	return def
}

func (r record) Int(def int, keys ...string) int {
	f := r.Float(math.NaN(), keys...)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

func (r record) Time(def time.Time, keys ...string) time.Time {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t
		}
	}
	return def
}

func (r record) Object(keys ...string) record {
	v, ok := r.value(keys...)
	if !ok {
		return record{}
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return record{}
}

// Objects returns the object elements of an array field; ok is false when
// the field is absent or not an array.
func (r record) Objects(keys ...string) ([]record, bool) {
	v, ok := r.value(keys...)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]record, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out, true
}

func (r record) Strings(keys ...string) []string {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []any:
		var out []string
		for _, el := range t {
			if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
