package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted ISO 8601 date formats, most specific first.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// decimalRegex matches plain decimal notation. Hex floats, underscores, Inf and NaN are left out.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// coerce converts raw to the Go type backing ft. Only unambiguous conversions are made:
// numeric strings to numbers, "true"/"false" to booleans, ISO dates to time.Time.
func coerce(ft FieldType, raw interface{}) (interface{}, bool) {
	switch ft {
	case TypeString, TypeUUID, TypeURI:
		s, ok := raw.(string)
		return strings.TrimSpace(s), ok
	case TypeEmail:
		s, ok := raw.(string)
		return strings.ToLower(strings.TrimSpace(s)), ok
	case TypeNumber:
		return toNumber(raw)
	case TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, true
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		}
		return nil, false
	case TypeDate:
		return toDate(raw)
	case TypeArray:
		switch v := raw.(type) {
		case []interface{}:
			return v, true
		case []string:
			items := make([]interface{}, 0, len(v))
			for _, s := range v {
				items = append(items, s)
			}
			return items, true
		}
		return nil, false
	case TypeObject:
		v, ok := raw.(map[string]interface{})
		return v, ok
	}
	return nil, false
}

func toNumber(raw interface{}) (interface{}, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, false
		}
		n = f
	case string:
		s := strings.TrimSpace(v)
		if !decimalRegex.MatchString(s) {
			return nil, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		n = f
	default:
		return nil, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, false
	}
	return n, true
}

func toDate(raw interface{}) (interface{}, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	}
	return nil, false
}
