package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// IDField is the key every record is addressed by.
const IDField = "id"

// Record is a single schema-less entity within a collection.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new record holding the fields of r overlaid with the fields of patch.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// StringID returns the record id as a string. Numeric ids are formatted
// without an exponent so that "7" and 7 address the same record.
func (r Record) StringID() (string, bool) {
	return AsString(r[IDField])
}

// IntID returns the record id as an integer. Only integral numbers qualify.
func (r Record) IntID() (int, bool) {
	return AsInt(r[IDField])
}

// Number returns the named field as a float64 if it holds a number.
func (r Record) Number(field string) (float64, bool) {
	return AsFloat(r[field])
}

// AsString converts a decoded JSON scalar into an identifier string.
func AsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// AsInt converts a decoded JSON number into an int.
func AsInt(v any) (int, bool) {
	f, ok := AsFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// AsFloat converts a decoded JSON number into a float64.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}
