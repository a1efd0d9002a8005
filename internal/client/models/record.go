// Package models defines the client-side data models of the admin client.
package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IDField is the wire name of every record's backend-assigned identifier.
const IDField = "id"

// Record is one backend resource record: named fields mapped to scalar
// values as decoded from JSON (numbers are kept as json.Number).
type Record map[string]any

// ID returns the record identifier in text form, or "" when absent.
func (r Record) ID() string {
	return r.Text(IDField)
}

// Text renders a field for display and searching. Missing and null values
// render as "". Numbers keep their wire representation.
func (r Record) Text(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	return ValueText(v)
}

// ValueText renders a decoded JSON scalar as text.
func ValueText(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the field names of r in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the record as "k=v" pairs in key order.
func (r Record) String() string {
	parts := make([]string, 0, len(r))
	for _, k := range r.Keys() {
		parts = append(parts, k+"="+r.Text(k))
	}
	return strings.Join(parts, " ")
}
