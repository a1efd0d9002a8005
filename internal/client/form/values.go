package form

import (
	"strings"
	"time"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
	"github.com/oceanticsports/oceantic-admin/internal/client/resource"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

// wireLayouts are the timestamp shapes the backend has been seen to send.
var wireLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateTimeLayout,
	DateLayout,
}

// toFormValue maps a decoded wire value to its form text. Timestamps are
// rendered in UTC. Unparseable dates are kept as sent.
func toFormValue(kind resource.Kind, v any) string {
	s := models.ValueText(v)
	if s == "" {
		return ""
	}
	switch kind {
	case resource.KindDate:
		if t, ok := parseWireTime(s); ok {
			return t.Format(DateLayout)
		}
	case resource.KindDateTime:
		if t, ok := parseWireTime(s); ok {
			return t.Format(DateTimeLayout)
		}
	}
	return s
}

func parseWireTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range wireLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
