package client

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/oceanticsports/oceantic-admin/internal/client/models"
)

// envelopeKeys are the wrappers the backend puts around payloads, in the
// order they are probed.
var envelopeKeys = []string{"data", "detail"}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeList normalises a collection response. Accepted shapes are a bare
// array, or an object whose "data" or "detail" holds an array. A missing or
// null envelope value is an empty collection.
func decodeList(status int, body []byte) ([]models.Record, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, malformed(status, "invalid JSON: %v", err)
	}

	switch value := v.(type) {
	case nil:
		return []models.Record{}, nil
	case []any:
		return toRecords(status, value)
	case map[string]any:
		for _, key := range envelopeKeys {
			inner, ok := value[key]
			if !ok {
				continue
			}
			switch list := inner.(type) {
			case nil:
				return []models.Record{}, nil
			case []any:
				return toRecords(status, list)
			default:
				return nil, malformed(status, "%q is not a list", key)
			}
		}
		return []models.Record{}, nil
	default:
		return nil, malformed(status, "unexpected list response")
	}
}

// decodeRecord normalises a single-record response: {"data": {...}},
// {"detail": {...}} or the bare object. A one-element array in any of those
// positions is unwrapped; an empty one means the record does not exist.
func decodeRecord(status int, body []byte) (models.Record, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, malformed(status, "invalid JSON: %v", err)
	}

	if obj, ok := v.(map[string]any); ok {
		for _, key := range envelopeKeys {
			if inner, ok := obj[key]; ok {
				if _, isObj := inner.(map[string]any); isObj {
					v = inner
					break
				}
				if _, isList := inner.([]any); isList {
					v = inner
					break
				}
			}
		}
	}

	switch value := v.(type) {
	case map[string]any:
		return models.Record(value), nil
	case []any:
		if len(value) == 0 {
			return nil, &APIError{Status: http.StatusNotFound, Kind: KindNotFound, Message: "record not found"}
		}
		obj, ok := value[0].(map[string]any)
		if !ok {
			return nil, malformed(status, "unexpected record response")
		}
		return models.Record(obj), nil
	default:
		return nil, malformed(status, "unexpected record response")
	}
}

func toRecords(status int, items []any) ([]models.Record, error) {
	out := make([]models.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, malformed(status, "list item %d is not an object", i)
		}
		out = append(out, models.Record(obj))
	}
	return out, nil
}
