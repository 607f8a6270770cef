package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The backend wraps payloads inconsistently: the same kind of list may
// arrive as a bare array or as {"data": [...]}, sometimes with pagination
// keys next to data. Entities may arrive bare or as {"data": {...}}.

const maxEnvelopeDepth = 2

// DecodeList returns the ordered entities of a list response whichever
// envelope was used. An empty or null body is an empty list.
func DecodeList[T any](resp *Response) ([]T, error) {
	items, err := decodeList[T](resp.Body, 0)
	if err != nil {
		return nil, resp.malformed(err)
	}
	return items, nil
}

func decodeList[T any](body []byte, depth int) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}

	switch body[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		if depth >= maxEnvelopeDepth {
			return nil, fmt.Errorf("list nested deeper than %d envelopes", maxEnvelopeDepth)
		}
		data, ok, err := dataField(body)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("object without data field where a list was expected")
		}
		return decodeList[T](data, depth+1)
	default:
		return nil, fmt.Errorf("unexpected %q where a list was expected", body[0])
	}
}

// DecodeItem returns a single entity, unwrapping {"data": {...}} when the
// object has no fields of its own beside the envelope.
func DecodeItem[T any](resp *Response) (T, error) {
	var item T

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 || body[0] != '{' {
		return item, resp.malformed(errors.New("expected a JSON object"))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return item, resp.malformed(err)
	}
	if data, ok := fields["data"]; ok && !hasEntityKeys(fields) {
		data = bytes.TrimSpace(data)
		if len(data) > 0 && data[0] == '{' {
			body = data
		}
	}

	if err := json.Unmarshal(body, &item); err != nil {
		return item, resp.malformed(err)
	}
	return item, nil
}

func hasEntityKeys(fields map[string]json.RawMessage) bool {
	_, hasID := fields["id"]
	return hasID
}

func dataField(body []byte) (json.RawMessage, bool, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, err
	}
	data, ok := envelope["data"]
	return data, ok, nil
}
