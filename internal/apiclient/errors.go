package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a failed call.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindTimeout
	KindAuthentication
	KindValidation
	KindConflict
	KindNotFound
	KindBadRequest
	KindServer
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindServer:
		return "server"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. ErrNetwork also matches timeouts.
var (
	ErrNetwork           = errors.New("network failure")
	ErrTimeout           = errors.New("request timed out")
	ErrAuthentication    = errors.New("authentication failed")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

var kindSentinels = map[Kind]error{
	KindNetwork:           ErrNetwork,
	KindTimeout:           ErrTimeout,
	KindAuthentication:    ErrAuthentication,
	KindValidation:        ErrValidation,
	KindConflict:          ErrConflict,
	KindNotFound:          ErrNotFound,
	KindBadRequest:        ErrBadRequest,
	KindServer:            ErrServer,
	KindMalformedResponse: ErrMalformedResponse,
}

// Error is returned for every failed call made through Client.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int // zero when no response was received
	Message    string
	Fields     map[string][]string
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s", e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	if target == ErrNetwork && e.Kind == KindTimeout {
		return true
	}
	return kindSentinels[e.Kind] == target
}

// FieldMessages flattens Fields into "field: message" lines sorted by field.
func (e *Error) FieldMessages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		out = append(out, e.Fields[f]...)
	}
	return out
}

// KindOf returns the Kind of err, or zero if err did not come from Client.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// StatusKind maps a non-2xx status to its Kind.
func StatusKind(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindBadRequest
	default:
		return KindServer
	}
}

func newStatusError(method, path string, status int, body []byte) *Error {
	e := &Error{
		Kind:       StatusKind(status),
		Method:     method,
		Path:       path,
		StatusCode: status,
		Body:       body,
	}
	e.Message, e.Fields = parseErrorBody(body)
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// parseErrorBody reads {"message": ..., "errors"|"details": {field: [msgs]}}.
// A field may carry a single string instead of a list.
func parseErrorBody(body []byte) (string, map[string][]string) {
	var payload struct {
		Message string                     `json:"message"`
		Error   string                     `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
		Details map[string]json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}

	raw := payload.Errors
	if len(raw) == 0 {
		raw = payload.Details
	}
	if len(raw) == 0 {
		return msg, nil
	}

	fields := make(map[string][]string, len(raw))
	for field, value := range raw {
		var list []string
		if err := json.Unmarshal(value, &list); err == nil {
			fields[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			fields[field] = []string{single}
		}
	}
	return msg, fields
}
