package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Bool decodes booleans the backend sends as true/false, 0/1 or "0"/"1".
type Bool bool

func (b *Bool) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	switch strings.ToLower(raw) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("models: cannot decode %s as bool", data)
	}
	return nil
}

func (b Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Number decodes numeric values sent either as JSON numbers or numeric strings.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("models: cannot decode %s as number: %w", data, err)
	}
	*n = Number(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

func (n Number) Float64() float64 { return float64(n) }

// Integer decodes integers sent either as JSON numbers or numeric strings.
type Integer int

func (i *Integer) UnmarshalJSON(data []byte) error {
	raw := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if raw == "" || raw == "null" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("models: cannot decode %s as integer: %w", data, err)
	}
	*i = Integer(n)
	return nil
}

func (i Integer) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

// Float returns a pointer suitable for optional payload fields.
func Float(f float64) *float64 { return &f }

// Int returns a pointer suitable for optional payload fields.
func Int(i int) *int { return &i }

// ID returns a pointer suitable for optional foreign keys.
func ID(id int64) *int64 { return &id }
