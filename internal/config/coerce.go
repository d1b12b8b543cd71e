// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotBoolean is returned for strings outside true/on/false/off.
	ErrNotBoolean = errors.New("expected one of true, on, false, off")
	// ErrNotInteger is returned for strings that are not base-10 integers.
	ErrNotInteger = errors.New("expected an integer")
	// ErrNotFloat is returned for strings that are not floating point numbers.
	ErrNotFloat = errors.New("expected a number")
)

// coerce converts raw into a value of type t.
func coerce(t FieldType, raw string) (any, error) {
	switch t {
	case TypeString:
		return raw, nil
	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "on":
			return true, nil
		case "false", "off":
			return false, nil
		default:
			return nil, ErrNotBoolean
		}
	case TypeInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 0)
		if err != nil {
			return nil, ErrNotInteger
		}
		return int(n), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, ErrNotFloat
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}

// zeroValue returns the default value for a field of type t.
func zeroValue(t FieldType) any {
	switch t {
	case TypeBoolean:
		return false
	case TypeInteger:
		return 0
	case TypeFloat:
		return 0.0
	default:
		return ""
	}
}

// encodeValue renders a stored value for the file.
func encodeValue(f Field, v any) string {
	if f.Encode != nil {
		return f.Encode(v)
	}
	return fmt.Sprint(v)
}
