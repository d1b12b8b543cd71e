// SPDX-License-Identifier: MPL-2.0

// Package serde encodes command results as JSON.
//
// Values are normalised before encoding: objects exposing a dictionary view
// (Dicter) are replaced by that view and other structs by their exported fields,
// each normalised in turn. Decimals become floats, times become UTC timestamps,
// UUIDs become their canonical string and sets (maps with struct{} values) become
// sorted lists.
package serde

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/teactl/teactl/internal/timestamp"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/tidwall/pretty"
)

// Indent is the indentation used by Marshal.
const Indent = "    "

// ErrUnsupportedFloat is returned for NaN and infinite values.
var ErrUnsupportedFloat = errors.New("NaN and infinite values are not valid JSON")

// Dicter is implemented by objects that expose a dictionary view of themselves.
type Dicter interface {
	ToDict() map[string]any
}

// Marshal normalises v and encodes it as indented JSON without HTML escaping.
func Marshal(v any) ([]byte, error) {
	normalized, err := Normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Colorize adds terminal colours to encoded JSON.
func Colorize(data []byte) []byte {
	return pretty.Color(data, nil)
}

// Normalize converts v into values encoding/json renders in the canonical form.
func Normalize(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case Dicter:
		return Normalize(x.ToDict())
	case time.Time:
		return timestamp.ToUTCString(x), nil
	case uuid.UUID:
		return x.String(), nil
	case apd.Decimal:
		return decimalToFloat(&x)
	case *apd.Decimal:
		if x == nil {
			return nil, nil
		}
		return decimalToFloat(x)
	case float64:
		return checkFloat(x)
	case float32:
		return checkFloat(float64(x))
	case string, bool, int, int64, int32, uint, uint64, json.Number:
		return x, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		return normalizeList(rv)
	case reflect.Array:
		return normalizeList(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if isSet(rv.Type()) {
			return normalizeSet(rv)
		}
		return normalizeMap(rv)
	case reflect.Struct:
		if _, ok := v.(json.Marshaler); ok {
			return v, nil
		}
		return normalizeStruct(rv)
	default:
		return v, nil
	}
}

// normalizeStruct renders the exported fields of a struct the way encoding/json
// names them, keeping declaration order. Fields of embedded structs are promoted.
func normalizeStruct(rv reflect.Value) (any, error) {
	obj := make(object, 0, rv.NumField())
	index := make(map[string]int)
	if err := collectFields(rv, 0, &obj, index); err != nil {
		return nil, err
	}
	return obj, nil
}

func collectFields(rv reflect.Value, depth int, obj *object, index map[string]int) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		fv := rv.Field(i)

		name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}

		if sf.Anonymous && name == "" {
			embedded := fv
			if embedded.Kind() == reflect.Pointer {
				if embedded.IsNil() {
					continue
				}
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if err := collectFields(embedded, depth+1, obj, index); err != nil {
					return err
				}
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}
		if slices.Contains(strings.Split(opts, ","), "omitempty") && isEmpty(fv) {
			continue
		}

		value, err := Normalize(fv.Interface())
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}

		// The shallower field wins a name clash.
		if at, ok := index[name]; ok {
			if (*obj)[at].depth > depth {
				(*obj)[at] = member{key: name, value: value, depth: depth}
			}
			continue
		}
		index[name] = len(*obj)
		*obj = append(*obj, member{key: name, value: value, depth: depth})
	}
	return nil
}

// isEmpty reports the values encoding/json omits under omitempty.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	default:
		return false
	}
}

type (
	// object is a normalised struct. Unlike a map it encodes its members in order.
	object []member

	member struct {
		key   string
		value any
		depth int
	}
)

// MarshalJSON encodes o compactly; the enclosing encoder applies indentation.
func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, m.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, m.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

func normalizeList(rv reflect.Value) (any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		item, err := Normalize(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

func normalizeMap(rv reflect.Value) (any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		value, err := Normalize(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[fmt.Sprint(iter.Key().Interface())] = value
	}
	return out, nil
}

// normalizeSet renders a set as a list sorted by the keys' string form so output
// is deterministic.
func normalizeSet(rv reflect.Value) (any, error) {
	type item struct {
		sortKey string
		value   any
	}
	items := make([]item, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		value, err := Normalize(k.Interface())
		if err != nil {
			return nil, err
		}
		items = append(items, item{sortKey: fmt.Sprint(value), value: value})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].sortKey < items[j].sortKey })

	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it.value
	}
	return out, nil
}

func isSet(t reflect.Type) bool {
	elem := t.Elem()
	return elem.Kind() == reflect.Struct && elem.NumField() == 0
}

func decimalToFloat(d *apd.Decimal) (any, error) {
	f, err := d.Float64()
	if err != nil {
		return nil, fmt.Errorf("decimal %s cannot be represented as a float: %w", d.String(), err)
	}
	return checkFloat(f)
}

func checkFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrUnsupportedFloat
	}
	return f, nil
}
