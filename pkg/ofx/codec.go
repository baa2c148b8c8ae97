// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// Value is the set of Go types a property or parameter value can hold.
type Value interface {
	float64 | int | bool | string | []byte
}

// MarshalValues encodes a property value. Properties are always
// sequences, so a scalar property is a one element array.
func MarshalValues[T Value](vs ...T) ([]byte, error) {
	if vs == nil {
		vs = []T{}
	}
	raw, err := cbor.Marshal(vs)
	if err != nil {
		return nil, fmt.Errorf("encode values: %w", err)
	}
	return raw, nil
}

// UnmarshalValues decodes a property value produced by MarshalValues. It
// fails when any element is not exactly of type T, so a double is never
// read back as an integer or the other way round.
func UnmarshalValues[T Value](raw []byte) ([]T, error) {
	var items []any
	if err := cbor.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	out := make([]T, len(items))
	for i, item := range items {
		v, err := convertValue[T](item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// MarshalValue encodes a single parameter value.
func MarshalValue[T Value](v T) ([]byte, error) {
	raw, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	return raw, nil
}

// UnmarshalValue decodes a single parameter value produced by MarshalValue.
func UnmarshalValue[T Value](raw []byte) (T, error) {
	var item any
	if err := cbor.Unmarshal(raw, &item); err != nil {
		var zero T
		return zero, fmt.Errorf("decode value: %w", err)
	}
	return convertValue[T](item)
}

// DecodeAny decodes a raw property value without knowing its type. Integers
// come back as int. It is meant for hosts and diagnostics.
func DecodeAny(raw []byte) ([]any, error) {
	var items []any
	if err := cbor.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	for i, item := range items {
		if n, err := convertValue[int](item); err == nil {
			items[i] = n
		}
	}
	return items, nil
}

func convertValue[T Value](item any) (T, error) {
	var zero T
	var out any
	switch any(zero).(type) {
	case float64:
		f, ok := item.(float64)
		if !ok {
			return zero, fmt.Errorf("want double, got %T", item)
		}
		out = f
	case int:
		n, err := toInt(item)
		if err != nil {
			return zero, err
		}
		out = n
	case bool:
		b, ok := item.(bool)
		if !ok {
			return zero, fmt.Errorf("want bool, got %T", item)
		}
		out = b
	case string:
		s, ok := item.(string)
		if !ok {
			return zero, fmt.Errorf("want string, got %T", item)
		}
		out = s
	case []byte:
		b, ok := item.([]byte)
		if !ok {
			return zero, fmt.Errorf("want bytes, got %T", item)
		}
		out = b
	}
	return out.(T), nil
}

func toInt(item any) (int, error) {
	switch n := item.(type) {
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d overflows int", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("want int, got %T", item)
	}
}
