// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package hostsim

import (
	"fmt"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

type tagger interface {
	Tag() string
}

// Encode converts a Go value into the raw property encoding. Enumerations
// are stored as their tags, rectangles and ranges as their coordinates.
func Encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case float64:
		return ofx.MarshalValues(x)
	case []float64:
		return ofx.MarshalValues(x...)
	case int:
		return ofx.MarshalValues(x)
	case []int:
		return ofx.MarshalValues(x...)
	case bool:
		return ofx.MarshalValues(x)
	case []bool:
		return ofx.MarshalValues(x...)
	case string:
		return ofx.MarshalValues(x)
	case []string:
		return ofx.MarshalValues(x...)
	case []byte:
		return ofx.MarshalValues(x)
	case ofx.RectD:
		return ofx.MarshalValues(x.X1, x.Y1, x.X2, x.Y2)
	case ofx.RectI:
		return ofx.MarshalValues(x.X1, x.Y1, x.X2, x.Y2)
	case ofx.FrameRange:
		return ofx.MarshalValues(x.Min, x.Max)
	case []ofx.ImageComponent:
		return ofx.MarshalValues(tags(x)...)
	case []ofx.ImageEffectContext:
		return ofx.MarshalValues(tags(x)...)
	case []ofx.BitDepth:
		return ofx.MarshalValues(tags(x)...)
	case tagger:
		return ofx.MarshalValues(x.Tag())
	default:
		return nil, fmt.Errorf("cannot encode %T", v)
	}
}

func tags[T tagger](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Tag()
	}
	return out
}
