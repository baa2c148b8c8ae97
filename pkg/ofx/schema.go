// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gobwas/glob"
)

// PropertyType is the semantic type of a property key.
type PropertyType int

// Property types. TypeTag is a string drawn from a closed enumeration and
// is read and written with the Tag accessors only.
const (
	TypeDouble PropertyType = iota + 1
	TypeInt
	TypeBool
	TypeString
	TypeTag
	TypeBytes
)

func (t PropertyType) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeTag:
		return "tag"
	case TypeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// PropertySpec describes one key of a role.
type PropertySpec struct {
	Type PropertyType
	// Dimension is the fixed number of values. Zero means variable.
	Dimension int
	ReadOnly  bool
}

// Sentinel errors for schema registration.
var (
	ErrEmptyKey     = errors.New("property key cannot be empty")
	ErrDuplicateKey = errors.New("property key already registered")
	ErrBadPattern   = errors.New("invalid property key pattern")
)

type patternSpec struct {
	pattern string
	matcher glob.Glob
	spec    PropertySpec
}

// Schema is the fixed key set of one property-set role. Keys are either
// exact names or glob patterns, the latter for per-clip keys such as
// OfxImageClipPropRoI_Source.
type Schema struct {
	mu       sync.RWMutex
	role     string
	keys     map[string]PropertySpec
	patterns []patternSpec
}

// NewSchema creates an empty schema for role.
func NewSchema(role string) *Schema {
	return &Schema{role: role, keys: make(map[string]PropertySpec)}
}

// Role returns the role name.
func (s *Schema) Role() string { return s.role }

// Register adds an exact key.
func (s *Schema) Register(key string, spec PropertySpec) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.keys[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	s.keys[key] = spec
	return nil
}

// RegisterPattern adds a glob pattern matching a family of keys.
func (s *Schema) RegisterPattern(pattern string, spec PropertySpec) error {
	if pattern == "" {
		return ErrEmptyKey
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrBadPattern, pattern, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.patterns {
		if p.pattern == pattern {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, pattern)
		}
	}
	s.patterns = append(s.patterns, patternSpec{pattern: pattern, matcher: g, spec: spec})
	return nil
}

// MustRegister adds an exact key and panics on failure. For package init.
func (s *Schema) MustRegister(key string, spec PropertySpec) *Schema {
	if err := s.Register(key, spec); err != nil {
		panic(err)
	}
	return s
}

// MustRegisterPattern adds a pattern and panics on failure. For package init.
func (s *Schema) MustRegisterPattern(pattern string, spec PropertySpec) *Schema {
	if err := s.RegisterPattern(pattern, spec); err != nil {
		panic(err)
	}
	return s
}

// Lookup returns the spec for key or a PROPERTY_UNKNOWN_KEY error.
func (s *Schema) Lookup(key string) (PropertySpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if spec, ok := s.keys[key]; ok {
		return spec, nil
	}
	for _, p := range s.patterns {
		if p.matcher.Match(key) {
			return p.spec, nil
		}
	}
	return PropertySpec{}, ErrUnknownKey(s.role, key)
}

// Keys returns the exact keys in sorted order.
func (s *Schema) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Patterns returns the registered patterns in registration order.
func (s *Schema) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		out[i] = p.pattern
	}
	return out
}

// with copies the keys and patterns of base into a new schema named role.
func (s *Schema) with(role string) *Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := NewSchema(role)
	for k, v := range s.keys {
		out.keys[k] = v
	}
	out.patterns = append(out.patterns, s.patterns...)
	return out
}
