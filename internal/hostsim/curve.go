// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package hostsim

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
)

// Curve is the host-side value of a parameter as a function of time.
type Curve interface {
	At(ctx context.Context, t float64) (any, error)
}

// Constant is a parameter that does not animate.
type Constant struct {
	Value any
}

// At returns the constant value.
func (c Constant) At(context.Context, float64) (any, error) { return c.Value, nil }

// Key is one keyframe of a numeric parameter.
type Key struct {
	Time  float64
	Value float64
}

// Keyframes interpolates linearly between keys and holds the first and
// last values outside them.
type Keyframes struct {
	keys []Key
}

// NewKeyframes sorts keys by time. At least one key is required and two
// keys may not share a time.
func NewKeyframes(keys ...Key) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, oops.In("hostsim").Errorf("keyframes need at least one key")
	}
	sorted := append([]Key(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time == sorted[i-1].Time {
			return nil, oops.In("hostsim").With("time", sorted[i].Time).Errorf("duplicate keyframe")
		}
	}
	return &Keyframes{keys: sorted}, nil
}

// At returns the interpolated value at t.
func (k *Keyframes) At(_ context.Context, t float64) (any, error) {
	keys := k.keys
	if t <= keys[0].Time {
		return keys[0].Value, nil
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Value, nil
	}
	i := sort.Search(len(keys), func(i int) bool { return keys[i].Time >= t })
	if keys[i].Time == t {
		return keys[i].Value, nil
	}
	a, b := keys[i-1], keys[i]
	frac := (t - a.Time) / (b.Time - a.Time)
	return a.Value + frac*(b.Value-a.Value), nil
}

// DefaultExprTimeout bounds a single expression evaluation.
const DefaultExprTimeout = 100 * time.Millisecond

// Expr is a Lua expression of the global t (the time, also available as
// frame). The source may be a bare expression or a chunk with return.
type Expr struct {
	source  string
	factory *StateFactory
	timeout time.Duration
}

// NewExpr checks that source compiles in a sandboxed state.
func NewExpr(factory *StateFactory, source string) (*Expr, error) {
	if factory == nil {
		factory = NewStateFactory()
	}
	src := strings.TrimSpace(source)
	if src == "" {
		return nil, oops.In("hostsim").Errorf("expression is empty")
	}
	if !strings.HasPrefix(src, "return ") && !strings.Contains(src, "\n") {
		src = "return " + src
	}
	L, err := factory.NewState(context.Background())
	if err != nil {
		return nil, oops.In("hostsim").Wrap(err)
	}
	defer L.Close()
	if _, err := L.LoadString(src); err != nil {
		return nil, oops.In("hostsim").With("expr", source).Hint("invalid Lua expression").Wrap(err)
	}
	return &Expr{source: src, factory: factory, timeout: DefaultExprTimeout}, nil
}

// Source returns the compiled source, including any added return.
func (e *Expr) Source() string { return e.source }

// At evaluates the expression in a fresh state with t bound.
func (e *Expr) At(ctx context.Context, t float64) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	L, err := e.factory.NewState(ctx)
	if err != nil {
		return nil, oops.In("hostsim").Wrap(err)
	}
	defer L.Close()

	L.SetGlobal("t", lua.LNumber(t))
	L.SetGlobal("frame", lua.LNumber(t))
	fn, err := L.LoadString(e.source)
	if err != nil {
		return nil, oops.In("hostsim").With("expr", e.source).Wrap(err)
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, oops.In("hostsim").With("expr", e.source).With("t", t).Wrap(err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	switch v := ret.(type) {
	case lua.LNumber:
		return float64(v), nil
	case lua.LBool:
		return bool(v), nil
	case lua.LString:
		return string(v), nil
	default:
		return nil, oops.In("hostsim").With("expr", e.source).
			Errorf("expression returned %s, want number, boolean or string", ret.Type())
	}
}

func (e *Expr) String() string { return fmt.Sprintf("lua(%s)", e.source) }
