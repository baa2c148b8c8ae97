// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// testPlugin describes a Source/Output effect with one parameter of each
// value type and lets each test hook individual actions.
type testPlugin struct {
	mu    sync.Mutex
	calls []ofx.ActionKind
	hooks map[ofx.ActionKind]func(ctx context.Context, pc *ofx.PluginContext, a ofx.Action) (ofx.Result, error)
}

func newTestPlugin() *testPlugin {
	return &testPlugin{
		hooks: map[ofx.ActionKind]func(context.Context, *ofx.PluginContext, ofx.Action) (ofx.Result, error){},
	}
}

func (p *testPlugin) on(kind ofx.ActionKind, fn func(ctx context.Context, pc *ofx.PluginContext, a ofx.Action) (ofx.Result, error)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks[kind] = fn
}

func (p *testPlugin) Calls() []ofx.ActionKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ofx.ActionKind(nil), p.calls...)
}

func (p *testPlugin) Execute(ctx context.Context, pc *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
	p.mu.Lock()
	p.calls = append(p.calls, a.Kind())
	hook := p.hooks[a.Kind()]
	p.mu.Unlock()
	if hook != nil {
		return hook(ctx, pc, a)
	}
	if dic, ok := a.(ofx.DescribeInContext); ok {
		return describeTestEffect(dic)
	}
	return ofx.NotHandled, nil
}

const (
	paramGain  = "gain"
	paramOn    = "on"
	paramCount = "count"
	paramLabel = "label"
	paramGroup = "advanced"
	paramPage  = "Main"
)

func describeTestEffect(a ofx.DescribeInContext) (ofx.Result, error) {
	for _, name := range []string{ofx.ClipOutput, ofx.ClipSource} {
		c, err := a.Effect.DefineClip(name)
		if err != nil {
			return ofx.NotHandled, err
		}
		if err := c.SetSupportedComponents(ofx.ComponentRGBA, ofx.ComponentAlpha); err != nil {
			return ofx.NotHandled, err
		}
	}
	params, err := a.Effect.ParameterSet()
	if err != nil {
		return ofx.NotHandled, err
	}
	gain, err := params.DefineDouble(paramGain)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := gain.SetDefault(0.5); err != nil {
		return ofx.NotHandled, err
	}
	on, err := params.DefineBoolean(paramOn)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := on.SetDefault(true); err != nil {
		return ofx.NotHandled, err
	}
	count, err := params.DefineInteger(paramCount)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := count.SetDefault(3); err != nil {
		return ofx.NotHandled, err
	}
	label, err := params.DefineString(paramLabel)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := label.SetDefault("hello"); err != nil {
		return ofx.NotHandled, err
	}
	if _, err := params.DefineGroup(paramGroup); err != nil {
		return ofx.NotHandled, err
	}
	page, err := params.DefinePage(paramPage)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := page.SetChildren(paramGain, paramOn, paramCount, paramLabel); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

// described returns a driver whose plugin has been loaded and described
// in the filter context.
func described(t *testing.T, p ofx.Plugin, opts ...ofx.DispatcherOption) *hostsim.Driver {
	t.Helper()
	d, err := hostsim.NewDriver(hostsim.New(hostsim.DefaultOptions()), p, opts...)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, d.Load(ctx).Err)
	require.NoError(t, d.Describe(ctx).Err)
	require.NoError(t, d.DescribeInContext(ctx, ofx.ContextFilter).Err)
	return d
}

// instantiated adds one filter instance to described.
func instantiated(t *testing.T, p ofx.Plugin, opts ...ofx.DispatcherOption) (*hostsim.Driver, ofx.Handle) {
	t.Helper()
	d := described(t, p, opts...)
	instance, r := d.Instantiate(context.Background(), ofx.ContextFilter)
	require.NoError(t, r.Err)
	return d, instance
}

// onRender runs fn with the effect of every Render action.
func (p *testPlugin) onRender(fn func(effect *ofx.ImageEffect) error) {
	p.on(ofx.ActionRender, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		if err := fn(a.(ofx.Render).Effect); err != nil {
			return ofx.NotHandled, err
		}
		return ofx.Handled, nil
	})
}

// render sends one Render to instance and fails the test on error.
func render(t *testing.T, d *hostsim.Driver, instance ofx.Handle) {
	t.Helper()
	r := d.Call(context.Background(), ofx.ActionRender, instance, nil)
	require.NoError(t, r.Err)
}
