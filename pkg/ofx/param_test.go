// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/errutil"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

func TestParam_Defaults(t *testing.T) {
	p := newTestPlugin()
	var gain float64
	var on bool
	var count int
	var label string
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		g, err := ofx.Param[float64](set, paramGain)
		if err != nil {
			return err
		}
		if gain, err = g.Value(); err != nil {
			return err
		}
		o, err := ofx.Param[bool](set, paramOn)
		if err != nil {
			return err
		}
		if on, err = o.Value(); err != nil {
			return err
		}
		c, err := ofx.Param[int](set, paramCount)
		if err != nil {
			return err
		}
		if count, err = c.Value(); err != nil {
			return err
		}
		l, err := ofx.Param[string](set, paramLabel)
		if err != nil {
			return err
		}
		label, err = l.Value()
		return err
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	assert.Equal(t, 0.5, gain)
	assert.True(t, on)
	assert.Equal(t, 3, count)
	assert.Equal(t, "hello", label)
}

func TestParam_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fetch    func(set *ofx.ParamSet) error
		wantCode string
	}{
		{
			name: "double fetched as int",
			fetch: func(set *ofx.ParamSet) error {
				_, err := ofx.Param[int](set, paramGain)
				return err
			},
			wantCode: ofx.CodeParamWrongType,
		},
		{
			name: "int fetched as double",
			fetch: func(set *ofx.ParamSet) error {
				_, err := ofx.Param[float64](set, paramCount)
				return err
			},
			wantCode: ofx.CodeParamWrongType,
		},
		{
			name: "group has no value type",
			fetch: func(set *ofx.ParamSet) error {
				_, err := ofx.Param[string](set, paramGroup)
				return err
			},
			wantCode: ofx.CodeParamWrongType,
		},
		{
			name: "unknown name",
			fetch: func(set *ofx.ParamSet) error {
				_, err := ofx.Param[float64](set, "nope")
				return err
			},
			wantCode: ofx.CodeParamNotFound,
		},
		{
			name: "unknown name kind",
			fetch: func(set *ofx.ParamSet) error {
				_, err := set.Kind("nope")
				return err
			},
			wantCode: ofx.CodeParamNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlugin()
			var got error
			p.onRender(func(effect *ofx.ImageEffect) error {
				set, err := effect.ParameterSet()
				if err != nil {
					return err
				}
				got = tt.fetch(set)
				return nil
			})
			d, instance := instantiated(t, p)
			render(t, d, instance)

			errutil.AssertErrorCode(t, got, tt.wantCode)
			assert.True(t, ofx.IsParameterError(got))
		})
	}
}

func TestParam_WrongTypeContext(t *testing.T) {
	p := newTestPlugin()
	var got error
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		_, got = ofx.Param[bool](set, paramLabel)
		return nil
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	errutil.AssertErrorContext(t, got, "param", paramLabel)
	errutil.AssertErrorContext(t, got, "want", ofx.ParamBoolean.String())
	errutil.AssertErrorContext(t, got, "got", ofx.ParamString.String())
}

func TestParamSet_Kind(t *testing.T) {
	p := newTestPlugin()
	kinds := map[string]ofx.ParamType{}
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		for _, name := range []string{paramGain, paramOn, paramCount, paramLabel, paramGroup, paramPage} {
			k, err := set.Kind(name)
			if err != nil {
				return err
			}
			kinds[name] = k
		}
		return nil
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	assert.Equal(t, map[string]ofx.ParamType{
		paramGain:  ofx.ParamDouble,
		paramOn:    ofx.ParamBoolean,
		paramCount: ofx.ParamInteger,
		paramLabel: ofx.ParamString,
		paramGroup: ofx.ParamGroup,
		paramPage:  ofx.ParamPage,
	}, kinds)
}

func TestParam_SetValueReachesHost(t *testing.T) {
	p := newTestPlugin()
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		g, err := ofx.Param[float64](set, paramGain)
		if err != nil {
			return err
		}
		return g.SetValue(2)
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	st, err := d.Host().Param(instance, paramGain, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, st.Value)
}

func TestParam_ValueAtTime(t *testing.T) {
	p := newTestPlugin()
	var at0, at5, at20 float64
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		g, err := ofx.Param[float64](set, paramGain)
		if err != nil {
			return err
		}
		if at0, err = g.ValueAtTime(0); err != nil {
			return err
		}
		if at5, err = g.ValueAtTime(5); err != nil {
			return err
		}
		at20, err = g.ValueAtTime(20)
		return err
	})
	d, instance := instantiated(t, p)
	keys, err := hostsim.NewKeyframes(hostsim.Key{Time: 0, Value: 0}, hostsim.Key{Time: 10, Value: 1})
	require.NoError(t, err)
	require.NoError(t, d.Host().SetParam(instance, paramGain, keys))
	render(t, d, instance)

	assert.Equal(t, 0.0, at0)
	assert.InDelta(t, 0.5, at5, 1e-12)
	assert.Equal(t, 1.0, at20)
}

func TestParam_IntegerCurveRounds(t *testing.T) {
	p := newTestPlugin()
	var count int
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		c, err := ofx.Param[int](set, paramCount)
		if err != nil {
			return err
		}
		count, err = c.Value()
		return err
	})
	d, instance := instantiated(t, p)
	require.NoError(t, d.Host().SetParam(instance, paramCount, hostsim.Constant{Value: 2.6}))
	render(t, d, instance)

	assert.Equal(t, 3, count)
}

func TestParam_EnabledAndVisible(t *testing.T) {
	p := newTestPlugin()
	var wasEnabled, wasVisible bool
	p.onRender(func(effect *ofx.ImageEffect) error {
		set, err := effect.ParameterSet()
		if err != nil {
			return err
		}
		g, err := ofx.Param[float64](set, paramGain)
		if err != nil {
			return err
		}
		if wasEnabled, err = g.Enabled(); err != nil {
			return err
		}
		if wasVisible, err = g.Visible(); err != nil {
			return err
		}
		if err := g.SetEnabled(false); err != nil {
			return err
		}
		return g.SetVisible(false)
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	assert.True(t, wasEnabled)
	assert.True(t, wasVisible)
	st, err := d.Host().Param(instance, paramGain, 0)
	require.NoError(t, err)
	assert.False(t, st.Enabled)
	assert.False(t, st.Visible)
}

func TestParam_HandleKeptInInstanceData(t *testing.T) {
	ctx := context.Background()
	p := newTestPlugin()
	p.on(ofx.ActionCreateInstance, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		effect := a.(ofx.CreateInstance).Effect
		set, err := effect.ParameterSet()
		if err != nil {
			return ofx.NotHandled, err
		}
		g, err := ofx.Param[float64](set, paramGain)
		if err != nil {
			return ofx.NotHandled, err
		}
		return ofx.Handled, ofx.SetInstanceData(effect, g)
	})
	var seen []float64
	p.onRender(func(effect *ofx.ImageEffect) error {
		g, err := ofx.InstanceData[*ofx.ParamHandle[float64]](effect)
		if err != nil {
			return err
		}
		v, err := g.Value()
		seen = append(seen, v)
		return err
	})
	d, instance := instantiated(t, p)

	render(t, d, instance)
	_, err := d.SetParam(ctx, instance, paramGain, hostsim.Constant{Value: 0.75})
	require.NoError(t, err)
	render(t, d, instance)

	assert.Equal(t, []float64{0.5, 0.75}, seen, "the handle reads through to the host")
}

func TestParamDescriptor_OutsideDescribeInContext(t *testing.T) {
	ctx := context.Background()
	p := newTestPlugin()
	var kept *ofx.DoubleParamDescriptor
	var keptSet *ofx.ParamSetDescriptor
	p.on(ofx.ActionDescribeInContext, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		dic := a.(ofx.DescribeInContext)
		if _, err := describeTestEffect(dic); err != nil {
			return ofx.NotHandled, err
		}
		set, err := dic.Effect.ParameterSet()
		if err != nil {
			return ofx.NotHandled, err
		}
		keptSet = set
		kept, err = set.DefineDouble("late")
		return ofx.Handled, err
	})
	var describeErr error
	p.on(ofx.ActionDescribe, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		_, describeErr = a.(ofx.Describe).Effect.ParameterSet()
		return ofx.Handled, nil
	})
	d, err := hostsim.NewDriver(hostsim.New(hostsim.DefaultOptions()), p)
	require.NoError(t, err)
	require.NoError(t, d.Describe(ctx).Err)
	require.NoError(t, d.DescribeInContext(ctx, ofx.ContextFilter).Err)

	assert.True(t, ofx.IsSequenceError(describeErr), "parameters are defined per context")
	require.NotNil(t, kept)
	assert.True(t, ofx.IsSequenceError(kept.SetDefault(1)))
	assert.True(t, ofx.IsSequenceError(kept.SetLabel("Late")))
	assert.True(t, ofx.IsSequenceError(kept.SetDisplayRange(0, 1)))
	_, err = keptSet.DefineInteger("later")
	assert.True(t, ofx.IsSequenceError(err))
}

func TestParamDescriptor_Duplicate(t *testing.T) {
	p := newTestPlugin()
	var dupErr error
	p.on(ofx.ActionDescribeInContext, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		dic := a.(ofx.DescribeInContext)
		if _, err := describeTestEffect(dic); err != nil {
			return ofx.NotHandled, err
		}
		set, err := dic.Effect.ParameterSet()
		if err != nil {
			return ofx.NotHandled, err
		}
		_, dupErr = set.DefineBoolean(paramGain)
		return ofx.Handled, nil
	})
	described(t, p)

	errutil.AssertErrorCode(t, dupErr, ofx.CodeParamHostRejected)
	errutil.AssertErrorContext(t, dupErr, "param", paramGain)
}
