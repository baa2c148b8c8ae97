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

type clipView struct {
	connected  bool
	components ofx.ImageComponent
	unmapped   ofx.ImageComponent
	depth      ofx.BitDepth
	par        float64
	frames     ofx.FrameRange
	rod        ofx.RectD
}

func readClip(c *ofx.ClipHandle) (clipView, error) {
	var v clipView
	var err error
	if v.connected, err = c.Connected(); err != nil {
		return v, err
	}
	if v.components, err = c.Components(); err != nil {
		return v, err
	}
	if v.unmapped, err = c.UnmappedComponents(); err != nil {
		return v, err
	}
	if v.depth, err = c.PixelDepth(); err != nil {
		return v, err
	}
	if v.par, err = c.PixelAspectRatio(); err != nil {
		return v, err
	}
	if v.frames, err = c.FrameRange(); err != nil {
		return v, err
	}
	v.rod, err = c.RegionOfDefinition(0)
	return v, err
}

func TestClipHandle_Queries(t *testing.T) {
	tests := []struct {
		name  string
		state *hostsim.ClipState
		want  clipView
	}{
		{
			name: "disconnected",
			want: clipView{par: 1},
		},
		{
			name: "connected float rgba",
			state: &hostsim.ClipState{
				Connected:          true,
				Components:         ofx.ComponentRGBA,
				Depth:              ofx.DepthFloat,
				RegionOfDefinition: ofx.RectD{X2: 640, Y2: 480},
				FrameRange:         ofx.FrameRange{Min: 1, Max: 50},
				PixelAspectRatio:   2,
			},
			want: clipView{
				connected:  true,
				components: ofx.ComponentRGBA,
				unmapped:   ofx.ComponentRGBA,
				depth:      ofx.DepthFloat,
				par:        2,
				frames:     ofx.FrameRange{Min: 1, Max: 50},
				rod:        ofx.RectD{X2: 640, Y2: 480},
			},
		},
		{
			name: "disconnecting clears the state",
			state: &hostsim.ClipState{
				Components: ofx.ComponentAlpha,
				Depth:      ofx.DepthByte,
				FrameRange: ofx.FrameRange{Min: 0, Max: 10},
			},
			want: clipView{par: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlugin()
			var got clipView
			p.onRender(func(effect *ofx.ImageEffect) error {
				c, err := effect.SourceClip()
				if err != nil {
					return err
				}
				got, err = readClip(c)
				return err
			})
			d, instance := instantiated(t, p)
			if tt.state != nil {
				require.NoError(t, d.Host().SetClip(instance, ofx.ClipSource, *tt.state))
			}
			render(t, d, instance)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClipHandle_OutputConnectedByDefault(t *testing.T) {
	p := newTestPlugin()
	var connected bool
	var name string
	p.onRender(func(effect *ofx.ImageEffect) error {
		c, err := effect.OutputClip()
		if err != nil {
			return err
		}
		name = c.Name()
		connected, err = c.Connected()
		return err
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	assert.Equal(t, ofx.ClipOutput, name)
	assert.True(t, connected)
}

func TestClipHandle_ReflectsCurrentConnection(t *testing.T) {
	ctx := context.Background()
	p := newTestPlugin()
	p.on(ofx.ActionCreateInstance, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		effect := a.(ofx.CreateInstance).Effect
		c, err := effect.SourceClip()
		if err != nil {
			return ofx.NotHandled, err
		}
		return ofx.Handled, ofx.SetInstanceData(effect, c)
	})
	var seen []bool
	p.onRender(func(effect *ofx.ImageEffect) error {
		c, err := ofx.InstanceData[*ofx.ClipHandle](effect)
		if err != nil {
			return err
		}
		connected, err := c.Connected()
		seen = append(seen, connected)
		return err
	})
	d, instance := instantiated(t, p)

	render(t, d, instance)
	_, err := d.SetClip(ctx, instance, ofx.ClipSource, hostsim.ClipState{
		Connected:  true,
		Components: ofx.ComponentRGB,
		Depth:      ofx.DepthShort,
	})
	require.NoError(t, err)
	render(t, d, instance)

	assert.Equal(t, []bool{false, true}, seen)
}

func TestClipHandle_NotFound(t *testing.T) {
	p := newTestPlugin()
	var got error
	p.onRender(func(effect *ofx.ImageEffect) error {
		_, got = effect.Clip("Mask")
		return nil
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	errutil.AssertErrorCode(t, got, ofx.CodeClipNotFound)
	errutil.AssertErrorContext(t, got, "clip", "Mask")
	assert.True(t, ofx.IsClipError(got))
}

func TestClipHandle_PropertiesReadOnly(t *testing.T) {
	p := newTestPlugin()
	var got error
	p.onRender(func(effect *ofx.ImageEffect) error {
		c, err := effect.SourceClip()
		if err != nil {
			return err
		}
		got = c.Properties().SetBool(ofx.ImageClipPropConnected, true)
		return nil
	})
	d, instance := instantiated(t, p)
	render(t, d, instance)

	errutil.AssertErrorCode(t, got, ofx.CodePropertyReadOnly)
}

func TestClipDescriptor_OutsideDescribeInContext(t *testing.T) {
	p := newTestPlugin()
	var kept *ofx.ClipDescriptor
	var dupErr error
	p.on(ofx.ActionDescribeInContext, func(_ context.Context, _ *ofx.PluginContext, a ofx.Action) (ofx.Result, error) {
		dic := a.(ofx.DescribeInContext)
		if _, err := describeTestEffect(dic); err != nil {
			return ofx.NotHandled, err
		}
		_, dupErr = dic.Effect.DefineSourceClip()
		var err error
		kept, err = dic.Effect.DefineClip("Mask")
		return ofx.Handled, err
	})
	described(t, p)

	errutil.AssertErrorCode(t, dupErr, ofx.CodeClipHostRejected)
	require.NotNil(t, kept)
	assert.Equal(t, "Mask", kept.Name())
	assert.True(t, ofx.IsSequenceError(kept.SetOptional(true)))
	assert.True(t, ofx.IsSequenceError(kept.SetIsMask(true)))
	assert.True(t, ofx.IsSequenceError(kept.SetLabel("Matte")))
	assert.True(t, ofx.IsSequenceError(kept.SetSupportedComponents(ofx.ComponentAlpha)))
}
