// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package simple

import (
	"context"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// identityScale is compared with ==. Values a hair away from it take the
// render path.
const identityScale = 1.0

func isIdentity(a ofx.IsIdentity) (ofx.Result, error) {
	t, err := a.InArgs.Time()
	if err != nil {
		return ofx.NotHandled, err
	}
	if _, err := a.InArgs.RenderWindow(); err != nil {
		return ofx.NotHandled, err
	}
	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}

	scale, err := data.scale.ValueAtTime(t)
	if err != nil {
		return ofx.NotHandled, err
	}
	if scale != identityScale {
		return ofx.NotHandled, nil
	}

	comp, err := data.source.Components()
	if err != nil {
		return ofx.NotHandled, err
	}
	if comp.IsRGB() {
		for _, p := range data.componentScales() {
			v, err := p.ValueAtTime(t)
			if err != nil {
				return ofx.NotHandled, err
			}
			if v != identityScale {
				return ofx.NotHandled, nil
			}
		}
	}

	if err := a.OutArgs.SetName(ofx.ClipSource); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

func regionOfDefinition(a ofx.GetRegionOfDefinition) (ofx.Result, error) {
	t, err := a.InArgs.Time()
	if err != nil {
		return ofx.NotHandled, err
	}
	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}
	rod, err := data.source.RegionOfDefinition(t)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := a.OutArgs.SetRegionOfDefinition(rod); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

func regionsOfInterest(a ofx.GetRegionsOfInterest) (ofx.Result, error) {
	roi, err := a.InArgs.RegionOfInterest()
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := a.OutArgs.SetRegionOfInterest(ofx.ClipSource, roi); err != nil {
		return ofx.NotHandled, err
	}

	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}
	if data.general && data.mask != nil {
		connected, err := data.mask.Connected()
		if err != nil {
			return ofx.NotHandled, err
		}
		if connected {
			if err := a.OutArgs.SetRegionOfInterest(ofx.ClipMask, roi); err != nil {
				return ofx.NotHandled, err
			}
		}
	}
	return ofx.Handled, nil
}

func timeDomain(a ofx.GetTimeDomain) (ofx.Result, error) {
	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}
	frames, err := data.source.FrameRange()
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := a.OutArgs.SetFrameRange(frames); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

func (p *Plugin) clipPreferences(a ofx.GetClipPreferences) (ofx.Result, error) {
	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}
	depth, err := data.source.PixelDepth()
	if err != nil {
		return ofx.NotHandled, err
	}
	comp, err := data.source.Components()
	if err != nil {
		return ofx.NotHandled, err
	}

	outComp := ofx.ComponentAlpha
	if comp.IsRGB() {
		outComp = ofx.ComponentRGBA
	}
	if err := a.OutArgs.SetComponents(ofx.ClipOutput, outComp); err != nil {
		return ofx.NotHandled, err
	}
	multiDepth := p.hostSupportsMultipleClipDepths.Load()
	if multiDepth {
		if err := a.OutArgs.SetDepth(ofx.ClipOutput, depth); err != nil {
			return ofx.NotHandled, err
		}
	}

	if data.general && data.mask != nil {
		// A mask that cannot be queried is treated as disconnected.
		connected, err := data.mask.Connected()
		if err == nil && connected {
			if err := a.OutArgs.SetComponents(ofx.ClipMask, ofx.ComponentAlpha); err != nil {
				return ofx.NotHandled, err
			}
			if multiDepth {
				if err := a.OutArgs.SetDepth(ofx.ClipMask, depth); err != nil {
					return ofx.NotHandled, err
				}
			}
		}
	}
	return ofx.Handled, nil
}

func render(ctx context.Context, pc *ofx.PluginContext, a ofx.Render) (ofx.Result, error) {
	t, err := a.InArgs.Time()
	if err != nil {
		return ofx.NotHandled, err
	}
	window, err := a.InArgs.RenderWindow()
	if err != nil {
		return ofx.NotHandled, err
	}
	pc.Logger().DebugContext(ctx, "render",
		"instance", string(a.Effect.Handle()),
		"time", t,
		"window", window,
	)
	return ofx.Handled, nil
}
