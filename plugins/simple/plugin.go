// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package simple is a sample effect that scales the components of an
// image. It declares one combined scale and four per-component scales, and
// keeps them enabled or disabled according to the source clip's format.
package simple

import (
	"context"
	"sync/atomic"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// Parameter names.
const (
	ParamMain            = "Main"
	ParamScale           = "scale"
	ParamScaleR          = "scaleR"
	ParamScaleG          = "scaleG"
	ParamScaleB          = "scaleB"
	ParamScaleA          = "scaleA"
	ParamScaleComponents = "scaleComponents"
	ParamComponentScales = "componentScales"
)

// Module exports the plugin.
var Module = ofx.Module{
	ID:         "io.github.ofxgo.simple",
	APIVersion: 1,
	Version:    ofx.PluginVersion{Major: 1, Minor: 0},
	New:        func() ofx.Plugin { return New() },
}

// Plugin is the scale effect.
type Plugin struct {
	// Read from the host during Describe, used by every GetClipPreferences.
	hostSupportsMultipleClipDepths atomic.Bool
}

// New creates the plugin.
func New() *Plugin {
	return &Plugin{}
}

// Execute implements ofx.Plugin.
func (p *Plugin) Execute(ctx context.Context, pc *ofx.PluginContext, action ofx.Action) (ofx.Result, error) {
	switch a := action.(type) {
	case ofx.Describe:
		return p.describe(pc, a)
	case ofx.DescribeInContext:
		return describeInContext(a)
	case ofx.CreateInstance:
		return createInstance(a)
	case ofx.DestroyInstance:
		return ofx.Handled, nil
	case ofx.InstanceChanged:
		return instanceChanged(a)
	case ofx.IsIdentity:
		return isIdentity(a)
	case ofx.GetRegionOfDefinition:
		return regionOfDefinition(a)
	case ofx.GetRegionsOfInterest:
		return regionsOfInterest(a)
	case ofx.GetTimeDomain:
		return timeDomain(a)
	case ofx.GetClipPreferences:
		return p.clipPreferences(a)
	case ofx.Render:
		return render(ctx, pc, a)
	default:
		return ofx.NotHandled, nil
	}
}

// HostSupportsMultipleClipDepths reports what the host declared at Describe.
func (p *Plugin) HostSupportsMultipleClipDepths() bool {
	return p.hostSupportsMultipleClipDepths.Load()
}
