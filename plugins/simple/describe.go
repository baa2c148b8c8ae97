// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package simple

import (
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

func (p *Plugin) describe(pc *ofx.PluginContext, a ofx.Describe) (ofx.Result, error) {
	multi, err := pc.Host().SupportsMultipleClipDepths()
	if err != nil {
		return ofx.NotHandled, err
	}
	p.hostSupportsMultipleClipDepths.Store(multi)

	e := a.Effect
	if err := e.SetGrouping("OFXGo"); err != nil {
		return ofx.NotHandled, err
	}
	if err := e.SetLabel("OFXGo simple sample"); err != nil {
		return ofx.NotHandled, err
	}
	if err := e.SetShortLabel("OFXGo simple"); err != nil {
		return ofx.NotHandled, err
	}
	if err := e.SetLongLabel("OFXGo simple scale sample"); err != nil {
		return ofx.NotHandled, err
	}
	if err := e.SetSupportedPixelDepths(ofx.DepthByte, ofx.DepthShort, ofx.DepthFloat); err != nil {
		return ofx.NotHandled, err
	}
	if err := e.SetSupportedContexts(ofx.ContextFilter, ofx.ContextGeneral); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

func describeInContext(a ofx.DescribeInContext) (ofx.Result, error) {
	effectContext, err := a.InArgs.Context()
	if err != nil {
		return ofx.NotHandled, err
	}

	output, err := a.Effect.DefineOutputClip()
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := output.SetSupportedComponents(ofx.ComponentRGBA, ofx.ComponentAlpha); err != nil {
		return ofx.NotHandled, err
	}

	source, err := a.Effect.DefineSourceClip()
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := source.SetSupportedComponents(ofx.ComponentRGBA, ofx.ComponentAlpha); err != nil {
		return ofx.NotHandled, err
	}

	if effectContext.IsGeneral() {
		mask, err := a.Effect.DefineClip(ofx.ClipMask)
		if err != nil {
			return ofx.NotHandled, err
		}
		if err := mask.SetSupportedComponents(ofx.ComponentAlpha); err != nil {
			return ofx.NotHandled, err
		}
		if err := mask.SetOptional(true); err != nil {
			return ofx.NotHandled, err
		}
		if err := mask.SetIsMask(true); err != nil {
			return ofx.NotHandled, err
		}
	}

	params, err := a.Effect.ParameterSet()
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := defineParams(params); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

type scaleParam struct {
	name   string
	label  string
	hint   string
	parent string
}

var scaleParams = []scaleParam{
	{ParamScale, "scale", "Scales all components in the image", ""},
	{ParamScaleR, "red", "Scales the red component of the image", ParamComponentScales},
	{ParamScaleG, "green", "Scales the green component of the image", ParamComponentScales},
	{ParamScaleB, "blue", "Scales the blue component of the image", ParamComponentScales},
	{ParamScaleA, "alpha", "Scales the alpha component of the image", ParamComponentScales},
}

func defineParams(params *ofx.ParamSetDescriptor) error {
	if err := defineScale(params, scaleParams[0]); err != nil {
		return err
	}

	toggle, err := params.DefineBoolean(ParamScaleComponents)
	if err != nil {
		return err
	}
	if err := toggle.SetDefault(false); err != nil {
		return err
	}
	if err := toggle.SetHint("Enables scale on individual components"); err != nil {
		return err
	}
	if err := toggle.SetScriptName(ParamScaleComponents); err != nil {
		return err
	}
	if err := toggle.SetLabel("Scale Individual Components"); err != nil {
		return err
	}

	group, err := params.DefineGroup(ParamComponentScales)
	if err != nil {
		return err
	}
	if err := group.SetHint("Scales on the individual component"); err != nil {
		return err
	}
	if err := group.SetLabel("Components"); err != nil {
		return err
	}

	for _, sp := range scaleParams[1:] {
		if err := defineScale(params, sp); err != nil {
			return err
		}
	}

	page, err := params.DefinePage(ParamMain)
	if err != nil {
		return err
	}
	return page.SetChildren(
		ParamScale,
		ParamScaleComponents,
		ParamScaleR,
		ParamScaleG,
		ParamScaleB,
		ParamScaleA,
	)
}

func defineScale(params *ofx.ParamSetDescriptor, sp scaleParam) error {
	d, err := params.DefineDouble(sp.name)
	if err != nil {
		return err
	}
	if err := d.SetDoubleType(ofx.DoubleTypeScale); err != nil {
		return err
	}
	if err := d.SetLabel(sp.label); err != nil {
		return err
	}
	if err := d.SetDefault(1.0); err != nil {
		return err
	}
	if err := d.SetDisplayRange(1.0, 100.0); err != nil {
		return err
	}
	if err := d.SetHint(sp.hint); err != nil {
		return err
	}
	if err := d.SetScriptName(sp.name); err != nil {
		return err
	}
	if sp.parent != "" {
		return d.SetParent(sp.parent)
	}
	return nil
}
