// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package simple

import (
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// instanceData is bound once in CreateInstance and read by every later
// action of the instance.
type instanceData struct {
	general bool

	source *ofx.ClipHandle
	mask   *ofx.ClipHandle // nil outside the general context
	output *ofx.ClipHandle

	scale           *ofx.ParamHandle[float64]
	scaleComponents *ofx.ParamHandle[bool]
	scaleR          *ofx.ParamHandle[float64]
	scaleG          *ofx.ParamHandle[float64]
	scaleB          *ofx.ParamHandle[float64]
	scaleA          *ofx.ParamHandle[float64]
}

func (d *instanceData) componentScales() []*ofx.ParamHandle[float64] {
	return []*ofx.ParamHandle[float64]{d.scaleR, d.scaleG, d.scaleB, d.scaleA}
}

func createInstance(a ofx.CreateInstance) (ofx.Result, error) {
	effectContext, err := a.Effect.Context()
	if err != nil {
		return ofx.NotHandled, err
	}
	params, err := a.Effect.ParameterSet()
	if err != nil {
		return ofx.NotHandled, err
	}

	data := &instanceData{general: effectContext.IsGeneral()}
	if data.source, err = a.Effect.SourceClip(); err != nil {
		return ofx.NotHandled, err
	}
	if data.output, err = a.Effect.OutputClip(); err != nil {
		return ofx.NotHandled, err
	}
	if data.general {
		if data.mask, err = a.Effect.Clip(ofx.ClipMask); err != nil {
			return ofx.NotHandled, err
		}
	}

	if data.scaleComponents, err = ofx.Param[bool](params, ParamScaleComponents); err != nil {
		return ofx.NotHandled, err
	}
	for name, dst := range map[string]**ofx.ParamHandle[float64]{
		ParamScale:  &data.scale,
		ParamScaleR: &data.scaleR,
		ParamScaleG: &data.scaleG,
		ParamScaleB: &data.scaleB,
		ParamScaleA: &data.scaleA,
	} {
		if *dst, err = ofx.Param[float64](params, name); err != nil {
			return ofx.NotHandled, err
		}
	}

	if err := ofx.SetInstanceData(a.Effect, data); err != nil {
		return ofx.NotHandled, err
	}
	if err := applyComponentScaleEnablement(data); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}

// enablement is the desired enabled state of the scale parameters.
type enablement struct {
	// ScaleComponents is the "scale individually" toggle.
	ScaleComponents bool
	// Components covers scaleR, scaleG, scaleB and scaleA.
	Components bool
	// Scale is the combined scale.
	Scale bool
}

// componentScaleEnablement is the single rule behind the parameter
// coupling. A disconnected source counts as not RGB.
func componentScaleEnablement(connected, rgb, perComponent bool) enablement {
	inputRGB := connected && rgb
	per := inputRGB && perComponent
	return enablement{
		ScaleComponents: inputRGB,
		Components:      per,
		Scale:           !per,
	}
}

// applyComponentScaleEnablement reads the current clip and toggle state
// and writes the enabled flags. Running it twice has no further effect.
func applyComponentScaleEnablement(d *instanceData) error {
	connected, err := d.source.Connected()
	if err != nil {
		return err
	}
	rgb := false
	if connected {
		comp, err := d.source.Components()
		if err != nil {
			return err
		}
		rgb = comp.IsRGB()
	}
	perComponent := false
	if connected && rgb {
		if perComponent, err = d.scaleComponents.Value(); err != nil {
			return err
		}
	}

	want := componentScaleEnablement(connected, rgb, perComponent)
	if err := d.scaleComponents.SetEnabled(want.ScaleComponents); err != nil {
		return err
	}
	for _, p := range d.componentScales() {
		if err := p.SetEnabled(want.Components); err != nil {
			return err
		}
	}
	return d.scale.SetEnabled(want.Scale)
}

func instanceChanged(a ofx.InstanceChanged) (ofx.Result, error) {
	reason, err := a.InArgs.Reason()
	if err != nil {
		return ofx.NotHandled, err
	}
	if reason != ofx.ChangeUserEdited {
		return ofx.NotHandled, nil
	}
	objectType, err := a.InArgs.Type()
	if err != nil {
		return ofx.NotHandled, err
	}
	name, err := a.InArgs.Name()
	if err != nil {
		return ofx.NotHandled, err
	}

	var expected string
	switch objectType {
	case ofx.ObjectClip:
		expected = ofx.ClipSource
	case ofx.ObjectParameter:
		expected = ParamScaleComponents
	}
	if expected == "" || name != expected {
		return ofx.NotHandled, nil
	}

	data, err := ofx.InstanceData[*instanceData](a.Effect)
	if err != nil {
		return ofx.NotHandled, err
	}
	if err := applyComponentScaleEnablement(data); err != nil {
		return ofx.NotHandled, err
	}
	return ofx.Handled, nil
}
