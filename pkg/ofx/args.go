// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// The argument types embed the checked PropertySet of their role, so the
// generic typed accessors stay available next to the named ones.

// DescribeInContextInArgs are the in-args of DescribeInContext.
type DescribeInContextInArgs struct{ *PropertySet }

// Context returns the context being described.
func (a DescribeInContextInArgs) Context() (ImageEffectContext, error) {
	tag, err := a.Tag(ImageEffectPropContext)
	if err != nil {
		return 0, err
	}
	c, err := ParseImageEffectContext(tag)
	if err != nil {
		return 0, ErrBadTag(a.schema.Role(), ImageEffectPropContext, tag)
	}
	return c, nil
}

// ChangeGroupInArgs are the in-args of BeginInstanceChanged and EndInstanceChanged.
type ChangeGroupInArgs struct{ *PropertySet }

// Reason returns why the host is changing the instance.
func (a ChangeGroupInArgs) Reason() (ChangeReason, error) {
	return changeReason(a.PropertySet)
}

// InstanceChangedInArgs are the in-args of InstanceChanged.
type InstanceChangedInArgs struct{ *PropertySet }

// Type returns the kind of object that changed.
func (a InstanceChangedInArgs) Type() (ObjectType, error) {
	tag, err := a.Tag(PropType)
	if err != nil {
		return ObjectOther, err
	}
	return ParseObjectType(tag), nil
}

// Name returns the name of the clip or parameter that changed.
func (a InstanceChangedInArgs) Name() (string, error) {
	return a.String(PropName)
}

// Reason returns why the object changed.
func (a InstanceChangedInArgs) Reason() (ChangeReason, error) {
	return changeReason(a.PropertySet)
}

// Time returns the effect time of the change.
func (a InstanceChangedInArgs) Time() (float64, error) {
	return a.Double(PropTime)
}

func changeReason(p *PropertySet) (ChangeReason, error) {
	tag, err := p.Tag(PropChangeReason)
	if err != nil {
		return ChangeOther, err
	}
	return ParseChangeReason(tag), nil
}

// RegionOfDefinitionInArgs are the in-args of GetRegionOfDefinition.
type RegionOfDefinitionInArgs struct{ *PropertySet }

// Time returns the time the region is requested for.
func (a RegionOfDefinitionInArgs) Time() (float64, error) {
	return a.Double(PropTime)
}

// RenderScale returns the horizontal and vertical render scale.
func (a RegionOfDefinitionInArgs) RenderScale() ([]float64, error) {
	return a.Doubles(ImageEffectPropRenderScale)
}

// RegionOfDefinitionOutArgs are the out-args of GetRegionOfDefinition.
type RegionOfDefinitionOutArgs struct{ *PropertySet }

// SetRegionOfDefinition reports the output's region of definition.
func (a RegionOfDefinitionOutArgs) SetRegionOfDefinition(rod RectD) error {
	return a.SetRectD(ImageEffectPropRegionOfDefinition, rod)
}

// RegionsOfInterestInArgs are the in-args of GetRegionsOfInterest.
type RegionsOfInterestInArgs struct{ *PropertySet }

// Time returns the time of the render.
func (a RegionsOfInterestInArgs) Time() (float64, error) {
	return a.Double(PropTime)
}

// RegionOfInterest returns the output region the host wants rendered.
func (a RegionsOfInterestInArgs) RegionOfInterest() (RectD, error) {
	return a.RectD(ImageEffectPropRegionOfInterest)
}

// RegionsOfInterestOutArgs are the out-args of GetRegionsOfInterest.
type RegionsOfInterestOutArgs struct{ *PropertySet }

// SetRegionOfInterest reports the region needed from one input clip.
func (a RegionsOfInterestOutArgs) SetRegionOfInterest(clip string, roi RectD) error {
	return a.SetRectD(ClipPropRoI(clip), roi)
}

// TimeDomainOutArgs are the out-args of GetTimeDomain.
type TimeDomainOutArgs struct{ *PropertySet }

// SetFrameRange reports the frames the effect can produce.
func (a TimeDomainOutArgs) SetFrameRange(r FrameRange) error {
	return a.SetDoubles(ImageEffectPropFrameRange, r.Min, r.Max)
}

// ClipPreferencesOutArgs are the out-args of GetClipPreferences.
type ClipPreferencesOutArgs struct{ *PropertySet }

// SetComponents asks for clip to be delivered with components c.
func (a ClipPreferencesOutArgs) SetComponents(clip string, c ImageComponent) error {
	return a.SetTag(ClipPropComponents(clip), c.Tag())
}

// SetDepth asks for clip to be delivered at depth d. Only honoured by hosts
// that support multiple clip depths.
func (a ClipPreferencesOutArgs) SetDepth(clip string, d BitDepth) error {
	return a.SetTag(ClipPropDepth(clip), d.Tag())
}

// SetPixelAspectRatio asks for clip to be delivered with the given ratio.
func (a ClipPreferencesOutArgs) SetPixelAspectRatio(clip string, par float64) error {
	return a.SetDouble(ClipPropPAR(clip), par)
}

// SetFrameVarying reports whether the output changes from frame to frame
// even when the inputs and parameters do not.
func (a ClipPreferencesOutArgs) SetFrameVarying(varying bool) error {
	return a.SetBool(ImageEffectFrameVarying, varying)
}

// IsIdentityInArgs are the in-args of IsIdentity.
type IsIdentityInArgs struct{ *PropertySet }

// Time returns the time being rendered.
func (a IsIdentityInArgs) Time() (float64, error) {
	return a.Double(PropTime)
}

// RenderWindow returns the window being rendered in pixels.
func (a IsIdentityInArgs) RenderWindow() (RectI, error) {
	return a.RectI(ImageEffectPropRenderWindow)
}

// FieldToRender returns which field is being rendered.
func (a IsIdentityInArgs) FieldToRender() (string, error) {
	return a.String(ImageEffectPropFieldToRender)
}

// IsIdentityOutArgs are the out-args of IsIdentity.
type IsIdentityOutArgs struct{ *PropertySet }

// SetName names the input clip the output is identical to.
func (a IsIdentityOutArgs) SetName(clip string) error {
	return a.SetString(PropName, clip)
}

// SetTime sets the time of the input frame to use.
func (a IsIdentityOutArgs) SetTime(t float64) error {
	return a.SetDouble(PropTime, t)
}

// RenderInArgs are the in-args of Render.
type RenderInArgs struct{ *PropertySet }

// Time returns the time being rendered.
func (a RenderInArgs) Time() (float64, error) {
	return a.Double(PropTime)
}

// RenderWindow returns the window being rendered in pixels.
func (a RenderInArgs) RenderWindow() (RectI, error) {
	return a.RectI(ImageEffectPropRenderWindow)
}

// FieldToRender returns which field is being rendered.
func (a RenderInArgs) FieldToRender() (string, error) {
	return a.String(ImageEffectPropFieldToRender)
}

// RenderScale returns the horizontal and vertical render scale.
func (a RenderInArgs) RenderScale() ([]float64, error) {
	return a.Doubles(ImageEffectPropRenderScale)
}

// SequenceRenderInArgs are the in-args of BeginSequenceRender and EndSequenceRender.
type SequenceRenderInArgs struct{ *PropertySet }

// FrameRange returns the frames about to be rendered.
func (a SequenceRenderInArgs) FrameRange() (FrameRange, error) {
	vs, err := a.Doubles(ImageEffectPropFrameRange)
	if err != nil {
		return FrameRange{}, err
	}
	return FrameRange{Min: vs[0], Max: vs[1]}, nil
}

// FrameStep returns the step between rendered frames.
func (a SequenceRenderInArgs) FrameStep() (float64, error) {
	return a.Double(ImageEffectPropFrameStep)
}

// Interactive reports whether the render is driven by a user interaction.
func (a SequenceRenderInArgs) Interactive() (bool, error) {
	return a.Bool(PropIsInteractive)
}
