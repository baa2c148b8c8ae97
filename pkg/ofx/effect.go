// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"sync/atomic"
)

// EffectSuite is the part of the host's image effect suite the plugin
// calls back into. Failures are reported as *StatusError.
type EffectSuite interface {
	// EffectPropertySet returns the property set of an effect descriptor or instance.
	EffectPropertySet(effect Handle) (Handle, error)
	// EffectParamSet returns the parameter set of an effect descriptor or instance.
	EffectParamSet(effect Handle) (Handle, error)
	// ClipDefine declares a clip on a descriptor and returns its property set.
	ClipDefine(effect Handle, name string) (Handle, error)
	// ClipGetHandle returns a clip of an instance and its property set.
	ClipGetHandle(effect Handle, name string) (clip Handle, props Handle, err error)
	// ClipRegionOfDefinition returns the region of definition of a clip at time.
	ClipRegionOfDefinition(clip Handle, time float64) (RectD, error)
}

// Host bundles the suites and descriptor the host hands to the plugin.
type Host struct {
	// Handle is the host descriptor property set.
	Handle     Handle
	Properties PropertyStore
	Effects    EffectSuite
	Params     ParamSuite
}

// Descriptor returns the typed view of the host descriptor.
func (h *Host) Descriptor() *HostDescriptor {
	return &HostDescriptor{props: NewPropertySet(h.Handle, h.Properties, HostSchema)}
}

// HostDescriptor exposes the capabilities a host declares.
type HostDescriptor struct {
	props *PropertySet
}

// Properties returns the underlying property set.
func (h *HostDescriptor) Properties() *PropertySet { return h.props }

// Name returns the host's identifier.
func (h *HostDescriptor) Name() (string, error) { return h.props.String(PropName) }

// APIVersion returns the host's API version as major, minor...
func (h *HostDescriptor) APIVersion() ([]int, error) { return h.props.Ints(PropAPIVersion) }

// SupportsMultipleClipDepths reports whether clips of one instance may
// have different bit depths.
func (h *HostDescriptor) SupportsMultipleClipDepths() (bool, error) {
	return h.props.Bool(ImageEffectPropSupportsMultipleClipDepths)
}

// SupportedComponents returns the components the host can handle.
func (h *HostDescriptor) SupportedComponents() ([]ImageComponent, error) {
	tags, err := h.props.Tags(ImageEffectPropSupportedComponents)
	if err != nil {
		return nil, err
	}
	out := make([]ImageComponent, 0, len(tags))
	for _, tag := range tags {
		c, err := ParseImageComponent(tag)
		if err != nil {
			return nil, ErrBadTag(RoleHost, ImageEffectPropSupportedComponents, tag)
		}
		out = append(out, c)
	}
	return out, nil
}

// scope tracks whether the describe action that handed out a descriptor
// is still running. Descriptor mutators fail once it has returned.
type scope struct {
	action ActionKind
	closed atomic.Bool
}

func newScope(action ActionKind) *scope { return &scope{action: action} }

func (s *scope) check(op string) error {
	if s.closed.Load() {
		return ErrSequence(s.action.String(), "%s called after %s returned", op, s.action)
	}
	return nil
}

func (s *scope) require(op string, action ActionKind) error {
	if err := s.check(op); err != nil {
		return err
	}
	if s.action != action {
		return ErrSequence(s.action.String(), "%s is only valid during %s", op, action)
	}
	return nil
}

func (s *scope) close() { s.closed.Store(true) }

// EffectDescriptor is the effect handed to Describe and DescribeInContext.
type EffectDescriptor struct {
	handle Handle
	host   *Host
	scope  *scope
	props  *PropertySet
}

func newEffectDescriptor(host *Host, handle Handle, sc *scope) (*EffectDescriptor, error) {
	propsHandle, err := host.Effects.EffectPropertySet(handle)
	if err != nil {
		return nil, ErrPropertyHost(RoleEffectDescriptor, "", err)
	}
	return &EffectDescriptor{
		handle: handle,
		host:   host,
		scope:  sc,
		props:  NewPropertySet(propsHandle, host.Properties, EffectDescriptorSchema),
	}, nil
}

// Handle returns the host handle of the descriptor.
func (e *EffectDescriptor) Handle() Handle { return e.handle }

// Properties returns the descriptor's property set. It fails once the
// describe action has returned.
func (e *EffectDescriptor) Properties() (*PropertySet, error) {
	if err := e.scope.check("Properties"); err != nil {
		return nil, err
	}
	return e.props, nil
}

// SetLabel sets the user visible name of the effect.
func (e *EffectDescriptor) SetLabel(label string) error {
	return e.setString("SetLabel", PropLabel, label)
}

// SetShortLabel sets the abbreviated name of the effect.
func (e *EffectDescriptor) SetShortLabel(label string) error {
	return e.setString("SetShortLabel", PropShortLabel, label)
}

// SetLongLabel sets the long name of the effect.
func (e *EffectDescriptor) SetLongLabel(label string) error {
	return e.setString("SetLongLabel", PropLongLabel, label)
}

// SetGrouping sets the menu group the host lists the effect under.
func (e *EffectDescriptor) SetGrouping(group string) error {
	return e.setString("SetGrouping", ImageEffectPluginPropGrouping, group)
}

// SetSupportedPixelDepths declares the bit depths the effect renders.
func (e *EffectDescriptor) SetSupportedPixelDepths(depths ...BitDepth) error {
	if err := e.scope.check("SetSupportedPixelDepths"); err != nil {
		return err
	}
	return e.props.SetTags(ImageEffectPropSupportedPixelDepths, tagsOf(depths)...)
}

// SetSupportedContexts declares the contexts the effect can be used in.
func (e *EffectDescriptor) SetSupportedContexts(contexts ...ImageEffectContext) error {
	if err := e.scope.check("SetSupportedContexts"); err != nil {
		return err
	}
	return e.props.SetTags(ImageEffectPropSupportedContexts, tagsOf(contexts)...)
}

func (e *EffectDescriptor) setString(op, key, v string) error {
	if err := e.scope.check(op); err != nil {
		return err
	}
	return e.props.SetString(key, v)
}

// DefineClip declares a clip. Only valid during DescribeInContext.
func (e *EffectDescriptor) DefineClip(name string) (*ClipDescriptor, error) {
	if err := e.scope.require("DefineClip", ActionDescribeInContext); err != nil {
		return nil, err
	}
	propsHandle, err := e.host.Effects.ClipDefine(e.handle, name)
	if err != nil {
		return nil, ErrClipHost(name, err)
	}
	return &ClipDescriptor{
		name:  name,
		scope: e.scope,
		props: NewPropertySet(propsHandle, e.host.Properties, ClipDescriptorSchema),
	}, nil
}

// DefineOutputClip declares the mandatory output clip.
func (e *EffectDescriptor) DefineOutputClip() (*ClipDescriptor, error) {
	return e.DefineClip(ClipOutput)
}

// DefineSourceClip declares the single input clip of a filter.
func (e *EffectDescriptor) DefineSourceClip() (*ClipDescriptor, error) {
	return e.DefineClip(ClipSource)
}

// ParameterSet returns the descriptor's parameter set. Only valid during
// DescribeInContext.
func (e *EffectDescriptor) ParameterSet() (*ParamSetDescriptor, error) {
	if err := e.scope.require("ParameterSet", ActionDescribeInContext); err != nil {
		return nil, err
	}
	set, err := e.host.Effects.EffectParamSet(e.handle)
	if err != nil {
		return nil, ErrParamHost("", err)
	}
	return &ParamSetDescriptor{handle: set, host: e.host, scope: e.scope}, nil
}

// ImageEffect is a live effect instance as seen by one action.
type ImageEffect struct {
	handle Handle
	host   *Host
	action ActionKind
	rec    *instanceRecord
}

// Handle returns the host handle of the instance.
func (e *ImageEffect) Handle() Handle { return e.handle }

// Properties returns the instance's property set.
func (e *ImageEffect) Properties() (*PropertySet, error) {
	h, err := e.host.Effects.EffectPropertySet(e.handle)
	if err != nil {
		return nil, ErrPropertyHost(RoleEffectInstance, "", err)
	}
	return NewPropertySet(h, e.host.Properties, EffectInstanceSchema), nil
}

// Context returns the context the instance was created in.
func (e *ImageEffect) Context() (ImageEffectContext, error) {
	props, err := e.Properties()
	if err != nil {
		return 0, err
	}
	tag, err := props.Tag(ImageEffectPropContext)
	if err != nil {
		return 0, err
	}
	c, err := ParseImageEffectContext(tag)
	if err != nil {
		return 0, ErrBadTag(RoleEffectInstance, ImageEffectPropContext, tag)
	}
	return c, nil
}

// ParameterSet returns the instance's parameters.
func (e *ImageEffect) ParameterSet() (*ParamSet, error) {
	set, err := e.host.Effects.EffectParamSet(e.handle)
	if err != nil {
		return nil, ErrParamHost("", err)
	}
	return &ParamSet{handle: set, host: e.host}, nil
}

// Clip returns the named clip of the instance.
func (e *ImageEffect) Clip(name string) (*ClipHandle, error) {
	clip, props, err := e.host.Effects.ClipGetHandle(e.handle, name)
	if err != nil {
		return nil, ErrClipHost(name, err)
	}
	return &ClipHandle{
		name:    name,
		handle:  clip,
		effects: e.host.Effects,
		props:   NewPropertySet(props, e.host.Properties, ClipInstanceSchema),
	}, nil
}

// SourceClip returns the clip named Source.
func (e *ImageEffect) SourceClip() (*ClipHandle, error) { return e.Clip(ClipSource) }

// OutputClip returns the clip named Output.
func (e *ImageEffect) OutputClip() (*ClipHandle, error) { return e.Clip(ClipOutput) }
