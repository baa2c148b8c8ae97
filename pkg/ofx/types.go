// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"fmt"
	"strings"
)

// Handle is an opaque reference issued by the host for an effect, a
// property set, a parameter or a clip. The plugin never interprets it.
type Handle string

// Status is the raw status code returned to the host.
type Status int

// Status codes understood by hosts.
const (
	StatOK                    Status = 0
	StatFailed                Status = 1
	StatErrFatal              Status = 2
	StatErrUnknown            Status = 3
	StatErrMissingHostFeature Status = 4
	StatErrUnsupported        Status = 5
	StatErrExists             Status = 6
	StatErrFormat             Status = 7
	StatErrMemory             Status = 8
	StatErrBadHandle          Status = 9
	StatErrBadIndex           Status = 10
	StatErrValue              Status = 11
	StatReplyYes              Status = 12
	StatReplyNo               Status = 13
	StatReplyDefault          Status = 14
)

var statusNames = map[Status]string{
	StatOK:                    "ok",
	StatFailed:                "failed",
	StatErrFatal:              "err_fatal",
	StatErrUnknown:            "err_unknown",
	StatErrMissingHostFeature: "err_missing_host_feature",
	StatErrUnsupported:        "err_unsupported",
	StatErrExists:             "err_exists",
	StatErrFormat:             "err_format",
	StatErrMemory:             "err_memory",
	StatErrBadHandle:          "err_bad_handle",
	StatErrBadIndex:           "err_bad_index",
	StatErrValue:              "err_value",
	StatReplyYes:              "reply_yes",
	StatReplyNo:               "reply_no",
	StatReplyDefault:          "reply_default",
}

// String returns the snake_case name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus converts a snake_case status name back to a Status.
func ParseStatus(name string) (Status, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// StatusError is how host suites report a failed call.
type StatusError struct {
	Status  Status
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return "host returned " + e.Status.String()
	}
	return fmt.Sprintf("host returned %s: %s", e.Status, e.Message)
}

// tagged is implemented by the small closed enumerations that travel as
// string tags inside property sets.
type tagged interface {
	comparable
	Tag() string
}

func parseTag[T tagged](tag string, all []T) (T, bool) {
	for _, v := range all {
		if v.Tag() == tag {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func tagsOf[T tagged](values []T) []string {
	tags := make([]string, len(values))
	for i, v := range values {
		tags[i] = v.Tag()
	}
	return tags
}

// ImageComponent identifies the channels of an image.
type ImageComponent int

// Image components.
const (
	ComponentNone ImageComponent = iota
	ComponentRGBA
	ComponentRGB
	ComponentAlpha
)

var allComponents = []ImageComponent{ComponentNone, ComponentRGBA, ComponentRGB, ComponentAlpha}

// Tag returns the property value for the component.
func (c ImageComponent) Tag() string {
	switch c {
	case ComponentRGBA:
		return "OfxImageComponentRGBA"
	case ComponentRGB:
		return "OfxImageComponentRGB"
	case ComponentAlpha:
		return "OfxImageComponentAlpha"
	default:
		return "OfxImageComponentNone"
	}
}

func (c ImageComponent) String() string {
	return strings.TrimPrefix(c.Tag(), "OfxImageComponent")
}

// IsRGB reports whether the component belongs to the RGB family.
func (c ImageComponent) IsRGB() bool {
	return c == ComponentRGBA || c == ComponentRGB
}

// ParseImageComponent accepts a property tag or a short case-insensitive
// name such as "rgba".
func ParseImageComponent(s string) (ImageComponent, error) {
	if c, ok := parseTag(s, allComponents); ok {
		return c, nil
	}
	for _, c := range allComponents {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return ComponentNone, fmt.Errorf("unknown image component %q", s)
}

// BitDepth is the storage type of one pixel component.
type BitDepth int

// Bit depths.
const (
	DepthNone BitDepth = iota
	DepthByte
	DepthShort
	DepthHalf
	DepthFloat
)

var allDepths = []BitDepth{DepthNone, DepthByte, DepthShort, DepthHalf, DepthFloat}

// Tag returns the property value for the depth.
func (d BitDepth) Tag() string {
	switch d {
	case DepthByte:
		return "OfxBitDepthByte"
	case DepthShort:
		return "OfxBitDepthShort"
	case DepthHalf:
		return "OfxBitDepthHalf"
	case DepthFloat:
		return "OfxBitDepthFloat"
	default:
		return "OfxBitDepthNone"
	}
}

func (d BitDepth) String() string {
	return strings.TrimPrefix(d.Tag(), "OfxBitDepth")
}

// ParseBitDepth accepts a property tag or a short case-insensitive name.
func ParseBitDepth(s string) (BitDepth, error) {
	if d, ok := parseTag(s, allDepths); ok {
		return d, nil
	}
	for _, d := range allDepths {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return DepthNone, fmt.Errorf("unknown bit depth %q", s)
}

// ImageEffectContext is the context an effect is described and
// instantiated in.
type ImageEffectContext int

// Effect contexts.
const (
	ContextFilter ImageEffectContext = iota + 1
	ContextGeneral
	ContextGenerator
	ContextTransition
	ContextPaint
	ContextRetimer
)

var allContexts = []ImageEffectContext{
	ContextFilter, ContextGeneral, ContextGenerator, ContextTransition, ContextPaint, ContextRetimer,
}

// Tag returns the property value for the context.
func (c ImageEffectContext) Tag() string {
	switch c {
	case ContextFilter:
		return "OfxImageEffectContextFilter"
	case ContextGeneral:
		return "OfxImageEffectContextGeneral"
	case ContextGenerator:
		return "OfxImageEffectContextGenerator"
	case ContextTransition:
		return "OfxImageEffectContextTransition"
	case ContextPaint:
		return "OfxImageEffectContextPaint"
	case ContextRetimer:
		return "OfxImageEffectContextRetimer"
	default:
		return ""
	}
}

func (c ImageEffectContext) String() string {
	return strings.TrimPrefix(c.Tag(), "OfxImageEffectContext")
}

// IsGeneral reports whether c is the general context.
func (c ImageEffectContext) IsGeneral() bool { return c == ContextGeneral }

// ParseImageEffectContext accepts a property tag or a short case-insensitive name.
func ParseImageEffectContext(s string) (ImageEffectContext, error) {
	if c, ok := parseTag(s, allContexts); ok {
		return c, nil
	}
	for _, c := range allContexts {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown effect context %q", s)
}

// ChangeReason says why the host sent InstanceChanged.
type ChangeReason int

// Change reasons. Tags the plugin does not know map to ChangeOther.
const (
	ChangeOther ChangeReason = iota
	ChangeUserEdited
	ChangePluginEdited
	ChangeTime
)

var allChangeReasons = []ChangeReason{ChangeUserEdited, ChangePluginEdited, ChangeTime}

// Tag returns the property value for the reason.
func (r ChangeReason) Tag() string {
	switch r {
	case ChangeUserEdited:
		return "OfxChangeUserEdited"
	case ChangePluginEdited:
		return "OfxChangePluginEdited"
	case ChangeTime:
		return "OfxChangeTime"
	default:
		return "OfxChangeOther"
	}
}

func (r ChangeReason) String() string {
	return strings.TrimPrefix(r.Tag(), "OfxChange")
}

// ParseChangeReason never fails: unknown reasons are ChangeOther.
func ParseChangeReason(s string) ChangeReason {
	if r, ok := parseTag(s, allChangeReasons); ok {
		return r
	}
	for _, r := range allChangeReasons {
		if strings.EqualFold(r.String(), s) || strings.EqualFold(strings.ReplaceAll(s, "_", ""), r.String()) {
			return r
		}
	}
	return ChangeOther
}

// ObjectType is the kind of object an InstanceChanged refers to.
type ObjectType int

// Object types.
const (
	ObjectOther ObjectType = iota
	ObjectClip
	ObjectParameter
)

// Tag returns the property value for the object type.
func (o ObjectType) Tag() string {
	switch o {
	case ObjectClip:
		return "OfxTypeClip"
	case ObjectParameter:
		return "OfxTypeParameter"
	default:
		return "OfxTypeOther"
	}
}

func (o ObjectType) String() string {
	return strings.TrimPrefix(o.Tag(), "OfxType")
}

// ParseObjectType never fails: unknown object types are ObjectOther.
func ParseObjectType(s string) ObjectType {
	for _, o := range []ObjectType{ObjectClip, ObjectParameter} {
		if o.Tag() == s || strings.EqualFold(o.String(), s) {
			return o
		}
	}
	return ObjectOther
}

// ParamType is the declared type of a parameter.
type ParamType int

// Parameter types.
const (
	ParamDouble ParamType = iota + 1
	ParamBoolean
	ParamInteger
	ParamString
	ParamGroup
	ParamPage
)

var allParamTypes = []ParamType{ParamDouble, ParamBoolean, ParamInteger, ParamString, ParamGroup, ParamPage}

// Tag returns the property value for the parameter type.
func (p ParamType) Tag() string {
	switch p {
	case ParamDouble:
		return "OfxParamTypeDouble"
	case ParamBoolean:
		return "OfxParamTypeBoolean"
	case ParamInteger:
		return "OfxParamTypeInteger"
	case ParamString:
		return "OfxParamTypeString"
	case ParamGroup:
		return "OfxParamTypeGroup"
	case ParamPage:
		return "OfxParamTypePage"
	default:
		return ""
	}
}

func (p ParamType) String() string {
	return strings.TrimPrefix(p.Tag(), "OfxParamType")
}

// ParseParamType converts a property tag to a ParamType.
func ParseParamType(tag string) (ParamType, error) {
	if p, ok := parseTag(tag, allParamTypes); ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown parameter type %q", tag)
}

// DoubleType refines how a host presents a double parameter.
type DoubleType int

// Double parameter types.
const (
	DoubleTypePlain DoubleType = iota
	DoubleTypeScale
	DoubleTypeAngle
	DoubleTypeTime
	DoubleTypeAbsoluteTime
)

// Tag returns the property value for the double type.
func (d DoubleType) Tag() string {
	switch d {
	case DoubleTypeScale:
		return "OfxParamDoubleTypeScale"
	case DoubleTypeAngle:
		return "OfxParamDoubleTypeAngle"
	case DoubleTypeTime:
		return "OfxParamDoubleTypeTime"
	case DoubleTypeAbsoluteTime:
		return "OfxParamDoubleTypeAbsoluteTime"
	default:
		return "OfxParamDoubleTypePlain"
	}
}

// RectD is a rectangle in canonical coordinates.
type RectD struct {
	X1, Y1, X2, Y2 float64
}

func (r RectD) values() []float64 { return []float64{r.X1, r.Y1, r.X2, r.Y2} }

// RectI is a rectangle in pixel coordinates.
type RectI struct {
	X1, Y1, X2, Y2 int
}

func (r RectI) values() []int { return []int{r.X1, r.Y1, r.X2, r.Y2} }

// FrameRange is an inclusive range of frames. Frames are real numbers.
type FrameRange struct {
	Min, Max float64
}
