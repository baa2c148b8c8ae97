// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import "sort"

// Role names.
const (
	RoleHost                  = "host"
	RoleEffectDescriptor      = "effect_descriptor"
	RoleEffectInstance        = "effect_instance"
	RoleClipDescriptor        = "clip_descriptor"
	RoleClipInstance          = "clip_instance"
	RoleDescribeInContextIn   = "describe_in_context_in"
	RoleInstanceChangedIn     = "instance_changed_in"
	RoleChangeGroupIn         = "begin_end_instance_changed_in"
	RoleRegionOfDefinitionIn  = "get_region_of_definition_in"
	RoleRegionOfDefinitionOut = "get_region_of_definition_out"
	RoleRegionsOfInterestIn   = "get_regions_of_interest_in"
	RoleRegionsOfInterestOut  = "get_regions_of_interest_out"
	RoleTimeDomainOut         = "get_time_domain_out"
	RoleClipPreferencesOut    = "get_clip_preferences_out"
	RoleIsIdentityIn          = "is_identity_in"
	RoleIsIdentityOut         = "is_identity_out"
	RoleRenderIn              = "render_in"
	RoleSequenceRenderIn      = "sequence_render_in"
)

// multi marks a key with a variable number of values.
const multi = 0

func rw(t PropertyType, dim int) PropertySpec { return PropertySpec{Type: t, Dimension: dim} }

func ro(t PropertyType, dim int) PropertySpec {
	return PropertySpec{Type: t, Dimension: dim, ReadOnly: true}
}

// HostSchema is the key set of the host descriptor.
var HostSchema = NewSchema(RoleHost).
	MustRegister(PropName, ro(TypeString, 1)).
	MustRegister(PropLabel, ro(TypeString, 1)).
	MustRegister(PropAPIVersion, ro(TypeInt, multi)).
	MustRegister(PropVersion, ro(TypeInt, multi)).
	MustRegister(PropVersionLabel, ro(TypeString, 1)).
	MustRegister(ImageEffectHostPropIsBackground, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsMultipleClipDepths, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsMultipleClipPARs, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsMultiResolution, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsTiles, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropTemporalClipAccess, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportedComponents, ro(TypeTag, multi)).
	MustRegister(ImageEffectPropSupportedContexts, ro(TypeTag, multi)).
	MustRegister(ImageEffectPropSupportedPixelDepths, ro(TypeTag, multi))

// EffectDescriptorSchema is the key set written during Describe and
// DescribeInContext.
var EffectDescriptorSchema = NewSchema(RoleEffectDescriptor).
	MustRegister(PropType, ro(TypeString, 1)).
	MustRegister(PropLabel, rw(TypeString, 1)).
	MustRegister(PropShortLabel, rw(TypeString, 1)).
	MustRegister(PropLongLabel, rw(TypeString, 1)).
	MustRegister(PropVersion, rw(TypeInt, multi)).
	MustRegister(PropVersionLabel, rw(TypeString, 1)).
	MustRegister(PropPluginDesc, rw(TypeString, 1)).
	MustRegister(ImageEffectPluginPropGrouping, rw(TypeString, 1)).
	MustRegister(ImageEffectPluginPropSingleInstance, rw(TypeBool, 1)).
	MustRegister(ImageEffectPluginRenderThreadSafety, rw(TypeString, 1)).
	MustRegister(ImageEffectPluginPropHostFrameThreading, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportedContexts, rw(TypeTag, multi)).
	MustRegister(ImageEffectPropSupportedPixelDepths, rw(TypeTag, multi)).
	MustRegister(ImageEffectPropSupportsMultipleClipDepths, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsMultipleClipPARs, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsMultiResolution, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsTiles, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropTemporalClipAccess, rw(TypeBool, 1))

// EffectInstanceSchema is the key set of a live effect instance.
var EffectInstanceSchema = NewSchema(RoleEffectInstance).
	MustRegister(PropType, ro(TypeString, 1)).
	MustRegister(ImageEffectPropContext, ro(TypeTag, 1)).
	MustRegister(PropIsInteractive, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropProjectSize, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropFrameRate, ro(TypeDouble, 1)).
	MustRegister(ImageEffectInstancePropEffectDuration, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropSupportsMultipleClipPARs, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsTiles, rw(TypeBool, 1))

// ClipDescriptorSchema is the key set of a clip declared in DescribeInContext.
var ClipDescriptorSchema = NewSchema(RoleClipDescriptor).
	MustRegister(PropType, ro(TypeString, 1)).
	MustRegister(PropName, ro(TypeString, 1)).
	MustRegister(PropLabel, rw(TypeString, 1)).
	MustRegister(PropShortLabel, rw(TypeString, 1)).
	MustRegister(PropLongLabel, rw(TypeString, 1)).
	MustRegister(ImageEffectPropSupportedComponents, rw(TypeTag, multi)).
	MustRegister(ImageEffectPropTemporalClipAccess, rw(TypeBool, 1)).
	MustRegister(ImageClipPropOptional, rw(TypeBool, 1)).
	MustRegister(ImageClipPropIsMask, rw(TypeBool, 1)).
	MustRegister(ImageEffectPropSupportsTiles, rw(TypeBool, 1))

// ClipInstanceSchema is the key set of a clip bound to an instance. The
// descriptor keys become read only and the host adds connection state.
var ClipInstanceSchema = readOnlyCopy(ClipDescriptorSchema, RoleClipInstance).
	MustRegister(ImageClipPropConnected, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropComponents, ro(TypeTag, 1)).
	MustRegister(ImageClipPropUnmappedComponents, ro(TypeTag, 1)).
	MustRegister(ImageEffectPropPixelDepth, ro(TypeTag, 1)).
	MustRegister(ImageClipPropUnmappedPixelDepth, ro(TypeTag, 1)).
	MustRegister(ImagePropPixelAspectRatio, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropFrameRange, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropFrameRate, ro(TypeDouble, 1)).
	MustRegister(ImageClipPropFieldOrder, ro(TypeString, 1)).
	MustRegister(ImageClipPropContinuousSamples, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropPreMultiplication, ro(TypeString, 1))

var paramDescriptorSchemas = map[ParamType]*Schema{}
var paramInstanceSchemas = map[ParamType]*Schema{}

func init() {
	for _, kind := range allParamTypes {
		desc := NewSchema("param_descriptor_" + kind.String()).
			MustRegister(ParamPropType, ro(TypeTag, 1)).
			MustRegister(PropName, ro(TypeString, 1)).
			MustRegister(PropLabel, rw(TypeString, 1)).
			MustRegister(PropShortLabel, rw(TypeString, 1)).
			MustRegister(PropLongLabel, rw(TypeString, 1)).
			MustRegister(ParamPropHint, rw(TypeString, 1)).
			MustRegister(ParamPropScriptName, rw(TypeString, 1)).
			MustRegister(ParamPropParent, rw(TypeString, 1)).
			MustRegister(ParamPropEnabled, rw(TypeBool, 1)).
			MustRegister(ParamPropSecret, rw(TypeBool, 1))
		switch kind {
		case ParamDouble:
			desc.MustRegister(ParamPropDefault, rw(TypeDouble, 1)).
				MustRegister(ParamPropDisplayMin, rw(TypeDouble, 1)).
				MustRegister(ParamPropDisplayMax, rw(TypeDouble, 1)).
				MustRegister(ParamPropMin, rw(TypeDouble, 1)).
				MustRegister(ParamPropMax, rw(TypeDouble, 1)).
				MustRegister(ParamPropIncrement, rw(TypeDouble, 1)).
				MustRegister(ParamPropDigits, rw(TypeInt, 1)).
				MustRegister(ParamPropDoubleType, rw(TypeTag, 1))
		case ParamInteger:
			desc.MustRegister(ParamPropDefault, rw(TypeInt, 1)).
				MustRegister(ParamPropDisplayMin, rw(TypeInt, 1)).
				MustRegister(ParamPropDisplayMax, rw(TypeInt, 1)).
				MustRegister(ParamPropMin, rw(TypeInt, 1)).
				MustRegister(ParamPropMax, rw(TypeInt, 1))
		case ParamBoolean:
			desc.MustRegister(ParamPropDefault, rw(TypeBool, 1))
		case ParamString:
			desc.MustRegister(ParamPropDefault, rw(TypeString, 1)).
				MustRegister(ParamPropStringMode, rw(TypeString, 1))
		case ParamPage:
			desc.MustRegister(ParamPropPageChild, rw(TypeString, multi))
		}
		if kind != ParamGroup && kind != ParamPage {
			desc.MustRegister(ParamPropAnimates, rw(TypeBool, 1)).
				MustRegister(ParamPropCanUndo, rw(TypeBool, 1)).
				MustRegister(ParamPropPersistent, rw(TypeBool, 1)).
				MustRegister(ParamPropEvaluateOn, rw(TypeBool, 1))
		}
		paramDescriptorSchemas[kind] = desc

		inst := readOnlyCopy(desc, "param_instance_"+kind.String())
		// Only these stay writable once the instance exists.
		for _, key := range []string{ParamPropEnabled, ParamPropSecret, PropLabel, ParamPropHint} {
			inst.keys[key] = rw(inst.keys[key].Type, 1)
		}
		if kind != ParamGroup && kind != ParamPage {
			inst.MustRegister(ParamPropIsAnimating, ro(TypeBool, 1))
		}
		paramInstanceSchemas[kind] = inst
	}
}

// ParamDescriptorSchema returns the key set of a parameter descriptor of kind.
func ParamDescriptorSchema(kind ParamType) *Schema { return paramDescriptorSchemas[kind] }

// ParamInstanceSchema returns the key set of a live parameter of kind.
func ParamInstanceSchema(kind ParamType) *Schema { return paramInstanceSchemas[kind] }

// DescribeInContextInSchema is the in-args of DescribeInContext.
var DescribeInContextInSchema = NewSchema(RoleDescribeInContextIn).
	MustRegister(ImageEffectPropContext, ro(TypeTag, 1))

// ChangeGroupInSchema is the in-args of BeginInstanceChanged and EndInstanceChanged.
var ChangeGroupInSchema = NewSchema(RoleChangeGroupIn).
	MustRegister(PropChangeReason, ro(TypeTag, 1))

// InstanceChangedInSchema is the in-args of InstanceChanged.
var InstanceChangedInSchema = NewSchema(RoleInstanceChangedIn).
	MustRegister(PropType, ro(TypeTag, 1)).
	MustRegister(PropName, ro(TypeString, 1)).
	MustRegister(PropChangeReason, ro(TypeTag, 1)).
	MustRegister(PropTime, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2))

// RegionOfDefinitionInSchema is the in-args of GetRegionOfDefinition.
var RegionOfDefinitionInSchema = NewSchema(RoleRegionOfDefinitionIn).
	MustRegister(PropTime, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2))

// RegionOfDefinitionOutSchema is the out-args of GetRegionOfDefinition.
var RegionOfDefinitionOutSchema = NewSchema(RoleRegionOfDefinitionOut).
	MustRegister(ImageEffectPropRegionOfDefinition, rw(TypeDouble, 4))

// RegionsOfInterestInSchema is the in-args of GetRegionsOfInterest.
var RegionsOfInterestInSchema = NewSchema(RoleRegionsOfInterestIn).
	MustRegister(PropTime, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropRegionOfInterest, ro(TypeDouble, 4))

// RegionsOfInterestOutSchema is the out-args of GetRegionsOfInterest.
var RegionsOfInterestOutSchema = NewSchema(RoleRegionsOfInterestOut).
	MustRegisterPattern(imageClipPropRoIPrefix+"*", rw(TypeDouble, 4))

// TimeDomainOutSchema is the out-args of GetTimeDomain.
var TimeDomainOutSchema = NewSchema(RoleTimeDomainOut).
	MustRegister(ImageEffectPropFrameRange, rw(TypeDouble, 2))

// ClipPreferencesOutSchema is the out-args of GetClipPreferences.
var ClipPreferencesOutSchema = NewSchema(RoleClipPreferencesOut).
	MustRegisterPattern(imageClipPropComponentsPrefix+"*", rw(TypeTag, 1)).
	MustRegisterPattern(imageClipPropDepthPrefix+"*", rw(TypeTag, 1)).
	MustRegisterPattern(imageClipPropPARPrefix+"*", rw(TypeDouble, 1)).
	MustRegister(ImageEffectPropFrameRate, rw(TypeDouble, 1)).
	MustRegister(ImageClipPropFieldOrder, rw(TypeString, 1)).
	MustRegister(ImageEffectPropPreMultiplication, rw(TypeString, 1)).
	MustRegister(ImageClipPropContinuousSamples, rw(TypeBool, 1)).
	MustRegister(ImageEffectFrameVarying, rw(TypeBool, 1))

// IsIdentityInSchema is the in-args of IsIdentity.
var IsIdentityInSchema = NewSchema(RoleIsIdentityIn).
	MustRegister(PropTime, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropFieldToRender, ro(TypeString, 1)).
	MustRegister(ImageEffectPropRenderWindow, ro(TypeInt, 4)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2))

// IsIdentityOutSchema is the out-args of IsIdentity.
var IsIdentityOutSchema = NewSchema(RoleIsIdentityOut).
	MustRegister(PropName, rw(TypeString, 1)).
	MustRegister(PropTime, rw(TypeDouble, 1))

// RenderInSchema is the in-args of Render.
var RenderInSchema = NewSchema(RoleRenderIn).
	MustRegister(PropTime, ro(TypeDouble, 1)).
	MustRegister(ImageEffectPropFieldToRender, ro(TypeString, 1)).
	MustRegister(ImageEffectPropRenderWindow, ro(TypeInt, 4)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropSequentialRenderStatus, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropInteractiveRenderStatus, ro(TypeBool, 1))

// SequenceRenderInSchema is the in-args of BeginSequenceRender and EndSequenceRender.
var SequenceRenderInSchema = NewSchema(RoleSequenceRenderIn).
	MustRegister(ImageEffectPropFrameRange, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropFrameStep, ro(TypeDouble, 1)).
	MustRegister(PropIsInteractive, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropRenderScale, ro(TypeDouble, 2)).
	MustRegister(ImageEffectPropSequentialRenderStatus, ro(TypeBool, 1)).
	MustRegister(ImageEffectPropInteractiveRenderStatus, ro(TypeBool, 1))

func readOnlyCopy(base *Schema, role string) *Schema {
	out := base.with(role)
	for k, v := range out.keys {
		v.ReadOnly = true
		out.keys[k] = v
	}
	for i := range out.patterns {
		out.patterns[i].spec.ReadOnly = true
	}
	return out
}

// Schemas returns every built-in role schema keyed by role name. Hosts use
// it to validate what they put into argument sets.
func Schemas() map[string]*Schema {
	out := map[string]*Schema{}
	for _, s := range []*Schema{
		HostSchema, EffectDescriptorSchema, EffectInstanceSchema,
		ClipDescriptorSchema, ClipInstanceSchema,
		DescribeInContextInSchema, ChangeGroupInSchema, InstanceChangedInSchema,
		RegionOfDefinitionInSchema, RegionOfDefinitionOutSchema,
		RegionsOfInterestInSchema, RegionsOfInterestOutSchema,
		TimeDomainOutSchema, ClipPreferencesOutSchema,
		IsIdentityInSchema, IsIdentityOutSchema,
		RenderInSchema, SequenceRenderInSchema,
	} {
		out[s.Role()] = s
	}
	for _, kind := range allParamTypes {
		out[paramDescriptorSchemas[kind].Role()] = paramDescriptorSchemas[kind]
		out[paramInstanceSchemas[kind].Role()] = paramInstanceSchemas[kind]
	}
	return out
}

// RoleNames returns the names of Schemas in sorted order.
func RoleNames() []string {
	all := Schemas()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
