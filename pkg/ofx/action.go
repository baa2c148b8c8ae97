// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// ActionKind identifies a host action.
type ActionKind int

// Action kinds. ActionUnknown covers every name the dispatcher does not
// recognise.
const (
	ActionUnknown ActionKind = iota
	ActionLoad
	ActionUnload
	ActionDescribe
	ActionDescribeInContext
	ActionCreateInstance
	ActionDestroyInstance
	ActionBeginInstanceChanged
	ActionInstanceChanged
	ActionEndInstanceChanged
	ActionGetRegionOfDefinition
	ActionGetRegionsOfInterest
	ActionGetTimeDomain
	ActionGetClipPreferences
	ActionIsIdentity
	ActionRender
	ActionBeginSequenceRender
	ActionEndSequenceRender
	ActionPurgeCaches
	ActionSyncPrivateData
)

var actionNames = map[ActionKind]string{
	ActionLoad:                  "OfxActionLoad",
	ActionUnload:                "OfxActionUnload",
	ActionDescribe:              "OfxActionDescribe",
	ActionDescribeInContext:     "OfxImageEffectActionDescribeInContext",
	ActionCreateInstance:        "OfxActionCreateInstance",
	ActionDestroyInstance:       "OfxActionDestroyInstance",
	ActionBeginInstanceChanged:  "OfxActionBeginInstanceChanged",
	ActionInstanceChanged:       "OfxActionInstanceChanged",
	ActionEndInstanceChanged:    "OfxActionEndInstanceChanged",
	ActionGetRegionOfDefinition: "OfxImageEffectActionGetRegionOfDefinition",
	ActionGetRegionsOfInterest:  "OfxImageEffectActionGetRegionsOfInterest",
	ActionGetTimeDomain:         "OfxImageEffectActionGetTimeDomain",
	ActionGetClipPreferences:    "OfxImageEffectActionGetClipPreferences",
	ActionIsIdentity:            "OfxImageEffectActionIsIdentity",
	ActionRender:                "OfxImageEffectActionRender",
	ActionBeginSequenceRender:   "OfxImageEffectActionBeginSequenceRender",
	ActionEndSequenceRender:     "OfxImageEffectActionEndSequenceRender",
	ActionPurgeCaches:           "OfxActionPurgeCaches",
	ActionSyncPrivateData:       "OfxActionSyncPrivateData",
}

var actionLabels = map[ActionKind]string{
	ActionLoad:                  "load",
	ActionUnload:                "unload",
	ActionDescribe:              "describe",
	ActionDescribeInContext:     "describe_in_context",
	ActionCreateInstance:        "create_instance",
	ActionDestroyInstance:       "destroy_instance",
	ActionBeginInstanceChanged:  "begin_instance_changed",
	ActionInstanceChanged:       "instance_changed",
	ActionEndInstanceChanged:    "end_instance_changed",
	ActionGetRegionOfDefinition: "get_region_of_definition",
	ActionGetRegionsOfInterest:  "get_regions_of_interest",
	ActionGetTimeDomain:         "get_time_domain",
	ActionGetClipPreferences:    "get_clip_preferences",
	ActionIsIdentity:            "is_identity",
	ActionRender:                "render",
	ActionBeginSequenceRender:   "begin_sequence_render",
	ActionEndSequenceRender:     "end_sequence_render",
	ActionPurgeCaches:           "purge_caches",
	ActionSyncPrivateData:       "sync_private_data",
}

// String returns the raw action name sent by hosts.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown"
}

// Label returns the snake_case name used in metrics, logs and session files.
func (k ActionKind) Label() string {
	if label, ok := actionLabels[k]; ok {
		return label
	}
	return "unknown"
}

// ParseActionKind maps a raw action name, or its label, to an ActionKind.
// Names it does not know map to ActionUnknown.
func ParseActionKind(name string) ActionKind {
	for k, n := range actionNames {
		if n == name || actionLabels[k] == name {
			return k
		}
	}
	return ActionUnknown
}

// ActionKinds returns every known kind in protocol order.
func ActionKinds() []ActionKind {
	out := make([]ActionKind, 0, len(actionNames))
	for k := ActionLoad; k <= ActionSyncPrivateData; k++ {
		out = append(out, k)
	}
	return out
}

// global reports whether the action is addressed to the plugin or a
// descriptor rather than to an instance.
func (k ActionKind) global() bool {
	switch k {
	case ActionLoad, ActionUnload, ActionDescribe, ActionDescribeInContext:
		return true
	default:
		return false
	}
}

// Action is one decoded host action. The set of implementations is closed;
// plugins switch on the concrete type.
type Action interface {
	Kind() ActionKind
	isAction()
}

// Load is sent once before any other action.
type Load struct{}

// Unload is sent once after every instance is destroyed.
type Unload struct{}

// Describe asks for the effect's global metadata.
type Describe struct {
	Effect *EffectDescriptor
}

// DescribeInContext asks for the clips and parameters of one context.
type DescribeInContext struct {
	Effect *EffectDescriptor
	InArgs DescribeInContextInArgs
}

// CreateInstance announces a new instance. Instance data is attached here.
type CreateInstance struct {
	Effect *ImageEffect
}

// DestroyInstance announces the end of an instance. The instance data is
// released once the plugin returns.
type DestroyInstance struct {
	Effect *ImageEffect
}

// BeginInstanceChanged opens a batch of InstanceChanged actions.
type BeginInstanceChanged struct {
	Effect *ImageEffect
	InArgs ChangeGroupInArgs
}

// InstanceChanged reports that a clip or parameter changed.
type InstanceChanged struct {
	Effect *ImageEffect
	InArgs InstanceChangedInArgs
}

// EndInstanceChanged closes a batch of InstanceChanged actions.
type EndInstanceChanged struct {
	Effect *ImageEffect
	InArgs ChangeGroupInArgs
}

// GetRegionOfDefinition asks for the output's region of definition.
type GetRegionOfDefinition struct {
	Effect  *ImageEffect
	InArgs  RegionOfDefinitionInArgs
	OutArgs RegionOfDefinitionOutArgs
}

// GetRegionsOfInterest asks which part of each input a render window needs.
type GetRegionsOfInterest struct {
	Effect  *ImageEffect
	InArgs  RegionsOfInterestInArgs
	OutArgs RegionsOfInterestOutArgs
}

// GetTimeDomain asks for the frame range the effect can produce.
type GetTimeDomain struct {
	Effect  *ImageEffect
	OutArgs TimeDomainOutArgs
}

// GetClipPreferences asks for the components and depths the effect wants.
type GetClipPreferences struct {
	Effect  *ImageEffect
	OutArgs ClipPreferencesOutArgs
}

// IsIdentity asks whether the output equals one input unchanged.
type IsIdentity struct {
	Effect  *ImageEffect
	InArgs  IsIdentityInArgs
	OutArgs IsIdentityOutArgs
}

// Render asks the effect to render a window of one frame.
type Render struct {
	Effect *ImageEffect
	InArgs RenderInArgs
}

// BeginSequenceRender precedes a run of Render actions.
type BeginSequenceRender struct {
	Effect *ImageEffect
	InArgs SequenceRenderInArgs
}

// EndSequenceRender follows a run of Render actions.
type EndSequenceRender struct {
	Effect *ImageEffect
	InArgs SequenceRenderInArgs
}

// PurgeCaches asks the effect to drop anything it can recompute.
type PurgeCaches struct {
	Effect *ImageEffect
}

// SyncPrivateData asks the effect to flush private state into parameters.
type SyncPrivateData struct {
	Effect *ImageEffect
}

func (Load) Kind() ActionKind                  { return ActionLoad }
func (Unload) Kind() ActionKind                { return ActionUnload }
func (Describe) Kind() ActionKind              { return ActionDescribe }
func (DescribeInContext) Kind() ActionKind     { return ActionDescribeInContext }
func (CreateInstance) Kind() ActionKind        { return ActionCreateInstance }
func (DestroyInstance) Kind() ActionKind       { return ActionDestroyInstance }
func (BeginInstanceChanged) Kind() ActionKind  { return ActionBeginInstanceChanged }
func (InstanceChanged) Kind() ActionKind       { return ActionInstanceChanged }
func (EndInstanceChanged) Kind() ActionKind    { return ActionEndInstanceChanged }
func (GetRegionOfDefinition) Kind() ActionKind { return ActionGetRegionOfDefinition }
func (GetRegionsOfInterest) Kind() ActionKind  { return ActionGetRegionsOfInterest }
func (GetTimeDomain) Kind() ActionKind         { return ActionGetTimeDomain }
func (GetClipPreferences) Kind() ActionKind    { return ActionGetClipPreferences }
func (IsIdentity) Kind() ActionKind            { return ActionIsIdentity }
func (Render) Kind() ActionKind                { return ActionRender }
func (BeginSequenceRender) Kind() ActionKind   { return ActionBeginSequenceRender }
func (EndSequenceRender) Kind() ActionKind     { return ActionEndSequenceRender }
func (PurgeCaches) Kind() ActionKind           { return ActionPurgeCaches }
func (SyncPrivateData) Kind() ActionKind       { return ActionSyncPrivateData }

func (Load) isAction()                  {}
func (Unload) isAction()                {}
func (Describe) isAction()              {}
func (DescribeInContext) isAction()     {}
func (CreateInstance) isAction()        {}
func (DestroyInstance) isAction()       {}
func (BeginInstanceChanged) isAction()  {}
func (InstanceChanged) isAction()       {}
func (EndInstanceChanged) isAction()    {}
func (GetRegionOfDefinition) isAction() {}
func (GetRegionsOfInterest) isAction()  {}
func (GetTimeDomain) isAction()         {}
func (GetClipPreferences) isAction()    {}
func (IsIdentity) isAction()            {}
func (Render) isAction()                {}
func (BeginSequenceRender) isAction()   {}
func (EndSequenceRender) isAction()     {}
func (PurgeCaches) isAction()           {}
func (SyncPrivateData) isAction()       {}

// bindings is what the dispatcher has resolved before building an action.
type bindings struct {
	descriptor *EffectDescriptor
	effect     *ImageEffect
	in         *PropertySet
	out        *PropertySet
}

// ArgSchemas returns the in and out schemas of kind. A nil schema means the
// action carries no such set.
func ArgSchemas(kind ActionKind) (in, out *Schema) {
	switch kind {
	case ActionDescribeInContext:
		return DescribeInContextInSchema, nil
	case ActionBeginInstanceChanged, ActionEndInstanceChanged:
		return ChangeGroupInSchema, nil
	case ActionInstanceChanged:
		return InstanceChangedInSchema, nil
	case ActionGetRegionOfDefinition:
		return RegionOfDefinitionInSchema, RegionOfDefinitionOutSchema
	case ActionGetRegionsOfInterest:
		return RegionsOfInterestInSchema, RegionsOfInterestOutSchema
	case ActionGetTimeDomain:
		return nil, TimeDomainOutSchema
	case ActionGetClipPreferences:
		return nil, ClipPreferencesOutSchema
	case ActionIsIdentity:
		return IsIdentityInSchema, IsIdentityOutSchema
	case ActionRender:
		return RenderInSchema, nil
	case ActionBeginSequenceRender, ActionEndSequenceRender:
		return SequenceRenderInSchema, nil
	default:
		return nil, nil
	}
}

// newAction builds the typed action for kind. Every kind is listed, so a
// kind added to ActionKinds without a case here fails TestNewActionCoversEveryKind.
func newAction(kind ActionKind, b bindings) Action {
	switch kind {
	case ActionLoad:
		return Load{}
	case ActionUnload:
		return Unload{}
	case ActionDescribe:
		return Describe{Effect: b.descriptor}
	case ActionDescribeInContext:
		return DescribeInContext{Effect: b.descriptor, InArgs: DescribeInContextInArgs{b.in}}
	case ActionCreateInstance:
		return CreateInstance{Effect: b.effect}
	case ActionDestroyInstance:
		return DestroyInstance{Effect: b.effect}
	case ActionBeginInstanceChanged:
		return BeginInstanceChanged{Effect: b.effect, InArgs: ChangeGroupInArgs{b.in}}
	case ActionInstanceChanged:
		return InstanceChanged{Effect: b.effect, InArgs: InstanceChangedInArgs{b.in}}
	case ActionEndInstanceChanged:
		return EndInstanceChanged{Effect: b.effect, InArgs: ChangeGroupInArgs{b.in}}
	case ActionGetRegionOfDefinition:
		return GetRegionOfDefinition{
			Effect:  b.effect,
			InArgs:  RegionOfDefinitionInArgs{b.in},
			OutArgs: RegionOfDefinitionOutArgs{b.out},
		}
	case ActionGetRegionsOfInterest:
		return GetRegionsOfInterest{
			Effect:  b.effect,
			InArgs:  RegionsOfInterestInArgs{b.in},
			OutArgs: RegionsOfInterestOutArgs{b.out},
		}
	case ActionGetTimeDomain:
		return GetTimeDomain{Effect: b.effect, OutArgs: TimeDomainOutArgs{b.out}}
	case ActionGetClipPreferences:
		return GetClipPreferences{Effect: b.effect, OutArgs: ClipPreferencesOutArgs{b.out}}
	case ActionIsIdentity:
		return IsIdentity{
			Effect:  b.effect,
			InArgs:  IsIdentityInArgs{b.in},
			OutArgs: IsIdentityOutArgs{b.out},
		}
	case ActionRender:
		return Render{Effect: b.effect, InArgs: RenderInArgs{b.in}}
	case ActionBeginSequenceRender:
		return BeginSequenceRender{Effect: b.effect, InArgs: SequenceRenderInArgs{b.in}}
	case ActionEndSequenceRender:
		return EndSequenceRender{Effect: b.effect, InArgs: SequenceRenderInArgs{b.in}}
	case ActionPurgeCaches:
		return PurgeCaches{Effect: b.effect}
	case ActionSyncPrivateData:
		return SyncPrivateData{Effect: b.effect}
	default:
		return nil
	}
}
