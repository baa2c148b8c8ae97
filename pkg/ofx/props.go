// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// Property keys shared across roles.
const (
	PropType          = "OfxPropType"
	PropName          = "OfxPropName"
	PropLabel         = "OfxPropLabel"
	PropShortLabel    = "OfxPropShortLabel"
	PropLongLabel     = "OfxPropLongLabel"
	PropAPIVersion    = "OfxPropAPIVersion"
	PropVersion       = "OfxPropVersion"
	PropVersionLabel  = "OfxPropVersionLabel"
	PropTime          = "OfxPropTime"
	PropChangeReason  = "OfxPropChangeReason"
	PropIsInteractive = "OfxPropIsInteractive"
	PropPluginDesc    = "OfxPropPluginDescription"
)

// Host and effect keys.
const (
	ImageEffectHostPropIsBackground           = "OfxImageEffectHostPropIsBackground"
	ImageEffectPropSupportsMultipleClipDepths = "OfxImageEffectPropSupportsMultipleClipDepths"
	ImageEffectPropSupportsMultipleClipPARs   = "OfxImageEffectPropSupportsMultipleClipPARs"
	ImageEffectPropSupportsMultiResolution    = "OfxImageEffectPropSupportsMultiResolution"
	ImageEffectPropSupportsTiles              = "OfxImageEffectPropSupportsTiles"
	ImageEffectPropTemporalClipAccess         = "OfxImageEffectPropTemporalClipAccess"
	ImageEffectPropSupportedComponents        = "OfxImageEffectPropSupportedComponents"
	ImageEffectPropSupportedContexts          = "OfxImageEffectPropSupportedContexts"
	ImageEffectPropSupportedPixelDepths       = "OfxImageEffectPropSupportedPixelDepths"
	ImageEffectPluginPropGrouping             = "OfxImageEffectPluginPropGrouping"
	ImageEffectPluginPropSingleInstance       = "OfxImageEffectPluginPropSingleInstance"
	ImageEffectPluginRenderThreadSafety       = "OfxImageEffectPluginRenderThreadSafety"
	ImageEffectPluginPropHostFrameThreading   = "OfxImageEffectPluginPropHostFrameThreading"
	ImageEffectPropContext                    = "OfxImageEffectPropContext"
	ImageEffectPropProjectSize                = "OfxImageEffectPropProjectSize"
	ImageEffectPropFrameRate                  = "OfxImageEffectPropFrameRate"
	ImageEffectInstancePropEffectDuration     = "OfxImageEffectInstancePropEffectDuration"
	ImageEffectPropRenderScale                = "OfxImageEffectPropRenderScale"
	ImageEffectPropRenderWindow               = "OfxImageEffectPropRenderWindow"
	ImageEffectPropFieldToRender              = "OfxImageEffectPropFieldToRender"
	ImageEffectPropRegionOfDefinition         = "OfxImageEffectPropRegionOfDefinition"
	ImageEffectPropRegionOfInterest           = "OfxImageEffectPropRegionOfInterest"
	ImageEffectPropFrameRange                 = "OfxImageEffectPropFrameRange"
	ImageEffectPropFrameStep                  = "OfxImageEffectPropFrameStep"
	ImageEffectPropSequentialRenderStatus     = "OfxImageEffectPropSequentialRenderStatus"
	ImageEffectPropInteractiveRenderStatus    = "OfxImageEffectPropInteractiveRenderStatus"
	ImageEffectPropPreMultiplication          = "OfxImageEffectPropPreMultiplication"
	ImageEffectFrameVarying                   = "OfxImageEffectFrameVarying"
	ImageEffectPropComponents                 = "OfxImageEffectPropComponents"
	ImageEffectPropPixelDepth                 = "OfxImageEffectPropPixelDepth"
	ImageClipPropConnected                    = "OfxImageClipPropConnected"
	ImageClipPropOptional                     = "OfxImageClipPropOptional"
	ImageClipPropIsMask                       = "OfxImageClipPropIsMask"
	ImageClipPropUnmappedComponents           = "OfxImageClipPropUnmappedComponents"
	ImageClipPropUnmappedPixelDepth           = "OfxImageClipPropUnmappedPixelDepth"
	ImageClipPropFieldOrder                   = "OfxImageClipPropFieldOrder"
	ImageClipPropContinuousSamples            = "OfxImageClipPropContinuousSamples"
	ImagePropPixelAspectRatio                 = "OfxImagePropPixelAspectRatio"
	imageClipPropRoIPrefix                    = "OfxImageClipPropRoI_"
	imageClipPropComponentsPrefix             = "OfxImageClipPropComponents_"
	imageClipPropDepthPrefix                  = "OfxImageClipPropDepth_"
	imageClipPropPARPrefix                    = "OfxImageClipPropPAR_"
)

// Parameter keys.
const (
	ParamPropType        = "OfxParamPropType"
	ParamPropHint        = "OfxParamPropHint"
	ParamPropScriptName  = "OfxParamPropScriptName"
	ParamPropParent      = "OfxParamPropParent"
	ParamPropDefault     = "OfxParamPropDefault"
	ParamPropDisplayMin  = "OfxParamPropDisplayMin"
	ParamPropDisplayMax  = "OfxParamPropDisplayMax"
	ParamPropMin         = "OfxParamPropMin"
	ParamPropMax         = "OfxParamPropMax"
	ParamPropDoubleType  = "OfxParamPropDoubleType"
	ParamPropEnabled     = "OfxParamPropEnabled"
	ParamPropSecret      = "OfxParamPropSecret"
	ParamPropAnimates    = "OfxParamPropAnimates"
	ParamPropPageChild   = "OfxParamPropPageChild"
	ParamPropIncrement   = "OfxParamPropIncrement"
	ParamPropDigits      = "OfxParamPropDigits"
	ParamPropStringMode  = "OfxParamPropStringMode"
	ParamPropCanUndo     = "OfxParamPropCanUndo"
	ParamPropPersistent  = "OfxParamPropPersistant"
	ParamPropEvaluateOn  = "OfxParamPropEvaluateOnChange"
	ParamPropIsAnimating = "OfxParamPropIsAnimating"
)

// Clip names with fixed meaning.
const (
	ClipOutput = "Output"
	ClipSource = "Source"
	ClipMask   = "Mask"
)

// ClipPropRoI is the GetRegionsOfInterest out-arg key for one input clip.
func ClipPropRoI(clip string) string { return imageClipPropRoIPrefix + clip }

// ClipPropComponents is the GetClipPreferences out-arg key for the
// components of one clip.
func ClipPropComponents(clip string) string { return imageClipPropComponentsPrefix + clip }

// ClipPropDepth is the GetClipPreferences out-arg key for the depth of one clip.
func ClipPropDepth(clip string) string { return imageClipPropDepthPrefix + clip }

// ClipPropPAR is the GetClipPreferences out-arg key for the pixel aspect
// ratio of one clip.
func ClipPropPAR(clip string) string { return imageClipPropPARPrefix + clip }
