// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package hostsim is an in-memory image effect host. It implements the
// property, effect and parameter suites a plugin calls back into, owns
// clip connections and parameter curves, and lets tests and the session
// runner change that state between actions the way an editing
// application would.
package hostsim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// Compile-time interface checks.
var (
	_ ofx.PropertyStore = (*Host)(nil)
	_ ofx.EffectSuite   = (*Host)(nil)
	_ ofx.ParamSuite    = (*Host)(nil)
)

// Options describes the simulated host's capabilities.
type Options struct {
	Name                       string
	APIVersion                 []int
	SupportsMultipleClipDepths bool
	SupportedComponents        []ofx.ImageComponent
}

// DefaultOptions returns the options of a typical single-depth host.
func DefaultOptions() Options {
	return Options{
		Name:       "ofxgo.hostsim",
		APIVersion: []int{1, 4},
		SupportedComponents: []ofx.ImageComponent{
			ofx.ComponentRGBA, ofx.ComponentRGB, ofx.ComponentAlpha,
		},
	}
}

type propSet struct {
	schema *ofx.Schema
	values map[string][]byte
}

type clip struct {
	name  string
	props ofx.Handle
	rod   ofx.RectD
}

type param struct {
	name  string
	kind  ofx.ParamType
	props ofx.Handle
	curve Curve
}

type paramSet struct {
	params map[string]ofx.Handle
	order  []string
}

type effect struct {
	props      ofx.Handle
	params     ofx.Handle
	descriptor bool
	context    ofx.ImageEffectContext
	clips      map[string]ofx.Handle
	clipOrder  []string
}

// Host is a simulated host. It is safe for concurrent use.
type Host struct {
	mu        sync.RWMutex
	handle    ofx.Handle
	sets      map[ofx.Handle]*propSet
	effects   map[ofx.Handle]*effect
	clips     map[ofx.Handle]*clip
	params    map[ofx.Handle]*param
	paramSets map[ofx.Handle]*paramSet
	time      float64
	lua       *StateFactory
}

// New creates a host with the given capabilities.
func New(opts Options) *Host {
	if opts.Name == "" {
		opts.Name = DefaultOptions().Name
	}
	if len(opts.APIVersion) == 0 {
		opts.APIVersion = DefaultOptions().APIVersion
	}
	if len(opts.SupportedComponents) == 0 {
		opts.SupportedComponents = DefaultOptions().SupportedComponents
	}
	h := &Host{
		sets:      make(map[ofx.Handle]*propSet),
		effects:   make(map[ofx.Handle]*effect),
		clips:     make(map[ofx.Handle]*clip),
		params:    make(map[ofx.Handle]*param),
		paramSets: make(map[ofx.Handle]*paramSet),
		lua:       NewStateFactory(),
	}
	h.handle = h.newSet(ofx.HostSchema, map[string]any{
		ofx.PropName:                                  opts.Name,
		ofx.PropLabel:                                 opts.Name,
		ofx.PropAPIVersion:                            opts.APIVersion,
		ofx.ImageEffectHostPropIsBackground:           false,
		ofx.ImageEffectPropSupportsMultipleClipDepths: opts.SupportsMultipleClipDepths,
		ofx.ImageEffectPropSupportsMultipleClipPARs:   false,
		ofx.ImageEffectPropSupportsMultiResolution:    true,
		ofx.ImageEffectPropSupportsTiles:              true,
		ofx.ImageEffectPropTemporalClipAccess:         false,
		ofx.ImageEffectPropSupportedComponents:        opts.SupportedComponents,
		ofx.ImageEffectPropSupportedContexts: []ofx.ImageEffectContext{
			ofx.ContextFilter, ofx.ContextGeneral, ofx.ContextGenerator,
		},
		ofx.ImageEffectPropSupportedPixelDepths: []ofx.BitDepth{
			ofx.DepthByte, ofx.DepthShort, ofx.DepthFloat,
		},
	})
	return h
}

// Suites returns the host as the plugin sees it.
func (h *Host) Suites() *ofx.Host {
	return &ofx.Host{Handle: h.handle, Properties: h, Effects: h, Params: h}
}

// Handle returns the host descriptor property set.
func (h *Host) Handle() ofx.Handle { return h.handle }

// SetTime sets the current time used by ParamGetValue.
func (h *Host) SetTime(t float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.time = t
}

// Time returns the current time.
func (h *Host) Time() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.time
}

func newHandle(kind string) ofx.Handle {
	return ofx.Handle(kind + "-" + ulid.Make().String())
}

func statusErr(status ofx.Status, format string, args ...any) error {
	return &ofx.StatusError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// newSet creates a property set. Callers hold h.mu or own h exclusively.
// Values that fail to encode panic: they are host constants.
func (h *Host) newSet(schema *ofx.Schema, values map[string]any) ofx.Handle {
	handle := newHandle("props")
	ps := &propSet{schema: schema, values: make(map[string][]byte, len(values))}
	for k, v := range values {
		raw, err := Encode(v)
		if err != nil {
			panic(fmt.Sprintf("hostsim: encode %s: %v", k, err))
		}
		ps.values[k] = raw
	}
	h.sets[handle] = ps
	return handle
}

func (h *Host) put(set ofx.Handle, key string, v any) error {
	ps, ok := h.sets[set]
	if !ok {
		return statusErr(ofx.StatErrBadHandle, "no property set %s", set)
	}
	if _, err := ps.schema.Lookup(key); err != nil {
		return statusErr(ofx.StatErrUnknown, "%s has no property %s", ps.schema.Role(), key)
	}
	raw, err := Encode(v)
	if err != nil {
		return statusErr(ofx.StatErrValue, "%s: %v", key, err)
	}
	ps.values[key] = raw
	return nil
}

// copyInto copies every value of from whose key the target schema knows.
func (h *Host) copyInto(to, from ofx.Handle) {
	src, dst := h.sets[from], h.sets[to]
	for k, raw := range src.values {
		if _, err := dst.schema.Lookup(k); err == nil {
			dst.values[k] = append([]byte(nil), raw...)
		}
	}
}

// GetRaw implements ofx.PropertyStore.
func (h *Host) GetRaw(set ofx.Handle, key string) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ps, ok := h.sets[set]
	if !ok {
		return nil, statusErr(ofx.StatErrBadHandle, "no property set %s", set)
	}
	if _, err := ps.schema.Lookup(key); err != nil {
		return nil, statusErr(ofx.StatErrUnknown, "%s has no property %s", ps.schema.Role(), key)
	}
	raw, ok := ps.values[key]
	if !ok {
		return nil, statusErr(ofx.StatErrValue, "%s has no value for %s", ps.schema.Role(), key)
	}
	return append([]byte(nil), raw...), nil
}

// SetRaw implements ofx.PropertyStore. The value must decode as the
// schema type of key.
func (h *Host) SetRaw(set ofx.Handle, key string, raw []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	ps, ok := h.sets[set]
	if !ok {
		return statusErr(ofx.StatErrBadHandle, "no property set %s", set)
	}
	spec, err := ps.schema.Lookup(key)
	if err != nil {
		return statusErr(ofx.StatErrUnknown, "%s has no property %s", ps.schema.Role(), key)
	}
	if err := checkRaw(spec, raw); err != nil {
		return statusErr(ofx.StatErrValue, "%s: %v", key, err)
	}
	ps.values[key] = append([]byte(nil), raw...)
	return nil
}

func checkRaw(spec ofx.PropertySpec, raw []byte) error {
	var n int
	var err error
	switch spec.Type {
	case ofx.TypeDouble:
		var vs []float64
		vs, err = ofx.UnmarshalValues[float64](raw)
		n = len(vs)
	case ofx.TypeInt:
		var vs []int
		vs, err = ofx.UnmarshalValues[int](raw)
		n = len(vs)
	case ofx.TypeBool:
		var vs []bool
		vs, err = ofx.UnmarshalValues[bool](raw)
		n = len(vs)
	case ofx.TypeString, ofx.TypeTag:
		var vs []string
		vs, err = ofx.UnmarshalValues[string](raw)
		n = len(vs)
	case ofx.TypeBytes:
		var vs [][]byte
		vs, err = ofx.UnmarshalValues[[]byte](raw)
		n = len(vs)
	}
	if err != nil {
		return err
	}
	if spec.Dimension > 0 && n != spec.Dimension {
		return fmt.Errorf("want %d values, got %d", spec.Dimension, n)
	}
	return nil
}

// NewPropertySet creates a free-standing property set, typically the
// in-args or out-args of one action. Release it once the action returns.
func (h *Host) NewPropertySet(schema *ofx.Schema, values map[string]any) (ofx.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle := newHandle("args")
	h.sets[handle] = &propSet{schema: schema, values: map[string][]byte{}}
	for k, v := range values {
		if err := h.put(handle, k, v); err != nil {
			delete(h.sets, handle)
			return "", err
		}
	}
	return handle, nil
}

// Release drops a property set created by NewPropertySet.
func (h *Host) Release(set ofx.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sets, set)
}

// Snapshot decodes every value of a property set. Single values are
// unwrapped from their slice.
func (h *Host) Snapshot(set ofx.Handle) (map[string]any, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ps, ok := h.sets[set]
	if !ok {
		return nil, statusErr(ofx.StatErrBadHandle, "no property set %s", set)
	}
	out := make(map[string]any, len(ps.values))
	for k, raw := range ps.values {
		vs, err := ofx.DecodeAny(raw)
		if err != nil {
			return nil, err
		}
		spec, _ := ps.schema.Lookup(k)
		if len(vs) == 1 && spec.Dimension == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	return out, nil
}

// NewDescriptor creates the effect descriptor handed to Describe.
func (h *Host) NewDescriptor() ofx.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.newEffect(0, true)
}

// NewContextDescriptor creates the descriptor handed to DescribeInContext.
// It starts with the properties set on global during Describe.
func (h *Host) NewContextDescriptor(global ofx.Handle, c ofx.ImageEffectContext) (ofx.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	g, ok := h.effects[global]
	if !ok || !g.descriptor {
		return "", statusErr(ofx.StatErrBadHandle, "no descriptor %s", global)
	}
	handle := h.newEffect(c, true)
	h.copyInto(h.effects[handle].props, g.props)
	return handle, nil
}

func (h *Host) newEffect(c ofx.ImageEffectContext, descriptor bool) ofx.Handle {
	handle := newHandle("effect")
	e := &effect{
		descriptor: descriptor,
		context:    c,
		clips:      make(map[string]ofx.Handle),
	}
	if descriptor {
		e.props = h.newSet(ofx.EffectDescriptorSchema, map[string]any{
			ofx.PropType: "OfxTypeImageEffect",
		})
	} else {
		e.props = h.newSet(ofx.EffectInstanceSchema, map[string]any{
			ofx.PropType:                              "OfxTypeImageEffectInstance",
			ofx.ImageEffectPropContext:                c,
			ofx.PropIsInteractive:                     false,
			ofx.ImageEffectPropProjectSize:            []float64{1920, 1080},
			ofx.ImageEffectPropFrameRate:              24.0,
			ofx.ImageEffectInstancePropEffectDuration: 100.0,
		})
	}
	e.params = newHandle("params")
	h.paramSets[e.params] = &paramSet{params: make(map[string]ofx.Handle)}
	h.effects[handle] = e
	return handle
}

// NewInstance creates an instance from a context descriptor, with its
// clips disconnected (Output connected) and its parameters at their
// defaults. The plugin learns about it through CreateInstance.
func (h *Host) NewInstance(descriptor ofx.Handle) (ofx.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	desc, ok := h.effects[descriptor]
	if !ok || !desc.descriptor {
		return "", statusErr(ofx.StatErrBadHandle, "no descriptor %s", descriptor)
	}
	if desc.context == 0 {
		return "", statusErr(ofx.StatErrValue, "descriptor %s has no context", descriptor)
	}
	handle := h.newEffect(desc.context, false)
	inst := h.effects[handle]

	for _, name := range desc.clipOrder {
		from := h.clips[desc.clips[name]]
		props := h.newSet(ofx.ClipInstanceSchema, map[string]any{
			ofx.ImageClipPropConnected:           name == ofx.ClipOutput,
			ofx.ImageEffectPropComponents:        ofx.ComponentNone,
			ofx.ImageClipPropUnmappedComponents:  ofx.ComponentNone,
			ofx.ImageEffectPropPixelDepth:        ofx.DepthNone,
			ofx.ImageClipPropUnmappedPixelDepth:  ofx.DepthNone,
			ofx.ImagePropPixelAspectRatio:        1.0,
			ofx.ImageEffectPropFrameRange:        ofx.FrameRange{},
			ofx.ImageEffectPropFrameRate:         24.0,
			ofx.ImageClipPropFieldOrder:          "OfxImageFieldNone",
			ofx.ImageClipPropContinuousSamples:   false,
			ofx.ImageEffectPropPreMultiplication: "OfxImageOpaque",
		})
		h.copyInto(props, from.props)
		c := newHandle("clip")
		h.clips[c] = &clip{name: name, props: props}
		inst.clips[name] = c
		inst.clipOrder = append(inst.clipOrder, name)
	}

	from := h.paramSets[desc.params]
	to := h.paramSets[inst.params]
	for _, name := range from.order {
		dp := h.params[from.params[name]]
		props := h.newSet(ofx.ParamInstanceSchema(dp.kind), map[string]any{})
		h.copyInto(props, dp.props)
		p := &param{name: name, kind: dp.kind, props: props}
		if raw, ok := h.sets[dp.props].values[ofx.ParamPropDefault]; ok {
			vs, err := ofx.DecodeAny(raw)
			if err == nil && len(vs) == 1 {
				p.curve = Constant{Value: vs[0]}
			}
		}
		ph := newHandle("param")
		h.params[ph] = p
		to.params[name] = ph
		to.order = append(to.order, name)
	}
	return handle, nil
}

// EffectPropertySet implements ofx.EffectSuite.
func (h *Host) EffectPropertySet(e ofx.Handle) (ofx.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eff, ok := h.effects[e]
	if !ok {
		return "", statusErr(ofx.StatErrBadHandle, "no effect %s", e)
	}
	return eff.props, nil
}

// EffectParamSet implements ofx.EffectSuite.
func (h *Host) EffectParamSet(e ofx.Handle) (ofx.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eff, ok := h.effects[e]
	if !ok {
		return "", statusErr(ofx.StatErrBadHandle, "no effect %s", e)
	}
	return eff.params, nil
}

// ClipDefine implements ofx.EffectSuite.
func (h *Host) ClipDefine(e ofx.Handle, name string) (ofx.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	eff, ok := h.effects[e]
	if !ok || !eff.descriptor {
		return "", statusErr(ofx.StatErrBadHandle, "no descriptor %s", e)
	}
	if _, exists := eff.clips[name]; exists {
		return "", statusErr(ofx.StatErrExists, "clip %s already defined", name)
	}
	props := h.newSet(ofx.ClipDescriptorSchema, map[string]any{
		ofx.PropType:                           "OfxTypeClip",
		ofx.PropName:                           name,
		ofx.PropLabel:                          name,
		ofx.ImageEffectPropSupportedComponents: []string{},
		ofx.ImageClipPropOptional:              false,
		ofx.ImageClipPropIsMask:                false,
	})
	c := newHandle("clip")
	h.clips[c] = &clip{name: name, props: props}
	eff.clips[name] = c
	eff.clipOrder = append(eff.clipOrder, name)
	return props, nil
}

// ClipGetHandle implements ofx.EffectSuite.
func (h *Host) ClipGetHandle(e ofx.Handle, name string) (ofx.Handle, ofx.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eff, ok := h.effects[e]
	if !ok {
		return "", "", statusErr(ofx.StatErrBadHandle, "no effect %s", e)
	}
	c, ok := eff.clips[name]
	if !ok {
		return "", "", statusErr(ofx.StatErrUnknown, "no clip %s", name)
	}
	return c, h.clips[c].props, nil
}

// ClipRegionOfDefinition implements ofx.EffectSuite. A disconnected clip
// has an empty region.
func (h *Host) ClipRegionOfDefinition(c ofx.Handle, _ float64) (ofx.RectD, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	cl, ok := h.clips[c]
	if !ok {
		return ofx.RectD{}, statusErr(ofx.StatErrBadHandle, "no clip %s", c)
	}
	return cl.rod, nil
}

// ClipState is the host-side state of a clip connection.
type ClipState struct {
	Connected          bool
	Components         ofx.ImageComponent
	Depth              ofx.BitDepth
	RegionOfDefinition ofx.RectD
	FrameRange         ofx.FrameRange
	PixelAspectRatio   float64
}

// SetClip changes the connection of an instance's clip.
func (h *Host) SetClip(instance ofx.Handle, name string, state ClipState) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	eff, ok := h.effects[instance]
	if !ok || eff.descriptor {
		return statusErr(ofx.StatErrBadHandle, "no instance %s", instance)
	}
	c, ok := eff.clips[name]
	if !ok {
		return statusErr(ofx.StatErrUnknown, "no clip %s", name)
	}
	cl := h.clips[c]
	if state.PixelAspectRatio == 0 {
		state.PixelAspectRatio = 1
	}
	if !state.Connected {
		state = ClipState{PixelAspectRatio: 1}
	}
	values := map[string]any{
		ofx.ImageClipPropConnected:          state.Connected,
		ofx.ImageEffectPropComponents:       state.Components,
		ofx.ImageClipPropUnmappedComponents: state.Components,
		ofx.ImageEffectPropPixelDepth:       state.Depth,
		ofx.ImageClipPropUnmappedPixelDepth: state.Depth,
		ofx.ImagePropPixelAspectRatio:       state.PixelAspectRatio,
		ofx.ImageEffectPropFrameRange:       state.FrameRange,
	}
	for k, v := range values {
		if err := h.put(cl.props, k, v); err != nil {
			return err
		}
	}
	cl.rod = state.RegionOfDefinition
	return nil
}

// ParamDefine implements ofx.ParamSuite.
func (h *Host) ParamDefine(set ofx.Handle, kind ofx.ParamType, name string) (ofx.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ps, ok := h.paramSets[set]
	if !ok {
		return "", statusErr(ofx.StatErrBadHandle, "no parameter set %s", set)
	}
	if _, exists := ps.params[name]; exists {
		return "", statusErr(ofx.StatErrExists, "parameter %s already defined", name)
	}
	schema := ofx.ParamDescriptorSchema(kind)
	if schema == nil {
		return "", statusErr(ofx.StatErrUnsupported, "parameter type %d", int(kind))
	}
	values := map[string]any{
		ofx.ParamPropType:    kind,
		ofx.PropName:         name,
		ofx.PropLabel:        name,
		ofx.ParamPropEnabled: true,
		ofx.ParamPropSecret:  false,
	}
	switch kind {
	case ofx.ParamDouble:
		values[ofx.ParamPropDefault] = 0.0
	case ofx.ParamInteger:
		values[ofx.ParamPropDefault] = 0
	case ofx.ParamBoolean:
		values[ofx.ParamPropDefault] = false
	case ofx.ParamString:
		values[ofx.ParamPropDefault] = ""
	}
	props := h.newSet(schema, values)
	p := newHandle("param")
	h.params[p] = &param{name: name, kind: kind, props: props}
	ps.params[name] = p
	ps.order = append(ps.order, name)
	return props, nil
}

// ParamGetHandle implements ofx.ParamSuite.
func (h *Host) ParamGetHandle(set ofx.Handle, name string) (ofx.Handle, ofx.Handle, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ps, ok := h.paramSets[set]
	if !ok {
		return "", "", statusErr(ofx.StatErrBadHandle, "no parameter set %s", set)
	}
	p, ok := ps.params[name]
	if !ok {
		return "", "", statusErr(ofx.StatErrUnknown, "no parameter %s", name)
	}
	return p, h.params[p].props, nil
}

// ParamGetValue implements ofx.ParamSuite using the host's current time.
func (h *Host) ParamGetValue(p ofx.Handle) ([]byte, error) {
	return h.ParamGetValueAtTime(p, h.Time())
}

// ParamGetValueAtTime implements ofx.ParamSuite.
func (h *Host) ParamGetValueAtTime(p ofx.Handle, t float64) ([]byte, error) {
	h.mu.RLock()
	pr, ok := h.params[p]
	var curve Curve
	var kind ofx.ParamType
	if ok {
		curve, kind = pr.curve, pr.kind
	}
	h.mu.RUnlock()
	if !ok {
		return nil, statusErr(ofx.StatErrBadHandle, "no parameter %s", p)
	}
	if curve == nil {
		return nil, statusErr(ofx.StatErrUnsupported, "%s parameter %s has no value", kind, pr.name)
	}
	v, err := curve.At(context.Background(), t)
	if err != nil {
		return nil, statusErr(ofx.StatErrValue, "evaluate %s: %v", pr.name, err)
	}
	raw, err := encodeParamValue(kind, v)
	if err != nil {
		return nil, statusErr(ofx.StatErrValue, "%s: %v", pr.name, err)
	}
	return raw, nil
}

// ParamSetValue implements ofx.ParamSuite. The parameter stops animating.
func (h *Host) ParamSetValue(p ofx.Handle, raw []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	pr, ok := h.params[p]
	if !ok {
		return statusErr(ofx.StatErrBadHandle, "no parameter %s", p)
	}
	v, err := decodeParamValue(pr.kind, raw)
	if err != nil {
		return statusErr(ofx.StatErrValue, "%s: %v", pr.name, err)
	}
	pr.curve = Constant{Value: v}
	return nil
}

func (h *Host) instanceParam(instance ofx.Handle, name string) (*param, error) {
	eff, ok := h.effects[instance]
	if !ok || eff.descriptor {
		return nil, statusErr(ofx.StatErrBadHandle, "no instance %s", instance)
	}
	p, ok := h.paramSets[eff.params].params[name]
	if !ok {
		return nil, statusErr(ofx.StatErrUnknown, "no parameter %s", name)
	}
	return h.params[p], nil
}

// SetParam replaces the curve of an instance's parameter, as a user edit
// in the host would.
func (h *Host) SetParam(instance ofx.Handle, name string, curve Curve) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, err := h.instanceParam(instance, name)
	if err != nil {
		return err
	}
	if c, ok := curve.(Constant); ok {
		if _, err := encodeParamValue(p.kind, c.Value); err != nil {
			return statusErr(ofx.StatErrValue, "%s: %v", name, err)
		}
	}
	p.curve = curve
	return nil
}

// SetParamExpr sets a Lua expression curve on an instance's parameter.
func (h *Host) SetParamExpr(instance ofx.Handle, name, source string) error {
	expr, err := NewExpr(h.lua, source)
	if err != nil {
		return err
	}
	return h.SetParam(instance, name, expr)
}

// ParamState is the host's view of one parameter of an instance.
type ParamState struct {
	Name    string
	Kind    ofx.ParamType
	Value   any
	Enabled bool
	Visible bool
}

// Params returns the state of every parameter of an instance at time t,
// in definition order. Groups and pages have a nil Value.
func (h *Host) Params(instance ofx.Handle, t float64) ([]ParamState, error) {
	h.mu.RLock()
	eff, ok := h.effects[instance]
	if !ok || eff.descriptor {
		h.mu.RUnlock()
		return nil, statusErr(ofx.StatErrBadHandle, "no instance %s", instance)
	}
	ps := h.paramSets[eff.params]
	type entry struct {
		p       *param
		curve   Curve
		enabled bool
		secret  bool
	}
	entries := make([]entry, 0, len(ps.order))
	for _, name := range ps.order {
		p := h.params[ps.params[name]]
		values := h.sets[p.props].values
		enabled, _ := decodeBool(values[ofx.ParamPropEnabled])
		secret, _ := decodeBool(values[ofx.ParamPropSecret])
		entries = append(entries, entry{p: p, curve: p.curve, enabled: enabled, secret: secret})
	}
	h.mu.RUnlock()

	out := make([]ParamState, 0, len(entries))
	for _, e := range entries {
		st := ParamState{Name: e.p.name, Kind: e.p.kind, Enabled: e.enabled, Visible: !e.secret}
		if e.curve != nil {
			v, err := e.curve.At(context.Background(), t)
			if err != nil {
				return nil, err
			}
			raw, err := encodeParamValue(e.p.kind, v)
			if err != nil {
				return nil, err
			}
			if st.Value, err = decodeParamValue(e.p.kind, raw); err != nil {
				return nil, err
			}
		}
		out = append(out, st)
	}
	return out, nil
}

// Param returns the state of one parameter of an instance at time t.
func (h *Host) Param(instance ofx.Handle, name string, t float64) (ParamState, error) {
	all, err := h.Params(instance, t)
	if err != nil {
		return ParamState{}, err
	}
	for _, st := range all {
		if st.Name == name {
			return st, nil
		}
	}
	return ParamState{}, statusErr(ofx.StatErrUnknown, "no parameter %s", name)
}

// Definition lists the clips and parameters an effect defines.
type Definition struct {
	Clips  []string
	Params []ParamState
}

// Definition returns the clips and parameters of a descriptor or an
// instance in definition order. Parameter values are the defaults.
func (h *Host) Definition(e ofx.Handle) (Definition, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	eff, ok := h.effects[e]
	if !ok {
		return Definition{}, statusErr(ofx.StatErrBadHandle, "no effect %s", e)
	}
	def := Definition{Clips: append([]string(nil), eff.clipOrder...)}
	ps := h.paramSets[eff.params]
	for _, name := range ps.order {
		p := h.params[ps.params[name]]
		values := h.sets[p.props].values
		enabled, _ := decodeBool(values[ofx.ParamPropEnabled])
		secret, _ := decodeBool(values[ofx.ParamPropSecret])
		st := ParamState{Name: name, Kind: p.kind, Enabled: enabled, Visible: !secret}
		if raw, ok := values[ofx.ParamPropDefault]; ok {
			if vs, err := ofx.DecodeAny(raw); err == nil && len(vs) == 1 {
				st.Value = vs[0]
			}
		}
		def.Params = append(def.Params, st)
	}
	return def, nil
}

func decodeBool(raw []byte) (bool, error) {
	vs, err := ofx.UnmarshalValues[bool](raw)
	if err != nil || len(vs) != 1 {
		return false, fmt.Errorf("not a boolean")
	}
	return vs[0], nil
}

func encodeParamValue(kind ofx.ParamType, v any) ([]byte, error) {
	switch kind {
	case ofx.ParamDouble:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return ofx.MarshalValue(f)
	case ofx.ParamInteger:
		f, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		return ofx.MarshalValue(int(math.Round(f)))
	case ofx.ParamBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("want boolean, got %T", v)
		}
		return ofx.MarshalValue(b)
	case ofx.ParamString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		return ofx.MarshalValue(s)
	default:
		return nil, fmt.Errorf("%s parameters have no value", kind)
	}
}

func decodeParamValue(kind ofx.ParamType, raw []byte) (any, error) {
	switch kind {
	case ofx.ParamDouble:
		return ofx.UnmarshalValue[float64](raw)
	case ofx.ParamInteger:
		return ofx.UnmarshalValue[int](raw)
	case ofx.ParamBoolean:
		return ofx.UnmarshalValue[bool](raw)
	case ofx.ParamString:
		return ofx.UnmarshalValue[string](raw)
	default:
		return nil, fmt.Errorf("%s parameters have no value", kind)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("want number, got %T", v)
	}
}
