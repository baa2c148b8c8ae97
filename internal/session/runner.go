// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// HostDefaults are the host capabilities used where a session leaves them
// unset.
type HostDefaults struct {
	APIVersion                 []int
	SupportsMultipleClipDepths bool
}

// Runner plays sessions against one plugin module. Each Run starts from a
// fresh host and a fresh plugin.
type Runner struct {
	module   ofx.Module
	logger   *slog.Logger
	defaults HostDefaults
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used by the runner and its dispatchers.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHostDefaults sets the host capabilities sessions start from.
func WithHostDefaults(d HostDefaults) Option {
	return func(r *Runner) {
		r.defaults = d
	}
}

// NewRunner creates a runner for module.
func NewRunner(module ofx.Module, opts ...Option) (*Runner, error) {
	if err := module.Validate(); err != nil {
		return nil, oops.Code(CodeIncompatible).Wrapf(err, "invalid plugin module")
	}
	r := &Runner{
		module:   module,
		logger:   slog.Default(),
		defaults: HostDefaults{APIVersion: hostsim.DefaultOptions().APIVersion},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// hostOptions merges the session's host block over the runner defaults.
func (r *Runner) hostOptions(s *Session) hostsim.Options {
	opts := hostsim.DefaultOptions()
	if len(r.defaults.APIVersion) > 0 {
		opts.APIVersion = r.defaults.APIVersion
	}
	opts.SupportsMultipleClipDepths = r.defaults.SupportsMultipleClipDepths
	if len(s.Host.APIVersion) > 0 {
		opts.APIVersion = s.Host.APIVersion
	}
	if s.Host.SupportsMultipleClipDepths != nil {
		opts.SupportsMultipleClipDepths = *s.Host.SupportsMultipleClipDepths
	}
	return opts
}

// acceptsConstraint is the API range a host of the given version loads.
func acceptsConstraint(s *Session, apiVersion []int) string {
	if s.Host.Accepts != "" {
		return s.Host.Accepts
	}
	return fmt.Sprintf("^%d", apiVersion[0])
}

// run is the state of one Run.
type run struct {
	driver    *hostsim.Driver
	lua       *hostsim.StateFactory
	specs     map[string]InstanceSpec
	instances map[string]ofx.Handle
}

// Run plays s and reports every step. The error is non-nil only when the
// session could not be played at all; failed expectations are in the report.
func (r *Runner) Run(ctx context.Context, s *Session) (*Report, error) {
	opts := r.hostOptions(s)
	constraint := acceptsConstraint(s, opts.APIVersion)
	ok, err := r.module.Compatible(constraint)
	if err != nil {
		return nil, oops.Code(CodeIncompatible).With("accepts", constraint).Wrap(err)
	}
	if !ok {
		return nil, oops.Code(CodeIncompatible).
			With("plugin", r.module.ID).
			With("api_version", r.module.APIVersion).
			With("accepts", constraint).
			Errorf("host does not load plugins of API version %d", r.module.APIVersion)
	}

	host := hostsim.New(opts)
	driver, err := hostsim.NewDriver(host, r.module.New(), ofx.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	st := &run{
		driver:    driver,
		lua:       hostsim.NewStateFactory(),
		specs:     make(map[string]InstanceSpec, len(s.Instances)),
		instances: make(map[string]ofx.Handle, len(s.Instances)),
	}
	for _, inst := range s.Instances {
		st.specs[inst.Name] = inst
	}

	report := &Report{
		Session: s.Name,
		Plugin:  r.module.ID,
		Passed:  true,
	}
	start := time.Now()
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return report, oops.With("step", i).Wrapf(err, "session interrupted")
		}
		reply, stepErr := st.play(ctx, step)
		result := newStepResult(i, step, reply, stepErr)
		if !result.Passed {
			report.Passed = false
		}
		r.logger.DebugContext(ctx, "session step",
			"step", i,
			"action", step.Action,
			"instance", step.Instance,
			"status", result.Status,
			"passed", result.Passed,
		)
		report.Steps = append(report.Steps, result)
	}
	report.Elapsed = time.Since(start)
	return report, nil
}

// play performs one step. The error is a host-side failure that happened
// before any action reached the plugin.
func (st *run) play(ctx context.Context, step Step) (hostsim.Reply, error) {
	handle := st.instances[step.Instance]
	if step.Time != nil {
		st.driver.Host().SetTime(*step.Time)
	}

	switch step.Action {
	case StepSetTime:
		return hostsim.Reply{Status: ofx.StatOK}, nil
	case StepSetParam:
		curve, err := step.ParamSpec.curve(st.lua)
		if err != nil {
			return hostsim.Reply{}, err
		}
		return st.driver.SetParam(ctx, handle, step.Param, curve)
	case StepSetClip:
		state, err := step.ClipSpec.state()
		if err != nil {
			return hostsim.Reply{}, err
		}
		return st.driver.SetClip(ctx, handle, step.Clip, state)
	}

	kind := ofx.ParseActionKind(step.Action)
	switch kind {
	case ofx.ActionLoad:
		return st.driver.Load(ctx), nil
	case ofx.ActionUnload:
		return st.driver.Unload(ctx), nil
	case ofx.ActionDescribe:
		return st.driver.Describe(ctx), nil
	case ofx.ActionDescribeInContext:
		c, err := ofx.ParseImageEffectContext(step.Context)
		if err != nil {
			return hostsim.Reply{}, err
		}
		return st.driver.DescribeInContext(ctx, c), nil
	case ofx.ActionCreateInstance:
		return st.create(ctx, step.Instance)
	case ofx.ActionDestroyInstance:
		return st.driver.DestroyInstance(ctx, handle), nil
	case ofx.ActionUnknown:
		return st.driver.Raw(ctx, step.Action, handle), nil
	default:
		return st.driver.Call(ctx, kind, handle, step.inArgs(kind)), nil
	}
}

// create makes the host-side instance, applies its clips and parameters,
// and sends CreateInstance.
func (st *run) create(ctx context.Context, name string) (hostsim.Reply, error) {
	spec, ok := st.specs[name]
	if !ok {
		return hostsim.Reply{}, oops.With("instance", name).Errorf("unknown instance %q", name)
	}
	c, err := ofx.ParseImageEffectContext(spec.Context)
	if err != nil {
		return hostsim.Reply{}, err
	}
	handle, err := st.driver.NewInstance(c)
	if err != nil {
		return hostsim.Reply{}, err
	}
	st.instances[name] = handle

	host := st.driver.Host()
	for clipName, cs := range spec.Clips {
		state, err := cs.state()
		if err != nil {
			return hostsim.Reply{}, err
		}
		if err := host.SetClip(handle, clipName, state); err != nil {
			return hostsim.Reply{}, oops.With("clip", clipName).Wrap(err)
		}
	}
	for paramName, ps := range spec.Params {
		curve, err := ps.curve(st.lua)
		if err != nil {
			return hostsim.Reply{}, oops.With("param", paramName).Wrap(err)
		}
		if err := host.SetParam(handle, paramName, curve); err != nil {
			return hostsim.Reply{}, oops.With("param", paramName).Wrap(err)
		}
	}
	return st.driver.CreateInstance(ctx, handle), nil
}

// inArgs returns the step's overrides that kind's in-args accept.
func (step Step) inArgs(kind ofx.ActionKind) map[string]any {
	in := map[string]any{}
	if step.Time != nil {
		in[ofx.PropTime] = *step.Time
	}
	if len(step.Window) == 4 {
		in[ofx.ImageEffectPropRenderWindow] = ofx.RectI{
			X1: step.Window[0], Y1: step.Window[1], X2: step.Window[2], Y2: step.Window[3],
		}
	}
	if len(step.RoI) == 4 {
		in[ofx.ImageEffectPropRegionOfInterest] = ofx.RectD{
			X1: step.RoI[0], Y1: step.RoI[1], X2: step.RoI[2], Y2: step.RoI[3],
		}
	}
	if len(step.Frames) == 2 {
		in[ofx.ImageEffectPropFrameRange] = ofx.FrameRange{Min: step.Frames[0], Max: step.Frames[1]}
	}
	if len(step.RenderScale) == 2 {
		in[ofx.ImageEffectPropRenderScale] = step.RenderScale
	}

	schema, _ := ofx.ArgSchemas(kind)
	for k := range in {
		if schema == nil {
			delete(in, k)
			continue
		}
		if _, err := schema.Lookup(k); err != nil {
			delete(in, k)
		}
	}
	return in
}

// state converts the spec to the host's clip state. A connected clip with
// no components or depth is RGBA float.
func (c ClipSpec) state() (hostsim.ClipState, error) {
	st := hostsim.ClipState{
		Connected:        c.Connected == nil || *c.Connected,
		Components:       ofx.ComponentRGBA,
		Depth:            ofx.DepthFloat,
		PixelAspectRatio: c.PAR,
	}
	var err error
	if c.Components != "" {
		if st.Components, err = ofx.ParseImageComponent(c.Components); err != nil {
			return st, err
		}
	}
	if c.Depth != "" {
		if st.Depth, err = ofx.ParseBitDepth(c.Depth); err != nil {
			return st, err
		}
	}
	if len(c.RoD) == 4 {
		st.RegionOfDefinition = ofx.RectD{X1: c.RoD[0], Y1: c.RoD[1], X2: c.RoD[2], Y2: c.RoD[3]}
	}
	if len(c.FrameRange) == 2 {
		st.FrameRange = ofx.FrameRange{Min: c.FrameRange[0], Max: c.FrameRange[1]}
	}
	return st, nil
}

// curve converts the spec to a host parameter curve.
func (p ParamSpec) curve(lua *hostsim.StateFactory) (hostsim.Curve, error) {
	switch {
	case p.Lua != "":
		return hostsim.NewExpr(lua, p.Lua)
	case p.Keys != nil:
		keys := make([]hostsim.Key, 0, len(p.Keys))
		for i, k := range p.Keys {
			if len(k) != 2 {
				return nil, oops.With("key", i).Errorf("a key is [time, value], got %d values", len(k))
			}
			keys = append(keys, hostsim.Key{Time: k[0], Value: k[1]})
		}
		return hostsim.NewKeyframes(keys...)
	default:
		return hostsim.Constant{Value: p.Value}, nil
	}
}
