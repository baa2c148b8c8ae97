// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package hostsim

import (
	"context"
	"sync"

	"github.com/samber/oops"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// Reply is the outcome of one action as the host sees it.
type Reply struct {
	Status ofx.Status
	// Out holds the out-args the plugin left behind, decoded.
	Out map[string]any
	Err error
}

// Driver plays the host side of the action protocol: it creates the
// descriptors, instances and argument sets a real host would and sends
// actions through a Dispatcher.
type Driver struct {
	host       *Host
	dispatcher *ofx.Dispatcher

	mu         sync.Mutex
	descriptor ofx.Handle
	contexts   map[ofx.ImageEffectContext]ofx.Handle
}

// NewDriver creates a dispatcher for plugin over host.
func NewDriver(host *Host, plugin ofx.Plugin, opts ...ofx.DispatcherOption) (*Driver, error) {
	d, err := ofx.NewDispatcher(plugin, host.Suites(), opts...)
	if err != nil {
		return nil, err
	}
	return &Driver{
		host:       host,
		dispatcher: d,
		contexts:   make(map[ofx.ImageEffectContext]ofx.Handle),
	}, nil
}

// Host returns the simulated host.
func (d *Driver) Host() *Host { return d.host }

// Dispatcher returns the dispatcher actions are sent through.
func (d *Driver) Dispatcher() *ofx.Dispatcher { return d.dispatcher }

// Load sends Load.
func (d *Driver) Load(ctx context.Context) Reply {
	return d.send(ctx, ofx.ActionLoad, "", nil)
}

// Unload sends Unload.
func (d *Driver) Unload(ctx context.Context) Reply {
	r := d.send(ctx, ofx.ActionUnload, "", nil)
	if r.Err == nil {
		d.mu.Lock()
		d.descriptor = ""
		d.contexts = make(map[ofx.ImageEffectContext]ofx.Handle)
		d.mu.Unlock()
	}
	return r
}

// Describe sends Describe on a fresh descriptor.
func (d *Driver) Describe(ctx context.Context) Reply {
	desc := d.host.NewDescriptor()
	r := d.send(ctx, ofx.ActionDescribe, desc, nil)
	if r.Err == nil {
		d.mu.Lock()
		d.descriptor = desc
		d.mu.Unlock()
	}
	return r
}

// DescribeInContext sends DescribeInContext for c on a copy of the
// descriptor produced by Describe.
func (d *Driver) DescribeInContext(ctx context.Context, c ofx.ImageEffectContext) Reply {
	d.mu.Lock()
	global := d.descriptor
	d.mu.Unlock()
	if global == "" {
		global = d.host.NewDescriptor()
	}
	desc, err := d.host.NewContextDescriptor(global, c)
	if err != nil {
		return Reply{Status: ofx.StatFailed, Err: err}
	}
	r := d.send(ctx, ofx.ActionDescribeInContext, desc, map[string]any{
		ofx.ImageEffectPropContext: c,
	})
	if r.Err == nil {
		d.mu.Lock()
		d.contexts[c] = desc
		d.mu.Unlock()
	}
	return r
}

// Descriptor returns the descriptor of the last successful Describe.
func (d *Driver) Descriptor() ofx.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.descriptor
}

// ContextDescriptor returns the descriptor described for c.
func (d *Driver) ContextDescriptor(c ofx.ImageEffectContext) (ofx.Handle, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.contexts[c]
	return h, ok
}

// NewInstance creates a host-side instance of context c without telling
// the plugin. Configure its clips and parameters, then call CreateInstance.
func (d *Driver) NewInstance(c ofx.ImageEffectContext) (ofx.Handle, error) {
	desc, ok := d.ContextDescriptor(c)
	if !ok {
		return "", oops.Code("HOSTSIM_CONTEXT_NOT_DESCRIBED").
			With("context", c.String()).
			Errorf("context %s was not described", c)
	}
	return d.host.NewInstance(desc)
}

// CreateInstance sends CreateInstance for an instance made by NewInstance.
func (d *Driver) CreateInstance(ctx context.Context, instance ofx.Handle) Reply {
	return d.send(ctx, ofx.ActionCreateInstance, instance, nil)
}

// Instantiate runs NewInstance and CreateInstance.
func (d *Driver) Instantiate(ctx context.Context, c ofx.ImageEffectContext) (ofx.Handle, Reply) {
	instance, err := d.NewInstance(c)
	if err != nil {
		return "", Reply{Status: ofx.StatFailed, Err: err}
	}
	return instance, d.CreateInstance(ctx, instance)
}

// DestroyInstance sends DestroyInstance.
func (d *Driver) DestroyInstance(ctx context.Context, instance ofx.Handle) Reply {
	return d.send(ctx, ofx.ActionDestroyInstance, instance, nil)
}

// Call sends an instance action. in overrides the default in-args for the
// action at the host's current time.
func (d *Driver) Call(ctx context.Context, kind ofx.ActionKind, instance ofx.Handle, in map[string]any) Reply {
	args := DefaultInArgs(kind, d.host.Time())
	for k, v := range in {
		args[k] = v
	}
	return d.send(ctx, kind, instance, args)
}

// Edit changes host state the way a user would and notifies the plugin
// with BeginInstanceChanged, InstanceChanged and EndInstanceChanged, all
// with reason user-edited. apply runs before the notifications.
func (d *Driver) Edit(ctx context.Context, instance ofx.Handle, objType ofx.ObjectType, name string, apply func() error) (Reply, error) {
	if err := apply(); err != nil {
		return Reply{}, err
	}
	group := map[string]any{ofx.PropChangeReason: ofx.ChangeUserEdited}
	if r := d.send(ctx, ofx.ActionBeginInstanceChanged, instance, group); r.Err != nil {
		return r, nil
	}
	r := d.Call(ctx, ofx.ActionInstanceChanged, instance, map[string]any{
		ofx.PropType: objType,
		ofx.PropName: name,
	})
	if r.Err != nil {
		return r, nil
	}
	if end := d.send(ctx, ofx.ActionEndInstanceChanged, instance, group); end.Err != nil {
		return end, nil
	}
	return r, nil
}

// SetParam replaces a parameter curve and notifies the plugin.
func (d *Driver) SetParam(ctx context.Context, instance ofx.Handle, name string, curve Curve) (Reply, error) {
	return d.Edit(ctx, instance, ofx.ObjectParameter, name, func() error {
		return d.host.SetParam(instance, name, curve)
	})
}

// SetClip changes a clip connection and notifies the plugin.
func (d *Driver) SetClip(ctx context.Context, instance ofx.Handle, name string, state ClipState) (Reply, error) {
	return d.Edit(ctx, instance, ofx.ObjectClip, name, func() error {
		return d.host.SetClip(instance, name, state)
	})
}

// Raw sends any action by its raw name with no argument sets, as a host
// sending an action the plugin may not know would.
func (d *Driver) Raw(ctx context.Context, action string, handle ofx.Handle) Reply {
	status, err := d.dispatcher.Execute(ctx, action, handle, "", "")
	return Reply{Status: status, Err: err}
}

func (d *Driver) send(ctx context.Context, kind ofx.ActionKind, handle ofx.Handle, in map[string]any) Reply {
	inSchema, outSchema := ofx.ArgSchemas(kind)
	var inArgs, outArgs ofx.Handle
	if inSchema != nil {
		var err error
		if inArgs, err = d.host.NewPropertySet(inSchema, in); err != nil {
			return Reply{Status: ofx.StatFailed, Err: err}
		}
		defer d.host.Release(inArgs)
	}
	if outSchema != nil {
		var err error
		if outArgs, err = d.host.NewPropertySet(outSchema, nil); err != nil {
			return Reply{Status: ofx.StatFailed, Err: err}
		}
		defer d.host.Release(outArgs)
	}

	status, err := d.dispatcher.Execute(ctx, kind.String(), handle, inArgs, outArgs)
	r := Reply{Status: status, Err: err}
	if outArgs != "" {
		out, snapErr := d.host.Snapshot(outArgs)
		if snapErr != nil && r.Err == nil {
			r.Err = snapErr
		}
		r.Out = out
	}
	return r
}

// DefaultInArgs returns the in-args a host sends with kind at time t.
func DefaultInArgs(kind ofx.ActionKind, t float64) map[string]any {
	scale := []float64{1, 1}
	switch kind {
	case ofx.ActionBeginInstanceChanged, ofx.ActionEndInstanceChanged:
		return map[string]any{ofx.PropChangeReason: ofx.ChangeUserEdited}
	case ofx.ActionInstanceChanged:
		return map[string]any{
			ofx.PropType:                   ofx.ObjectParameter,
			ofx.PropName:                   "",
			ofx.PropChangeReason:           ofx.ChangeUserEdited,
			ofx.PropTime:                   t,
			ofx.ImageEffectPropRenderScale: scale,
		}
	case ofx.ActionGetRegionOfDefinition:
		return map[string]any{
			ofx.PropTime:                   t,
			ofx.ImageEffectPropRenderScale: scale,
		}
	case ofx.ActionGetRegionsOfInterest:
		return map[string]any{
			ofx.PropTime:                        t,
			ofx.ImageEffectPropRenderScale:      scale,
			ofx.ImageEffectPropRegionOfInterest: ofx.RectD{X2: 1920, Y2: 1080},
		}
	case ofx.ActionIsIdentity:
		return map[string]any{
			ofx.PropTime:                     t,
			ofx.ImageEffectPropFieldToRender: "OfxImageFieldNone",
			ofx.ImageEffectPropRenderWindow:  ofx.RectI{X2: 1920, Y2: 1080},
			ofx.ImageEffectPropRenderScale:   scale,
		}
	case ofx.ActionRender:
		return map[string]any{
			ofx.PropTime:                               t,
			ofx.ImageEffectPropFieldToRender:           "OfxImageFieldNone",
			ofx.ImageEffectPropRenderWindow:            ofx.RectI{X2: 1920, Y2: 1080},
			ofx.ImageEffectPropRenderScale:             scale,
			ofx.ImageEffectPropSequentialRenderStatus:  false,
			ofx.ImageEffectPropInteractiveRenderStatus: false,
		}
	case ofx.ActionBeginSequenceRender, ofx.ActionEndSequenceRender:
		return map[string]any{
			ofx.ImageEffectPropFrameRange:              ofx.FrameRange{Min: t, Max: t},
			ofx.ImageEffectPropFrameStep:               1.0,
			ofx.PropIsInteractive:                      false,
			ofx.ImageEffectPropRenderScale:             scale,
			ofx.ImageEffectPropSequentialRenderStatus:  false,
			ofx.ImageEffectPropInteractiveRenderStatus: false,
		}
	default:
		return map[string]any{}
	}
}
