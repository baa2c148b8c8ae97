// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ofxgo/ofxgo/pkg/errutil"
)

var tracer = otel.Tracer("ofxgo/ofx")

// Result is what a plugin reports for an action it did not fail.
type Result int

const (
	// NotHandled tells the host to apply its default behaviour.
	NotHandled Result = iota
	// Handled tells the host the plugin fully satisfied the action.
	Handled
)

func (r Result) String() string {
	if r == Handled {
		return "handled"
	}
	return "not_handled"
}

// Status returns the raw status the host receives for r.
func (r Result) Status() Status {
	if r == Handled {
		return StatOK
	}
	return StatReplyDefault
}

// Plugin is the effect logic driven by a Dispatcher.
type Plugin interface {
	Execute(ctx context.Context, pc *PluginContext, action Action) (Result, error)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(ctx context.Context, pc *PluginContext, action Action) (Result, error)

// Execute calls f.
func (f PluginFunc) Execute(ctx context.Context, pc *PluginContext, action Action) (Result, error) {
	return f(ctx, pc, action)
}

// PluginContext carries what every action can reach besides its own
// arguments.
type PluginContext struct {
	host   *Host
	logger *slog.Logger
}

// Host returns the host descriptor.
func (pc *PluginContext) Host() *HostDescriptor { return pc.host.Descriptor() }

// Logger returns the dispatcher's logger.
func (pc *PluginContext) Logger() *slog.Logger { return pc.logger }

// Sentinel errors for dispatcher construction.
var (
	ErrNilPlugin = errors.New("plugin cannot be nil")
	ErrNilHost   = errors.New("host and its suites cannot be nil")
)

type pluginState int

const (
	pluginUninitialized pluginState = iota
	pluginLoaded
	pluginDescribed
)

func (s pluginState) String() string {
	switch s {
	case pluginLoaded:
		return "loaded"
	case pluginDescribed:
		return "described"
	default:
		return "uninitialized"
	}
}

// Dispatcher decodes raw host actions, enforces their ordering and runs
// them against a Plugin. It is safe for concurrent use: actions on
// different instances run in parallel, actions on one instance are
// serialised.
type Dispatcher struct {
	plugin Plugin
	host   *Host
	logger *slog.Logger
	pc     *PluginContext

	// globalMu serialises Load, Unload, Describe and DescribeInContext.
	globalMu sync.Mutex

	mu        sync.Mutex
	state     pluginState
	contexts  map[ImageEffectContext]bool
	instances map[Handle]*instanceRecord
}

// DispatcherOption configures a Dispatcher during construction.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for lifecycle and failure logs.
func WithLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher for plugin talking to host.
func NewDispatcher(plugin Plugin, host *Host, opts ...DispatcherOption) (*Dispatcher, error) {
	if plugin == nil {
		return nil, ErrNilPlugin
	}
	if host == nil || host.Properties == nil || host.Effects == nil || host.Params == nil {
		return nil, ErrNilHost
	}
	d := &Dispatcher{
		plugin:    plugin,
		host:      host,
		logger:    slog.Default(),
		contexts:  make(map[ImageEffectContext]bool),
		instances: make(map[Handle]*instanceRecord),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.pc = &PluginContext{host: host, logger: d.logger}
	return d, nil
}

// Dispatch runs one host action and returns the status the host receives.
// inArgs and outArgs are ignored by actions that carry no such set.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, handle, inArgs, outArgs Handle) Status {
	status, _ := d.Execute(ctx, action, handle, inArgs, outArgs)
	return status
}

// Execute is Dispatch that also returns the error behind a StatFailed.
func (d *Dispatcher) Execute(ctx context.Context, action string, handle, inArgs, outArgs Handle) (status Status, err error) {
	kind := ParseActionKind(action)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "ofx.action",
		trace.WithAttributes(
			attribute.String("ofx.action", kind.Label()),
			attribute.String("ofx.instance", string(handle)),
		),
	)
	defer func() {
		span.SetAttributes(attribute.String("ofx.status", status.String()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		recordAction(kind, status, time.Since(start))
	}()

	if kind == ActionUnknown {
		d.logger.DebugContext(ctx, "action not supported", "action", action, "instance", string(handle))
		return StatReplyDefault, nil
	}

	var result Result
	if kind.global() {
		result, err = d.dispatchGlobal(ctx, kind, handle, inArgs, outArgs)
	} else {
		result, err = d.dispatchInstance(ctx, kind, handle, inArgs, outArgs)
	}
	if err != nil {
		errutil.LogErrorContext(ctx, d.logger, slog.LevelWarn, "action failed", err,
			"action", kind.String(),
			"instance", string(handle),
		)
		return StatFailed, err
	}
	return result.Status(), nil
}

// held records which locks the current call chain owns, so a plugin that
// re-enters the dispatcher for the same instance fails instead of
// deadlocking.
type held struct {
	global    bool
	instances map[Handle]struct{}
}

type heldKey struct{}

func heldFrom(ctx context.Context) held {
	h, _ := ctx.Value(heldKey{}).(held)
	return h
}

func (h held) withGlobal() held {
	h.global = true
	return h
}

func (h held) withInstance(handle Handle) held {
	next := make(map[Handle]struct{}, len(h.instances)+1)
	for k := range h.instances {
		next[k] = struct{}{}
	}
	next[handle] = struct{}{}
	h.instances = next
	return h
}

func (d *Dispatcher) dispatchGlobal(ctx context.Context, kind ActionKind, handle, inArgs, outArgs Handle) (Result, error) {
	h := heldFrom(ctx)
	if h.global {
		return NotHandled, ErrSequence(kind.String(), "%s re-entered while a global action is running", kind)
	}
	d.globalMu.Lock()
	defer d.globalMu.Unlock()
	ctx = context.WithValue(ctx, heldKey{}, h.withGlobal())

	switch kind {
	case ActionLoad:
		if st := d.pluginState(); st != pluginUninitialized {
			return NotHandled, ErrSequence(kind.String(), "plugin is already %s", st)
		}
		result, err := d.invoke(ctx, Load{})
		if err != nil {
			return result, err
		}
		d.setPluginState(pluginLoaded)
		return result, nil

	case ActionUnload:
		if live := d.LiveInstances(); live > 0 {
			return NotHandled, ErrSequence(kind.String(), "%d instances are still live", live)
		}
		result, err := d.invoke(ctx, Unload{})
		d.reset()
		d.logger.DebugContext(ctx, "plugin unloaded")
		return result, err

	case ActionDescribe:
		sc := newScope(kind)
		defer sc.close()
		desc, err := newEffectDescriptor(d.host, handle, sc)
		if err != nil {
			return NotHandled, err
		}
		result, err := d.invoke(ctx, Describe{Effect: desc})
		if err != nil {
			return result, err
		}
		d.setPluginState(pluginDescribed)
		d.logger.DebugContext(ctx, "plugin described")
		return result, nil

	case ActionDescribeInContext:
		if st := d.pluginState(); st != pluginDescribed {
			return NotHandled, ErrSequence(kind.String(), "%s before %s", kind, ActionDescribe)
		}
		sc := newScope(kind)
		defer sc.close()
		desc, err := newEffectDescriptor(d.host, handle, sc)
		if err != nil {
			return NotHandled, err
		}
		b := d.bindArgs(kind, inArgs, outArgs)
		b.descriptor = desc
		effectContext, err := DescribeInContextInArgs{b.in}.Context()
		if err != nil {
			return NotHandled, err
		}
		result, err := d.invoke(ctx, newAction(kind, b))
		if err != nil {
			return result, err
		}
		d.mu.Lock()
		d.contexts[effectContext] = true
		d.mu.Unlock()
		d.logger.DebugContext(ctx, "context described", "context", effectContext.String())
		return result, nil
	}
	return NotHandled, nil
}

func (d *Dispatcher) dispatchInstance(ctx context.Context, kind ActionKind, handle, inArgs, outArgs Handle) (Result, error) {
	h := heldFrom(ctx)
	if _, ok := h.instances[handle]; ok {
		return NotHandled, ErrSequence(kind.String(), "%s re-entered on instance %s", kind, handle)
	}
	if kind == ActionCreateInstance {
		return d.create(ctx, h, handle)
	}

	d.mu.Lock()
	rec, ok := d.instances[handle]
	d.mu.Unlock()
	if !ok {
		return NotHandled, ErrSequence(kind.String(), "unknown instance %s", handle)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	// Re-checked under the lock: a DestroyInstance may have been running.
	if st := rec.current(); st != stateInstantiated {
		return NotHandled, ErrSequence(kind.String(), "instance %s is %s", handle, st)
	}
	ctx = context.WithValue(ctx, heldKey{}, h.withInstance(handle))

	b := d.bindArgs(kind, inArgs, outArgs)
	b.effect = &ImageEffect{handle: handle, host: d.host, action: kind, rec: rec}
	result, err := d.invoke(ctx, newAction(kind, b))

	if kind == ActionDestroyInstance {
		releaseErr := rec.release()
		liveInstances.Dec()
		d.logger.DebugContext(ctx, "instance destroyed", "instance", string(handle))
		if err == nil && releaseErr != nil {
			return NotHandled, releaseErr
		}
	}
	return result, err
}

func (d *Dispatcher) create(ctx context.Context, h held, handle Handle) (Result, error) {
	kind := ActionCreateInstance
	effect := &ImageEffect{handle: handle, host: d.host, action: kind}
	effectContext, err := effect.Context()
	if err != nil {
		return NotHandled, err
	}

	d.mu.Lock()
	if d.state != pluginDescribed {
		d.mu.Unlock()
		return NotHandled, ErrSequence(kind.String(), "%s before %s", kind, ActionDescribe)
	}
	if !d.contexts[effectContext] {
		d.mu.Unlock()
		return NotHandled, ErrSequence(kind.String(), "context %s was never described", effectContext)
	}
	if prev, ok := d.instances[handle]; ok && prev.current() != stateDestroyed {
		d.mu.Unlock()
		return NotHandled, ErrSequence(kind.String(), "instance %s already exists", handle)
	}
	rec := &instanceRecord{handle: handle, state: stateCreating}
	rec.mu.Lock()
	d.instances[handle] = rec
	d.mu.Unlock()
	defer rec.mu.Unlock()

	ctx = context.WithValue(ctx, heldKey{}, h.withInstance(handle))
	effect.rec = rec
	result, err := d.invoke(ctx, CreateInstance{Effect: effect})
	if err != nil {
		if releaseErr := rec.release(); releaseErr != nil {
			errutil.LogErrorContext(ctx, d.logger, slog.LevelWarn, "release failed instance", releaseErr,
				"instance", string(handle))
		}
		d.mu.Lock()
		if d.instances[handle] == rec {
			delete(d.instances, handle)
		}
		d.mu.Unlock()
		return result, err
	}
	rec.setState(stateInstantiated)
	liveInstances.Inc()
	d.logger.DebugContext(ctx, "instance created",
		"instance", string(handle),
		"context", effectContext.String(),
	)
	return result, nil
}

func (d *Dispatcher) invoke(ctx context.Context, action Action) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = NotHandled, errPanic(action.Kind().String(), r)
		}
	}()
	return d.plugin.Execute(ctx, d.pc, action)
}

func (d *Dispatcher) bindArgs(kind ActionKind, inArgs, outArgs Handle) bindings {
	inSchema, outSchema := ArgSchemas(kind)
	var b bindings
	if inSchema != nil {
		b.in = NewPropertySet(inArgs, d.host.Properties, inSchema)
	}
	if outSchema != nil {
		b.out = NewPropertySet(outArgs, d.host.Properties, outSchema)
	}
	return b
}

func (d *Dispatcher) pluginState() pluginState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dispatcher) setPluginState(s pluginState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = s
}

func (d *Dispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = pluginUninitialized
	d.contexts = make(map[ImageEffectContext]bool)
	d.instances = make(map[Handle]*instanceRecord)
}

// LiveInstances returns the number of instances created and not yet destroyed.
func (d *Dispatcher) LiveInstances() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, rec := range d.instances {
		if rec.current() != stateDestroyed {
			n++
		}
	}
	return n
}

// DescribedContexts returns the contexts described so far, in enum order.
func (d *Dispatcher) DescribedContexts() []ImageEffectContext {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ImageEffectContext, 0, len(d.contexts))
	for c := range d.contexts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
