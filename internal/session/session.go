// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package session loads scripted host sessions and plays them against a
// plugin through the simulated host.
package session

import (
	"regexp"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// Error codes.
const (
	CodeInvalid      = "SESSION_INVALID"
	CodeIncompatible = "SESSION_INCOMPATIBLE"
)

// Host-side step kinds. Every other step action names a plugin action by
// its label ("render") or raw name ("OfxImageEffectActionRender").
const (
	StepSetParam = "set_param"
	StepSetClip  = "set_clip"
	StepSetTime  = "set_time"
)

// Session is a session.yaml file.
type Session struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Free-form session name"`
	Host      HostSpec       `yaml:"host,omitempty" json:"host,omitempty"`
	Instances []InstanceSpec `yaml:"instances,omitempty" json:"instances,omitempty"`
	Steps     []Step         `yaml:"steps" json:"steps" jsonschema:"minItems=1"`
}

// HostSpec overrides the simulated host's capabilities.
type HostSpec struct {
	// APIVersion is the host's OFX API version, major first.
	APIVersion []int `yaml:"api_version,omitempty" json:"api_version,omitempty" jsonschema:"minItems=1,maxItems=3"`
	// Accepts is the API constraint the host loads plugins under. Derived
	// from the API major version when empty.
	Accepts                    string `yaml:"accepts,omitempty" json:"accepts,omitempty"`
	SupportsMultipleClipDepths *bool  `yaml:"supports_multiple_clip_depths,omitempty" json:"supports_multiple_clip_depths,omitempty"`
}

// InstanceSpec describes an instance the host creates on create_instance.
type InstanceSpec struct {
	Name    string               `yaml:"name" json:"name" jsonschema:"pattern=^[a-z][a-z0-9_-]*$"`
	Context string               `yaml:"context" json:"context" jsonschema:"enum=filter,enum=general,enum=generator"`
	Clips   map[string]ClipSpec  `yaml:"clips,omitempty" json:"clips,omitempty"`
	Params  map[string]ParamSpec `yaml:"params,omitempty" json:"params,omitempty"`
}

// ClipSpec is the host-side state of a clip. A listed clip is connected
// unless connected is false.
type ClipSpec struct {
	Connected  *bool     `yaml:"connected,omitempty" json:"connected,omitempty"`
	Components string    `yaml:"components,omitempty" json:"components,omitempty" jsonschema:"enum=rgba,enum=rgb,enum=alpha"`
	Depth      string    `yaml:"depth,omitempty" json:"depth,omitempty" jsonschema:"enum=byte,enum=short,enum=half,enum=float"`
	RoD        []float64 `yaml:"rod,omitempty" json:"rod,omitempty" jsonschema:"minItems=4,maxItems=4"`
	FrameRange []float64 `yaml:"frame_range,omitempty" json:"frame_range,omitempty" jsonschema:"minItems=2,maxItems=2"`
	PAR        float64   `yaml:"par,omitempty" json:"par,omitempty" jsonschema:"exclusiveMinimum=0"`
}

// ParamSpec is a parameter curve: a constant value, keyframes or a Lua
// expression of t. Exactly one is set.
type ParamSpec struct {
	Value any         `yaml:"value,omitempty" json:"value,omitempty"`
	Keys  [][]float64 `yaml:"keys,omitempty" json:"keys,omitempty"`
	Lua   string      `yaml:"lua,omitempty" json:"lua,omitempty"`
}

// Step is one thing the host does.
type Step struct {
	Action   string `yaml:"action" json:"action" jsonschema:"minLength=1"`
	Instance string `yaml:"instance,omitempty" json:"instance,omitempty"`
	Context  string `yaml:"context,omitempty" json:"context,omitempty" jsonschema:"enum=filter,enum=general,enum=generator"`

	Time        *float64  `yaml:"time,omitempty" json:"time,omitempty"`
	Window      []int     `yaml:"window,omitempty" json:"window,omitempty" jsonschema:"minItems=4,maxItems=4"`
	RoI         []float64 `yaml:"roi,omitempty" json:"roi,omitempty" jsonschema:"minItems=4,maxItems=4"`
	Frames      []float64 `yaml:"frames,omitempty" json:"frames,omitempty" jsonschema:"minItems=2,maxItems=2"`
	RenderScale []float64 `yaml:"render_scale,omitempty" json:"render_scale,omitempty" jsonschema:"minItems=2,maxItems=2"`

	Param string `yaml:"param,omitempty" json:"param,omitempty"`
	Clip  string `yaml:"clip,omitempty" json:"clip,omitempty"`

	ParamSpec `yaml:",inline"`
	ClipSpec  `yaml:",inline"`

	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect is what a step must produce. Without it a step passes unless
// the action failed.
type Expect struct {
	Status string         `yaml:"status,omitempty" json:"status,omitempty"`
	Code   string         `yaml:"code,omitempty" json:"code,omitempty"`
	Out    map[string]any `yaml:"out,omitempty" json:"out,omitempty"`
}

var instanceNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Parse parses and validates a session file.
func Parse(data []byte) (*Session, error) {
	if len(data) == 0 {
		return nil, oops.Code(CodeInvalid).Errorf("session data is empty")
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "invalid YAML")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate checks the references and value shapes the schema cannot.
func (s *Session) Validate() error {
	if len(s.Steps) == 0 {
		return oops.Code(CodeInvalid).Errorf("a session needs at least one step")
	}
	for _, v := range s.Host.APIVersion {
		if v < 0 {
			return oops.Code(CodeInvalid).With("api_version", s.Host.APIVersion).Errorf("API version cannot be negative")
		}
	}

	instances := make(map[string]bool, len(s.Instances))
	for _, inst := range s.Instances {
		if !instanceNamePattern.MatchString(inst.Name) {
			return oops.Code(CodeInvalid).With("instance", inst.Name).
				Errorf("instance name %q must start with a-z and contain only a-z, 0-9, '_' and '-'", inst.Name)
		}
		if instances[inst.Name] {
			return oops.Code(CodeInvalid).With("instance", inst.Name).Errorf("duplicate instance %q", inst.Name)
		}
		instances[inst.Name] = true
		if _, err := ofx.ParseImageEffectContext(inst.Context); err != nil {
			return oops.Code(CodeInvalid).With("instance", inst.Name).Wrapf(err, "bad context")
		}
		for name, c := range inst.Clips {
			if err := c.validate(); err != nil {
				return oops.Code(CodeInvalid).With("instance", inst.Name).With("clip", name).Wrap(err)
			}
		}
		for name, p := range inst.Params {
			if err := p.validate(); err != nil {
				return oops.Code(CodeInvalid).With("instance", inst.Name).With("param", name).Wrap(err)
			}
		}
	}

	for i, st := range s.Steps {
		if err := st.validate(instances); err != nil {
			return oops.Code(CodeInvalid).With("step", i).With("action", st.Action).Wrap(err)
		}
	}
	return nil
}

func (st Step) validate(instances map[string]bool) error {
	if st.Action == "" {
		return oops.Errorf("action is required")
	}
	if st.Instance != "" && !instances[st.Instance] {
		return oops.With("instance", st.Instance).Errorf("unknown instance %q", st.Instance)
	}
	if st.Expect != nil && st.Expect.Status != "" {
		if _, ok := ofx.ParseStatus(st.Expect.Status); !ok {
			return oops.With("status", st.Expect.Status).Errorf("unknown expected status %q", st.Expect.Status)
		}
	}

	switch st.Action {
	case StepSetTime:
		if st.Time == nil {
			return oops.Errorf("set_time needs time")
		}
		return nil
	case StepSetParam:
		if st.Instance == "" || st.Param == "" {
			return oops.Errorf("set_param needs instance and param")
		}
		return st.ParamSpec.validate()
	case StepSetClip:
		if st.Instance == "" || st.Clip == "" {
			return oops.Errorf("set_clip needs instance and clip")
		}
		return st.ClipSpec.validate()
	}

	kind := ofx.ParseActionKind(st.Action)
	switch kind {
	case ofx.ActionLoad, ofx.ActionUnload, ofx.ActionDescribe:
	case ofx.ActionDescribeInContext:
		if _, err := ofx.ParseImageEffectContext(st.Context); err != nil {
			return oops.Wrapf(err, "describe_in_context needs a context")
		}
	case ofx.ActionUnknown:
		// Sent raw; the plugin decides what it means.
	default:
		if st.Instance == "" {
			return oops.Errorf("%s needs an instance", kind.Label())
		}
	}
	return nil
}

func (c ClipSpec) validate() error {
	if c.Components != "" {
		if _, err := ofx.ParseImageComponent(c.Components); err != nil {
			return err
		}
	}
	if c.Depth != "" {
		if _, err := ofx.ParseBitDepth(c.Depth); err != nil {
			return err
		}
	}
	if c.RoD != nil && len(c.RoD) != 4 {
		return oops.Errorf("rod needs 4 values, got %d", len(c.RoD))
	}
	if c.FrameRange != nil && len(c.FrameRange) != 2 {
		return oops.Errorf("frame_range needs 2 values, got %d", len(c.FrameRange))
	}
	if c.PAR < 0 {
		return oops.Errorf("par must be positive")
	}
	return nil
}

func (p ParamSpec) validate() error {
	set := 0
	if p.Value != nil {
		set++
	}
	if p.Keys != nil {
		set++
	}
	if p.Lua != "" {
		set++
	}
	if set != 1 {
		return oops.Errorf("exactly one of value, keys or lua is required")
	}
	for i, k := range p.Keys {
		if len(k) != 2 {
			return oops.With("key", i).Errorf("a key is [time, value], got %d values", len(k))
		}
	}
	return nil
}
