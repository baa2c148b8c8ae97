// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// ParamSuite is the host's parameter suite. Values cross the boundary in
// the encoding produced by MarshalValue. Time-varying values are
// evaluated by the host.
type ParamSuite interface {
	// ParamDefine declares a parameter on a descriptor's set and returns
	// its property set.
	ParamDefine(set Handle, kind ParamType, name string) (Handle, error)
	// ParamGetHandle returns a parameter of an instance's set and its
	// property set.
	ParamGetHandle(set Handle, name string) (param Handle, props Handle, err error)
	ParamGetValue(param Handle) ([]byte, error)
	ParamGetValueAtTime(param Handle, time float64) ([]byte, error)
	ParamSetValue(param Handle, raw []byte) error
}

// ParamValue is the set of Go types a valued parameter can hold.
type ParamValue interface {
	float64 | bool | int | string
}

func paramTypeOf[T ParamValue]() ParamType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return ParamDouble
	case bool:
		return ParamBoolean
	case int:
		return ParamInteger
	default:
		return ParamString
	}
}

// ParamSetDescriptor is the parameter set of an effect descriptor.
type ParamSetDescriptor struct {
	handle Handle
	host   *Host
	scope  *scope
}

func (s *ParamSetDescriptor) define(kind ParamType, name string) (*ParamDescriptor, error) {
	if err := s.scope.require("Define"+kind.String(), ActionDescribeInContext); err != nil {
		return nil, err
	}
	props, err := s.host.Params.ParamDefine(s.handle, kind, name)
	if err != nil {
		return nil, ErrParamHost(name, err)
	}
	return &ParamDescriptor{
		name:  name,
		kind:  kind,
		scope: s.scope,
		props: NewPropertySet(props, s.host.Properties, ParamDescriptorSchema(kind)),
	}, nil
}

// DefineDouble declares a floating point parameter.
func (s *ParamSetDescriptor) DefineDouble(name string) (*DoubleParamDescriptor, error) {
	d, err := s.define(ParamDouble, name)
	if err != nil {
		return nil, err
	}
	return &DoubleParamDescriptor{d}, nil
}

// DefineInteger declares an integer parameter.
func (s *ParamSetDescriptor) DefineInteger(name string) (*IntegerParamDescriptor, error) {
	d, err := s.define(ParamInteger, name)
	if err != nil {
		return nil, err
	}
	return &IntegerParamDescriptor{d}, nil
}

// DefineBoolean declares a boolean parameter.
func (s *ParamSetDescriptor) DefineBoolean(name string) (*BooleanParamDescriptor, error) {
	d, err := s.define(ParamBoolean, name)
	if err != nil {
		return nil, err
	}
	return &BooleanParamDescriptor{d}, nil
}

// DefineString declares a string parameter.
func (s *ParamSetDescriptor) DefineString(name string) (*StringParamDescriptor, error) {
	d, err := s.define(ParamString, name)
	if err != nil {
		return nil, err
	}
	return &StringParamDescriptor{d}, nil
}

// DefineGroup declares a group other parameters can be parented to.
func (s *ParamSetDescriptor) DefineGroup(name string) (*ParamDescriptor, error) {
	return s.define(ParamGroup, name)
}

// DefinePage declares a page of the host's parameter editor.
func (s *ParamSetDescriptor) DefinePage(name string) (*PageParamDescriptor, error) {
	d, err := s.define(ParamPage, name)
	if err != nil {
		return nil, err
	}
	return &PageParamDescriptor{d}, nil
}

// ParamDescriptor holds the setters shared by every parameter kind.
type ParamDescriptor struct {
	name  string
	kind  ParamType
	scope *scope
	props *PropertySet
}

// Name returns the parameter name.
func (d *ParamDescriptor) Name() string { return d.name }

// Kind returns the parameter type.
func (d *ParamDescriptor) Kind() ParamType { return d.kind }

// Properties returns the descriptor's property set.
func (d *ParamDescriptor) Properties() *PropertySet { return d.props }

func (d *ParamDescriptor) guard(op string) error {
	return d.scope.require(op, ActionDescribeInContext)
}

// SetLabel sets the user visible name.
func (d *ParamDescriptor) SetLabel(label string) error {
	if err := d.guard("SetLabel"); err != nil {
		return err
	}
	return d.props.SetString(PropLabel, label)
}

// SetHint sets the tooltip text.
func (d *ParamDescriptor) SetHint(hint string) error {
	if err := d.guard("SetHint"); err != nil {
		return err
	}
	return d.props.SetString(ParamPropHint, hint)
}

// SetScriptName sets the name used by host scripting.
func (d *ParamDescriptor) SetScriptName(name string) error {
	if err := d.guard("SetScriptName"); err != nil {
		return err
	}
	return d.props.SetString(ParamPropScriptName, name)
}

// SetParent places the parameter in a group.
func (d *ParamDescriptor) SetParent(group string) error {
	if err := d.guard("SetParent"); err != nil {
		return err
	}
	return d.props.SetString(ParamPropParent, group)
}

// SetEnabled sets the initial enabled state.
func (d *ParamDescriptor) SetEnabled(enabled bool) error {
	if err := d.guard("SetEnabled"); err != nil {
		return err
	}
	return d.props.SetBool(ParamPropEnabled, enabled)
}

// DoubleParamDescriptor declares a double parameter.
type DoubleParamDescriptor struct{ *ParamDescriptor }

// SetDefault sets the initial value.
func (d *DoubleParamDescriptor) SetDefault(v float64) error {
	if err := d.guard("SetDefault"); err != nil {
		return err
	}
	return d.props.SetDouble(ParamPropDefault, v)
}

// SetDisplayMin sets the lower end of the slider.
func (d *DoubleParamDescriptor) SetDisplayMin(v float64) error {
	if err := d.guard("SetDisplayMin"); err != nil {
		return err
	}
	return d.props.SetDouble(ParamPropDisplayMin, v)
}

// SetDisplayMax sets the upper end of the slider.
func (d *DoubleParamDescriptor) SetDisplayMax(v float64) error {
	if err := d.guard("SetDisplayMax"); err != nil {
		return err
	}
	return d.props.SetDouble(ParamPropDisplayMax, v)
}

// SetDisplayRange sets both ends of the slider.
func (d *DoubleParamDescriptor) SetDisplayRange(minimum, maximum float64) error {
	if err := d.SetDisplayMin(minimum); err != nil {
		return err
	}
	return d.SetDisplayMax(maximum)
}

// SetRange sets the hard limits of the value.
func (d *DoubleParamDescriptor) SetRange(minimum, maximum float64) error {
	if err := d.guard("SetRange"); err != nil {
		return err
	}
	if err := d.props.SetDouble(ParamPropMin, minimum); err != nil {
		return err
	}
	return d.props.SetDouble(ParamPropMax, maximum)
}

// SetDoubleType tells the host how to present the value.
func (d *DoubleParamDescriptor) SetDoubleType(t DoubleType) error {
	if err := d.guard("SetDoubleType"); err != nil {
		return err
	}
	return d.props.SetTag(ParamPropDoubleType, t.Tag())
}

// IntegerParamDescriptor declares an integer parameter.
type IntegerParamDescriptor struct{ *ParamDescriptor }

// SetDefault sets the initial value.
func (d *IntegerParamDescriptor) SetDefault(v int) error {
	if err := d.guard("SetDefault"); err != nil {
		return err
	}
	return d.props.SetInt(ParamPropDefault, v)
}

// SetDisplayRange sets both ends of the slider.
func (d *IntegerParamDescriptor) SetDisplayRange(minimum, maximum int) error {
	if err := d.guard("SetDisplayRange"); err != nil {
		return err
	}
	if err := d.props.SetInt(ParamPropDisplayMin, minimum); err != nil {
		return err
	}
	return d.props.SetInt(ParamPropDisplayMax, maximum)
}

// BooleanParamDescriptor declares a boolean parameter.
type BooleanParamDescriptor struct{ *ParamDescriptor }

// SetDefault sets the initial value.
func (d *BooleanParamDescriptor) SetDefault(v bool) error {
	if err := d.guard("SetDefault"); err != nil {
		return err
	}
	return d.props.SetBool(ParamPropDefault, v)
}

// StringParamDescriptor declares a string parameter.
type StringParamDescriptor struct{ *ParamDescriptor }

// SetDefault sets the initial value.
func (d *StringParamDescriptor) SetDefault(v string) error {
	if err := d.guard("SetDefault"); err != nil {
		return err
	}
	return d.props.SetString(ParamPropDefault, v)
}

// PageParamDescriptor declares a page.
type PageParamDescriptor struct{ *ParamDescriptor }

// SetChildren lists the parameters shown on the page, in order.
func (d *PageParamDescriptor) SetChildren(names ...string) error {
	if err := d.guard("SetChildren"); err != nil {
		return err
	}
	return d.props.SetStrings(ParamPropPageChild, names...)
}

// ParamSet is the parameter set of a live instance.
type ParamSet struct {
	handle Handle
	host   *Host
}

// Handle returns the host handle of the set.
func (s *ParamSet) Handle() Handle { return s.handle }

// Kind returns the declared type of the named parameter.
func (s *ParamSet) Kind(name string) (ParamType, error) {
	_, props, err := s.host.Params.ParamGetHandle(s.handle, name)
	if err != nil {
		return 0, ErrParamHost(name, err)
	}
	return s.kindOf(name, props)
}

func (s *ParamSet) kindOf(name string, props Handle) (ParamType, error) {
	// Every kind's schema carries the type key, so any of them can read it.
	tag, err := NewPropertySet(props, s.host.Properties, ParamInstanceSchema(ParamGroup)).Tag(ParamPropType)
	if err != nil {
		return 0, err
	}
	kind, err := ParseParamType(tag)
	if err != nil {
		return 0, ErrBadTag("param_instance", ParamPropType, tag)
	}
	return kind, nil
}

// Param fetches the named parameter as a value of type T. It fails with
// PARAM_WRONG_TYPE when the host declared the parameter with another type.
func Param[T ParamValue](s *ParamSet, name string) (*ParamHandle[T], error) {
	param, props, err := s.host.Params.ParamGetHandle(s.handle, name)
	if err != nil {
		return nil, ErrParamHost(name, err)
	}
	kind, err := s.kindOf(name, props)
	if err != nil {
		return nil, err
	}
	if want := paramTypeOf[T](); kind != want {
		return nil, ErrParamWrongType(name, want, kind)
	}
	return &ParamHandle[T]{
		name:   name,
		handle: param,
		params: s.host.Params,
		props:  NewPropertySet(props, s.host.Properties, ParamInstanceSchema(kind)),
	}, nil
}

// ParamHandle is a typed reference to a live parameter. It can be kept in
// instance data and used from any later action of the same instance.
type ParamHandle[T ParamValue] struct {
	name   string
	handle Handle
	params ParamSuite
	props  *PropertySet
}

// Name returns the parameter name.
func (p *ParamHandle[T]) Name() string { return p.name }

// Properties returns the parameter's property set.
func (p *ParamHandle[T]) Properties() *PropertySet { return p.props }

// Value returns the current value.
func (p *ParamHandle[T]) Value() (T, error) {
	raw, err := p.params.ParamGetValue(p.handle)
	if err != nil {
		var zero T
		return zero, ErrParamHost(p.name, err)
	}
	return p.decode(raw)
}

// ValueAtTime returns the value at time as evaluated by the host.
func (p *ParamHandle[T]) ValueAtTime(time float64) (T, error) {
	raw, err := p.params.ParamGetValueAtTime(p.handle, time)
	if err != nil {
		var zero T
		return zero, ErrParamHost(p.name, err)
	}
	return p.decode(raw)
}

// SetValue replaces the current value.
func (p *ParamHandle[T]) SetValue(v T) error {
	raw, err := MarshalValue(v)
	if err != nil {
		return ErrParamHost(p.name, err)
	}
	if err := p.params.ParamSetValue(p.handle, raw); err != nil {
		return ErrParamHost(p.name, err)
	}
	return nil
}

// Enabled reports whether the host shows the parameter as editable.
func (p *ParamHandle[T]) Enabled() (bool, error) {
	return p.props.Bool(ParamPropEnabled)
}

// SetEnabled greys the parameter out or back in.
func (p *ParamHandle[T]) SetEnabled(enabled bool) error {
	return p.props.SetBool(ParamPropEnabled, enabled)
}

// Visible reports whether the host shows the parameter at all.
func (p *ParamHandle[T]) Visible() (bool, error) {
	secret, err := p.props.Bool(ParamPropSecret)
	if err != nil {
		return false, err
	}
	return !secret, nil
}

// SetVisible hides or shows the parameter.
func (p *ParamHandle[T]) SetVisible(visible bool) error {
	return p.props.SetBool(ParamPropSecret, !visible)
}

func (p *ParamHandle[T]) decode(raw []byte) (T, error) {
	v, err := UnmarshalValue[T](raw)
	if err != nil {
		var zero T
		return zero, errParamValue(p.name, err)
	}
	return v, nil
}
