// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

// PropertyStore is the host's property suite reduced to its raw form. The
// byte encoding of a value is the one produced by MarshalValues.
type PropertyStore interface {
	GetRaw(set Handle, key string) ([]byte, error)
	SetRaw(set Handle, key string, raw []byte) error
}

// PropertySet is a typed view over one host-owned property set. Every
// access checks the key against the set's schema and goes straight to the
// host; nothing is cached.
type PropertySet struct {
	handle Handle
	store  PropertyStore
	schema *Schema
}

// NewPropertySet binds a host property set to the schema of its role.
func NewPropertySet(handle Handle, store PropertyStore, schema *Schema) *PropertySet {
	return &PropertySet{handle: handle, store: store, schema: schema}
}

// Handle returns the host handle of the set.
func (p *PropertySet) Handle() Handle { return p.handle }

// Schema returns the schema the set is checked against.
func (p *PropertySet) Schema() *Schema { return p.schema }

// GetRaw returns the encoded value of key.
func (p *PropertySet) GetRaw(key string) ([]byte, error) {
	if _, err := p.schema.Lookup(key); err != nil {
		return nil, err
	}
	return p.getRaw(key)
}

// SetRaw stores an encoded value for key. The value is not validated
// beyond the key being known and writable.
func (p *PropertySet) SetRaw(key string, raw []byte) error {
	spec, err := p.schema.Lookup(key)
	if err != nil {
		return err
	}
	if spec.ReadOnly {
		return ErrReadOnly(p.schema.Role(), key)
	}
	return p.setRaw(key, raw)
}

func (p *PropertySet) getRaw(key string) ([]byte, error) {
	raw, err := p.store.GetRaw(p.handle, key)
	if err != nil {
		return nil, ErrPropertyHost(p.schema.Role(), key, err)
	}
	return raw, nil
}

func (p *PropertySet) setRaw(key string, raw []byte) error {
	if err := p.store.SetRaw(p.handle, key, raw); err != nil {
		return ErrPropertyHost(p.schema.Role(), key, err)
	}
	return nil
}

func (p *PropertySet) check(key string, want PropertyType) (PropertySpec, error) {
	spec, err := p.schema.Lookup(key)
	if err != nil {
		return spec, err
	}
	if spec.Type != want {
		return spec, ErrTypeMismatch(p.schema.Role(), key, spec.Type, want)
	}
	return spec, nil
}

// getValues and setValues are functions rather than methods because Go
// methods cannot take type parameters.
func getValues[T Value](p *PropertySet, key string, want PropertyType) ([]T, error) {
	spec, err := p.check(key, want)
	if err != nil {
		return nil, err
	}
	raw, err := p.getRaw(key)
	if err != nil {
		return nil, err
	}
	vs, err := UnmarshalValues[T](raw)
	if err != nil {
		return nil, ErrDecode(p.schema.Role(), key, err)
	}
	if spec.Dimension > 0 && len(vs) != spec.Dimension {
		return nil, ErrDimension(p.schema.Role(), key, spec.Dimension, len(vs))
	}
	return vs, nil
}

func getValue[T Value](p *PropertySet, key string, want PropertyType) (T, error) {
	var zero T
	spec, err := p.check(key, want)
	if err != nil {
		return zero, err
	}
	if spec.Dimension > 1 {
		return zero, ErrDimension(p.schema.Role(), key, spec.Dimension, 1)
	}
	vs, err := getValues[T](p, key, want)
	if err != nil {
		return zero, err
	}
	if len(vs) == 0 {
		return zero, ErrDimension(p.schema.Role(), key, 1, 0)
	}
	return vs[0], nil
}

func setValues[T Value](p *PropertySet, key string, want PropertyType, vs []T) error {
	spec, err := p.check(key, want)
	if err != nil {
		return err
	}
	if spec.ReadOnly {
		return ErrReadOnly(p.schema.Role(), key)
	}
	if spec.Dimension > 0 && len(vs) != spec.Dimension {
		return ErrDimension(p.schema.Role(), key, spec.Dimension, len(vs))
	}
	raw, err := MarshalValues(vs...)
	if err != nil {
		return ErrDecode(p.schema.Role(), key, err)
	}
	return p.setRaw(key, raw)
}

// Double reads a single double.
func (p *PropertySet) Double(key string) (float64, error) {
	return getValue[float64](p, key, TypeDouble)
}

// Doubles reads every value of a double key.
func (p *PropertySet) Doubles(key string) ([]float64, error) {
	return getValues[float64](p, key, TypeDouble)
}

// SetDouble writes a single double.
func (p *PropertySet) SetDouble(key string, v float64) error {
	return setValues(p, key, TypeDouble, []float64{v})
}

// SetDoubles writes every value of a double key.
func (p *PropertySet) SetDoubles(key string, vs ...float64) error {
	return setValues(p, key, TypeDouble, vs)
}

// Int reads a single integer.
func (p *PropertySet) Int(key string) (int, error) {
	return getValue[int](p, key, TypeInt)
}

// Ints reads every value of an integer key.
func (p *PropertySet) Ints(key string) ([]int, error) {
	return getValues[int](p, key, TypeInt)
}

// SetInt writes a single integer.
func (p *PropertySet) SetInt(key string, v int) error {
	return setValues(p, key, TypeInt, []int{v})
}

// SetInts writes every value of an integer key.
func (p *PropertySet) SetInts(key string, vs ...int) error {
	return setValues(p, key, TypeInt, vs)
}

// Bool reads a boolean.
func (p *PropertySet) Bool(key string) (bool, error) {
	return getValue[bool](p, key, TypeBool)
}

// SetBool writes a boolean.
func (p *PropertySet) SetBool(key string, v bool) error {
	return setValues(p, key, TypeBool, []bool{v})
}

// String reads a single string.
func (p *PropertySet) String(key string) (string, error) {
	return getValue[string](p, key, TypeString)
}

// Strings reads every value of a string key.
func (p *PropertySet) Strings(key string) ([]string, error) {
	return getValues[string](p, key, TypeString)
}

// SetString writes a single string.
func (p *PropertySet) SetString(key string, v string) error {
	return setValues(p, key, TypeString, []string{v})
}

// SetStrings writes every value of a string key.
func (p *PropertySet) SetStrings(key string, vs ...string) error {
	return setValues(p, key, TypeString, vs)
}

// Tag reads a single enumeration tag.
func (p *PropertySet) Tag(key string) (string, error) {
	return getValue[string](p, key, TypeTag)
}

// Tags reads every tag of a multi-valued enumeration key.
func (p *PropertySet) Tags(key string) ([]string, error) {
	return getValues[string](p, key, TypeTag)
}

// SetTag writes a single enumeration tag.
func (p *PropertySet) SetTag(key string, tag string) error {
	return setValues(p, key, TypeTag, []string{tag})
}

// SetTags writes every tag of a multi-valued enumeration key.
func (p *PropertySet) SetTags(key string, tags ...string) error {
	return setValues(p, key, TypeTag, tags)
}

// Bytes reads an opaque byte blob.
func (p *PropertySet) Bytes(key string) ([]byte, error) {
	return getValue[[]byte](p, key, TypeBytes)
}

// SetBytes writes an opaque byte blob.
func (p *PropertySet) SetBytes(key string, v []byte) error {
	return setValues(p, key, TypeBytes, [][]byte{v})
}

// RectD reads a four-value double key as a rectangle.
func (p *PropertySet) RectD(key string) (RectD, error) {
	vs, err := p.doublesN(key, 4)
	if err != nil {
		return RectD{}, err
	}
	return RectD{X1: vs[0], Y1: vs[1], X2: vs[2], Y2: vs[3]}, nil
}

// SetRectD writes a rectangle to a four-value double key.
func (p *PropertySet) SetRectD(key string, r RectD) error {
	return p.SetDoubles(key, r.values()...)
}

// RectI reads a four-value integer key as a rectangle.
func (p *PropertySet) RectI(key string) (RectI, error) {
	vs, err := p.Ints(key)
	if err != nil {
		return RectI{}, err
	}
	if len(vs) != 4 {
		return RectI{}, ErrDimension(p.schema.Role(), key, 4, len(vs))
	}
	return RectI{X1: vs[0], Y1: vs[1], X2: vs[2], Y2: vs[3]}, nil
}

// SetRectI writes a rectangle to a four-value integer key.
func (p *PropertySet) SetRectI(key string, r RectI) error {
	return p.SetInts(key, r.values()...)
}

func (p *PropertySet) doublesN(key string, n int) ([]float64, error) {
	vs, err := p.Doubles(key)
	if err != nil {
		return nil, err
	}
	if len(vs) != n {
		return nil, ErrDimension(p.schema.Role(), key, n, len(vs))
	}
	return vs, nil
}

