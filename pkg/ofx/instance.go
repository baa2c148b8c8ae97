// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"fmt"
	"io"
	"reflect"
	"sync"
)

type instanceState int

const (
	stateCreating instanceState = iota
	stateInstantiated
	stateDestroyed
)

func (s instanceState) String() string {
	switch s {
	case stateCreating:
		return "creating"
	case stateInstantiated:
		return "instantiated"
	default:
		return "destroyed"
	}
}

// instanceRecord is the dispatcher's entry for one host instance. mu is
// held for the whole of every action addressed to the instance; dataMu
// guards only the data cell.
type instanceRecord struct {
	handle Handle
	mu     sync.Mutex

	dataMu  sync.RWMutex
	state   instanceState
	data    any
	hasData bool
	closed  bool
}

func (r *instanceRecord) current() instanceState {
	r.dataMu.RLock()
	defer r.dataMu.RUnlock()
	return r.state
}

func (r *instanceRecord) setState(s instanceState) {
	r.dataMu.Lock()
	defer r.dataMu.Unlock()
	r.state = s
}

// release drops the data cell and closes it if it is an io.Closer. It runs
// at most once per record.
func (r *instanceRecord) release() error {
	r.dataMu.Lock()
	data, hadData, wasClosed := r.data, r.hasData, r.closed
	r.data, r.hasData, r.closed = nil, false, true
	r.state = stateDestroyed
	r.dataMu.Unlock()

	if wasClosed || !hadData {
		return nil
	}
	if c, ok := data.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close instance data: %w", err)
		}
	}
	return nil
}

// SetInstanceData attaches v to the instance. It may only be called once,
// from CreateInstance. Store a pointer to keep the data mutable.
func SetInstanceData(effect *ImageEffect, v any) error {
	if effect == nil || effect.rec == nil {
		return ErrSequence(ActionCreateInstance.String(), "no instance bound to effect")
	}
	if effect.action != ActionCreateInstance {
		return ErrSequence(effect.action.String(), "instance data can only be set during %s", ActionCreateInstance)
	}
	r := effect.rec
	r.dataMu.Lock()
	defer r.dataMu.Unlock()
	if r.state != stateCreating {
		return ErrSequence(effect.action.String(), "instance %s is %s", r.handle, r.state)
	}
	if r.hasData {
		return ErrSequence(effect.action.String(), "instance data already set")
	}
	r.data, r.hasData = v, true
	return nil
}

// InstanceData returns the data attached to the instance as a T. It fails
// with INSTANCE_DATA_NOT_SET before SetInstanceData and with
// INSTANCE_DATA_TYPE_MISMATCH when the stored value is not a T.
func InstanceData[T any](effect *ImageEffect) (T, error) {
	var zero T
	if effect == nil || effect.rec == nil {
		return zero, ErrSequence(ActionUnknown.String(), "no instance bound to effect")
	}
	r := effect.rec
	r.dataMu.RLock()
	defer r.dataMu.RUnlock()
	if r.state == stateDestroyed {
		return zero, ErrSequence(effect.action.String(), "instance %s is destroyed", r.handle)
	}
	if !r.hasData {
		return zero, ErrInstanceDataNotSet(r.handle)
	}
	v, ok := r.data.(T)
	if !ok {
		return zero, ErrInstanceDataType(r.handle, typeName[T](), fmt.Sprintf("%T", r.data))
	}
	return v, nil
}

// HasInstanceData reports whether data has been attached to the instance.
func HasInstanceData(effect *ImageEffect) bool {
	if effect == nil || effect.rec == nil {
		return false
	}
	effect.rec.dataMu.RLock()
	defer effect.rec.dataMu.RUnlock()
	return effect.rec.hasData
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
