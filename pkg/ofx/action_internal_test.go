// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActionCoversEveryKind(t *testing.T) {
	for _, kind := range ActionKinds() {
		t.Run(kind.Label(), func(t *testing.T) {
			a := newAction(kind, bindings{})
			require.NotNil(t, a)
			assert.Equal(t, kind, a.Kind())
		})
	}
	assert.Nil(t, newAction(ActionUnknown, bindings{}))
}

func TestActionKinds_NamesAndLabelsAreUnique(t *testing.T) {
	names := map[string]bool{}
	labels := map[string]bool{}
	for _, kind := range ActionKinds() {
		assert.False(t, names[kind.String()], kind.String())
		assert.False(t, labels[kind.Label()], kind.Label())
		names[kind.String()] = true
		labels[kind.Label()] = true
	}
	assert.Len(t, names, len(actionNames))
	assert.Len(t, labels, len(actionLabels))
}

func TestActionKind_Global(t *testing.T) {
	global := map[ActionKind]bool{
		ActionLoad:              true,
		ActionUnload:            true,
		ActionDescribe:          true,
		ActionDescribeInContext: true,
	}
	for _, kind := range ActionKinds() {
		assert.Equal(t, global[kind], kind.global(), kind.String())
	}
}

func TestHeld_WithInstanceCopies(t *testing.T) {
	var h held
	a := h.withInstance("a")
	b := a.withInstance("b")

	assert.Contains(t, a.instances, Handle("a"))
	assert.NotContains(t, a.instances, Handle("b"), "extending a chain leaves the parent untouched")
	assert.Contains(t, b.instances, Handle("a"))
	assert.Contains(t, b.instances, Handle("b"))
	assert.False(t, b.global)
	assert.True(t, b.withGlobal().global)
}

func TestScope(t *testing.T) {
	sc := newScope(ActionDescribe)
	require.NoError(t, sc.check("SetLabel"))
	assert.True(t, IsSequenceError(sc.require("DefineClip", ActionDescribeInContext)))

	sc.close()
	assert.True(t, IsSequenceError(sc.check("SetLabel")))
}

func TestInstanceRecord_ReleaseOnce(t *testing.T) {
	closes := 0
	rec := &instanceRecord{handle: "i", state: stateInstantiated, data: closerFunc(func() error {
		closes++
		return nil
	}), hasData: true}

	require.NoError(t, rec.release())
	require.NoError(t, rec.release())
	assert.Equal(t, 1, closes)
	assert.Equal(t, stateDestroyed, rec.current())
	assert.Equal(t, "destroyed", rec.current().String())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
