// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/errutil"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// mockStore is a PropertyStore whose answers are scripted per test.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetRaw(set ofx.Handle, key string) ([]byte, error) {
	args := m.Called(set, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *mockStore) SetRaw(set ofx.Handle, key string, raw []byte) error {
	args := m.Called(set, key, raw)
	return args.Error(0)
}

func newSet(t *testing.T, h *hostsim.Host, schema *ofx.Schema, values map[string]any) *ofx.PropertySet {
	t.Helper()
	handle, err := h.NewPropertySet(schema, values)
	require.NoError(t, err)
	t.Cleanup(func() { h.Release(handle) })
	return ofx.NewPropertySet(handle, h, schema)
}

func TestPropertySet_RoundTrip(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())

	t.Run("rect", func(t *testing.T) {
		ps := newSet(t, h, ofx.RegionOfDefinitionOutSchema, nil)
		want := ofx.RectD{X1: -10, Y1: 0, X2: 1920.5, Y2: 1080}
		require.NoError(t, ps.SetRectD(ofx.ImageEffectPropRegionOfDefinition, want))
		got, err := ps.RectD(ofx.ImageEffectPropRegionOfDefinition)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("string and double", func(t *testing.T) {
		ps := newSet(t, h, ofx.IsIdentityOutSchema, nil)
		require.NoError(t, ps.SetString(ofx.PropName, "Source"))
		require.NoError(t, ps.SetDouble(ofx.PropTime, 12.5))

		name, err := ps.String(ofx.PropName)
		require.NoError(t, err)
		assert.Equal(t, "Source", name)
		tm, err := ps.Double(ofx.PropTime)
		require.NoError(t, err)
		assert.Equal(t, 12.5, tm)
	})

	t.Run("raw form is the shared codec", func(t *testing.T) {
		ps := newSet(t, h, ofx.TimeDomainOutSchema, nil)
		require.NoError(t, ps.SetDoubles(ofx.ImageEffectPropFrameRange, 1, 50))

		raw, err := ps.GetRaw(ofx.ImageEffectPropFrameRange)
		require.NoError(t, err)
		want, err := ofx.MarshalValues(1.0, 50.0)
		require.NoError(t, err)
		assert.Equal(t, want, raw)

		require.NoError(t, ps.SetRaw(ofx.ImageEffectPropFrameRange, want))
	})

	t.Run("tags on pattern keys", func(t *testing.T) {
		ps := newSet(t, h, ofx.ClipPreferencesOutSchema, nil)
		key := ofx.ClipPropComponents(ofx.ClipOutput)
		require.NoError(t, ps.SetTag(key, ofx.ComponentRGBA.Tag()))
		got, err := ps.Tag(key)
		require.NoError(t, err)
		assert.Equal(t, ofx.ComponentRGBA.Tag(), got)
	})

	t.Run("read only values are readable", func(t *testing.T) {
		ps := newSet(t, h, ofx.RenderInSchema, map[string]any{
			ofx.PropTime:                    3.0,
			ofx.ImageEffectPropRenderWindow: ofx.RectI{X1: 1, Y1: 2, X2: 3, Y2: 4},
		})
		tm, err := ps.Double(ofx.PropTime)
		require.NoError(t, err)
		assert.Equal(t, 3.0, tm)
		win, err := ps.RectI(ofx.ImageEffectPropRenderWindow)
		require.NoError(t, err)
		assert.Equal(t, ofx.RectI{X1: 1, Y1: 2, X2: 3, Y2: 4}, win)
	})
}

func TestPropertySet_UnknownKey(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	ps := newSet(t, h, ofx.IsIdentityOutSchema, nil)

	_, err := ps.Double("OfxPropNope")
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)
	assert.True(t, ofx.IsPropertyError(err))

	err = ps.SetString("OfxPropNope", "x")
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)

	_, err = ps.GetRaw(ofx.ImageEffectPropRenderWindow)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)
}

func TestPropertySet_TypeMismatch(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	ps := newSet(t, h, ofx.IsIdentityOutSchema, nil)
	require.NoError(t, ps.SetString(ofx.PropName, "Source"))

	_, err := ps.Double(ofx.PropName)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)

	err = ps.SetInt(ofx.PropTime, 3)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)

	err = ps.SetTag(ofx.PropName, "OfxImageComponentRGBA")
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)
}

func TestPropertySet_Dimension(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	ps := newSet(t, h, ofx.TimeDomainOutSchema, nil)

	err := ps.SetDoubles(ofx.ImageEffectPropFrameRange, 1)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)
	errutil.AssertErrorContext(t, err, "want", 2)
	errutil.AssertErrorContext(t, err, "got", 1)

	err = ps.SetDoubles(ofx.ImageEffectPropFrameRange, 1, 2, 3)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)

	_, err = ps.Double(ofx.ImageEffectPropFrameRange)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)
}

func TestPropertySet_ReadOnly(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	ps := newSet(t, h, ofx.RenderInSchema, map[string]any{ofx.PropTime: 3.0})

	err := ps.SetDouble(ofx.PropTime, 4)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyReadOnly)

	raw, err := ofx.MarshalValues(4.0)
	require.NoError(t, err)
	err = ps.SetRaw(ofx.PropTime, raw)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyReadOnly)

	tm, err := ps.Double(ofx.PropTime)
	require.NoError(t, err)
	assert.Equal(t, 3.0, tm, "rejected writes leave the value alone")
}

func TestPropertySet_NoCaching(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	handle, err := h.NewPropertySet(ofx.IsIdentityOutSchema, map[string]any{ofx.PropName: "A"})
	require.NoError(t, err)
	ps := ofx.NewPropertySet(handle, h, ofx.IsIdentityOutSchema)

	name, err := ps.String(ofx.PropName)
	require.NoError(t, err)
	assert.Equal(t, "A", name)

	raw, err := hostsim.Encode("B")
	require.NoError(t, err)
	require.NoError(t, h.SetRaw(handle, ofx.PropName, raw))

	name, err = ps.String(ofx.PropName)
	require.NoError(t, err)
	assert.Equal(t, "B", name)
}

func TestPropertySet_HostRejects(t *testing.T) {
	tests := []struct {
		name     string
		status   ofx.Status
		wantCode string
	}{
		{"unknown to the host", ofx.StatErrUnknown, ofx.CodePropertyUnknownKey},
		{"bad handle", ofx.StatErrBadHandle, ofx.CodePropertyHostRejected},
		{"bad value", ofx.StatErrValue, ofx.CodePropertyHostRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockStore{}
			hostErr := &ofx.StatusError{Status: tt.status, Message: "rejected"}
			store.On("GetRaw", ofx.Handle("set"), ofx.PropName).Return(nil, hostErr)
			store.On("SetRaw", ofx.Handle("set"), ofx.PropName, mock.Anything).Return(hostErr)

			ps := ofx.NewPropertySet("set", store, ofx.IsIdentityOutSchema)
			_, err := ps.String(ofx.PropName)
			errutil.AssertErrorCode(t, err, tt.wantCode)
			assert.ErrorIs(t, err, hostErr)

			err = ps.SetString(ofx.PropName, "Source")
			errutil.AssertErrorCode(t, err, tt.wantCode)
			store.AssertExpectations(t)
		})
	}
}

func TestPropertySet_SchemaCheckedBeforeHost(t *testing.T) {
	store := &mockStore{}
	ps := ofx.NewPropertySet("set", store, ofx.IsIdentityOutSchema)

	_, err := ps.Int(ofx.PropName)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyTypeMismatch)
	err = ps.SetDouble("OfxPropNope", 1)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)

	store.AssertNotCalled(t, "GetRaw", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SetRaw", mock.Anything, mock.Anything, mock.Anything)
}

func TestPropertySet_MissingValue(t *testing.T) {
	h := hostsim.New(hostsim.DefaultOptions())
	ps := newSet(t, h, ofx.IsIdentityOutSchema, nil)

	_, err := ps.String(ofx.PropName)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyHostRejected)
}
