// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofxgo/ofxgo/pkg/errutil"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

func TestSchema_Register(t *testing.T) {
	s := ofx.NewSchema("test")

	require.NoError(t, s.Register("A", ofx.PropertySpec{Type: ofx.TypeInt, Dimension: 1}))
	assert.ErrorIs(t, s.Register("A", ofx.PropertySpec{Type: ofx.TypeInt}), ofx.ErrDuplicateKey)
	assert.ErrorIs(t, s.Register("", ofx.PropertySpec{Type: ofx.TypeInt}), ofx.ErrEmptyKey)

	spec, err := s.Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, ofx.TypeInt, spec.Type)
	assert.Equal(t, 1, spec.Dimension)
	assert.Equal(t, []string{"A"}, s.Keys())
}

func TestSchema_Patterns(t *testing.T) {
	s := ofx.NewSchema("test").
		MustRegisterPattern("OfxImageClipPropRoI_*", ofx.PropertySpec{Type: ofx.TypeDouble, Dimension: 4})

	tests := []struct {
		key   string
		known bool
	}{
		{"OfxImageClipPropRoI_Source", true},
		{"OfxImageClipPropRoI_Mask", true},
		{"OfxImageClipPropRoI_My Clip", true},
		{"OfxImageClipPropDepth_Source", false},
		{"OfxImageClipPropRoI", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			spec, err := s.Lookup(tt.key)
			if !tt.known {
				errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, spec.Dimension)
		})
	}

	assert.ErrorIs(t, s.RegisterPattern("OfxImageClipPropRoI_*", ofx.PropertySpec{}), ofx.ErrDuplicateKey)
	assert.ErrorIs(t, s.RegisterPattern("[", ofx.PropertySpec{}), ofx.ErrBadPattern)
	assert.Equal(t, []string{"OfxImageClipPropRoI_*"}, s.Patterns())
}

func TestSchema_LookupUnknownCarriesRole(t *testing.T) {
	_, err := ofx.HostSchema.Lookup("OfxPropNope")
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)
	errutil.AssertErrorContext(t, err, "role", ofx.RoleHost)
	errutil.AssertErrorContext(t, err, "key", "OfxPropNope")
}

func TestClipInstanceSchema_IsReadOnly(t *testing.T) {
	for _, key := range []string{ofx.PropLabel, ofx.ImageClipPropOptional, ofx.ImageClipPropConnected} {
		spec, err := ofx.ClipInstanceSchema.Lookup(key)
		require.NoError(t, err, key)
		assert.True(t, spec.ReadOnly, key)
	}
	spec, err := ofx.ClipDescriptorSchema.Lookup(ofx.PropLabel)
	require.NoError(t, err)
	assert.False(t, spec.ReadOnly, "the descriptor is not affected by the instance copy")
}

func TestParamInstanceSchema_Writable(t *testing.T) {
	s := ofx.ParamInstanceSchema(ofx.ParamDouble)
	require.NotNil(t, s)

	for key, want := range map[string]bool{
		ofx.ParamPropEnabled:    false,
		ofx.ParamPropSecret:     false,
		ofx.ParamPropHint:       false,
		ofx.ParamPropDefault:    true,
		ofx.ParamPropDisplayMin: true,
		ofx.ParamPropType:       true,
	} {
		spec, err := s.Lookup(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, spec.ReadOnly, key)
	}
	_, err := ofx.ParamInstanceSchema(ofx.ParamPage).Lookup(ofx.ParamPropIsAnimating)
	errutil.AssertErrorCode(t, err, ofx.CodePropertyUnknownKey)
}

func TestSchemas_RoleNames(t *testing.T) {
	all := ofx.Schemas()
	names := ofx.RoleNames()
	assert.Len(t, names, len(all))
	assert.Contains(t, names, ofx.RoleHost)
	assert.Contains(t, names, ofx.RoleClipPreferencesOut)
	assert.IsIncreasing(t, names)
}
