// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofxgo/ofxgo/pkg/ofx"
)

func TestParseImageComponent(t *testing.T) {
	tests := []struct {
		in   string
		want ofx.ImageComponent
	}{
		{"OfxImageComponentRGBA", ofx.ComponentRGBA},
		{"rgba", ofx.ComponentRGBA},
		{"RGB", ofx.ComponentRGB},
		{"alpha", ofx.ComponentAlpha},
		{"OfxImageComponentNone", ofx.ComponentNone},
	}
	for _, tt := range tests {
		got, err := ofx.ParseImageComponent(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ofx.ParseImageComponent("YUVA")
	assert.Error(t, err)

	assert.True(t, ofx.ComponentRGB.IsRGB())
	assert.False(t, ofx.ComponentAlpha.IsRGB())
}

func TestParseBitDepth(t *testing.T) {
	for _, d := range []ofx.BitDepth{ofx.DepthByte, ofx.DepthShort, ofx.DepthHalf, ofx.DepthFloat} {
		got, err := ofx.ParseBitDepth(d.Tag())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	got, err := ofx.ParseBitDepth("float")
	require.NoError(t, err)
	assert.Equal(t, ofx.DepthFloat, got)
	_, err = ofx.ParseBitDepth("double")
	assert.Error(t, err)
}

func TestParseImageEffectContext(t *testing.T) {
	got, err := ofx.ParseImageEffectContext("OfxImageEffectContextGeneral")
	require.NoError(t, err)
	assert.True(t, got.IsGeneral())

	got, err = ofx.ParseImageEffectContext("filter")
	require.NoError(t, err)
	assert.Equal(t, ofx.ContextFilter, got)
	assert.Equal(t, "Filter", got.String())

	_, err = ofx.ParseImageEffectContext("composite")
	assert.Error(t, err)
}

func TestParseChangeReason(t *testing.T) {
	assert.Equal(t, ofx.ChangeUserEdited, ofx.ParseChangeReason("OfxChangeUserEdited"))
	assert.Equal(t, ofx.ChangeUserEdited, ofx.ParseChangeReason("user_edited"))
	assert.Equal(t, ofx.ChangeTime, ofx.ParseChangeReason("time"))
	assert.Equal(t, ofx.ChangeOther, ofx.ParseChangeReason("OfxChangeSomethingNew"))
}

func TestParseObjectType(t *testing.T) {
	assert.Equal(t, ofx.ObjectClip, ofx.ParseObjectType("OfxTypeClip"))
	assert.Equal(t, ofx.ObjectParameter, ofx.ParseObjectType("parameter"))
	assert.Equal(t, ofx.ObjectOther, ofx.ParseObjectType("OfxTypeImageEffect"))
}

func TestParseParamType(t *testing.T) {
	got, err := ofx.ParseParamType("OfxParamTypeInteger")
	require.NoError(t, err)
	assert.Equal(t, ofx.ParamInteger, got)
	assert.Equal(t, "Integer", got.String())

	_, err = ofx.ParseParamType("OfxParamTypeRGBA")
	assert.Error(t, err)
}
