// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

// Package ofx implements the plugin side of the OpenFX image effect protocol.
//
// A host drives a plugin through a fixed set of named actions. The Dispatcher
// turns each raw action name and its argument property sets into one typed
// Action value, enforces the host's call ordering (Describe before
// DescribeInContext before CreateInstance, nothing after DestroyInstance),
// serialises access to each instance's private data and maps the plugin's
// Result back to a raw Status.
//
// Property sets are host owned and untyped. PropertySet checks every key
// against the Schema of its role and converts values through the CBOR value
// codec, so reading an undefined key or reading a key with the wrong
// accessor fails instead of coercing.
//
// Example usage:
//
//	type scaler struct{}
//
//	func (scaler) Execute(ctx context.Context, pc *ofx.PluginContext, action ofx.Action) (ofx.Result, error) {
//		switch a := action.(type) {
//		case ofx.GetRegionOfDefinition:
//			t, err := a.InArgs.Time()
//			if err != nil {
//				return ofx.NotHandled, err
//			}
//			src, err := a.Effect.SourceClip()
//			if err != nil {
//				return ofx.NotHandled, err
//			}
//			rod, err := src.RegionOfDefinition(t)
//			if err != nil {
//				return ofx.NotHandled, err
//			}
//			return ofx.Handled, a.OutArgs.SetRegionOfDefinition(rod)
//		default:
//			return ofx.NotHandled, nil
//		}
//	}
package ofx
