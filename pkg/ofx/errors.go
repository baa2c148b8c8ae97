// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"errors"
	"strings"

	"github.com/samber/oops"
)

// Error codes. The prefix names the error family.
const (
	CodePropertyUnknownKey       = "PROPERTY_UNKNOWN_KEY"
	CodePropertyTypeMismatch     = "PROPERTY_TYPE_MISMATCH"
	CodePropertyHostRejected     = "PROPERTY_HOST_REJECTED"
	CodePropertyReadOnly         = "PROPERTY_READ_ONLY"
	CodeParamNotFound            = "PARAM_NOT_FOUND"
	CodeParamWrongType           = "PARAM_WRONG_TYPE"
	CodeParamHostRejected        = "PARAM_HOST_REJECTED"
	CodeClipNotFound             = "CLIP_NOT_FOUND"
	CodeClipHostRejected         = "CLIP_HOST_REJECTED"
	CodeInstanceDataNotSet       = "INSTANCE_DATA_NOT_SET"
	CodeInstanceDataTypeMismatch = "INSTANCE_DATA_TYPE_MISMATCH"
	CodeSequenceError            = "SEQUENCE_ERROR"
	CodePluginPanic              = "PLUGIN_PANIC"
)

// ErrUnknownKey creates an error for a key outside a role's schema.
func ErrUnknownKey(role, key string) error {
	return oops.Code(CodePropertyUnknownKey).
		With("role", role).
		With("key", key).
		Errorf("unknown property %s for %s", key, role)
}

// ErrTypeMismatch creates an error for a key accessed with the wrong type.
func ErrTypeMismatch(role, key string, want, got PropertyType) error {
	return oops.Code(CodePropertyTypeMismatch).
		With("role", role).
		With("key", key).
		With("want", want.String()).
		With("got", got.String()).
		Errorf("property %s is %s, accessed as %s", key, want, got)
}

// ErrDimension creates an error for a fixed-size key given the wrong count.
func ErrDimension(role, key string, want, got int) error {
	return oops.Code(CodePropertyTypeMismatch).
		With("role", role).
		With("key", key).
		With("want", want).
		With("got", got).
		Errorf("property %s holds %d values, got %d", key, want, got)
}

// ErrDecode creates an error for a stored value that does not decode as
// the schema type.
func ErrDecode(role, key string, cause error) error {
	return oops.Code(CodePropertyTypeMismatch).
		With("role", role).
		With("key", key).
		Wrapf(cause, "property %s", key)
}

// ErrBadTag creates an error for a tag outside its enumeration.
func ErrBadTag(role, key, tag string) error {
	return oops.Code(CodePropertyTypeMismatch).
		With("role", role).
		With("key", key).
		With("got", tag).
		Errorf("property %s holds unknown tag %q", key, tag)
}

// ErrReadOnly creates an error for a write to a host-maintained key.
func ErrReadOnly(role, key string) error {
	return oops.Code(CodePropertyReadOnly).
		With("role", role).
		With("key", key).
		Errorf("property %s is read only for %s", key, role)
}

// ErrPropertyHost wraps a failure returned by the host property store.
func ErrPropertyHost(role, key string, cause error) error {
	code := CodePropertyHostRejected
	if hostStatus(cause) == StatErrUnknown {
		code = CodePropertyUnknownKey
	}
	return oops.Code(code).
		With("role", role).
		With("key", key).
		Wrapf(cause, "property %s", key)
}

// ErrParamNotFound creates an error for a parameter the host does not know.
func ErrParamNotFound(name string) error {
	return oops.Code(CodeParamNotFound).
		With("param", name).
		Errorf("parameter %s not found", name)
}

// ErrParamWrongType creates an error for a parameter fetched as the wrong type.
func ErrParamWrongType(name string, want, got ParamType) error {
	return oops.Code(CodeParamWrongType).
		With("param", name).
		With("want", want.String()).
		With("got", got.String()).
		Errorf("parameter %s is %s, requested as %s", name, got, want)
}

func errParamValue(name string, cause error) error {
	return oops.Code(CodeParamWrongType).
		With("param", name).
		Wrapf(cause, "parameter %s value", name)
}

// ErrParamHost wraps a failure returned by the host parameter suite.
func ErrParamHost(name string, cause error) error {
	code := CodeParamHostRejected
	if hostStatus(cause) == StatErrUnknown {
		code = CodeParamNotFound
	}
	return oops.Code(code).
		With("param", name).
		Wrapf(cause, "parameter %s", name)
}

// ErrClipHost wraps a failure returned by the host clip suite.
func ErrClipHost(name string, cause error) error {
	code := CodeClipHostRejected
	if hostStatus(cause) == StatErrUnknown {
		code = CodeClipNotFound
	}
	return oops.Code(code).
		With("clip", name).
		Wrapf(cause, "clip %s", name)
}

// ErrInstanceDataNotSet creates an error for a read before any write.
func ErrInstanceDataNotSet(instance Handle) error {
	return oops.Code(CodeInstanceDataNotSet).
		With("instance", string(instance)).
		Errorf("instance data not set")
}

// ErrInstanceDataType creates an error for a typed read with the wrong type.
func ErrInstanceDataType(instance Handle, want, got string) error {
	return oops.Code(CodeInstanceDataTypeMismatch).
		With("instance", string(instance)).
		With("want", want).
		With("got", got).
		Errorf("instance data is %s, requested as %s", got, want)
}

// ErrSequence creates an error for an operation outside its lifecycle state.
func ErrSequence(action string, format string, args ...any) error {
	return oops.Code(CodeSequenceError).
		With("action", action).
		Errorf(format, args...)
}

func errPanic(action string, recovered any) error {
	return oops.Code(CodePluginPanic).
		With("action", action).
		Errorf("plugin panicked: %v", recovered)
}

func hostStatus(err error) Status {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatFailed
}

// ErrorCode returns the oops code attached to err, or "" when there is none.
func ErrorCode(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// IsPropertyError reports whether err belongs to the property family.
func IsPropertyError(err error) bool { return strings.HasPrefix(ErrorCode(err), "PROPERTY_") }

// IsParameterError reports whether err belongs to the parameter family.
func IsParameterError(err error) bool { return strings.HasPrefix(ErrorCode(err), "PARAM_") }

// IsClipError reports whether err belongs to the clip family.
func IsClipError(err error) bool { return strings.HasPrefix(ErrorCode(err), "CLIP_") }

// IsInstanceDataError reports whether err belongs to the instance data family.
func IsInstanceDataError(err error) bool {
	return strings.HasPrefix(ErrorCode(err), "INSTANCE_DATA_")
}

// IsSequenceError reports whether err is a lifecycle ordering violation.
func IsSequenceError(err error) bool { return ErrorCode(err) == CodeSequenceError }
