// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package hostsim

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// safeLibrary represents a Lua library that is safe to load in sandboxed state.
type safeLibrary struct {
	name string
	fn   lua.LGFunction
}

// defaultSafeLibraries returns the list of libraries safe to load.
// Safe: base, table, string, math.
// Blocked: os, io, debug, package.
func defaultSafeLibraries() []safeLibrary {
	return []safeLibrary{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
}

// StateFactory creates sandboxed Lua states for parameter expressions.
type StateFactory struct {
	libraries []safeLibrary
}

// NewStateFactory creates a new state factory.
func NewStateFactory() *StateFactory {
	return &StateFactory{
		libraries: defaultSafeLibraries(),
	}
}

// unsafeBaseFunctions lists base library functions that reach the
// filesystem or compile arbitrary code.
var unsafeBaseFunctions = []string{"dofile", "loadfile", "loadstring", "load", "require"}

// unstableMathFunctions lists math functions whose results do not depend on
// their arguments alone. A curve sampled at a fixed time must not use them.
var unstableMathFunctions = []string{"random", "randomseed"}

// NewState creates a fresh Lua state with only safe libraries loaded. The
// state is bound to ctx, so a cancelled or expired context stops a running
// expression.
func (f *StateFactory) NewState(ctx context.Context) (*lua.LState, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // Don't load any libraries by default
	})

	for _, lib := range f.libraries {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("failed to open library %s: %w", lib.name, err)
		}
	}

	for _, fn := range unsafeBaseFunctions {
		L.SetGlobal(fn, lua.LNil)
	}
	if math, ok := L.GetGlobal(lua.MathLibName).(*lua.LTable); ok {
		for _, fn := range unstableMathFunctions {
			math.RawSetString(fn, lua.LNil)
		}
	}

	if ctx != nil {
		L.SetContext(ctx)
	}
	return L, nil
}
