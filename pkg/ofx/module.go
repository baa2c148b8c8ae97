// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package ofx

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
)

// identifierPattern matches reverse-domain plugin identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z0-9_-]+)+$`)

// PluginVersion is the plugin's own major.minor version.
type PluginVersion struct {
	Major int
	Minor int
}

func (v PluginVersion) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Module is what a plugin binary exports: an identifier, the API version
// it speaks, its own version and a constructor.
type Module struct {
	ID         string
	APIVersion int
	Version    PluginVersion
	New        func() Plugin
}

// Validate checks that the module is usable.
func (m Module) Validate() error {
	if !identifierPattern.MatchString(m.ID) {
		return oops.With("id", m.ID).Errorf("plugin identifier must be reverse-domain style")
	}
	if m.APIVersion < 1 {
		return oops.With("id", m.ID).Errorf("API version must be at least 1")
	}
	if m.Version.Major < 0 || m.Version.Minor < 0 {
		return oops.With("id", m.ID).Errorf("plugin version cannot be negative")
	}
	if m.New == nil {
		return oops.With("id", m.ID).Errorf("plugin constructor is required")
	}
	return nil
}

// SemVer returns the plugin version as a semantic version.
func (m Module) SemVer() *semver.Version {
	return semver.New(uint64(m.Version.Major), uint64(m.Version.Minor), 0, "", "")
}

// Compatible reports whether a host accepting API versions in constraint
// (for example ">= 1, < 2") can load the module.
func (m Module) Compatible(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, oops.With("constraint", constraint).Wrapf(err, "invalid API constraint")
	}
	api := semver.New(uint64(m.APIVersion), 0, 0, "", "")
	return c.Check(api), nil
}
