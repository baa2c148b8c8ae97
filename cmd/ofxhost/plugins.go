// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ofxgo/ofxgo/pkg/ofx"
	"github.com/ofxgo/ofxgo/plugins/simple"
)

const defaultPlugin = "simple"

// plugins are the effect modules ofxhost can load, by short name.
var plugins = map[string]ofx.Module{
	"simple": simple.Module,
}

func pluginNames() []string {
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func lookupPlugin(name string) (ofx.Module, error) {
	m, ok := plugins[name]
	if !ok {
		return ofx.Module{}, oops.With("plugin", name).
			Errorf("unknown plugin %q (available: %s)", name, strings.Join(pluginNames(), ", "))
	}
	return m, nil
}

// NewPluginsCmd creates the plugins subcommand.
func NewPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the plugins ofxhost can load",
		Long:  `List the built-in plugins with their identifiers and versions.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tIDENTIFIER\tVERSION\tAPI")
			for _, name := range pluginNames() {
				m := plugins[name]
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", name, m.ID, m.Version, m.APIVersion)
			}
			return w.Flush()
		},
	}
}
