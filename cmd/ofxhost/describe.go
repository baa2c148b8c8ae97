// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// PluginDescription is what a plugin declares about itself in Describe
// and DescribeInContext.
type PluginDescription struct {
	Name       string               `json:"name"`
	ID         string               `json:"id"`
	Version    string               `json:"version"`
	APIVersion int                  `json:"api_version"`
	Label      string               `json:"label,omitempty"`
	Grouping   string               `json:"grouping,omitempty"`
	Depths     []string             `json:"pixel_depths,omitempty"`
	Contexts   []ContextDescription `json:"contexts"`
}

// ContextDescription lists the clips and parameters of one context.
type ContextDescription struct {
	Context string             `json:"context"`
	Clips   []string           `json:"clips"`
	Params  []ParamDescription `json:"params"`
}

// ParamDescription is one declared parameter.
type ParamDescription struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default,omitempty"`
	Enabled bool   `json:"enabled"`
}

// describeConfig holds configuration for the describe command.
type describeConfig struct {
	plugin string
}

// NewDescribeCmd creates the describe subcommand.
func NewDescribeCmd() *cobra.Command {
	cfg := &describeConfig{}

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show what a plugin declares to the host",
		Long: `Load a plugin into a simulated host, run Describe and DescribeInContext
for every context it supports, and print its clips and parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			module, err := lookupPlugin(cfg.plugin)
			if err != nil {
				return err
			}
			opts := hostsim.DefaultOptions()
			opts.APIVersion = conf.Host.APIVersion
			opts.SupportsMultipleClipDepths = conf.Host.SupportsMultipleClipDepths

			desc, err := describePlugin(cmd.Context(), cfg.plugin, module, opts, ofx.WithLogger(logger))
			if err != nil {
				return err
			}
			if conf.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(desc)
			}
			return desc.writeText(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cfg.plugin, "plugin", "p", defaultPlugin, "plugin to describe")

	return cmd
}

// describePlugin runs the describe actions of module in a fresh host.
func describePlugin(ctx context.Context, name string, module ofx.Module, opts hostsim.Options, dopts ...ofx.DispatcherOption) (*PluginDescription, error) {
	driver, err := hostsim.NewDriver(hostsim.New(opts), module.New(), dopts...)
	if err != nil {
		return nil, err
	}
	host := driver.Host()

	if r := driver.Load(ctx); r.Err != nil {
		return nil, oops.Wrapf(r.Err, "load failed")
	}
	if r := driver.Describe(ctx); r.Err != nil {
		return nil, oops.Wrapf(r.Err, "describe failed")
	}
	props, err := host.EffectPropertySet(driver.Descriptor())
	if err != nil {
		return nil, err
	}
	snap, err := host.Snapshot(props)
	if err != nil {
		return nil, err
	}

	desc := &PluginDescription{
		Name:       name,
		ID:         module.ID,
		Version:    module.Version.String(),
		APIVersion: module.APIVersion,
	}
	desc.Label, _ = snap[ofx.PropLabel].(string)
	desc.Grouping, _ = snap[ofx.ImageEffectPluginPropGrouping].(string)
	for _, tag := range stringList(snap[ofx.ImageEffectPropSupportedPixelDepths]) {
		if d, err := ofx.ParseBitDepth(tag); err == nil {
			desc.Depths = append(desc.Depths, strings.ToLower(d.String()))
		}
	}

	for _, tag := range stringList(snap[ofx.ImageEffectPropSupportedContexts]) {
		c, err := ofx.ParseImageEffectContext(tag)
		if err != nil {
			return nil, oops.With("context", tag).Wrapf(err, "plugin declares an unknown context")
		}
		if r := driver.DescribeInContext(ctx, c); r.Err != nil {
			return nil, oops.With("context", c.String()).Wrapf(r.Err, "describe in context failed")
		}
		handle, _ := driver.ContextDescriptor(c)
		def, err := host.Definition(handle)
		if err != nil {
			return nil, err
		}
		cd := ContextDescription{Context: strings.ToLower(c.String()), Clips: def.Clips}
		for _, p := range def.Params {
			cd.Params = append(cd.Params, ParamDescription{
				Name:    p.Name,
				Type:    strings.ToLower(p.Kind.String()),
				Default: p.Value,
				Enabled: p.Enabled,
			})
		}
		desc.Contexts = append(desc.Contexts, cd)
	}

	if r := driver.Unload(ctx); r.Err != nil {
		return nil, oops.Wrapf(r.Err, "unload failed")
	}
	return desc, nil
}

// stringList reads a string property that may hold one value or several.
func stringList(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func (d *PluginDescription) writeText(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s %s (API %d)\n", d.ID, d.Version, d.APIVersion)
	if d.Label != "" {
		fmt.Fprintf(w, "  label:\t%s\n", d.Label)
	}
	if d.Grouping != "" {
		fmt.Fprintf(w, "  grouping:\t%s\n", d.Grouping)
	}
	if len(d.Depths) > 0 {
		fmt.Fprintf(w, "  depths:\t%s\n", strings.Join(d.Depths, ", "))
	}
	for _, c := range d.Contexts {
		fmt.Fprintf(w, "\ncontext %s\n", c.Context)
		fmt.Fprintf(w, "  clips:\t%s\n", strings.Join(c.Clips, ", "))
		if len(c.Params) == 0 {
			continue
		}
		fmt.Fprintln(w, "  PARAM\tTYPE\tDEFAULT\tENABLED")
		for _, p := range c.Params {
			def := "-"
			if p.Default != nil {
				def = fmt.Sprint(p.Default)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%t\n", p.Name, p.Type, def, p.Enabled)
		}
	}
	return w.Flush()
}
