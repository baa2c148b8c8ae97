// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

//go:build integration

package session_test

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/internal/session"
	"github.com/ofxgo/ofxgo/pkg/ofx"
	"github.com/ofxgo/ofxgo/plugins/simple"
)

var _ = Describe("Scale plugin sessions", func() {
	var ctx context.Context
	var runner *session.Runner

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		runner, err = session.NewRunner(simple.Module,
			session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		Expect(err).NotTo(HaveOccurred())
	})

	play := func(yaml string) *session.Report {
		s, err := session.Parse([]byte(yaml))
		Expect(err).NotTo(HaveOccurred())
		report, err := runner.Run(ctx, s)
		Expect(err).NotTo(HaveOccurred())
		return report
	}

	Describe("Instances in different contexts", func() {
		It("runs both lifecycles side by side", func() {
			report := play(`
instances:
  - name: f
    context: filter
    clips:
      Source: {components: rgba, rod: [0, 0, 100, 50]}
  - name: g
    context: general
    clips:
      Source: {components: alpha, rod: [0, 0, 30, 30]}
steps:
  - action: load
  - action: describe
  - action: describe_in_context
    context: filter
  - action: describe_in_context
    context: general
  - action: create_instance
    instance: f
  - action: create_instance
    instance: g
  - action: get_region_of_definition
    instance: g
    expect:
      out: {OfxImageEffectPropRegionOfDefinition: [0, 0, 30, 30]}
  - action: get_region_of_definition
    instance: f
    expect:
      out: {OfxImageEffectPropRegionOfDefinition: [0, 0, 100, 50]}
  - action: get_clip_preferences
    instance: g
    expect:
      out: {OfxImageClipPropComponents_Output: OfxImageComponentAlpha}
  - action: render
    instance: f
    time: 3
  - action: destroy_instance
    instance: f
  - action: render
    instance: g
  - action: destroy_instance
    instance: g
  - action: unload
`)
			Expect(report.Failed()).To(BeEmpty())
			Expect(report.Passed).To(BeTrue())
		})
	})

	Describe("Lifecycle ordering", func() {
		It("refuses to unload while an instance is live", func() {
			report := play(`
instances:
  - name: a
    context: filter
steps:
  - action: describe
  - action: describe_in_context
    context: filter
  - action: create_instance
    instance: a
  - action: unload
    expect: {status: failed, code: SEQUENCE_ERROR}
  - action: destroy_instance
    instance: a
  - action: unload
`)
			Expect(report.Failed()).To(BeEmpty())
		})

		It("rejects actions on a destroyed instance", func() {
			report := play(`
instances:
  - name: a
    context: filter
steps:
  - action: describe
  - action: describe_in_context
    context: filter
  - action: create_instance
    instance: a
  - action: destroy_instance
    instance: a
  - action: render
    instance: a
    expect: {status: failed, code: SEQUENCE_ERROR}
`)
			Expect(report.Failed()).To(BeEmpty())
		})

		It("creates a fresh instance after destroy", func() {
			report := play(`
instances:
  - name: a
    context: filter
steps:
  - action: describe
  - action: describe_in_context
    context: filter
  - action: create_instance
    instance: a
  - action: destroy_instance
    instance: a
  - action: create_instance
    instance: a
  - action: is_identity
    instance: a
    expect: {status: ok}
`)
			Expect(report.Failed()).To(BeEmpty())
		})

		It("needs the context described before creating", func() {
			report := play(`
instances:
  - name: a
    context: general
steps:
  - action: describe
  - action: describe_in_context
    context: filter
  - action: create_instance
    instance: a
    expect: {status: failed, code: HOSTSIM_CONTEXT_NOT_DESCRIBED}
`)
			Expect(report.Failed()).To(BeEmpty())
		})
	})

	Describe("Component scale coupling", func() {
		var driver *hostsim.Driver
		var instance ofx.Handle

		enabled := func(name string) bool {
			st, err := driver.Host().Param(instance, name, 0)
			Expect(err).NotTo(HaveOccurred())
			return st.Enabled
		}

		BeforeEach(func() {
			var err error
			driver, err = hostsim.NewDriver(hostsim.New(hostsim.DefaultOptions()), simple.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.Describe(ctx).Err).NotTo(HaveOccurred())
			Expect(driver.DescribeInContext(ctx, ofx.ContextFilter).Err).NotTo(HaveOccurred())

			instance, err = driver.NewInstance(ofx.ContextFilter)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.Host().SetClip(instance, ofx.ClipSource, hostsim.ClipState{
				Connected:  true,
				Components: ofx.ComponentRGB,
				Depth:      ofx.DepthFloat,
			})).To(Succeed())
			Expect(driver.CreateInstance(ctx, instance).Err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(driver.DestroyInstance(ctx, instance).Err).NotTo(HaveOccurred())
		})

		It("starts with the combined scale enabled", func() {
			Expect(enabled(simple.ParamScale)).To(BeTrue())
			Expect(enabled(simple.ParamScaleComponents)).To(BeTrue())
			Expect(enabled(simple.ParamScaleR)).To(BeFalse())
		})

		Context("when the user turns on per-component scaling", func() {
			BeforeEach(func() {
				r, err := driver.SetParam(ctx, instance, simple.ParamScaleComponents, hostsim.Constant{Value: true})
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Status).To(Equal(ofx.StatOK))
			})

			It("enables the component scales and disables the combined one", func() {
				Expect(enabled(simple.ParamScale)).To(BeFalse())
				for _, name := range []string{simple.ParamScaleR, simple.ParamScaleG, simple.ParamScaleB, simple.ParamScaleA} {
					Expect(enabled(name)).To(BeTrue(), name)
				}
			})

			It("falls back to the combined scale when the source goes alpha", func() {
				r, err := driver.SetClip(ctx, instance, ofx.ClipSource, hostsim.ClipState{
					Connected:  true,
					Components: ofx.ComponentAlpha,
					Depth:      ofx.DepthFloat,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Status).To(Equal(ofx.StatOK))

				Expect(enabled(simple.ParamScale)).To(BeTrue())
				Expect(enabled(simple.ParamScaleComponents)).To(BeFalse())
				Expect(enabled(simple.ParamScaleR)).To(BeFalse())
			})
		})
	})
})
