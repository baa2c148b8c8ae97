// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 OFXGo Contributors

package session

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/ofxgo/ofxgo/internal/hostsim"
	"github.com/ofxgo/ofxgo/pkg/ofx"
)

// Report is the outcome of a Run.
type Report struct {
	Session string        `json:"session,omitempty"`
	Plugin  string        `json:"plugin"`
	Passed  bool          `json:"passed"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Steps   []StepResult  `json:"steps"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index      int            `json:"index"`
	Action     string         `json:"action"`
	Instance   string         `json:"instance,omitempty"`
	Status     string         `json:"status"`
	Code       string         `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Out        map[string]any `json:"out,omitempty"`
	Passed     bool           `json:"passed"`
	Mismatches []string       `json:"mismatches,omitempty"`
}

// Failed returns the steps that did not pass.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if !s.Passed {
			out = append(out, s)
		}
	}
	return out
}

func newStepResult(i int, step Step, reply hostsim.Reply, hostErr error) StepResult {
	res := StepResult{
		Index:    i,
		Action:   step.Action,
		Instance: step.Instance,
		Status:   reply.Status.String(),
		Out:      reply.Out,
	}
	err := reply.Err
	if hostErr != nil {
		// The plugin never saw the step.
		res.Status = ofx.StatFailed.String()
		err = hostErr
	}
	if err != nil {
		res.Error = err.Error()
		res.Code = ofx.ErrorCode(err)
	}
	res.Mismatches = step.Expect.check(res)
	res.Passed = len(res.Mismatches) == 0
	return res
}

// check compares a result with the expectation. A nil expectation only
// rejects failures.
func (e *Expect) check(res StepResult) []string {
	if e == nil {
		if res.Status == ofx.StatFailed.String() {
			return []string{fmt.Sprintf("unexpected failure: %s", res.Error)}
		}
		return nil
	}

	var out []string
	if e.Status != "" && e.Status != res.Status {
		out = append(out, fmt.Sprintf("status: want %s, got %s", e.Status, res.Status))
	}
	if e.Status == "" && res.Status == ofx.StatFailed.String() {
		out = append(out, fmt.Sprintf("unexpected failure: %s", res.Error))
	}
	if e.Code != "" && e.Code != res.Code {
		out = append(out, fmt.Sprintf("code: want %s, got %q", e.Code, res.Code))
	}

	keys := make([]string, 0, len(e.Out))
	for k := range e.Out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		got, ok := res.Out[k]
		if !ok {
			out = append(out, fmt.Sprintf("out %s: missing", k))
			continue
		}
		if !reflect.DeepEqual(normalize(e.Out[k]), normalize(got)) {
			out = append(out, fmt.Sprintf("out %s: want %v, got %v", k, e.Out[k], got))
		}
	}
	return out
}

// normalize maps numbers to float64 and slices to []any so YAML values
// compare with decoded property values.
func normalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		if len(out) == 1 {
			return out[0]
		}
		return out
	case []float64:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return normalize(out)
	case []int:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return normalize(out)
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return normalize(out)
	default:
		return v
	}
}

// WriteText writes the report as one line per step.
func (r *Report) WriteText(w io.Writer) error {
	name := r.Session
	if name == "" {
		name = "session"
	}
	verdict := "PASS"
	if !r.Passed {
		verdict = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s %s (%s, %d steps, %s)\n", verdict, name, r.Plugin, len(r.Steps), r.Elapsed.Round(time.Microsecond)); err != nil {
		return err
	}
	for _, s := range r.Steps {
		mark := "ok  "
		if !s.Passed {
			mark = "FAIL"
		}
		line := fmt.Sprintf("%s %3d %-24s %-10s %s", mark, s.Index, s.Action, s.Instance, s.Status)
		if len(s.Out) > 0 {
			line += " " + formatOut(s.Out)
		}
		if s.Error != "" {
			line += " error=" + s.Error
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
		for _, m := range s.Mismatches {
			if _, err := fmt.Fprintf(w, "         %s\n", m); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func formatOut(out map[string]any) string {
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, out[k]))
	}
	return strings.Join(parts, " ")
}
