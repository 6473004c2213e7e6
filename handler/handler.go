/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package handler

import (
	"fmt"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/debuglog"
)

// Operation is a fallible call routed through a Handler.
type Operation func(args ...any) (any, error)

// Step is one stage of a TryPipe chain.
type Step func(v any) (any, error)

// nilKey is the default-rule key for a nil outcome. Fault names are never
// empty, so it cannot collide.
const nilKey = ""

type collectRule struct {
	as       dfault.Fault
	matchers []Matcher
}

type retryRule struct {
	attempts int
	matchers []Matcher
}

// Handler is an immutable error-handling configuration.
//
// Builder methods return a new Handler sharing unchanged state with the
// receiver. Try and its variants never modify the Handler, so a Handler may
// be used from many goroutines; logging goes to a goroutine-safe
// debuglog.Log.
type Handler struct {
	collect   []collectRule
	defaults  map[string]any
	ignore    []Matcher
	throw     []Matcher
	retries   []retryRule
	onSuccess func(any) (any, error)
	onFailure func(dfault.Fault) (any, error)

	opts Options
	log  *debuglog.Log

	// invalid holds the Go types of unusable registration arguments.
	invalid []string
}

// New returns a Handler with no strategies. Options are merged in order.
func New(opts ...Options) *Handler {
	var o Options
	for _, n := range opts {
		o = o.merge(n)
	}
	h := &Handler{opts: o, log: o.Log}
	if h.log == nil {
		h.log = debuglog.NewLog()
	}
	return h
}

func (h *Handler) clone() *Handler {
	cp := *h
	return &cp
}

// Collect returns a Handler that converts failures matching any of
// matchables into the Fault as. Rules apply in registration order and the
// first matching rule wins.
func (h *Handler) Collect(as dfault.Fault, matchables ...any) *Handler {
	cp := h.clone()
	if !dfault.Acceptable(as) {
		cp.invalid = appendOne(h.invalid, fmt.Sprintf("%T", as))
		return cp
	}
	ms := cp.matchers(matchables)
	cp.collect = appendOne(h.collect, collectRule{as: as, matchers: ms})
	return cp
}

// Ignore returns a Handler that replaces failures matching any of
// matchables with nil.
func (h *Handler) Ignore(matchables ...any) *Handler {
	cp := h.clone()
	cp.ignore = appendAll(h.ignore, cp.matchers(matchables))
	return cp
}

// Throw returns a Handler that returns failures matching any of matchables
// as errors, unchanged. A Fault is materialized with dfault.New.
func (h *Handler) Throw(matchables ...any) *Handler {
	cp := h.clone()
	cp.throw = appendAll(h.throw, cp.matchers(matchables))
	return cp
}

// Default returns a Handler that replaces the given Fault outcomes with
// value. Without faults (or with a nil entry) value replaces a nil outcome
// left by Ignore. A later registration for the same key wins.
func (h *Handler) Default(value any, faults ...any) *Handler {
	cp := h.clone()
	cp.defaults = make(map[string]any, len(h.defaults)+len(faults)+1)
	for k, v := range h.defaults {
		cp.defaults[k] = v
	}
	if len(faults) == 0 {
		faults = []any{nil}
	}
	for _, k := range faults {
		if k == nil {
			cp.defaults[nilKey] = value
			continue
		}
		f, ok := k.(dfault.Fault)
		if !ok || !dfault.Acceptable(f) {
			cp.invalid = appendOne(cp.invalid, fmt.Sprintf("%T", k))
			continue
		}
		cp.defaults[f.Name()] = value
	}
	return cp
}

// Retry returns a Handler that re-invokes the operation up to attempts
// times while its failure matches any of matchables. The first matching
// rule applies. A rule with attempts <= 0 never retries.
func (h *Handler) Retry(attempts int, matchables ...any) *Handler {
	cp := h.clone()
	cp.retries = appendOne(h.retries, retryRule{attempts: attempts, matchers: cp.matchers(matchables)})
	return cp
}

// OnSuccess returns a Handler that passes successful values through fn.
func (h *Handler) OnSuccess(fn func(any) (any, error)) *Handler {
	cp := h.clone()
	cp.onSuccess = fn
	return cp
}

// OnFailure returns a Handler that passes Fault results through fn.
func (h *Handler) OnFailure(fn func(dfault.Fault) (any, error)) *Handler {
	cp := h.clone()
	cp.onFailure = fn
	return cp
}

// Options returns a Handler with o merged over the current options; unset
// fields inherit. Setting o.Log rebinds the debug log.
func (h *Handler) Options(o Options) *Handler {
	cp := h.clone()
	cp.opts = h.opts.merge(o)
	if o.Log != nil {
		cp.log = o.Log
	}
	return cp
}

// Log returns the debug log shared by this Handler.
func (h *Handler) Log() *debuglog.Log { return h.log }

// matchers converts registration arguments, recording unusable ones on h.
func (h *Handler) matchers(vs []any) []Matcher {
	out := make([]Matcher, 0, len(vs))
	for _, v := range vs {
		m, ok := toMatcher(v)
		if !ok {
			h.invalid = appendOne(h.invalid, fmt.Sprintf("%T", v))
			continue
		}
		out = append(out, m)
	}
	return out
}

// appendOne appends without writing into the backing array of s, which may
// be shared with other Handlers.
func appendOne[T any](s []T, v T) []T {
	return append(s[:len(s):len(s)], v)
}

func appendAll[T any](s, vs []T) []T {
	return append(s[:len(s):len(s)], vs...)
}
