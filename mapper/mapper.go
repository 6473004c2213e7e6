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

package mapper

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault/apis"
	"dirpx.dev/dfault/internal/segmenttrie"
	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

// ErrEmptyPrefix is returned by New for a prefix rule without segments.
var ErrEmptyPrefix = errors.New("mapper: empty prefix")

// Resolution sources reported by Explain.
const (
	sourceOverride = "override"
	sourcePrefix   = "prefix"
	sourceDefault  = "default"
	sourceFallback = "fallback"
)

var defaultMapper = sync.OnceValue(func() apis.Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
})

// Default returns a shared Mapper holding only the library defaults.
func Default() apis.Mapper { return defaultMapper() }

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with library defaults (HTTP & gRPC).
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Validate variants and override names; normalize prefixes.
//  4. Build per-variant segment tries supporting longest-prefix-match with
//     '*' as a single-segment wildcard.
//  5. Freeze everything into fresh allocations.
//
// Errors indicate unknown variants, malformed fault names or invalid
// prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	h, err := compile("HTTP", b.http)
	if err != nil {
		return nil, err
	}
	g, err := compile("gRPC", b.grpc)
	if err != nil {
		return nil, err
	}
	return &mapper{http: h, grpc: g}, nil
}

// table is the frozen form of rules for one transport.
type table[T any] struct {
	defaults  map[variant.Variant]T
	overrides map[name.Name]T
	tries     map[variant.Variant]*segmenttrie.Trie[T]
	fallback  T
}

// compile validates r and freezes it into a table.
func compile[T any](transport string, r rules[T]) (table[T], error) {
	t := table[T]{
		defaults:  make(map[variant.Variant]T, len(r.defaults)),
		overrides: make(map[name.Name]T, len(r.overrides)),
		tries:     make(map[variant.Variant]*segmenttrie.Trie[T], len(r.prefixes)),
		fallback:  r.fallback,
	}
	for v, val := range r.defaults {
		if !variant.Known(v) {
			return t, fmt.Errorf("mapper: %s default for variant %q: %w", transport, v, variant.ErrVariantUnknown)
		}
		t.defaults[v] = val
	}
	for raw, val := range r.overrides {
		n, err := name.Parse(raw)
		if err != nil {
			return t, fmt.Errorf("mapper: %s override for fault %q: %w", transport, raw, err)
		}
		t.overrides[n] = val
	}
	for v, prs := range r.prefixes {
		if !variant.Known(v) {
			return t, fmt.Errorf("mapper: %s prefix for variant %q: %w", transport, v, variant.ErrVariantUnknown)
		}
		if len(prs) == 0 {
			continue
		}
		trie := segmenttrie.New[T]()
		for _, pr := range prs {
			p := name.Normalize(pr.prefix)
			if p == "" {
				return t, fmt.Errorf("mapper: %s prefix %q for variant %q: %w", transport, pr.prefix, v, ErrEmptyPrefix)
			}
			if err := trie.Insert(p, pr.val); err != nil {
				return t, fmt.Errorf("mapper: %s prefix %q for variant %q: %w", transport, pr.prefix, v, err)
			}
		}
		t.tries[v] = trie
	}
	return t, nil
}

// resolution records how a status was chosen.
type resolution[T any] struct {
	val     T
	source  string
	variant variant.Variant
	pattern string
}

// resolve walks the tiers: override, prefix rules of v and its ancestors,
// defaults of v and its ancestors, fallback.
func (t table[T]) resolve(v variant.Variant, n name.Name) resolution[T] {
	if val, ok := t.overrides[n]; ok {
		return resolution[T]{val: val, source: sourceOverride}
	}
	if n != name.Empty {
		for cur := v; cur != variant.Empty; cur = cur.Parent() {
			if trie := t.tries[cur]; trie != nil {
				if val, ok, pat := trie.MatchWithPattern(string(n)); ok {
					return resolution[T]{val: val, source: sourcePrefix, variant: cur, pattern: pat}
				}
			}
		}
	}
	for cur := v; cur != variant.Empty; cur = cur.Parent() {
		if val, ok := t.defaults[cur]; ok {
			return resolution[T]{val: val, source: sourceDefault, variant: cur}
		}
	}
	return resolution[T]{val: t.fallback, source: sourceFallback}
}

// mapper is the immutable apis.Mapper implementation. Lookups are
// O(depth) and safe for concurrent use once constructed.
type mapper struct {
	http table[int]
	grpc table[codes.Code]
}

// HTTPStatus resolves an HTTP status for the given variant and fault name.
func (m *mapper) HTTPStatus(v variant.Variant, n name.Name) int {
	return m.http.resolve(v, n).val
}

// GRPCStatus resolves a gRPC status for the given variant and fault name.
func (m *mapper) GRPCStatus(v variant.Variant, n name.Name) codes.Code {
	return m.grpc.resolve(v, n).val
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(v variant.Variant, n name.Name) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(v, n),
		GRPC: m.GRPCStatus(v, n),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular (variant, name) pair.
//
// Example output:
//
//	variant="range_error" fault="app.StoreFault.Timeout"
//	http: source=prefix variant="runtime_error" pattern="app.StoreFault" -> 503
//	grpc: source=default variant="runtime_error" -> INTERNAL(13)
//
// source is one of override, prefix, default or fallback; variant names
// the variant the rule was registered under.
func (m *mapper) Explain(v variant.Variant, n name.Name) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "variant=%q fault=%q\n", v, n)
	h := m.http.resolve(v, n)
	_, _ = fmt.Fprintf(&b, "http: %s-> %d\n", describe(h), h.val)
	g := m.grpc.resolve(v, n)
	_, _ = fmt.Fprintf(&b, "grpc: %s-> %s(%d)", describe(g), strings.ToUpper(g.val.String()), int(g.val))
	return b.String()
}

func describe[T any](r resolution[T]) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "source=%s ", r.source)
	if r.variant != variant.Empty {
		_, _ = fmt.Fprintf(&b, "variant=%q ", r.variant)
	}
	if r.pattern != "" {
		_, _ = fmt.Fprintf(&b, "pattern=%q ", r.pattern)
	}
	return b.String()
}
