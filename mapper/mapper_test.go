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
	"net/http"
	"strings"
	"sync"
	"testing"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault/apis"
	"dirpx.dev/dfault/internal/segmenttrie"
	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

func TestDefaults_HTTP_GRPC(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	tests := []struct {
		v        variant.Variant
		wantHTTP int
		wantGRPC codes.Code
	}{
		{variant.InvalidArgument, 400, codes.InvalidArgument},
		{variant.OutOfBounds, 404, codes.NotFound},
		{variant.RuntimeError, 500, codes.Internal},
		{variant.DomainError, 422, codes.InvalidArgument},
		// inherited from the parent
		{variant.BadMethodCall, 501, codes.Unimplemented},
		{variant.RangeError, 500, codes.Internal},
		{variant.UnexpectedValue, 500, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			st := m.Status(tt.v, name.Empty)
			if st.HTTP != tt.wantHTTP || st.GRPC != tt.wantGRPC {
				t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
					tt.v, st.HTTP, st.GRPC, tt.wantHTTP, tt.wantGRPC)
			}
		})
	}
}

func TestEveryVariantResolvesWithoutFallback(t *testing.T) {
	m, _ := New()
	for _, v := range variant.All() {
		if exp := m.Explain(v, name.Empty); strings.Contains(exp, "source=fallback") {
			t.Fatalf("variant %q fell back:\n%s", v, exp)
		}
	}
}

func TestPriority_OverrideOverPrefixOverDefault_HTTP(t *testing.T) {
	m, err := New(
		WithHTTPDefault(variant.RuntimeError, 503),
		WithHTTPPrefix(variant.RuntimeError, "app.StoreFault", 599),
		WithHTTPOverride("app.StoreFault.Locked", 423),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		fault name.Name
		want  int
	}{
		{"app.StoreFault.Locked", 423},
		{"app.StoreFault.Timeout", 599},
		{"app.QueueFault.Timeout", 503},
	}
	for _, tt := range tests {
		if got := m.HTTPStatus(variant.RuntimeError, tt.fault); got != tt.want {
			t.Fatalf("HTTPStatus(%q) = %d, want %d", tt.fault, got, tt.want)
		}
	}
}

func TestPriority_OverrideOverPrefixOverDefault_GRPC(t *testing.T) {
	m, err := New(
		WithGRPCDefault(variant.RuntimeError, codes.Unavailable),
		WithGRPCPrefix(variant.RuntimeError, "app.StoreFault", codes.Internal),
		WithGRPCOverride("app.StoreFault.Locked", codes.Aborted),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(variant.RuntimeError, "app.StoreFault.Locked")
	if st.GRPC != codes.Aborted {
		t.Fatalf("override must win; got %v, want %v", st.GRPC, codes.Aborted)
	}
	if got := m.GRPCStatus(variant.RuntimeError, "app.Other.Locked"); got != codes.Unavailable {
		t.Fatalf("default must apply; got %v", got)
	}
}

func TestOverride_AppliesAcrossVariants(t *testing.T) {
	m, _ := New(WithHTTPOverride(" app/StoreFault/Locked ", 423))
	for _, v := range []variant.Variant{variant.LogicError, variant.Overflow, "not_declared"} {
		if got := m.HTTPStatus(v, "app.StoreFault.Locked"); got != 423 {
			t.Fatalf("HTTPStatus(%q) = %d, want 423", v, got)
		}
	}
}

func TestPrefix_LPM_And_SegmentBoundary(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(variant.RuntimeError, "app.store", 503),
		WithHTTPPrefix(variant.RuntimeError, "app.store.pg", 599),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m.Status(variant.RuntimeError, "app.store.pg.Timeout"); st.HTTP != 599 {
		t.Fatalf("LPM failed: got %d, want 599", st.HTTP)
	}
	// "app.st" must not match "app.store"
	m2, _ := New(WithHTTPPrefix(variant.RuntimeError, "app.store", 499))
	if st := m2.Status(variant.RuntimeError, "app.st"); st.HTTP == 499 {
		t.Fatalf("unexpected match across segment boundary")
	}
}

func TestPrefix_InheritedFromAncestors(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(variant.LogicError, "app.api", 400),
		WithHTTPPrefix(variant.BadFunctionCall, "app.api.v2", 410),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		v     variant.Variant
		fault name.Name
		want  int
	}{
		{variant.BadMethodCall, "app.api.v2.Gone", 410},
		{variant.BadMethodCall, "app.api.v1.Call", 400},
		{variant.DomainError, "app.api.v2.Gone", 400},
		{variant.RuntimeError, "app.api.v2.Gone", 500},
	}
	for _, tt := range tests {
		if got := m.HTTPStatus(tt.v, tt.fault); got != tt.want {
			t.Fatalf("HTTPStatus(%q, %q) = %d, want %d", tt.v, tt.fault, got, tt.want)
		}
	}
}

func TestPrefix_NarrowVariantWinsOverAncestorDepth(t *testing.T) {
	m, _ := New(
		WithHTTPPrefix(variant.RuntimeError, "app.store.pg.conn", 502),
		WithHTTPPrefix(variant.Overflow, "app", 507),
	)
	if got := m.HTTPStatus(variant.Overflow, "app.store.pg.conn.Full"); got != 507 {
		t.Fatalf("rules of the variant itself must be consulted first; got %d", got)
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(variant.RuntimeError, "auth.*.verify", 502),
		WithHTTPPrefix(variant.RuntimeError, "auth.jwt.verify", 401), // exact should win at same depth
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a := m.Status(variant.RuntimeError, "auth.jwt.verify"); a.HTTP != 401 {
		t.Fatalf("exact must beat wildcard; got %d", a.HTTP)
	}
	if b := m.Status(variant.RuntimeError, "auth.saml.verify.Token"); b.HTTP != 502 {
		t.Fatalf("wildcard match failed; got %d, want 502", b.HTTP)
	}
	// wildcard matches exactly one segment, not zero
	if c := m.Status(variant.RuntimeError, "auth.verify"); c.HTTP == 502 {
		t.Fatalf("wildcard must not match zero segments")
	}
}

func TestNormalization_In_Options(t *testing.T) {
	m, err := New(WithHTTPPrefix(variant.RuntimeError, "  app/StoreFault::Pg  ", 599))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m.Status(variant.RuntimeError, "app.StoreFault.Pg.Timeout"); st.HTTP != 599 {
		t.Fatalf("normalized prefix should match; got %d", st.HTTP)
	}
}

func TestFallback(t *testing.T) {
	m, _ := New()
	if st := m.Status("not_declared", "app.X"); st.HTTP != http.StatusInternalServerError || st.GRPC != codes.Internal {
		t.Fatalf("unknown variant must fall back; got %+v", st)
	}
	m2, _ := New(WithFallback(http.StatusBadGateway, codes.Unknown))
	if st := m2.Status(variant.Empty, name.Empty); st.HTTP != 502 || st.GRPC != codes.Unknown {
		t.Fatalf("custom fallback not applied; got %+v", st)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"unknown default variant", WithHTTPDefault("nope_variant", 400), variant.ErrVariantUnknown},
		{"unknown prefix variant", WithGRPCPrefix("nope_variant", "app", codes.Internal), variant.ErrVariantUnknown},
		{"empty prefix", WithHTTPPrefix(variant.LogicError, "   ", 400), ErrEmptyPrefix},
		{"wildcard only", WithHTTPPrefix(variant.LogicError, "*.*", 400), segmenttrie.ErrInvalidPrefix},
		{"bad segment", WithGRPCPrefix(variant.LogicError, "app..x", codes.Internal), segmenttrie.ErrInvalidPrefix},
		{"bad override", WithHTTPOverride("9app.X", 400), name.ErrNameInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.opt)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() err = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Fatalf("New() must not return a mapper on error")
			}
		})
	}
}

func TestExplain_Sources_And_Pattern(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(variant.RuntimeError, "app.store", 503),
		WithGRPCPrefix(variant.RuntimeError, "app.store", codes.Unavailable),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	exp := m.Explain(variant.Overflow, "app.store.Full")
	for _, want := range []string{`source=prefix`, `pattern="app.store"`, `variant="runtime_error"`, "grpc:", "http:"} {
		if !strings.Contains(exp, want) {
			t.Fatalf("Explain must include %s:\n%s", want, exp)
		}
	}
}

func TestDefault_Shared(t *testing.T) {
	if Default() != Default() {
		t.Fatalf("Default must return the same mapper")
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m, err := New(
		WithHTTPPrefix(variant.RuntimeError, "app.store", 503),
		WithHTTPOverride("app.Cancel.Canceled", 408),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 2000 {
				_ = m.Status(variant.RuntimeError, "app.store.Timeout")
				_ = m.Status(variant.LogicError, "app.Cancel.Canceled")
				_ = m.Status(variant.InvalidArgument, "app.schema.gvk.Parse")
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_Default(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Status(variant.BadMethodCall, "app.schema.gvk.Parse")
	}
}

func BenchmarkMapperStatus_PrefixHit(b *testing.B) {
	m, _ := New(
		WithHTTPPrefix(variant.RuntimeError, "app.store", 503),
		WithGRPCPrefix(variant.RuntimeError, "app.store", codes.Unavailable),
	)
	b.ReportAllocs()
	for b.Loop() {
		_ = m.Status(variant.RuntimeError, "app.store.Timeout")
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
