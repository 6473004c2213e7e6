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

package dfault

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/dfault/message"
	"dirpx.dev/dfault/variant"
)

var parseFault = NewTaxonomy("dfault.test.ParseFault")

var (
	syntax = parseFault.Case("Syntax", variant.InvalidArgument, "syntax error at line {line}")
	eof    = parseFault.Case("Eof", variant.UnexpectedValue, "")
)

func TestFault_ToExceptable_Identity(t *testing.T) {
	for _, c := range append(append(parseFault.Cases(), ExceptableFault.Cases()...), StdFault.Cases()...) {
		t.Run(c.Name(), func(t *testing.T) {
			x := c.ToExceptable(nil, nil)
			if x.Fault() != Fault(c) {
				t.Fatalf("Fault() = %v, want %v", x.Fault(), c)
			}
			if !x.IsFault(c) || !x.HasFault(c) {
				t.Fatalf("IsFault/HasFault must hold for own fault")
			}
			if x.Variant() != c.Variant() {
				t.Fatalf("Variant() = %s, want %s", x.Variant(), c.Variant())
			}
			if x.Root() != error(x) {
				t.Fatalf("Root() of a chainless Exceptable must be itself")
			}
			if y := New(c, nil, nil); y.Fault() != Fault(c) {
				t.Fatalf("New must behave like ToExceptable")
			}
		})
	}
}

func TestFault_Message(t *testing.T) {
	tests := []struct {
		name string
		f    Fault
		ctx  Context
		want string
	}{
		{"template filled", syntax, Context{"line": 3}, "dfault.test.ParseFault.Syntax: syntax error at line 3"},
		{"incomplete context degrades to name", syntax, nil, "dfault.test.ParseFault.Syntax"},
		{"no template", eof, Context{"line": 3}, "dfault.test.ParseFault.Eof"},
		{"tokenless template", UnknownFault, Context{"key": "oops"}, "dfault.ExceptableFault.UnknownFault: requested fault is not declared"},
		{"unacceptable", UnacceptableFault, Context{"type": "int"}, "dfault.ExceptableFault.UnacceptableFault: invalid fault type 'int' (expected a dfault.Fault)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Message(tt.ctx); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScenario_UnknownFaultMessage(t *testing.T) {
	msg := UnknownFault.ToExceptable(Context{"key": "oops"}, nil).Error()
	for _, sub := range []string{UnknownFault.Name(), "requested fault is not declared"} {
		if !strings.Contains(msg, sub) {
			t.Fatalf("message %q missing %q", msg, sub)
		}
	}
}

func TestTaxonomy_FormatterFirst(t *testing.T) {
	var gotKey, gotLocale string
	tax := NewTaxonomy("dfault.test.Formatted",
		WithLocale("de"),
		WithFormatter(message.FormatterFunc(func(key string, ctx map[string]any, locale string) (string, error) {
			gotKey, gotLocale = key, locale
			if key == "custom.Broken" {
				return "", message.ErrNotFound
			}
			return "from formatter " + message.Format("{n}", ctx), nil
		})),
		WithMessageKeys(func(c *Case) string { return "custom." + c.CaseName() }),
	)
	ok := tax.Case("Ok", variant.RuntimeError, "from template")
	broken := tax.Case("Broken", variant.RuntimeError, "from template {n}")

	if got := ok.Message(Context{"n": 1}); got != "dfault.test.Formatted.Ok: from formatter 1" {
		t.Fatalf("Message() = %q", got)
	}
	if gotKey != "custom.Ok" || gotLocale != "de" {
		t.Fatalf("formatter called with key=%q locale=%q", gotKey, gotLocale)
	}
	if got := broken.Message(Context{"n": 2}); got != "dfault.test.Formatted.Broken: from template 2" {
		t.Fatalf("formatter failure must fall back to the template, got %q", got)
	}
}

func TestTaxonomy_FormatterNeverHalfFills(t *testing.T) {
	b, err := message.NewBundle("root", map[string]any{
		"dfault.test.Partial": map[string]any{
			"Missing":   "missing {thing}",
			"Templated": "bundle {thing}",
		},
	})
	if err != nil {
		t.Fatalf("NewBundle: %v", err)
	}
	reg := message.NewRegistry()
	if err := reg.Register("", b); err != nil {
		t.Fatalf("Register: %v", err)
	}
	tax := NewTaxonomy("dfault.test.Partial", WithFormatter(reg))
	missing := tax.Case("Missing", variant.LogicError, "")
	templated := tax.Case("Templated", variant.LogicError, "template {other}")

	tests := []struct {
		name string
		c    *Case
		ctx  Context
		want string
	}{
		{"registry template incomplete", missing, nil, "dfault.test.Partial.Missing"},
		{"registry template complete", missing, Context{"thing": "x"}, "dfault.test.Partial.Missing: missing x"},
		{"falls back to case template", templated, Context{"other": 2}, "dfault.test.Partial.Templated: template 2"},
		{"both incomplete", templated, Context{"unrelated": 1}, "dfault.test.Partial.Templated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Message(tt.ctx); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}

	leaky := NewTaxonomy("dfault.test.Leaky", WithFormatter(message.FormatterFunc(
		func(string, map[string]any, string) (string, error) { return "left {open}", nil })))
	if got := leaky.Case("L", variant.LogicError, "").Message(nil); got != "dfault.test.Leaky.L" {
		t.Fatalf("unfilled formatter text must degrade to the name, got %q", got)
	}
}

func TestTaxonomy_PanickingFormatterDegrades(t *testing.T) {
	tax := NewTaxonomy("dfault.test.Panicky", WithFormatter(message.FormatterFunc(
		func(string, map[string]any, string) (string, error) { panic("boom") })))
	c := tax.Case("P", variant.LogicError, "")
	if got := c.Message(nil); got != "dfault.test.Panicky.P" {
		t.Fatalf("Message() = %q", got)
	}
}

func TestTaxonomy_DeclarationPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"bad qualifier", func() { NewTaxonomy("bad qualifier") }},
		{"dotted case", func() { NewTaxonomy("dfault.test.A").Case("x.y", variant.LogicError, "") }},
		{"unknown variant", func() { NewTaxonomy("dfault.test.B").Case("X", variant.Variant("nope_nope"), "") }},
		{"duplicate", func() {
			tax := NewTaxonomy("dfault.test.C")
			tax.Case("X", variant.LogicError, "")
			tax.Case("X", variant.LogicError, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestTaxonomy_FromAndLookup(t *testing.T) {
	if c, err := parseFault.From("dfault.test.ParseFault.Syntax"); err != nil || c != syntax {
		t.Fatalf("From(qualified) = %v, %v", c, err)
	}
	if c, ok := parseFault.Lookup("Eof"); !ok || c != eof {
		t.Fatalf("Lookup(case name) = %v, %v", c, ok)
	}
	if c, ok := parseFault.Lookup("dfault::test::ParseFault::Eof"); !ok || c != eof {
		t.Fatalf("Lookup(normalized) = %v, %v", c, ok)
	}

	_, err := parseFault.From("dfault.test.ParseFault.Nope")
	var x *Exceptable
	if !errors.As(err, &x) || !x.IsFault(UnknownFault) {
		t.Fatalf("From(unknown) err = %v, want UnknownFault", err)
	}
	if v, _ := x.Get("name"); v != "dfault.test.ParseFault.Nope" {
		t.Fatalf("UnknownFault context name = %v", v)
	}
}

func TestFrom_SearchesGivenAndBuiltins(t *testing.T) {
	if f, err := From("dfault.test.ParseFault.Syntax", parseFault); err != nil || f != Fault(syntax) {
		t.Fatalf("From(given) = %v, %v", f, err)
	}
	if f, err := From("dfault.StdFault.Overflow"); err != nil || f != Fault(Overflow) {
		t.Fatalf("From(builtin) = %v, %v", f, err)
	}
	if _, err := From("dfault.test.ParseFault.Syntax"); !errors.Is(err, UnknownFault) {
		t.Fatalf("From without the taxonomy must fail with UnknownFault, got %v", err)
	}
}

// sliceFault is a Fault implementation with a non-comparable dynamic type.
type sliceFault []string

func (s sliceFault) Error() string            { return s.Name() }
func (s sliceFault) Name() string             { return "dfault.test.Slice." + s[0] }
func (s sliceFault) Message(Context) string   { return s.Name() }
func (s sliceFault) Variant() variant.Variant { return variant.LogicError }
func (s sliceFault) ToExceptable(ctx Context, previous error) *Exceptable {
	return NewExceptable(s, ctx, previous)
}

// badFault has a name that is not a valid qualified name.
type badFault struct{}

func (badFault) Error() string                           { return "bad" }
func (badFault) Name() string                            { return "not a name" }
func (badFault) Message(Context) string                  { return "bad" }
func (badFault) Variant() variant.Variant                { return variant.LogicError }
func (badFault) ToExceptable(Context, error) *Exceptable { return nil }

func TestNew_Unacceptable(t *testing.T) {
	var nilCase *Case
	prev := errors.New("cause")
	tests := []struct {
		name     string
		f        Fault
		wantType string
	}{
		{"nil interface", nil, "<nil>"},
		{"typed nil", nilCase, "*dfault.Case"},
		{"malformed name", badFault{}, "dfault.badFault"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := New(tt.f, Context{"k": 1}, prev)
			if !x.IsFault(UnacceptableFault) {
				t.Fatalf("fault = %v, want UnacceptableFault", x.Fault())
			}
			if got, _ := x.Get("type"); got != tt.wantType {
				t.Fatalf("type = %v, want %q", got, tt.wantType)
			}
			if x.Previous() != prev {
				t.Fatalf("previous must be kept")
			}
		})
	}
}

func TestNew_ExternalImplementation(t *testing.T) {
	s := sliceFault{"A"}
	x := New(s, nil, nil)
	if x.Fault().Name() != "dfault.test.Slice.A" {
		t.Fatalf("Fault() = %v", x.Fault())
	}
	if Equal(s, sliceFault{"A"}) {
		t.Fatalf("non-comparable faults are never Equal")
	}
	if x.IsFault(s) {
		t.Fatalf("IsFault must not panic nor match non-comparable faults")
	}
}

func TestContext_CopyOnWrite(t *testing.T) {
	c1 := Context{"k1": 1}
	c2 := c1.With("k2", 2)
	if len(c1) != 1 || len(c2) != 2 {
		t.Fatal("context size mismatch")
	}
	c3 := c2.Merge(Context{"k1": 3})
	if c2["k1"] != 1 || c3["k1"] != 3 {
		t.Fatal("merge failed or original mutated")
	}
	if got := c1.Merge(nil); fmt.Sprint(got) != fmt.Sprint(c1) {
		t.Fatal("empty merge must return the receiver")
	}
	var nilCtx Context
	if nilCtx.Clone() == nil {
		t.Fatal("Clone of nil must be non-nil")
	}
}

func TestStdAndWrap(t *testing.T) {
	if Std(variant.Overflow) != Overflow {
		t.Fatalf("Std(overflow) = %v", Std(variant.Overflow))
	}
	if Std(variant.Variant("unknown_thing")) != RuntimeError {
		t.Fatalf("Std(unknown) must fall back to RuntimeError")
	}

	base := errors.New("disk full")
	x := Wrap(fmt.Errorf("save: %w", base), variant.Overflow)
	if !x.IsFault(Overflow) {
		t.Fatalf("Wrap fault = %v", x.Fault())
	}
	if want := "dfault.StdFault.Overflow: disk full"; x.Error() != want {
		t.Fatalf("Wrap message = %q, want %q", x.Error(), want)
	}
	if Wrap(x, variant.LogicError) != x {
		t.Fatalf("Wrap of an Exceptable must return it")
	}
	if y := Wrap(syntax, variant.LogicError); !y.IsFault(syntax) {
		t.Fatalf("Wrap of a bare Fault must materialize it")
	}
	if Wrap(nil, variant.LogicError) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
	if filepath.Base(x.File()) != "dfault_test.go" {
		t.Fatalf("File() = %q, want the calling test file", x.File())
	}
}
