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

package variant

import (
	"encoding"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  logic_error  ", "logic_error"},
		{"to lower", "RunTime_Error", "runtime_error"},
		{"dash to underscore", "invalid-argument", "invalid_argument"},
		{"space to underscore", "out of range", "out_of_range"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Variant
	}{
		{"simple", "logic_error", LogicError},
		{"with spaces", "  runtime_error ", RuntimeError},
		{"upper", "OVERFLOW", Overflow},
		{"dash", "bad-method-call", BadMethodCall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrVariantInvalid},
		{"too short", "ab", ErrVariantInvalid},
		{"starts with digit", "1error", ErrVariantInvalid},
		{"symbols", "!@#", ErrVariantInvalid},
		{"well-formed but undeclared", "not_found", ErrVariantUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != tt.want {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
			}
		})
	}
}

func TestAll_DeclaredAndKnown(t *testing.T) {
	all := All()
	if len(all) != len(parents) {
		t.Fatalf("All() has %d variants, parents has %d", len(all), len(parents))
	}
	for _, v := range all {
		if !Known(v) {
			t.Fatalf("declared variant %q is not Known", v)
		}
		if err := Validate(v); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", v, err)
		}
	}

	// All must return a copy.
	all[0] = "mutated"
	if All()[0] != LogicError {
		t.Fatal("All() exposed internal slice")
	}
}

func TestFamily(t *testing.T) {
	tests := []struct {
		in     Variant
		parent Variant
		family Variant
	}{
		{LogicError, Empty, LogicError},
		{BadMethodCall, BadFunctionCall, LogicError},
		{InvalidArgument, LogicError, LogicError},
		{RuntimeError, Empty, RuntimeError},
		{UnexpectedValue, RuntimeError, RuntimeError},
		{Variant("nope"), Empty, Empty},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Parent(); got != tt.parent {
				t.Fatalf("Parent() = %q, want %q", got, tt.parent)
			}
			if got := tt.in.Family(); got != tt.family {
				t.Fatalf("Family() = %q, want %q", got, tt.family)
			}
		})
	}
}

func TestIsA(t *testing.T) {
	if !BadMethodCall.IsA(BadFunctionCall) || !BadMethodCall.IsA(LogicError) {
		t.Fatal("bad_method_call must descend from bad_function_call and logic_error")
	}
	if BadMethodCall.IsA(RuntimeError) {
		t.Fatal("bad_method_call is not a runtime error")
	}
	if !Overflow.IsA(Overflow) {
		t.Fatal("a variant IsA itself")
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("INVALID VARIANT ??")
}

func TestVariant_MarshalText(t *testing.T) {
	text, err := RangeError.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	if string(text) != "range_error" {
		t.Fatalf("MarshalText() = %q, want %q", string(text), "range_error")
	}

	if _, err := Variant("Invalid-Dash").MarshalText(); err == nil {
		t.Fatalf("MarshalText() on invalid variant must return error")
	}
}

func TestVariant_UnmarshalText(t *testing.T) {
	var v Variant
	if err := v.UnmarshalText([]byte("  OUT-OF-BOUNDS  ")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if v != OutOfBounds {
		t.Fatalf("UnmarshalText() = %q, want %q", v, OutOfBounds)
	}

	var bad Variant
	if err := bad.UnmarshalText([]byte("teapot")); err == nil {
		t.Fatalf("UnmarshalText() expected error for undeclared input")
	}
}

func TestVariant_ImplementsTextInterfaces(t *testing.T) {
	var _ encoding.TextMarshaler = (*Variant)(nil)
	var _ encoding.TextUnmarshaler = (*Variant)(nil)
}
