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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Variant is the canonical, validated representation of an Exceptable
// classification.
//
// It is defined as a separate type (not just string) so that fault
// declarations state explicitly which classification they expect.
//
// IMPORTANT: Empty variants ("") are NOT allowed. Every fault MUST declare a
// variant.
type Variant string

// MinLength and MaxLength define the allowed length range for a variant.
const (
	// MinLength is the minimum length for a valid variant.
	MinLength = 3

	// MaxLength is the maximum length for a valid variant.
	MaxLength = 64
)

const (
	// variantFmt is the canonical regular expression used to validate
	// variants.
	//
	// Pattern breakdown:
	//
	//	^ - start of string;
	//	[a-z] - first character must be a lowercase ASCII letter;
	//	[a-z0-9_]{2,63} - the remaining characters may be lowercase letters,
	//	                  digits or underscore; total length 3..64;
	//	$ - end of string;
	//
	// IMPORTANT: the numeric range {2,63} is tied to MinLength / MaxLength.
	variantFmt = `^[a-z][a-z0-9_]{2,63}$`
)

var (
	// variantRe is the compiled regular expression used to validate variants.
	variantRe = regexp.MustCompile(variantFmt)
)

var (
	// ErrVariantInvalid is returned when a value cannot be parsed as a
	// variant.
	ErrVariantInvalid = errors.New("dfault: invalid variant")

	// ErrVariantUnknown is returned when a value is well-formed but is not
	// one of the declared variants.
	ErrVariantUnknown = errors.New("dfault: unknown variant")
)

// Ensure Variant implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into config or API structs.
var (
	_ encoding.TextMarshaler   = (*Variant)(nil)
	_ encoding.TextUnmarshaler = (*Variant)(nil)
)

// Empty is the zero-value variant. It is never valid.
var Empty Variant = ""

// Parse takes a user-provided string, normalizes it and validates it against
// the closed set of declared variants.
func Parse(s string) (Variant, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Variant(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Variant {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical variant form:
//
//   - trims surrounding spaces;
//   - lowercases the value;
//   - replaces '-' and ' ' with '_';
//
// It does NOT guarantee that the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks whether the provided Variant is well-formed and declared.
func Validate(v Variant) error {
	return validate(string(v))
}

// Known reports whether v is one of the declared variants.
func Known(v Variant) bool {
	_, ok := parents[v]
	return ok
}

// All returns every declared variant in declaration order.
func All() []Variant {
	out := make([]Variant, len(declared))
	copy(out, declared)
	return out
}

// String returns the canonical string representation of the variant.
func (v Variant) String() string {
	return string(v)
}

// Parent returns the family v belongs to. The two family roots (LogicError
// and RuntimeError) return Empty.
func (v Variant) Parent() Variant {
	return parents[v]
}

// Family returns the root of v's family: LogicError or RuntimeError.
// Undeclared variants return Empty.
func (v Variant) Family() Variant {
	if !Known(v) {
		return Empty
	}
	cur := v
	for {
		p := parents[cur]
		if p == Empty {
			return cur
		}
		cur = p
	}
}

// IsA reports whether v is ancestor or descends from it.
func (v Variant) IsA(ancestor Variant) bool {
	for cur := v; cur != Empty; cur = parents[cur] {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if err := Validate(v); err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (v *Variant) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// validate is a helper that checks format and membership.
func validate(s string) error {
	if !variantRe.MatchString(s) {
		return ErrVariantInvalid
	}
	if !Known(Variant(s)) {
		return ErrVariantUnknown
	}
	return nil
}
