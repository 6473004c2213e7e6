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

package name

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Name is the canonical, validated representation of a qualified fault name
// or message key.
//
// Names are dot-separated sequences of identifier segments. The first
// segments name the declaring taxonomy; the last segment names the case.
type Name string

// MinLength and MaxLength define the allowed length range for a name.
const (
	// MinLength is the minimum length for a name. A single-letter name carries
	// no useful identity.
	MinLength = 2

	// MaxLength is the maximum length for a name. 256 characters leave room
	// for deeply qualified taxonomy paths.
	MaxLength = 256
)

const (
	// nameFmt is the canonical regular expression used to validate names.
	//
	// Each segment:
	//
	//   - starts with an ASCII letter or underscore [A-Za-z_]
	//   - continues with letters, digits or underscore [A-Za-z0-9_]*
	//
	// Examples that match:
	//
	//	"dfault.ExceptableFault.UnknownFault"
	//	"ParseFault.Syntax"
	//	"_internal.x"
	//
	// Examples that DO NOT match:
	//
	//	"app..Fault"   (empty segment)
	//	"app.Fault."   (trailing dot)
	//	"9app.Fault"   (digit first)
	//	"app.Fault-X"  (dash)
	nameFmt = `^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`
)

var (
	// nameRe is the compiled regexp for the above pattern.
	nameRe = regexp.MustCompile(nameFmt)
)

var (
	// ErrNameInvalidFormat is returned when a name does not conform to the
	// expected format.
	ErrNameInvalidFormat = errors.New("dfault: invalid name format")
	// ErrNameInvalidLength is returned when a name is too short or too long.
	ErrNameInvalidLength = errors.New("dfault: invalid name length")
)

// Ensure Name implements encoding.TextMarshaler / encoding.TextUnmarshaler.
var (
	_ encoding.TextMarshaler   = (*Name)(nil)
	_ encoding.TextUnmarshaler = (*Name)(nil)
)

// Empty is the zero-value name. It never identifies a fault.
var Empty Name = ""

// Normalize takes an arbitrary string and tries to bring it closer to the
// canonical name form.
//
// Transformations are conservative:
//
//   - trim spaces
//   - convert "/", "\" and "::" separators to "." (so type paths and
//     filesystem-like keys can be used directly)
//
// Case is preserved. The result is not guaranteed to be valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "::", ".")
	s = strings.ReplaceAll(s, "/", ".")
	s = strings.ReplaceAll(s, `\`, ".")
	return s
}

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Name value.
func Parse(s string) (Name, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return Name(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// package-level declarations.
func MustParse(s string) Name {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Qualify joins a taxonomy qualifier and a case name into a fully qualified
// name and validates the result.
func Qualify(qualifier, caseName string) (Name, error) {
	q := Normalize(qualifier)
	c := strings.TrimSpace(caseName)
	if strings.Contains(c, ".") {
		return Empty, ErrNameInvalidFormat
	}
	if q == "" {
		return Parse(c)
	}
	return Parse(q + "." + c)
}

// Validate checks whether the provided Name is in canonical form.
// The empty name is invalid.
func Validate(n Name) error {
	return validate(string(n))
}

// String returns the canonical string representation of the name.
func (n Name) String() string {
	return string(n)
}

// Segments splits the name into its dot-separated segments.
// The empty name has no segments.
func (n Name) Segments() []string {
	if n == Empty {
		return nil
	}
	return strings.Split(string(n), ".")
}

// Base returns the last segment of the name (the case name).
func (n Name) Base() string {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Qualifier returns everything before the last segment (the taxonomy), or
// Empty for a single-segment name.
func (n Name) Qualifier() Name {
	s := string(n)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return Name(s[:i])
	}
	return Empty
}

// HasPrefix reports whether prefix names n itself or one of its ancestors.
// Matching respects segment boundaries: "app.Parse" is not a prefix of
// "app.ParseFault.Syntax".
func (n Name) HasPrefix(prefix Name) bool {
	if prefix == Empty {
		return true
	}
	if !strings.HasPrefix(string(n), string(prefix)) {
		return false
	}
	rest := string(n)[len(prefix):]
	return rest == "" || rest[0] == '.'
}

// MarshalText implements encoding.TextMarshaler.
func (n Name) MarshalText() ([]byte, error) {
	if err := Validate(n); err != nil {
		return nil, err
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (n *Name) UnmarshalText(text []byte) error {
	s := string(bytes.TrimSpace(text))
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// validate is the internal helper that checks length and format.
func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrNameInvalidLength
	}
	if !nameRe.MatchString(s) {
		return ErrNameInvalidFormat
	}
	return nil
}
