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

// Package dfault declares closed taxonomies of named faults and turns them
// into chained errors that carry their causal history.
//
// A Fault is an enumerable identifier for an expected failure. Faults are
// declared once, at package initialization, as cases of a Taxonomy:
//
//	var ParseFault = dfault.NewTaxonomy("app.ParseFault")
//
//	var (
//	    Syntax = ParseFault.Case("Syntax", variant.InvalidArgument, "syntax error at line {line}")
//	    Eof    = ParseFault.Case("Eof", variant.UnexpectedValue, "unexpected end of input")
//	)
//
// Faults are compared by identity. A Fault is itself an error, so it can be
// returned directly; when more detail is needed it is materialized into an
// *Exceptable:
//
//	return Syntax.ToExceptable(dfault.Context{"line": 12}, err)
//
// An Exceptable records its fault, a context map, its predecessor and the
// root of the causal chain, plus the file and line that raised it. Its
// message is resolved through the taxonomy's message formatter, with the
// case template as fallback and the bare fault name as last resort.
//
// Failures of the framework itself are reported through the reserved
// ExceptableFault taxonomy, never through panics.
package dfault

import (
	"reflect"

	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

// Context is the key/value payload attached to an Exceptable and used to fill
// message templates.
//
// Context values are treated as immutable: With and Merge always copy.
type Context map[string]any

// Fault is an enumerable, named identifier for a class of expected failure.
//
// The package's *Case implements Fault. Extension taxonomies may provide
// their own implementation; ToExceptable should then delegate to
// NewExceptable.
type Fault interface {
	// Error returns Name, so a bare Fault may be returned as an error.
	error

	// Name returns the qualified, globally unique name of the case,
	// e.g. "app.ParseFault.Syntax".
	Name() string

	// Message resolves a human-readable message: "<name>: <text>", or just
	// "<name>" when no text can be produced for ctx. It never fails.
	Message(ctx Context) string

	// Variant classifies the Exceptable this fault materializes as.
	Variant() variant.Variant

	// ToExceptable builds a new Exceptable for this fault.
	ToExceptable(ctx Context, previous error) *Exceptable
}

// New is call-style sugar for f.ToExceptable(ctx, previous).
//
// A nil or malformed f (no valid name, unknown variant) does not panic:
// the result is an UnacceptableFault Exceptable whose context names the
// offending Go type.
func New(f Fault, ctx Context, previous error) *Exceptable {
	if !Acceptable(f) {
		return unacceptable(f, previous)
	}
	if x := f.ToExceptable(ctx, previous); x != nil {
		return x
	}
	return newExceptable(f, ctx, previous)
}

// Acceptable reports whether f is a usable Fault: non-nil, with a valid
// qualified name and a known variant.
func Acceptable(f Fault) bool {
	if f == nil {
		return false
	}
	if rv := reflect.ValueOf(f); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	if name.Validate(name.Name(f.Name())) != nil {
		return false
	}
	return variant.Validate(f.Variant()) == nil
}

// Equal reports whether a and b are the same fault case.
// Faults whose dynamic type is not comparable are never equal.
func Equal(a, b Fault) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// With returns a copy of c with one extra key/value.
//
// The method always copies the map to preserve immutability. This prevents
// surprising modifications across goroutines or shared contexts.
func (c Context) With(k string, v any) Context {
	m := make(Context, len(c)+1)
	for k0, v0 := range c {
		m[k0] = v0
	}
	m[k] = v
	return m
}

// Merge returns a copy of c with all entries of kv merged in, kv taking
// precedence on key conflicts. If kv is empty, c is returned unchanged.
func (c Context) Merge(kv Context) Context {
	if len(kv) == 0 {
		return c
	}
	m := make(Context, len(c)+len(kv))
	for k0, v0 := range c {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	return m
}

// Clone returns a shallow copy of c. A nil context clones to an empty one.
func (c Context) Clone() Context {
	m := make(Context, len(c))
	for k, v := range c {
		m[k] = v
	}
	return m
}
