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
	"fmt"
	"time"

	"dirpx.dev/dfault/variant"
)

// Exceptable is an error built from exactly one Fault, a context and an
// optional predecessor.
//
// Everything is computed once at construction: the root of the causal
// chain, the context augmented with provenance keys (see KeyPrevious and
// friends), the message, and the file/line of the code that raised it.
// An Exceptable is never mutated afterwards and is safe to share.
type Exceptable struct {
	fault    Fault
	ctx      Context
	previous error
	root     error
	msg      string
	created  time.Time
	file     string
	line     int
}

// NewExceptable builds an Exceptable for f. It is the building block for
// Fault implementations: ToExceptable should delegate here.
//
// A nil or malformed f produces an UnacceptableFault Exceptable instead.
func NewExceptable(f Fault, ctx Context, previous error) *Exceptable {
	if !Acceptable(f) {
		return unacceptable(f, previous)
	}
	return newExceptable(f, ctx, previous)
}

func unacceptable(f Fault, previous error) *Exceptable {
	return newExceptable(UnacceptableFault, Context{"type": fmt.Sprintf("%T", f)}, previous)
}

func newExceptable(f Fault, ctx Context, previous error) *Exceptable {
	x := &Exceptable{fault: f, previous: previous, created: time.Now()}
	var root error
	if previous != nil {
		root = findRoot(previous)
		x.root = root
	} else {
		x.root = x
	}
	x.ctx = provenance(ctx, previous, root)
	x.file, x.line = callSite()
	x.msg = messageOf(f, x.ctx)
	return x
}

// messageOf asks f for its message; a panicking implementation degrades to
// the bare name.
func messageOf(f Fault, ctx Context) (s string) {
	defer func() {
		if recover() != nil {
			s = f.Name()
		}
	}()
	return f.Message(ctx)
}

// Error returns the message resolved at construction.
func (x *Exceptable) Error() string {
	if x == nil {
		return "<nil>"
	}
	return x.msg
}

// Fault returns the fault this Exceptable was built from.
func (x *Exceptable) Fault() Fault { return x.fault }

// Variant returns the variant of the fault.
func (x *Exceptable) Variant() variant.Variant { return x.fault.Variant() }

// Context returns a copy of the augmented context.
func (x *Exceptable) Context() Context { return x.ctx.Clone() }

// Get returns one context value.
func (x *Exceptable) Get(key string) (any, bool) {
	v, ok := x.ctx[key]
	return v, ok
}

// Previous returns the direct predecessor, or nil.
func (x *Exceptable) Previous() error { return x.previous }

// Root returns the deepest predecessor in the causal chain, or x itself
// when it has none. It is never nil.
func (x *Exceptable) Root() error { return x.root }

// Created returns the construction time.
func (x *Exceptable) Created() time.Time { return x.created }

// File returns the source file of the call site that raised x.
func (x *Exceptable) File() string { return x.file }

// Line returns the source line of the call site that raised x.
func (x *Exceptable) Line() int { return x.line }

// Unwrap returns the predecessor, enabling errors.Is / errors.As chains.
func (x *Exceptable) Unwrap() error { return x.previous }

// IsFault reports whether f is the own fault of x. The chain is not walked.
func (x *Exceptable) IsFault(f Fault) bool {
	return x != nil && Equal(x.fault, f)
}

// HasFault reports whether f is the fault of x or of any Exceptable in its
// predecessor chain. The walk stops at the first predecessor that is not an
// *Exceptable; use errors.Is to look through foreign wrappers as well.
func (x *Exceptable) HasFault(f Fault) bool {
	for cur, n := x, 0; cur != nil && n < maxChain; n++ {
		if Equal(cur.fault, f) {
			return true
		}
		next, ok := cur.previous.(*Exceptable)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

// Is reports whether target is a Fault equal to the own fault of x, so that
// errors.Is(err, SomeFault) finds a fault anywhere in a wrapped chain.
func (x *Exceptable) Is(target error) bool {
	f, ok := target.(Fault)
	return ok && x.IsFault(f)
}

// As sets a *Fault or **Case target to the own fault of x.
func (x *Exceptable) As(target any) bool {
	switch t := target.(type) {
	case *Fault:
		*t = x.fault
		return true
	case **Case:
		if c, ok := x.fault.(*Case); ok {
			*t = c
			return true
		}
	}
	return false
}
