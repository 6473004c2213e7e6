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

	"dirpx.dev/dfault/variant"
)

// ExceptableFault describes failures of the fault system itself.
var ExceptableFault = NewTaxonomy("dfault.ExceptableFault")

var (
	// UnknownFault reports a lookup of an undeclared fault name.
	// Context: {"name": <requested name>} when raised by From.
	UnknownFault = ExceptableFault.Case("UnknownFault", variant.LogicError,
		"requested fault is not declared")

	// UnacceptableFault reports a value used where a Fault was required.
	// Context: {"type": <Go type>}.
	UnacceptableFault = ExceptableFault.Case("UnacceptableFault", variant.LogicError,
		"invalid fault type '{type}' (expected a dfault.Fault)")

	// UncaughtException reports an error that no handler strategy dealt with.
	UncaughtException = ExceptableFault.Case("UncaughtException", variant.RuntimeError,
		"uncaught error ({__rootType__}): {__rootMessage__}")

	// UnacceptableLogMessage reports a value that cannot become a log entry.
	// Context: {"type": <Go type>}.
	UnacceptableLogMessage = ExceptableFault.Case("UnacceptableLogMessage", variant.InvalidArgument,
		"invalid log entry message: {type}")

	// UnknownError reports error information that carries no message.
	UnknownError = ExceptableFault.Case("UnknownError", variant.InvalidArgument,
		"unknown error (message is missing)")
)

// StdFault holds one generic case per variant. Its cases render the message
// of the root error, which makes them suitable for wrapping foreign errors.
var StdFault = NewTaxonomy("dfault.StdFault")

var (
	LogicError      = StdFault.Case("LogicError", variant.LogicError, stdTemplate)
	BadFunctionCall = StdFault.Case("BadFunctionCall", variant.BadFunctionCall, stdTemplate)
	BadMethodCall   = StdFault.Case("BadMethodCall", variant.BadMethodCall, stdTemplate)
	DomainError     = StdFault.Case("DomainError", variant.DomainError, stdTemplate)
	InvalidArgument = StdFault.Case("InvalidArgument", variant.InvalidArgument, stdTemplate)
	LengthError     = StdFault.Case("LengthError", variant.LengthError, stdTemplate)
	OutOfRange      = StdFault.Case("OutOfRange", variant.OutOfRange, stdTemplate)

	RuntimeError    = StdFault.Case("RuntimeError", variant.RuntimeError, stdTemplate)
	OutOfBounds     = StdFault.Case("OutOfBounds", variant.OutOfBounds, stdTemplate)
	Overflow        = StdFault.Case("Overflow", variant.Overflow, stdTemplate)
	RangeError      = StdFault.Case("RangeError", variant.RangeError, stdTemplate)
	Underflow       = StdFault.Case("Underflow", variant.Underflow, stdTemplate)
	UnexpectedValue = StdFault.Case("UnexpectedValue", variant.UnexpectedValue, stdTemplate)
)

const stdTemplate = "{" + KeyRootMessage + "}"

// Std returns the StdFault case for v, or RuntimeError when v is unknown.
func Std(v variant.Variant) *Case {
	for _, c := range StdFault.cases {
		if c.variant == v {
			return c
		}
	}
	return RuntimeError
}

// Wrap materializes err as the StdFault case of v. An error that already is
// (or wraps) an Exceptable is returned as that Exceptable, and a bare Fault
// is materialized as itself.
func Wrap(err error, v variant.Variant) *Exceptable {
	if err == nil {
		return nil
	}
	var x *Exceptable
	if errors.As(err, &x) {
		return x
	}
	if f, ok := err.(Fault); ok && Acceptable(f) {
		return New(f, nil, nil)
	}
	return newExceptable(Std(v), nil, err)
}
