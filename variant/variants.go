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

// Logic family
//
// These variants describe errors in the program itself: a caller broke a
// contract that could have been checked before running.
const (
	// LogicError is the root of the logic family. Use it when no more
	// specific logic variant applies.
	LogicError Variant = "logic_error"

	// BadFunctionCall indicates a callback referred to an undefined function
	// or was called with missing arguments.
	BadFunctionCall Variant = "bad_function_call"

	// BadMethodCall indicates a callback referred to an undefined method.
	// It refines BadFunctionCall.
	BadMethodCall Variant = "bad_method_call"

	// DomainError indicates a value does not adhere to a defined valid data
	// domain.
	DomainError Variant = "domain_error"

	// InvalidArgument indicates an argument is not of the expected type or
	// shape.
	InvalidArgument Variant = "invalid_argument"

	// LengthError indicates an invalid length.
	LengthError Variant = "length_error"

	// OutOfRange indicates an illegal index was requested. This is detectable
	// before running (compare OutOfBounds).
	OutOfRange Variant = "out_of_range"
)

// Runtime family
//
// These variants describe errors that can only be found while running.
const (
	// RuntimeError is the root of the runtime family. Use it when no more
	// specific runtime variant applies.
	RuntimeError Variant = "runtime_error"

	// OutOfBounds indicates a value is not a valid key or index at runtime.
	OutOfBounds Variant = "out_of_bounds"

	// Overflow indicates an element was added to a full container.
	Overflow Variant = "overflow"

	// RangeError indicates a range error during program execution, such as
	// an arithmetic result outside of what can be represented.
	RangeError Variant = "range_error"

	// Underflow indicates an operation on an empty container.
	Underflow Variant = "underflow"

	// UnexpectedValue indicates a value does not match one of a set of
	// expected values, typically a result returned from another function.
	UnexpectedValue Variant = "unexpected_value"
)

// declared lists every variant in declaration order.
var declared = []Variant{
	LogicError,
	BadFunctionCall,
	BadMethodCall,
	DomainError,
	InvalidArgument,
	LengthError,
	OutOfRange,
	RuntimeError,
	OutOfBounds,
	Overflow,
	RangeError,
	Underflow,
	UnexpectedValue,
}

// parents maps each declared variant to its direct parent. Membership in this
// map is what makes a variant "declared".
var parents = map[Variant]Variant{
	LogicError:      Empty,
	BadFunctionCall: LogicError,
	BadMethodCall:   BadFunctionCall,
	DomainError:     LogicError,
	InvalidArgument: LogicError,
	LengthError:     LogicError,
	OutOfRange:      LogicError,

	RuntimeError:    Empty,
	OutOfBounds:     RuntimeError,
	Overflow:        RuntimeError,
	RangeError:      RuntimeError,
	Underflow:       RuntimeError,
	UnexpectedValue: RuntimeError,
}
