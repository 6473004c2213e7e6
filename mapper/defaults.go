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
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault/variant"
)

// defaultHTTP defines the library's built-in HTTP mappings for the declared
// variants. Logic errors that describe bad input map to 4xx; logic errors
// in the program itself and runtime errors map to 5xx unless a narrower
// status fits. Variants missing here inherit from their parent.
var defaultHTTP = map[variant.Variant]int{
	// Logic family.
	variant.LogicError:      http.StatusInternalServerError, // Contract broken inside the program.
	variant.BadFunctionCall: http.StatusNotImplemented,      // Callback is undefined; bad_method_call inherits.
	variant.DomainError:     http.StatusUnprocessableEntity, // Well-formed value outside its domain.
	variant.InvalidArgument: http.StatusBadRequest,          // Argument of the wrong type or shape.
	variant.LengthError:     http.StatusBadRequest,          // Invalid length.
	variant.OutOfRange:      http.StatusBadRequest,          // Index detectably out of range.

	// Runtime family.
	variant.RuntimeError: http.StatusInternalServerError, // Generic runtime failure; range_error and unexpected_value inherit.
	variant.OutOfBounds:  http.StatusNotFound,            // Key or index not present at runtime.
	variant.Overflow:     http.StatusTooManyRequests,     // Container is full; the client should back off.
	variant.Underflow:    http.StatusConflict,            // Operation on an empty container.
}

// defaultGRPC defines the library's built-in gRPC mappings for the declared
// variants, aligned with the canonical gRPC status codes.
var defaultGRPC = map[variant.Variant]codes.Code{
	// Logic family.
	variant.LogicError:      codes.Internal,
	variant.BadFunctionCall: codes.Unimplemented,
	variant.DomainError:     codes.InvalidArgument,
	variant.InvalidArgument: codes.InvalidArgument,
	variant.LengthError:     codes.InvalidArgument,
	variant.OutOfRange:      codes.OutOfRange,

	// Runtime family.
	variant.RuntimeError: codes.Internal,
	variant.OutOfBounds:  codes.NotFound,
	variant.Overflow:     codes.ResourceExhausted,
	variant.Underflow:    codes.FailedPrecondition,
}
