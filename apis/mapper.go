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

package apis

import (
	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

// Mapper is an immutable, concurrency-safe view of status mapping rules.
// It resolves a variant and a qualified fault name into transport statuses
// for HTTP and gRPC.
type Mapper interface {
	// HTTPStatus returns the HTTP status for the given variant and fault.
	// Without a fault-specific rule the mapper falls back to the variant,
	// then to the variant's ancestors.
	HTTPStatus(v variant.Variant, n name.Name) int

	// GRPCStatus returns the gRPC status code for the given variant and
	// fault, using the same resolution as HTTPStatus.
	GRPCStatus(v variant.Variant, n name.Name) codes.Code

	// Status resolves both transports in a single call.
	Status(v variant.Variant, n name.Name) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(v variant.Variant, n name.Name) string
}

// Status is a resolved pair of transport statuses for a single error.
type Status struct {
	HTTP int        // Resolved HTTP status code (net/http compatible).
	GRPC codes.Code // Resolved gRPC status code.
}
