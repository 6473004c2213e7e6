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

// NamedError is implemented by errors that identify the fault they stand
// for, without being a dfault.Exceptable.
//
// ErrorFault returns a qualified fault name such as "app.StoreFault.Timeout".
// Adapters treat an empty or malformed name as an internal error.
type NamedError interface {
	error

	// ErrorFault returns the qualified fault name.
	ErrorFault() string
}

// ClassifiedError is implemented by errors that carry a variant, e.g.
// "invalid_argument" or "runtime_error".
//
// The variant is the primary input adapters use to pick a transport
// status. Unknown variants resolve to the global fallback.
type ClassifiedError interface {
	error

	// ErrorVariant returns the variant name.
	ErrorVariant() string
}

// DetailedError exposes zero or more structured details, typically one per
// failing field of a validation.
//
// The returned slice must not be modified by the caller. Returning nil
// means "no details".
type DetailedError interface {
	error

	// ErrorDetails returns structured details of the error. May return nil.
	ErrorDetails() []Detail
}
