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

// ViewProvider is implemented by errors that render their own transport
// view. Adapters prefer it over any other conversion.
type ViewProvider interface {
	error

	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is the shape of an error that is safe to expose over the wire
// or to log.
type ErrorView struct {
	// Fault is the qualified fault name, e.g. "app.StoreFault.Timeout".
	Fault string `json:"fault"`

	// Variant is the classification of the fault, e.g. "runtime_error".
	Variant string `json:"variant"`

	// Message is the rendered message of the error.
	Message string `json:"message,omitempty"`

	// Context holds the caller-supplied context values rendered as strings.
	// Provenance keys (previous and root error data) are never included.
	Context map[string]string `json:"context,omitempty"`

	// Details is an optional list of structured details.
	Details []Detail `json:"details,omitempty"`
}
