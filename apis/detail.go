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

// Detail is a single structured piece of information attached to an error
// view. It survives JSON and protobuf round-trips.
type Detail struct {
	// Type is a short classifier of the detail, e.g. "field" or "conflict".
	Type string `json:"type,omitempty"`

	// Field is the logical path of the failing field, e.g. "bundle.locale".
	Field string `json:"field,omitempty"`

	// Reason is a short explanation such as "required" or "not_unique".
	Reason string `json:"reason,omitempty"`

	// Info carries extra data, e.g. allowed values or a maximum length.
	Info map[string]string `json:"info,omitempty"`
}
