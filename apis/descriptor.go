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

// ErrorDescriptor is a flat description of a declared fault, as listed by
// registries and tooling.
type ErrorDescriptor struct {
	// Fault is the qualified fault name.
	Fault string `json:"fault"`

	// Variant is the declared variant of the fault.
	Variant string `json:"variant"`

	// Family is the root of the variant's family: "logic_error" or
	// "runtime_error".
	Family string `json:"family"`

	// HTTPStatus is the HTTP status the fault resolves to. 0 means no mapper
	// was consulted.
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is the gRPC status code (as integer) the fault resolves to.
	GRPCCode int `json:"grpc_code,omitempty"`

	// Template is the message template declared with the fault, if any.
	Template string `json:"template,omitempty"`

	// MessageKey is the key the fault's messages are resolved under.
	MessageKey string `json:"message_key,omitempty"`
}
