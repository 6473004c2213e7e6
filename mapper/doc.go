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

// Package mapper provides deterministic, immutable mappings from fault
// classifications to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// Every dfault Fault carries two pieces of classification:
//
//  1. a Variant (e.g. variant.InvalidArgument, variant.RuntimeError),
//     which belongs to the logic or runtime family;
//  2. a qualified Name (e.g. "app.StoreFault.Timeout").
//
// Transport layers (HTTP handlers, gRPC servers) need to turn this pair into
// concrete status codes. Package mapper does that in a way that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers change library defaults per variant;
//   - prefix-aware: callers add rules for groups of fault names;
//   - dual: HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the fault name;
//  2. longest-prefix-match (LPM) on the fault name, among the rules of the
//     variant, then of its parent, up to the family root;
//  3. default of the variant, then of its parent, up to the family root;
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: names are treated as "."-separated
// segments, and "*" matches exactly one segment. For example:
//
//	WithHTTPPrefix(variant.RuntimeError, "app.StoreFault", http.StatusServiceUnavailable)
//	WithHTTPPrefix(variant.RuntimeError, "app.*.Timeout", http.StatusGatewayTimeout)
//
// The more specific prefix wins.
//
// # Library defaults
//
// The package ships defaults for the declared variants, e.g.
// invalid_argument -> 400 / InvalidArgument, out_of_bounds -> 404 /
// NotFound, runtime_error -> 500 / Internal. Variants without a default of
// their own (bad_method_call, range_error, unexpected_value) inherit from
// their parent.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride("app.StoreFault.Locked", http.StatusLocked),
//	    mapper.WithHTTPPrefix(variant.RuntimeError, "app.StoreFault", 503),
//	)
//	if err != nil {
//	    // unknown variant, invalid prefix, etc.
//	}
//
//	st := m.Status(variant.RuntimeError, "app.StoreFault.Timeout")
//	// st.HTTP == 503, st.GRPC == codes.Internal
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a particular
// (variant, name) was resolved: which tier matched, which variant the rule
// was registered under and, for prefixes, which pattern was used. It is
// intended for inspection and logging, not for machine parsing.
//
// # Immutability
//
// All inputs are copied during New. After construction the Mapper does not
// observe further changes, so a single instance can be shared across
// handlers, goroutines and requests.
package mapper
