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
	"google.golang.org/grpc/codes"

	"dirpx.dev/dfault/variant"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithHTTPDefault sets or replaces the default HTTP status for the given
// variant. Descendant variants without a default of their own inherit it.
func WithHTTPDefault(v variant.Variant, status int) Option {
	return func(b *builder) { b.http.defaults[v] = status }
}

// WithGRPCDefault sets or replaces the default gRPC status for the given
// variant.
func WithGRPCDefault(v variant.Variant, c codes.Code) Option {
	return func(b *builder) { b.grpc.defaults[v] = c }
}

// WithHTTPOverride pins the HTTP status of one fault, identified by its
// qualified name. Overrides take precedence over every other rule.
func WithHTTPOverride(fault string, status int) Option {
	return func(b *builder) { b.http.overrides[fault] = status }
}

// WithGRPCOverride pins the gRPC status of one fault.
func WithGRPCOverride(fault string, c codes.Code) Option {
	return func(b *builder) { b.grpc.overrides[fault] = c }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule on fault names for
// the given variant and its descendants. A more specific prefix wins. Use
// "*" to match a single segment.
func WithHTTPPrefix(v variant.Variant, prefix string, status int) Option {
	return func(b *builder) { b.http.prefixes[v] = append(b.http.prefixes[v], prefixRule[int]{prefix, status}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule on fault names for
// the given variant and its descendants.
func WithGRPCPrefix(v variant.Variant, prefix string, c codes.Code) Option {
	return func(b *builder) { b.grpc.prefixes[v] = append(b.grpc.prefixes[v], prefixRule[codes.Code]{prefix, c}) }
}

// WithFallback replaces the statuses used when no rule applies at all.
func WithFallback(status int, c codes.Code) Option {
	return func(b *builder) {
		b.http.fallback = status
		b.grpc.fallback = c
	}
}
