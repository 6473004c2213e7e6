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

type prefixRule[T any] struct {
	// prefix is the raw, dot-separated fault-name prefix (may contain "*").
	// It is normalized and validated when the per-variant trie is built.
	prefix string
	// val is the transport status to apply when this prefix matches.
	val T
}

// rules is the raw, user-adjustable configuration of one transport.
type rules[T any] struct {
	// defaults holds per-variant statuses (library defaults plus options).
	defaults map[variant.Variant]T
	// overrides holds exact per-fault statuses, keyed by the raw name.
	overrides map[string]T
	// prefixes holds per-variant LPM rules, compiled into segment tries.
	prefixes map[variant.Variant][]prefixRule[T]
	// fallback applies when nothing else does.
	fallback T
}

func newRules[T any](defaults map[variant.Variant]T, fallback T) rules[T] {
	r := rules[T]{
		defaults:  make(map[variant.Variant]T, len(defaults)),
		overrides: make(map[string]T),
		prefixes:  make(map[variant.Variant][]prefixRule[T]),
		fallback:  fallback,
	}
	for k, v := range defaults {
		r.defaults[k] = v
	}
	return r
}

type builder struct {
	http rules[int]
	grpc rules[codes.Code]
}

// newBuilder seeds a builder with copies of the library defaults.
func newBuilder() *builder {
	return &builder{
		http: newRules(defaultHTTP, http.StatusInternalServerError),
		grpc: newRules(defaultGRPC, codes.Internal),
	}
}
