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

// Package message implements the formatting collaborator used by fault
// taxonomies: template token substitution, message bundles keyed by dotted
// paths, and a locale-aware registry of bundles.
//
// Templates use single-brace tokens:
//
//	"invalid fault type '{type}' (expected a dfault.Fault)"
//
// A token is replaced with the rendered value of the context entry of the
// same name (see Value). In strict mode a template whose tokens are not all
// present in the context fails with ErrIncomplete, so callers can fall back
// to a less specific message instead of showing a half-filled one.
//
// Bundles are loaded from YAML. Nested maps form the key path:
//
//	app:
//	  ParseFault:
//	    Syntax: "syntax error at line {line}"
//
// defines the key "app.ParseFault.Syntax".
//
// A Registry groups bundles per locale and resolves keys with locale
// fallback ("en_US" -> "en" -> "root"). It is an explicit value passed to
// whoever needs it; there is no package-level registry.
package message
