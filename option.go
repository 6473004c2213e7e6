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

package dfault

import "dirpx.dev/dfault/message"

// TaxonomyOption is a functional option for declaring a Taxonomy.
type TaxonomyOption func(*Taxonomy)

// WithFormatter sets the message formatter consulted first when a case of
// the taxonomy resolves its message. Without one, case templates are used.
func WithFormatter(f message.Formatter) TaxonomyOption {
	return func(t *Taxonomy) { t.formatter = f }
}

// WithLocale sets the locale passed to the formatter.
func WithLocale(locale string) TaxonomyOption {
	return func(t *Taxonomy) { t.locale = locale }
}

// WithMessageKeys overrides how a case maps to its message key.
// The default key is the qualified case name.
func WithMessageKeys(fn func(*Case) string) TaxonomyOption {
	return func(t *Taxonomy) { t.keyFn = fn }
}
