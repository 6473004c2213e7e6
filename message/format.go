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

package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrIncomplete is returned in strict mode when the context does not
	// provide a value for every token of a template.
	ErrIncomplete = errors.New("message: incomplete formatting context")
)

// tokenRe matches a formatting token: "{" word characters "}".
var tokenRe = regexp.MustCompile(`\{(\w+)\}`)

// Format substitutes tokens in template with rendered context values.
// Tokens without a context entry are left as written.
func Format(template string, ctx map[string]any) string {
	if !strings.Contains(template, "{") {
		return template
	}
	return tokenRe.ReplaceAllStringFunc(template, func(tok string) string {
		v, ok := ctx[tok[1:len(tok)-1]]
		if !ok {
			return tok
		}
		return Value(v)
	})
}

// FormatStrict is like Format but fails with ErrIncomplete when any token
// has no context entry. The error names the missing tokens.
func FormatStrict(template string, ctx map[string]any) (string, error) {
	var missing []string
	for _, tok := range Tokens(template) {
		if _, ok := ctx[tok]; !ok {
			missing = append(missing, tok)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return Format(template, ctx), nil
}

// Tokens returns the distinct token names of template in order of first
// appearance.
func Tokens(template string) []string {
	matches := tokenRe.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}
