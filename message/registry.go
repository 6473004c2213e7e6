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
	"sort"
	"strings"
	"sync"
)

// RootLocale is the locale every lookup falls back to last.
const RootLocale = "root"

var (
	// ErrInvalidLocale is returned when registering under a malformed locale.
	ErrInvalidLocale = errors.New("message: invalid locale")
)

// localeRe accepts BCP 47 / ICU style locale ids after normalization to
// underscores: "en", "en_US", "sr_Latn_RS".
var localeRe = regexp.MustCompile(`^[A-Za-z]{2,8}(_[A-Za-z0-9]{1,8})*$`)

// Formatter resolves a message key to formatted text. Implementations must
// be safe for concurrent use.
type Formatter interface {
	Resolve(key string, ctx map[string]any, locale string) (string, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc func(key string, ctx map[string]any, locale string) (string, error)

// Resolve calls f.
func (f FormatterFunc) Resolve(key string, ctx map[string]any, locale string) (string, error) {
	return f(key, ctx, locale)
}

// TemplateSource is a Formatter that also exposes raw templates, so callers
// can format them with their own rules. *Registry implements it.
type TemplateSource interface {
	Formatter
	Template(key, locale string) (string, error)
}

var _ TemplateSource = (*Registry)(nil)

// RegistryOption configures a Registry at construction.
type RegistryOption func(*Registry)

// WithDefaultLocale sets the locale used when Resolve is called with an
// empty locale.
func WithDefaultLocale(locale string) RegistryOption {
	return func(r *Registry) { r.defaultLocale = NormalizeLocale(locale) }
}

// WithStrict makes Resolve fail with ErrIncomplete when the context lacks
// a value for any token of the resolved template.
func WithStrict() RegistryOption {
	return func(r *Registry) { r.strict = true }
}

// WithNamespaceFallback lets a template defined at a key prefix serve every
// deeper key that has no template of its own.
func WithNamespaceFallback() RegistryOption {
	return func(r *Registry) { r.namespace = true }
}

// Registry holds message bundles per locale. It is safe for concurrent use;
// bundles registered later are consulted after earlier ones.
type Registry struct {
	mu            sync.RWMutex
	bundles       map[string][]*Bundle
	defaultLocale string
	strict        bool
	namespace     bool
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{bundles: make(map[string][]*Bundle), defaultLocale: RootLocale}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.defaultLocale == "" {
		r.defaultLocale = RootLocale
	}
	return r
}

// NormalizeLocale trims s and converts "-" separators to "_".
// The empty string normalizes to RootLocale.
func NormalizeLocale(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "-", "_")
	if s == "" {
		return RootLocale
	}
	return s
}

// Register adds b under locale.
func (r *Registry) Register(locale string, b *Bundle) error {
	if b == nil {
		return fmt.Errorf("%w: nil bundle", ErrBadBundle)
	}
	loc := NormalizeLocale(locale)
	if loc != RootLocale && !localeRe.MatchString(loc) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, locale)
	}
	r.mu.Lock()
	r.bundles[loc] = append(r.bundles[loc], b)
	r.mu.Unlock()
	return nil
}

// Unregister removes b from locale. It reports whether b was registered.
func (r *Registry) Unregister(locale string, b *Bundle) bool {
	loc := NormalizeLocale(locale)
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.bundles[loc]
	for i, x := range list {
		if x == b {
			r.bundles[loc] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// Locales returns the locales that have at least one bundle, sorted.
func (r *Registry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.bundles))
	for loc, list := range r.bundles {
		if len(list) > 0 {
			out = append(out, loc)
		}
	}
	sort.Strings(out)
	return out
}

// Template returns the raw template for key, following locale fallback.
func (r *Registry) Template(key, locale string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := fallbackChain(r.pick(locale))
	var notMessage error
	for _, loc := range chain {
		for _, b := range r.bundles[loc] {
			tmpl, err := b.Lookup(key)
			if err == nil {
				return tmpl, nil
			}
			if notMessage == nil && errors.Is(err, ErrNotAMessage) {
				notMessage = err
			}
		}
	}
	if r.namespace {
		for _, loc := range chain {
			for _, b := range r.bundles[loc] {
				if tmpl, _, ok := b.Nearest(key); ok {
					return tmpl, nil
				}
			}
		}
	}
	if notMessage != nil {
		return "", notMessage
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Resolve looks up key and formats its template with ctx.
func (r *Registry) Resolve(key string, ctx map[string]any, locale string) (string, error) {
	tmpl, err := r.Template(key, locale)
	if err != nil {
		return "", err
	}
	if r.strict {
		return FormatStrict(tmpl, ctx)
	}
	return Format(tmpl, ctx), nil
}

func (r *Registry) pick(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return r.defaultLocale
	}
	return NormalizeLocale(locale)
}

// fallbackChain expands "sr_Latn_RS" to ["sr_Latn_RS", "sr_Latn", "sr", "root"].
func fallbackChain(locale string) []string {
	var chain []string
	for loc := locale; loc != "" && loc != RootLocale; {
		chain = append(chain, loc)
		i := strings.LastIndexByte(loc, '_')
		if i < 0 {
			break
		}
		loc = loc[:i]
	}
	return append(chain, RootLocale)
}
