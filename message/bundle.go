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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/dfault/internal/segmenttrie"
	"dirpx.dev/dfault/name"
)

var (
	// ErrNotFound is returned when no message is defined for a key.
	ErrNotFound = errors.New("message: no such message")
	// ErrNotAMessage is returned when a key names a group of messages rather
	// than a single template.
	ErrNotAMessage = errors.New("message: key is not a message")
	// ErrBadBundle is returned when bundle data cannot be turned into a
	// key -> template index.
	ErrBadBundle = errors.New("message: malformed bundle")
)

// Bundle is an immutable set of message templates indexed by dotted key.
//
// Key segments may be the wildcard "*", which only takes part in
// namespace lookups (see Nearest).
type Bundle struct {
	name  string
	index *segmenttrie.Trie[string]
	keys  []string
}

// NewBundle builds a bundle from nested maps. Map keys may themselves be
// dotted ("ParseFault.Syntax") or use "::", "/" or "\" separators; leaf
// values must be strings.
func NewBundle(bundleName string, messages map[string]any) (*Bundle, error) {
	b := &Bundle{name: bundleName, index: segmenttrie.New[string]()}
	if err := b.add("", messages); err != nil {
		return nil, err
	}
	sort.Strings(b.keys)
	return b, nil
}

// ParseBundle decodes YAML data into a bundle. Environment references
// (${VAR}) are expanded before decoding.
func ParseBundle(bundleName string, data []byte) (*Bundle, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadBundle, bundleName, err)
	}
	return NewBundle(bundleName, raw)
}

// LoadBundle reads and parses a YAML bundle file. The bundle is named after
// the file without its extension.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("message: read bundle: %w", err)
	}
	base := filepath.Base(path)
	return ParseBundle(strings.TrimSuffix(base, filepath.Ext(base)), data)
}

// Name returns the bundle name.
func (b *Bundle) Name() string { return b.name }

// Keys returns every defined key in lexical order.
func (b *Bundle) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of templates in the bundle.
func (b *Bundle) Len() int { return len(b.keys) }

// Lookup returns the template defined for exactly key.
// It returns ErrNotAMessage when key names a group, ErrNotFound otherwise.
func (b *Bundle) Lookup(key string) (string, error) {
	if b == nil {
		return "", ErrNotFound
	}
	k := name.Normalize(key)
	if tmpl, ok := b.index.Get(k); ok {
		return tmpl, nil
	}
	if b.index.HasChildren(k) {
		return "", fmt.Errorf("%w: %q", ErrNotAMessage, k)
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, k)
}

// Nearest returns the template of the deepest key that is a segment prefix
// of key (wildcards allowed), along with that key as written in the bundle.
func (b *Bundle) Nearest(key string) (tmpl, pattern string, ok bool) {
	if b == nil {
		return "", "", false
	}
	tmpl, ok, pattern = b.index.MatchWithPattern(name.Normalize(key))
	return tmpl, pattern, ok
}

func (b *Bundle) add(prefix string, m map[string]any) error {
	for k, v := range m {
		seg := name.Normalize(k)
		key := seg
		if prefix != "" {
			key = prefix + "." + seg
		}
		switch x := v.(type) {
		case string:
			if _, dup := b.index.Get(key); dup {
				return fmt.Errorf("%w: %s: duplicate key %q", ErrBadBundle, b.name, key)
			}
			if err := b.index.Insert(key, x); err != nil {
				return fmt.Errorf("%w: %s: key %q: %v", ErrBadBundle, b.name, key, err)
			}
			b.keys = append(b.keys, key)
		case map[string]any:
			if err := b.add(key, x); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s: key %q: value of type %T is not a template", ErrBadBundle, b.name, key, v)
		}
	}
	return nil
}
