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

// Package segmenttrie provides a segment-aware prefix index for dotted
// identifiers such as fault names and message keys.
package segmenttrie

import (
	"errors"
	"sort"
	"strings"
)

// Trie is a segment-aware prefix index for dot-separated keys.
// Each node represents one segment; the wildcard "*" matches exactly one segment.
// The trie supports longest-prefix-match (LPM) with segment boundaries, so
// a more specific rule wins over a shorter one, and exact lookups.
//
// A Trie is not safe for concurrent mutation. Once fully built it may be
// read from many goroutines.
type Trie[T any] struct {
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the dotted prefix as inserted, set only when hasVal=true.
	// MatchWithPattern returns it so lookups never build strings.
	pattern string
}

var (
	// ErrInvalidPrefix is returned when inserting a prefix that is empty,
	// has empty segments, contains invalid characters, or consists only of wildcards.
	ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")
)

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert adds a dot-separated prefix to the trie and associates it with val.
// Inserting the same prefix twice replaces the value.
//
// Examples:
//
//	"dfault.ExceptableFault"
//	"app.ParseFault.Syntax"
//	"app.*.Syntax"
//
// The wildcard "*" matches exactly one segment.
// A prefix made only of "*" segments is rejected, because it is too generic.
// Returns ErrInvalidPrefix on malformed input.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := splitAndValidate(prefix, true /* allowWildcard */)
	if !ok || len(segs) == 0 {
		return ErrInvalidPrefix
	}

	// Require at least one non-wildcard segment to avoid catching everything.
	allWild := true
	for _, s := range segs {
		if s != "*" {
			allWild = false
			break
		}
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Get returns the value stored for exactly key. Wildcard nodes are not
// consulted: "*" in the trie only participates in prefix matching.
func (t *Trie[T]) Get(key string) (T, bool) {
	var zero T
	if t == nil {
		return zero, false
	}
	segs, ok := splitAndValidate(key, false)
	if !ok || len(segs) == 0 {
		return zero, false
	}
	cur := t
	for _, s := range segs {
		next, exists := cur.children[s]
		if !exists {
			return zero, false
		}
		cur = next
	}
	if !cur.hasVal {
		return zero, false
	}
	return cur.val, true
}

// HasChildren reports whether key names an interior node, i.e. some longer
// key was inserted below it.
func (t *Trie[T]) HasChildren(key string) bool {
	if t == nil {
		return false
	}
	segs, ok := splitAndValidate(key, false)
	if !ok {
		return false
	}
	cur := t
	for _, s := range segs {
		next, exists := cur.children[s]
		if !exists {
			return false
		}
		cur = next
	}
	return len(cur.children) > 0
}

// Match finds the best (deepest) prefix match for a full key.
// Both exact segment matches and "*" wildcard branches are explored.
// If the key is invalid or nothing matches, it returns the zero value and false.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern returns the value and the stored pattern of the deepest
// matching prefix.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil || !validKey(key) {
		return zero, false, ""
	}
	bestDepth := -1
	var best *Trie[T]

	// dfs scans the next segment starting at byte offset 'off', with 'depth'
	// segments already consumed.
	var dfs func(n *Trie[T], off, depth int)
	dfs = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			best = n
		}
		if off >= len(key) {
			return
		}
		seg, nextOff, ok := nextSegment(key, off)
		if !ok {
			return
		}
		if next, ok := n.children[seg]; ok {
			dfs(next, nextOff, depth+1)
		}
		if next, ok := n.children["*"]; ok {
			dfs(next, nextOff, depth+1)
		}
	}

	dfs(t, 0, 0)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// Patterns returns every stored pattern in lexical order.
func (t *Trie[T]) Patterns() []string {
	if t == nil {
		return nil
	}
	var out []string
	var walk func(n *Trie[T])
	walk = func(n *Trie[T]) {
		if n.hasVal {
			out = append(out, n.pattern)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t)
	sort.Strings(out)
	return out
}

// nextSegment parses the segment starting at off and returns it with the
// offset of the following segment. It allocates nothing: seg is a substring.
func nextSegment(key string, off int) (seg string, next int, ok bool) {
	i := off
	if !identStart(key[i]) {
		return "", 0, false
	}
	i++
	for i < len(key) && key[i] != '.' {
		if !identPart(key[i]) {
			return "", 0, false
		}
		i++
	}
	seg = key[off:i]
	next = i
	if next < len(key) {
		// skip '.'; a trailing dot leaves an empty segment, which is invalid
		next++
		if next == len(key) {
			return "", 0, false
		}
	}
	return seg, next, true
}

// validKey reports whether key is a well-formed dotted identifier without
// allocating.
func validKey(key string) bool {
	for off := 0; off < len(key); {
		_, next, ok := nextSegment(key, off)
		if !ok {
			return false
		}
		off = next
	}
	return true
}

// splitAndValidate splits a dot-separated string into segments and validates
// each segment according to validSegment(). When allowWildcard=true,
// a segment that is exactly "*" is accepted.
//
// Note: an empty string is treated as an empty (but valid) segment list
// to make matching against "" possible in callers.
func splitAndValidate(s string, allowWildcard bool) ([]string, bool) {
	if s == "" {
		return []string{}, true
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if !validSegment(seg, allowWildcard) {
			return nil, false
		}
	}
	return segs, true
}

// validSegment reports whether seg is a valid trie segment.
// Rules:
//   - empty segments are invalid;
//   - when allowWildcard=true, the segment "*" is allowed;
//   - otherwise the segment must match: [A-Za-z_][A-Za-z0-9_]*
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	if !identStart(seg[0]) {
		return false
	}
	for i := 1; i < len(seg); i++ {
		if !identPart(seg[i]) {
			return false
		}
	}
	return true
}

func identStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func identPart(c byte) bool {
	return identStart(c) || (c >= '0' && c <= '9')
}
