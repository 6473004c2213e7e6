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

package handler

import (
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/dfault"
)

// Matcher decides whether a failure matches a registration.
//
// failure is either a dfault.Fault or a captured error. exact reports a
// match on the failure itself rather than on something it wraps or
// implements; an exact collect match stops the collect scan.
type Matcher interface {
	Match(failure error) (matched, exact bool)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(failure error) (matched, exact bool)

// Match calls f.
func (f MatcherFunc) Match(failure error) (bool, bool) { return f(failure) }

// Type matches failures that errors.As can convert to E. The match is
// exact when the failure's dynamic type is E.
func Type[E error]() Matcher {
	return typeMatcher[E]{}
}

type typeMatcher[E error] struct{}

func (typeMatcher[E]) Match(failure error) (bool, bool) {
	if failure == nil {
		return false, false
	}
	var target E
	if !errors.As(failure, &target) {
		return false, false
	}
	return true, reflect.TypeOf(failure) == reflect.TypeFor[E]()
}

func (typeMatcher[E]) String() string { return "type " + reflect.TypeFor[E]().String() }

// Sentinel matches failures for which errors.Is(failure, err) holds. The
// match is exact when the failure is err itself.
func Sentinel(err error) Matcher {
	return sentinelMatcher{err: err}
}

type sentinelMatcher struct{ err error }

func (m sentinelMatcher) Match(failure error) (bool, bool) {
	if failure == nil || m.err == nil || !errors.Is(failure, m.err) {
		return false, false
	}
	return true, same(failure, m.err)
}

func (m sentinelMatcher) String() string { return fmt.Sprintf("sentinel %q", m.err) }

// faultMatcher matches a Fault outcome by identity, or an error whose first
// Exceptable has that fault as its own.
type faultMatcher struct{ f dfault.Fault }

func (m faultMatcher) Match(failure error) (bool, bool) {
	if f, ok := failure.(dfault.Fault); ok {
		eq := dfault.Equal(f, m.f)
		return eq, eq
	}
	var x *dfault.Exceptable
	if !errors.As(failure, &x) || !x.IsFault(m.f) {
		return false, false
	}
	return true, failure == error(x)
}

func (m faultMatcher) String() string { return m.f.Name() }

// toMatcher converts a registration argument. Faults, Matchers and error
// values (as sentinels) are accepted.
func toMatcher(v any) (Matcher, bool) {
	switch x := v.(type) {
	case dfault.Fault:
		if !dfault.Acceptable(x) {
			return nil, false
		}
		return faultMatcher{f: x}, true
	case Matcher:
		if isNil(x) {
			return nil, false
		}
		return x, true
	case error:
		if isNil(x) {
			return nil, false
		}
		return sentinelMatcher{err: x}, true
	default:
		return nil, false
	}
}

func same(a, b error) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
