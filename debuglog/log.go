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

package debuglog

import (
	"sync"

	"dirpx.dev/dfault"
)

// Log is an append-only record of entries, safe for concurrent use.
//
// A Log may be bounded with WithLimit; once full, the oldest entries are
// dropped.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	limit   int
}

// LogOption configures a Log.
type LogOption func(*Log)

// WithLimit bounds the log to the n most recent entries. n <= 0 means
// unbounded.
func WithLimit(n int) LogOption {
	return func(l *Log) { l.limit = n }
}

// NewLog returns an empty log.
func NewLog(opts ...LogOption) *Log {
	l := &Log{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Add appends e.
func (l *Log) Add(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if l.limit > 0 && len(l.entries) > l.limit {
		drop := len(l.entries) - l.limit
		l.entries = append(l.entries[:0:0], l.entries[drop:]...)
	}
}

// AddFrom builds an entry with From, appends it and returns it.
func (l *Log) AddFrom(v any, ctx dfault.Context) Entry {
	e := From(v, ctx)
	l.Add(e)
	return e
}

// Record implements Sink, so a Log can collect what another component
// forwards.
func (l *Log) Record(e Entry) { l.Add(e) }

// Entries returns a snapshot of the entries, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reset drops every entry.
func (l *Log) Reset() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
