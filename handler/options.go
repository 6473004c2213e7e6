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
	"time"

	"dirpx.dev/dfault/debuglog"
)

// Toggle is a tri-state switch; Unset inherits when options are merged.
type Toggle uint8

const (
	Unset Toggle = iota
	On
	Off
)

// Options configures logging and retry pacing.
//
// Fields left at their zero value inherit the previous value when passed to
// Handler.Options.
type Options struct {
	// Debug logs every event, including plain debug messages. When Off, only
	// faults and errors are logged, and only if Sink is set.
	Debug Toggle
	// Sink receives every logged entry.
	Sink debuglog.Sink
	// Log records logged entries. Handlers derived from one another share it
	// unless a new one is set here.
	Log *debuglog.Log
	// Backoff is the delay before each retry. Zero inherits; a negative
	// value resets the delay to none.
	Backoff time.Duration
}

// merge returns o overlaid with the set fields of n.
func (o Options) merge(n Options) Options {
	out := o
	if n.Debug != Unset {
		out.Debug = n.Debug
	}
	if n.Sink != nil {
		out.Sink = n.Sink
	}
	if n.Log != nil {
		out.Log = n.Log
	}
	if n.Backoff != 0 {
		out.Backoff = max(n.Backoff, 0)
	}
	return out
}
