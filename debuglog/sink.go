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
	"context"
	"log/slog"
	"sort"
)

// Sink receives entries. Implementations must be safe for concurrent use
// and must not panic.
type Sink interface {
	Record(Entry)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Entry)

// Record calls f.
func (f SinkFunc) Record(e Entry) { f(e) }

// Tee returns a Sink forwarding every entry to each non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiSink []Sink

func (m multiSink) Record(e Entry) {
	for _, s := range m {
		s.Record(e)
	}
}

// SlogSink writes entries to a *slog.Logger at the level of their kind.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink returns a sink writing to l, or to slog.Default() when l is nil.
func NewSlogSink(l *slog.Logger) *SlogSink {
	if l == nil {
		l = slog.Default()
	}
	return &SlogSink{logger: l}
}

// Record logs e. Context keys are emitted in sorted order under "ctx";
// reserved keys already reported as attributes are skipped.
func (s *SlogSink) Record(e Entry) {
	ctx := context.Background()
	level := e.Level()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("id", e.ID),
		slog.String("kind", e.Kind.String()),
	}
	if e.Fault != nil {
		attrs = append(attrs, slog.String("fault", e.Fault.Name()))
	}
	if e.File != "" {
		attrs = append(attrs, slog.String("file", e.File), slog.Int("line", e.Line))
	}
	if e.Handled {
		attrs = append(attrs, slog.Bool("handled", true))
	}
	if e.Kind == KindError {
		attrs = append(attrs, slog.Int("code", e.Code))
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		switch k {
		case KeyFile, KeyLine, KeyTime, KeyFault, KeyHandled, KeyCode:
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) > 0 {
		sort.Strings(keys)
		group := make([]any, 0, len(keys))
		for _, k := range keys {
			group = append(group, slog.Any(k, e.Context[k]))
		}
		attrs = append(attrs, slog.Group("ctx", group...))
	}
	s.logger.LogAttrs(ctx, level, e.Message, attrs...)
}
