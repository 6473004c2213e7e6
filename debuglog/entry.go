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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/message"
)

// Kind classifies an entry.
type Kind uint8

const (
	// KindDebug is a plain debug message.
	KindDebug Kind = iota
	// KindFault is a Fault outcome.
	KindFault
	// KindError is built from ErrorInfo.
	KindError
	// KindException is a captured error.
	KindException
)

// LevelNotice sits between slog.LevelInfo and slog.LevelWarn.
const LevelNotice = slog.Level(2)

// Reserved context keys. They may be supplied by the caller to describe
// where an event happened and whether it was handled, and they are added
// to every entry context.
const (
	KeyFile      = "__file__"
	KeyLine      = "__line__"
	KeyTime      = "__time__"
	KeyHandled   = "__handled__"
	KeyFault     = "__fault__"
	KeyException = "__exception__"
	KeyCode      = "__code__"
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindDebug:
		return "debug"
	case KindFault:
		return "fault"
	case KindError:
		return "error"
	case KindException:
		return "exception"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Level maps the kind to a slog level.
func (k Kind) Level() slog.Level {
	switch k {
	case KindFault:
		return LevelNotice
	case KindError:
		return slog.LevelWarn
	case KindException:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// ErrorInfo describes an error by its parts rather than as an error value,
// e.g. a failure reported by a foreign runtime.
type ErrorInfo struct {
	Code    int
	File    string
	Line    int
	Message string
}

// Entry is one logged event.
type Entry struct {
	ID      string
	Kind    Kind
	Message string
	Context dfault.Context
	File    string
	Line    int
	Time    time.Time
	Handled bool

	// Fault is set for fault entries, and for exception entries whose error
	// is (or wraps) an Exceptable.
	Fault dfault.Fault
	// Err is set for exception entries.
	Err error
	// Code is set for error entries.
	Code int
}

// Level returns the slog level of the entry.
func (e Entry) Level() slog.Level { return e.Kind.Level() }

// From builds an entry from v:
//   - a dfault.Fault gives a fault entry;
//   - an error gives an exception entry;
//   - a string is a message template, formatted with ctx, and gives a debug entry;
//   - an ErrorInfo, *ErrorInfo or nil gives an error entry.
//
// Any other value gives an UnacceptableLogMessage fault entry describing it.
func From(v any, ctx dfault.Context) Entry {
	switch x := v.(type) {
	case dfault.Fault:
		return FromFault(x, ctx)
	case error:
		return FromError(x, ctx)
	case string:
		return FromMessage(x, ctx)
	case ErrorInfo:
		return FromInfo(&x, ctx)
	case *ErrorInfo:
		return FromInfo(x, ctx)
	case nil:
		return FromInfo(nil, ctx)
	default:
		return FromFault(dfault.UnacceptableLogMessage, dfault.Context{
			"type":    fmt.Sprintf("%T", v),
			"from":    v,
			"context": ctx,
		})
	}
}

// FromFault builds a fault entry.
func FromFault(f dfault.Fault, ctx dfault.Context) Entry {
	if !dfault.Acceptable(f) {
		return FromFault(dfault.UnacceptableLogMessage, dfault.Context{"type": fmt.Sprintf("%T", f), "context": ctx})
	}
	e := newEntry(KindFault, ctx)
	e.Fault = f
	e.Message = faultMessage(f, ctx)
	e.Context[KeyFault] = f.Name()
	return e
}

// FromError builds an exception entry. File, line and fault are taken from
// the first Exceptable in the chain of err.
func FromError(err error, ctx dfault.Context) Entry {
	e := newEntry(KindException, ctx)
	e.Err = err
	e.Message = err.Error()
	var x *dfault.Exceptable
	if errors.As(err, &x) {
		e.Fault = x.Fault()
		e.File, e.Line = x.File(), x.Line()
		e.Context[KeyFault] = x.Fault().Name()
		e.Context[KeyFile], e.Context[KeyLine] = e.File, e.Line
	}
	e.Context[KeyException] = err
	return e
}

// FromMessage builds a debug entry from a message template.
func FromMessage(template string, ctx dfault.Context) Entry {
	e := newEntry(KindDebug, ctx)
	e.Message = message.Format(template, ctx)
	return e
}

// FromInfo builds an error entry. Info without a message is described by
// the UnknownError fault.
func FromInfo(info *ErrorInfo, ctx dfault.Context) Entry {
	var in ErrorInfo
	if info != nil {
		in = *info
	}
	e := newEntry(KindError, ctx)
	e.Code = in.Code
	if in.File != "" {
		e.File, e.Line = in.File, in.Line
		e.Context[KeyFile], e.Context[KeyLine] = e.File, e.Line
	}
	e.Context[KeyCode] = in.Code
	e.Message = in.Message
	if e.Message == "" {
		e.Message = faultMessage(dfault.UnknownError, e.Context)
	}
	return e
}

// newEntry copies ctx and reads the reserved keys from it.
func newEntry(k Kind, ctx dfault.Context) Entry {
	e := Entry{
		ID:      uuid.New().String(),
		Kind:    k,
		Context: ctx.Clone(),
		Time:    time.Now(),
	}
	if s, ok := ctx[KeyFile].(string); ok {
		e.File = s
	}
	if n, ok := ctx[KeyLine].(int); ok {
		e.Line = n
	}
	if b, ok := ctx[KeyHandled].(bool); ok {
		e.Handled = b
	}
	e.Context[KeyFile] = e.File
	e.Context[KeyLine] = e.Line
	e.Context[KeyTime] = e.Time
	return e
}

func faultMessage(f dfault.Fault, ctx dfault.Context) (s string) {
	defer func() {
		if recover() != nil {
			s = f.Name()
		}
	}()
	return f.Message(ctx)
}
