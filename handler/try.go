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
	"context"
	"fmt"
	"reflect"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/sethvargo/go-retry"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/debuglog"
)

// Debug message templates.
const (
	msgIgnored   = "ignored result: {result}"
	msgCollected = "collected error ({result}) as {fault}"
	msgRetrying  = "retrying ({attempt}/{attempts}): {result}"
)

// outcome is the normalized result of one invocation. At most one of fault
// and err is set; when neither is, value is a success.
type outcome struct {
	value any
	fault dfault.Fault
	err   error
}

func (o outcome) ok() bool { return o.fault == nil && o.err == nil }

// failure returns the Fault or the captured error.
func (o outcome) failure() error {
	if o.fault != nil {
		return o.fault
	}
	return o.err
}

// Try invokes op with args and applies the Handler's strategies to the
// outcome.
//
// The result is the (possibly replaced) value, which is a dfault.Fault when
// the call failed and no strategy turned the failure into a value. The
// error is non-nil only when a Throw rule matched, when a callback failed,
// or when the Handler holds an invalid registration.
func (h *Handler) Try(op Operation, args ...any) (any, error) {
	return h.try(op, args, false)
}

// TryIgnoring is Try with every failure that is not thrown replaced by nil.
// Ignore mode applies to this call only.
func (h *Handler) TryIgnoring(op Operation, args ...any) (any, error) {
	v, err := h.try(op, args, true)
	if _, isFault := FaultOf(v); isFault {
		return nil, err
	}
	return v, err
}

// TryPipe passes initial through steps left to right within one Try. The
// chain stops at the first step that fails or yields a Fault; the Handler's
// strategies then apply to that outcome.
func (h *Handler) TryPipe(initial any, steps ...Step) (any, error) {
	return h.Try(func(args ...any) (any, error) {
		v := args[0]
		for _, step := range steps {
			if _, isFault := FaultOf(v); isFault {
				return v, nil
			}
			if step == nil {
				continue
			}
			var err error
			if v, err = step(v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}, initial)
}

// Bind returns a Step that passes Faults through untouched and otherwise
// runs step under this Handler's strategies. It lets a TryPipe stage use a
// different Handler than the pipe as a whole.
func (h *Handler) Bind(step Step) Step {
	return func(v any) (any, error) {
		if _, isFault := FaultOf(v); isFault {
			return v, nil
		}
		return h.Try(func(args ...any) (any, error) { return step(args[0]) }, v)
	}
}

func (h *Handler) try(op Operation, args []any, ignoring bool) (any, error) {
	if len(h.invalid) > 0 {
		return nil, dfault.New(dfault.UnacceptableFault, dfault.Context{"type": h.invalid[0]}, nil)
	}
	if op == nil {
		return nil, dfault.New(dfault.UnacceptableFault, dfault.Context{"type": "handler.Operation(nil)"}, nil)
	}

	out := invoke(op, args)
	if !out.ok() {
		out = h.retryIf(op, args, out)
	}
	if out.ok() {
		return h.success(out.value)
	}

	failure := out.failure()
	ctx := dfault.Context{
		"operation": funcName(op),
		"args":      args,
		"result":    failure,
	}
	h.logIf(failure, ctx)

	if err := h.rethrowIf(out, ctx); err != nil {
		return nil, err
	}

	fault := h.collectIf(failure)
	if fault == nil {
		fault = out.fault
	}

	var value any
	switch {
	case ignoring || h.shouldIgnore(fault, out.err):
		h.logIf(msgIgnored, ctx.With(debuglog.KeyHandled, true))
		fault = nil
	case fault == nil:
		// an error no strategy dealt with
		h.logIf(dfault.New(dfault.UncaughtException, nil, out.err), ctx)
		fault = dfault.UncaughtException
	}

	value, fault = h.defaultIf(value, fault)
	if fault != nil {
		return h.failure(fault)
	}
	return h.success(value)
}

// invoke calls op, normalizing returned faults, errors and panics.
func invoke(op Operation, args []any) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	v, err := op(args...)
	if err != nil {
		if f, ok := err.(dfault.Fault); ok {
			return faultOutcome(f)
		}
		return outcome{err: err}
	}
	if f, ok := v.(dfault.Fault); ok && f != nil {
		return faultOutcome(f)
	}
	return outcome{value: v}
}

// faultOutcome rejects malformed faults as an UnacceptableFault error.
func faultOutcome(f dfault.Fault) outcome {
	if !dfault.Acceptable(f) {
		return outcome{err: dfault.New(f, nil, nil)}
	}
	return outcome{fault: f}
}

// retryIf re-invokes op while the outcome keeps matching the first retry
// rule that matched the initial failure.
func (h *Handler) retryIf(op Operation, args []any, out outcome) outcome {
	rule, ok := h.retryRule(out.failure())
	if !ok || rule.attempts <= 0 {
		return out
	}

	delay := h.opts.Backoff
	b := retry.WithMaxRetries(uint64(rule.attempts), retry.BackoffFunc(func() (time.Duration, bool) {
		return delay, false
	}))

	attempt := 0
	_ = retry.Do(context.Background(), b, func(context.Context) error {
		if attempt > 0 {
			h.logIf(msgRetrying, dfault.Context{
				"attempt":  attempt,
				"attempts": rule.attempts,
				"result":   out.failure(),
			})
			out = invoke(op, args)
		}
		attempt++
		if out.ok() || !matchAny(rule.matchers, out.failure()) {
			return nil
		}
		return retry.RetryableError(out.failure())
	})
	return out
}

func (h *Handler) retryRule(failure error) (retryRule, bool) {
	for _, r := range h.retries {
		if matchAny(r.matchers, failure) {
			return r, true
		}
	}
	return retryRule{}, false
}

// rethrowIf returns the failure as an error when it matches a Throw rule.
func (h *Handler) rethrowIf(out outcome, ctx dfault.Context) error {
	if !matchAny(h.throw, out.failure()) {
		return nil
	}
	if out.err != nil {
		return out.err
	}
	return dfault.New(out.fault, ctx, nil)
}

// collectIf returns the Fault of the first collect rule matching failure,
// or nil. An exact match ends the scan early.
func (h *Handler) collectIf(failure error) dfault.Fault {
	var collected dfault.Fault
	for _, r := range h.collect {
		for _, m := range r.matchers {
			matched, exact := m.Match(failure)
			if !matched {
				continue
			}
			if collected == nil {
				collected = r.as
				h.logIf(msgCollected, dfault.Context{
					"result":            failure,
					"fault":             collected.Name(),
					debuglog.KeyHandled: true,
				})
			}
			if exact {
				return collected
			}
		}
	}
	return collected
}

func (h *Handler) shouldIgnore(fault dfault.Fault, err error) bool {
	if fault != nil {
		return matchAny(h.ignore, fault)
	}
	return matchAny(h.ignore, err)
}

// defaultIf applies the default rule for a nil value or for fault.
func (h *Handler) defaultIf(value any, fault dfault.Fault) (any, dfault.Fault) {
	key := nilKey
	if fault != nil {
		key = fault.Name()
	}
	d, ok := h.defaults[key]
	if !ok {
		return value, fault
	}
	if f, isFault := FaultOf(d); isFault {
		return nil, f
	}
	return d, nil
}

func (h *Handler) success(value any) (res any, err error) {
	if h.onSuccess == nil {
		return value, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = callbackFailed(SuccessHandlerFailed, value, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	res, cbErr := h.onSuccess(value)
	if cbErr != nil {
		return nil, callbackFailed(SuccessHandlerFailed, value, cbErr)
	}
	return res, nil
}

func (h *Handler) failure(fault dfault.Fault) (res any, err error) {
	if h.onFailure == nil {
		return fault, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = callbackFailed(FailureHandlerFailed, fault, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	res, cbErr := h.onFailure(fault)
	if cbErr != nil {
		return nil, callbackFailed(FailureHandlerFailed, fault, cbErr)
	}
	return res, nil
}

func callbackFailed(f dfault.Fault, result any, cause error) error {
	return dfault.New(f, dfault.Context{"result": result}, cause)
}

// logIf records v in debug mode, or when it is a failure and a sink is
// configured. Plain messages are only recorded in debug mode.
func (h *Handler) logIf(v any, ctx dfault.Context) {
	debugOn := h.opts.Debug == On
	if !debugOn {
		if _, isErr := v.(error); !isErr || h.opts.Sink == nil {
			return
		}
	}
	e := debuglog.From(v, ctx)
	if h.log != nil {
		h.log.Add(e)
	}
	if h.opts.Sink != nil {
		h.opts.Sink.Record(e)
	}
}

func matchAny(ms []Matcher, failure error) bool {
	if failure == nil {
		return false
	}
	for _, m := range ms {
		if matched, _ := m.Match(failure); matched {
			return true
		}
	}
	return false
}

func funcName(op Operation) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(op).Pointer()); fn != nil {
		return fn.Name()
	}
	return fmt.Sprintf("%T", op)
}
