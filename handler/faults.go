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
	"fmt"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/variant"
)

// HandlerFault describes failures of handler callbacks.
var HandlerFault = dfault.NewTaxonomy("dfault.HandlerFault")

var (
	// SuccessHandlerFailed reports an OnSuccess callback that returned an
	// error or panicked. Context: {"result": <value passed to the callback>}.
	SuccessHandlerFailed = HandlerFault.Case("SuccessHandlerFailed", variant.LogicError,
		"onSuccess({result}) failed: {__rootMessage__}")

	// FailureHandlerFailed reports an OnFailure callback that returned an
	// error or panicked. Context: {"result": <fault passed to the callback>}.
	FailureHandlerFailed = HandlerFault.Case("FailureHandlerFailed", variant.LogicError,
		"onFailure({result}) failed: {__rootMessage__}")
)

// PanicError is the captured outcome of an operation or callback that
// panicked.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements error.
func (p *PanicError) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

// Unwrap returns the panic value when it is an error.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// FaultOf reports whether v, a value returned by Try, is a Fault.
func FaultOf(v any) (dfault.Fault, bool) {
	f, ok := v.(dfault.Fault)
	return f, ok && f != nil
}
