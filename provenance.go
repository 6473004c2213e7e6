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

package dfault

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Provenance keys added to every Exceptable context.
//
// The "previous" set describes the direct predecessor, the "root" set the
// deepest error of the causal chain. File, line and fault keys are present
// only when the described error is an Exceptable.
const (
	KeyPrevious        = "__previous__"
	KeyPreviousMessage = "__previousMessage__"
	KeyPreviousType    = "__previousType__"
	KeyPreviousFile    = "__previousFile__"
	KeyPreviousLine    = "__previousLine__"
	KeyPreviousFault   = "__previousFault__"

	KeyRoot        = "__root__"
	KeyRootMessage = "__rootMessage__"
	KeyRootType    = "__rootType__"
	KeyRootFile    = "__rootFile__"
	KeyRootLine    = "__rootLine__"
	KeyRootFault   = "__rootFault__"
)

var provenanceKeys = map[string]bool{
	KeyPrevious: true, KeyPreviousMessage: true, KeyPreviousType: true,
	KeyPreviousFile: true, KeyPreviousLine: true, KeyPreviousFault: true,
	KeyRoot: true, KeyRootMessage: true, KeyRootType: true,
	KeyRootFile: true, KeyRootLine: true, KeyRootFault: true,
}

// IsProvenanceKey reports whether k is one of the provenance keys.
func IsProvenanceKey(k string) bool { return provenanceKeys[k] }

const (
	// maxChain bounds causal chain walks; real chains are a handful of links.
	maxChain = 1 << 10
	// maxDepth bounds the frames inspected when locating the raising call site.
	maxDepth = 32
)

// internalFuncPrefixes identify frames that never count as the raising call
// site: this package, the handler pipeline, and runtime frames such as
// panic unwinding.
var internalFuncPrefixes = []string{
	"dirpx.dev/dfault.",
	"dirpx.dev/dfault/handler.",
	"runtime.",
}

// findRoot returns the deepest predecessor of err: the Root of an
// Exceptable, or the last error reachable through errors.Unwrap.
func findRoot(err error) error {
	root := err
	for range maxChain {
		if x, ok := root.(*Exceptable); ok {
			return x.root
		}
		next := errors.Unwrap(root)
		if next == nil {
			return root
		}
		root = next
	}
	return root
}

// provenance merges the provenance keys for previous/root into ctx.
// Caller-supplied keys win on collision. The result is a fresh map.
func provenance(ctx Context, previous, root error) Context {
	out := make(Context, len(ctx)+12)
	out[KeyPrevious] = nil
	out[KeyRoot] = nil
	if previous != nil {
		describe(out, "__previous", previous)
		describe(out, "__root", root)
	}
	for k, v := range ctx {
		out[k] = v
	}
	return out
}

func describe(ctx Context, prefix string, err error) {
	ctx[prefix+"__"] = err
	ctx[prefix+"Message__"] = err.Error()
	ctx[prefix+"Type__"] = fmt.Sprintf("%T", err)
	if x, ok := err.(*Exceptable); ok {
		ctx[prefix+"File__"] = x.file
		ctx[prefix+"Line__"] = x.line
		ctx[prefix+"Fault__"] = x.fault.Name()
	}
}

// callSite returns the first frame outside the non-test code of this package,
// of package handler and of the runtime.
func callSite() (file string, line int) {
	pc := make([]uintptr, maxDepth)
	// +2 skips runtime.Callers and callSite.
	n := runtime.Callers(2, pc)
	if n == 0 {
		return "", 0
	}
	frames := runtime.CallersFrames(pc[:n])
	for {
		fr, more := frames.Next()
		if !internalFrame(fr) {
			return fr.File, fr.Line
		}
		if !more {
			return fr.File, fr.Line
		}
	}
}

func internalFrame(fr runtime.Frame) bool {
	if strings.HasSuffix(fr.File, "_test.go") {
		return false
	}
	for _, p := range internalFuncPrefixes {
		if strings.HasPrefix(fr.Function, p) {
			return true
		}
	}
	return false
}
