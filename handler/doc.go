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

// Package handler routes fallible operations through a reusable, immutable
// set of error strategies.
//
// A Handler is a configuration snapshot. Every builder method returns a new
// Handler and leaves the receiver untouched, so a Handler can serve as a
// template for derived ones:
//
//	base := handler.New().Collect(ParseFault, handler.Type[*json.SyntaxError]())
//	lenient := base.Ignore(io.EOF).Default(0)
//
// Try invokes the operation and normalizes its outcome: a returned or
// raised dfault.Fault, a returned error, a panic, or a plain value. Failure
// outcomes then go through the strategies in a fixed order:
//
//  1. retry: re-invoke while the outcome matches a Retry rule;
//  2. log: record the failure (debug mode, or when a sink is configured);
//  3. throw: return the failure as an error, unchanged;
//  4. collect: convert the failure to a different Fault;
//  5. ignore: replace the failure with nil;
//  6. uncaught: an error that is neither collected nor ignored becomes
//     dfault.UncaughtException;
//  7. default: replace nil or a Fault with a registered value.
//
// The final value goes to the OnFailure callback when it is a Fault, to
// OnSuccess otherwise. A failing callback is reported as a HandlerFault.
package handler
