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

// Package debuglog records the events a handler deals with: faults, errors,
// error information and plain debug messages.
//
// Entries are built with From, which accepts any value and never fails:
// unsupported input becomes an UnacceptableLogMessage fault entry, so a
// logging mistake never hides the problem that was being logged.
//
// A Log is an append-only, goroutine-safe record of entries. Sinks forward
// entries elsewhere; SlogSink writes them to a *slog.Logger.
package debuglog
