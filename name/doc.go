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

// Package name defines qualified fault names and the dotted message keys
// derived from them.
//
// A fault name identifies one case of a fault taxonomy. It is qualified by
// the taxonomy that declares it, so it is globally unique within a program:
//
//   - "dfault.ExceptableFault.UnknownFault"
//   - "app.ParseFault.Syntax"
//   - "billing.InvoiceFault.Overdue"
//
// The same dotted form is used as a message key: message bundles are nested
// maps, and each segment of a key selects one level of nesting. Segments are
// Go-style identifiers, so case is preserved.
package name
