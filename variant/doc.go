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

// Package variant provides the closed classification taxonomy that decides
// which shape of Exceptable a fault materializes as.
//
// A "variant" is the kind of error a fault case stands for, such as
// "logic_error", "runtime_error" or "invalid_argument". Variants are:
//
//   - short and stable;
//   - lowercased, underscore-separated;
//   - organized in two families: logic errors (the program is wrong) and
//     runtime errors (the world is wrong);
//   - closed: only the values declared in this package are accepted.
//
// Transport mappers use the variant (and its family) to choose default
// HTTP and gRPC statuses.
package variant
