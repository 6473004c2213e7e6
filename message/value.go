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

package message

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Value renders a context value for substitution into a template.
//
// Rules:
//   - nil renders as "null";
//   - strings render as-is; numbers and booleans in their Go literal form;
//   - time.Time renders as RFC 3339 with nanoseconds;
//   - errors render as "<type>:<Error()>", other fmt.Stringers as
//     "<type>:<String()>";
//   - maps and slices render as canonical JSON (RFC 8785);
//   - structs render as "<type>:" followed by canonical JSON;
//   - anything that cannot be encoded renders as its Go type name.
//
// Value never fails.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case error:
		return fmt.Sprintf("%T:%s", x, x.Error())
	case fmt.Stringer:
		return fmt.Sprintf("%T:%s", x, x.String())
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		if s, ok := canonical(v); ok {
			return s
		}
	case reflect.Struct:
		if s, ok := canonical(v); ok {
			return fmt.Sprintf("%T:%s", v, s)
		}
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	}
	return fmt.Sprintf("%T", v)
}

// canonical encodes v as canonical JSON.
func canonical(v any) (string, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return "", false
	}
	return string(out), true
}
