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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/apis"
	"dirpx.dev/dfault/mapper"
	"dirpx.dev/dfault/variant"
)

var orderFault = dfault.NewTaxonomy("httpx.test.OrderFault")

var (
	noStock  = orderFault.Case("NoStock", variant.Underflow, "item {sku} is out of stock")
	tooLarge = orderFault.Case("TooLarge", variant.LengthError, "")
)

type fieldsError struct{}

func (fieldsError) Error() string { return "bad order" }
func (fieldsError) ErrorDetails() []apis.Detail {
	return []apis.Detail{{Type: "field", Field: "items", Reason: "too_many", Info: map[string]string{"max": "10"}}}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestWriter_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	x := noStock.ToExceptable(dfault.Context{"sku": "A-1"}, nil)
	Writer{}.Write(rec, x, Meta{Correlation: "c-1", RetryAfterSeconds: 30})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("Retry-After = %q", got)
	}
	want := map[string]any{
		"fault":               "httpx.test.OrderFault.NoStock",
		"variant":             "underflow",
		"message":             "httpx.test.OrderFault.NoStock: item A-1 is out of stock",
		"context":             map[string]any{"sku": "A-1"},
		"correlation":         "c-1",
		"retry_after_seconds": float64(30),
	}
	if got := decode(t, rec); !reflect.DeepEqual(got, want) {
		t.Fatalf("body = %v, want %v", got, want)
	}
}

func TestWriter_Details(t *testing.T) {
	rec := httptest.NewRecorder()
	err := tooLarge.ToExceptable(nil, fieldsError{})
	Writer{}.Write(rec, err, Meta{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decode(t, rec)
	want := []any{map[string]any{
		"type":   "field",
		"field":  "items",
		"reason": "too_many",
		"info":   map[string]any{"max": "10"},
	}}
	if !reflect.DeepEqual(body["details"], want) {
		t.Fatalf("details = %v, want %v", body["details"], want)
	}
	if _, ok := body["context"]; ok {
		t.Fatalf("provenance keys must not be exposed: %v", body["context"])
	}
}

func TestWriter_MapperAndNil(t *testing.T) {
	m, err := mapper.New(mapper.WithHTTPOverride(tooLarge.Name(), http.StatusRequestEntityTooLarge))
	if err != nil {
		t.Fatalf("mapper.New: %v", err)
	}
	rec := httptest.NewRecorder()
	Writer{Mapper: m}.Write(rec, tooLarge, Meta{})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}

	rec = httptest.NewRecorder()
	Writer{}.Write(rec, nil, Meta{})
	if rec.Body.Len() != 0 || len(rec.Header()) != 0 {
		t.Fatalf("nil error must write nothing")
	}
}

func TestWriter_Wrap(t *testing.T) {
	w := Writer{}
	h := w.Wrap(func(rw http.ResponseWriter, r *http.Request) error {
		if r.URL.Query().Get("fail") == "" {
			rw.WriteHeader(http.StatusNoContent)
			return nil
		}
		return errors.New("db closed")
	}, func(r *http.Request) Meta { return Meta{TraceID: r.Header.Get("X-Trace")} })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders?fail=1", nil)
	req.Header.Set("X-Trace", "t-9")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decode(t, rec)
	if body["fault"] != "dfault.StdFault.RuntimeError" || body["trace_id"] != "t-9" {
		t.Fatalf("body = %v", body)
	}
}
