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

// Package httpx writes dfault errors as JSON HTTP responses.
package httpx

import (
	"net/http"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/dfault/adapter"
	"dirpx.dev/dfault/apis"
)

// Meta carries extra context the HTTP layer adds on top of the error view.
// All fields are optional and typically come from request context, headers
// or rate-limiter output.
type Meta struct {
	Correlation       string
	TraceID           string
	SpanID            string
	RetryAfterSeconds int32
}

// Writer turns errors into HTTP responses using the provided status mapper.
// A zero Writer uses mapper.Default.
type Writer struct {
	Mapper apis.Mapper
}

// Write serializes the error view of err and writes it to rw. The HTTP
// status is resolved via the Mapper. A nil err writes nothing.
//
// No automatic redaction or filtering is performed: whatever is present in
// the error and Meta is exposed as-is.
func (w Writer) Write(rw http.ResponseWriter, err error, meta Meta) {
	if err == nil {
		return
	}
	st := adapter.Status(err, w.Mapper)
	body := Body(adapter.ToView(err), meta)

	rw.Header().Set("Content-Type", "application/json")
	if meta.RetryAfterSeconds > 0 {
		rw.Header().Set("Retry-After", strconv.Itoa(int(meta.RetryAfterSeconds)))
	}
	rw.WriteHeader(st.HTTP)

	// protojson renders the well-known Struct type as a plain JSON object.
	b, merr := protojson.MarshalOptions{EmitUnpopulated: false}.Marshal(body)
	if merr != nil {
		return
	}
	_, _ = rw.Write(b)
}

// HandlerFunc is an HTTP handler that reports failures by returning them.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap adapts fn to http.Handler, writing any returned error with w. metaFn
// may be nil.
func (w Writer) Wrap(fn HandlerFunc, metaFn func(*http.Request) Meta) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		err := fn(rw, r)
		if err == nil {
			return
		}
		var meta Meta
		if metaFn != nil {
			meta = metaFn(r)
		}
		w.Write(rw, err, meta)
	})
}

// Body builds the JSON body for view as a protobuf Struct.
func Body(view apis.ErrorView, meta Meta) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"fault":   structpb.NewStringValue(view.Fault),
		"variant": structpb.NewStringValue(view.Variant),
	}
	if view.Message != "" {
		fields["message"] = structpb.NewStringValue(view.Message)
	}
	if len(view.Context) > 0 {
		ctx := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(view.Context))}
		for k, v := range view.Context {
			ctx.Fields[k] = structpb.NewStringValue(v)
		}
		fields["context"] = structpb.NewStructValue(ctx)
	}
	if len(view.Details) > 0 {
		list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(view.Details))}
		for _, d := range view.Details {
			list.Values = append(list.Values, structpb.NewStructValue(detail(d)))
		}
		fields["details"] = structpb.NewListValue(list)
	}
	setString(fields, "correlation", meta.Correlation)
	setString(fields, "trace_id", meta.TraceID)
	setString(fields, "span_id", meta.SpanID)
	if meta.RetryAfterSeconds > 0 {
		fields["retry_after_seconds"] = structpb.NewNumberValue(float64(meta.RetryAfterSeconds))
	}
	return &structpb.Struct{Fields: fields}
}

func detail(d apis.Detail) *structpb.Struct {
	fields := make(map[string]*structpb.Value, 4)
	setString(fields, "type", d.Type)
	setString(fields, "field", d.Field)
	setString(fields, "reason", d.Reason)
	if len(d.Info) > 0 {
		info := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(d.Info))}
		for k, v := range d.Info {
			info.Fields[k] = structpb.NewStringValue(v)
		}
		fields["info"] = structpb.NewStructValue(info)
	}
	return &structpb.Struct{Fields: fields}
}

func setString(fields map[string]*structpb.Value, k, v string) {
	if v != "" {
		fields[k] = structpb.NewStringValue(v)
	}
}
