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

// Package grpcx maps dfault errors onto gRPC statuses.
//
// Server interceptors convert recognized errors into a status whose code is
// resolved by an apis.Mapper and whose details carry a
// google.rpc.ErrorInfo (Reason = fault name, Domain = variant, Metadata =
// rendered caller context) and, for errors with field details, a
// google.rpc.BadRequest. Clients recover the view with ViewFromError.
package grpcx

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/adapter"
	"dirpx.dev/dfault/apis"
)

// MetaFn extracts extra ErrorInfo metadata (request id, trace id, ...) from
// the request context and the error. Keys it returns win over keys of the
// error's own context.
type MetaFn func(ctx context.Context, err error) map[string]string

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that turns
// dfault errors into gRPC statuses with ErrorInfo details.
//
// Errors that already carry a gRPC status, and errors dfault does not
// recognize, are returned unchanged. A nil m uses mapper.Default; metaFn
// may be nil.
func UnaryServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, Convert(ctx, err, m, metaFn)
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor.
func StreamServerInterceptor(m apis.Mapper, metaFn MetaFn) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		err := handler(srv, ss)
		if err == nil {
			return nil
		}
		return Convert(ss.Context(), err, m, metaFn)
	}
}

// Convert returns err as a gRPC status error. See UnaryServerInterceptor for
// which errors are converted.
func Convert(ctx context.Context, err error, m apis.Mapper, metaFn MetaFn) error {
	if err == nil || !recognized(err) {
		return err
	}
	if _, ok := err.(interface{ GRPCStatus() *gstatus.Status }); ok {
		return err
	}

	st := adapter.Status(err, m)
	view := adapter.ToView(err)

	md := make(map[string]string, len(view.Context))
	for k, v := range view.Context {
		md[k] = v
	}
	if metaFn != nil {
		for k, v := range metaFn(ctx, err) {
			md[k] = v
		}
	}

	details := []proto.Message{&errdetails.ErrorInfo{
		Reason:   view.Fault,
		Domain:   view.Variant,
		Metadata: md,
	}}
	if br := badRequest(view.Details); br != nil {
		details = append(details, br)
	}

	p := gstatus.New(st.GRPC, view.Message).Proto()
	for _, d := range details {
		a, aerr := anypb.New(d)
		if aerr != nil {
			continue // a detail that fails to marshal is dropped
		}
		p.Details = append(p.Details, a)
	}
	return gstatus.FromProto(p).Err()
}

// recognized reports whether err is, or wraps, something dfault can
// describe.
func recognized(err error) bool {
	if _, ok := err.(dfault.Fault); ok {
		return true
	}
	var (
		x  *dfault.Exceptable
		vp apis.ViewProvider
		ne apis.NamedError
		ce apis.ClassifiedError
	)
	return errors.As(err, &x) || errors.As(err, &vp) || errors.As(err, &ne) || errors.As(err, &ce)
}

func badRequest(ds []apis.Detail) *errdetails.BadRequest {
	var br *errdetails.BadRequest
	for _, d := range ds {
		if d.Field == "" {
			continue
		}
		if br == nil {
			br = &errdetails.BadRequest{}
		}
		desc := d.Reason
		if desc == "" {
			desc = d.Type
		}
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       d.Field,
			Description: desc,
		})
	}
	return br
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo detail out of a gRPC
// error, if present.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, a := range st.Proto().GetDetails() {
		info := &errdetails.ErrorInfo{}
		if !a.MessageIs(info) {
			continue
		}
		if a.UnmarshalTo(info) == nil {
			return info, true
		}
	}
	return nil, false
}

// ViewFromError rebuilds the apis.ErrorView a server sent through Convert.
// It reports false for errors without an ErrorInfo detail.
func ViewFromError(err error) (apis.ErrorView, bool) {
	info, ok := ExtractErrorInfo(err)
	if !ok {
		return apis.ErrorView{}, false
	}
	st, _ := gstatus.FromError(err)
	view := apis.ErrorView{
		Fault:   info.GetReason(),
		Variant: info.GetDomain(),
		Message: st.Message(),
	}
	if md := info.GetMetadata(); len(md) > 0 {
		view.Context = make(map[string]string, len(md))
		for k, v := range md {
			view.Context[k] = v
		}
	}
	for _, a := range st.Proto().GetDetails() {
		br := &errdetails.BadRequest{}
		if !a.MessageIs(br) || a.UnmarshalTo(br) != nil {
			continue
		}
		for _, fv := range br.GetFieldViolations() {
			view.Details = append(view.Details, apis.Detail{Type: "field", Field: fv.GetField(), Reason: fv.GetDescription()})
		}
	}
	return view, true
}
