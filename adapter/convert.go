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

// Package adapter converts errors into the transport-facing shapes of
// package apis.
package adapter

import (
	"errors"
	"sort"

	"dirpx.dev/dfault"
	"dirpx.dev/dfault/apis"
	"dirpx.dev/dfault/mapper"
	"dirpx.dev/dfault/message"
	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

// ToView converts err into a public ErrorView.
//
// Conversion, first match wins:
//
//  1. an error implementing apis.ViewProvider renders itself;
//  2. a bare dfault.Fault returned as an error;
//  3. the first dfault.Exceptable in the chain, with its caller context;
//  4. a foreign apis.NamedError and/or apis.ClassifiedError;
//  5. anything else is wrapped as a StdFault runtime_error (dfault.Wrap).
//
// Details of an apis.DetailedError in the chain are added to views built in
// steps 2 to 5. No redaction is performed: the caller decides what is safe
// to expose.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) {
		return vp.ErrorView()
	}

	view := baseView(err)
	var de apis.DetailedError
	if errors.As(err, &de) {
		if ds := de.ErrorDetails(); len(ds) > 0 {
			view.Details = append([]apis.Detail(nil), ds...)
		}
	}
	return view
}

func baseView(err error) apis.ErrorView {
	if f, ok := err.(dfault.Fault); ok && dfault.Acceptable(f) {
		return apis.ErrorView{Fault: f.Name(), Variant: f.Variant().String(), Message: f.Message(nil)}
	}
	var x *dfault.Exceptable
	if errors.As(err, &x) {
		return exceptableView(x)
	}
	var ne apis.NamedError
	var ce apis.ClassifiedError
	named, classified := errors.As(err, &ne), errors.As(err, &ce)
	if named || classified {
		v := apis.ErrorView{Message: err.Error(), Variant: variant.RuntimeError.String()}
		if named {
			v.Fault = ne.ErrorFault()
		}
		if classified {
			v.Variant = ce.ErrorVariant()
		}
		return v
	}
	return exceptableView(dfault.Wrap(err, variant.RuntimeError))
}

func exceptableView(x *dfault.Exceptable) apis.ErrorView {
	v := apis.ErrorView{
		Fault:   x.Fault().Name(),
		Variant: x.Variant().String(),
		Message: x.Error(),
	}
	for k, val := range x.Context() {
		if dfault.IsProvenanceKey(k) {
			continue
		}
		if v.Context == nil {
			v.Context = make(map[string]string)
		}
		v.Context[k] = message.Value(val)
	}
	return v
}

// Classify returns the variant and fault name ToView would report for err.
// Unparsable values come back as variant.Empty and name.Empty, which every
// Mapper resolves to its fallback.
func Classify(err error) (variant.Variant, name.Name) {
	view := ToView(err)
	v, verr := variant.Parse(view.Variant)
	if verr != nil {
		v = variant.Empty
	}
	n, nerr := name.Parse(view.Fault)
	if nerr != nil {
		n = name.Empty
	}
	return v, n
}

// Status resolves the transport statuses of err with m, or with
// mapper.Default when m is nil.
func Status(err error, m apis.Mapper) apis.Status {
	if m == nil {
		m = mapper.Default()
	}
	v, n := Classify(err)
	return m.Status(v, n)
}

// ToDescriptor describes a declared fault together with its resolved
// transport statuses. A nil m skips status resolution.
func ToDescriptor(f dfault.Fault, m apis.Mapper) apis.ErrorDescriptor {
	if !dfault.Acceptable(f) {
		return apis.ErrorDescriptor{}
	}
	d := apis.ErrorDescriptor{
		Fault:   f.Name(),
		Variant: f.Variant().String(),
		Family:  f.Variant().Family().String(),
	}
	if c, ok := f.(*dfault.Case); ok {
		d.Template = c.Template()
		d.MessageKey = c.MessageKey()
	}
	if m != nil {
		st := m.Status(f.Variant(), name.Name(f.Name()))
		d.HTTPStatus = st.HTTP
		d.GRPCCode = int(st.GRPC)
	}
	return d
}

// ToDescriptors describes every case of the given taxonomies, sorted by
// fault name.
func ToDescriptors(m apis.Mapper, ts ...*dfault.Taxonomy) []apis.ErrorDescriptor {
	var out []apis.ErrorDescriptor
	for _, t := range ts {
		for _, c := range t.Cases() {
			out = append(out, ToDescriptor(c, m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fault < out[j].Fault })
	return out
}
