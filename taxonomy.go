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
	"fmt"

	"dirpx.dev/dfault/message"
	"dirpx.dev/dfault/name"
	"dirpx.dev/dfault/variant"
)

// Taxonomy is a closed set of fault cases sharing a qualifier and message
// configuration.
//
// Cases are declared with Case during package initialization. A Taxonomy
// must not be extended once its cases are in use; after declaration it is
// safe for concurrent use.
type Taxonomy struct {
	qualifier name.Name
	cases     []*Case
	byName    map[name.Name]*Case

	formatter message.Formatter
	locale    string
	keyFn     func(*Case) string
}

// NewTaxonomy declares a taxonomy. The qualifier prefixes every case name,
// e.g. "app.ParseFault". It panics on a malformed qualifier.
func NewTaxonomy(qualifier string, opts ...TaxonomyOption) *Taxonomy {
	q, err := name.Parse(qualifier)
	if err != nil {
		panic(fmt.Sprintf("dfault: taxonomy %q: %v", qualifier, err))
	}
	t := &Taxonomy{qualifier: q, byName: make(map[name.Name]*Case)}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Case declares a new case. It panics when caseName is malformed or already
// declared, or when v is not a known variant: both are programmer errors at
// declaration time.
//
// template is the built-in message template; it may be empty, in which case
// messages come from the formatter or degrade to the bare name.
func (t *Taxonomy) Case(caseName string, v variant.Variant, template string) *Case {
	n, err := name.Qualify(t.qualifier.String(), caseName)
	if err != nil {
		panic(fmt.Sprintf("dfault: case %q of %s: %v", caseName, t.qualifier, err))
	}
	if err := variant.Validate(v); err != nil {
		panic(fmt.Sprintf("dfault: case %s: %v", n, err))
	}
	if _, dup := t.byName[n]; dup {
		panic(fmt.Sprintf("dfault: case %s declared twice", n))
	}
	c := &Case{tax: t, name: n, variant: v, template: template}
	t.cases = append(t.cases, c)
	t.byName[n] = c
	return c
}

// Qualifier returns the taxonomy qualifier.
func (t *Taxonomy) Qualifier() string { return t.qualifier.String() }

// Cases returns the declared cases in declaration order.
func (t *Taxonomy) Cases() []*Case {
	out := make([]*Case, len(t.cases))
	copy(out, t.cases)
	return out
}

// Lookup finds a case by qualified name, or by bare case name.
func (t *Taxonomy) Lookup(s string) (*Case, bool) {
	n := name.Name(name.Normalize(s))
	if c, ok := t.byName[n]; ok {
		return c, true
	}
	if q, err := name.Qualify(t.qualifier.String(), n.String()); err == nil {
		c, ok := t.byName[q]
		return c, ok
	}
	return nil, false
}

// From returns the case named s. An undeclared name is reported as an
// UnknownFault Exceptable carrying {"name": s}.
func (t *Taxonomy) From(s string) (*Case, error) {
	if c, ok := t.Lookup(s); ok {
		return c, nil
	}
	return nil, newExceptable(UnknownFault, Context{"name": s}, nil)
}

// From looks s up in each of ts, then in the built-in taxonomies.
func From(s string, ts ...*Taxonomy) (Fault, error) {
	all := make([]*Taxonomy, 0, len(ts)+2)
	all = append(append(all, ts...), ExceptableFault, StdFault)
	for _, t := range all {
		if t == nil {
			continue
		}
		if c, ok := t.Lookup(s); ok {
			return c, nil
		}
	}
	return nil, newExceptable(UnknownFault, Context{"name": s}, nil)
}

// Case is one declared fault. Cases are compared by pointer identity.
type Case struct {
	tax      *Taxonomy
	name     name.Name
	variant  variant.Variant
	template string
}

var _ Fault = (*Case)(nil)

// Error implements error; it returns the qualified name.
func (c *Case) Error() string { return c.Name() }

// Name returns the qualified case name.
func (c *Case) Name() string {
	if c == nil {
		return ""
	}
	return c.name.String()
}

// CaseName returns the unqualified case name, e.g. "Syntax".
func (c *Case) CaseName() string { return c.name.Base() }

// Taxonomy returns the declaring taxonomy.
func (c *Case) Taxonomy() *Taxonomy { return c.tax }

// Variant returns the Exceptable classification of the case.
func (c *Case) Variant() variant.Variant { return c.variant }

// Template returns the built-in message template.
func (c *Case) Template() string { return c.template }

// MessageKey returns the key used to look up the case's message.
func (c *Case) MessageKey() string {
	if c.tax != nil && c.tax.keyFn != nil {
		if k := c.tax.keyFn(c); k != "" {
			return k
		}
	}
	return c.Name()
}

// Message returns "<name>: <text>" or, when no text resolves, "<name>".
//
// Text is resolved by the taxonomy formatter first, then from the case
// template. Either source only applies when ctx provides every token, so a
// half-filled message is never produced.
func (c *Case) Message(ctx Context) string {
	if text, ok := c.text(ctx); ok {
		return c.Name() + ": " + text
	}
	return c.Name()
}

// ToExceptable builds a new Exceptable for c.
func (c *Case) ToExceptable(ctx Context, previous error) *Exceptable {
	return NewExceptable(c, ctx, previous)
}

func (c *Case) text(ctx Context) (string, bool) {
	if c.tax != nil && c.tax.formatter != nil {
		if s, ok := resolve(c.tax.formatter, c.MessageKey(), ctx, c.tax.locale); ok {
			return s, true
		}
	}
	if c.template == "" {
		return "", false
	}
	s, err := message.FormatStrict(c.template, ctx)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// resolve asks the formatter for text. A TemplateSource is formatted
// strictly; text from any other formatter is rejected when it still holds a
// token ctx does not provide. Errors, empty results and panics all mean
// "no message".
func resolve(f message.Formatter, key string, ctx Context, locale string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			s, ok = "", false
		}
	}()
	var err error
	if src, isSrc := f.(message.TemplateSource); isSrc {
		var tmpl string
		if tmpl, err = src.Template(key, locale); err == nil {
			s, err = message.FormatStrict(tmpl, ctx)
		}
	} else {
		s, err = f.Resolve(key, ctx, locale)
		for _, tok := range message.Tokens(s) {
			if _, has := ctx[tok]; !has {
				return "", false
			}
		}
	}
	return s, err == nil && s != ""
}
