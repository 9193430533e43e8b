/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"net/http"
	"regexp"
	"strings"
)

// Params holds the identifiers interpolated into a descriptor's templates.
// Values are substituted verbatim; no escaping is applied.
type Params map[string]string

// Descriptor maps one logical operation to an HTTP request shape.
type Descriptor struct {
	Operation string
	Method    string
	// Path is the URL path template, e.g. "/tenants/{name}".
	Path string
	// Query is the raw query template, e.g. "path={path}". Empty means no query.
	Query string
	// OptionalQuery renders Query only when every placeholder in it has a value.
	OptionalQuery bool
	// Headers are set on the request in addition to the transport defaults.
	Headers map[string]string
	// HasBody marks operations that send a request body.
	HasBody bool
}

// Request is a fully rendered request ready for a Transport.
type Request struct {
	Operation string
	Method    string
	Path      string
	RawQuery  string
	Header    http.Header
	Body      any
}

// URL returns the relative request URL, path plus the raw query when present.
func (r *Request) URL() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9]*)\}`)

// placeholders returns the identifier names referenced by the templates, in order.
func placeholders(tmpls ...string) []string {
	var names []string
	for _, tmpl := range tmpls {
		for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
			names = append(names, m[1])
		}
	}
	return names
}

// Request renders the descriptor with the given params. The body is dropped for
// descriptors that do not carry one.
func (d Descriptor) Request(params Params, body any) *Request {
	req := &Request{
		Operation: d.Operation,
		Method:    d.Method,
		Path:      expand(d.Path, params),
		Header:    http.Header{},
	}
	if d.Query != "" && (!d.OptionalQuery || params.hasAll(d.Query)) {
		req.RawQuery = expand(d.Query, params)
	}
	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if d.HasBody {
		req.Body = body
	}
	return req
}

func (p Params) hasAll(tmpl string) bool {
	for _, name := range placeholders(tmpl) {
		if _, ok := p[name]; !ok {
			return false
		}
	}
	return true
}

// expand substitutes every {name} in tmpl in a single pass so that values
// containing braces are never expanded again.
func expand(tmpl string, params Params) string {
	if len(params) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v, including the zero value of T.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}
