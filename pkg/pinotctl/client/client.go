/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"bytes"
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Transport executes rendered requests against the controller. It owns the
// base URL, default headers, authentication and connection settings.
type Transport interface {
	Do(ctx context.Context, req *Request) (*RawResponse, error)
}

// RawResponse is the undecoded result of a Transport call.
type RawResponse struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Response is the typed envelope returned by every operation.
type Response[T any] struct {
	StatusCode int
	Status     string
	Header     http.Header
	Data       T
	Raw        []byte
}

// DecodeError is returned when a successful response body does not match the
// declared shape. The undecoded response is kept for inspection.
type DecodeError struct {
	Operation string
	Response  *RawResponse
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type Client struct {
	transport Transport
}

func New(transport Transport) (*Client, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	return &Client{transport: transport}, nil
}

func send[T any](ctx context.Context, c *Client, req *Request) (*Response[T], error) {
	raw, err := c.transport.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: transport returned no response", req.Operation)
	}
	resp := &Response[T]{
		StatusCode: raw.StatusCode,
		Status:     raw.Status,
		Header:     raw.Header,
		Raw:        raw.Body,
	}
	if err := decodeBody(raw.Body, &resp.Data); err != nil {
		return nil, &DecodeError{Operation: req.Operation, Response: raw, Err: err}
	}
	return resp, nil
}

func decodeBody(body []byte, out any) error {
	if tu, ok := out.(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText(body)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
