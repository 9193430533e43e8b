// Package ratelimit throttles HTTP clients of the mock controller, keyed by
// client address.
package ratelimit
