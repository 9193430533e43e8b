// Package mockcontroller serves the controller REST routes used by pinotctl
// from in-memory fixtures. It backs integration tests and local demos.
package mockcontroller
