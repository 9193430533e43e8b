// Package client implements the typed resource client for the cluster
// controller REST API. Every administrative operation is described by a
// static Descriptor and executed through an injected Transport; responses are
// returned as typed envelopes without further interpretation.
package client
