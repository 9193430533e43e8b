// Package metrics defines Prometheus metrics for pinotctl, covering controller
// requests issued by the client transport and requests served by the mock
// controller.
package metrics
