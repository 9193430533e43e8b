// Package cli parses the mock controller flags. Every flag falls back to a
// MOCK_CONTROLLER_* environment variable.
package cli
