// Package cmd implements the pinotctl command tree. Commands resolve a
// controller context from the config file, flags and PINOTCTL_* environment
// variables, build a client over the resty transport and render responses as
// tables, JSON, YAML or templates.
package cmd
