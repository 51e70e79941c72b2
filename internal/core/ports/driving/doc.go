// Package driving provides interfaces for the application's entry
// points (primary/inbound ports): the indexing pipeline and the
// screening pipeline, consumed by the CLI and the TUI.
package driving
