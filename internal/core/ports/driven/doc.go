// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the embedding service, the external
// vector index, the reasoning service and the resumé filesystem source.
package driven
