// Package services implements the two pipelines behind the driving
// ports: indexing (load, chunk, embed, upsert) and screening
// (retrieve, assemble context, request analysis). Both run strictly
// sequentially with no internal parallelism.
package services
