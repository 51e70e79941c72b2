// Package domain contains the core types for the screening pipeline:
// resumés, chunks, analysis requirements and results. It has no
// dependencies on adapters or external services.
package domain
