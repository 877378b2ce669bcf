// Package textutil provides small text helpers shared across the pipeline,
// most importantly the filename sanitization used to derive artifact paths
// from video titles.
package textutil
