// Package batch drives the sequential download-then-transcribe loop over a
// work-item manifest.
//
// The processor is strictly single-threaded: each external tool invocation
// blocks until the tool exits, and items are handled in manifest order within
// the selected index range. Failures are contained per item; the only fatal
// errors are the upfront precondition checks. Artifact presence on disk is
// the sole resumability ledger, which makes re-running a batch after an
// interruption cheap.
package batch
