// Package preflight verifies the runtime requirements of a batch run before
// any work item is touched: artifact directories must be writable and the
// external tools resolvable. Any failed check aborts the whole run.
package preflight
