// Package removal deletes the roots the walker found. It is
// deliberately the simplest package in the module: unlike the walker,
// deletion needs no ignore-stack, no work-stealing, no stat-ahead — just
// os.RemoveAll per root, with every failure reported and none of them
// aborting the rest, per the error handling design (removal errors are
// always printed and never abort the remaining removals).
package removal

import "os"

// Result records the outcome of removing one root.
type Result struct {
	Path string
	Err  error
}

// Remove deletes every path in roots with os.RemoveAll, continuing past
// failures. onError, if non-nil, is called synchronously for each
// failure as it happens so the caller can log it immediately rather
// than waiting for the whole batch.
func Remove(roots []string, onError func(path string, err error)) []Result {
	results := make([]Result, 0, len(roots))
	for _, path := range roots {
		err := os.RemoveAll(path)
		if err != nil && onError != nil {
			onError(path, err)
		}
		results = append(results, Result{Path: path, Err: err})
	}
	return results
}

// Succeeded reports how many of results completed without error.
func Succeeded(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
		}
	}
	return n
}
