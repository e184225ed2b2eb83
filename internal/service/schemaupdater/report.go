package schemaupdater

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Result is the outcome of the index swap of a single model.
type Result struct {
	Model  string
	Bucket string
	// Index is the search index the bucket is bound to after a successful swap.
	Index string
	Err   error
}

// Report is the outcome of a synchronization run.
type Report struct {
	RunID   string
	Filter  string
	Started time.Time
	Elapsed time.Duration
	Results []Result
}

// Empty reports whether the run had nothing to do.
func (r *Report) Empty() bool {
	return len(r.Results) == 0
}

// Succeeded returns the results of the models that were swapped.
func (r *Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results of the models that could not be swapped.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// String renders the report for a human operator.
func (r *Report) String() string {
	if r.Empty() {
		return fmt.Sprintf("No models matched %q; nothing was done.", r.Filter)
	}

	var b strings.Builder
	succeeded, failed := r.Succeeded(), r.Failed()
	if len(succeeded) == 0 {
		b.WriteString("Operation failed:")
	} else {
		names := make([]string, len(succeeded))
		for i, res := range succeeded {
			names[i] = res.Model
		}
		fmt.Fprintf(&b, "Schema and index definitions successfully applied for: %s.", strings.Join(names, ", "))
		if len(failed) > 0 {
			b.WriteString("\nFailed:")
		}
	}

	for _, res := range failed {
		fmt.Fprintf(&b, "\n - %s: %v", res.Model, res.Err)
	}

	if len(succeeded) > 0 {
		fmt.Fprintf(&b, "\nOperation took %d secs", int64(math.Round(r.Elapsed.Seconds())))
	}

	return b.String()
}
