package dispatcher

import (
	"github.com/arthur-debert/marionette/pkg/logging"
	"github.com/arthur-debert/marionette/pkg/snapshot"
	"github.com/arthur-debert/marionette/pkg/values"
)

// Result records the outcome of one path within a batch application
type Result struct {
	Path  string
	Value values.Value
	OK    bool
	Err   error
}

// Report summarizes a batch application. Partial application is an accepted
// outcome, not an error state.
type Report struct {
	Results []Result
}

// Applied counts the paths that were dispatched successfully
func (r Report) Applied() int {
	n := 0
	for _, res := range r.Results {
		if res.OK {
			n++
		}
	}
	return n
}

// Rejected counts the paths that were not applied
func (r Report) Rejected() int {
	return len(r.Results) - r.Applied()
}

// Apply dispatches every snapshot entry independently. A rejection on one
// path does not prevent application of subsequent paths; there is no
// atomicity and no rollback.
func (d *Dispatcher) Apply(snap *snapshot.Snapshot) Report {
	logger := logging.GetLogger("dispatcher")

	report := Report{Results: make([]Result, 0, snap.Len())}
	for _, path := range snap.Paths() {
		v, _ := snap.Value(path)
		err := d.DispatchErr(path, v)
		report.Results = append(report.Results, Result{
			Path:  path,
			Value: v,
			OK:    err == nil,
			Err:   err,
		})
	}

	logger.Info().
		Int("applied", report.Applied()).
		Int("rejected", report.Rejected()).
		Msg("Snapshot applied")
	return report
}
