package wager

import (
	"context"
	"errors"
)

// ResultReporter receives every settled Result, e.g. to persist it or to
// update aggregate statistics.
type ResultReporter interface {
	Report(ctx context.Context, res Result) error
}

type ReporterFunc func(ctx context.Context, res Result) error

func (f ReporterFunc) Report(ctx context.Context, res Result) error { return f(ctx, res) }

type multiReporter []ResultReporter

// Reporters fans a Result out to every non-nil reporter in order. All
// reporters run; their errors are joined.
func Reporters(rs ...ResultReporter) ResultReporter {
	out := make(multiReporter, 0, len(rs))

	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}

	return out
}

func (m multiReporter) Report(ctx context.Context, res Result) error {
	var errs []error

	for _, r := range m {
		err := r.Report(ctx, res)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
