package restate

import (
	"errors"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/thushan/restate-client/internal/core/domain"
)

// Stats is a point in time view of a client's calls
type Stats struct {
	Calls       int64
	Failures    int64
	Rejected    int64 // failed argument validation, never sent
	Unavailable int64 // no session could be built
}

type callStats struct {
	calls       *xsync.Counter
	failures    *xsync.Counter
	rejected    *xsync.Counter
	unavailable *xsync.Counter
}

func newCallStats() *callStats {
	return &callStats{
		calls:       xsync.NewCounter(),
		failures:    xsync.NewCounter(),
		rejected:    xsync.NewCounter(),
		unavailable: xsync.NewCounter(),
	}
}

func (s *callStats) track(err error) error {
	s.calls.Inc()
	switch {
	case err == nil:
	case domain.IsValidation(err):
		s.rejected.Inc()
	default:
		s.failures.Inc()
		if errors.Is(err, domain.ErrSessionUnavailable) {
			s.unavailable.Inc()
		}
	}
	return err
}

func (s *callStats) trackResult(result *Result, err error) (*Result, error) {
	return result, s.track(err)
}

func (s *callStats) snapshot() Stats {
	return Stats{
		Calls:       s.calls.Value(),
		Failures:    s.failures.Value(),
		Rejected:    s.rejected.Value(),
		Unavailable: s.unavailable.Value(),
	}
}
