package stats

import (
	"fmt"
	"time"

	"github.com/sadopc/gameline/internal/model"
)

type Mode int

const (
	ModeMonthly Mode = iota
	ModeYearly
	ModeGlobal
)

func (m Mode) String() string {
	switch m {
	case ModeMonthly:
		return "Monthly"
	case ModeYearly:
		return "Yearly"
	case ModeGlobal:
		return "Global"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Scope is the time window stats are computed over.
type Scope struct {
	Mode  Mode
	Year  int
	Month time.Month // only meaningful for ModeMonthly
}

func Monthly(year int, month time.Month) Scope {
	return Scope{Mode: ModeMonthly, Year: year, Month: month}
}

func Yearly(year int) Scope {
	return Scope{Mode: ModeYearly, Year: year}
}

func Global() Scope {
	return Scope{Mode: ModeGlobal}
}

// ScopeFor returns the scope of the given mode that contains now.
func ScopeFor(mode Mode, now time.Time) Scope {
	switch mode {
	case ModeMonthly:
		return Monthly(now.Year(), now.Month())
	case ModeYearly:
		return Yearly(now.Year())
	default:
		return Global()
	}
}

// Contains reports whether e falls inside the scope. Events with an
// unreadable date only belong to the global scope.
func (s Scope) Contains(e model.TimelineEvent) bool {
	if s.Mode == ModeGlobal {
		return true
	}
	d, ok := model.ParseDay(e.Date)
	if !ok || d.Year != s.Year {
		return false
	}
	return s.Mode == ModeYearly || d.Month == s.Month
}

// Next moves the window forward one period. Global scopes are unchanged.
func (s Scope) Next() Scope { return s.shift(1) }

// Prev moves the window back one period.
func (s Scope) Prev() Scope { return s.shift(-1) }

func (s Scope) shift(n int) Scope {
	switch s.Mode {
	case ModeMonthly:
		t := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
		return Monthly(t.Year(), t.Month())
	case ModeYearly:
		return Yearly(s.Year + n)
	}
	return s
}

// WithMode switches the mode while keeping the current year and month.
func (s Scope) WithMode(m Mode, now time.Time) Scope {
	if s.Mode == ModeGlobal {
		s = ScopeFor(ModeMonthly, now)
	}
	switch m {
	case ModeMonthly:
		if s.Month == 0 {
			s.Month = time.January
		}
		return Monthly(s.Year, s.Month)
	case ModeYearly:
		return Yearly(s.Year)
	}
	return Global()
}

func (s Scope) Label() string {
	switch s.Mode {
	case ModeMonthly:
		return fmt.Sprintf("%s %d", s.Month, s.Year)
	case ModeYearly:
		return fmt.Sprintf("%d", s.Year)
	}
	return "All time"
}
