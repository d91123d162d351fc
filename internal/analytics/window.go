// Package analytics turns financial document records into time-bucketed
// aggregates with variant faceting and top-N extraction. The whole report is
// derived, read-only and request-scoped: nothing here is cached or persisted.
package analytics

import "time"

// Window is the backward reporting window: monthsBack contiguous calendar
// months ending with the current one. End is the first instant of the
// current month; EndExclusive the first instant of the month after it.
type Window struct {
	Start        time.Time
	End          time.Time
	EndExclusive time.Time
	MonthsBack   int
}

// ForwardWindow anchors the "hypothesized upcoming" facet: from today to
// twelve months out.
type ForwardWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow computes the backward window for now, clamping monthsBack
// to at least one month.
func ResolveWindow(now time.Time, monthsBack int) Window {
	if monthsBack < 1 {
		monthsBack = 1
	}
	end := firstOfMonth(now)
	return Window{
		Start:        end.AddDate(0, -(monthsBack - 1), 0),
		End:          end,
		EndExclusive: end.AddDate(0, 1, 0),
		MonthsBack:   monthsBack,
	}
}

// ResolveForward computes the forward window for now.
func ResolveForward(now time.Time) ForwardWindow {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return ForwardWindow{Start: today, End: today.AddDate(1, 0, 0)}
}

// Contains reports whether t falls inside [Start, EndExclusive).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.EndExclusive)
}

// Contains reports whether t falls inside [Start, End).
func (w ForwardWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
