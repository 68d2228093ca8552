/*
accrual.go - Single-pass accrual simulator

PURPOSE:
  Walks the sorted timeline once, accumulating days served while custody
  is active plus remission credits, and fixes the calendar date at which
  each statutory threshold is crossed:

    progression  -> progressionFraction * totalDays
    release      -> releaseFraction * totalDays
    termination  -> totalDays

CROSSING RULES:
  - Mid-segment crossing (custody active): the date is interpolated by
    adding the shortfall at the previous event to that event's date.
  - Crossing caused by an event's own delta (a credit landing, custody
    resuming): the threshold date is the event's date.
  - Not crossed by the as-of date: the date is PROJECTED forward from
    the as-of date by the remaining shortfall. With zero countable
    episodes every date resolves this way - a valid input, not an error.

  The pass stops early once termination is crossed.

TODAY COUNTERS:
  DaysServedAsOf and RemissionsAsOf recompute the "served so far"
  numbers directly from the episodes, independently of the threshold
  pass. Result carries both views.
*/
package sentence

import (
	"github.com/advocato/penal-engine/legaldate"
)

// Options tunes a simulation run.
type Options struct {
	// IncludeReleaseDay counts the release day itself as a served day
	// when an episode closes.
	IncludeReleaseDay bool

	// Zone resolves "today" when the caller passes a zero as-of date.
	Zone legaldate.Zone
}

type threshold struct {
	days      int
	date      *legaldate.Date
	projected bool
}

func (t *threshold) fix(d legaldate.Date, projected bool) {
	if t.date == nil {
		t.date = &d
		t.projected = projected
	}
}

// Compute runs the simulation for a sentence against its custody
// timeline. The sentence is taken by value and never mutated.
func Compute(s Sentence, episodes []CustodyEpisode, remissions []RemissionCredit, asOf legaldate.Date, opts Options) (Result, error) {
	if len(s.Offenses) == 0 {
		return Result{}, ErrNoOffenses
	}
	if !validRegime(s.Regime) {
		return Result{}, ErrNoRegime
	}
	for _, ep := range episodes {
		if err := ep.Validate(); err != nil {
			return Result{}, err
		}
	}
	for _, rc := range remissions {
		if err := rc.Validate(); err != nil {
			return Result{}, err
		}
	}
	if asOf.IsZero() {
		asOf = legaldate.Today(opts.Zone)
	}

	prog := &threshold{days: s.Progression.Of(s.TotalDays)}
	rel := &threshold{days: s.Release.Of(s.TotalDays)}
	term := &threshold{days: s.TotalDays}
	thresholds := []*threshold{prog, rel, term}

	// Zero-length sentence: every threshold is trivially met now.
	if s.TotalDays <= 0 {
		for _, th := range thresholds {
			th.fix(asOf, false)
		}
	}

	var (
		custody   = 0
		served    = 0
		remission = 0
		prevDate  legaldate.Date
		havePrev  = false
	)

	events := BuildTimeline(episodes, remissions)
	for _, ev := range events {
		if term.date != nil {
			break
		}
		if ev.Date.After(asOf) {
			break // sorted: nothing later can matter
		}

		// Accrue the segment since the previous event while in custody.
		if havePrev && custody > 0 {
			before := served + remission
			served += legaldate.DaysBetween(prevDate, ev.Date)
			if opts.IncludeReleaseDay && ev.Kind == EventEpisodeEnd {
				served++
			}
			total := served + remission
			for _, th := range thresholds {
				if th.date == nil && total >= th.days {
					crossed := prevDate.AddDays(th.days - before)
					if crossed.After(ev.Date) {
						crossed = ev.Date
					}
					th.fix(crossed, false)
				}
			}
		}

		switch ev.Kind {
		case EventEpisodeStart:
			custody++
		case EventEpisodeEnd:
			if custody > 0 {
				custody--
			}
		case EventRemission:
			remission += ev.Delta
		}

		// A delta can cross a threshold on its own (credit landing,
		// custody resuming): the threshold date is the event's date.
		total := served + remission
		for _, th := range thresholds {
			if th.date == nil && total >= th.days {
				th.fix(ev.Date, false)
			}
		}

		prevDate = ev.Date
		havePrev = true
	}

	// Final open segment up to the as-of date.
	if term.date == nil && havePrev && custody > 0 && prevDate.Before(asOf) {
		before := served + remission
		served += legaldate.DaysBetween(prevDate, asOf)
		total := served + remission
		for _, th := range thresholds {
			if th.date == nil && total >= th.days {
				th.fix(prevDate.AddDays(th.days-before), false)
			}
		}
	}

	// Whatever remains uncrossed is projected from the as-of date.
	projected := false
	total := served + remission
	for _, th := range thresholds {
		if th.date == nil {
			th.fix(asOf.AddDays(th.days-total), true)
			projected = true
		}
	}

	servedToday := DaysServedAsOf(episodes, asOf, opts.IncludeReleaseDay)
	remToday := RemissionsAsOf(remissions, asOf)
	totalToday := servedToday + remToday

	return Result{
		TotalDays:              s.TotalDays,
		Regime:                 s.Regime,
		ProgressionFraction:    s.Progression,
		ReleaseFraction:        s.Release,
		ProgressionDate:        prog.date,
		ReleaseDate:            rel.date,
		TerminationDate:        *term.date,
		Projected:              projected,
		DaysServed:             servedToday,
		RemissionDays:          remToday,
		RemainingToProgression: max0(prog.days - totalToday),
		RemainingToTermination: max0(term.days - totalToday),
		Custody:                CustodyStatus(episodes, asOf),
		AsOf:                   asOf,
	}, nil
}

// ComputeQuick is the simplified single-offense entry: it synthesizes
// one offense and one open-ended detention episode covering the days
// already served, and uses the quick fraction table (which diverges
// from the standard one; see fractions.go).
func ComputeQuick(penalty legaldate.Duration, class Classification, regime Regime, daysAlreadyServed int, baseDate legaldate.Date, opts Options) (Result, error) {
	if !validRegime(regime) {
		return Result{}, ErrNoRegime
	}
	fr, err := QuickFractionsFor(class)
	if err != nil {
		return Result{}, err
	}
	if baseDate.IsZero() {
		baseDate = legaldate.Today(opts.Zone)
	}
	if daysAlreadyServed < 0 {
		daysAlreadyServed = 0
	}

	s := Sentence{
		Offenses: []Offense{{
			ID:             "quick",
			Description:    "single offense (quick entry)",
			Penalty:        penalty,
			Classification: class,
		}},
		TotalDays:   penalty.TotalDays(),
		Regime:      regime,
		Progression: fr.Progression,
		Release:     fr.Release,
	}

	episodes := []CustodyEpisode{{
		Start:     baseDate.AddDays(-daysAlreadyServed),
		Type:      EpisodePretrial,
		Countable: true,
		Note:      "synthesized from days already served",
	}}

	return Compute(s, episodes, nil, baseDate, opts)
}

// CustodyStatus reports whether the defendant is in custody at the
// given instant under any countable episode. Episode ends are exclusive:
// on the release day the defendant is already at liberty.
func CustodyStatus(episodes []CustodyEpisode, asOf legaldate.Date) CustodyState {
	for _, ep := range episodes {
		if ep.Covers(asOf) {
			return InCustody
		}
	}
	return AtLiberty
}

// DaysServedAsOf sums custody days across countable episodes clipped at
// the as-of date. Independent of the threshold pass.
func DaysServedAsOf(episodes []CustodyEpisode, asOf legaldate.Date, includeReleaseDay bool) int {
	served := 0
	for _, ep := range episodes {
		if !ep.Countable || ep.Start.After(asOf) {
			continue
		}
		end := asOf
		closed := false
		if ep.End != nil && ep.End.BeforeOrEqual(asOf) {
			end = *ep.End
			closed = true
		}
		served += legaldate.DaysBetween(ep.Start, end)
		if includeReleaseDay && closed {
			served++
		}
	}
	return served
}

// RemissionsAsOf sums credits effective by the as-of date.
func RemissionsAsOf(remissions []RemissionCredit, asOf legaldate.Date) int {
	total := 0
	for _, rc := range remissions {
		if rc.Date.BeforeOrEqual(asOf) {
			total += rc.Days
		}
	}
	return total
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
