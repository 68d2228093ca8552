/*
Package sentence implements the criminal sentence execution calculator.

PURPOSE:
  Given a sentence (one or more offenses), a timeline of custody episodes
  and remission credits, compute the legally significant dates of the
  execution: progression to a less restrictive regime, conditional
  release eligibility (livramento condicional) and sentence termination.

KEY CONCEPTS IN THIS FILE (types.go):
  - Offense: one penalized act with its statutory duration and
    classification (primary, repeat offender, heinous variants)
  - Sentence: the immutable aggregate passed to the simulator; carries
    the total day count and the MOST RESTRICTIVE fractions across all
    offenses
  - CustodyEpisode: a continuous custody interval, open-ended while the
    defendant is still detained
  - RemissionCredit: day credits earned through work/study (remição)
  - Result: every computed date and counter for one as-of instant

DESIGN PRINCIPLES:
  1. Immutability: Sentence and Result are built once, never mutated
  2. Determinism: no clock reads; the caller supplies the as-of date
  3. Day granularity: all arithmetic in whole days (legaldate.Date)

SEE ALSO:
  - fractions.go: statutory fraction tables
  - timeline.go: signed point-event construction
  - accrual.go: the single-pass simulator
*/
package sentence

import (
	"fmt"

	"github.com/advocato/penal-engine/legaldate"
)

// =============================================================================
// CLASSIFICATION & REGIME
// =============================================================================

// Classification tags an offense for fraction lookup.
type Classification string

const (
	ClassPrimary        Classification = "primary"
	ClassRepeat         Classification = "repeat"
	ClassHeinousPrimary Classification = "heinous_primary"
	ClassHeinousRepeat  Classification = "heinous_repeat"
)

// Regime is the initial prison regime fixed in the judgment.
type Regime string

const (
	RegimeClosed   Regime = "closed"
	RegimeSemiOpen Regime = "semi_open"
	RegimeOpen     Regime = "open"
)

func validRegime(r Regime) bool {
	return r == RegimeClosed || r == RegimeSemiOpen || r == RegimeOpen
}

// =============================================================================
// OFFENSE & SENTENCE
// =============================================================================

// Offense is one penalized act within a judgment. Immutable once added
// to a Sentence.
type Offense struct {
	ID             string
	Description    string
	Article        string
	Penalty        legaldate.Duration
	Classification Classification
	Notes          string
}

// CaseInfo is optional process metadata carried into the memorandum.
type CaseInfo struct {
	CaseNumber    string
	Court         string
	Judge         string
	FinalJudgment *legaldate.Date
}

// Sentence aggregates the offenses of a single judgment. Build it with
// NewSentence and treat it as a value: the simulator never mutates it.
type Sentence struct {
	Offenses  []Offense
	TotalDays int

	Regime Regime

	// Most restrictive fractions across all offenses. Multi-offense
	// sentences use max(), never an average and never any single
	// offense's own fraction.
	Progression Fraction
	Release     Fraction

	Case  CaseInfo
	Notes string
}

// NewSentence validates the offenses, totals the penalties and resolves
// the effective fractions from the standard table.
func NewSentence(offenses []Offense, regime Regime, info CaseInfo, notes string) (Sentence, error) {
	if len(offenses) == 0 {
		return Sentence{}, ErrNoOffenses
	}
	if !validRegime(regime) {
		return Sentence{}, ErrNoRegime
	}

	total := 0
	for i, off := range offenses {
		if _, err := FractionsFor(off.Classification); err != nil {
			return Sentence{}, fmt.Errorf("offense %d: %w", i, err)
		}
		total += off.Penalty.TotalDays()
	}

	fr, err := EffectiveFractions(offenses)
	if err != nil {
		return Sentence{}, err
	}

	return Sentence{
		Offenses:    offenses,
		TotalDays:   total,
		Regime:      regime,
		Progression: fr.Progression,
		Release:     fr.Release,
		Case:        info,
		Notes:       notes,
	}, nil
}

// =============================================================================
// CUSTODY EPISODES & REMISSION
// =============================================================================

// EpisodeType tags what kind of custody an episode records.
type EpisodeType string

const (
	EpisodePretrial    EpisodeType = "pretrial"    // prisão preventiva/provisória
	EpisodeSentence    EpisodeType = "sentence"    // execução definitiva
	EpisodeHouseArrest EpisodeType = "house_arrest"
)

// CustodyEpisode is a continuous custody interval. End is nil while the
// defendant is still detained. Episodes are consulted as given; overlap
// resolution is the caller's responsibility.
type CustodyEpisode struct {
	Start     legaldate.Date
	End       *legaldate.Date // nil = still in custody
	Type      EpisodeType
	Countable bool // counts toward the sentence (detração)
	Note      string
}

// Validate checks the start <= end invariant.
func (e CustodyEpisode) Validate() error {
	if e.Start.IsZero() {
		return fmt.Errorf("%w: missing start date", ErrInvalidEpisode)
	}
	if e.End != nil && e.End.Before(e.Start) {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidEpisode, e.End.ISO(), e.Start.ISO())
	}
	return nil
}

// Covers reports whether the defendant is in custody under this episode
// at the given instant. The end date is EXCLUSIVE for the liberty check:
// on the release day itself the defendant is already at liberty.
func (e CustodyEpisode) Covers(at legaldate.Date) bool {
	if !e.Countable {
		return false
	}
	if e.Start.After(at) {
		return false
	}
	return e.End == nil || e.End.After(at)
}

// RemissionCredit is a day credit (remição) effective on a specific
// date. Strictly additive.
type RemissionCredit struct {
	Date legaldate.Date
	Days int
	Note string
}

// Validate rejects non-positive credits.
func (r RemissionCredit) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRemission)
	}
	if r.Days <= 0 {
		return fmt.Errorf("%w: %d days", ErrInvalidRemission, r.Days)
	}
	return nil
}

// =============================================================================
// RESULT
// =============================================================================

// CustodyState is the defendant's situation at the as-of date.
type CustodyState string

const (
	InCustody CustodyState = "in_custody"
	AtLiberty CustodyState = "at_liberty"
)

// Result is the outcome of one simulation. Dates that had not been
// reached by the as-of date are projections (computed forward from the
// as-of date assuming uninterrupted custody).
type Result struct {
	TotalDays int
	Regime    Regime

	ProgressionFraction Fraction
	ReleaseFraction     Fraction

	// Threshold dates. Projected is true for each date fixed by
	// projection rather than by an actual timeline crossing.
	ProgressionDate *legaldate.Date
	ReleaseDate     *legaldate.Date
	TerminationDate legaldate.Date
	Projected       bool

	// Counters as of AsOf, recomputed independently of the
	// threshold pass.
	DaysServed    int
	RemissionDays int

	RemainingToProgression int
	RemainingToTermination int

	Custody CustodyState
	AsOf    legaldate.Date
}
