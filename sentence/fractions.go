/*
fractions.go - Statutory fraction tables

PURPOSE:
  Maps an offense classification to the fractions of the total penalty
  that must be served before regime progression and before conditional
  release eligibility.

TWO TABLES:
  The full (multi-offense) entry point and the quick single-offense
  entry point have historically used slightly different numbers:

    repeat offender progression:   1/5 (standard) vs 1/4 (quick)
    heinous-primary release:       2/3 (standard) vs 3/5 (quick)

  The divergence is preserved on purpose and awaits legal sign-off.
  Do not unify the tables without it; existing memoranda were issued
  under both.

MULTI-OFFENSE RULE:
  A sentence with several offenses uses the MOST RESTRICTIVE fraction
  per column - max(), never an average.
*/
package sentence

import "strconv"

// Fraction is an exact statutory fraction. Thresholds are computed with
// integer ceiling arithmetic so no float rounding can move a date.
type Fraction struct {
	Num int
	Den int
}

// Of returns ceil(total * f) in days. A zero total yields zero: every
// threshold of an empty sentence is trivially met.
func (f Fraction) Of(total int) int {
	if total <= 0 || f.Den == 0 {
		return 0
	}
	return (total*f.Num + f.Den - 1) / f.Den
}

// LessThan compares fractions exactly by cross-multiplication.
func (f Fraction) LessThan(other Fraction) bool {
	return f.Num*other.Den < other.Num*f.Den
}

func (f Fraction) String() string {
	if f.Den == 0 {
		return "0"
	}
	return strconv.Itoa(f.Num) + "/" + strconv.Itoa(f.Den)
}

// Fractions pairs the two thresholds of one classification.
type Fractions struct {
	Progression Fraction
	Release     Fraction
}

// =============================================================================
// TABLES
// =============================================================================

// standardFractions backs NewSentence / Compute (multi-offense path).
var standardFractions = map[Classification]Fractions{
	ClassPrimary:        {Progression: Fraction{1, 6}, Release: Fraction{1, 3}},
	ClassRepeat:         {Progression: Fraction{1, 5}, Release: Fraction{1, 2}},
	ClassHeinousPrimary: {Progression: Fraction{2, 5}, Release: Fraction{2, 3}},
	ClassHeinousRepeat:  {Progression: Fraction{3, 5}, Release: Fraction{4, 5}},
}

// quickFractions backs ComputeQuick (single-offense path). Differs from
// standardFractions for ClassRepeat progression and ClassHeinousPrimary
// release; see the file header.
var quickFractions = map[Classification]Fractions{
	ClassPrimary:        {Progression: Fraction{1, 6}, Release: Fraction{1, 3}},
	ClassRepeat:         {Progression: Fraction{1, 4}, Release: Fraction{1, 2}},
	ClassHeinousPrimary: {Progression: Fraction{2, 5}, Release: Fraction{3, 5}},
	ClassHeinousRepeat:  {Progression: Fraction{3, 5}, Release: Fraction{4, 5}},
}

// FractionsFor resolves a classification against the standard table.
func FractionsFor(c Classification) (Fractions, error) {
	fr, ok := standardFractions[c]
	if !ok {
		return Fractions{}, ErrUnknownClassification
	}
	return fr, nil
}

// QuickFractionsFor resolves a classification against the quick-entry
// table.
func QuickFractionsFor(c Classification) (Fractions, error) {
	fr, ok := quickFractions[c]
	if !ok {
		return Fractions{}, ErrUnknownClassification
	}
	return fr, nil
}

// EffectiveFractions returns the most restrictive fraction per column
// across all offenses.
func EffectiveFractions(offenses []Offense) (Fractions, error) {
	var eff Fractions
	for i, off := range offenses {
		fr, err := FractionsFor(off.Classification)
		if err != nil {
			return Fractions{}, err
		}
		if i == 0 {
			eff = fr
			continue
		}
		if eff.Progression.LessThan(fr.Progression) {
			eff.Progression = fr.Progression
		}
		if eff.Release.LessThan(fr.Release) {
			eff.Release = fr.Release
		}
	}
	return eff, nil
}
