package sentence_test

import (
	"errors"
	"testing"

	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
)

func TestFractionOf_CeilingArithmetic(t *testing.T) {
	sixth := sentence.Fraction{Num: 1, Den: 6}
	if got := sixth.Of(2190); got != 365 {
		t.Errorf("1/6 of 2190 = %d, want 365", got)
	}
	// Non-exact division rounds UP: a fraction is a minimum to serve.
	quarter := sentence.Fraction{Num: 1, Den: 4}
	if got := quarter.Of(2190); got != 548 {
		t.Errorf("1/4 of 2190 = %d, want 548", got)
	}
	if got := sixth.Of(0); got != 0 {
		t.Errorf("1/6 of 0 = %d, want 0", got)
	}
}

func TestFractionTables_StandardEntries(t *testing.T) {
	cases := []struct {
		class sentence.Classification
		prog  sentence.Fraction
		rel   sentence.Fraction
	}{
		{sentence.ClassPrimary, sentence.Fraction{1, 6}, sentence.Fraction{1, 3}},
		{sentence.ClassRepeat, sentence.Fraction{1, 5}, sentence.Fraction{1, 2}},
		{sentence.ClassHeinousPrimary, sentence.Fraction{2, 5}, sentence.Fraction{2, 3}},
		{sentence.ClassHeinousRepeat, sentence.Fraction{3, 5}, sentence.Fraction{4, 5}},
	}
	for _, c := range cases {
		fr, err := sentence.FractionsFor(c.class)
		if err != nil {
			t.Fatalf("%s: %v", c.class, err)
		}
		if fr.Progression != c.prog || fr.Release != c.rel {
			t.Errorf("%s: got %v/%v, want %v/%v", c.class, fr.Progression, fr.Release, c.prog, c.rel)
		}
	}
}

func TestFractionTables_QuickDivergence(t *testing.T) {
	// The quick single-offense table historically diverges from the
	// standard one for two entries. Both must stay as-is until legal
	// sign-off; this test pins the divergence down.

	quickRepeat, _ := sentence.QuickFractionsFor(sentence.ClassRepeat)
	stdRepeat, _ := sentence.FractionsFor(sentence.ClassRepeat)
	if quickRepeat.Progression != (sentence.Fraction{1, 4}) {
		t.Errorf("quick repeat progression = %v, want 1/4", quickRepeat.Progression)
	}
	if stdRepeat.Progression != (sentence.Fraction{1, 5}) {
		t.Errorf("standard repeat progression = %v, want 1/5", stdRepeat.Progression)
	}

	quickHeinous, _ := sentence.QuickFractionsFor(sentence.ClassHeinousPrimary)
	stdHeinous, _ := sentence.FractionsFor(sentence.ClassHeinousPrimary)
	if quickHeinous.Release != (sentence.Fraction{3, 5}) {
		t.Errorf("quick heinous-primary release = %v, want 3/5", quickHeinous.Release)
	}
	if stdHeinous.Release != (sentence.Fraction{2, 3}) {
		t.Errorf("standard heinous-primary release = %v, want 2/3", stdHeinous.Release)
	}
}

func TestFractionsFor_UnknownClassification(t *testing.T) {
	if _, err := sentence.FractionsFor("celebrity"); !errors.Is(err, sentence.ErrUnknownClassification) {
		t.Errorf("expected ErrUnknownClassification, got %v", err)
	}
}

func TestEffectiveFractions_MostRestrictiveWins(t *testing.T) {
	// GIVEN: a primary offense and a heinous-repeat offense
	// WHEN: resolving effective fractions for the combined sentence
	// THEN: each column takes the max - never an average, never a
	//       single offense's own pair

	offenses := []sentence.Offense{
		{Penalty: legaldate.Duration{Years: 2}, Classification: sentence.ClassPrimary},
		{Penalty: legaldate.Duration{Years: 4}, Classification: sentence.ClassHeinousRepeat},
	}
	fr, err := sentence.EffectiveFractions(offenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fr.Progression != (sentence.Fraction{3, 5}) {
		t.Errorf("progression = %v, want 3/5", fr.Progression)
	}
	if fr.Release != (sentence.Fraction{4, 5}) {
		t.Errorf("release = %v, want 4/5", fr.Release)
	}
}

func TestNewSentence_TotalsAndValidation(t *testing.T) {
	offenses := []sentence.Offense{
		{Penalty: legaldate.Duration{Years: 4}, Classification: sentence.ClassPrimary},
		{Penalty: legaldate.Duration{Years: 2}, Classification: sentence.ClassRepeat},
	}
	s, err := sentence.NewSentence(offenses, sentence.RegimeClosed, sentence.CaseInfo{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.TotalDays != 2190 {
		t.Errorf("TotalDays = %d, want 2190", s.TotalDays)
	}
	if s.Progression != (sentence.Fraction{1, 5}) {
		t.Errorf("effective progression = %v, want 1/5 (repeat offender)", s.Progression)
	}

	if _, err := sentence.NewSentence(nil, sentence.RegimeClosed, sentence.CaseInfo{}, ""); !errors.Is(err, sentence.ErrNoOffenses) {
		t.Errorf("expected ErrNoOffenses, got %v", err)
	}
	if _, err := sentence.NewSentence(offenses, "", sentence.CaseInfo{}, ""); !errors.Is(err, sentence.ErrNoRegime) {
		t.Errorf("expected ErrNoRegime, got %v", err)
	}
}
