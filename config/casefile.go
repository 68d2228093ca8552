/*
Package config parses YAML case files into engine inputs.

PURPOSE:
  The CLI (and batch jobs) describe a calculation in a YAML case file:
  either a sentence execution case or an alimony arrears case. This
  package owns parsing, validation and the translation into the typed
  inputs the engines take. Handlers and engines never see YAML.

FILE SHAPE:
  kind: sentence | alimony
  zone: America/Cuiaba          # optional
  as_of: 2024-03-05             # optional, defaults to today
  sentence:
    regime: closed
    include_release_day: false
    offenses:
      - description: roubo simples
        article: art. 157 CP
        penalty: {years: 6}
        classification: primary
    episodes:
      - start: 2020-01-01
        type: sentence
    remissions:
      - date: 2020-07-19
        days: 100
  alimony:
    monthly_amount: "1000.00"
    due_day: 5
    start: 2024-01-05
    payments:
      - date: 2024-02-05
        amount: "1000.00"

VALIDATION:
  Everything that can be rejected is rejected here, before the engines
  run: unknown kinds, unparseable dates/amounts, unknown regimes and
  classifications.
*/
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/advocato/penal-engine/alimony"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
)

// =============================================================================
// FILE TYPES
// =============================================================================

// CaseFile is the root of a YAML case file.
type CaseFile struct {
	Kind     string        `yaml:"kind"`
	Zone     string        `yaml:"zone"`
	AsOf     string        `yaml:"as_of"`
	Sentence *SentenceCase `yaml:"sentence"`
	Alimony  *AlimonyCase  `yaml:"alimony"`
}

const (
	KindSentence = "sentence"
	KindAlimony  = "alimony"
)

// SentenceCase describes a sentence execution calculation.
type SentenceCase struct {
	Regime            string           `yaml:"regime"`
	IncludeReleaseDay bool             `yaml:"include_release_day"`
	Offenses          []OffenseInput   `yaml:"offenses"`
	Episodes          []EpisodeInput   `yaml:"episodes"`
	Remissions        []RemissionInput `yaml:"remissions"`
	CaseNumber        string           `yaml:"case_number"`
	Court             string           `yaml:"court"`
	Judge             string           `yaml:"judge"`
	FinalJudgment     string           `yaml:"final_judgment"`
	Notes             string           `yaml:"notes"`
}

type OffenseInput struct {
	Description    string             `yaml:"description"`
	Article        string             `yaml:"article"`
	Penalty        legaldate.Duration `yaml:"penalty"`
	Classification string             `yaml:"classification"`
	Notes          string             `yaml:"notes"`
}

type EpisodeInput struct {
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Type      string `yaml:"type"`
	Countable *bool  `yaml:"countable"` // nil = true
	Note      string `yaml:"note"`
}

type RemissionInput struct {
	Date string `yaml:"date"`
	Days int    `yaml:"days"`
	Note string `yaml:"note"`
}

// AlimonyCase describes an arrears calculation.
type AlimonyCase struct {
	MonthlyAmount string         `yaml:"monthly_amount"`
	DueDay        int            `yaml:"due_day"`
	Start         string         `yaml:"start"`
	End           string         `yaml:"end"`
	Payments      []PaymentInput `yaml:"payments"`
}

type PaymentInput struct {
	Date   string `yaml:"date"`
	Amount string `yaml:"amount"`
	Note   string `yaml:"note"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and validates a case file.
func Load(path string) (*CaseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read case file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates a case file from raw YAML.
func Parse(data []byte) (*CaseFile, error) {
	var cf CaseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	switch cf.Kind {
	case KindSentence:
		if cf.Sentence == nil {
			return nil, fmt.Errorf("kind is %q but no sentence section present", cf.Kind)
		}
	case KindAlimony:
		if cf.Alimony == nil {
			return nil, fmt.Errorf("kind is %q but no alimony section present", cf.Kind)
		}
	default:
		return nil, fmt.Errorf("unknown case kind %q (want %q or %q)", cf.Kind, KindSentence, KindAlimony)
	}
	return &cf, nil
}

// ResolveZone loads the case's timezone, defaulting to the
// jurisdiction default.
func (cf *CaseFile) ResolveZone() (legaldate.Zone, error) {
	return legaldate.LoadZone(cf.Zone)
}

// ResolveAsOf parses the reference date; zero when absent (the engines
// then resolve it to today in the case zone).
func (cf *CaseFile) ResolveAsOf() (legaldate.Date, error) {
	if cf.AsOf == "" {
		return legaldate.Date{}, nil
	}
	return legaldate.ParseISO(cf.AsOf)
}

// =============================================================================
// TRANSLATION TO ENGINE INPUTS
// =============================================================================

// BuildSentence translates the sentence section into engine inputs.
func (sc *SentenceCase) BuildSentence() (sentence.Sentence, []sentence.CustodyEpisode, []sentence.RemissionCredit, error) {
	offenses := make([]sentence.Offense, 0, len(sc.Offenses))
	for i, in := range sc.Offenses {
		offenses = append(offenses, sentence.Offense{
			ID:             fmt.Sprintf("off-%d", i+1),
			Description:    in.Description,
			Article:        in.Article,
			Penalty:        in.Penalty,
			Classification: sentence.Classification(in.Classification),
			Notes:          in.Notes,
		})
	}

	info := sentence.CaseInfo{
		CaseNumber: sc.CaseNumber,
		Court:      sc.Court,
		Judge:      sc.Judge,
	}
	if sc.FinalJudgment != "" {
		d, err := legaldate.ParseISO(sc.FinalJudgment)
		if err != nil {
			return sentence.Sentence{}, nil, nil, fmt.Errorf("final_judgment: %w", err)
		}
		info.FinalJudgment = &d
	}

	s, err := sentence.NewSentence(offenses, sentence.Regime(sc.Regime), info, sc.Notes)
	if err != nil {
		return sentence.Sentence{}, nil, nil, err
	}

	episodes := make([]sentence.CustodyEpisode, 0, len(sc.Episodes))
	for i, in := range sc.Episodes {
		start, err := legaldate.ParseISO(in.Start)
		if err != nil {
			return sentence.Sentence{}, nil, nil, fmt.Errorf("episode %d start: %w", i+1, err)
		}
		ep := sentence.CustodyEpisode{
			Start:     start,
			Type:      sentence.EpisodeType(in.Type),
			Countable: in.Countable == nil || *in.Countable,
			Note:      in.Note,
		}
		if in.End != "" {
			end, err := legaldate.ParseISO(in.End)
			if err != nil {
				return sentence.Sentence{}, nil, nil, fmt.Errorf("episode %d end: %w", i+1, err)
			}
			ep.End = &end
		}
		episodes = append(episodes, ep)
	}

	remissions := make([]sentence.RemissionCredit, 0, len(sc.Remissions))
	for i, in := range sc.Remissions {
		d, err := legaldate.ParseISO(in.Date)
		if err != nil {
			return sentence.Sentence{}, nil, nil, fmt.Errorf("remission %d date: %w", i+1, err)
		}
		remissions = append(remissions, sentence.RemissionCredit{Date: d, Days: in.Days, Note: in.Note})
	}

	return s, episodes, remissions, nil
}

// BuildAlimony translates the alimony section into engine inputs.
func (ac *AlimonyCase) BuildAlimony() (alimony.Obligation, []alimony.Payment, error) {
	amount, err := decimal.NewFromString(ac.MonthlyAmount)
	if err != nil {
		return alimony.Obligation{}, nil, fmt.Errorf("monthly_amount %q: %w", ac.MonthlyAmount, err)
	}
	start, err := legaldate.ParseISO(ac.Start)
	if err != nil {
		return alimony.Obligation{}, nil, fmt.Errorf("start: %w", err)
	}

	o := alimony.Obligation{MonthlyAmount: amount, DueDay: ac.DueDay, Start: start}
	if ac.End != "" {
		end, err := legaldate.ParseISO(ac.End)
		if err != nil {
			return alimony.Obligation{}, nil, fmt.Errorf("end: %w", err)
		}
		o.End = &end
	}
	if err := o.Validate(); err != nil {
		return alimony.Obligation{}, nil, err
	}

	payments := make([]alimony.Payment, 0, len(ac.Payments))
	for i, in := range ac.Payments {
		d, err := legaldate.ParseISO(in.Date)
		if err != nil {
			return alimony.Obligation{}, nil, fmt.Errorf("payment %d date: %w", i+1, err)
		}
		amt, err := decimal.NewFromString(in.Amount)
		if err != nil {
			return alimony.Obligation{}, nil, fmt.Errorf("payment %d amount %q: %w", i+1, in.Amount, err)
		}
		payments = append(payments, alimony.Payment{Date: d, Amount: amt, Note: in.Note})
	}

	return o, payments, nil
}
