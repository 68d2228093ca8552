/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP surface, decoupled from the engine
  types. Dates travel as ISO strings (yyyy-mm-dd), money as decimal
  strings, fractions as "n/d". Validation happens during conversion,
  before any engine runs.

NAMING CONVENTION:
  - *Request: request bodies from clients
  - *DTO: response payloads

SEE ALSO:
  - handlers.go: uses these types
  - config: the YAML twin of this layer for the CLI
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/advocato/penal-engine/alimony"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/advocato/penal-engine/sentence"
	storesqlite "github.com/advocato/penal-engine/store/sqlite"
)

// =============================================================================
// SENTENCE REQUESTS
// =============================================================================

type OffenseDTO struct {
	Description    string             `json:"description"`
	Article        string             `json:"article,omitempty"`
	Penalty        legaldate.Duration `json:"penalty"`
	Classification string             `json:"classification"`
	Notes          string             `json:"notes,omitempty"`
}

type EpisodeDTO struct {
	Start     string `json:"start"`
	End       string `json:"end,omitempty"`
	Type      string `json:"type,omitempty"`
	Countable *bool  `json:"countable,omitempty"` // absent = true
	Note      string `json:"note,omitempty"`
}

type RemissionDTO struct {
	Date string `json:"date"`
	Days int    `json:"days"`
	Note string `json:"note,omitempty"`
}

type SentenceCalcRequest struct {
	Offenses          []OffenseDTO   `json:"offenses"`
	Regime            string         `json:"regime"`
	Episodes          []EpisodeDTO   `json:"episodes"`
	Remissions        []RemissionDTO `json:"remissions"`
	CaseNumber        string         `json:"case_number,omitempty"`
	Court             string         `json:"court,omitempty"`
	Judge             string         `json:"judge,omitempty"`
	Notes             string         `json:"notes,omitempty"`
	AsOf              string         `json:"as_of,omitempty"`
	IncludeReleaseDay bool           `json:"include_release_day,omitempty"`
	Zone              string         `json:"zone,omitempty"`
}

type QuickSentenceRequest struct {
	Penalty        legaldate.Duration `json:"penalty"`
	Classification string             `json:"classification"`
	Regime         string             `json:"regime"`
	DaysServed     int                `json:"days_served"`
	BaseDate       string             `json:"base_date,omitempty"`
	Zone           string             `json:"zone,omitempty"`
}

type CustodyStatusRequest struct {
	Episodes []EpisodeDTO `json:"episodes"`
	AsOf     string       `json:"as_of,omitempty"`
	Zone     string       `json:"zone,omitempty"`
}

// =============================================================================
// SENTENCE RESPONSES
// =============================================================================

type SentenceResultDTO struct {
	TotalDays           int    `json:"total_days"`
	Regime              string `json:"regime"`
	ProgressionFraction string `json:"progression_fraction"`
	ReleaseFraction     string `json:"release_fraction"`

	ProgressionDate string `json:"progression_date,omitempty"`
	ReleaseDate     string `json:"release_date,omitempty"`
	TerminationDate string `json:"termination_date"`
	Projected       bool   `json:"projected"`

	DaysServed             int `json:"days_served"`
	RemissionDays          int `json:"remission_days"`
	RemainingToProgression int `json:"remaining_to_progression"`
	RemainingToTermination int `json:"remaining_to_termination"`

	Custody    string `json:"custody"`
	AsOf       string `json:"as_of"`
	Memorandum string `json:"memorandum,omitempty"`
}

func toSentenceResultDTO(s sentence.Sentence, r sentence.Result) SentenceResultDTO {
	dto := SentenceResultDTO{
		TotalDays:              r.TotalDays,
		Regime:                 string(r.Regime),
		ProgressionFraction:    r.ProgressionFraction.String(),
		ReleaseFraction:        r.ReleaseFraction.String(),
		TerminationDate:        r.TerminationDate.ISO(),
		Projected:              r.Projected,
		DaysServed:             r.DaysServed,
		RemissionDays:          r.RemissionDays,
		RemainingToProgression: r.RemainingToProgression,
		RemainingToTermination: r.RemainingToTermination,
		Custody:                string(r.Custody),
		AsOf:                   r.AsOf.ISO(),
		Memorandum:             sentence.Memorandum(s, r),
	}
	if r.ProgressionDate != nil {
		dto.ProgressionDate = r.ProgressionDate.ISO()
	}
	if r.ReleaseDate != nil {
		dto.ReleaseDate = r.ReleaseDate.ISO()
	}
	return dto
}

type CustodyStatusDTO struct {
	Status string `json:"status"`
	AsOf   string `json:"as_of"`
}

// =============================================================================
// ALIMONY
// =============================================================================

type PaymentDTO struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type AlimonyCalcRequest struct {
	MonthlyAmount string       `json:"monthly_amount"`
	DueDay        int          `json:"due_day"`
	Start         string       `json:"start"`
	End           string       `json:"end,omitempty"`
	Payments      []PaymentDTO `json:"payments"`
	AsOf          string       `json:"as_of,omitempty"`
	Zone          string       `json:"zone,omitempty"`
}

type DueLineDTO struct {
	DueDate     string `json:"due_date"`
	NominalDate string `json:"nominal_date"`
	Amount      string `json:"amount"`
	Paid        string `json:"paid"`
	Shortfall   string `json:"shortfall"`
	MonthsLate  int    `json:"months_late"`
	Penalty     string `json:"penalty"`
	Interest    string `json:"interest"`
	Total       string `json:"total"`
}

type AlimonyResultDTO struct {
	Lines []DueLineDTO `json:"lines"`

	TotalOwed     string `json:"total_owed"`
	TotalPaid     string `json:"total_paid"`
	Outstanding   string `json:"outstanding"`
	TotalPenalty  string `json:"total_penalty"`
	TotalInterest string `json:"total_interest"`
	TotalDebt     string `json:"total_debt"`
	AdvanceCredit string `json:"advance_credit"`

	NextDueDate   string `json:"next_due_date,omitempty"`
	NextDueAmount string `json:"next_due_amount,omitempty"`

	AsOf   string `json:"as_of"`
	Report string `json:"report"`
}

func money(d decimal.Decimal) string { return d.Round(2).StringFixed(2) }

func toAlimonyResultDTO(r alimony.Result) AlimonyResultDTO {
	dto := AlimonyResultDTO{
		TotalOwed:     money(r.TotalOwed),
		TotalPaid:     money(r.TotalPaid),
		Outstanding:   money(r.Outstanding),
		TotalPenalty:  money(r.TotalPenalty),
		TotalInterest: money(r.TotalInterest),
		TotalDebt:     money(r.TotalDebt),
		AdvanceCredit: money(r.AdvanceCredit),
		AsOf:          r.AsOf.ISO(),
		Report:        r.Report,
	}
	for _, line := range r.Lines {
		dto.Lines = append(dto.Lines, DueLineDTO{
			DueDate:     line.Due.Date.ISO(),
			NominalDate: line.Due.Raw.ISO(),
			Amount:      money(line.Due.Amount),
			Paid:        money(line.Paid),
			Shortfall:   money(line.Shortfall),
			MonthsLate:  line.MonthsLate,
			Penalty:     money(line.Penalty),
			Interest:    money(line.Interest),
			Total:       money(line.Total),
		})
	}
	if r.NextDueDate != nil {
		dto.NextDueDate = r.NextDueDate.ISO()
		dto.NextDueAmount = money(r.NextDueAmount)
	}
	return dto
}

// =============================================================================
// HISTORY & ERRORS
// =============================================================================

type CalculationDTO struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

func toCalculationDTO(rec storesqlite.CalculationRecord) CalculationDTO {
	return CalculationDTO{
		ID:        rec.ID,
		Kind:      rec.Kind,
		CreatedAt: rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// REQUEST -> ENGINE CONVERSIONS
// =============================================================================

func parseOptionalDate(s, field string) (legaldate.Date, error) {
	if s == "" {
		return legaldate.Date{}, nil
	}
	d, err := legaldate.ParseISO(s)
	if err != nil {
		return legaldate.Date{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func toEpisodes(dtos []EpisodeDTO) ([]sentence.CustodyEpisode, error) {
	episodes := make([]sentence.CustodyEpisode, 0, len(dtos))
	for i, in := range dtos {
		start, err := legaldate.ParseISO(in.Start)
		if err != nil {
			return nil, fmt.Errorf("episode %d start: %w", i+1, err)
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
				return nil, fmt.Errorf("episode %d end: %w", i+1, err)
			}
			ep.End = &end
		}
		episodes = append(episodes, ep)
	}
	return episodes, nil
}

func (req *SentenceCalcRequest) toEngine() (sentence.Sentence, []sentence.CustodyEpisode, []sentence.RemissionCredit, error) {
	offenses := make([]sentence.Offense, 0, len(req.Offenses))
	for i, in := range req.Offenses {
		offenses = append(offenses, sentence.Offense{
			ID:             fmt.Sprintf("off-%d", i+1),
			Description:    in.Description,
			Article:        in.Article,
			Penalty:        in.Penalty,
			Classification: sentence.Classification(in.Classification),
			Notes:          in.Notes,
		})
	}
	s, err := sentence.NewSentence(offenses, sentence.Regime(req.Regime), sentence.CaseInfo{
		CaseNumber: req.CaseNumber,
		Court:      req.Court,
		Judge:      req.Judge,
	}, req.Notes)
	if err != nil {
		return sentence.Sentence{}, nil, nil, err
	}

	episodes, err := toEpisodes(req.Episodes)
	if err != nil {
		return sentence.Sentence{}, nil, nil, err
	}

	remissions := make([]sentence.RemissionCredit, 0, len(req.Remissions))
	for i, in := range req.Remissions {
		d, err := legaldate.ParseISO(in.Date)
		if err != nil {
			return sentence.Sentence{}, nil, nil, fmt.Errorf("remission %d date: %w", i+1, err)
		}
		remissions = append(remissions, sentence.RemissionCredit{Date: d, Days: in.Days, Note: in.Note})
	}

	return s, episodes, remissions, nil
}

func (req *AlimonyCalcRequest) toEngine() (alimony.Obligation, []alimony.Payment, error) {
	amount, err := decimal.NewFromString(req.MonthlyAmount)
	if err != nil {
		return alimony.Obligation{}, nil, fmt.Errorf("monthly_amount %q: %w", req.MonthlyAmount, err)
	}
	start, err := legaldate.ParseISO(req.Start)
	if err != nil {
		return alimony.Obligation{}, nil, fmt.Errorf("start: %w", err)
	}
	o := alimony.Obligation{MonthlyAmount: amount, DueDay: req.DueDay, Start: start}
	if req.End != "" {
		end, err := legaldate.ParseISO(req.End)
		if err != nil {
			return alimony.Obligation{}, nil, fmt.Errorf("end: %w", err)
		}
		o.End = &end
	}

	payments := make([]alimony.Payment, 0, len(req.Payments))
	for i, in := range req.Payments {
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
