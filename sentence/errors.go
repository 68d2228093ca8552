/*
errors.go - Sentinel errors for the sentence engine

Validation is atomic: every error below is raised before the simulator
touches the timeline, so a failed call performs no partial computation.
*/
package sentence

import "errors"

var (
	// ErrNoOffenses is returned when a sentence is built with no offenses.
	ErrNoOffenses = errors.New("sentence has no offenses")

	// ErrNoRegime is returned when no valid initial regime was selected.
	ErrNoRegime = errors.New("no initial regime selected")

	// ErrUnknownClassification is returned for a classification missing
	// from the fraction tables.
	ErrUnknownClassification = errors.New("unknown offense classification")

	// ErrInvalidEpisode is returned for a custody episode violating
	// start <= end or missing its start date.
	ErrInvalidEpisode = errors.New("invalid custody episode")

	// ErrInvalidRemission is returned for a non-positive or undated
	// remission credit.
	ErrInvalidRemission = errors.New("invalid remission credit")
)
