/*
timeline.go - Signed point-event construction

PURPOSE:
  Flattens custody episodes and remission credits into the single
  chronologically sorted event stream the simulator walks once.

EVENT SHAPE:
  episode start  -> delta +1 (custody depth)
  episode end    -> delta -1
  remission      -> delta +N days of credit

TIE-BREAKING:
  The sort is stable; same-date events keep insertion order, which is
  episodes (input order, start before end) then remissions. A credit
  dated on a release day is therefore applied after that day's custody
  accrual.
*/
package sentence

import (
	"sort"

	"github.com/advocato/penal-engine/legaldate"
)

// EventKind discriminates timeline events.
type EventKind string

const (
	EventEpisodeStart EventKind = "episode_start"
	EventEpisodeEnd   EventKind = "episode_end"
	EventRemission    EventKind = "remission"
)

// Event is one signed point on the timeline. Ephemeral: built per
// simulation, never persisted.
type Event struct {
	Date  legaldate.Date
	Kind  EventKind
	Delta int
}

// BuildTimeline emits events for countable episodes and all remission
// credits, sorted ascending by date (stable).
func BuildTimeline(episodes []CustodyEpisode, remissions []RemissionCredit) []Event {
	events := make([]Event, 0, 2*len(episodes)+len(remissions))

	for _, ep := range episodes {
		if !ep.Countable {
			continue
		}
		events = append(events, Event{Date: ep.Start, Kind: EventEpisodeStart, Delta: +1})
		if ep.End != nil {
			events = append(events, Event{Date: *ep.End, Kind: EventEpisodeEnd, Delta: -1})
		}
	}
	for _, rc := range remissions {
		events = append(events, Event{Date: rc.Date, Kind: EventRemission, Delta: rc.Days})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
