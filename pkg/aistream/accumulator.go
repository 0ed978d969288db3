package aistream

import "encoding/json"

// Accumulator tracks the latest known value of each result field across a
// whole stream, independently per field ("latest wins"). It backs the
// post-stream consistency pass: the union snapshot guarantees the stored
// record reflects the true final state even if earlier partial patches left
// fields inconsistent relative to each other.
type Accumulator struct {
	places          json.RawMessage
	userPreferences json.RawMessage
	justification   *string
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Apply folds an event into the accumulator, overwriting only present fields.
func (a *Accumulator) Apply(ev *Event) {
	if ev == nil {
		return
	}
	if ev.HasPlaces() {
		a.places = ev.Places
	}
	if ev.HasUserPreferences() {
		a.userPreferences = ev.UserPreferences
	}
	if ev.HasJustification() {
		a.justification = ev.Justification
	}
}

// HasAny reports whether at least one field value was ever accumulated.
func (a *Accumulator) HasAny() bool {
	return present(a.places) || present(a.userPreferences) || a.justification != nil
}

// Snapshot returns the union of the latest known value of each field.
func (a *Accumulator) Snapshot() *Event {
	return &Event{
		Places:          a.places,
		UserPreferences: a.userPreferences,
		Justification:   a.justification,
	}
}
