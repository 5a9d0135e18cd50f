package domain

// Filter is the UI selection over the event list. An empty Types set matches
// every type; an empty bound leaves that side of the date window open.
type Filter struct {
	Types []EventType `json:"types"`
	From  string      `json:"from,omitempty"`
	To    string      `json:"to,omitempty"`
}

// Active reports whether any criterion narrows the list.
func (f Filter) Active() bool {
	return len(f.Types) > 0 || f.From != "" || f.To != ""
}

// HasType reports whether t is part of the type selection.
func (f Filter) HasType(t EventType) bool {
	for _, s := range f.Types {
		if s == t {
			return true
		}
	}
	return false
}

// Matches applies the type selection and then the date window.
func (f Filter) Matches(e Event) bool {
	if len(f.Types) > 0 && !f.HasType(e.EventType) {
		return false
	}
	// ISO dates compare correctly as strings
	if f.From != "" && e.EffectiveEnd() < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	return true
}

// Apply keeps the matching events in their original order.
func (f Filter) Apply(events []Event) []Event {
	if !f.Active() {
		return events
	}
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
