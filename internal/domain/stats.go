package domain

// Bucket aggregates a group of events.
type Bucket struct {
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
}

func (b *Bucket) add(e Event) {
	b.Count++
	if e.HoursInvested != nil {
		b.Hours += *e.HoursInvested
	}
}

// Stats summarises invested time over a set of events.
type Stats struct {
	Total      Bucket                `json:"total"`
	ByType     map[EventType]*Bucket `json:"byType"`
	ByStatus   map[Status]*Bucket    `json:"byStatus"`
	ByAudience map[Audience]*Bucket  `json:"byAudience"`
}

func Summarize(events []Event) Stats {
	s := Stats{
		ByType:     make(map[EventType]*Bucket),
		ByStatus:   make(map[Status]*Bucket),
		ByAudience: make(map[Audience]*Bucket),
	}
	for _, e := range events {
		s.Total.add(e)
		bucketFor(s.ByType, e.EventType).add(e)
		bucketFor(s.ByStatus, e.Status).add(e)
		if e.Audience != "" {
			bucketFor(s.ByAudience, e.Audience).add(e)
		}
	}
	return s
}

func bucketFor[K comparable](m map[K]*Bucket, k K) *Bucket {
	b, ok := m[k]
	if !ok {
		b = &Bucket{}
		m[k] = b
	}
	return b
}
