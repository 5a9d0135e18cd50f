package domain

import (
	"sort"
	"time"
)

func hours(h float64) *float64 { return &h }

var seedEvents = []Event{
	{
		ID:            "1",
		Title:         "Warum MCP das TCP/IP der KI ist",
		Date:          "2025-05-13",
		Location:      GeocodedLocation("Solingen Office"),
		EventType:     EventTypeVideo,
		EventName:     "Codecentric Video Day",
		Reference:     "https://www.youtube.com/watch?v=jaM1jjlfdWo&t=3s",
		Status:        StatusCompleted,
		HoursInvested: hours(8),
		Audience:      AudienceInternal,
		Company:       "Codecentric",
	},
	{
		ID:            "2",
		Title:         "Was TCP/IP für das Internet war, ist MCP für die LLM-Ökosysteme",
		Date:          "2025-05-20",
		Location:      GeocodedLocation("Stuttgart Office"),
		EventType:     EventTypeMeetUp,
		EventName:     "tech&talk Stuttgart: KI-Agenten in Interaktion",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "3",
		Title:         "Versteckt aber mächtig der Agent in deiner Bash - Claude Code",
		Date:          "2025-05-27",
		Location:      GeocodedLocation("Solingen Office"),
		EventType:     EventTypeMeetUp,
		EventName:     "tech&talk Meetup: Vibe Coding / AI-powered working",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "4",
		Title:         "Model Context Protocol: Wie kann MCP bei der Automatisierung im Arbeitsalltag helfen?",
		Date:          "2025-05-27",
		Location:      GeocodedLocation("Solingen Office"),
		EventType:     EventTypePodcast,
		EventName:     "Model Context Protocol Podcast",
		Reference:     "https://www.youtube.com/watch?v=qi-0W24sMHg&t=8s",
		Status:        StatusCompleted,
		HoursInvested: hours(2),
		Audience:      AudienceExternal,
	},
	{
		ID:            "5",
		Title:         "AI-powered working: Claude Code",
		Date:          "2025-06-06",
		Location:      GeocodedLocation("Remote"),
		EventType:     EventTypeTalk,
		EventName:     "AI-powered working",
		Status:        StatusCompleted,
		HoursInvested: hours(2),
		Audience:      AudienceInternal,
		Company:       "Codecentric",
	},
	{
		ID:            "6",
		Title:         "Intelligente Unterstützung – gemeinsam entwickeln wir KI-Lösungen für uns und unsere Kunden",
		Date:          "2025-07-09",
		Location:      GeocodedLocation("Phantasialand Köln"),
		EventType:     EventTypeKundenEvent,
		EventName:     "KI-Lösungen Workshop",
		Status:        StatusCompleted,
		HoursInvested: hours(8),
		Audience:      AudienceExternal,
	},
	{
		ID:            "7",
		Title:         "AI Workshop HUK",
		Date:          "2025-08-06",
		EndDate:       "2025-08-07",
		Location:      GeocodedLocation("Coburg"),
		EventType:     EventTypeWorkshop,
		EventName:     "AI Powered Working",
		Status:        StatusCompleted,
		HoursInvested: hours(16),
		Audience:      AudienceExternal,
		Company:       "HUK",
	},
	{
		ID:            "8",
		Title:         "WEBINAR - KI Agenten",
		Date:          "2025-09-04",
		Location:      GeocodedLocation("Remote"),
		EventType:     EventTypeWebinar,
		EventName:     "KI Agenten",
		Status:        StatusCompleted,
		HoursInvested: hours(2),
		Audience:      AudienceExternal,
	},
	{
		ID:            "9",
		Title:         "n8n Meet Up München",
		Date:          "2025-09-04",
		Location:      GeocodedLocation("München"),
		EventType:     EventTypeMeetUp,
		EventName:     "n8n Meet Up",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "10",
		Title:         "diamant software KI Agenten Vorstellung",
		Date:          "2025-09-09",
		Location:      GeocodedLocation("Remote"),
		EventType:     EventTypeKundenEvent,
		EventName:     "KI Agenten",
		Status:        StatusCompleted,
		HoursInvested: hours(2),
		Audience:      AudienceExternal,
		Company:       "Diamant Software",
	},
	{
		ID:            "11",
		Title:         "Wie n8n agentische Use Cases ermöglicht",
		Date:          "2025-09-25",
		Location:      GeocodedLocation("Solingen"),
		EventType:     EventTypeTalk,
		EventName:     "KI mit Verantwortung: Agentic AI für eine smarte und sichere Unternehmensführung",
		Description:   "Business Acceleration Club",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "12",
		Title:         "AI Powered Working Sprint Intro",
		Date:          "2025-09-30",
		Location:      GeocodedLocation("Hamburg"),
		EventType:     EventTypeWorkshop,
		EventName:     "AI Sprint",
		Status:        StatusCompleted,
		HoursInvested: hours(8),
		Audience:      AudienceExternal,
	},
	{
		ID:            "13",
		Title:         "AI Powered Working Sprint Review",
		Date:          "2025-10-21",
		Location:      GeocodedLocation("Hamburg"),
		EventType:     EventTypeWorkshop,
		EventName:     "AI Sprint",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "14",
		Title:         "Geschäftsprozesse intelligent automatisiert - wie n8n agentische Use Cases ermöglicht",
		Date:          "2025-10-23",
		Location:      GeocodedLocation("München"),
		EventType:     EventTypeTalk,
		EventName:     "KI mit Verantwortung: Agentic AI für eine smarte und sichere Unternehmensführung",
		Description:   "Business Acceleration Club",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "15",
		Title:         "Versteckt aber mächtig der Agent in deiner Bash - Claude Code",
		Date:          "2025-10-28",
		Location:      GeocodedLocation("Stuttgart"),
		EventType:     EventTypeMeetUp,
		EventName:     "tech&talk Stuttgart - AI-Assisted Coding",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "16",
		Title:         "Versteckt aber mächtig der Agent in deiner Bash - Claude Code",
		Date:          "2025-10-29",
		Location:      GeocodedLocation("Karlsruhe"),
		EventType:     EventTypeMeetUp,
		EventName:     "tech&talk Karlsruhe - AI-Assisted Coding",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
	{
		ID:            "17",
		Title:         "MCP",
		Date:          "2025-11-07",
		Location:      GeocodedLocation("Remote"),
		EventType:     EventTypeTalk,
		EventName:     "AI-powered working: MCP",
		Status:        StatusCompleted,
		HoursInvested: hours(2),
		Audience:      AudienceInternal,
		Company:       "Codecentric",
	},
	{
		ID:            "18",
		Title:         "HPE Ingram Gen AI Workshop",
		Date:          "2025-11-18",
		Location:      GeocodedLocation("Solingen"),
		EventType:     EventTypeWorkshop,
		EventName:     "HPE Ingram Gen AI Workshop",
		Status:        StatusCompleted,
		HoursInvested: hours(8),
		Audience:      AudienceExternal,
		Company:       "HPE Ingram",
	},
	{
		ID:            "19",
		Title:         "Agentic AI in der Versicherung: Potenziale, Praxis und Erfolgsfaktoren für die Automatisierung der Zukunft",
		Date:          "2025-11-18",
		Location:      GeocodedLocation("Leipzig"),
		EventType:     EventTypeConference,
		EventName:     "Leipzig - Messekongress IT",
		Status:        StatusCompleted,
		HoursInvested: hours(8),
		Audience:      AudienceExternal,
	},
	{
		ID:            "20",
		Title:         "Model Context Protocol: Der technische Standard für integrierte KI-Agenten",
		Date:          "2025-12-03",
		Location:      GeocodedLocation("Stuttgart"),
		EventType:     EventTypeMeetUp,
		EventName:     "Building AI Applications with MCP & n8n",
		Description:   "Am Beispiel intelligenter Vertriebs-automatisierung mit c4 Gen AI Suite und n8n",
		Status:        StatusCompleted,
		HoursInvested: hours(4),
		Audience:      AudienceExternal,
	},
}

// SeedMaxID is the highest numeric id used by the seed data.
const SeedMaxID = 20

// SeedEvents returns fresh copies of the demo events stamped with now,
// ordered by date descending like the remote query.
func SeedEvents(now time.Time) []Event {
	out := make([]Event, len(seedEvents))
	for i, e := range seedEvents {
		e.CreatedAt = now
		e.Images = []string{}
		if e.HoursInvested != nil {
			e.HoursInvested = hours(*e.HoursInvested)
		}
		out[i] = e
	}
	SortByDateDesc(out)
	return out
}

// SortByDateDesc orders events newest first, keeping the relative order of
// events on the same date.
func SortByDateDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
}
