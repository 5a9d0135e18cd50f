package domain

import (
	"time"
)

// EventType is the closed set of appearance kinds shown on the map
type EventType string

const (
	EventTypeTalk        EventType = "Talk"
	EventTypePodcast     EventType = "Podcast"
	EventTypeWorkshop    EventType = "Workshop"
	EventTypeMeetUp      EventType = "Meet Up"
	EventTypeKundenEvent EventType = "Kunden Event"
	EventTypeConference  EventType = "Conference"
	EventTypeWebinar     EventType = "Webinar"
	EventTypeVideo       EventType = "Video"
	EventTypeOther       EventType = "Other"
)

// EventTypes lists every EventType in display order.
var EventTypes = []EventType{
	EventTypeTalk,
	EventTypePodcast,
	EventTypeWorkshop,
	EventTypeMeetUp,
	EventTypeKundenEvent,
	EventTypeConference,
	EventTypeWebinar,
	EventTypeVideo,
	EventTypeOther,
}

var eventTypeColors = map[EventType]string{
	EventTypeTalk:        "#10B981",
	EventTypePodcast:     "#8B5CF6",
	EventTypeWorkshop:    "#A78BFA",
	EventTypeMeetUp:      "#3B82F6",
	EventTypeKundenEvent: "#10B981",
	EventTypeConference:  "#F59E0B",
	EventTypeWebinar:     "#06B6D4",
	EventTypeVideo:       "#EC4899",
	EventTypeOther:       "#6B7280",
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	_, ok := eventTypeColors[t]
	return ok
}

// Color returns the map pin colour for the type, gray for unknown types.
func (t EventType) Color() string {
	if c, ok := eventTypeColors[t]; ok {
		return c
	}
	return eventTypeColors[EventTypeOther]
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPlanned   Status = "planned"
)

// Color returns the badge colour for the status.
func (s Status) Color() string {
	if s == StatusCompleted {
		return "#10B981"
	}
	return "#9CA3AF"
}

type Audience string

const (
	AudienceInternal Audience = "internal"
	AudienceExternal Audience = "external"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleReadonly UserRole = "readonly"
)

// Location is geocoded once when the event is created
type Location struct {
	Name string  `json:"name" firestore:"name" validate:"required"`
	Lat  float64 `json:"lat" firestore:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" firestore:"lng" validate:"gte=-180,lte=180"`
}

type Feedback struct {
	Text    string `json:"text" firestore:"text" validate:"required"`
	Author  string `json:"author" firestore:"author" validate:"required"`
	Company string `json:"company,omitempty" firestore:"company,omitempty"`
}

// Event represents the stored document. ID comes from the document key and is
// never written as a field.
type Event struct {
	ID            string     `json:"id" firestore:"-"`
	Title         string     `json:"title" firestore:"title"`
	Date          string     `json:"date" firestore:"date"`
	EndDate       string     `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	Location      Location   `json:"location" firestore:"location"`
	EventType     EventType  `json:"eventType" firestore:"eventType"`
	EventName     string     `json:"eventName" firestore:"eventName"`
	Description   string     `json:"description,omitempty" firestore:"description,omitempty"`
	Reference     string     `json:"reference,omitempty" firestore:"reference,omitempty"`
	Images        []string   `json:"images" firestore:"images"`
	CreatedAt     time.Time  `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	Status        Status     `json:"status" firestore:"status"`
	HoursInvested *float64   `json:"hoursInvested,omitempty" firestore:"hoursInvested,omitempty"`
	Company       string     `json:"company,omitempty" firestore:"company,omitempty"`
	Audience      Audience   `json:"audience" firestore:"audience"`
	Feedback      []Feedback `json:"feedback,omitempty" firestore:"feedback,omitempty"`
}

// EffectiveEnd is EndDate when set, otherwise Date.
func (e Event) EffectiveEnd() string {
	if e.EndDate != "" {
		return e.EndDate
	}
	return e.Date
}

// LatLng is a map position picked by the user
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// User is the signed-in identity
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
}

// UserProfile is the stored record that decides the role of a user
type UserProfile struct {
	UID  string   `json:"uid" firestore:"uid"`
	Role UserRole `json:"role" firestore:"role"`
}

// APIResponse is a standard wrapper for responses
type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
	Meta  interface{} `json:"meta,omitempty"`
}
