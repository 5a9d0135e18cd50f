package domain

import (
	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format of Event.Date and Event.EndDate
const DateLayout = "2006-01-02"

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return EventType(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(EventInput)
		if in.EndDate != "" && in.EndDate < in.Date {
			sl.ReportError(in.EndDate, "EndDate", "endDate", "gtedate", "")
		}
	}, EventInput{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(EventPatch)
		if p.Date != nil && p.EndDate != nil && *p.EndDate < *p.Date {
			sl.ReportError(*p.EndDate, "EndDate", "endDate", "gtedate", "")
		}
	}, EventPatch{})
	return v
}

// EventInput is an event as submitted by the form: everything except the
// store-assigned id and creation time.
type EventInput struct {
	Title         string     `json:"title" validate:"required"`
	Date          string     `json:"date" validate:"required,datetime=2006-01-02"`
	EndDate       string     `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location      Location   `json:"location"`
	EventType     EventType  `json:"eventType" validate:"required,eventtype"`
	EventName     string     `json:"eventName"`
	Description   string     `json:"description,omitempty"`
	Reference     string     `json:"reference,omitempty" validate:"omitempty,url"`
	Images        []string   `json:"images"`
	Status        Status     `json:"status" validate:"required,oneof=completed planned"`
	HoursInvested *float64   `json:"hoursInvested,omitempty" validate:"omitempty,gte=0"`
	Company       string     `json:"company,omitempty"`
	Audience      Audience   `json:"audience" validate:"required,oneof=internal external"`
	Feedback      []Feedback `json:"feedback,omitempty" validate:"omitempty,dive"`
}

// ToEvent builds an Event without id and creation time. Slices are copied so
// the stored record never aliases the caller's input.
func (in EventInput) ToEvent() Event {
	images := append([]string{}, in.Images...)
	var feedback []Feedback
	if in.Feedback != nil {
		feedback = append([]Feedback{}, in.Feedback...)
	}
	return Event{
		Title:         in.Title,
		Date:          in.Date,
		EndDate:       in.EndDate,
		Location:      in.Location,
		EventType:     in.EventType,
		EventName:     in.EventName,
		Description:   in.Description,
		Reference:     in.Reference,
		Images:        images,
		Status:        in.Status,
		HoursInvested: in.HoursInvested,
		Company:       in.Company,
		Audience:      in.Audience,
		Feedback:      feedback,
	}
}

// EventPatch carries a partial update. Nil fields, whether omitted or sent as
// JSON null, are left untouched, so a patch cannot remove an optional field:
// strings clear to "", images and feedback to an empty list, and
// hoursInvested can only be set to another value such as 0.
type EventPatch struct {
	Title         *string     `json:"title,omitempty" validate:"omitempty,min=1"`
	Date          *string     `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string     `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location      *Location   `json:"location,omitempty"`
	EventType     *EventType  `json:"eventType,omitempty" validate:"omitempty,eventtype"`
	EventName     *string     `json:"eventName,omitempty"`
	Description   *string     `json:"description,omitempty"`
	Reference     *string     `json:"reference,omitempty" validate:"omitempty,url"`
	Images        *[]string   `json:"images,omitempty"`
	Status        *Status     `json:"status,omitempty" validate:"omitempty,oneof=completed planned"`
	HoursInvested *float64    `json:"hoursInvested,omitempty" validate:"omitempty,gte=0"`
	Company       *string     `json:"company,omitempty"`
	Audience      *Audience   `json:"audience,omitempty" validate:"omitempty,oneof=internal external"`
	Feedback      *[]Feedback `json:"feedback,omitempty" validate:"omitempty,dive"`
}

// Fields returns the provided fields keyed by their stored names.
func (p EventPatch) Fields() map[string]interface{} {
	f := make(map[string]interface{})
	if p.Title != nil {
		f["title"] = *p.Title
	}
	if p.Date != nil {
		f["date"] = *p.Date
	}
	if p.EndDate != nil {
		f["endDate"] = *p.EndDate
	}
	if p.Location != nil {
		f["location"] = *p.Location
	}
	if p.EventType != nil {
		f["eventType"] = *p.EventType
	}
	if p.EventName != nil {
		f["eventName"] = *p.EventName
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.Reference != nil {
		f["reference"] = *p.Reference
	}
	if p.Images != nil {
		f["images"] = *p.Images
	}
	if p.Status != nil {
		f["status"] = *p.Status
	}
	if p.HoursInvested != nil {
		f["hoursInvested"] = *p.HoursInvested
	}
	if p.Company != nil {
		f["company"] = *p.Company
	}
	if p.Audience != nil {
		f["audience"] = *p.Audience
	}
	if p.Feedback != nil {
		f["feedback"] = *p.Feedback
	}
	return f
}

// SignInDTO is the credential body of a sign-in request
type SignInDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DateFilterDTO sets the date window; empty bounds are open
type DateFilterDTO struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

// TypeFilterDTO replaces the active type selection
type TypeFilterDTO struct {
	Types []EventType `json:"types" validate:"dive,eventtype"`
}

// FormDTO opens the form; an empty EventID opens it in create mode
type FormDTO struct {
	EventID string `json:"eventId"`
}

// DevRoleDTO switches the simulated role in dev mode
type DevRoleDTO struct {
	Role UserRole `json:"role" validate:"required,oneof=admin readonly"`
}
