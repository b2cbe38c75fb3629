// ABOUTME: Data models for networking contacts and their lifecycle
// ABOUTME: Defines Contact, Interaction, OneOffEvent, Status and follow-up predicates
package models

import (
	"fmt"
	"strings"
)

// DefaultFollowUpInterval is the cadence in days applied to new contacts.
const DefaultFollowUpInterval = 30

// Status is the relationship lifecycle stage of a contact.
type Status string

const (
	StatusLead            Status = "Lead"
	StatusPending         Status = "Pending"
	StatusConnected       Status = "Connected"
	StatusCoffeeScheduled Status = "Coffee Scheduled"
	StatusFollowUpNeeded  Status = "Follow-up Needed"
	StatusNurturing       Status = "Nurturing"
)

// Statuses lists every lifecycle stage in board order.
var Statuses = []Status{
	StatusLead,
	StatusPending,
	StatusConnected,
	StatusCoffeeScheduled,
	StatusFollowUpNeeded,
	StatusNurturing,
}

// Valid reports whether s is one of the known lifecycle stages.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Slug returns a lowercase dash-separated form, e.g. "coffee-scheduled".
func (s Status) Slug() string {
	return slugify(string(s))
}

// ParseStatus accepts a display name or slug ("Coffee Scheduled",
// "coffee-scheduled", "follow_up_needed") and returns the matching stage.
func ParseStatus(raw string) (Status, error) {
	want := slugify(raw)
	for _, s := range Statuses {
		if s.Slug() == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

type Interaction struct {
	ID             string `json:"id"`
	Date           string `json:"date" validate:"required,isodate"`
	Duration       int    `json:"duration" validate:"gte=0"` // minutes
	Notes          string `json:"notes"`
	Hook           string `json:"hook"`
	ValueReceived  string `json:"valueReceived"`
	AltruismRecord string `json:"altruismRecord"`
	Score          int    `json:"score" validate:"gte=0,lte=10"`
}

type OneOffEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required"`
	EventDate  string `json:"eventDate" validate:"required,isodate"`
	NotifyDate string `json:"notifyDate" validate:"required,isodate"`
	Completed  bool   `json:"completed"`
}

// IsNotifyDue reports whether the reminder is actionable on the given day.
func (e OneOffEvent) IsNotifyDue(today string) bool {
	return !e.Completed && e.NotifyDate != "" && e.NotifyDate <= today
}

type Contact struct {
	ID               string        `json:"id"`
	Name             string        `json:"name" validate:"required"`
	Company          string        `json:"company"`
	Position         string        `json:"position"`
	Location         string        `json:"location"`
	Education        string        `json:"education"`
	LinkedInURL      string        `json:"linkedinUrl" validate:"omitempty,url"`
	Status           Status        `json:"status" validate:"required,status"`
	Commonalities    []string      `json:"commonalities"`
	Interactions     []Interaction `json:"interactions" validate:"dive"`
	CreatedAt        string        `json:"createdAt" validate:"omitempty,isodate"`
	FollowUpInterval int           `json:"followUpInterval" validate:"gte=1,lte=3650"`
	NextFollowUpDate string        `json:"nextFollowUpDate" validate:"omitempty,isodate"`
	OneOffEvents     []OneOffEvent `json:"oneOffEvents" validate:"dive"`
}

// IsOverdue reports a follow-up date strictly before today.
func (c *Contact) IsOverdue(today string) bool {
	return c.NextFollowUpDate != "" && c.NextFollowUpDate < today
}

// IsDueToday reports a follow-up date equal to today.
func (c *Contact) IsDueToday(today string) bool {
	return c.NextFollowUpDate != "" && c.NextFollowUpDate == today
}

// IsFollowUpDue reports a follow-up date on or before today.
func (c *Contact) IsFollowUpDue(today string) bool {
	return c.NextFollowUpDate != "" && c.NextFollowUpDate <= today
}

// PendingEvents returns the uncompleted events whose notify date has passed.
func (c *Contact) PendingEvents(today string) []OneOffEvent {
	var pending []OneOffEvent
	for _, e := range c.OneOffEvents {
		if e.IsNotifyDue(today) {
			pending = append(pending, e)
		}
	}
	return pending
}

// NeedsFollowUp is the follow-up hub predicate.
func (c *Contact) NeedsFollowUp(today string) bool {
	if c.IsFollowUpDue(today) {
		return true
	}
	for _, e := range c.OneOffEvents {
		if e.IsNotifyDue(today) {
			return true
		}
	}
	return false
}

// LatestInteractionDate returns the most recent interaction date, or "".
func (c *Contact) LatestInteractionDate() string {
	latest := ""
	for _, i := range c.Interactions {
		if i.Date > latest {
			latest = i.Date
		}
	}
	return latest
}

// Clone returns a deep copy so callers never share slices with the store.
// Empty slices stay empty rather than becoming nil.
func (c Contact) Clone() Contact {
	out := c
	if c.Commonalities != nil {
		out.Commonalities = make([]string, len(c.Commonalities))
		copy(out.Commonalities, c.Commonalities)
	}
	if c.Interactions != nil {
		out.Interactions = make([]Interaction, len(c.Interactions))
		copy(out.Interactions, c.Interactions)
	}
	if c.OneOffEvents != nil {
		out.OneOffEvents = make([]OneOffEvent, len(c.OneOffEvents))
		copy(out.OneOffEvents, c.OneOffEvents)
	}
	return out
}

// CloneAll deep-copies a contact collection.
func CloneAll(contacts []Contact) []Contact {
	out := make([]Contact, len(contacts))
	for i, c := range contacts {
		out[i] = c.Clone()
	}
	return out
}
