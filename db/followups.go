// ABOUTME: Follow-up tracking over the session store
// ABOUTME: Handles interaction logging, cadence, one-off events and the follow-up queue
package db

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/kinetic/models"
)

// FollowUpItem is one entry of the follow-up hub.
type FollowUpItem struct {
	Contact       models.Contact       `json:"contact"`
	FollowUpDue   bool                 `json:"follow_up_due"`
	DueToday      bool                 `json:"due_today"`
	OverdueDays   int                  `json:"overdue_days"`
	PendingEvents []models.OneOffEvent `json:"pending_events"`
}

// FollowUpQueue returns the contacts whose follow-up date is on or before today
// or that carry an uncompleted event whose notify date has passed. Items are
// ordered by follow-up date ascending; contacts without a date sort last.
func FollowUpQueue(contacts []models.Contact, today string) []FollowUpItem {
	var queue []FollowUpItem
	for _, c := range contacts {
		if !c.NeedsFollowUp(today) {
			continue
		}

		item := FollowUpItem{
			Contact:       c.Clone(),
			FollowUpDue:   c.IsFollowUpDue(today),
			DueToday:      c.IsDueToday(today),
			PendingEvents: c.PendingEvents(today),
		}
		if item.FollowUpDue {
			if days, err := models.DaysBetween(c.NextFollowUpDate, today); err == nil {
				item.OverdueDays = days
			}
		}
		queue = append(queue, item)
	}

	sort.SliceStable(queue, func(i, j int) bool {
		a, b := queue[i].Contact.NextFollowUpDate, queue[j].Contact.NextFollowUpDate
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return queue
}

// LogInteraction appends an interaction and reschedules the next follow-up one
// interval after the most recent interaction.
func (s *Store) LogInteraction(contactID string, interaction *models.Interaction) (*models.Contact, error) {
	i := *interaction
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if err := models.Validate(&i); err != nil {
		return nil, err
	}

	updated, err := s.update(contactID, func(_ string, c *models.Contact) error {
		c.Interactions = append(c.Interactions, i)
		return reschedule(c, c.LatestInteractionDate())
	})
	if err != nil {
		return nil, err
	}
	*interaction = i
	return updated, nil
}

// SetFollowUpInterval changes the cadence and reschedules from the most recent
// interaction, or from today when there is none.
func (s *Store) SetFollowUpInterval(contactID string, days int) (*models.Contact, error) {
	return s.update(contactID, func(today string, c *models.Contact) error {
		c.FollowUpInterval = days
		anchor := c.LatestInteractionDate()
		if anchor == "" {
			anchor = today
		}
		return reschedule(c, anchor)
	})
}

func reschedule(c *models.Contact, anchor string) error {
	if c.FollowUpInterval < 1 {
		return fmt.Errorf("invalid contact: FollowUpInterval must be at least 1")
	}
	next, err := models.AddDays(anchor, c.FollowUpInterval)
	if err != nil {
		return err
	}
	c.NextFollowUpDate = next
	return nil
}

// AddEvent attaches a one-off reminder to a contact.
func (s *Store) AddEvent(contactID string, event *models.OneOffEvent) (*models.Contact, error) {
	e := *event
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := models.Validate(&e); err != nil {
		return nil, err
	}

	updated, err := s.update(contactID, func(_ string, c *models.Contact) error {
		c.OneOffEvents = append(c.OneOffEvents, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	*event = e
	return updated, nil
}

// CompleteEvent marks a reminder as handled so it leaves the follow-up queue.
func (s *Store) CompleteEvent(contactID, eventID string) (*models.Contact, error) {
	return s.update(contactID, func(_ string, c *models.Contact) error {
		for i := range c.OneOffEvents {
			if c.OneOffEvents[i].ID == eventID {
				c.OneOffEvents[i].Completed = true
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	})
}
