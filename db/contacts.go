// ABOUTME: Contact operations on the session store
// ABOUTME: Handles new leads, whole-record updates, status moves and deletion
package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/kinetic/models"
)

// AddContact inserts a new contact, filling in the defaults of a fresh lead:
// status Lead, the default cadence, createdAt today and a first follow-up one
// interval from today. The generated ID is written back into contact.
func (s *Store) AddContact(contact *models.Contact) error {
	var added models.Contact
	err := s.mutate(func(today string, contacts []models.Contact) ([]models.Contact, error) {
		c := contact.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.Status == "" {
			c.Status = models.StatusLead
		}
		if c.FollowUpInterval == 0 {
			c.FollowUpInterval = models.DefaultFollowUpInterval
		}
		if c.CreatedAt == "" {
			c.CreatedAt = today
		}
		if c.Commonalities == nil {
			c.Commonalities = []string{}
		}
		if c.Interactions == nil {
			c.Interactions = []models.Interaction{}
		}
		if c.OneOffEvents == nil {
			c.OneOffEvents = []models.OneOffEvent{}
		}
		if c.NextFollowUpDate == "" {
			next, err := models.AddDays(today, c.FollowUpInterval)
			if err != nil {
				return nil, err
			}
			c.NextFollowUpDate = next
		}

		added = c.Clone()
		return append(contacts, c), nil
	})
	if err != nil {
		return err
	}
	*contact = added
	return nil
}

// UpdateContact replaces one record wholesale. The ID is taken from the path,
// not from the payload.
func (s *Store) UpdateContact(id string, contact *models.Contact) error {
	return s.mutate(func(_ string, contacts []models.Contact) ([]models.Contact, error) {
		i := indexOf(contacts, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
		}
		c := contact.Clone()
		c.ID = id
		contacts[i] = c
		return contacts, nil
	})
}

// DeleteContact removes a contact from the collection.
func (s *Store) DeleteContact(id string) error {
	return s.mutate(func(_ string, contacts []models.Contact) ([]models.Contact, error) {
		i := indexOf(contacts, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
		}
		return append(contacts[:i], contacts[i+1:]...), nil
	})
}

// SetStatus moves a contact to another lifecycle stage.
func (s *Store) SetStatus(id string, status models.Status) (*models.Contact, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.update(id, func(_ string, c *models.Contact) error {
		c.Status = status
		return nil
	})
}

// update applies fn to a single contact inside a whole-collection mutation and
// returns a copy of the result.
func (s *Store) update(id string, fn func(today string, c *models.Contact) error) (*models.Contact, error) {
	var updated models.Contact
	err := s.mutate(func(today string, contacts []models.Contact) ([]models.Contact, error) {
		i := indexOf(contacts, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
		}
		if err := fn(today, &contacts[i]); err != nil {
			return nil, err
		}
		updated = contacts[i].Clone()
		return contacts, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
