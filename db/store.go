// ABOUTME: In-memory contact collection for a single dashboard session
// ABOUTME: Every write clones the collection, applies the change and swaps it in whole
package db

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harperreed/kinetic/models"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrDuplicateID     = errors.New("duplicate contact id")
)

// Store holds the session's contacts. It has no disk backing.
type Store struct {
	mu       sync.RWMutex
	contacts []models.Contact
	now      func() time.Time
}

// NewStore creates a store holding a copy of the given contacts.
func NewStore(contacts []models.Contact) (*Store, error) {
	s := &Store{now: time.Now}
	if err := s.Replace(contacts); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSeededStore creates a store with the built-in demo dataset.
func NewSeededStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		contacts: SeedContacts(models.Today(now())),
		now:      now,
	}
}

// SetClock overrides the time source used for "today".
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Today returns the current ISO date according to the store clock.
func (s *Store) Today() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Today(s.now())
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// Contacts returns a deep copy of the collection in insertion order.
func (s *Store) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneAll(s.contacts)
}

// GetContact returns a copy of one contact.
func (s *Store) GetContact(id string) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.contacts, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	c := s.contacts[i].Clone()
	return &c, nil
}

// FindContacts filters by a case-insensitive substring over name, company and
// position, and optionally by status. A limit <= 0 means no limit.
func (s *Store) FindContacts(query string, status models.Status, limit int) []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	var out []models.Contact
	for _, c := range s.contacts {
		if status != "" && c.Status != status {
			continue
		}
		if q != "" && !matches(c, q) {
			continue
		}
		out = append(out, c.Clone())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func matches(c models.Contact, q string) bool {
	for _, field := range []string{c.Name, c.Company, c.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Replace swaps in a whole new collection after validating every record.
func (s *Store) Replace(contacts []models.Contact) error {
	next := models.CloneAll(contacts)
	if err := validateAll(next); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts = next
	return nil
}

// mutate runs fn against a private copy of the collection and installs the
// result only if fn succeeds and the result validates.
func (s *Store) mutate(fn func(today string, contacts []models.Contact) ([]models.Contact, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(models.Today(s.now()), models.CloneAll(s.contacts))
	if err != nil {
		return err
	}
	if err := validateAll(next); err != nil {
		return err
	}
	s.contacts = next
	return nil
}

func validateAll(contacts []models.Contact) error {
	seen := make(map[string]bool, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		if c.ID == "" {
			return fmt.Errorf("contact %q has no id", c.Name)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
		if err := models.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

func indexOf(contacts []models.Contact, id string) int {
	for i := range contacts {
		if contacts[i].ID == id {
			return i
		}
	}
	return -1
}
