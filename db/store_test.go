// ABOUTME: Tests for the in-memory session store
// ABOUTME: Covers lookups, whole-collection replacement and contact mutations
package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/kinetic/models"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return NewSeededStore(func() time.Time { return fixedNow })
}

func TestSeededStore(t *testing.T) {
	store := setupTestStore(t)

	assert.Equal(t, "2024-06-01", store.Today())
	assert.Equal(t, 4, store.Len())

	contacts := store.Contacts()
	require.Len(t, contacts, 4)
	assert.Equal(t, "Sarah Chen", contacts[0].Name)
	assert.Equal(t, "2024-06-01", contacts[0].OneOffEvents[0].NotifyDate)
	assert.Equal(t, "2024-05-31", contacts[1].NextFollowUpDate)
	assert.Equal(t, "2024-06-01", contacts[3].NextFollowUpDate)

	for i := range contacts {
		assert.NoError(t, models.Validate(&contacts[i]), contacts[i].Name)
	}
}

func TestContactsReturnsCopies(t *testing.T) {
	store := setupTestStore(t)

	contacts := store.Contacts()
	contacts[0].Name = "Mutated"
	contacts[0].Commonalities[0] = "Mutated"

	fresh, err := store.GetContact("1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", fresh.Name)
	assert.Equal(t, "Stanford Alumni", fresh.Commonalities[0])
}

func TestGetContactNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetContact("missing")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestFindContacts(t *testing.T) {
	store := setupTestStore(t)

	found := store.FindContacts("meta", "", 0)
	require.Len(t, found, 1)
	assert.Equal(t, "David Kim", found[0].Name)

	found = store.FindContacts("", models.StatusPending, 0)
	require.Len(t, found, 1)
	assert.Equal(t, "Elena Rodriguez", found[0].Name)

	found = store.FindContacts("", "", 2)
	assert.Len(t, found, 2)

	found = store.FindContacts("partner", models.StatusNurturing, 0)
	assert.Empty(t, found)
}

func TestReplaceValidatesWholeCollection(t *testing.T) {
	store := setupTestStore(t)

	contacts := store.Contacts()
	contacts[2].Status = "Friend"
	err := store.Replace(contacts)
	require.Error(t, err)

	// the rejected collection never became visible
	c, err := store.GetContact("3")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, c.Status)

	contacts = store.Contacts()
	contacts[1].ID = contacts[0].ID
	assert.ErrorIs(t, store.Replace(contacts), ErrDuplicateID)

	require.NoError(t, store.Replace(nil))
	assert.Equal(t, 0, store.Len())
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(SeedContacts("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 4, store.Len())

	_, err = NewStore([]models.Contact{{Name: "No ID", Status: models.StatusLead, FollowUpInterval: 30}})
	assert.Error(t, err)
}

func TestAddContactDefaults(t *testing.T) {
	store := setupTestStore(t)

	c := &models.Contact{Name: "Priya Nair", Company: "Stripe", Position: "Staff Engineer"}
	require.NoError(t, store.AddContact(c))

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, models.StatusLead, c.Status)
	assert.Equal(t, models.DefaultFollowUpInterval, c.FollowUpInterval)
	assert.Equal(t, "2024-06-01", c.CreatedAt)
	assert.Equal(t, "2024-07-01", c.NextFollowUpDate)
	assert.Equal(t, 5, store.Len())

	stored, err := store.GetContact(c.ID)
	require.NoError(t, err)
	assert.Equal(t, *c, *stored)
}

func TestAddContactRejectsInvalid(t *testing.T) {
	store := setupTestStore(t)

	c := &models.Contact{Company: "Nameless Inc"}
	err := store.AddContact(c)
	require.Error(t, err)
	assert.Empty(t, c.ID)
	assert.Equal(t, 4, store.Len())
}

func TestUpdateContactReplacesRecord(t *testing.T) {
	store := setupTestStore(t)

	c, err := store.GetContact("3")
	require.NoError(t, err)
	c.ID = "ignored"
	c.Position = "CEO"
	c.Commonalities = nil
	require.NoError(t, store.UpdateContact("3", c))

	updated, err := store.GetContact("3")
	require.NoError(t, err)
	assert.Equal(t, "CEO", updated.Position)
	assert.Nil(t, updated.Commonalities)

	assert.ErrorIs(t, store.UpdateContact("nope", c), ErrContactNotFound)
}

func TestDeleteContact(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.DeleteContact("2"))
	assert.Equal(t, 3, store.Len())
	_, err := store.GetContact("2")
	assert.ErrorIs(t, err, ErrContactNotFound)

	assert.ErrorIs(t, store.DeleteContact("2"), ErrContactNotFound)
}

func TestSetStatus(t *testing.T) {
	store := setupTestStore(t)

	c, err := store.SetStatus("3", models.StatusConnected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConnected, c.Status)

	_, err = store.SetStatus("3", "Archived")
	assert.Error(t, err)

	_, err = store.SetStatus("missing", models.StatusLead)
	assert.ErrorIs(t, err, ErrContactNotFound)
}
