// ABOUTME: Tests for follow-up queue, interaction logging and event reminders
// ABOUTME: Exercises the due/overdue predicate and nulls-last ordering
package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/kinetic/models"
)

func queueIDs(queue []FollowUpItem) []string {
	ids := make([]string, len(queue))
	for i, item := range queue {
		ids[i] = item.Contact.ID
	}
	return ids
}

func TestFollowUpQueueSeed(t *testing.T) {
	today := "2024-06-01"
	queue := FollowUpQueue(SeedContacts(today), today)

	// Sarah: event notify today (next is 2024-08-10); Marcus: yesterday; David: today.
	// Elena (2024-06-15, no events) is not due.
	require.Equal(t, []string{"2", "4", "1"}, queueIDs(queue))

	marcus := queue[0]
	assert.True(t, marcus.FollowUpDue)
	assert.False(t, marcus.DueToday)
	assert.Equal(t, 1, marcus.OverdueDays)

	david := queue[1]
	assert.True(t, david.DueToday)
	assert.Equal(t, 0, david.OverdueDays)

	sarah := queue[2]
	assert.False(t, sarah.FollowUpDue)
	require.Len(t, sarah.PendingEvents, 1)
	assert.Equal(t, "New Product Launch", sarah.PendingEvents[0].Name)
}

func TestFollowUpQueueMembershipProperty(t *testing.T) {
	today := "2024-06-01"
	dates := []string{"", "2024-05-01", "2024-06-01", "2024-06-02"}
	events := [][]models.OneOffEvent{
		nil,
		{{ID: "a", NotifyDate: "2024-05-30"}},
		{{ID: "b", NotifyDate: "2024-05-30", Completed: true}},
		{{ID: "c", NotifyDate: "2024-06-10"}},
	}

	var contacts []models.Contact
	n := 0
	for _, d := range dates {
		for _, ev := range events {
			n++
			contacts = append(contacts, models.Contact{
				ID:               string(rune('a' + n)),
				NextFollowUpDate: d,
				OneOffEvents:     ev,
			})
		}
	}

	queue := FollowUpQueue(contacts, today)
	inQueue := map[string]bool{}
	for _, item := range queue {
		inQueue[item.Contact.ID] = true
	}

	for _, c := range contacts {
		want := (c.NextFollowUpDate != "" && c.NextFollowUpDate <= today)
		for _, e := range c.OneOffEvents {
			if !e.Completed && e.NotifyDate <= today {
				want = true
			}
		}
		assert.Equal(t, want, inQueue[c.ID], "next=%q events=%v", c.NextFollowUpDate, c.OneOffEvents)
	}
}

func TestFollowUpQueueOrdering(t *testing.T) {
	today := "2024-06-01"
	due := []models.OneOffEvent{{ID: "e", NotifyDate: today}}
	contacts := []models.Contact{
		{ID: "no-date-1", OneOffEvents: due},
		{ID: "late", NextFollowUpDate: "2024-05-30"},
		{ID: "future-with-event", NextFollowUpDate: "2024-09-01", OneOffEvents: due},
		{ID: "no-date-2", OneOffEvents: due},
		{ID: "earliest", NextFollowUpDate: "2024-01-01"},
	}

	queue := FollowUpQueue(contacts, today)
	assert.Equal(t, []string{"earliest", "late", "future-with-event", "no-date-1", "no-date-2"}, queueIDs(queue))
}

func TestFollowUpQueueEmpty(t *testing.T) {
	assert.Empty(t, FollowUpQueue(nil, "2024-06-01"))
}

func TestLogInteractionReschedules(t *testing.T) {
	store := setupTestStore(t)

	in := &models.Interaction{
		Date:           "2024-05-28",
		Duration:       30,
		Notes:          "Intro call about LP network.",
		AltruismRecord: "Shared a climate-tech deal memo.",
		Score:          7,
	}
	c, err := store.LogInteraction("2", in)
	require.NoError(t, err)

	assert.NotEmpty(t, in.ID)
	require.Len(t, c.Interactions, 1)
	assert.Equal(t, "2024-06-27", c.NextFollowUpDate)

	queue := FollowUpQueue(store.Contacts(), store.Today())
	assert.NotContains(t, queueIDs(queue), "2")
}

func TestLogInteractionOlderDateKeepsLatestAnchor(t *testing.T) {
	store := setupTestStore(t)

	// David's latest interaction is 2024-05-05 with a 30 day cadence.
	c, err := store.LogInteraction("4", &models.Interaction{Date: "2024-04-01", Score: 5})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-04", c.NextFollowUpDate)
}

func TestLogInteractionValidation(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.LogInteraction("2", &models.Interaction{Date: "2024-05-28", Score: 12})
	assert.Error(t, err)

	_, err = store.LogInteraction("missing", &models.Interaction{Date: "2024-05-28", Score: 5})
	assert.ErrorIs(t, err, ErrContactNotFound)

	c, err := store.GetContact("2")
	require.NoError(t, err)
	assert.Empty(t, c.Interactions)
}

func TestSetFollowUpInterval(t *testing.T) {
	store := setupTestStore(t)

	// no interactions: anchored on today
	c, err := store.SetFollowUpInterval("3", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.FollowUpInterval)
	assert.Equal(t, "2024-06-08", c.NextFollowUpDate)

	// anchored on the latest interaction (2024-05-10)
	c, err = store.SetFollowUpInterval("1", 14)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-24", c.NextFollowUpDate)

	_, err = store.SetFollowUpInterval("1", 0)
	assert.Error(t, err)
}

func TestEventLifecycle(t *testing.T) {
	store := setupTestStore(t)

	ev := &models.OneOffEvent{Name: "Fund III close", EventDate: "2024-07-01", NotifyDate: "2024-05-25"}
	c, err := store.AddEvent("3", ev)
	require.NoError(t, err)
	require.NotEmpty(t, ev.ID)
	require.Len(t, c.OneOffEvents, 1)

	queue := FollowUpQueue(store.Contacts(), store.Today())
	assert.Contains(t, queueIDs(queue), "3")

	c, err = store.CompleteEvent("3", ev.ID)
	require.NoError(t, err)
	assert.True(t, c.OneOffEvents[0].Completed)

	queue = FollowUpQueue(store.Contacts(), store.Today())
	assert.NotContains(t, queueIDs(queue), "3")

	_, err = store.CompleteEvent("3", "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = store.AddEvent("3", &models.OneOffEvent{Name: "No dates"})
	assert.Error(t, err)
}
