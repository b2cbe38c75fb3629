// ABOUTME: Tests for networking data models
// ABOUTME: Validates status parsing, follow-up predicates, cloning and validation
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2024-06-01"

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Lead":             StatusLead,
		"lead":             StatusLead,
		"Coffee Scheduled": StatusCoffeeScheduled,
		"coffee-scheduled": StatusCoffeeScheduled,
		"follow_up_needed": StatusFollowUpNeeded,
		"Follow-up Needed": StatusFollowUpNeeded,
		" nurturing ":      StatusNurturing,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseStatus("friend")
	assert.Error(t, err)
}

func TestStatusesAreValid(t *testing.T) {
	assert.Len(t, Statuses, 6)
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("Archived").Valid())
}

func TestFollowUpPredicates(t *testing.T) {
	tests := []struct {
		name     string
		next     string
		overdue  bool
		dueToday bool
		due      bool
	}{
		{"yesterday", "2024-05-31", true, false, true},
		{"today", today, false, true, true},
		{"tomorrow", "2024-06-02", false, false, false},
		{"unset", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Contact{NextFollowUpDate: tt.next}
			assert.Equal(t, tt.overdue, c.IsOverdue(today))
			assert.Equal(t, tt.dueToday, c.IsDueToday(today))
			assert.Equal(t, tt.due, c.IsFollowUpDue(today))
			assert.Equal(t, tt.due, c.NeedsFollowUp(today))
		})
	}
}

func TestPendingEvents(t *testing.T) {
	c := &Contact{
		NextFollowUpDate: "2024-12-01",
		OneOffEvents: []OneOffEvent{
			{ID: "due", NotifyDate: today},
			{ID: "past", NotifyDate: "2024-01-01"},
			{ID: "done", NotifyDate: "2024-01-01", Completed: true},
			{ID: "future", NotifyDate: "2024-06-02"},
			{ID: "blank"},
		},
	}

	pending := c.PendingEvents(today)
	require.Len(t, pending, 2)
	assert.Equal(t, "due", pending[0].ID)
	assert.Equal(t, "past", pending[1].ID)
	assert.True(t, c.NeedsFollowUp(today))

	c.OneOffEvents = c.OneOffEvents[2:]
	assert.False(t, c.NeedsFollowUp(today))
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	orig := Contact{
		Name:          "Sarah",
		Commonalities: []string{"Stanford Alumni"},
		Interactions:  []Interaction{{ID: "i1", Score: 9}},
		OneOffEvents:  []OneOffEvent{{ID: "e1"}},
	}

	cp := orig.Clone()
	cp.Commonalities[0] = "changed"
	cp.Interactions[0].Score = 1
	cp.OneOffEvents[0].Completed = true

	assert.Equal(t, "Stanford Alumni", orig.Commonalities[0])
	assert.Equal(t, 9, orig.Interactions[0].Score)
	assert.False(t, orig.OneOffEvents[0].Completed)
}

func TestLatestInteractionDate(t *testing.T) {
	c := &Contact{}
	assert.Equal(t, "", c.LatestInteractionDate())

	c.Interactions = []Interaction{{Date: "2024-05-10"}, {Date: "2024-05-20"}, {Date: "2024-04-01"}}
	assert.Equal(t, "2024-05-20", c.LatestInteractionDate())
}

func TestDateHelpers(t *testing.T) {
	assert.Equal(t, "2024-06-01", Today(time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)))

	next, err := AddDays("2024-05-20", 30)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-19", next)

	days, err := DaysBetween("2024-05-29", today)
	require.NoError(t, err)
	assert.Equal(t, 3, days)

	_, err = AddDays("06/01/2024", 1)
	assert.Error(t, err)
}

func TestValidateContact(t *testing.T) {
	valid := Contact{
		Name:             "Marcus Thorne",
		Status:           StatusConnected,
		FollowUpInterval: 30,
		CreatedAt:        "2024-03-22",
		NextFollowUpDate: "2024-06-01",
		LinkedInURL:      "https://linkedin.com/in/marcusthorne",
	}
	require.NoError(t, Validate(&valid))

	bad := valid
	bad.Name = ""
	bad.Status = "Friend"
	bad.FollowUpInterval = 0
	err := Validate(&bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Status must be a known lifecycle stage")
	assert.Contains(t, err.Error(), "FollowUpInterval must be at least 1")
}

func TestValidateInteractionScore(t *testing.T) {
	i := Interaction{Date: "2024-05-10", Score: 11}
	err := Validate(&i)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Score must be at most 10")

	i.Score = 10
	assert.NoError(t, Validate(&i))

	i.Date = "yesterday"
	assert.Error(t, Validate(&i))
}

func TestValidateEventDates(t *testing.T) {
	e := OneOffEvent{Name: "Launch", EventDate: "2024-12-01", NotifyDate: "2024-11-20"}
	assert.NoError(t, Validate(&e))

	e.NotifyDate = ""
	assert.Error(t, Validate(&e))
}

func TestParseReviewPeriod(t *testing.T) {
	for _, raw := range []string{"W", "w", "weekly"} {
		p, err := ParseReviewPeriod(raw)
		require.NoError(t, err)
		assert.Equal(t, PeriodWeekly, p)
	}

	p, err := ParseReviewPeriod("Q")
	require.NoError(t, err)
	assert.Equal(t, "Quarterly (90 days)", p.Label())

	_, err = ParseReviewPeriod("D")
	assert.Error(t, err)
	assert.False(t, ReviewPeriod("D").Valid())
}

func TestParseReviewPeriodVariants(t *testing.T) {
	for raw, want := range map[string]ReviewPeriod{
		"W":         PeriodWeekly,
		"m":         PeriodMonthly,
		"Quarterly": PeriodQuarterly,
		" yearly ":  PeriodYearly,
	} {
		got, err := ParseReviewPeriod(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	_, err := ParseReviewPeriod("D")
	assert.Error(t, err)

	assert.Equal(t, "Monthly (30 days)", PeriodMonthly.Label())
	assert.False(t, ReviewPeriod("X").Valid())
}
