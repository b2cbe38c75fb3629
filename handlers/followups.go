// ABOUTME: Follow-up MCP tool handlers
// ABOUTME: Interaction logging, cadence, event reminders, the follow-up queue and conversion stats
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

type FollowUpHandlers struct {
	store *db.Store
}

func NewFollowUpHandlers(store *db.Store) *FollowUpHandlers {
	return &FollowUpHandlers{store: store}
}

type LogInteractionInput struct {
	ContactID      string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Date           string `json:"date,omitempty" jsonschema:"Interaction date YYYY-MM-DD (defaults to today)"`
	Duration       int    `json:"duration,omitempty" jsonschema:"Length in minutes"`
	Notes          string `json:"notes,omitempty" jsonschema:"What was discussed"`
	Hook           string `json:"hook,omitempty" jsonschema:"Personal detail to bring up next time"`
	ValueReceived  string `json:"value_received,omitempty" jsonschema:"What you got out of it"`
	AltruismRecord string `json:"altruism_record,omitempty" jsonschema:"How you helped them"`
	Score          int    `json:"score,omitempty" jsonschema:"Quality score from 0 to 10"`
}

func (h *FollowUpHandlers) LogInteraction(_ context.Context, request *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}

	date := input.Date
	if date == "" {
		date = h.store.Today()
	}

	c, err := h.store.LogInteraction(input.ContactID, &models.Interaction{
		Date:           date,
		Duration:       input.Duration,
		Notes:          input.Notes,
		Hook:           input.Hook,
		ValueReceived:  input.ValueReceived,
		AltruismRecord: input.AltruismRecord,
		Score:          input.Score,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to log interaction: %w", err)
	}
	return nil, ContactOutput{Contact: *c}, nil
}

type SetFollowUpIntervalInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Days      int    `json:"days" jsonschema:"Follow-up cadence in days (1 to 3650)"`
}

func (h *FollowUpHandlers) SetFollowUpInterval(_ context.Context, request *mcp.CallToolRequest, input SetFollowUpIntervalInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}
	c, err := h.store.SetFollowUpInterval(input.ContactID, input.Days)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to set follow-up interval: %w", err)
	}
	return nil, ContactOutput{Contact: *c}, nil
}

type AddEventInput struct {
	ContactID  string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Name       string `json:"name" jsonschema:"What is happening, e.g. product launch (required)"`
	EventDate  string `json:"event_date" jsonschema:"When it happens, YYYY-MM-DD (required)"`
	NotifyDate string `json:"notify_date,omitempty" jsonschema:"When to be reminded, YYYY-MM-DD (defaults to the event date)"`
}

func (h *FollowUpHandlers) AddEvent(_ context.Context, request *mcp.CallToolRequest, input AddEventInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}

	notify := input.NotifyDate
	if notify == "" {
		notify = input.EventDate
	}

	c, err := h.store.AddEvent(input.ContactID, &models.OneOffEvent{
		Name:       input.Name,
		EventDate:  input.EventDate,
		NotifyDate: notify,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add event: %w", err)
	}
	return nil, ContactOutput{Contact: *c}, nil
}

type CompleteEventInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	EventID   string `json:"event_id" jsonschema:"Event ID (required)"`
}

func (h *FollowUpHandlers) CompleteEvent(_ context.Context, request *mcp.CallToolRequest, input CompleteEventInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == "" || input.EventID == "" {
		return nil, ContactOutput{}, fmt.Errorf("contact_id and event_id are required")
	}
	c, err := h.store.CompleteEvent(input.ContactID, input.EventID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to complete event: %w", err)
	}
	return nil, ContactOutput{Contact: *c}, nil
}

type FollowUpQueueInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries (default all)"`
}

type FollowUpEntry struct {
	ContactID     string               `json:"contact_id"`
	Name          string               `json:"name"`
	Company       string               `json:"company"`
	Position      string               `json:"position"`
	Status        models.Status        `json:"status"`
	NextFollowUp  string               `json:"next_follow_up"`
	OverdueDays   int                  `json:"overdue_days"`
	DueToday      bool                 `json:"due_today"`
	PendingEvents []models.OneOffEvent `json:"pending_events"`
}

type FollowUpQueueOutput struct {
	Today   string          `json:"today"`
	Entries []FollowUpEntry `json:"entries"`
}

func (h *FollowUpHandlers) FollowUpQueue(_ context.Context, request *mcp.CallToolRequest, input FollowUpQueueInput) (*mcp.CallToolResult, FollowUpQueueOutput, error) {
	today := h.store.Today()
	queue := db.FollowUpQueue(h.store.Contacts(), today)
	if input.Limit > 0 && len(queue) > input.Limit {
		queue = queue[:input.Limit]
	}

	entries := make([]FollowUpEntry, len(queue))
	for i, item := range queue {
		pending := item.PendingEvents
		if pending == nil {
			pending = []models.OneOffEvent{}
		}
		entries[i] = FollowUpEntry{
			ContactID:     item.Contact.ID,
			Name:          item.Contact.Name,
			Company:       item.Contact.Company,
			Position:      item.Contact.Position,
			Status:        item.Contact.Status,
			NextFollowUp:  item.Contact.NextFollowUpDate,
			OverdueDays:   item.OverdueDays,
			DueToday:      item.DueToday,
			PendingEvents: pending,
		}
	}
	return nil, FollowUpQueueOutput{Today: today, Entries: entries}, nil
}

type ConversionStatsInput struct{}

func (h *FollowUpHandlers) ConversionStats(_ context.Context, request *mcp.CallToolRequest, input ConversionStatsInput) (*mcp.CallToolResult, db.Stats, error) {
	return nil, db.ComputeStats(h.store.Contacts()), nil
}
