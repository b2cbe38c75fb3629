// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements list_contacts, get_contact, add_contact and set_contact_status tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

type ContactHandlers struct {
	store *db.Store
}

func NewContactHandlers(store *db.Store) *ContactHandlers {
	return &ContactHandlers{store: store}
}

type ContactOutput struct {
	Contact models.Contact `json:"contact"`
}

type ListContactsInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Search query (matches name, company and position)"`
	Status string `json:"status,omitempty" jsonschema:"Filter by lifecycle stage, e.g. Connected or coffee-scheduled"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type ListContactsOutput struct {
	Contacts []models.Contact `json:"contacts"`
	Count    int              `json:"count"`
}

func (h *ContactHandlers) ListContacts(_ context.Context, request *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	var status models.Status
	if input.Status != "" {
		parsed, err := models.ParseStatus(input.Status)
		if err != nil {
			return nil, ListContactsOutput{}, err
		}
		status = parsed
	}

	limit := input.Limit
	if limit == 0 {
		limit = 50
	}

	contacts := h.store.FindContacts(input.Query, status, limit)
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return nil, ListContactsOutput{Contacts: contacts, Count: len(contacts)}, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) GetContact(_ context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}
	c, err := h.store.GetContact(input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, ContactOutput{Contact: *c}, nil
}

type AddContactInput struct {
	Name             string   `json:"name" jsonschema:"Contact name (required)"`
	Company          string   `json:"company,omitempty" jsonschema:"Company name"`
	Position         string   `json:"position,omitempty" jsonschema:"Job title"`
	Location         string   `json:"location,omitempty" jsonschema:"City or region"`
	Education        string   `json:"education,omitempty" jsonschema:"School or university"`
	LinkedInURL      string   `json:"linkedin_url,omitempty" jsonschema:"LinkedIn profile URL"`
	Commonalities    []string `json:"commonalities,omitempty" jsonschema:"Shared traits such as alumni network or former employer"`
	Status           string   `json:"status,omitempty" jsonschema:"Lifecycle stage (defaults to Lead)"`
	FollowUpInterval int      `json:"follow_up_interval,omitempty" jsonschema:"Follow-up cadence in days (defaults to 30)"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact := &models.Contact{
		Name:             input.Name,
		Company:          input.Company,
		Position:         input.Position,
		Location:         input.Location,
		Education:        input.Education,
		LinkedInURL:      input.LinkedInURL,
		Commonalities:    input.Commonalities,
		FollowUpInterval: input.FollowUpInterval,
	}
	if input.Status != "" {
		status, err := models.ParseStatus(input.Status)
		if err != nil {
			return nil, ContactOutput{}, err
		}
		contact.Status = status
	}

	if err := h.store.AddContact(contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}
	return nil, ContactOutput{Contact: *contact}, nil
}

type SetContactStatusInput struct {
	ID     string `json:"id" jsonschema:"Contact ID (required)"`
	Status string `json:"status" jsonschema:"New lifecycle stage: Lead, Pending, Connected, Coffee Scheduled, Follow-up Needed or Nurturing"`
}

func (h *ContactHandlers) SetContactStatus(_ context.Context, request *mcp.CallToolRequest, input SetContactStatusInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}
	status, err := models.ParseStatus(input.Status)
	if err != nil {
		return nil, ContactOutput{}, err
	}
	c, err := h.store.SetStatus(input.ID, status)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to set status: %w", err)
	}
	return nil, ContactOutput{Contact: *c}, nil
}
