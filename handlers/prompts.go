// ABOUTME: MCP prompt handlers for reusable networking workflow templates
// ABOUTME: Provides contact-summary and follow-up-suggestions prompts
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

type PromptHandlers struct {
	store *db.Store
}

func NewPromptHandlers(store *db.Store) *PromptHandlers {
	return &PromptHandlers{store: store}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "contact-summary":
		return h.getContactSummaryPrompt(request.Params.Arguments)
	case "follow-up-suggestions":
		return h.getFollowUpSuggestionsPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getContactSummaryPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["contact_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("contact_id is required")
	}

	contact, err := h.store.GetContact(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}

	var text strings.Builder
	text.WriteString("Please provide a concise relationship summary of this contact:\n\n")
	text.WriteString(fmt.Sprintf("Name: %s\n", contact.Name))
	text.WriteString(fmt.Sprintf("Role: %s @ %s\n", contact.Position, contact.Company))
	text.WriteString(fmt.Sprintf("Stage: %s\n", contact.Status))
	if contact.Location != "" {
		text.WriteString(fmt.Sprintf("Location: %s\n", contact.Location))
	}
	if contact.Education != "" {
		text.WriteString(fmt.Sprintf("Education: %s\n", contact.Education))
	}
	if len(contact.Commonalities) > 0 {
		text.WriteString(fmt.Sprintf("Commonalities: %s\n", strings.Join(contact.Commonalities, ", ")))
	}
	text.WriteString(fmt.Sprintf("Cadence: every %d days, next %s\n", contact.FollowUpInterval, contact.NextFollowUpDate))

	if len(contact.Interactions) > 0 {
		text.WriteString("\nInteractions:\n")
		for _, in := range contact.Interactions {
			text.WriteString(fmt.Sprintf("- %s (score %d/10): %s", in.Date, in.Score, in.Notes))
			if in.Hook != "" {
				text.WriteString(fmt.Sprintf(" Hook: %s.", in.Hook))
			}
			if in.AltruismRecord != "" {
				text.WriteString(fmt.Sprintf(" Gave: %s.", in.AltruismRecord))
			}
			text.WriteString("\n")
		}
	}

	text.WriteString("\nSuggest what to talk about next and how to add value.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Relationship summary for %s", contact.Name),
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text.String()}},
		},
	}, nil
}

func (h *PromptHandlers) getFollowUpSuggestionsPrompt() (*mcp.GetPromptResult, error) {
	today := h.store.Today()
	queue := db.FollowUpQueue(h.store.Contacts(), today)

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Today is %s. These contacts need attention:\n\n", today))
	if len(queue) == 0 {
		text.WriteString("(nobody is due; suggest who to reconnect with proactively)\n")
	}
	for _, item := range queue {
		c := item.Contact
		text.WriteString(fmt.Sprintf("- %s, %s @ %s [%s]", c.Name, c.Position, c.Company, c.Status))
		switch {
		case item.OverdueDays > 0:
			text.WriteString(fmt.Sprintf(" %dd overdue", item.OverdueDays))
		case item.DueToday:
			text.WriteString(" due today")
		}
		for _, e := range item.PendingEvents {
			text.WriteString(fmt.Sprintf("; event: %s on %s", e.Name, e.EventDate))
		}
		if hook := latestHook(c.Interactions); hook != "" {
			text.WriteString(fmt.Sprintf("; last hook: %s", hook))
		}
		text.WriteString("\n")
	}
	text.WriteString("\nDraft a short, personal follow-up message for each.")

	return &mcp.GetPromptResult{
		Description: "Follow-up suggestions for today",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text.String()}},
		},
	}, nil
}

func latestHook(interactions []models.Interaction) string {
	latest := models.Interaction{}
	for _, in := range interactions {
		if in.Hook != "" && in.Date >= latest.Date {
			latest = in
		}
	}
	return latest.Hook
}
