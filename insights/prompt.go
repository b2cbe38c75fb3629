// ABOUTME: Builds the audit prompt from a pruned projection of the contacts
// ABOUTME: Only fields that inform the analysis are sent to the model
package insights

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/kinetic/models"
)

// ProjectedInteraction is the per-interaction slice of data the model sees.
type ProjectedInteraction struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Note  string `json:"note"`
	Alt   string `json:"alt"`
}

// ProjectedContact drops identity fields (name, URLs, ids) and keeps the
// signals the audit reasons about.
type ProjectedContact struct {
	Status  models.Status          `json:"status"`
	Company string                 `json:"company"`
	Pos     string                 `json:"pos"`
	Edu     string                 `json:"edu"`
	Loc     string                 `json:"loc"`
	Common  []string               `json:"common"`
	Ints    []ProjectedInteraction `json:"ints"`
	Events  int                    `json:"events"`
}

// Projection prunes contacts for the prompt.
func Projection(contacts []models.Contact) []ProjectedContact {
	out := make([]ProjectedContact, len(contacts))
	for i, c := range contacts {
		common := c.Commonalities
		if common == nil {
			common = []string{}
		}
		ints := make([]ProjectedInteraction, len(c.Interactions))
		for j, in := range c.Interactions {
			ints[j] = ProjectedInteraction{
				Date:  in.Date,
				Score: in.Score,
				Note:  in.Notes,
				Alt:   in.AltruismRecord,
			}
		}
		out[i] = ProjectedContact{
			Status:  c.Status,
			Company: c.Company,
			Pos:     c.Position,
			Edu:     c.Education,
			Loc:     c.Location,
			Common:  common,
			Ints:    ints,
			Events:  len(c.OneOffEvents),
		}
	}
	return out
}

var auditTasks = []string{
	"Calculate Conversion Funnel (Sent vs Responded vs Coffee).",
	`Identify "Success Persona" (traits of people who responded/did coffee) vs "Failure Persona".`,
	`Calculate "Feature Hit Rates": % of successful interactions sharing specific traits (Alumni, Location, etc).`,
	"Extract keyword trends and altruism momentum.",
}

// BuildPrompt renders the audit request for a period.
func BuildPrompt(contacts []models.Contact, period models.ReviewPeriod) (string, error) {
	if !period.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	dataset, err := json.Marshal(Projection(contacts))
	if err != nil {
		return "", fmt.Errorf("failed to encode dataset: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Networking Audit Period: %s.\n", period.Label())
	fmt.Fprintf(&b, "Dataset: %s\n\n", dataset)
	b.WriteString("TASK:\n")
	for i, task := range auditTasks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, task)
	}
	b.WriteString("\nConstraint: Be precise, data-driven, and brief.\n")
	return b.String(), nil
}
