// ABOUTME: Markdown rendering of AI audit reports
// ABOUTME: Styled for terminals with glamour, plain markdown otherwise
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/harperreed/kinetic/models"
)

// AuditMarkdown formats a report as a markdown document.
func AuditMarkdown(r *models.AuditReport) string {
	in := r.Insight
	var md strings.Builder

	fmt.Fprintf(&md, "# %s Networking Audit\n\n", r.Period.Name())
	fmt.Fprintf(&md, "%d contacts, report `%s`, %s\n\n", r.ContactCount, r.ID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	md.WriteString("## Funnel\n\n")
	fmt.Fprintf(&md, "Sent %d → Responded %d → Coffee %d\n\n", in.Funnel.Sent, in.Funnel.Responded, in.Funnel.Coffee)
	md.WriteString("| Rate | Value | Trend |\n|---|---|---|\n")
	fmt.Fprintf(&md, "| Response | %.0f%% | %s |\n", in.Funnel.ResponseRate.CurrentValue, in.Funnel.ResponseRate.ComparisonValue)
	fmt.Fprintf(&md, "| Coffee | %.0f%% | %s |\n\n", in.Funnel.CoffeeRate.CurrentValue, in.Funnel.CoffeeRate.ComparisonValue)

	md.WriteString("## Personas\n\n")
	writePersona(&md, "Success", in.Personas.Success)
	writePersona(&md, "Failure", in.Personas.Failure)
	if in.Personas.DriftAnalysis != "" {
		fmt.Fprintf(&md, "*Drift:* %s\n\n", in.Personas.DriftAnalysis)
	}

	if len(in.FeatureHitRates) > 0 {
		md.WriteString("## Feature Hit Rates\n\n| Feature | Hit rate | Notes |\n|---|---|---|\n")
		for _, h := range in.FeatureHitRates {
			fmt.Fprintf(&md, "| %s | %.1f%% | %s |\n", h.Name, h.Percentage, h.Description)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Keywords\n\n")
	fmt.Fprintf(&md, "- Mine: %s\n", strings.Join(in.Keywords.MyThoughts, ", "))
	fmt.Fprintf(&md, "- Theirs: %s\n\n", strings.Join(in.Keywords.TheirInfo, ", "))
	if in.Keywords.EvolutionNotes != "" {
		fmt.Fprintf(&md, "%s\n\n", in.Keywords.EvolutionNotes)
	}

	md.WriteString("## Altruism\n\n")
	fmt.Fprintf(&md, "Helped %d times, momentum %d\n\n", in.Altruism.HelpCount, in.Altruism.MomentumScore)
	if in.Altruism.Summary != "" {
		fmt.Fprintf(&md, "%s\n\n", in.Altruism.Summary)
	}
	if len(in.Altruism.TopRecipientCategories) > 0 {
		fmt.Fprintf(&md, "Top recipients: %s\n", strings.Join(in.Altruism.TopRecipientCategories, ", "))
	}

	return md.String()
}

func writePersona(md *strings.Builder, label string, p models.PersonaProfile) {
	fmt.Fprintf(md, "**%s:** %s\n\n", label, p.Summary)
	if p.Seniority != "" || p.Background != "" {
		fmt.Fprintf(md, "- %s, %s\n", p.Seniority, p.Background)
	}
	if len(p.Traits) > 0 {
		fmt.Fprintf(md, "- Traits: %s\n", strings.Join(p.Traits, ", "))
	}
	md.WriteString("\n")
}

// RenderMarkdown styles markdown for a terminal of the given width.
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}
