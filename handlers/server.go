// ABOUTME: MCP server assembly for the kinetic tools, resources and prompts
// ABOUTME: Shared by the stdio command and the tests
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
)

// NewServer builds an MCP server with every kinetic tool registered.
func NewServer(store *db.Store, auditor *insights.Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kinetic",
		Version: version,
	}, nil)

	contactHandlers := NewContactHandlers(store)
	followUpHandlers := NewFollowUpHandlers(store)
	insightHandlers := NewInsightHandlers(store, auditor)
	vizHandlers := NewVizHandlers(store)
	resourceHandlers := NewResourceHandlers(store, auditor)
	promptHandlers := NewPromptHandlers(store)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "Search contacts by name, company or position, optionally filtered by lifecycle stage",
	}, contactHandlers.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get one contact with interactions and events",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new lead with a 30 day follow-up cadence",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_contact_status",
		Description: "Move a contact to another lifecycle stage",
	}, contactHandlers.SetContactStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log a conversation with a contact and reschedule the next follow-up",
	}, followUpHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_event",
		Description: "Add a one-off event reminder to a contact",
	}, followUpHandlers.AddEvent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_event",
		Description: "Mark a contact's event reminder as done",
	}, followUpHandlers.CompleteEvent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_follow_up_interval",
		Description: "Change a contact's follow-up cadence in days and reschedule",
	}, followUpHandlers.SetFollowUpInterval)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "follow_up_queue",
		Description: "Contacts due or overdue for follow-up today, plus pending event reminders",
	}, followUpHandlers.FollowUpQueue)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "conversion_stats",
		Description: "Invitation success and coffee conversion percentages",
	}, followUpHandlers.ConversionStats)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_audit",
		Description: "Run an AI networking audit (funnel, personas, feature hit rates, keywords, altruism)",
	}, insightHandlers.RunAudit)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Render the lifecycle funnel or contact network as Graphviz DOT",
	}, vizHandlers.GenerateGraph)

	for _, r := range []struct{ uri, name, desc string }{
		{"contacts", "contacts", "All contacts in the session"},
		{"followups", "followups", "Today's follow-up queue"},
		{"board", "board", "Contacts grouped by lifecycle stage"},
		{"stats", "stats", "Conversion metrics"},
		{"audit/latest", "latest-audit", "The most recent AI audit report"},
	} {
		server.AddResource(&mcp.Resource{
			URI:         ResourceScheme + r.uri,
			Name:        r.name,
			Description: r.desc,
			MIMEType:    "application/json",
		}, resourceHandlers.ReadResource)
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: ResourceScheme + "contacts/{id}",
		Name:        "contact",
		Description: "One contact by ID",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "contact-summary",
		Description: "Summarize a relationship and suggest next talking points",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Draft follow-up messages for everyone due today",
	}, promptHandlers.GetPrompt)

	return server
}
