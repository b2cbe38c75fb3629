// ABOUTME: MCP resource handlers for exposing session data
// ABOUTME: Provides read-only access to contacts, the follow-up queue, board and latest audit via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
)

// ResourceScheme prefixes every resource URI.
const ResourceScheme = "kinetic://"

type ResourceHandlers struct {
	store   *db.Store
	auditor *insights.Service
}

func NewResourceHandlers(store *db.Store, auditor *insights.Service) *ResourceHandlers {
	return &ResourceHandlers{store: store, auditor: auditor}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, ResourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", ResourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, ResourceScheme), "/")
	switch parts[0] {
	case "contacts":
		if len(parts) == 1 || parts[1] == "" {
			return jsonResource(uri, h.store.Contacts())
		}
		c, err := h.store.GetContact(parts[1])
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, c)

	case "followups":
		return jsonResource(uri, db.FollowUpQueue(h.store.Contacts(), h.store.Today()))

	case "board":
		return jsonResource(uri, db.Board(h.store.Contacts()))

	case "stats":
		return jsonResource(uri, db.ComputeStats(h.store.Contacts()))

	case "audit":
		report := h.auditor.Latest()
		if report == nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, report)

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
