// ABOUTME: AI audit MCP tool handler
// ABOUTME: Runs a networking audit over the session contacts for a review period
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/models"
)

type InsightHandlers struct {
	store   *db.Store
	auditor *insights.Service
}

func NewInsightHandlers(store *db.Store, auditor *insights.Service) *InsightHandlers {
	return &InsightHandlers{store: store, auditor: auditor}
}

type RunAuditInput struct {
	Period string `json:"period,omitempty" jsonschema:"Review period: W (weekly), M (monthly), Q (quarterly) or Y (yearly). Defaults to M"`
}

func (h *InsightHandlers) RunAudit(ctx context.Context, request *mcp.CallToolRequest, input RunAuditInput) (*mcp.CallToolResult, models.AuditReport, error) {
	raw := input.Period
	if raw == "" {
		raw = string(models.PeriodMonthly)
	}
	period, err := models.ParseReviewPeriod(raw)
	if err != nil {
		return nil, models.AuditReport{}, err
	}

	report, err := h.auditor.Audit(ctx, h.store.Contacts(), period)
	if err != nil {
		var auditErr *insights.AuditError
		if errors.As(err, &auditErr) {
			return nil, models.AuditReport{}, fmt.Errorf("%w (run the audit again to retry)", err)
		}
		return nil, models.AuditReport{}, err
	}
	return nil, *report, nil
}
