// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides generate_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/viz"
)

type VizHandlers struct {
	store *db.Store
}

func NewVizHandlers(store *db.Store) *VizHandlers {
	return &VizHandlers{store: store}
}

type GenerateGraphInput struct {
	Type string `json:"type" jsonschema:"Graph type: funnel or network"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	DOTSource string `json:"dot_source"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) GenerateGraph(ctx context.Context, request *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	generator := viz.NewGraphGenerator(h.store)

	var dot string
	var err error
	switch input.Type {
	case "funnel", "":
		input.Type = "funnel"
		dot, err = generator.GenerateFunnelGraph(ctx)
	case "network":
		dot, err = generator.GenerateNetworkGraph(ctx)
	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("unknown graph type %q (want funnel or network)", input.Type)
	}
	if err != nil {
		return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return nil, GenerateGraphOutput{
		GraphType: input.Type,
		DOTSource: dot,
		NodeCount: countNodes(dot),
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}

// countNodes approximates node statements in DOT output: lines that declare
// attributes and are neither edges nor graph defaults.
func countNodes(dot string) int {
	count := 0
	for _, line := range strings.Split(dot, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "[") || strings.Contains(line, "->") {
			continue
		}
		if strings.HasPrefix(line, "graph") || strings.HasPrefix(line, "node") || strings.HasPrefix(line, "edge") {
			continue
		}
		count++
	}
	return count
}
