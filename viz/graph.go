// ABOUTME: Graphviz renderings of the networking pipeline
// ABOUTME: Funnel of lifecycle stages and a contact network grouped by stage
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

// GraphGenerator renders graphs from the session store.
type GraphGenerator struct {
	store *db.Store
}

func NewGraphGenerator(store *db.Store) *GraphGenerator {
	return &GraphGenerator{store: store}
}

var stageColors = map[models.Status]string{
	models.StatusLead:            "gray90",
	models.StatusPending:         "lightyellow",
	models.StatusConnected:       "lightblue",
	models.StatusCoffeeScheduled: "palegreen",
	models.StatusFollowUpNeeded:  "lightsalmon",
	models.StatusNurturing:       "plum",
}

func stageNodeName(s models.Status) string {
	return "stage_" + s.Slug()
}

// GenerateFunnelGraph renders one node per lifecycle stage, labelled with its
// contact count, chained in board order.
func (g *GraphGenerator) GenerateFunnelGraph(ctx context.Context) (string, error) {
	return render(ctx, func(graph *cgraph.Graph) error {
		graph.SetLabel("Networking Funnel")
		graph.SetRankDir(cgraph.LRRank)

		var prev *cgraph.Node
		for _, col := range db.Board(g.store.Contacts()) {
			node, err := graph.CreateNodeByName(stageNodeName(col.Status))
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%d", col.Status, len(col.Contacts)))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(stageColors[col.Status])

			if prev != nil {
				if _, err := graph.CreateEdgeByName("", prev, node); err != nil {
					return fmt.Errorf("failed to create funnel edge: %w", err)
				}
			}
			prev = node
		}
		return nil
	})
}

// GenerateNetworkGraph renders every contact attached to its stage and its
// company. Contacts needing follow-up today are drawn in red.
func (g *GraphGenerator) GenerateNetworkGraph(ctx context.Context) (string, error) {
	contacts := g.store.Contacts()
	today := g.store.Today()

	return render(ctx, func(graph *cgraph.Graph) error {
		graph.SetLabel("Professional Network")

		stageNodes := make(map[models.Status]*cgraph.Node)
		for _, s := range models.Statuses {
			node, err := graph.CreateNodeByName(stageNodeName(s))
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			node.SetLabel(string(s))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(stageColors[s])
			stageNodes[s] = node
		}

		companyNodes := make(map[string]*cgraph.Node)
		for _, c := range contacts {
			node, err := graph.CreateNodeByName("contact_" + c.ID)
			if err != nil {
				return fmt.Errorf("failed to create contact node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s", c.Name, c.Position))
			node.SetShape("ellipse")
			if c.NeedsFollowUp(today) {
				node.SetColor("red")
			}

			edge, err := graph.CreateEdgeByName("stage", stageNodes[c.Status], node)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("dashed")

			if c.Company == "" {
				continue
			}
			companyNode, ok := companyNodes[c.Company]
			if !ok {
				companyNode, err = graph.CreateNodeByName("company_" + c.Company)
				if err != nil {
					return fmt.Errorf("failed to create company node: %w", err)
				}
				companyNode.SetLabel(c.Company)
				companyNode.SetShape("diamond")
				companyNodes[c.Company] = companyNode
			}
			edge, err = graph.CreateEdgeByName("works_at", node, companyNode)
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("works at")
		}
		return nil
	})
}

func render(ctx context.Context, build func(*cgraph.Graph) error) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
