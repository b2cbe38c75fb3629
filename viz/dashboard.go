// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: ASCII pipeline health, conversion rates and weekly growth trend
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

// TrendWeeks is how many weekly buckets the dashboard shows.
const TrendWeeks = 4

type DashboardStats struct {
	Today string
	Stats db.Stats

	// Contacts per lifecycle stage, in board order.
	Pipeline []PipelineStage

	Trend []db.TrendPoint

	// Needs attention
	Overdue       int
	DueToday      int
	PendingEvents int
}

type PipelineStage struct {
	Status models.Status
	Count  int
}

// GenerateDashboardStats snapshots the store for rendering.
func GenerateDashboardStats(store *db.Store) (*DashboardStats, error) {
	contacts := store.Contacts()
	today := store.Today()

	trend, err := db.GrowthTrend(contacts, today, TrendWeeks)
	if err != nil {
		return nil, fmt.Errorf("failed to compute growth trend: %w", err)
	}

	stats := &DashboardStats{
		Today: today,
		Stats: db.ComputeStats(contacts),
		Trend: trend,
	}

	for _, col := range db.Board(contacts) {
		stats.Pipeline = append(stats.Pipeline, PipelineStage{Status: col.Status, Count: len(col.Contacts)})
	}

	for _, item := range db.FollowUpQueue(contacts, today) {
		switch {
		case item.OverdueDays > 0:
			stats.Overdue++
		case item.DueToday:
			stats.DueToday++
		}
		stats.PendingEvents += len(item.PendingEvents)
	}

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  KINETIC NETWORK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE HEALTH\n")
	renderPipeline(&out, stats.Pipeline)
	out.WriteString("\n")

	out.WriteString("CONVERSION\n")
	out.WriteString(fmt.Sprintf("  Invitation success  %s %3d%%\n",
		percentBar(stats.Stats.InvitationSuccessRate), stats.Stats.InvitationSuccessRate))
	out.WriteString(fmt.Sprintf("  Coffee conversion   %s %3d%%\n",
		percentBar(stats.Stats.CoffeeConversionRate), stats.Stats.CoffeeConversionRate))
	out.WriteString(fmt.Sprintf("  👥 %d contacts  🤝 %d connected  ☕ %d coffee\n\n",
		stats.Stats.Total, stats.Stats.Connected, stats.Stats.Coffee))

	if len(stats.Trend) > 0 {
		out.WriteString("GROWTH TREND\n")
		renderTrend(&out, stats.Trend)
		out.WriteString("\n")
	}

	if stats.Overdue > 0 || stats.DueToday > 0 || stats.PendingEvents > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if stats.Overdue > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d contacts overdue for follow-up\n", stats.Overdue))
		}
		if stats.DueToday > 0 {
			out.WriteString(fmt.Sprintf("  📅 %d contacts due today\n", stats.DueToday))
		}
		if stats.PendingEvents > 0 {
			out.WriteString(fmt.Sprintf("  🔔 %d event reminders need action\n", stats.PendingEvents))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline []PipelineStage) {
	maxCount := 0
	for _, stage := range pipeline {
		if stage.Count > maxCount {
			maxCount = stage.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, stage := range pipeline {
		out.WriteString(fmt.Sprintf("  %-17s %s  %2d\n", stage.Status, bar(stage.Count, maxCount), stage.Count))
	}
}

func renderTrend(out *strings.Builder, trend []db.TrendPoint) {
	maxCount := 1
	for _, p := range trend {
		maxCount = max(maxCount, p.Connections, p.Chats)
	}

	for _, p := range trend {
		out.WriteString(fmt.Sprintf("  %-7s connections %s %2d   chats %s %2d\n",
			p.Name, bar(p.Connections, maxCount), p.Connections, bar(p.Chats, maxCount), p.Chats))
	}
}

func percentBar(pct int) string {
	return bar(pct, 100)
}

// bar draws a 10-cell bar scaled to maxCount.
func bar(n, maxCount int) string {
	length := 0
	if maxCount > 0 {
		length = (n * 10) / maxCount
	}
	length = min(max(length, 0), 10)
	return strings.Repeat("█", length) + strings.Repeat("░", 10-length)
}
