package domain

import (
	"context"

	"github.com/smallbiznis/menara/internal/aggregate"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
)

type Request struct {
	Selection datasetdomain.Selection
}

// KPIs is the flat operations metric mapping for the manager view.
type KPIs struct {
	TotalTickets      int     `json:"total_tickets"`
	SLACompliance     float64 `json:"sla_compliance"`
	AvgResolutionTime float64 `json:"avg_resolution_time"`
	TicketBacklog     int     `json:"ticket_backlog"`
	EscalationRate    float64 `json:"escalation_rate"`
	NetworkIssueRatio float64 `json:"network_issue_ratio"`
}

// TeamStats is one row of the team performance table.
type TeamStats struct {
	Team            string  `json:"team"`
	TotalTickets    int     `json:"total_tickets"`
	ResolvedTickets int     `json:"resolved_tickets"`
	EfficiencyPct   float64 `json:"efficiency_pct"`
}

type OverviewResponse struct {
	KPIs KPIs `json:"kpis"`

	DailyVolume          []aggregate.Group[string] `json:"daily_volume"`
	TopCategories        []aggregate.Group[string] `json:"top_categories"`
	StatusDistribution   []aggregate.Group[string] `json:"status_distribution"`
	ChannelVolume        []aggregate.Group[string] `json:"channel_volume"`
	PriorityDistribution []aggregate.Group[string] `json:"priority_distribution"`
	ResolutionByChannel  []aggregate.Group[string] `json:"resolution_by_channel"`
	TicketsByTier        []aggregate.Group[string] `json:"tickets_by_tier"`
	TeamPerformance      []TeamStats               `json:"team_performance"`

	HasData bool `json:"has_data"`
}

// Service computes the operations dashboard view over the current dataset
// snapshot.
type Service interface {
	GetOverview(ctx context.Context, req Request) (OverviewResponse, error)
}
