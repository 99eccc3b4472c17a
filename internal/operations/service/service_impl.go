package service

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/smallbiznis/menara/internal/aggregate"
	"github.com/smallbiznis/menara/internal/clock"
	"github.com/smallbiznis/menara/internal/config"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
	operations "github.com/smallbiznis/menara/internal/operations/domain"
	"github.com/smallbiznis/menara/internal/tier"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CategoryNetworkIssue is the ticket category tracked as its own KPI.
const CategoryNetworkIssue = "Network Issue"

type Params struct {
	fx.In

	Data      datasetdomain.Provider
	Log       *zap.Logger
	Clock     clock.Clock
	Dashboard *config.DashboardConfigHolder
}

type Service struct {
	data      datasetdomain.Provider
	log       *zap.Logger
	clock     clock.Clock
	dashboard *config.DashboardConfigHolder
}

func NewService(p Params) operations.Service {
	return &Service{
		data:      p.Data,
		log:       p.Log.Named("operations.service"),
		clock:     p.Clock,
		dashboard: p.Dashboard,
	}
}

func (s *Service) GetOverview(ctx context.Context, req operations.Request) (operations.OverviewResponse, error) {
	tables, err := s.data.Tables(ctx)
	if err != nil {
		return operations.OverviewResponse{}, err
	}

	filtered := datasetdomain.Prepare(tables, req.Selection)
	tickets := filtered.Tickets
	kpis := ComputeKPIs(tickets)

	resolved := resolvedSet(tickets)
	limit := s.dashboard.Current().BreakdownLimit
	now := s.clock.Now()

	return operations.OverviewResponse{
		KPIs: kpis,
		DailyVolume: aggregate.Reduce(tickets,
			func(t datasetdomain.Ticket) string { return t.TicketDate.Format("2006-01-02") },
			one, aggregate.Count, aggregate.SortKeyAsc),
		TopCategories: aggregate.Top(aggregate.Reduce(tickets,
			func(t datasetdomain.Ticket) string { return t.Category },
			one, aggregate.Count, aggregate.SortValueDesc), limit),
		StatusDistribution: aggregate.Reduce(tickets,
			func(t datasetdomain.Ticket) string { return string(t.Status) },
			one, aggregate.Count, aggregate.SortValueDesc),
		ChannelVolume: aggregate.Reduce(tickets,
			func(t datasetdomain.Ticket) string { return t.Channel },
			one, aggregate.Count, aggregate.SortValueDesc),
		PriorityDistribution: aggregate.Reduce(tickets,
			func(t datasetdomain.Ticket) string { return t.Priority },
			one, aggregate.Count, aggregate.SortValueDesc),
		ResolutionByChannel: aggregate.Reduce(resolved,
			func(t resolvedTicket) string { return t.Channel },
			func(t resolvedTicket) float64 { return t.Hours },
			aggregate.Mean, aggregate.SortValueAsc),
		TicketsByTier:   s.ticketsByTier(tickets, filtered.Subscribers, now),
		TeamPerformance: teamPerformance(tickets),
		HasData:         len(tickets) > 0,
	}, nil
}

// ComputeKPIs derives the operations metrics from the filtered tickets.
// Rows without a valid resolution date stay in total_tickets but are
// excluded from the resolution-hours metrics. Every ratio guards its
// denominator and yields 0 on empty input.
func ComputeKPIs(tickets []datasetdomain.Ticket) operations.KPIs {
	kpis := operations.KPIs{TotalTickets: len(tickets)}

	resolved := resolvedSet(tickets)
	if len(resolved) > 0 {
		var compliant int
		var totalHours float64
		for _, t := range resolved {
			totalHours += t.Hours
			if t.Hours <= t.SLATargetHours {
				compliant++
			}
		}
		kpis.SLACompliance = float64(compliant) / float64(len(resolved)) * 100
		kpis.AvgResolutionTime = totalHours / float64(len(resolved))
	}

	var escalated, network int
	for _, t := range tickets {
		switch t.Status {
		case datasetdomain.TicketOpen, datasetdomain.TicketInProgress, datasetdomain.TicketEscalated:
			kpis.TicketBacklog++
		}
		if t.Status == datasetdomain.TicketEscalated {
			escalated++
		}
		if t.Category == CategoryNetworkIssue {
			network++
		}
	}
	if kpis.TotalTickets > 0 {
		kpis.EscalationRate = float64(escalated) / float64(kpis.TotalTickets) * 100
		kpis.NetworkIssueRatio = float64(network) / float64(kpis.TotalTickets) * 100
	}

	return kpis
}

type resolvedTicket struct {
	datasetdomain.Ticket
	Hours float64
}

// resolvedSet keeps resolved tickets carrying a valid resolution date.
func resolvedSet(tickets []datasetdomain.Ticket) []resolvedTicket {
	out := make([]resolvedTicket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status != datasetdomain.TicketResolved {
			continue
		}
		hours, ok := t.ResolutionHours()
		if !ok {
			continue
		}
		out = append(out, resolvedTicket{Ticket: t, Hours: hours})
	}
	return out
}

// ticketsByTier joins tickets to the filtered subscribers and counts per
// service tier. Tickets without a resolvable subscriber are dropped
// (inner-join semantics); the tier is derived at evaluation time, never
// cached.
func (s *Service) ticketsByTier(tickets []datasetdomain.Ticket, subscribers []datasetdomain.Subscriber, now time.Time) []aggregate.Group[string] {
	byID := lo.SliceToMap(subscribers, func(sub datasetdomain.Subscriber) (string, datasetdomain.Subscriber) {
		return sub.SubscriberID, sub
	})

	var tiers []tier.Tier
	for _, t := range tickets {
		sub, ok := byID[t.SubscriberID]
		if !ok {
			continue
		}
		tiers = append(tiers, tier.ForSubscriber(sub, now))
	}

	return aggregate.Reduce(tiers,
		func(t tier.Tier) string { return string(t) },
		func(tier.Tier) float64 { return 1 },
		aggregate.Count, aggregate.SortValueDesc)
}

func teamPerformance(tickets []datasetdomain.Ticket) []operations.TeamStats {
	grouped := lo.GroupBy(tickets, func(t datasetdomain.Ticket) string { return t.AssignedTeam })

	out := make([]operations.TeamStats, 0, len(grouped))
	for team, members := range grouped {
		resolved := lo.CountBy(members, func(t datasetdomain.Ticket) bool {
			return t.Status == datasetdomain.TicketResolved
		})
		stats := operations.TeamStats{
			Team:            team,
			TotalTickets:    len(members),
			ResolvedTickets: resolved,
		}
		if len(members) > 0 {
			stats.EfficiencyPct = math.Round(float64(resolved)/float64(len(members))*1000) / 10
		}
		out = append(out, stats)
	}

	slices.SortFunc(out, func(a, b operations.TeamStats) int {
		return strings.Compare(a.Team, b.Team)
	})
	return out
}

func one(datasetdomain.Ticket) float64 { return 1 }
