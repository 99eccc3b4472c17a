package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/menara/internal/clock"
	"github.com/smallbiznis/menara/internal/config"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
	operations "github.com/smallbiznis/menara/internal/operations/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeProvider struct {
	tables datasetdomain.Tables
	err    error
}

func (f *fakeProvider) Tables(context.Context) (datasetdomain.Tables, error) {
	return f.tables, f.err
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ticketAt(id string, opened time.Time, resolvedAfter time.Duration, status datasetdomain.TicketStatus, sla float64) datasetdomain.Ticket {
	t := datasetdomain.Ticket{
		TicketID:       id,
		SubscriberID:   "S1",
		TicketDate:     opened,
		Status:         status,
		SLATargetHours: sla,
		Category:       "Network Issue",
		Channel:        "App",
		AssignedTeam:   "Tier 1 Support",
		Priority:       "High",
	}
	if resolvedAfter > 0 {
		resolved := opened.Add(resolvedAfter)
		t.ResolutionDate = &resolved
	}
	return t
}

func TestComputeKPIs(t *testing.T) {
	opened := testNow.Add(-48 * time.Hour)
	tickets := []datasetdomain.Ticket{
		ticketAt("T1", opened, 2*time.Hour, datasetdomain.TicketResolved, 4),
		ticketAt("T2", opened, 6*time.Hour, datasetdomain.TicketResolved, 4),
		ticketAt("T3", opened, 0, datasetdomain.TicketOpen, 4),
		ticketAt("T4", opened, 0, datasetdomain.TicketEscalated, 4),
	}

	kpis := ComputeKPIs(tickets)

	assert.Equal(t, 4, kpis.TotalTickets)
	// One of the two resolved tickets met its 4h target.
	assert.Equal(t, 50.0, kpis.SLACompliance)
	assert.Equal(t, 4.0, kpis.AvgResolutionTime)
	assert.Equal(t, 2, kpis.TicketBacklog)
	assert.Equal(t, 25.0, kpis.EscalationRate)
	assert.Equal(t, 100.0, kpis.NetworkIssueRatio)
}

func TestComputeKPIs_ResolvedWithoutDateExcluded(t *testing.T) {
	opened := testNow.Add(-48 * time.Hour)
	tickets := []datasetdomain.Ticket{
		ticketAt("T1", opened, 2*time.Hour, datasetdomain.TicketResolved, 4),
		// Resolved in status but the resolution date failed to parse.
		ticketAt("T2", opened, 0, datasetdomain.TicketResolved, 4),
	}

	kpis := ComputeKPIs(tickets)

	assert.Equal(t, 2, kpis.TotalTickets)
	assert.Equal(t, 100.0, kpis.SLACompliance)
	assert.Equal(t, 2.0, kpis.AvgResolutionTime)
	// Resolved tickets never count toward the backlog, dated or not.
	assert.Equal(t, 0, kpis.TicketBacklog)
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpis := ComputeKPIs(nil)

	assert.Equal(t, 0, kpis.TotalTickets)
	assert.Equal(t, 0.0, kpis.SLACompliance)
	assert.Equal(t, 0.0, kpis.AvgResolutionTime)
	assert.Equal(t, 0.0, kpis.EscalationRate)
	assert.Equal(t, 0.0, kpis.NetworkIssueRatio)
}

func TestComputeKPIs_ComplianceOnExactTarget(t *testing.T) {
	opened := testNow.Add(-24 * time.Hour)
	tickets := []datasetdomain.Ticket{
		ticketAt("T1", opened, 4*time.Hour, datasetdomain.TicketResolved, 4),
	}

	// Resolution exactly on the SLA target is compliant.
	assert.Equal(t, 100.0, ComputeKPIs(tickets).SLACompliance)
}

func TestTeamPerformance(t *testing.T) {
	opened := testNow.Add(-24 * time.Hour)
	mk := func(id, team string, status datasetdomain.TicketStatus) datasetdomain.Ticket {
		tk := ticketAt(id, opened, 0, status, 4)
		tk.AssignedTeam = team
		return tk
	}
	tickets := []datasetdomain.Ticket{
		mk("T1", "Network Ops", datasetdomain.TicketResolved),
		mk("T2", "Network Ops", datasetdomain.TicketResolved),
		mk("T3", "Network Ops", datasetdomain.TicketOpen),
		mk("T4", "Billing Ops", datasetdomain.TicketOpen),
	}

	stats := teamPerformance(tickets)

	assert.Equal(t, []operations.TeamStats{
		{Team: "Billing Ops", TotalTickets: 1, ResolvedTickets: 0, EfficiencyPct: 0},
		{Team: "Network Ops", TotalTickets: 3, ResolvedTickets: 2, EfficiencyPct: 66.7},
	}, stats)
}

func newTestService(p *fakeProvider) operations.Service {
	return NewService(Params{
		Data:      p,
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(testNow),
		Dashboard: config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig()),
	})
}

func TestGetOverview(t *testing.T) {
	opened := testNow.Add(-48 * time.Hour)
	tables := datasetdomain.Tables{
		Subscribers: []datasetdomain.Subscriber{
			{SubscriberID: "S1", PlanType: datasetdomain.PlanTypePostpaid, PlanName: "Unlimited",
				ActivationDate: testNow.AddDate(0, 0, -10), Status: datasetdomain.StatusActive},
		},
		Tickets: []datasetdomain.Ticket{
			ticketAt("T1", opened, 2*time.Hour, datasetdomain.TicketResolved, 4),
			ticketAt("T2", opened.Add(24*time.Hour), 0, datasetdomain.TicketOpen, 4),
		},
	}
	svc := newTestService(&fakeProvider{tables: tables})

	resp, err := svc.GetOverview(context.Background(), operations.Request{})
	assert.NoError(t, err)

	assert.True(t, resp.HasData)
	assert.Equal(t, 2, resp.KPIs.TotalTickets)

	// Daily volume is a time series ordered by day.
	assert.Len(t, resp.DailyVolume, 2)
	assert.Equal(t, opened.Format("2006-01-02"), resp.DailyVolume[0].Key)

	// Both tickets belong to a postpaid Unlimited subscriber.
	assert.Len(t, resp.TicketsByTier, 1)
	assert.Equal(t, "Priority 1 (Critical)", resp.TicketsByTier[0].Key)
	assert.Equal(t, 2.0, resp.TicketsByTier[0].Value)

	assert.Len(t, resp.TeamPerformance, 1)
	assert.Equal(t, 50.0, resp.TeamPerformance[0].EfficiencyPct)
}

func TestGetOverview_TicketsWithoutSubscriberDropFromTiers(t *testing.T) {
	opened := testNow.Add(-24 * time.Hour)
	orphan := ticketAt("T1", opened, 0, datasetdomain.TicketOpen, 4)
	orphan.SubscriberID = "S9"

	tables := datasetdomain.Tables{
		Subscribers: []datasetdomain.Subscriber{
			{SubscriberID: "S1", PlanType: datasetdomain.PlanTypePrepaid, Status: datasetdomain.StatusActive,
				ActivationDate: testNow.AddDate(0, 0, -10)},
		},
		Tickets: []datasetdomain.Ticket{orphan},
	}
	svc := newTestService(&fakeProvider{tables: tables})

	resp, err := svc.GetOverview(context.Background(), operations.Request{})
	assert.NoError(t, err)

	assert.Equal(t, 1, resp.KPIs.TotalTickets)
	assert.Empty(t, resp.TicketsByTier)
}

func TestGetOverview_TopCategoriesLimited(t *testing.T) {
	opened := testNow.Add(-24 * time.Hour)
	var tickets []datasetdomain.Ticket
	categories := []string{"A", "B", "C"}
	for i, cat := range categories {
		tk := ticketAt("T"+cat, opened, 0, datasetdomain.TicketOpen, 4)
		tk.Category = cat
		for j := 0; j <= i; j++ {
			tickets = append(tickets, tk)
		}
	}

	svc := NewService(Params{
		Data:  &fakeProvider{tables: datasetdomain.Tables{Tickets: tickets}},
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(testNow),
		Dashboard: config.NewStaticDashboardConfigHolder(config.DashboardConfig{
			DefaultWindowDays: 30,
			BreakdownLimit:    2,
			Files:             config.DefaultDashboardConfig().Files,
		}),
	})

	resp, err := svc.GetOverview(context.Background(), operations.Request{})
	assert.NoError(t, err)

	assert.Len(t, resp.TopCategories, 2)
	assert.Equal(t, "C", resp.TopCategories[0].Key)
	assert.Equal(t, "B", resp.TopCategories[1].Key)
}

func TestGetOverview_ProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	svc := newTestService(&fakeProvider{err: wantErr})

	_, err := svc.GetOverview(context.Background(), operations.Request{})
	assert.ErrorIs(t, err, wantErr)
}
