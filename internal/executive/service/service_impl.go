package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/smallbiznis/menara/internal/aggregate"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
	executive "github.com/smallbiznis/menara/internal/executive/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Data datasetdomain.Provider
	Log  *zap.Logger
}

type Service struct {
	data datasetdomain.Provider
	log  *zap.Logger
}

func NewService(p Params) executive.Service {
	return &Service{
		data: p.Data,
		log:  p.Log.Named("executive.service"),
	}
}

func (s *Service) GetOverview(ctx context.Context, req executive.Request) (executive.OverviewResponse, error) {
	tables, err := s.data.Tables(ctx)
	if err != nil {
		return executive.OverviewResponse{}, err
	}

	filtered := datasetdomain.Prepare(tables, req.Selection)
	// Tickets are part of the prepared bundle for interface symmetry; no
	// executive KPI consumes them.
	kpis := ComputeKPIs(filtered.Subscribers, filtered.Bills, filtered.Tickets)

	joined := joinBills(filtered.Bills, filtered.Subscribers)

	revenueByCity := aggregate.Reduce(joined,
		func(j joinedBill) string { return j.Subscriber.City },
		billAmount, aggregate.Sum, aggregate.SortValueDesc)

	topCity := "N/A"
	if len(revenueByCity) > 0 {
		topCity = revenueByCity[0].Key
	}

	return executive.OverviewResponse{
		KPIs: kpis,
		RevenueTrend: aggregate.Reduce(filtered.Bills,
			func(b datasetdomain.Bill) string { return b.BillingMonth.Format("2006-01-02") },
			func(b datasetdomain.Bill) float64 { return b.BillAmount },
			aggregate.Sum, aggregate.SortKeyAsc),
		RevenueByPlanType: aggregate.Reduce(joined,
			func(j joinedBill) string { return string(j.Subscriber.PlanType) },
			billAmount, aggregate.Sum, aggregate.SortValueDesc),
		RevenueByCity: revenueByCity,
		RevenueByPlanName: aggregate.Reduce(joined,
			func(j joinedBill) string { return j.Subscriber.PlanName },
			billAmount, aggregate.Sum, aggregate.SortValueDesc),
		SubscriberStatus: aggregate.Reduce(filtered.Subscribers,
			func(sub datasetdomain.Subscriber) string { return string(sub.Status) },
			one[datasetdomain.Subscriber], aggregate.Count, aggregate.SortValueDesc),
		PaymentStatus: aggregate.Reduce(filtered.Bills,
			func(b datasetdomain.Bill) string { return string(b.PaymentStatus) },
			one[datasetdomain.Bill], aggregate.Count, aggregate.SortValueDesc),
		TopCity: topCity,
		HasData: len(filtered.Bills) > 0,
	}, nil
}

// ComputeKPIs derives the executive metrics from the prepared tables.
// Every ratio guards its denominator and yields 0 instead of failing, so
// empty filtered sets are valid inputs. The tickets argument is accepted
// for symmetry with the operations aggregator and is unused.
func ComputeKPIs(subscribers []datasetdomain.Subscriber, bills []datasetdomain.Bill, _ []datasetdomain.Ticket) executive.KPIs {
	var kpis executive.KPIs

	for _, b := range bills {
		kpis.TotalRevenue += b.BillAmount
		kpis.CreditAdjustments += b.CreditAdjustment
		if b.PaymentStatus == datasetdomain.PaymentOverdue {
			kpis.OverdueRevenue += b.BillAmount
		}
	}

	activeCount := lo.CountBy(subscribers, func(s datasetdomain.Subscriber) bool {
		return s.Status == datasetdomain.StatusActive
	})
	if activeCount > 0 {
		kpis.ARPU = kpis.TotalRevenue / float64(activeCount)
	}

	prepaidIDs := lo.SliceToMap(
		lo.Filter(subscribers, func(s datasetdomain.Subscriber, _ int) bool {
			return s.PlanType == datasetdomain.PlanTypePrepaid
		}),
		func(s datasetdomain.Subscriber) (string, struct{}) { return s.SubscriberID, struct{}{} },
	)
	var prepaidRevenue float64
	for _, b := range bills {
		if _, ok := prepaidIDs[b.SubscriberID]; ok {
			prepaidRevenue += b.BillAmount
		}
	}
	if kpis.TotalRevenue > 0 {
		kpis.PrepaidPct = prepaidRevenue / kpis.TotalRevenue * 100
	}
	// Postpaid share follows arithmetically from the prepaid share, even in
	// the zero-revenue case.
	kpis.PostpaidPct = 100 - kpis.PrepaidPct

	if len(subscribers) > 0 {
		kpis.RetentionRatio = float64(activeCount) / float64(len(subscribers)) * 100
	}

	return kpis
}

type joinedBill struct {
	Bill       datasetdomain.Bill
	Subscriber datasetdomain.Subscriber
}

// joinBills resolves each bill's subscriber. Bills referencing a
// subscriber outside the filtered set are dropped (inner-join semantics).
func joinBills(bills []datasetdomain.Bill, subscribers []datasetdomain.Subscriber) []joinedBill {
	byID := lo.SliceToMap(subscribers, func(s datasetdomain.Subscriber) (string, datasetdomain.Subscriber) {
		return s.SubscriberID, s
	})

	out := make([]joinedBill, 0, len(bills))
	for _, b := range bills {
		sub, ok := byID[b.SubscriberID]
		if !ok {
			continue
		}
		out = append(out, joinedBill{Bill: b, Subscriber: sub})
	}
	return out
}

func billAmount(j joinedBill) float64 { return j.Bill.BillAmount }

func one[T any](T) float64 { return 1 }
