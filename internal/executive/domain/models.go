package domain

import (
	"context"

	"github.com/smallbiznis/menara/internal/aggregate"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
)

type Request struct {
	Selection datasetdomain.Selection
}

// KPIs is the flat executive metric mapping. Percentages are 0-100,
// currency values are in the billing currency of the source data.
type KPIs struct {
	TotalRevenue      float64 `json:"total_revenue"`
	ARPU              float64 `json:"arpu"`
	PrepaidPct        float64 `json:"prepaid_pct"`
	PostpaidPct       float64 `json:"postpaid_pct"`
	RetentionRatio    float64 `json:"retention_ratio"`
	OverdueRevenue    float64 `json:"overdue_revenue"`
	CreditAdjustments float64 `json:"credit_adjustments"`
}

// OverviewResponse is the executive view payload: the KPI mapping plus the
// chart groupings derived from it.
type OverviewResponse struct {
	KPIs KPIs `json:"kpis"`

	RevenueTrend      []aggregate.Group[string] `json:"revenue_trend"`
	RevenueByPlanType []aggregate.Group[string] `json:"revenue_by_plan_type"`
	RevenueByCity     []aggregate.Group[string] `json:"revenue_by_city"`
	RevenueByPlanName []aggregate.Group[string] `json:"revenue_by_plan_name"`
	SubscriberStatus  []aggregate.Group[string] `json:"subscriber_status"`
	PaymentStatus     []aggregate.Group[string] `json:"payment_status"`

	TopCity string `json:"top_city"`
	HasData bool   `json:"has_data"`
}

// Service computes the executive dashboard view over the current dataset
// snapshot.
type Service interface {
	GetOverview(ctx context.Context, req Request) (OverviewResponse, error)
}
