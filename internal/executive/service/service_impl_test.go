package service

import (
	"context"
	"errors"
	"testing"
	"time"

	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
	executive "github.com/smallbiznis/menara/internal/executive/domain"
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

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func fixtureTables() datasetdomain.Tables {
	return datasetdomain.Tables{
		Subscribers: []datasetdomain.Subscriber{
			{SubscriberID: "S1", City: "Dubai", PlanType: datasetdomain.PlanTypePostpaid, PlanName: "Unlimited", Status: datasetdomain.StatusActive},
			{SubscriberID: "S2", City: "Dubai", PlanType: datasetdomain.PlanTypePrepaid, PlanName: "Basic", Status: datasetdomain.StatusActive},
			{SubscriberID: "S3", City: "Sharjah", PlanType: datasetdomain.PlanTypePostpaid, PlanName: "Premium", Status: datasetdomain.StatusChurned},
		},
		Bills: []datasetdomain.Bill{
			{BillID: "B1", SubscriberID: "S1", BillingMonth: month(2026, 1), BillAmount: 300, PaymentStatus: datasetdomain.PaymentPaid, CreditAdjustment: 10},
			{BillID: "B2", SubscriberID: "S2", BillingMonth: month(2026, 1), BillAmount: 100, PaymentStatus: datasetdomain.PaymentOverdue},
			{BillID: "B3", SubscriberID: "S3", BillingMonth: month(2026, 2), BillAmount: 100, PaymentStatus: datasetdomain.PaymentPaid, CreditAdjustment: 5},
		},
	}
}

func TestComputeKPIs(t *testing.T) {
	tables := fixtureTables()
	kpis := ComputeKPIs(tables.Subscribers, tables.Bills, nil)

	assert.Equal(t, 500.0, kpis.TotalRevenue)
	assert.Equal(t, 15.0, kpis.CreditAdjustments)
	assert.Equal(t, 100.0, kpis.OverdueRevenue)

	// Two active subscribers share the full 500 of revenue.
	assert.Equal(t, 250.0, kpis.ARPU)

	// Prepaid revenue is B2 only.
	assert.Equal(t, 20.0, kpis.PrepaidPct)
	assert.Equal(t, 80.0, kpis.PostpaidPct)

	assert.InDelta(t, 66.666, kpis.RetentionRatio, 0.001)
}

func TestComputeKPIs_EmptyInputs(t *testing.T) {
	kpis := ComputeKPIs(nil, nil, nil)

	assert.Equal(t, 0.0, kpis.TotalRevenue)
	assert.Equal(t, 0.0, kpis.ARPU)
	assert.Equal(t, 0.0, kpis.RetentionRatio)
	assert.Equal(t, 0.0, kpis.PrepaidPct)
	// The postpaid share is derived from the prepaid share even with no
	// revenue at all.
	assert.Equal(t, 100.0, kpis.PostpaidPct)
}

func TestComputeKPIs_NoActiveSubscribers(t *testing.T) {
	subs := []datasetdomain.Subscriber{
		{SubscriberID: "S1", PlanType: datasetdomain.PlanTypePrepaid, Status: datasetdomain.StatusChurned},
	}
	bills := []datasetdomain.Bill{
		{BillID: "B1", SubscriberID: "S1", BillAmount: 100},
	}

	kpis := ComputeKPIs(subs, bills, nil)

	assert.Equal(t, 100.0, kpis.TotalRevenue)
	assert.Equal(t, 0.0, kpis.ARPU)
	assert.Equal(t, 0.0, kpis.RetentionRatio)
	assert.Equal(t, 100.0, kpis.PrepaidPct)
	assert.Equal(t, 0.0, kpis.PostpaidPct)
}

func TestComputeKPIs_SharesSumToHundred(t *testing.T) {
	tables := fixtureTables()
	kpis := ComputeKPIs(tables.Subscribers, tables.Bills, nil)

	assert.Equal(t, 100.0, kpis.PrepaidPct+kpis.PostpaidPct)
}

func TestComputeKPIs_Idempotent(t *testing.T) {
	tables := fixtureTables()

	first := ComputeKPIs(tables.Subscribers, tables.Bills, nil)
	second := ComputeKPIs(tables.Subscribers, tables.Bills, nil)

	assert.Equal(t, first, second)
}

func newTestService(p *fakeProvider) executive.Service {
	return NewService(Params{Data: p, Log: zap.NewNop()})
}

func TestGetOverview(t *testing.T) {
	svc := newTestService(&fakeProvider{tables: fixtureTables()})

	resp, err := svc.GetOverview(context.Background(), executive.Request{})
	assert.NoError(t, err)

	assert.True(t, resp.HasData)
	assert.Equal(t, 500.0, resp.KPIs.TotalRevenue)

	// Revenue breakdowns are ordered largest first.
	assert.Equal(t, "Dubai", resp.RevenueByCity[0].Key)
	assert.Equal(t, 400.0, resp.RevenueByCity[0].Value)
	assert.Equal(t, "Dubai", resp.TopCity)

	// The trend is ordered by month, not by value.
	assert.Equal(t, "2026-01-01", resp.RevenueTrend[0].Key)
	assert.Equal(t, 400.0, resp.RevenueTrend[0].Value)
	assert.Equal(t, "2026-02-01", resp.RevenueTrend[1].Key)
}

func TestGetOverview_EmptyFilteredSet(t *testing.T) {
	svc := newTestService(&fakeProvider{tables: fixtureTables()})

	req := executive.Request{Selection: datasetdomain.Selection{
		Cities: []string{"Fujairah"},
	}}
	resp, err := svc.GetOverview(context.Background(), req)
	assert.NoError(t, err)

	assert.False(t, resp.HasData)
	assert.Equal(t, "N/A", resp.TopCity)
	assert.Empty(t, resp.RevenueByCity)
	assert.Equal(t, 0.0, resp.KPIs.TotalRevenue)
}

func TestGetOverview_ProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	svc := newTestService(&fakeProvider{err: wantErr})

	_, err := svc.GetOverview(context.Background(), executive.Request{})
	assert.ErrorIs(t, err, wantErr)
}
