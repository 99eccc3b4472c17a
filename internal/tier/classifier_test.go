package tier

import (
	"testing"
	"time"

	"github.com/smallbiznis/menara/internal/dataset/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		planType domain.PlanType
		planName string
		tenure   int
		want     Tier
	}{
		{"prepaid is always basic", domain.PlanTypePrepaid, "Unlimited", 120, TierBasic},
		{"unknown plan type is basic", domain.PlanType("Hybrid"), "Unlimited", 120, TierBasic},
		{"postpaid unlimited", domain.PlanTypePostpaid, "Unlimited", 0, TierCritical},
		{"postpaid long tenure", domain.PlanTypePostpaid, "Basic", 37, TierCritical},
		{"postpaid unlimited and long tenure", domain.PlanTypePostpaid, "Unlimited", 40, TierCritical},
		{"postpaid premium", domain.PlanTypePostpaid, "Premium", 0, TierHigh},
		{"postpaid medium tenure", domain.PlanTypePostpaid, "Basic", 13, TierHigh},
		{"boundary 36 months is high, not critical", domain.PlanTypePostpaid, "Basic", 36, TierHigh},
		{"boundary 12 months is standard", domain.PlanTypePostpaid, "Basic", 12, TierStandard},
		{"postpaid default", domain.PlanTypePostpaid, "Standard", 3, TierStandard},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.planType, tc.planName, tc.tenure))
		})
	}
}

func TestTenureMonths(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// 90 days is exactly 3 periods of 30 days.
	assert.Equal(t, 3, TenureMonths(now.AddDate(0, 0, -90), now))
	// 89 days truncates down.
	assert.Equal(t, 2, TenureMonths(now.AddDate(0, 0, -89), now))
	assert.Equal(t, 0, TenureMonths(now.AddDate(0, 0, -29), now))
	assert.Equal(t, 0, TenureMonths(now, now))
}

func TestForSubscriber_EvaluatesAtNow(t *testing.T) {
	sub := domain.Subscriber{
		SubscriberID:   "S1",
		PlanType:       domain.PlanTypePostpaid,
		PlanName:       "Basic",
		ActivationDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
	}

	early := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)

	// Same subscriber drifts between tiers as the evaluation date moves.
	assert.Equal(t, TierStandard, ForSubscriber(sub, early))
	assert.Equal(t, TierCritical, ForSubscriber(sub, late))
}
