// Package tier assigns subscribers a rule-based service priority tier.
package tier

import (
	"time"

	"github.com/smallbiznis/menara/internal/dataset/domain"
)

type Tier string

const (
	TierCritical Tier = "Priority 1 (Critical)"
	TierHigh     Tier = "Priority 2 (High)"
	TierStandard Tier = "Priority 3 (Standard)"
	TierBasic    Tier = "Priority 4 (Basic)"
)

// Classify maps a subscriber's plan and tenure to a priority tier.
// Rule order is significant: the first matching rule wins, so a Postpaid
// Unlimited subscriber with 40 months tenure is Critical via the plan-name
// rule, never by falling through to a later one.
func Classify(planType domain.PlanType, planName string, tenureMonths int) Tier {
	if planType != domain.PlanTypePostpaid {
		return TierBasic
	}
	switch {
	case planName == "Unlimited" || tenureMonths > 36:
		return TierCritical
	case planName == "Premium" || tenureMonths > 12:
		return TierHigh
	default:
		return TierStandard
	}
}

// TenureMonths is the whole number of 30-day periods elapsed since
// activation. It is always evaluated against the caller's "now", never
// cached, so classification legitimately drifts across calendar days.
func TenureMonths(activation, now time.Time) int {
	days := int(now.Sub(activation).Hours() / 24)
	return days / 30
}

// ForSubscriber derives the tier for one subscriber at evaluation time.
func ForSubscriber(s domain.Subscriber, now time.Time) Tier {
	return Classify(s.PlanType, s.PlanName, TenureMonths(s.ActivationDate, now))
}
