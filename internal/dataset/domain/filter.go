package domain

import (
	"time"

	"github.com/samber/lo"
)

// DateRange is inclusive on both ends and compared at day granularity;
// time-of-day never participates in range checks.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no range was supplied.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range, ignoring time-of-day.
// A zero range contains everything.
func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	d := dateOnly(t)
	return !d.Before(dateOnly(r.Start)) && !d.After(dateOnly(r.End))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Selection carries the user-chosen dashboard filters. Empty sets select
// everything on that dimension.
type Selection struct {
	Range            DateRange
	Cities           []string
	PlanTypes        []PlanType
	PlanNames        []string
	TicketCategories []string
	Statuses         []SubscriberStatus
}

// Filtered holds the three prepared tables the aggregators consume.
type Filtered struct {
	Subscribers []Subscriber
	Bills       []Bill
	Tickets     []Ticket
}

// Prepare applies the selection to the loaded tables and returns fresh
// filtered views. Every dimension is an independent predicate joined by
// AND. Bills are restricted to subscribers surviving the subscriber-level
// filter before the date filter applies; tickets are filtered on
// ticket_date and category only. The input tables are never mutated.
func Prepare(t Tables, sel Selection) Filtered {
	cities := toSet(sel.Cities)
	planTypes := toSet(sel.PlanTypes)
	planNames := toSet(sel.PlanNames)
	categories := toSet(sel.TicketCategories)
	statuses := toSet(sel.Statuses)

	subscribers := lo.Filter(t.Subscribers, func(s Subscriber, _ int) bool {
		return member(cities, s.City) &&
			member(planTypes, s.PlanType) &&
			member(planNames, s.PlanName) &&
			member(statuses, s.Status)
	})

	surviving := lo.SliceToMap(subscribers, func(s Subscriber) (string, struct{}) {
		return s.SubscriberID, struct{}{}
	})

	bills := lo.Filter(t.Bills, func(b Bill, _ int) bool {
		if _, ok := surviving[b.SubscriberID]; !ok {
			return false
		}
		return sel.Range.Contains(b.BillingMonth)
	})

	tickets := lo.Filter(t.Tickets, func(tk Ticket, _ int) bool {
		return sel.Range.Contains(tk.TicketDate) && member(categories, tk.Category)
	})

	return Filtered{
		Subscribers: subscribers,
		Bills:       bills,
		Tickets:     tickets,
	}
}

func toSet[T comparable](values []T) map[T]struct{} {
	return lo.SliceToMap(values, func(v T) (T, struct{}) { return v, struct{}{} })
}

// member treats an empty set as "all selected".
func member[T comparable](set map[T]struct{}, v T) bool {
	if len(set) == 0 {
		return true
	}
	_, ok := set[v]
	return ok
}
