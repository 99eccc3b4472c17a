package domain

import (
	"context"
	"time"
)

type PlanType string

const (
	PlanTypePrepaid  PlanType = "Prepaid"
	PlanTypePostpaid PlanType = "Postpaid"
)

type SubscriberStatus string

const (
	StatusActive    SubscriberStatus = "Active"
	StatusSuspended SubscriberStatus = "Suspended"
	StatusChurned   SubscriberStatus = "Churned"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPending PaymentStatus = "Pending"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "Open"
	TicketInProgress TicketStatus = "In Progress"
	TicketEscalated  TicketStatus = "Escalated"
	TicketResolved   TicketStatus = "Resolved"
)

// Subscriber is one row of the SUBSCRIBERS dataset. The canonical schema
// uses status/activation_date; the subscriber_status/signup_date variants
// are accepted on load as legacy aliases.
type Subscriber struct {
	SubscriberID   string           `json:"subscriber_id"`
	City           string           `json:"city"`
	PlanType       PlanType         `json:"plan_type"`
	PlanName       string           `json:"plan_name"`
	Status         SubscriberStatus `json:"status"`
	ActivationDate time.Time        `json:"activation_date"`
}

type Bill struct {
	BillID        string        `json:"bill_id"`
	SubscriberID  string        `json:"subscriber_id"`
	BillingMonth  time.Time     `json:"billing_month"`
	BillAmount    float64       `json:"bill_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	// CreditAdjustment defaults to zero when the column is absent.
	CreditAdjustment float64 `json:"credit_adjustment"`
}

type Ticket struct {
	TicketID     string    `json:"ticket_id"`
	SubscriberID string    `json:"subscriber_id"`
	TicketDate   time.Time `json:"ticket_date"`
	// ResolutionDate is nil for unresolved tickets and for rows whose
	// resolution_date failed to parse.
	ResolutionDate *time.Time   `json:"resolution_date,omitempty"`
	Status         TicketStatus `json:"status"`
	SLATargetHours float64      `json:"sla_target_hours"`
	Category       string       `json:"ticket_category"`
	Channel        string       `json:"ticket_channel"`
	AssignedTeam   string       `json:"assigned_team"`
	Priority       string       `json:"priority"`
}

// ResolutionHours reports the elapsed hours between ticket_date and
// resolution_date. The second return is false when no valid resolution
// date exists.
func (t Ticket) ResolutionHours() (float64, bool) {
	if t.ResolutionDate == nil {
		return 0, false
	}
	return t.ResolutionDate.Sub(t.TicketDate).Hours(), true
}

// UsageRecord is loaded as a declared input; no KPI consumes it.
type UsageRecord struct {
	UsageID      string    `json:"usage_id"`
	SubscriberID string    `json:"subscriber_id"`
	UsageDate    time.Time `json:"usage_date"`
	DataUsedGB   float64   `json:"data_used_gb"`
	VoiceMinutes float64   `json:"voice_minutes"`
	SMSCount     int64     `json:"sms_count"`
}

// Tables bundles the four loaded datasets.
type Tables struct {
	Subscribers  []Subscriber
	Bills        []Bill
	Tickets      []Ticket
	UsageRecords []UsageRecord
}

// Provider hands out the current dataset snapshot. Aggregators depend on
// this interface, never on the cache behind it.
type Provider interface {
	Tables(ctx context.Context) (Tables, error)
}
