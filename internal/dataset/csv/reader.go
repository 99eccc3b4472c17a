// Package csv decodes the four dashboard datasets from their CSV files.
package csv

import (
	encsv "encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/smallbiznis/menara/internal/dataset/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// legacyAliases maps canonical column names to the historical variants
// still found in older exports. Both carry identical semantics.
var legacyAliases = map[string]string{
	"status":          "subscriber_status",
	"activation_date": "signup_date",
}

// ReadSubscribers decodes SUBSCRIBERS.csv.
func ReadSubscribers(path string) ([]domain.Subscriber, error) {
	return readTable(path, "SUBSCRIBERS",
		[]string{"subscriber_id", "city", "plan_type", "plan_name", "status", "activation_date"},
		func(tr tableReader, rec []string, line int) (domain.Subscriber, error) {
			activation, err := tr.timeField(rec, "activation_date", line)
			if err != nil {
				return domain.Subscriber{}, err
			}
			return domain.Subscriber{
				SubscriberID:   tr.field(rec, "subscriber_id"),
				City:           tr.field(rec, "city"),
				PlanType:       domain.PlanType(tr.field(rec, "plan_type")),
				PlanName:       tr.field(rec, "plan_name"),
				Status:         domain.SubscriberStatus(tr.field(rec, "status")),
				ActivationDate: activation,
			}, nil
		})
}

// ReadBills decodes BILLS.csv. credit_adjustment is optional and defaults
// to zero when the column is absent.
func ReadBills(path string) ([]domain.Bill, error) {
	return readTable(path, "BILLS",
		[]string{"bill_id", "subscriber_id", "billing_month", "bill_amount", "payment_status"},
		func(tr tableReader, rec []string, line int) (domain.Bill, error) {
			month, err := tr.timeField(rec, "billing_month", line)
			if err != nil {
				return domain.Bill{}, err
			}
			amount, err := tr.floatField(rec, "bill_amount", line)
			if err != nil {
				return domain.Bill{}, err
			}
			bill := domain.Bill{
				BillID:        tr.field(rec, "bill_id"),
				SubscriberID:  tr.field(rec, "subscriber_id"),
				BillingMonth:  month,
				BillAmount:    amount,
				PaymentStatus: domain.PaymentStatus(tr.field(rec, "payment_status")),
			}
			if tr.has("credit_adjustment") {
				credit, err := tr.floatField(rec, "credit_adjustment", line)
				if err != nil {
					return domain.Bill{}, err
				}
				bill.CreditAdjustment = credit
			}
			return bill, nil
		})
}

// ReadTickets decodes TICKETS.csv. Unparsable resolution dates become
// null; the row stays in the table and is excluded only from
// resolution-hours metrics downstream.
func ReadTickets(path string) ([]domain.Ticket, error) {
	return readTable(path, "TICKETS",
		[]string{"ticket_id", "ticket_date", "status", "sla_target_hours", "ticket_category", "ticket_channel", "assigned_team", "priority"},
		func(tr tableReader, rec []string, line int) (domain.Ticket, error) {
			ticketDate, err := tr.timeField(rec, "ticket_date", line)
			if err != nil {
				return domain.Ticket{}, err
			}
			sla, err := tr.floatField(rec, "sla_target_hours", line)
			if err != nil {
				return domain.Ticket{}, err
			}
			ticket := domain.Ticket{
				TicketID:       tr.field(rec, "ticket_id"),
				TicketDate:     ticketDate,
				Status:         domain.TicketStatus(tr.field(rec, "status")),
				SLATargetHours: sla,
				Category:       tr.field(rec, "ticket_category"),
				Channel:        tr.field(rec, "ticket_channel"),
				AssignedTeam:   tr.field(rec, "assigned_team"),
				Priority:       tr.field(rec, "priority"),
			}
			if tr.has("subscriber_id") {
				ticket.SubscriberID = tr.field(rec, "subscriber_id")
			}
			if tr.has("resolution_date") {
				if resolved, err := parseTime(tr.field(rec, "resolution_date")); err == nil {
					ticket.ResolutionDate = &resolved
				}
			}
			return ticket, nil
		})
}

// ReadUsageRecords decodes USAGE_RECORDS.csv.
func ReadUsageRecords(path string) ([]domain.UsageRecord, error) {
	return readTable(path, "USAGE_RECORDS",
		[]string{"usage_id", "subscriber_id", "usage_date", "data_used_gb", "voice_minutes", "sms_count"},
		func(tr tableReader, rec []string, line int) (domain.UsageRecord, error) {
			usageDate, err := tr.timeField(rec, "usage_date", line)
			if err != nil {
				return domain.UsageRecord{}, err
			}
			data, err := tr.floatField(rec, "data_used_gb", line)
			if err != nil {
				return domain.UsageRecord{}, err
			}
			voice, err := tr.floatField(rec, "voice_minutes", line)
			if err != nil {
				return domain.UsageRecord{}, err
			}
			sms, err := tr.intField(rec, "sms_count", line)
			if err != nil {
				return domain.UsageRecord{}, err
			}
			return domain.UsageRecord{
				UsageID:      tr.field(rec, "usage_id"),
				SubscriberID: tr.field(rec, "subscriber_id"),
				UsageDate:    usageDate,
				DataUsedGB:   data,
				VoiceMinutes: voice,
				SMSCount:     sms,
			}, nil
		})
}

type tableReader struct {
	table string
	idx   map[string]int
}

func readTable[T any](path, table string, required []string, decode func(tableReader, []string, int) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := encsv.NewReader(f)
	head, err := r.Read()
	if err != nil {
		return nil, err
	}

	tr := tableReader{table: table, idx: indexMap(head)}
	for _, col := range required {
		if !tr.has(col) {
			return nil, &domain.MissingFieldError{Table: table, Field: col}
		}
	}

	var out []T
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		row, err := decode(tr, rec, line)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		m[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return m
}

func (tr tableReader) has(col string) bool {
	if _, ok := tr.idx[col]; ok {
		return true
	}
	if alias, ok := legacyAliases[col]; ok {
		_, found := tr.idx[alias]
		return found
	}
	return false
}

func (tr tableReader) field(rec []string, col string) string {
	i, ok := tr.idx[col]
	if !ok {
		if alias, aliased := legacyAliases[col]; aliased {
			i, ok = tr.idx[alias]
		}
	}
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (tr tableReader) timeField(rec []string, col string, line int) (time.Time, error) {
	raw := tr.field(rec, col)
	t, err := parseTime(raw)
	if err != nil {
		return time.Time{}, &domain.MalformedInputError{Table: tr.table, Field: col, Line: line, Value: raw}
	}
	return t, nil
}

func (tr tableReader) floatField(rec []string, col string, line int) (float64, error) {
	raw := tr.field(rec, col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.MalformedInputError{Table: tr.table, Field: col, Line: line, Value: raw}
	}
	return v, nil
}

func (tr tableReader) intField(rec []string, col string, line int) (int64, error) {
	raw := tr.field(rec, col)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.MalformedInputError{Table: tr.table, Field: col, Line: line, Value: raw}
	}
	return v, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format")
}
