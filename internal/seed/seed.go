// Package seed generates synthetic dataset CSVs so the dashboard can run
// without the proprietary source exports.
package seed

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Options struct {
	OutDir      string
	Subscribers int
	// BillMonths is how many monthly billing cycles to emit per subscriber.
	BillMonths int
	Tickets    int
	UsageDays  int
	// Seed fixes the random stream. Row IDs are snowflakes and still vary
	// between runs.
	Seed int64
	Now  time.Time
}

func DefaultOptions() Options {
	return Options{
		OutDir:      "data",
		Subscribers: 500,
		BillMonths:  6,
		Tickets:     1200,
		UsageDays:   30,
		Seed:        42,
		Now:         time.Now().UTC(),
	}
}

var (
	cities     = []string{"Dubai", "Abu Dhabi", "Sharjah", "Ajman", "Ras Al Khaimah", "Fujairah"}
	planTypes  = []string{"Prepaid", "Postpaid"}
	planNames  = []string{"Unlimited", "Premium", "Standard", "Basic"}
	statuses   = []string{"Active", "Active", "Active", "Suspended", "Churned"}
	payStatus  = []string{"Paid", "Paid", "Paid", "Overdue", "Partial", "Pending"}
	categories = []string{"Network Issue", "Billing Dispute", "SIM Replacement", "Plan Change", "Roaming", "Device Support"}
	channels   = []string{"Call Center", "App", "Store", "Web Chat"}
	teams      = []string{"Tier 1 Support", "Tier 2 Support", "Network Ops", "Billing Ops"}
	priorities = []string{"Low", "Medium", "High", "Urgent"}
	ticketSt   = []string{"Resolved", "Resolved", "Resolved", "Open", "In Progress", "Escalated"}
)

// Generate writes the four dataset CSVs into opts.OutDir.
func Generate(opts Options) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	subscribers := make([]subscriberRow, opts.Subscribers)
	for i := range subscribers {
		tenureDays := rng.Intn(5 * 365)
		subscribers[i] = subscriberRow{
			ID:         node.Generate().String(),
			City:       pick(rng, cities),
			PlanType:   pick(rng, planTypes),
			PlanName:   pick(rng, planNames),
			Status:     pick(rng, statuses),
			Activation: opts.Now.AddDate(0, 0, -tenureDays),
		}
	}

	if err := writeSubscribers(filepath.Join(opts.OutDir, "SUBSCRIBERS.csv"), subscribers); err != nil {
		return err
	}
	if err := writeBills(filepath.Join(opts.OutDir, "BILLS.csv"), rng, node, subscribers, opts); err != nil {
		return err
	}
	if err := writeTickets(filepath.Join(opts.OutDir, "TICKETS.csv"), rng, node, subscribers, opts); err != nil {
		return err
	}
	return writeUsage(filepath.Join(opts.OutDir, "USAGE_RECORDS.csv"), rng, node, subscribers, opts)
}

type subscriberRow struct {
	ID         string
	City       string
	PlanType   string
	PlanName   string
	Status     string
	Activation time.Time
}

func writeSubscribers(path string, rows []subscriberRow) error {
	return writeCSV(path,
		[]string{"subscriber_id", "city", "plan_type", "plan_name", "status", "activation_date"},
		len(rows),
		func(i int) []string {
			s := rows[i]
			return []string{s.ID, s.City, s.PlanType, s.PlanName, s.Status, s.Activation.Format("2006-01-02")}
		})
}

func writeBills(path string, rng *rand.Rand, node *snowflake.Node, subs []subscriberRow, opts Options) error {
	var rows [][]string
	for _, s := range subs {
		for m := 0; m < opts.BillMonths; m++ {
			month := time.Date(opts.Now.Year(), opts.Now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
			amount := 60 + rng.Float64()*440
			credit := 0.0
			if rng.Intn(10) == 0 {
				credit = 5 + rng.Float64()*45
			}
			rows = append(rows, []string{
				node.Generate().String(),
				s.ID,
				month.Format("2006-01-02"),
				strconv.FormatFloat(amount, 'f', 2, 64),
				pick(rng, payStatus),
				strconv.FormatFloat(credit, 'f', 2, 64),
			})
		}
	}
	return writeCSV(path,
		[]string{"bill_id", "subscriber_id", "billing_month", "bill_amount", "payment_status", "credit_adjustment"},
		len(rows),
		func(i int) []string { return rows[i] })
}

func writeTickets(path string, rng *rand.Rand, node *snowflake.Node, subs []subscriberRow, opts Options) error {
	return writeCSV(path,
		[]string{"ticket_id", "subscriber_id", "ticket_date", "resolution_date", "status", "sla_target_hours", "ticket_category", "ticket_channel", "assigned_team", "priority"},
		opts.Tickets,
		func(int) []string {
			sub := subs[rng.Intn(len(subs))]
			opened := opts.Now.AddDate(0, 0, -rng.Intn(90)).Add(-time.Duration(rng.Intn(24)) * time.Hour)
			status := pick(rng, ticketSt)
			sla := []float64{4, 8, 24, 48}[rng.Intn(4)]
			resolution := ""
			if status == "Resolved" {
				hours := rng.Float64() * sla * 2
				resolution = opened.Add(time.Duration(hours * float64(time.Hour))).Format("2006-01-02 15:04:05")
			}
			return []string{
				node.Generate().String(),
				sub.ID,
				opened.Format("2006-01-02 15:04:05"),
				resolution,
				status,
				strconv.FormatFloat(sla, 'f', -1, 64),
				pick(rng, categories),
				pick(rng, channels),
				pick(rng, teams),
				pick(rng, priorities),
			}
		})
}

func writeUsage(path string, rng *rand.Rand, node *snowflake.Node, subs []subscriberRow, opts Options) error {
	var rows [][]string
	for _, s := range subs {
		for d := 0; d < opts.UsageDays; d++ {
			if rng.Intn(3) == 0 {
				continue
			}
			day := opts.Now.AddDate(0, 0, -d)
			rows = append(rows, []string{
				node.Generate().String(),
				s.ID,
				day.Format("2006-01-02"),
				strconv.FormatFloat(rng.Float64()*8, 'f', 3, 64),
				strconv.FormatFloat(rng.Float64()*120, 'f', 1, 64),
				strconv.Itoa(rng.Intn(40)),
			})
		}
	}
	return writeCSV(path,
		[]string{"usage_id", "subscriber_id", "usage_date", "data_used_gb", "voice_minutes", "sms_count"},
		len(rows),
		func(i int) []string { return rows[i] })
}

func writeCSV(path string, headers []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(headers); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return w.Error()
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
