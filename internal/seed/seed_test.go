package seed

import (
	"path/filepath"
	"testing"
	"time"

	datasetcsv "github.com/smallbiznis/menara/internal/dataset/csv"
	"github.com/smallbiznis/menara/internal/dataset/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerate_ProducesLoadableDataset(t *testing.T) {
	opts := Options{
		OutDir:      t.TempDir(),
		Subscribers: 20,
		BillMonths:  3,
		Tickets:     50,
		UsageDays:   5,
		Seed:        1,
		Now:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	assert.NoError(t, Generate(opts))

	subs, err := datasetcsv.ReadSubscribers(filepath.Join(opts.OutDir, "SUBSCRIBERS.csv"))
	assert.NoError(t, err)
	assert.Len(t, subs, 20)

	bills, err := datasetcsv.ReadBills(filepath.Join(opts.OutDir, "BILLS.csv"))
	assert.NoError(t, err)
	assert.Len(t, bills, 20*3)

	tickets, err := datasetcsv.ReadTickets(filepath.Join(opts.OutDir, "TICKETS.csv"))
	assert.NoError(t, err)
	assert.Len(t, tickets, 50)

	_, err = datasetcsv.ReadUsageRecords(filepath.Join(opts.OutDir, "USAGE_RECORDS.csv"))
	assert.NoError(t, err)

	subIDs := map[string]struct{}{}
	for _, s := range subs {
		subIDs[s.SubscriberID] = struct{}{}
	}
	for _, b := range bills {
		_, ok := subIDs[b.SubscriberID]
		assert.True(t, ok, "bill %s references unknown subscriber", b.BillID)
	}

	// Resolved tickets carry a resolution date, unresolved ones never do.
	for _, tk := range tickets {
		_, hasDate := tk.ResolutionHours()
		if tk.Status == domain.TicketResolved {
			assert.True(t, hasDate, "ticket %s", tk.TicketID)
		} else {
			assert.False(t, hasDate, "ticket %s", tk.TicketID)
		}
	}
}
