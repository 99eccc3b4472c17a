package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
)

type filterOptionsResponse struct {
	Cities           []string `json:"cities"`
	PlanTypes        []string `json:"plan_types"`
	PlanNames        []string `json:"plan_names"`
	TicketCategories []string `json:"ticket_categories"`
	Statuses         []string `json:"statuses"`
	BillingStart     string   `json:"billing_start,omitempty"`
	BillingEnd       string   `json:"billing_end,omitempty"`
}

// GetFilterOptions lists the distinct values available for each
// multi-select filter and the billing date bounds of the loaded data.
func (s *Server) GetFilterOptions(c *gin.Context) {
	tables, err := s.store.Tables(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := filterOptionsResponse{
		Cities: distinct(tables.Subscribers, func(sub datasetdomain.Subscriber) string {
			return sub.City
		}),
		PlanTypes: distinct(tables.Subscribers, func(sub datasetdomain.Subscriber) string {
			return string(sub.PlanType)
		}),
		PlanNames: distinct(tables.Subscribers, func(sub datasetdomain.Subscriber) string {
			return sub.PlanName
		}),
		TicketCategories: distinct(tables.Tickets, func(t datasetdomain.Ticket) string {
			return t.Category
		}),
		Statuses: distinct(tables.Subscribers, func(sub datasetdomain.Subscriber) string {
			return string(sub.Status)
		}),
	}

	if len(tables.Bills) > 0 {
		minMonth := tables.Bills[0].BillingMonth
		maxMonth := tables.Bills[0].BillingMonth
		for _, b := range tables.Bills[1:] {
			if b.BillingMonth.Before(minMonth) {
				minMonth = b.BillingMonth
			}
			if b.BillingMonth.After(maxMonth) {
				maxMonth = b.BillingMonth
			}
		}
		resp.BillingStart = minMonth.Format(dateParamLayout)
		resp.BillingEnd = maxMonth.Format(dateParamLayout)
	}

	c.JSON(http.StatusOK, resp)
}

type reloadResponse struct {
	Status   string    `json:"status"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ReloadDataset invalidates the cached snapshot and re-reads the files.
func (s *Server) ReloadDataset(c *gin.Context) {
	if err := s.store.Reload(); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reloadResponse{
		Status:   "ok",
		LoadedAt: s.store.LoadedAt(),
	})
}

func distinct[T any](rows []T, value func(T) string) []string {
	out := lo.Uniq(lo.Map(rows, func(row T, _ int) string { return value(row) }))
	slices.Sort(out)
	return out
}
