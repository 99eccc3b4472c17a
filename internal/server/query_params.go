package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	datasetdomain "github.com/smallbiznis/menara/internal/dataset/domain"
)

const dateParamLayout = "2006-01-02"

// parseSelection builds the dashboard filter selection from query params.
// Multi-select params accept repeated keys and comma-separated values;
// an absent param selects everything on that dimension. When neither
// start nor end is supplied the configured default window applies.
func (s *Server) parseSelection(c *gin.Context) (datasetdomain.Selection, error) {
	var sel datasetdomain.Selection

	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		return sel, newValidationError("start", "invalid_date", "invalid start date")
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		return sel, newValidationError("end", "invalid_date", "invalid end date")
	}

	switch {
	case start == nil && end == nil:
		window := s.dashboard.Current().DefaultWindowDays
		now := s.clock.Now()
		sel.Range = datasetdomain.DateRange{Start: now.AddDate(0, 0, -window), End: now}
	case start != nil && end != nil:
		if start.After(*end) {
			return sel, newValidationError("range", "invalid_range", "start must not be after end")
		}
		sel.Range = datasetdomain.DateRange{Start: *start, End: *end}
	case start != nil:
		sel.Range = datasetdomain.DateRange{Start: *start, End: s.clock.Now()}
	default:
		sel.Range = datasetdomain.DateRange{Start: end.AddDate(0, 0, -s.dashboard.Current().DefaultWindowDays), End: *end}
	}

	sel.Cities = multiValue(c, "cities")
	sel.PlanNames = multiValue(c, "plan_names")
	sel.TicketCategories = multiValue(c, "ticket_categories")
	for _, v := range multiValue(c, "plan_types") {
		sel.PlanTypes = append(sel.PlanTypes, datasetdomain.PlanType(v))
	}
	for _, v := range multiValue(c, "statuses") {
		sel.Statuses = append(sel.Statuses, datasetdomain.SubscriberStatus(v))
	}

	return sel, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateParamLayout, raw)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func multiValue(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}
