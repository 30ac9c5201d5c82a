package web

import (
	"net/http"
	"sort"
	"time"

	"softgym/internal/application/projections"
	"softgym/internal/domain/membership"
)

// planCount is one row of the plan mix table.
type planCount struct {
	Plan  string
	Count int
}

// handleClosingReport handles GET /closing?start=YYYY-MM-DD&end=YYYY-MM-DD
func handleClosingReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := func(status int, message string) {
		renderTemplate(w, r, status, "closing.html", map[string]any{
			"StartRaw": q.Get("start"),
			"EndRaw":   q.Get("end"),
			"Error":    message,
		})
	}

	start, err := optionalDate(q.Get("start"))
	if err != nil {
		handleOpError(w, r, err, form)
		return
	}
	end, err := optionalDate(q.Get("end"))
	if err != nil {
		handleOpError(w, r, err, form)
		return
	}

	query := projections.GetClosingReportQuery{Scope: scopeOf(r), Start: start, End: end, Today: clock.Today()}
	result, err := projections.QueryGetClosingReport(r.Context(), query, projections.GetClosingReportDeps{PaymentStore: stores.Payments})
	if err != nil {
		handleOpError(w, r, err, form)
		return
	}

	mix := make([]planCount, 0, len(result.Summary.ByPlan))
	for plan, n := range result.Summary.ByPlan {
		mix = append(mix, planCount{Plan: plan, Count: n})
	}
	sort.Slice(mix, func(i, j int) bool { return mix[i].Plan < mix[j].Plan })

	renderTemplate(w, r, http.StatusOK, "closing.html", map[string]any{
		"Report":   result,
		"PlanMix":  mix,
		"StartRaw": result.Start.Format(membership.DateLayout),
		"EndRaw":   result.End.Format(membership.DateLayout),
	})
}

// optionalDate parses a YYYY-MM-DD query value; "" yields the zero time.
func optionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return membership.ParseDate(raw)
}
