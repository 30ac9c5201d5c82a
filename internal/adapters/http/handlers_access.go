package web

import (
	"net/http"

	"softgym/internal/application/orchestrators"
	"softgym/internal/application/projections"
)

// handleAccessForm handles GET /access
func handleAccessForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "access.html", nil)
}

// handleValidateAccess handles POST /access
// Every submission is logged, including malformed input, so the response is
// always the rendered outcome.
func handleValidateAccess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	deps := orchestrators.ValidateAccessDeps{ClientStore: stores.Clients, AccessLogs: stores.AccessLogs, Clock: clock}
	result, err := orchestrators.ExecuteValidateAccess(r.Context(), scopeOf(r), r.FormValue("client_id"), deps)
	if err != nil {
		handleOpError(w, r, err, nil)
		return
	}

	data := map[string]any{"Outcome": result.Outcome}
	if result.Outcome.Client != nil {
		data["Expiration"] = result.Outcome.Client.ExpirationDate
	}
	renderTemplate(w, r, http.StatusOK, "access.html", data)
}

// handleDailyAccess handles GET /access/today
func handleDailyAccess(w http.ResponseWriter, r *http.Request) {
	date, err := optionalDate(r.URL.Query().Get("date"))
	if err != nil {
		handleOpError(w, r, err, nil)
		return
	}
	query := projections.GetDailyAccessQuery{Scope: scopeOf(r), Date: date, Today: clock.Today()}

	result, err := projections.QueryGetDailyAccess(r.Context(), query, projections.GetDailyAccessDeps{AccessLogStore: stores.AccessLogs})
	if err != nil {
		handleOpError(w, r, err, nil)
		return
	}
	renderTemplate(w, r, http.StatusOK, "access_today.html", map[string]any{
		"Log":     result,
		"IsToday": result.Date.Equal(query.Today),
		"Prev":    result.Date.AddDate(0, 0, -1),
		"Next":    result.Date.AddDate(0, 0, 1),
	})
}
