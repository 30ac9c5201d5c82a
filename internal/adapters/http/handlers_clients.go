package web

import (
	"net/http"
	"strconv"

	"softgym/internal/application/listutil"
	"softgym/internal/application/orchestrators"
	"softgym/internal/application/projections"
	"softgym/internal/domain/client"
	"softgym/internal/domain/membership"
)

// handleClientRoster handles GET /clients
func handleClientRoster(w http.ResponseWriter, r *http.Request) {
	params := listutil.ParseListParams(r.URL.Query(), projections.RosterSortColumns, projections.RosterStatusFilters)
	result, err := projections.QueryGetClientRoster(r.Context(), projections.GetClientRosterQuery{
		Scope:  scopeOf(r),
		Params: params,
		Today:  clock.Today(),
	}, projections.GetClientRosterDeps{ClientStore: stores.Clients})
	if err != nil {
		handleOpError(w, r, err, nil)
		return
	}

	renderTemplate(w, r, http.StatusOK, "clients.html", map[string]any{
		"Roster":         result,
		"PerPageOptions": listutil.PerPageOptions,
		"HasFilters":     params.Search != "" || params.Status != "",
	})
}

// handleNewClientForm handles GET /clients/new
func handleNewClientForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "client_form.html", map[string]any{
		"New":    true,
		"Name":   "",
		"Plan":   membership.Monthly.String(),
		"Amount": "",
	})
}

// handleRegisterClient handles POST /clients/new
func handleRegisterClient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RegisterClientInput{
		Scope:  scopeOf(r),
		Name:   r.FormValue("name"),
		Plan:   r.FormValue("plan"),
		Amount: r.FormValue("amount"),
	}

	result, err := orchestrators.ExecuteRegisterClient(r.Context(), input, orchestrators.RegisterClientDeps{Tx: stores.Tx, Clock: clock})
	if err != nil {
		handleOpError(w, r, err, func(status int, message string) {
			renderTemplate(w, r, status, "client_form.html", map[string]any{
				"New":    true,
				"Name":   input.Name,
				"Plan":   input.Plan,
				"Amount": input.Amount,
				"Error":  message,
			})
		})
		return
	}
	http.Redirect(w, r, "/clients/"+strconv.FormatInt(result.Client.ID, 10)+"/payments", http.StatusSeeOther)
}

// handleEditClientForm handles GET /clients/{id}/edit
func handleEditClientForm(w http.ResponseWriter, r *http.Request) {
	c, ok := ownedClient(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, http.StatusOK, "client_form.html", map[string]any{
		"Client": c,
		"Name":   c.Name,
		"Plan":   c.Plan.String(),
	})
}

// handleEditClient handles POST /clients/{id}/edit
func handleEditClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.EditClientInput{
		Scope:    scopeOf(r),
		ClientID: id,
		Name:     r.FormValue("name"),
		Plan:     r.FormValue("plan"),
	}

	deps := orchestrators.ManageClientDeps{ClientStore: stores.Clients, Clock: clock}
	if _, err := orchestrators.ExecuteEditClient(r.Context(), input, deps); err != nil {
		handleOpError(w, r, err, func(status int, message string) {
			renderTemplate(w, r, status, "client_form.html", map[string]any{
				"Client": client.Client{ID: id},
				"Name":   input.Name,
				"Plan":   input.Plan,
				"Error":  message,
			})
		})
		return
	}
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleDeleteClient handles POST /clients/{id}/delete
func handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	deps := orchestrators.ManageClientDeps{ClientStore: stores.Clients, Clock: clock}
	if err := orchestrators.ExecuteDeleteClient(r.Context(), scopeOf(r), id, deps); err != nil {
		handleOpError(w, r, err, nil)
		return
	}
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handlePaymentHistory handles GET /clients/{id}/payments
func handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	result, err := projections.QueryGetPaymentHistory(r.Context(),
		projections.GetPaymentHistoryQuery{Scope: scopeOf(r), ClientID: id},
		projections.GetPaymentHistoryDeps{ClientStore: stores.Clients, PaymentStore: stores.Payments},
	)
	if err != nil {
		handleOpError(w, r, err, nil)
		return
	}
	renderTemplate(w, r, http.StatusOK, "payments.html", map[string]any{
		"History": result,
		"Status":  result.Client.Status(clock.Today()),
	})
}

// handleNewPaymentForm handles GET /clients/{id}/payments/new
func handleNewPaymentForm(w http.ResponseWriter, r *http.Request) {
	c, ok := ownedClient(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, http.StatusOK, "payment_form.html", map[string]any{
		"Client": c,
		"Plan":   c.Plan.String(),
		"Amount": "",
	})
}

// handleRecordPayment handles POST /clients/{id}/payments/new
func handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RecordPaymentInput{
		Scope:    scopeOf(r),
		ClientID: id,
		Plan:     r.FormValue("plan"),
		Amount:   r.FormValue("amount"),
	}

	deps := orchestrators.RecordPaymentDeps{Tx: stores.Tx, Clock: clock}
	if _, err := orchestrators.ExecuteRecordPayment(r.Context(), input, deps); err != nil {
		handleOpError(w, r, err, func(status int, message string) {
			c, ok := ownedClient(w, r)
			if !ok {
				return
			}
			renderTemplate(w, r, status, "payment_form.html", map[string]any{
				"Client": c,
				"Plan":   input.Plan,
				"Amount": input.Amount,
				"Error":  message,
			})
		})
		return
	}
	http.Redirect(w, r, "/clients/"+strconv.FormatInt(id, 10)+"/payments", http.StatusSeeOther)
}

// ownedClient loads the {id} client of the session gym. It writes the error
// response when it returns false.
func ownedClient(w http.ResponseWriter, r *http.Request) (client.Client, bool) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return client.Client{}, false
	}
	c, err := projections.QueryGetClient(r.Context(), scopeOf(r), id, projections.GetClientDeps{ClientStore: stores.Clients})
	if err != nil {
		handleOpError(w, r, err, nil)
		return client.Client{}, false
	}
	return c, true
}
