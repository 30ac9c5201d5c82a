package web

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"softgym/internal/adapters/http/middleware"
	"softgym/internal/application/orchestrators"
	"softgym/internal/domain/tenant"
)

// scopeOf returns the tenant scope of the logged-in user, or the zero Scope.
func scopeOf(r *http.Request) tenant.Scope {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess.Scope()
}

// handleLoginForm handles GET /login
func handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, http.StatusOK, "login.html", map[string]any{"Username": ""})
}

// handleLogin handles POST /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{UserStore: stores.Users})
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		renderTemplate(w, r, http.StatusUnauthorized, "login.html", map[string]any{
			"Username": input.Username,
			"Error":    err.Error(),
		})
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}

	token, err := sessions.Create(result.UserID, result.Username, result.GymID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, token, sessions.TTL())
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		zap.L().Info("auth_event",
			zap.String("event", "logout"),
			zap.Int64("user_id", sess.UserID),
			zap.Int64("gym_id", sess.GymID),
		)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleHome handles GET /
func handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// handleChangePasswordForm handles GET /change-password
func handleChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, "change_password.html", nil)
}

// handleChangePassword handles POST /change-password
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := func(status int, message string) {
		renderTemplate(w, r, status, "change_password.html", map[string]any{"Error": message})
	}
	if r.FormValue("new_password") != r.FormValue("confirm_password") {
		form(http.StatusUnprocessableEntity, "new passwords do not match")
		return
	}

	input := orchestrators.ChangePasswordInput{
		Scope:           scopeOf(r),
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     r.FormValue("new_password"),
	}
	if err := orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{UserStore: stores.Users}); err != nil {
		handleOpError(w, r, err, form)
		return
	}
	renderTemplate(w, r, http.StatusOK, "change_password.html", map[string]any{"Success": true})
}
