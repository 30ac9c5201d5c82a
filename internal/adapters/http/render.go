package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"softgym/internal/adapters/http/middleware"
	"softgym/internal/domain/apperr"
	"softgym/internal/domain/membership"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var embeddedStatic embed.FS

// staticFS serves /static/ from the embedded assets.
var staticFS fs.FS = embeddedStatic

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("internal_error",
		zap.String("request_id", middleware.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// formRenderer re-renders a form with an error message and status.
type formRenderer func(status int, message string)

// handleOpError maps an operation error onto a response.
// Recoverable input errors re-render the form as 422; missing records are 404;
// cross-gym or unauthenticated access redirects without revealing anything.
func handleOpError(w http.ResponseWriter, r *http.Request, err error, form formRenderer) {
	switch {
	case apperr.IsValidation(err), apperr.IsIdentifierFormat(err):
		if form != nil {
			form(http.StatusUnprocessableEntity, apperr.UserMessage(err))
			return
		}
		http.Error(w, apperr.UserMessage(err), http.StatusUnprocessableEntity)
	case apperr.IsNotFound(err):
		http.Error(w, "not found", http.StatusNotFound)
	case apperr.IsUnauthorized(err):
		if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
	default:
		internalError(w, r, err)
	}
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.Format(membership.DateLayout)
	},
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"id":    func(id int64) string { return strconv.FormatInt(id, 10) },
	"lower": strings.ToLower,
	"add":   func(a, b int) int { return a + b },
	// query marks a listutil-built query string as safe URL content.
	"query": func(q string) template.URL { return template.URL(q) },
}

func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data map[string]any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())
	if data == nil {
		data = map[string]any{}
	}

	tpl, err := template.New("layout.html").
		Funcs(templateFuncs).
		Funcs(template.FuncMap{
			"csrfField":   func() template.HTML { return csrf.TemplateField(r) },
			"isLoggedIn":  func() bool { return loggedIn },
			"currentUser": func() string { return sess.Username },
			"plans":       func() []membership.Plan { return membership.Plans },
		}).
		ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// pathID parses the {id} wildcard of the route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
