package web

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"softgym/internal/adapters/storage/storagetest"
	"softgym/internal/adapters/storage/txn"
	"softgym/internal/application/orchestrators"
	"softgym/internal/domain/tenant"
)

// fixedNow is the wall clock every handler test runs at.
var fixedNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

const testPassword = "front-desk-1"

type testApp struct {
	t      *testing.T
	db     *sql.DB
	stores *Stores
	srv    *httptest.Server
	gymA   tenant.Scope
	gymB   tenant.Scope
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// newTestApp serves the full middleware chain over a fresh database with two
// gyms: "desk_a" logs into gym A and "desk_b" into gym B.
func newTestApp(t *testing.T, health Pinger) *testApp {
	t.Helper()
	db := storagetest.Open(t)
	s := &Stores{Stores: txn.Bind(db), Tx: txn.New(db)}

	handler := NewMux(Options{
		CSRFKey:            bytes.Repeat([]byte("t"), 32),
		RateLimitPerSecond: 1000,
		Health:             health,
	}, s)
	clock = func() time.Time { return fixedNow }
	t.Cleanup(func() { clock = time.Now })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	app := &testApp{t: t, db: db, stores: s, srv: srv}
	app.gymA = app.createGym("Gym A", "desk_a")
	app.gymB = app.createGym("Gym B", "desk_b")
	return app
}

func (a *testApp) createGym(name, username string) tenant.Scope {
	a.t.Helper()
	res, err := orchestrators.ExecuteCreateGymWithUser(context.Background(), orchestrators.CreateGymWithUserInput{
		GymName:  name,
		Username: username,
		Password: testPassword,
	}, orchestrators.CreateGymWithUserDeps{Tx: a.stores.Tx})
	require.NoError(a.t, err)
	return tenant.Scope{UserID: res.User.ID, GymID: res.Gym.ID}
}

// addClient registers a paid client directly through the orchestrator.
func (a *testApp) addClient(scope tenant.Scope, name, plan string) int64 {
	a.t.Helper()
	res, err := orchestrators.ExecuteRegisterClient(context.Background(), orchestrators.RegisterClientInput{
		Scope:  scope,
		Name:   name,
		Plan:   plan,
		Amount: "100",
	}, orchestrators.RegisterClientDeps{Tx: a.stores.Tx, Clock: clock})
	require.NoError(a.t, err)
	return res.Client.ID
}

func (a *testApp) count(table string) int {
	a.t.Helper()
	var n int
	require.NoError(a.t, a.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t     *testing.T
	base  string
	http  *http.Client
	token string
}

var csrfInput = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func (a *testApp) browser() *browser {
	a.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	b := &browser{
		t:    a.t,
		base: a.srv.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	_, body := b.get("/login")
	m := csrfInput.FindStringSubmatch(body)
	require.Len(a.t, m, 2, "login page must carry a CSRF field")
	b.token = m[1]
	return b
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.http.Get(b.base + path)
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if b.token != "" {
		form.Set("csrf_token", b.token)
	}
	resp, err := b.http.Post(b.base+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	return resp, readBody(b.t, resp)
}

func (b *browser) login(username string) {
	b.t.Helper()
	resp, _ := b.post("/login", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/clients", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
