package projections

import (
	"context"
	"time"

	"softgym/internal/adapters/storage/client"
	"softgym/internal/application/listutil"
	domainClient "softgym/internal/domain/client"
	"softgym/internal/domain/tenant"
)

// RosterSortColumns are the sort keys accepted from the roster URL.
var RosterSortColumns = []string{client.SortName, client.SortExpiration, client.SortID}

// RosterStatusFilters are the status filters accepted from the roster URL.
var RosterStatusFilters = []string{client.FilterActive, client.FilterExpired}

// GetClientRosterQuery carries query parameters.
type GetClientRosterQuery struct {
	Scope  tenant.Scope
	Params listutil.ListParams
	Today  time.Time // civil date used for membership status
}

// RosterRow is one client with its membership status as of Today.
type RosterRow struct {
	Client domainClient.Client
	Status string // ACTIVE, EXPIRED or UNKNOWN
}

// GetClientRosterResult carries the query result.
type GetClientRosterResult struct {
	Rows    []RosterRow
	Page    listutil.PageInfo
	Params  listutil.ListParams
	Today   time.Time
	Active  int // active clients of the gym, ignoring Search and Status
	Expired int // expired or never-paid clients of the gym, ignoring Search and Status
}

// GetClientRosterDeps holds dependencies for GetClientRoster.
type GetClientRosterDeps struct {
	ClientStore ClientStore
}

// QueryGetClientRoster lists the clients of the session gym one page at a time.
// PRE: Scope is authenticated
// POST: only clients of Scope.GymID are returned; Page is clamped to the result
func QueryGetClientRoster(ctx context.Context, query GetClientRosterQuery, deps GetClientRosterDeps) (GetClientRosterResult, error) {
	if err := query.Scope.Require(); err != nil {
		return GetClientRosterResult{}, err
	}

	filter := client.ListFilter{
		GymID:  query.Scope.GymID,
		Search: query.Params.Search,
		Status: query.Params.Status,
		Today:  query.Today,
		Sort:   query.Params.Sort,
		Desc:   query.Params.Desc,
	}
	total, err := deps.ClientStore.Count(ctx, filter)
	if err != nil {
		return GetClientRosterResult{}, err
	}
	page := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = page.PerPage
	filter.Offset = page.Offset()

	clients, err := deps.ClientStore.List(ctx, filter)
	if err != nil {
		return GetClientRosterResult{}, err
	}
	rows := make([]RosterRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, RosterRow{Client: c, Status: c.Status(query.Today)})
	}

	active, err := deps.ClientStore.Count(ctx, client.ListFilter{GymID: query.Scope.GymID, Status: client.FilterActive, Today: query.Today})
	if err != nil {
		return GetClientRosterResult{}, err
	}
	expired, err := deps.ClientStore.Count(ctx, client.ListFilter{GymID: query.Scope.GymID, Status: client.FilterExpired, Today: query.Today})
	if err != nil {
		return GetClientRosterResult{}, err
	}

	params := query.Params
	params.Page = page.Page
	params.PerPage = page.PerPage
	return GetClientRosterResult{
		Rows:    rows,
		Page:    page,
		Params:  params,
		Today:   query.Today,
		Active:  active,
		Expired: expired,
	}, nil
}
