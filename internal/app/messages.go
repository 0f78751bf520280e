package app

import "sage/internal/backend"

// OverviewLoadedMsg carries a successful overview fetch.
type OverviewLoadedMsg struct {
	Overview backend.OverviewResponse
}

// OverviewErrorMsg is sent when the overview fetch fails.
type OverviewErrorMsg struct {
	Err error
}

// QueryResultMsg carries the agent's answer to a submitted query.
type QueryResultMsg struct {
	Result backend.QueryResponse
}

// QueryErrorMsg is sent when a query request fails.
type QueryErrorMsg struct {
	Err error
}
