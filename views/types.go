package views

// IndexData is everything the generator page needs.
type IndexData struct {
	SiteName    string
	Backgrounds []string
	Selected    string // defaults to the first background
}

// LoginData drives the admin login form.
type LoginData struct {
	SiteName  string
	ShowError bool
	CSRFToken string
}

// StatRow is one line of a dashboard table.
type StatRow struct {
	Label string
	Count int
}

// DashboardData drives the admin dashboard.
type DashboardData struct {
	SiteName    string
	Total       int
	Downloads   int
	CSRFToken   string
	Backgrounds []StatRow
	Days        []StatRow
}
