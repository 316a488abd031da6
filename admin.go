package mcgen

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mcgen/views"
)

// dashboardDays is how many days of history the dashboard shows.
const dashboardDays = 30

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(views.LoginData{SiteName: a.Config.Name, CSRFToken: CsrfToken(c)}))
	}
	return a.renderAdminDashboard(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(views.LoginData{
		SiteName:  a.Config.Name,
		ShowError: true,
		CSRFToken: CsrfToken(c),
	}))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) renderAdminDashboard(c echo.Context) error {
	totals, err := a.Store.Totals()
	if err != nil {
		return err
	}
	backgrounds, err := a.Store.BackgroundStats()
	if err != nil {
		return err
	}
	days, err := a.Store.DailyStats(dashboardDays)
	if err != nil {
		return err
	}

	data := views.DashboardData{
		SiteName:  a.Config.Name,
		Total:     totals.Total,
		Downloads: totals.Downloads,
		CSRFToken: CsrfToken(c),
	}
	for _, b := range backgrounds {
		data.Backgrounds = append(data.Backgrounds, views.StatRow{Label: b.Background, Count: b.Count})
	}
	for _, d := range days {
		data.Days = append(data.Days, views.StatRow{Label: d.Day, Count: d.Count})
	}
	return Render(c, views.AdminDashboard(data))
}
