package mcgen

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// baseURL is the configured site URL, or the scheme and host the request
// arrived on when none is set.
func (a *App) baseURL(c echo.Context) string {
	if a.Config.URL != "" {
		return strings.TrimRight(a.Config.URL, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

// handleSitemap lists the generator page. Images are not listed; they
// are derived from user input.
func (a *App) handleSitemap(c echo.Context) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: a.baseURL(c) + "/", ChangeFreq: "monthly"}},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
