package mcgen

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mcgen/assets"
	"github.com/eringen/mcgen/generator"
	"github.com/eringen/mcgen/views"
)

const notFoundText = "Whatever you are looking for, it's not here ¯\\_(ツ)_/¯"

func (a *App) handleIndex(c echo.Context) error {
	return Render(c, views.Index(views.IndexData{
		SiteName:    a.Config.Name,
		Backgrounds: a.Generator.Backgrounds(),
	}))
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nDisallow: /admin/\nSitemap: "+a.baseURL(c)+"/sitemap.xml\n")
}

func (a *App) handleBackgrounds(c echo.Context) error {
	return c.JSON(http.StatusOK, BackgroundsResponse{Backgrounds: a.Generator.Backgrounds()})
}

func (a *App) handleAchievementGet(c echo.Context) error {
	scale, err := parseScale(c.QueryParam("scale"))
	if err != nil {
		return apiError(c, http.StatusBadRequest, err, "invalid scale")
	}
	return a.respondAchievement(c, AchievementRequest{
		Background: c.QueryParam("background"),
		Title:      c.QueryParam("title"),
		Text:       c.QueryParam("text"),
		Output:     OutputType(c.QueryParam("output")),
		Scale:      scale,
	})
}

func (a *App) handleAchievementPost(c echo.Context) error {
	var req AchievementRequest
	if err := c.Bind(&req); err != nil {
		return apiError(c, http.StatusBadRequest, err, "invalid request body")
	}
	return a.respondAchievement(c, req)
}

// handleLegacyQuery serves /a.php?i=<icon>&h=<title>&t=<text>[&d=1].
func (a *App) handleLegacyQuery(c echo.Context) error {
	output := OutputInline
	if c.QueryParam("d") == "1" {
		output = OutputDownload
	}
	return a.respondAchievement(c, AchievementRequest{
		Background: assets.LegacyBackground(c.QueryParam("i")),
		Title:      c.QueryParam("h"),
		Text:       c.QueryParam("t"),
		Output:     output,
	})
}

// handleLegacyPath serves /a/<icon>/<title>/<text>/<anything>. Segments are
// taken from the escaped path and query-unescaped once, so "+" is a space
// and "%25" is a literal percent sign.
func (a *App) handleLegacyPath(c echo.Context) error {
	segments := legacySegments(c.Request().URL.EscapedPath())
	if len(segments) < 3 {
		return echo.ErrNotFound
	}
	background, err := url.QueryUnescape(segments[0])
	if err != nil {
		return apiError(c, http.StatusBadRequest, err, "invalid background")
	}
	title, err := url.QueryUnescape(segments[1])
	if err != nil {
		return apiError(c, http.StatusBadRequest, err, "invalid title")
	}
	text, err := url.QueryUnescape(segments[2])
	if err != nil {
		return apiError(c, http.StatusBadRequest, err, "invalid text")
	}
	return a.respondAchievement(c, AchievementRequest{
		Background: assets.LegacyBackground(background),
		Title:      title,
		Text:       text,
	})
}

// legacySegments returns the still-escaped background, title and text
// segments of an /a/ path.
func legacySegments(escapedPath string) []string {
	rest, ok := strings.CutPrefix(escapedPath, "/a/")
	if !ok {
		return nil
	}
	parts := strings.SplitN(rest, "/", 4)
	if len(parts) < 3 {
		return nil
	}
	return parts[:3]
}

func (a *App) respondAchievement(c echo.Context, req AchievementRequest) error {
	if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
		return apiError(c, http.StatusTooManyRequests, errRateLimited, "too many requests")
	}

	image, err := a.renderAchievement(c, generator.Request{
		Background: req.Background,
		Title:      req.Title,
		Text:       req.Text,
		Scale:      req.Scale,
	})
	switch {
	case errors.Is(err, generator.ErrUnknownBackground):
		return apiError(c, http.StatusBadRequest, err, "unknown background")
	case errors.Is(err, generator.ErrInvalidScale):
		return apiError(c, http.StatusBadRequest, err, "invalid scale")
	case err != nil:
		a.Logger.Error("generating image", "err", err)
		return apiError(c, http.StatusInternalServerError, err, "could not generate achievement")
	}

	a.Metrics.Generated.WithLabelValues(req.Background, req.Output.label()).Inc()
	if a.Store != nil {
		if err := a.Store.RecordGeneration(time.Now(), req.Background, req.Output); err != nil {
			a.Logger.Warn("recording generation", "err", err)
		}
	}

	if req.Output == OutputDownload {
		h := c.Response().Header()
		h.Set("Content-Description", "File Transfer")
		h.Set(echo.HeaderContentDisposition, "attachment; filename=achievement.png")
		return c.Blob(http.StatusOK, echo.MIMEOctetStream, image)
	}
	return c.Blob(http.StatusOK, "image/png", image)
}

// renderAchievement serves from the cache when possible. Cache failures are
// logged and treated as misses.
func (a *App) renderAchievement(c echo.Context, req generator.Request) ([]byte, error) {
	ctx := c.Request().Context()
	key := cacheKey(req)

	if a.Cache != nil {
		data, ok, err := a.Cache.Get(ctx, key)
		if err != nil {
			a.Logger.Warn("image cache get", "err", err)
		}
		if ok {
			a.Metrics.CacheHits.Inc()
			return data, nil
		}
		a.Metrics.CacheMisses.Inc()
	}

	start := time.Now()
	data, err := a.Generator.Generate(req)
	if err != nil {
		return nil, err
	}
	runtime := time.Since(start)
	a.Metrics.ObserveGeneration(runtime)
	a.Logger.Info("generated image",
		"background", req.Background,
		"title", req.Title,
		"text", req.Text,
		"runtime", runtime,
	)

	if a.Cache != nil {
		if err := a.Cache.Set(ctx, key, data); err != nil {
			a.Logger.Warn("image cache set", "err", err)
		}
	}
	return data, nil
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = c.String(http.StatusNotFound, notFoundText)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "err", err, "uri", c.Request().RequestURI)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
