package mcgen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/mcgen/generator"
)

var errRateLimited = errors.New("rate limited")

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// apiError writes the JSON error body shared by all API endpoints.
func apiError(c echo.Context, code int, err error, message string) error {
	return c.JSON(code, ErrorResponse{Error: err.Error(), Message: message})
}

// parseScale reads the optional scale query value. Range checks happen in
// the generator.
func parseScale(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, generator.ErrInvalidScale
	}
	return n, nil
}

// cacheKey identifies a rendered image. Fields are NUL-separated so that
// ("ab", "c") and ("a", "bc") never collide.
func cacheKey(req generator.Request) string {
	scale := req.Scale
	if scale == 0 {
		scale = 1
	}
	h := sha256.New()
	for _, part := range []string{req.Background, req.Title, req.Text, strconv.Itoa(scale)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
