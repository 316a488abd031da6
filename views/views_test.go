package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestBackgroundLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"dirt", "Dirt"},
		{"crafting_table", "Crafting Table"},
		{"diamond-sword", "Diamond Sword"},
		{"élytra_wing", "Élytra Wing"},
		{"ñ", "Ñ"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BackgroundLabel(tt.in); got != tt.want {
			t.Errorf("BackgroundLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	html := render(t, Index(IndexData{
		SiteName:    "Gen <test>",
		Backgrounds: []string{"dirt", "stone"},
		Selected:    "stone",
	}))

	for _, want := range []string{
		`<title>Gen &lt;test&gt;</title>`,
		`<select id="background" name="background">`,
		`<option value="dirt">Dirt</option>`,
		`<option value="stone" selected>Stone</option>`,
		`id="title" name="title"`,
		`id="text" name="text"`,
		`<img id="achievement" src="/api/v1/achievement?background=stone&amp;title=Achievement%20get%21&amp;text=Made%20with%20mcgen"`,
		`id="out-url"`,
		`id="out-html"`,
		`id="out-bb"`,
		`<script src="/public/wasm_exec.js"></script>`,
		`<script src="/static/app.js"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(html, "style=") || strings.Contains(html, "<script>") {
		t.Error("index must not carry inline styles or scripts")
	}
}

func TestIndexDefaultsToFirstBackground(t *testing.T) {
	html := render(t, Index(IndexData{Backgrounds: []string{"plain", "tnt"}}))
	if !strings.Contains(html, `<option value="plain" selected>`) {
		t.Error("first background should be selected")
	}
}

func TestAdminLogin(t *testing.T) {
	html := render(t, AdminLogin(LoginData{SiteName: "mcgen", CSRFToken: "tok\"en"}))
	if !strings.Contains(html, `name="_csrf" value="tok&#34;en"`) {
		t.Errorf("csrf token not escaped: %s", html)
	}
	if strings.Contains(html, "Wrong password") {
		t.Error("error shown without ShowError")
	}

	html = render(t, AdminLogin(LoginData{ShowError: true}))
	if !strings.Contains(html, "Wrong password") {
		t.Error("error not shown")
	}
}

func TestAdminDashboard(t *testing.T) {
	html := render(t, AdminDashboard(DashboardData{
		SiteName:    "mcgen",
		Total:       12,
		Downloads:   3,
		CSRFToken:   "abc",
		Backgrounds: []StatRow{{Label: "dirt", Count: 9}},
	}))
	for _, want := range []string{
		`<dd>12</dd>`,
		`<dd>3</dd>`,
		`<td>dirt</td><td>9</td>`,
		`action="/admin/logout/"`,
		`name="_csrf" value="abc"`,
		`Nothing yet.`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}
