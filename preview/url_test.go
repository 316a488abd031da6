package preview

import (
	"net/url"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "Hello"},
		{"World!", "World%21"},
		{"a b", "a%20b"},
		{"a+b", "a%2Bb"},
		{"a&b=c", "a%26b%3Dc"},
		{"", ""},
		{"ü", "%C3%BC"},
		{"-_.~", "-_.~"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmbedsTemplates(t *testing.T) {
	imageURL := ImageURL(InputState{Background: "dirt", Title: "Hello", Text: "World!"})
	wantURL := "api/v1/achievement?background=dirt&title=Hello&text=World%21"
	if imageURL != wantURL {
		t.Fatalf("ImageURL = %q, want %q", imageURL, wantURL)
	}

	got := Embeds(imageURL, "https://x.test/")
	if got.URL != wantURL {
		t.Errorf("URL = %q, want %q", got.URL, wantURL)
	}
	wantHTML := `<a href="https://x.test/" target="_blank"><img src="api/v1/achievement?background=dirt&title=Hello&text=World%21" alt="Minecraft Achievement" /></a>`
	if got.HTML != wantHTML {
		t.Errorf("HTML = %q, want %q", got.HTML, wantHTML)
	}
	wantBB := "[url=https://x.test/][img]api/v1/achievement?background=dirt&title=Hello&text=World%21[/img][/url]"
	if got.BBCode != wantBB {
		t.Errorf("BBCode = %q, want %q", got.BBCode, wantBB)
	}
}

func TestImageURLRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Hello",
		"World!",
		"a&b=c",
		"100% + 1",
		"#anchor?query/path",
		"spaces  and\ttabs",
		"Ärger über Öl",
		"emoji 🎉",
		"'quotes' \"double\"",
	}
	for _, title := range inputs {
		for _, text := range inputs {
			raw := ImageURL(InputState{Background: "stone", Title: title, Text: text})
			u, err := url.Parse(raw)
			if err != nil {
				t.Fatalf("parse %q: %v", raw, err)
			}
			q := u.Query()
			if got := q.Get("title"); got != title {
				t.Errorf("title round trip: got %q, want %q", got, title)
			}
			if got := q.Get("text"); got != text {
				t.Errorf("text round trip: got %q, want %q", got, text)
			}
			if got := q.Get("background"); got != "stone" {
				t.Errorf("background = %q, want stone", got)
			}
			if u.Path != APIPath {
				t.Errorf("path = %q, want %q", u.Path, APIPath)
			}
		}
	}
}

func TestDownloadURL(t *testing.T) {
	base := "api/v1/achievement?background=dirt&title=Hello&text=World%21"
	got := DownloadURL(base)
	if got != base+"&output=download" {
		t.Fatalf("DownloadURL = %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("output") != "download" || q.Get("title") != "Hello" || q.Get("text") != "World!" || q.Get("background") != "dirt" {
		t.Errorf("unexpected query %v", q)
	}
}
