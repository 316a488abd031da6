package preview

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// APIPath is the achievement endpoint, relative to the page.
	APIPath = "api/v1/achievement"
	// AltText is the alt attribute of the HTML embed.
	AltText = "Minecraft Achievement"
)

// Escape percent-encodes s for use as a query value. Every byte outside
// A-Z a-z 0-9 - _ . ~ is encoded, and spaces become %20 rather than '+'.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ImageURL builds the endpoint URL for s. The background is inserted as is;
// it always comes from the closed list rendered into the selector.
func ImageURL(s InputState) string {
	return APIPath +
		"?background=" + s.Background +
		"&title=" + Escape(s.Title) +
		"&text=" + Escape(s.Text)
}

// Embeds derives the share strings for imageURL. page is the address of the
// generator page and is used verbatim.
func Embeds(imageURL, page string) Outputs {
	return Outputs{
		URL:    imageURL,
		HTML:   fmt.Sprintf(`<a href="%s" target="_blank"><img src="%s" alt="%s" /></a>`, page, imageURL, AltText),
		BBCode: fmt.Sprintf("[url=%s][img]%s[/img][/url]", page, imageURL),
	}
}

// DownloadURL asks the endpoint to serve imageURL as an attachment.
func DownloadURL(imageURL string) string {
	return imageURL + "&output=download"
}
