package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eringen/mcgen/preview"
)

// Default form values shown before the visitor types anything.
const (
	DefaultTitle = "Achievement get!"
	DefaultText  = "Made with mcgen"
)

// BackgroundLabel turns a background identifier into a selector label,
// e.g. "crafting_table" becomes "Crafting Table".
func BackgroundLabel(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// selected is the background preselected in the form.
func (d IndexData) selected() string {
	if d.Selected != "" {
		return d.Selected
	}
	if len(d.Backgrounds) > 0 {
		return d.Backgrounds[0]
	}
	return ""
}

func (d IndexData) previewURL() string {
	return preview.ImageURL(preview.InputState{Background: d.selected(), Title: DefaultTitle, Text: DefaultText})
}
