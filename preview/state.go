// Package preview keeps the achievement preview image and its share strings
// in sync with the generator form.
//
// A Controller reads the form through a Page, debounces text input, and
// writes the derived image URL plus three embed strings back to the page.
// All controller state is owned by a single Executor, so handlers never
// race with each other or with timer callbacks.
package preview

// Field identifies an element on the generator page.
type Field int

const (
	FieldTitle Field = iota
	FieldText
	FieldBackground
	FieldImage
	FieldURL
	FieldHTML
	FieldBBCode
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldText:
		return "text"
	case FieldBackground:
		return "background"
	case FieldImage:
		return "achievement"
	case FieldURL:
		return "out-url"
	case FieldHTML:
		return "out-html"
	case FieldBBCode:
		return "out-bb"
	}
	return "unknown"
}

// EventKind is the kind of DOM event a handler reacts to.
type EventKind int

const (
	EventInput EventKind = iota
	EventChange
	EventClick
)

// String returns the DOM event name.
func (k EventKind) String() string {
	switch k {
	case EventInput:
		return "input"
	case EventChange:
		return "change"
	case EventClick:
		return "click"
	}
	return "unknown"
}

// InputState is the form content at one moment.
type InputState struct {
	Background string
	Title      string
	Text       string
}

// Outputs holds the three share strings derived from one image URL.
type Outputs struct {
	URL    string // direct link
	HTML   string // anchor wrapping an img tag
	BBCode string // forum markup
}
