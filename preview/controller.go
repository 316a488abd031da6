package preview

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// DebounceDelay is how long text input must be quiet before the preview
// is recomputed.
const DebounceDelay = 300 * time.Millisecond

// Page is everything the controller touches on the generator page.
type Page interface {
	// Value returns the live value of an input or output field.
	Value(f Field) string
	// Select selects all text in f.
	Select(f Field)
	// SetSource points the preview image at url. Each call starts one fetch.
	SetSource(url string)
	// Show writes all three share strings in one step.
	Show(o Outputs)
	// Location returns the address of the page.
	Location() string
	// Navigate sends the browser to url.
	Navigate(url string)
	// WriteText makes text the system clipboard content.
	WriteText(ctx context.Context, text string) error
}

// Binding is one row of the controller's dispatch table.
type Binding struct {
	Field Field
	Kind  EventKind
}

// Handler reacts to an event on a field.
type Handler func(f Field)

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer source used for debouncing.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithDelay overrides DebounceDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithLogger sets the logger used for discarded task outcomes.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDiscardHook receives the outcome of every fire-and-forget task.
// The default logs failures at warn level and does nothing else.
func WithDiscardHook(fn func(task string, err error)) Option {
	return func(c *Controller) { c.discard = fn }
}

// Controller keeps the preview image and share strings consistent with the
// form. Apart from Dispatch and Bindings, its methods must run on the
// controller's Executor.
type Controller struct {
	page      Page
	exec      Executor
	scheduler Scheduler
	delay     time.Duration
	logger    *log.Logger
	discard   func(task string, err error)
	handlers  map[Binding]Handler

	pending    Timer
	generation uint64
	imageURL   string
	outputs    Outputs
	recomputes int
}

// New returns a Controller for page whose handlers run on exec.
func New(page Page, exec Executor, opts ...Option) *Controller {
	c := &Controller{
		page:      page,
		exec:      exec,
		scheduler: SystemScheduler,
		delay:     DebounceDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "preview"})
	}
	if c.discard == nil {
		c.discard = c.logDiscarded
	}

	c.handlers = map[Binding]Handler{
		{FieldTitle, EventInput}:       c.OnTextInput,
		{FieldText, EventInput}:        c.OnTextInput,
		{FieldBackground, EventChange}: func(Field) { c.OnBackgroundChange() },
		{FieldTitle, EventClick}:       c.SelectFieldContent,
		{FieldText, EventClick}:        c.SelectFieldContent,
		{FieldURL, EventClick}:         c.CopyToClipboard,
		{FieldHTML, EventClick}:        c.CopyToClipboard,
		{FieldBBCode, EventClick}:      c.CopyToClipboard,
		{FieldImage, EventClick}:       func(Field) { c.TriggerDownload() },
	}
	return c
}

// Bindings lists every (field, event) pair the controller handles, ordered
// by field then event kind.
func (c *Controller) Bindings() []Binding {
	out := make([]Binding, 0, len(c.handlers))
	for b := range c.handlers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Dispatch posts the handler bound to (f, kind) onto the executor.
// Unbound pairs are ignored.
func (c *Controller) Dispatch(f Field, kind EventKind) {
	h, ok := c.handlers[Binding{Field: f, Kind: kind}]
	if !ok {
		return
	}
	c.exec.Post(func() { h(f) })
}

// OnTextInput restarts the debounce window. The preview is recomputed once
// input has been quiet for the full delay.
func (c *Controller) OnTextInput(Field) {
	c.cancelPending()
	c.generation++
	gen := c.generation
	c.pending = c.scheduler.AfterFunc(c.delay, func() {
		c.exec.Post(func() { c.fire(gen) })
	})
}

// OnBackgroundChange recomputes immediately. A pending text timer keeps
// running and reads the new background when it fires.
func (c *Controller) OnBackgroundChange() {
	c.Recompute()
}

// fire runs the debounced recompute unless a newer input superseded it
// after its timer had already expired.
func (c *Controller) fire(gen uint64) {
	if gen != c.generation || c.pending == nil {
		return
	}
	c.pending = nil
	c.Recompute()
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
}

// State reads the current form values.
func (c *Controller) State() InputState {
	return InputState{
		Background: c.page.Value(FieldBackground),
		Title:      c.page.Value(FieldTitle),
		Text:       c.page.Value(FieldText),
	}
}

// Recompute derives the image URL from the live form, points the preview
// at it and writes the share strings.
func (c *Controller) Recompute() {
	imageURL := ImageURL(c.State())
	c.page.SetSource(imageURL)

	outputs := Embeds(imageURL, c.page.Location())
	c.imageURL = imageURL
	c.outputs = outputs
	c.page.Show(outputs)
	c.recomputes++
}

// SelectFieldContent selects everything in f.
func (c *Controller) SelectFieldContent(f Field) {
	c.page.Select(f)
}

// CopyToClipboard selects f and submits a clipboard write of its value.
// The write's outcome goes to the discard hook only.
func (c *Controller) CopyToClipboard(f Field) {
	c.page.Select(f)
	text := c.page.Value(f)
	c.submit("clipboard", func(ctx context.Context) error {
		return c.page.WriteText(ctx, text)
	})
}

// TriggerDownload navigates to the current image as an attachment. It does
// nothing before the first recompute.
func (c *Controller) TriggerDownload() {
	if c.imageURL == "" {
		return
	}
	c.page.Navigate(DownloadURL(c.imageURL))
}

// submit starts fn and hands its result to the discard hook. Nothing waits
// for it and nothing is retried.
func (c *Controller) submit(task string, fn func(ctx context.Context) error) {
	go func() {
		c.discard(task, fn(context.Background()))
	}()
}

func (c *Controller) logDiscarded(task string, err error) {
	if err != nil {
		c.logger.Warn("task failed", "task", task, "err", err)
	}
}

// ImageURL returns the last derived image URL, or "" before the first
// recompute.
func (c *Controller) ImageURL() string { return c.imageURL }

// Outputs returns the last share strings written to the page.
func (c *Controller) Outputs() Outputs { return c.outputs }

// Pending reports whether a debounced recompute is scheduled.
func (c *Controller) Pending() bool { return c.pending != nil }

// Recomputes counts completed recomputes.
func (c *Controller) Recomputes() int { return c.recomputes }
