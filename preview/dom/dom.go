//go:build js && wasm

// Package dom binds a preview.Controller to the generator page in the
// browser.
package dom

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/eringen/mcgen/preview"
)

// selectors locates each field on the index page.
var selectors = map[preview.Field]string{
	preview.FieldTitle:      `input[name="title"]`,
	preview.FieldText:       `input[name="text"]`,
	preview.FieldBackground: `select[name="background"]`,
	preview.FieldImage:      "#achievement",
	preview.FieldURL:        "#out-url",
	preview.FieldHTML:       "#out-html",
	preview.FieldBBCode:     "#out-bb",
}

// ErrNoClipboard is returned when the page has no clipboard API, usually
// because it is not served from a secure context.
var ErrNoClipboard = errors.New("dom: clipboard unavailable")

// Page implements preview.Page on top of the DOM.
type Page struct {
	window   js.Value
	elements map[preview.Field]js.Value
}

// NewPage looks up every element the controller needs.
func NewPage() (*Page, error) {
	window := js.Global()
	doc := window.Get("document")
	p := &Page{
		window:   window,
		elements: make(map[preview.Field]js.Value, len(selectors)),
	}
	for f, sel := range selectors {
		el := doc.Call("querySelector", sel)
		if el.IsNull() || el.IsUndefined() {
			return nil, fmt.Errorf("dom: element %s not found", sel)
		}
		p.elements[f] = el
	}
	return p, nil
}

// Value returns the value property of the element for f.
func (p *Page) Value(f preview.Field) string {
	el, ok := p.elements[f]
	if !ok {
		return ""
	}
	return el.Get("value").String()
}

// Select calls select() on the element for f.
func (p *Page) Select(f preview.Field) {
	if el, ok := p.elements[f]; ok {
		el.Call("select")
	}
}

// SetSource sets the src of the preview image.
func (p *Page) SetSource(url string) {
	p.elements[preview.FieldImage].Set("src", url)
}

// Show writes the three share strings into their output boxes.
func (p *Page) Show(o preview.Outputs) {
	p.elements[preview.FieldURL].Set("value", o.URL)
	p.elements[preview.FieldHTML].Set("value", o.HTML)
	p.elements[preview.FieldBBCode].Set("value", o.BBCode)
}

// Location returns window.location.href.
func (p *Page) Location() string {
	return p.window.Get("location").Get("href").String()
}

// Navigate assigns url to window.location.href.
func (p *Page) Navigate(url string) {
	p.window.Get("location").Set("href", url)
}

// WriteText calls navigator.clipboard.writeText and waits for the promise.
func (p *Page) WriteText(ctx context.Context, text string) error {
	clipboard := p.window.Get("navigator").Get("clipboard")
	if clipboard.IsUndefined() || clipboard.IsNull() {
		return ErrNoClipboard
	}
	return await(ctx, clipboard.Call("writeText", text))
}

func await(ctx context.Context, promise js.Value) error {
	done := make(chan error, 1)
	onResolve := js.FuncOf(func(js.Value, []js.Value) any {
		done <- nil
		return nil
	})
	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		reason := "promise rejected"
		if len(args) > 0 {
			reason = args[0].Call("toString").String()
		}
		done <- errors.New(reason)
		return nil
	})
	promise.Call("then", onResolve, onReject)

	select {
	case err := <-done:
		onResolve.Release()
		onReject.Release()
		return err
	case <-ctx.Done():
		// the callbacks stay alive; the promise may still settle later
		return ctx.Err()
	}
}

// Bind registers one DOM listener per row of the controller's dispatch
// table. The returned func removes them again.
func Bind(p *Page, c *preview.Controller) func() {
	type listener struct {
		el   js.Value
		kind string
		fn   js.Func
	}
	var listeners []listener
	for _, b := range c.Bindings() {
		b := b
		el, ok := p.elements[b.Field]
		if !ok {
			continue
		}
		fn := js.FuncOf(func(js.Value, []js.Value) any {
			c.Dispatch(b.Field, b.Kind)
			return nil
		})
		el.Call("addEventListener", b.Kind.String(), fn)
		listeners = append(listeners, listener{el: el, kind: b.Kind.String(), fn: fn})
	}
	return func() {
		for _, l := range listeners {
			l.el.Call("removeEventListener", l.kind, l.fn)
			l.fn.Release()
		}
	}
}
