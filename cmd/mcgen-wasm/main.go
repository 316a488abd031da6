//go:build js && wasm

// Command mcgen-wasm runs the preview controller inside the generator page.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o public/main.wasm ./cmd/mcgen-wasm
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"github.com/eringen/mcgen/preview"
	"github.com/eringen/mcgen/preview/dom"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "mcgen"})

	page, err := dom.NewPage()
	if err != nil {
		logger.Fatal("binding page", "err", err)
	}

	loop := preview.NewLoop(64)
	ctrl := preview.New(page, loop, preview.WithLogger(logger))
	unbind := dom.Bind(page, ctrl)
	defer unbind()

	logger.Debug("preview controller ready", "bindings", len(ctrl.Bindings()))
	if err := loop.Run(context.Background()); err != nil {
		logger.Error("event loop stopped", "err", err)
	}
}
