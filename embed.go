package mcgen

import "embed"

// EmbeddedAssets contains the page assets shipped with the server:
// app.js (the WebAssembly loader) and style.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
