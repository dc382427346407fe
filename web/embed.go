// Package web embeds the browser assets served by the registration server.
package web

import "embed"

// FS holds the stylesheet served under /static.
//
//go:embed static/*
var FS embed.FS
